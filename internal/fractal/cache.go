package fractal

// Cache holds the primitives produced for one parameter snapshot. Get
// returns the stored slice untouched while the key is unchanged and rebuilds
// everything when it differs; there is no partial invalidation.
type Cache[K comparable] struct {
	key        K
	valid      bool
	output     []Primitive
	err        error
	recomputes int
}

// Get returns the primitives for key, calling build only when key differs
// from the cached snapshot. A failed build is cached under its key as well,
// so the same bad parameters are not retried every frame.
func (c *Cache[K]) Get(key K, build func(K) ([]Primitive, error)) []Primitive {
	if c.valid && c.key == key {
		return c.output
	}
	out, err := build(key)
	if out == nil {
		out = []Primitive{}
	}
	c.key, c.valid, c.output, c.err = key, true, out, err
	c.recomputes++
	return c.output
}

// Fresh reports whether key matches the cached snapshot.
func (c *Cache[K]) Fresh(key K) bool {
	return c.valid && c.key == key
}

// Snapshot returns the key of the cached output.
func (c *Cache[K]) Snapshot() (K, bool) {
	return c.key, c.valid
}

// Err returns the error from the most recent build.
func (c *Cache[K]) Err() error { return c.err }

// Recomputations counts how many times the output was rebuilt.
func (c *Cache[K]) Recomputations() int { return c.recomputes }

// Invalidate forces the next Get to rebuild.
func (c *Cache[K]) Invalidate() {
	var zero K
	c.key, c.valid, c.output, c.err = zero, false, nil, nil
}
