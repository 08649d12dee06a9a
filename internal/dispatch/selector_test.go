package dispatch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fractalab/internal/dispatch"
	"github.com/san-kum/fractalab/internal/fractal"
	"github.com/san-kum/fractalab/internal/geom"
)

var _ = Describe("Selector", func() {
	var (
		sel    *dispatch.Selector
		canvas geom.Canvas
	)

	BeforeEach(func() {
		sel = dispatch.New()
		canvas = geom.Canvas{Width: 640, Height: 480}
	})

	It("starts on the carpet", func() {
		Expect(sel.Active()).To(Equal(dispatch.Carpet))
		Expect(sel.Frame(canvas)).To(HaveLen(9))
	})

	It("routes frames to the selected generator", func() {
		Expect(sel.Select(dispatch.Word)).To(Succeed())
		Expect(sel.Frame(canvas)).To(HaveLen(len(fractal.FibonacciWord(16))))
		Expect(sel.Word().Recomputations()).To(Equal(1))
		Expect(sel.Carpet().Recomputations()).To(Equal(0))
	})

	It("keeps caches isolated across switches", func() {
		first := sel.Frame(canvas)
		Expect(sel.Select(dispatch.Tree)).To(Succeed())
		sel.Frame(canvas)
		Expect(sel.Select(dispatch.Carpet)).To(Succeed())
		again := sel.Frame(canvas)
		Expect(&again[0]).To(BeIdenticalTo(&first[0]))
		Expect(sel.Carpet().Recomputations()).To(Equal(1))
	})

	It("rejects unknown kinds", func() {
		err := sel.Select(dispatch.Kind("koch"))
		Expect(err).To(MatchError(fractal.ErrUnknownKind))
		Expect(sel.Active()).To(Equal(dispatch.Carpet))
	})

	It("cycles through every kind", func() {
		seen := []dispatch.Kind{}
		for range dispatch.Kinds() {
			seen = append(seen, sel.Next())
		}
		Expect(seen).To(Equal([]dispatch.Kind{dispatch.Word, dispatch.Tree, dispatch.Escape, dispatch.Carpet}))
	})

	It("surfaces configuration errors from the active generator", func() {
		Expect(sel.Select(dispatch.Tree)).To(Succeed())
		sel.Tree().Params.Scaling = 1
		Expect(sel.Frame(canvas)).To(BeEmpty())
		Expect(sel.Err()).To(MatchError(fractal.ErrConfiguration))
	})

	DescribeTable("ParseKind",
		func(in string, want dispatch.Kind) {
			got, err := dispatch.ParseKind(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("carpet", "carpet", dispatch.Carpet),
		Entry("upper case", "WORD", dispatch.Word),
		Entry("padded", " tree ", dispatch.Tree),
		Entry("mandelbrot alias", "mandelbrot", dispatch.Escape),
		Entry("htree alias", "htree", dispatch.Tree),
	)

	It("fails to parse unknown names", func() {
		_, err := dispatch.ParseKind("dragon")
		Expect(err).To(MatchError(fractal.ErrUnknownKind))
	})
})

var _ = Describe("Params", func() {
	var sel *dispatch.Selector

	BeforeEach(func() {
		sel = dispatch.New()
	})

	It("exposes sliders for every kind", func() {
		for _, k := range dispatch.Kinds() {
			Expect(sel.ParamsFor(k)).NotTo(BeEmpty(), string(k))
		}
	})

	It("clamps values on Set", func() {
		p, ok := sel.Param(dispatch.Carpet, "depth")
		Expect(ok).To(BeTrue())
		p.Set(42)
		Expect(sel.Carpet().Params.Depth).To(Equal(fractal.MaxCarpetDepth))
		p.Set(-1)
		Expect(sel.Carpet().Params.Depth).To(Equal(1))
	})

	It("nudges by step and flips toggles", func() {
		iter, _ := sel.Param(dispatch.Escape, "max_iterations")
		iter.Nudge(1)
		Expect(sel.Escape().Params.MaxIterations).To(Equal(85))

		shaded, _ := sel.Param(dispatch.Carpet, "shaded")
		shaded.Nudge(1)
		Expect(sel.Carpet().Params.Shaded).To(BeTrue())
		Expect(shaded.Format()).To(Equal("on"))
	})

	It("invalidates the cache when a slider moves", func() {
		canvas := geom.DefaultCanvas
		sel.Frame(canvas)
		depth, _ := sel.Param(dispatch.Carpet, "depth")
		depth.Nudge(1)
		Expect(sel.Frame(canvas)).To(HaveLen(73))
		Expect(sel.Carpet().Recomputations()).To(Equal(2))
	})

	It("switches tree variants", func() {
		v, _ := sel.Param(dispatch.Tree, "htree")
		v.Set(1)
		Expect(sel.Tree().Params.Variant).To(Equal(fractal.VariantHTree))
		Expect(sel.Tree().Params.Scaling).To(BeNumerically("~", 0.7071, 1e-3))
		v.Set(0)
		Expect(sel.Tree().Params).To(Equal(fractal.DefaultTreeParams()))
	})
})
