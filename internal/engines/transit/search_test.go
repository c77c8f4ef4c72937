package transit

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/config"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/ephemeris"
)

// linearSource moves every planet at a constant rate from a fixed longitude at J2000.
type linearSource struct {
	start float64
	rate  float64
	// frozen keeps the position at start while still reporting rate as mean motion.
	frozen bool
}

func (s linearSource) Position(planet v1alpha1.Planet, jd float64) ephemeris.Position {
	lon := s.start
	if !s.frozen {
		lon += s.rate * (jd - ephemeris.J2000)
	}
	lon = v1alpha1.NormalizeLongitude(lon)
	return ephemeris.Position{
		Planet:       planet,
		JulianDay:    jd,
		Longitude:    lon,
		Sign:         v1alpha1.SignOf(lon),
		DegreeInSign: v1alpha1.DegreeInSign(lon),
		Retrograde:   s.rate < 0,
	}
}

func (s linearSource) MeanMotion(v1alpha1.Planet) float64 {
	return s.rate
}

var (
	j2000Time  = ephemeris.TimeFromJulianDay(ephemeris.J2000)
	fullTrace  = []State{StateEstimating, StateBracketing, StateBisecting, StateVerifying, StateDone}
	oneHourDay = 1.0 / 24
)

func request(target v1alpha1.Sign, dir Direction) Request {
	return Request{Planet: v1alpha1.Sun, Target: target, Start: j2000Time, Direction: dir}
}

var _ = Describe("State", func() {
	It("should treat only Done and Fallback as terminal", func() {
		for _, s := range []State{StateEstimating, StateBracketing, StateBisecting, StateVerifying} {
			Expect(s.IsTerminal()).To(BeFalse(), string(s))
		}
		Expect(StateDone.IsTerminal()).To(BeTrue())
		Expect(StateFallback.IsTerminal()).To(BeTrue())
	})

	DescribeTable("transitions",
		func(from, to State, allowed bool) {
			Expect(isAllowedTransition(from, to)).To(Equal(allowed))
		},
		Entry("estimate to bracket", StateEstimating, StateBracketing, true),
		Entry("estimate to fallback", StateEstimating, StateFallback, true),
		Entry("estimate cannot skip to bisect", StateEstimating, StateBisecting, false),
		Entry("bracket to bisect", StateBracketing, StateBisecting, true),
		Entry("bracket to fallback on cap", StateBracketing, StateFallback, true),
		Entry("bracket cannot finish directly", StateBracketing, StateDone, false),
		Entry("bisect to verify", StateBisecting, StateVerifying, true),
		Entry("bisect to done without verification", StateBisecting, StateDone, true),
		Entry("bisect never falls back", StateBisecting, StateFallback, false),
		Entry("verify to done", StateVerifying, StateDone, true),
		Entry("verify to fallback", StateVerifying, StateFallback, true),
		Entry("done is terminal", StateDone, StateEstimating, false),
		Entry("fallback is terminal", StateFallback, StateBracketing, false),
	)
})

var _ = Describe("Searcher", func() {
	var (
		ctx context.Context
		cfg config.TransitConfig
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = config.DefaultEngineConfig().Transit
	})

	Context("with a direct constant-rate source", func() {
		var searcher *Searcher

		BeforeEach(func() {
			searcher = NewSearcher(linearSource{start: 10, rate: 1}, cfg)
		})

		It("should find the next sign boundary within the hour", func() {
			res := searcher.Search(ctx, request(v1alpha1.Taurus, Forward))
			boundary := ephemeris.J2000 + 20

			Expect(res.State).To(Equal(StateDone))
			Expect(res.Approximate).To(BeFalse())
			Expect(res.Trace).To(Equal(fullTrace))
			Expect(res.Estimate).To(BeNumerically("~", boundary, 1e-6))
			Expect(res.JulianDay).To(BeNumerically(">=", boundary))
			Expect(res.JulianDay).To(BeNumerically("<", boundary+oneHourDay+1e-9))
			Expect(res.Time.Sub(ephemeris.TimeFromJulianDay(boundary)).Hours()).To(BeNumerically("<", 12))
			Expect(res.BracketIterations).To(Equal(1))
			Expect(res.BisectionIterations).To(BeNumerically("<=", cfg.MaxBisectionIterations))
		})

		It("should go round the full cycle when already in the target sign", func() {
			res := searcher.NextIngress(ctx, v1alpha1.Sun, v1alpha1.Aries, j2000Time)
			Expect(res.State).To(Equal(StateDone))
			Expect(res.JulianDay).To(BeNumerically("~", ephemeris.J2000+350, 0.5))
		})

		It("should find the current sign's entry when searching backward", func() {
			res := searcher.PreviousIngress(ctx, v1alpha1.Sun, v1alpha1.Aries, j2000Time)
			Expect(res.State).To(Equal(StateDone))
			Expect(res.JulianDay).To(BeNumerically("~", ephemeris.J2000-10, 0.5))
			Expect(res.JulianDay).To(BeNumerically("<", ephemeris.J2000))
		})

		It("should find an earlier sign's entry when searching backward", func() {
			res := searcher.Search(ctx, request(v1alpha1.Pisces, Backward))
			Expect(res.State).To(Equal(StateDone))
			Expect(res.JulianDay).To(BeNumerically("~", ephemeris.J2000-40, 0.5))
		})

		It("should finish after bisection when verification is disabled", func() {
			cfg.Verify = ptr.To(false)
			res := NewSearcher(linearSource{start: 10, rate: 1}, cfg).Search(ctx, request(v1alpha1.Gemini, Forward))
			Expect(res.State).To(Equal(StateDone))
			Expect(res.Trace).To(Equal([]State{StateEstimating, StateBracketing, StateBisecting, StateDone}))
			Expect(res.JulianDay).To(BeNumerically("~", ephemeris.J2000+50, cfg.BisectionToleranceDays))
		})
	})

	Context("with a backwards-moving source", func() {
		It("should find entry into the preceding sign", func() {
			searcher := NewSearcher(linearSource{start: 125, rate: -0.05}, cfg)
			res := searcher.Search(ctx, Request{Planet: v1alpha1.Rahu, Target: v1alpha1.Cancer, Start: j2000Time})
			boundary := ephemeris.J2000 + 100

			Expect(res.State).To(Equal(StateDone))
			Expect(res.Estimate).To(BeNumerically("~", boundary, 1e-6))
			Expect(res.JulianDay).To(BeNumerically("~", boundary, oneHourDay+1e-6))
		})
	})

	Context("when the search cannot converge", func() {
		It("should fall back immediately for a stationary body", func() {
			res := NewSearcher(linearSource{start: 10}, cfg).Search(ctx, request(v1alpha1.Taurus, Forward))
			Expect(res.State).To(Equal(StateFallback))
			Expect(res.Approximate).To(BeTrue())
			Expect(res.Trace).To(Equal([]State{StateEstimating, StateFallback}))
			Expect(res.JulianDay).To(BeNumerically("~", ephemeris.J2000, 1e-6))
		})

		It("should return the estimate when the bracket cap is hit", func() {
			cfg.MaxBracketIterations = 3
			res := NewSearcher(linearSource{start: 10, rate: 1, frozen: true}, cfg).Search(ctx, request(v1alpha1.Taurus, Forward))
			Expect(res.State).To(Equal(StateFallback))
			Expect(res.Approximate).To(BeTrue())
			Expect(res.Trace).To(Equal([]State{StateEstimating, StateBracketing, StateFallback}))
			Expect(res.BracketIterations).To(Equal(3))
			Expect(res.JulianDay).To(Equal(res.Estimate))
			Expect(res.JulianDay).To(BeNumerically("~", ephemeris.J2000+20, 1e-6))
		})
	})

	Context("with the approximator", func() {
		var searcher *Searcher

		BeforeEach(func() {
			searcher = NewSearcher(ephemeris.NewApproximator(), cfg)
		})

		It("should find Saturn's entry into Gemini after J2000", func() {
			res := searcher.NextIngress(ctx, v1alpha1.Saturn, v1alpha1.Gemini, j2000Time)
			Expect(res.State).To(Equal(StateDone))
			Expect(res.JulianDay).To(BeNumerically("~", 2451941.108, 0.5))

			approx := ephemeris.NewApproximator()
			Expect(approx.Position(v1alpha1.Saturn, res.JulianDay).Sign).To(Equal(v1alpha1.Gemini))
			Expect(approx.Position(v1alpha1.Saturn, res.JulianDay-oneHourDay).Sign).To(Equal(v1alpha1.Taurus))
		})

		It("should find Saturn's previous entry into Taurus", func() {
			res := searcher.PreviousIngress(ctx, v1alpha1.Saturn, v1alpha1.Taurus, j2000Time)
			Expect(res.State).To(Equal(StateDone))
			Expect(res.JulianDay).To(BeNumerically("~", 2451111.285, 0.5))
		})

		It("should agree through a cached source", func() {
			cached := ephemeris.NewCachedSource(ephemeris.NewApproximator(), config.DefaultEngineConfig().Ephemeris)
			direct := searcher.NextIngress(ctx, v1alpha1.Saturn, v1alpha1.Gemini, j2000Time)
			viaCache := NewSearcher(cached, cfg).NextIngress(ctx, v1alpha1.Saturn, v1alpha1.Gemini, j2000Time)
			Expect(viaCache.JulianDay).To(BeNumerically("~", direct.JulianDay, oneHourDay))
			Expect(cached.Len()).To(BeNumerically(">", 0))
		})
	})
})

var _ = Describe("machine stages", func() {
	var m *machine

	BeforeEach(func() {
		s := NewSearcher(linearSource{start: 10, rate: 1}, config.DefaultEngineConfig().Transit)
		m = s.newMachine(context.Background(), request(v1alpha1.Taurus, Forward))
	})

	It("should estimate from the mean days per sign", func() {
		Expect(m.estimating()).To(Equal(StateBracketing))
		Expect(m.signDays).To(BeNumerically("~", 30, 1e-9))
		Expect(m.dir).To(Equal(1))
		Expect(m.estimate).To(BeNumerically("~", ephemeris.J2000+20, 1e-6))
	})

	It("should bracket the boundary around the estimate", func() {
		m.estimating()
		Expect(m.bracketing()).To(Equal(StateBisecting))
		Expect(m.reached(m.lo)).To(BeFalse())
		Expect(m.reached(m.hi)).To(BeTrue())
		Expect(m.hi - m.lo).To(BeNumerically("~", 2*0.45*30, 1e-9))
	})

	It("should narrow the bracket below the tolerance", func() {
		m.estimating()
		m.bracketing()
		Expect(m.bisecting()).To(Equal(StateVerifying))
		Expect(m.hi - m.lo).To(BeNumerically("<", m.cfg.BisectionToleranceDays))
		Expect(m.result).To(Equal(m.hi))
	})

	It("should locate a crossing by scanning", func() {
		m.estimating()
		at, ok := m.scanCrossing(ephemeris.J2000+19, ephemeris.J2000+21, oneHourDay)
		Expect(ok).To(BeTrue())
		Expect(at).To(BeNumerically("~", ephemeris.J2000+20, oneHourDay))

		_, ok = m.scanCrossing(ephemeris.J2000+21, ephemeris.J2000+22, oneHourDay)
		Expect(ok).To(BeFalse())
	})

	It("should measure signed offsets along the motion", func() {
		m.dir = 1
		Expect(m.offset(v1alpha1.Taurus)).To(Equal(0))
		Expect(m.offset(v1alpha1.Aries)).To(Equal(-1))
		Expect(m.offset(v1alpha1.Gemini)).To(Equal(1))
		Expect(m.offset(v1alpha1.Scorpio)).To(Equal(6))
		Expect(m.offset(v1alpha1.Sagittarius)).To(Equal(-5))
		m.dir = -1
		Expect(m.offset(v1alpha1.Aries)).To(Equal(1))
	})
})
