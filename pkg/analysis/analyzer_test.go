package analysis

import (
	"context"
	"errors"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/config"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/aspect"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/common"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/ephemeris"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/houselord"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/sadesati"
	"github.com/llm-d/llm-d-graha-engine/internal/utils/nature"
)

// fullChart has an Aries ascendant with whole-sign houses.
func fullChart() *v1alpha1.Chart {
	return &v1alpha1.Chart{
		Ascendant: v1alpha1.NewAscendant(5),
		Points: []v1alpha1.ChartPoint{
			v1alpha1.NewChartPoint(v1alpha1.Sun, 10, 1, false, false),
			v1alpha1.NewChartPoint(v1alpha1.Moon, 45, 2, false, false),
			v1alpha1.NewChartPoint(v1alpha1.Mars, 100, 4, false, false),
			v1alpha1.NewChartPoint(v1alpha1.Mercury, 20, 1, true, false),
			v1alpha1.NewChartPoint(v1alpha1.Jupiter, 95, 4, false, false),
			v1alpha1.NewChartPoint(v1alpha1.Venus, 335, 12, false, false),
			v1alpha1.NewChartPoint(v1alpha1.Saturn, 200, 7, false, false),
			v1alpha1.NewChartPoint(v1alpha1.Rahu, 150, 6, true, false),
			v1alpha1.NewChartPoint(v1alpha1.Ketu, 330, 12, true, false),
		},
	}
}

var _ = ginkgo.Describe("Analyzer", func() {
	var (
		analyzer *Analyzer
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		analyzer = NewAnalyzer(common.NewGlobalConfig(nil), nil, nature.DefaultNatureConfig())
	})

	ginkgo.Context("with a complete chart", func() {
		var report *Report

		ginkgo.BeforeEach(func() {
			var err error
			report, err = analyzer.Analyze(ctx, fullChart(), Options{})
			Expect(err).NotTo(HaveOccurred())
		})

		ginkgo.It("should resolve a debilitated lagna lord in the 4th", func() {
			Expect(report.Ascendant).To(Equal(v1alpha1.Aries))
			Expect(report.LagnaLord.Lord).To(Equal(v1alpha1.Mars))
			Expect(report.LagnaLord.HouseDistance).To(Equal(4))
			Expect(report.LagnaLord.Dignity.Type).To(Equal(v1alpha1.DignityDebilitated))
			Expect(report.LagnaStrength).To(Equal(report.Houses[0].LordStrength))
		})

		ginkgo.It("should report every planet and house with bounded strengths", func() {
			Expect(report.Planets).To(HaveLen(v1alpha1.PlanetCount))
			Expect(report.Houses).To(HaveLen(v1alpha1.HouseCount))
			for _, p := range report.Planets {
				Expect(p.Strength.Total).To(BeNumerically(">=", 0))
				Expect(p.Strength.Total).To(BeNumerically("<=", 100))
				Expect(p.Strength.Grade).NotTo(BeEmpty())
			}
			for i, h := range report.Houses {
				Expect(h.House).To(Equal(i + 1))
				Expect(h.Sign).To(Equal(v1alpha1.Aries.Add(i)))
				Expect(h.LordStrength.Total).To(BeNumerically(">=", 0))
				Expect(h.LordStrength.Total).To(BeNumerically("<=", 100))
			}
		})

		ginkgo.It("should list occupants, categories and rulerships", func() {
			Expect(report.Houses[3].Occupants).To(Equal([]v1alpha1.Planet{v1alpha1.Mars, v1alpha1.Jupiter}))
			Expect(report.Houses[3].Category).To(Equal(houselord.Kendra))
			Expect(report.Houses[4].Category).To(Equal(houselord.Trikona))
			Expect(report.Houses[1].Occupants).To(Equal([]v1alpha1.Planet{v1alpha1.Moon}))
			Expect(report.Planets[2].Point.Planet).To(Equal(v1alpha1.Mars))
			Expect(report.Planets[2].HousesRuled).To(Equal([]int{1, 8}))
			Expect(report.Planets[7].HousesRuled).To(BeEmpty())
		})

		ginkgo.It("should derive the aspect views", func() {
			Expect(report.Aspects).NotTo(BeEmpty())
			for _, a := range report.Significant {
				Expect(a.Strength).To(BeNumerically(">=", 5))
			}
			Expect(report.Mutual).To(ContainElements(
				aspect.MutualPair{First: v1alpha1.Sun, Second: v1alpha1.Saturn, FirstLabel: "7th", SecondLabel: "7th"},
				aspect.MutualPair{First: v1alpha1.Mars, Second: v1alpha1.Saturn, FirstLabel: "4th", SecondLabel: "10th"},
			))
			Expect(report.Summaries).To(HaveKey(v1alpha1.Saturn))

			sources := make([]v1alpha1.Planet, 0)
			for _, ha := range report.Houses[0].Incoming {
				sources = append(sources, ha.Source)
			}
			Expect(sources).To(ContainElement(v1alpha1.Saturn))
		})

		ginkgo.It("should skip Sade Sati without an instant", func() {
			Expect(report.SadeSati).To(BeNil())
		})
	})

	ginkgo.It("should evaluate Sade Sati at the requested instant", func() {
		report, err := analyzer.Analyze(ctx, fullChart(), Options{At: ephemeris.TimeFromJulianDay(ephemeris.J2000)})
		Expect(err).NotTo(HaveOccurred())
		Expect(report.SadeSati).NotTo(BeNil())
		Expect(report.SadeSati.Active).To(BeTrue())
		Expect(report.SadeSati.Phase).To(Equal(sadesati.PhasePeak))
		Expect(report.SadeSati.Timeline).To(HaveLen(4))
	})

	ginkgo.It("should apply a named scoring profile", func() {
		global := common.NewGlobalConfig(nil)
		global.UpdateProfiles(config.ProfileData{
			"dignity-only": config.EngineConfig{
				Weights: config.StrengthWeights{Dignity: 1, House: 0, Aspect: 0, Conjunction: 0, Vargottama: 0},
			},
		})
		a := NewAnalyzer(global, nil, nature.DefaultNatureConfig())

		report, err := a.Analyze(ctx, fullChart(), Options{Profile: "dignity-only"})
		Expect(err).NotTo(HaveOccurred())
		sun := report.Planets[0]
		Expect(sun.Dignity.Type).To(Equal(v1alpha1.DignityDeepExaltation))
		Expect(sun.Strength.Total).To(BeNumerically("~", 100, 1e-9))
	})

	ginkgo.It("should abort on a chart without an ascendant", func() {
		chart := fullChart()
		chart.Ascendant = nil
		_, err := analyzer.Analyze(ctx, chart, Options{})
		Expect(errors.Is(err, v1alpha1.ErrMissingAscendant)).To(BeTrue())
	})

	ginkgo.It("should abort when a house lord is missing", func() {
		chart := fullChart()
		chart.Points = chart.Points[:5]
		_, err := analyzer.Analyze(ctx, chart, Options{})
		Expect(errors.Is(err, v1alpha1.ErrUnresolvableRuler)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("Venus"))
	})
})
