package strength

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/houselord"
)

var _ = Describe("Scorer on charts", func() {
	var scorer *Scorer

	BeforeEach(func() {
		scorer = newTestScorer()
	})

	Context("with a combust Mercury beside an exalted Sun", func() {
		var chart *v1alpha1.Chart

		BeforeEach(func() {
			chart = &v1alpha1.Chart{
				Ascendant: v1alpha1.NewAscendant(2),
				Points: []v1alpha1.ChartPoint{
					v1alpha1.NewChartPoint(v1alpha1.Sun, 10, 1, false, false),
					v1alpha1.NewChartPoint(v1alpha1.Mercury, 12, 1, false, true),
				},
			}
		})

		It("should score the Sun from its dignity and house", func() {
			res, err := scorer.ScorePlanet(chart, v1alpha1.Sun)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Components).To(Equal(v1alpha1.StrengthComponents{
				Dignity: 100, House: 85, Aspect: 50, Conjunction: 50, Vargottama: 50,
			}))
			Expect(res.Total).To(BeNumerically("~", 77, 1e-9))
			Expect(res.Grade).To(Equal(v1alpha1.GradeVeryGood))
		})

		It("should halve Mercury for severe combustion", func() {
			mercury, _ := chart.Point(v1alpha1.Mercury)
			Expect(scorer.IsSevereCombustion(chart, mercury)).To(BeTrue())

			res, err := scorer.ScorePlanet(chart, v1alpha1.Mercury)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Components.Dignity).To(Equal(55.0))
			Expect(res.Components.Conjunction).To(BeNumerically("~", 38, 1e-9))
			Expect(res.Total).To(BeNumerically("~", 57.8/2, 1e-9))
			Expect(res.Grade).To(Equal(v1alpha1.GradeVeryWeak))
		})

		It("should not treat a distant combust planet as severe", func() {
			far := v1alpha1.NewChartPoint(v1alpha1.Venus, 18, 1, false, true)
			Expect(scorer.IsSevereCombustion(chart, far)).To(BeFalse())
		})

		It("should fail for a planet missing from the chart", func() {
			_, err := scorer.ScorePlanet(chart, v1alpha1.Saturn)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, v1alpha1.ErrMissingPlanet)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("Saturn"))
		})
	})

	Context("with a debilitated lagna lord", func() {
		var chart *v1alpha1.Chart

		BeforeEach(func() {
			chart = &v1alpha1.Chart{
				Ascendant: v1alpha1.NewAscendant(5),
				Points: []v1alpha1.ChartPoint{
					v1alpha1.NewChartPoint(v1alpha1.Mars, 100, 4, false, false),
				},
			}
		})

		It("should use the placement strength for the house component", func() {
			lord, err := houselord.LagnaLord(chart)
			Expect(err).NotTo(HaveOccurred())

			res, err := scorer.ScoreHouseLord(chart, lord)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Components.House).To(Equal(75.0))
			Expect(res.Total).To(BeNumerically("~", 43, 1e-9))
			Expect(res.Grade).To(Equal(v1alpha1.GradeBelowAverage))

			plain, err := scorer.ScorePlanet(chart, v1alpha1.Mars)
			Expect(err).NotTo(HaveOccurred())
			Expect(plain.Components.House).To(Equal(85.0))
			Expect(plain.Total).To(BeNumerically("~", 45, 1e-9))
		})
	})
})
