package nature

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
)

var _ = Describe("GetPlanetNature", func() {
	var defaultConfig NatureConfig

	BeforeEach(func() {
		defaultConfig = DefaultNatureConfig()
	})

	Context("with the default config", func() {
		DescribeTable("should classify each planet",
			func(planet v1alpha1.Planet, expected v1alpha1.Nature) {
				Expect(GetPlanetNature(planet, defaultConfig)).To(Equal(expected))
			},
			Entry("Sun", v1alpha1.Sun, v1alpha1.Malefic),
			Entry("Moon", v1alpha1.Moon, v1alpha1.Benefic),
			Entry("Mars", v1alpha1.Mars, v1alpha1.Malefic),
			Entry("Mercury", v1alpha1.Mercury, v1alpha1.Neutral),
			Entry("Jupiter", v1alpha1.Jupiter, v1alpha1.Benefic),
			Entry("Venus", v1alpha1.Venus, v1alpha1.Benefic),
			Entry("Saturn", v1alpha1.Saturn, v1alpha1.Malefic),
			Entry("Rahu", v1alpha1.Rahu, v1alpha1.Malefic),
			Entry("Ketu", v1alpha1.Ketu, v1alpha1.Malefic),
		)

		It("should return neutral for an invalid planet", func() {
			Expect(GetPlanetNature(v1alpha1.Planet(42), defaultConfig)).To(Equal(v1alpha1.Neutral))
		})

		It("should validate", func() {
			Expect(defaultConfig.Validate()).To(Succeed())
		})
	})

	Context("with a custom config", func() {
		It("should honour overrides", func() {
			config := NatureConfig{
				BeneficPlanets: []string{"mercury"},
				MaleficPlanets: []string{"MOON"},
			}
			Expect(GetPlanetNature(v1alpha1.Mercury, config)).To(Equal(v1alpha1.Benefic))
			Expect(GetPlanetNature(v1alpha1.Moon, config)).To(Equal(v1alpha1.Malefic))
			Expect(GetPlanetNature(v1alpha1.Jupiter, config)).To(Equal(v1alpha1.Neutral))
		})

		It("should treat everything as neutral with an empty config", func() {
			for _, p := range v1alpha1.Planets {
				Expect(GetPlanetNature(p, NatureConfig{})).To(Equal(v1alpha1.Neutral))
			}
		})

		It("should reject a planet listed twice", func() {
			config := NatureConfig{
				BeneficPlanets: []string{"Venus"},
				MaleficPlanets: []string{"Venus"},
			}
			Expect(config.Validate()).To(MatchError(ContainSubstring("listed as both")))
		})

		It("should reject unknown names", func() {
			config := NatureConfig{NeutralPlanets: []string{"Pluto"}}
			Expect(config.Validate()).To(HaveOccurred())
		})
	})
})
