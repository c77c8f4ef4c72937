// Package nature classifies planets as benefic, malefic or neutral. The
// classification is a lookup against configurable planet name lists so callers
// can override the traditional grouping.
package nature

import "github.com/llm-d/llm-d-graha-engine/api/v1alpha1"

// NatureConfig lists planet names per nature. A planet missing from every list
// is Neutral.
type NatureConfig struct {
	// BeneficPlanets are planet names whose aspects support.
	BeneficPlanets []string `yaml:"benefic,omitempty" json:"benefic,omitempty"`
	// MaleficPlanets are planet names whose aspects afflict.
	MaleficPlanets []string `yaml:"malefic,omitempty" json:"malefic,omitempty"`
	// NeutralPlanets are listed for completeness; they match before the fallback.
	NeutralPlanets []string `yaml:"neutral,omitempty" json:"neutral,omitempty"`
}

// DefaultNatureConfig returns the traditional grouping: Moon, Jupiter and Venus
// are benefic; Mercury is neutral; the rest are malefic.
func DefaultNatureConfig() NatureConfig {
	return NatureConfig{
		BeneficPlanets: []string{
			v1alpha1.Moon.String(),
			v1alpha1.Jupiter.String(),
			v1alpha1.Venus.String(),
		},
		MaleficPlanets: []string{
			v1alpha1.Sun.String(),
			v1alpha1.Mars.String(),
			v1alpha1.Saturn.String(),
			v1alpha1.Rahu.String(),
			v1alpha1.Ketu.String(),
		},
		NeutralPlanets: []string{v1alpha1.Mercury.String()},
	}
}
