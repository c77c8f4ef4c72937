package nature

import (
	"fmt"
	"strings"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
)

// GetPlanetNature returns the nature of planet under config. Unknown planets and
// planets absent from every list are Neutral.
func GetPlanetNature(planet v1alpha1.Planet, config NatureConfig) v1alpha1.Nature {
	if !planet.IsValid() {
		return v1alpha1.Neutral
	}
	return matchPlanetName(planet.String(), config)
}

// matchPlanetName matches a planet name against the config's nature lists, ignoring case.
func matchPlanetName(name string, config NatureConfig) v1alpha1.Nature {
	for _, v := range config.BeneficPlanets {
		if strings.EqualFold(name, v) {
			return v1alpha1.Benefic
		}
	}
	for _, v := range config.MaleficPlanets {
		if strings.EqualFold(name, v) {
			return v1alpha1.Malefic
		}
	}
	return v1alpha1.Neutral
}

// Validate rejects unknown planet names and planets listed under more than one nature.
func (c NatureConfig) Validate() error {
	seen := make(map[string]string, v1alpha1.PlanetCount)
	lists := []struct {
		nature string
		names  []string
	}{
		{string(v1alpha1.Benefic), c.BeneficPlanets},
		{string(v1alpha1.Malefic), c.MaleficPlanets},
		{string(v1alpha1.Neutral), c.NeutralPlanets},
	}
	for _, l := range lists {
		for _, name := range l.names {
			planet, err := v1alpha1.ParsePlanet(name)
			if err != nil {
				return fmt.Errorf("invalid %s planet: %w", l.nature, err)
			}
			if prev, ok := seen[planet.String()]; ok {
				return fmt.Errorf("planet %s listed as both %s and %s", planet, prev, l.nature)
			}
			seen[planet.String()] = l.nature
		}
	}
	return nil
}
