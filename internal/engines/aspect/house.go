package aspect

import (
	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/config"
	"github.com/llm-d/llm-d-graha-engine/internal/utils/nature"
)

// HouseCaster applies whole-house aspects: every planet aspects the 7th house
// from itself, plus the special distances of Mars, Jupiter and Saturn.
type HouseCaster struct {
	cfg     config.AspectConfig
	natures nature.NatureConfig
}

var _ Caster = (*HouseCaster)(nil)

// NewHouseCaster creates a HouseCaster.
func NewHouseCaster(cfg config.AspectConfig, natures nature.NatureConfig) *HouseCaster {
	return &HouseCaster{cfg: cfg, natures: natures}
}

func (c *HouseCaster) Cast(chart *v1alpha1.Chart) []v1alpha1.Aspect {
	if chart == nil {
		return nil
	}
	var aspects []v1alpha1.Aspect
	for _, src := range chart.Points {
		for _, tgt := range chart.Points {
			if src.Planet == tgt.Planet {
				continue
			}
			distance := v1alpha1.HouseDistance(src.House, tgt.House)
			if !Casts(src.Planet, distance) {
				continue
			}
			label := Ordinal(distance)
			aspects = append(aspects, v1alpha1.Aspect{
				Source:        src.Planet,
				Target:        tgt.Planet,
				HouseDistance: distance,
				Label:         label,
				Strength:      c.cfg.LabelStrength(label),
				Nature:        nature.GetPlanetNature(src.Planet, c.natures),
			})
		}
	}
	return aspects
}

// HouseAspectsOf returns the houses point aspects, whether occupied or not, in
// ascending distance.
func (c *HouseCaster) HouseAspectsOf(point v1alpha1.ChartPoint) []v1alpha1.HouseAspect {
	distances := AspectedDistances(point.Planet)
	out := make([]v1alpha1.HouseAspect, 0, len(distances))
	for _, d := range distances {
		label := Ordinal(d)
		out = append(out, v1alpha1.HouseAspect{
			Source:        point.Planet,
			House:         v1alpha1.NormalizeHouse(point.House + d - 1),
			HouseDistance: d,
			Label:         label,
			Strength:      c.cfg.LabelStrength(label),
			Nature:        nature.GetPlanetNature(point.Planet, c.natures),
		})
	}
	return out
}

// HouseAspects returns HouseAspectsOf for every point of chart.
func (c *HouseCaster) HouseAspects(chart *v1alpha1.Chart) []v1alpha1.HouseAspect {
	if chart == nil {
		return nil
	}
	var out []v1alpha1.HouseAspect
	for _, p := range chart.Points {
		out = append(out, c.HouseAspectsOf(p)...)
	}
	return out
}
