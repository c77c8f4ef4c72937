package aspect

import (
	"math"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/config"
	"github.com/llm-d/llm-d-graha-engine/internal/utils/nature"
)

// OrbCaster applies aspects by longitude separation. A planet's special angles
// use the tight band; the opposition uses the standard or wide band.
type OrbCaster struct {
	cfg     config.AspectConfig
	natures nature.NatureConfig
}

var _ Caster = (*OrbCaster)(nil)

// NewOrbCaster creates an OrbCaster.
func NewOrbCaster(cfg config.AspectConfig, natures nature.NatureConfig) *OrbCaster {
	return &OrbCaster{cfg: cfg, natures: natures}
}

func (c *OrbCaster) Cast(chart *v1alpha1.Chart) []v1alpha1.Aspect {
	if chart == nil {
		return nil
	}
	var aspects []v1alpha1.Aspect
	for _, src := range chart.Points {
		for _, tgt := range chart.Points {
			if src.Planet == tgt.Planet {
				continue
			}
			if a, ok := c.Between(src, tgt); ok {
				aspects = append(aspects, a)
			}
		}
	}
	return aspects
}

// Between returns the closest aspect src casts on tgt, if any falls within orb.
func (c *OrbCaster) Between(src, tgt v1alpha1.ChartPoint) (v1alpha1.Aspect, bool) {
	if !src.Planet.IsValid() || src.Planet == tgt.Planet {
		return v1alpha1.Aspect{}, false
	}
	var (
		best  v1alpha1.Aspect
		found bool
	)
	for _, rule := range orbRules[src.Planet] {
		orb := math.Abs(Separation(src.Longitude, tgt.Longitude, rule.angle) - rule.angle)
		maxOrb := rule.band.degrees(c.cfg.Orbs)
		if orb > maxOrb || (found && orb >= best.Orb) {
			continue
		}
		label := angleLabels[rule.angle]
		best = v1alpha1.Aspect{
			Source:        src.Planet,
			Target:        tgt.Planet,
			HouseDistance: v1alpha1.HouseDistance(src.House, tgt.House),
			Label:         label,
			Angle:         rule.angle,
			Orb:           orb,
			MaxOrb:        maxOrb,
			Strength:      c.cfg.LabelStrength(label),
			Nature:        nature.GetPlanetNature(src.Planet, c.natures),
		}
		found = true
	}
	return best, found
}

// Separation is the angle from src to tgt compared against angle. Angles up to
// 180 use the minimal separation; larger angles use the forward separation
// from src so that the 8th, 9th and 10th aspects stay directional.
func Separation(src, tgt, angle float64) float64 {
	if angle > 180 {
		return v1alpha1.NormalizeLongitude(tgt - src)
	}
	return MinSeparation(src, tgt)
}

// MinSeparation is the shorter arc between two longitudes, in [0,180].
func MinSeparation(a, b float64) float64 {
	d := v1alpha1.NormalizeLongitude(b - a)
	return math.Min(d, v1alpha1.FullCircle-d)
}
