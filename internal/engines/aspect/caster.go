package aspect

import (
	"fmt"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/config"
	"github.com/llm-d/llm-d-graha-engine/internal/utils/nature"
)

// Caster computes the directional aspects between the points of a chart.
type Caster interface {
	// Cast returns every aspect between distinct points, ordered by source then
	// target as they appear in the chart.
	Cast(chart *v1alpha1.Chart) []v1alpha1.Aspect
}

// CasterStrategy is an enumeration of the aspect casting rules.
type CasterStrategy int

// enumeration of CasterStrategy
const (
	// HouseStrategy aspects whole houses by house distance.
	HouseStrategy CasterStrategy = iota
	// OrbStrategy aspects by longitude separation within an orb.
	OrbStrategy
)

func (s CasterStrategy) String() string {
	switch s {
	case HouseStrategy:
		return "house"
	case OrbStrategy:
		return "orb"
	default:
		return fmt.Sprintf("CasterStrategy(%d)", int(s))
	}
}

// NewCaster is a factory that creates a Caster for the provided strategy.
func NewCaster(strategy CasterStrategy, cfg config.AspectConfig, natures nature.NatureConfig) (Caster, error) {
	switch strategy {
	case HouseStrategy:
		return NewHouseCaster(cfg, natures), nil
	case OrbStrategy:
		return NewOrbCaster(cfg, natures), nil
	default:
		return nil, fmt.Errorf("unsupported caster strategy: %v", strategy)
	}
}
