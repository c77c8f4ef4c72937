package strength

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/config"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/aspect"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/dignity"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/houselord"
	"github.com/llm-d/llm-d-graha-engine/internal/utils/nature"
)

const (
	// Midpoint is the value of a missing or unusable sub-factor.
	Midpoint = 50.0

	MinScore = 0.0
	MaxScore = 100.0

	// VargottamaBonus is the vargottama component of a vargottama planet.
	VargottamaBonus = 100.0
)

// Factors are the sub-scores of a composite. A nil sub-score is missing and
// counts as the midpoint.
type Factors struct {
	Dignity     *float64
	House       *float64
	Aspect      *float64
	Conjunction *float64
	Vargottama  *float64

	Retrograde       bool
	SevereCombustion bool
}

// Scorer combines sub-scores into a bounded composite and assembles the
// sub-scores of chart points from the other engines. It is safe for
// concurrent use.
type Scorer struct {
	weights     []float64
	adjustments config.Adjustments
	retrograde  bool
	natures     nature.NatureConfig
	orbs        *aspect.OrbCaster
}

// NewScorer creates a Scorer from the engine configuration.
func NewScorer(cfg config.EngineConfig, natures nature.NatureConfig) *Scorer {
	return &Scorer{
		weights:     cfg.Weights.Vector(),
		adjustments: cfg.Adjustments,
		retrograde:  cfg.RetrogradeEnabled(),
		natures:     natures,
		orbs:        aspect.NewOrbCaster(cfg.Aspects, natures),
	}
}

// Score computes the weighted composite of f. It never fails; the total is
// always within [0,100].
func (s *Scorer) Score(f Factors) v1alpha1.StrengthResult {
	c := v1alpha1.StrengthComponents{
		Dignity:     component(f.Dignity),
		House:       component(f.House),
		Aspect:      component(f.Aspect),
		Conjunction: component(f.Conjunction),
		Vargottama:  component(f.Vargottama),
	}
	total := floats.Dot(s.weights, []float64{c.Dignity, c.House, c.Aspect, c.Conjunction, c.Vargottama})
	if f.Retrograde && s.retrograde {
		total *= s.adjustments.RetrogradeMultiplier
	}
	if f.SevereCombustion {
		total *= s.adjustments.SevereCombustionMultiplier
	}
	total = Clamp(total)
	return v1alpha1.StrengthResult{
		Total:      total,
		Grade:      GradeFor(total),
		Components: c,
	}
}

// component resolves a sub-score: missing and NaN values become the midpoint
// and everything else is clamped.
func component(v *float64) float64 {
	x := ptr.Deref(v, Midpoint)
	if math.IsNaN(x) {
		return Midpoint
	}
	return Clamp(x)
}

// Clamp bounds v to [0,100]. NaN becomes the midpoint.
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return Midpoint
	}
	return math.Max(MinScore, math.Min(MaxScore, v))
}

// GradeFor returns the grade band of a score.
func GradeFor(score float64) v1alpha1.Grade {
	switch {
	case score >= 80:
		return v1alpha1.GradeExcellent
	case score >= 70:
		return v1alpha1.GradeVeryGood
	case score >= 60:
		return v1alpha1.GradeGood
	case score >= 50:
		return v1alpha1.GradeAverage
	case score >= 40:
		return v1alpha1.GradeBelowAverage
	case score >= 30:
		return v1alpha1.GradeWeak
	default:
		return v1alpha1.GradeVeryWeak
	}
}

// HouseComponent is the base strength of the category of house.
func HouseComponent(house int) float64 {
	return houselord.CategoryStrength(house)
}

// VargottamaComponent is the bonus for a vargottama planet, else the midpoint.
func VargottamaComponent(vargottama bool) float64 {
	if vargottama {
		return VargottamaBonus
	}
	return Midpoint
}

// AspectComponent converts received aspects into a sub-score. Each aspect
// contributes its strength scaled by its closeness and by the casting planet's
// own strength; benefic contributions add and malefic ones subtract.
// sourceStrength reports the strength of a casting planet, false if unknown.
func (s *Scorer) AspectComponent(received []v1alpha1.Aspect, sourceStrength func(v1alpha1.Planet) (float64, bool)) float64 {
	var benefic, malefic []float64
	for _, a := range received {
		src := Midpoint
		if sourceStrength != nil {
			if v, ok := sourceStrength(a.Source); ok {
				src = Clamp(v)
			}
		}
		power := a.Strength * a.Closeness() * src / MaxScore
		switch a.Nature {
		case v1alpha1.Benefic:
			benefic = append(benefic, power)
		case v1alpha1.Malefic:
			malefic = append(malefic, power)
		}
	}
	influence := floats.Sum(benefic) - floats.Sum(malefic)
	return Clamp(Midpoint + s.adjustments.AspectInfluenceScale*influence)
}

// ConjunctionComponent scores the planets sharing point's house. A benefic adds
// and a malefic subtracts up to ConjunctionPoints, falling to nothing at
// ConjunctionOrb.
func (s *Scorer) ConjunctionComponent(chart *v1alpha1.Chart, point v1alpha1.ChartPoint) float64 {
	score := Midpoint
	orb := s.adjustments.ConjunctionOrb
	for _, other := range chart.Occupants(point.House) {
		if other.Planet == point.Planet {
			continue
		}
		sep := aspect.MinSeparation(point.Longitude, other.Longitude)
		if sep >= orb {
			continue
		}
		closeness := 1 - sep/orb
		switch nature.GetPlanetNature(other.Planet, s.natures) {
		case v1alpha1.Benefic:
			score += s.adjustments.ConjunctionPoints * closeness
		case v1alpha1.Malefic:
			score -= s.adjustments.ConjunctionPoints * closeness
		}
	}
	return Clamp(score)
}

// IsSevereCombustion reports whether point is combust and within the severe
// orb of the Sun in chart.
func (s *Scorer) IsSevereCombustion(chart *v1alpha1.Chart, point v1alpha1.ChartPoint) bool {
	if !point.Combust || point.Planet == v1alpha1.Sun {
		return false
	}
	sun, ok := chart.Point(v1alpha1.Sun)
	if !ok {
		return false
	}
	return aspect.MinSeparation(point.Longitude, sun.Longitude) <= s.adjustments.SevereCombustionOrb
}

// FactorsFor assembles the sub-scores of point from its dignity, house, the
// aspects it receives and its conjunctions.
func (s *Scorer) FactorsFor(chart *v1alpha1.Chart, point v1alpha1.ChartPoint) Factors {
	dig := dignity.EvaluatePoint(point)
	received := aspect.Received(s.orbs.Cast(chart), point.Planet)
	sourceStrength := func(p v1alpha1.Planet) (float64, bool) {
		src, ok := chart.Point(p)
		if !ok {
			return 0, false
		}
		return dignity.EvaluatePoint(src).Strength, true
	}
	return Factors{
		Dignity:          ptr.To(dig.Strength),
		House:            ptr.To(HouseComponent(point.House)),
		Aspect:           ptr.To(s.AspectComponent(received, sourceStrength)),
		Conjunction:      ptr.To(s.ConjunctionComponent(chart, point)),
		Vargottama:       ptr.To(VargottamaComponent(dig.Flags.Vargottama)),
		Retrograde:       point.Retrograde,
		SevereCombustion: s.IsSevereCombustion(chart, point),
	}
}

// ScorePlanet scores planet's placement in chart. A planet missing from the
// chart is a data-integrity error.
func (s *Scorer) ScorePlanet(chart *v1alpha1.Chart, planet v1alpha1.Planet) (v1alpha1.StrengthResult, error) {
	point, err := chart.RequirePoint(planet)
	if err != nil {
		return v1alpha1.StrengthResult{}, fmt.Errorf("scoring %s: %w", planet, err)
	}
	return s.Score(s.FactorsFor(chart, point)), nil
}

// ScoreHouseLord scores the lord of a resolved house, using the lord's placement
// strength relative to the house it rules as the house component.
func (s *Scorer) ScoreHouseLord(chart *v1alpha1.Chart, placement v1alpha1.HouseLordPlacement) (v1alpha1.StrengthResult, error) {
	point, err := chart.RequirePoint(placement.Lord)
	if err != nil {
		return v1alpha1.StrengthResult{}, fmt.Errorf("scoring lord of house %d: %w", placement.House, err)
	}
	f := s.FactorsFor(chart, point)
	f.House = ptr.To(placement.PlacementStrength)
	return s.Score(f), nil
}
