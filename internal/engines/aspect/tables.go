package aspect

import (
	"fmt"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/config"
)

// universalDistance is the house distance every planet aspects.
const universalDistance = 7

// specialDistances are the additional house distances a planet aspects.
var specialDistances = [v1alpha1.PlanetCount][]int{
	v1alpha1.Mars:    {4, 8},
	v1alpha1.Jupiter: {5, 9},
	v1alpha1.Saturn:  {3, 10},
}

type orbBand int

const (
	bandTight orbBand = iota
	bandStandard
	bandWide
)

func (b orbBand) degrees(orbs config.OrbBands) float64 {
	switch b {
	case bandTight:
		return orbs.Tight
	case bandWide:
		return orbs.Wide
	default:
		return orbs.Standard
	}
}

// orbRule is one aspect angle a planet casts, with its tolerance class.
type orbRule struct {
	angle float64
	band  orbBand
}

// orbRules lists the angles each planet casts in ascending order. Special
// aspects are tight; the opposition is wide for the slow bodies.
var orbRules = [v1alpha1.PlanetCount][]orbRule{
	v1alpha1.Sun:     {{180, bandStandard}},
	v1alpha1.Moon:    {{180, bandStandard}},
	v1alpha1.Mars:    {{90, bandTight}, {180, bandStandard}, {210, bandTight}},
	v1alpha1.Mercury: {{180, bandStandard}},
	v1alpha1.Jupiter: {{120, bandTight}, {180, bandWide}, {240, bandTight}},
	v1alpha1.Venus:   {{180, bandStandard}},
	v1alpha1.Saturn:  {{60, bandTight}, {180, bandWide}, {270, bandTight}},
	v1alpha1.Rahu:    {{180, bandWide}},
	v1alpha1.Ketu:    {{180, bandWide}},
}

// angleLabels maps an aspect angle to the house label it corresponds to.
var angleLabels = map[float64]string{
	60:  config.Label3rd,
	90:  config.Label4th,
	120: config.Label5th,
	180: config.Label7th,
	210: config.Label8th,
	240: config.Label9th,
	270: config.Label10th,
}

// AspectedDistances returns the house distances planet aspects, ascending.
func AspectedDistances(planet v1alpha1.Planet) []int {
	if !planet.IsValid() {
		return nil
	}
	special := specialDistances[planet]
	out := make([]int, 0, len(special)+1)
	added := false
	for _, d := range special {
		if !added && d > universalDistance {
			out = append(out, universalDistance)
			added = true
		}
		out = append(out, d)
	}
	if !added {
		out = append(out, universalDistance)
	}
	return out
}

// Casts reports whether planet aspects the house at distance (1..12).
func Casts(planet v1alpha1.Planet, distance int) bool {
	for _, d := range AspectedDistances(planet) {
		if d == distance {
			return true
		}
	}
	return false
}

// Ordinal renders a house distance as its label, e.g. 7 -> "7th".
func Ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
