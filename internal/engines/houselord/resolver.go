package houselord

import (
	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/dignity"
)

// Resolve locates the lord of house in chart. A missing ascendant or a lord with
// no placement is a data-integrity error.
func Resolve(chart *v1alpha1.Chart, house int) (v1alpha1.HouseLordPlacement, error) {
	if chart == nil || chart.Ascendant == nil {
		return v1alpha1.HouseLordPlacement{}, &v1alpha1.ChartError{Kind: v1alpha1.ErrMissingAscendant, Entity: "ascendant"}
	}
	if house < 1 || house > v1alpha1.HouseCount {
		return v1alpha1.HouseLordPlacement{}, v1alpha1.NewChartError(v1alpha1.ErrInvalidPlacement,
			"house", "house %d out of range", house)
	}

	sign := chart.HouseSign(house)
	lord := sign.Lord()
	point, ok := chart.Point(lord)
	if !ok {
		return v1alpha1.HouseLordPlacement{}, v1alpha1.NewChartError(v1alpha1.ErrUnresolvableRuler,
			lord.String(), "lord of house %d (%s) has no placement", house, sign)
	}

	distance := v1alpha1.HouseDistance(house, point.House)
	placement := PlacementFor(distance)
	return v1alpha1.HouseLordPlacement{
		House:             house,
		RuledSign:         sign,
		Lord:              lord,
		OccupiedHouse:     point.House,
		HouseDistance:     distance,
		PlacementType:     placement.Type,
		PlacementStrength: placement.Strength,
		Dignity:           dignity.EvaluatePoint(point),
	}, nil
}

// ResolveAll resolves the lords of houses 1 through 12, stopping at the first
// data-integrity error.
func ResolveAll(chart *v1alpha1.Chart) ([]v1alpha1.HouseLordPlacement, error) {
	out := make([]v1alpha1.HouseLordPlacement, 0, v1alpha1.HouseCount)
	for house := 1; house <= v1alpha1.HouseCount; house++ {
		p, err := Resolve(chart, house)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// LagnaLord resolves the lord of the ascendant.
func LagnaLord(chart *v1alpha1.Chart) (v1alpha1.HouseLordPlacement, error) {
	return Resolve(chart, 1)
}

// HousesRuledBy returns the houses whose sign planet rules, ascending.
func HousesRuledBy(chart *v1alpha1.Chart, planet v1alpha1.Planet) []int {
	if chart == nil || chart.Ascendant == nil {
		return nil
	}
	var out []int
	for house := 1; house <= v1alpha1.HouseCount; house++ {
		if chart.HouseSign(house).Lord() == planet {
			out = append(out, house)
		}
	}
	return out
}
