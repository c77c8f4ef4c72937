package v1alpha1

import (
	"math"
)

const (
	// DegreesPerSign is the angular width of a zodiac sign.
	DegreesPerSign = 30.0
	// FullCircle is the number of degrees in the zodiac.
	FullCircle = 360.0
	// HouseCount is the number of houses in a chart.
	HouseCount = 12
)

// ChartPoint is the placement of one body inside a chart.
type ChartPoint struct {
	// Planet identifies the body; unique within a Chart.
	Planet Planet `json:"planet"`

	// Longitude is the ecliptic longitude in degrees, normalized into [0,360).
	Longitude float64 `json:"longitude"`

	// Sign is derived from Longitude.
	Sign Sign `json:"sign"`

	// DegreeInSign is derived from Longitude, in [0,30).
	DegreeInSign float64 `json:"degreeInSign"`

	// House is the occupied house, 1..12.
	House int `json:"house"`

	Retrograde bool `json:"retrograde,omitempty"`
	Combust    bool `json:"combust,omitempty"`
}

// Ascendant is the rising sign and its exact longitude.
type Ascendant struct {
	Sign      Sign    `json:"sign"`
	Longitude float64 `json:"longitude"`
}

// Chart is an immutable snapshot built by an external chart-construction step.
// Engines only read it.
type Chart struct {
	Ascendant *Ascendant   `json:"ascendant,omitempty"`
	Points    []ChartPoint `json:"points"`
}

// NormalizeLongitude wraps any angle into [0,360).
func NormalizeLongitude(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	n := math.Mod(deg, FullCircle)
	if n < 0 {
		n += FullCircle
	}
	// math.Mod of a tiny negative value can round back up to 360
	if n >= FullCircle {
		n = 0
	}
	return n
}

// SignOf returns the sign containing a longitude.
func SignOf(longitude float64) Sign {
	s := Sign(int(NormalizeLongitude(longitude) / DegreesPerSign))
	if s > Pisces {
		s = Pisces
	}
	return s
}

// DegreeInSign returns the offset of a longitude inside its sign, in [0,30).
func DegreeInSign(longitude float64) float64 {
	return math.Mod(NormalizeLongitude(longitude), DegreesPerSign)
}

// HouseDistance counts houses from one house to another inclusively, so a house
// is at distance 1 from itself and house 1 is at distance 2 from house 12.
// The result is always in [1,12].
func HouseDistance(from, to int) int {
	return ((to-from)%HouseCount+HouseCount)%HouseCount + 1
}

// NormalizeHouse wraps any integer into 1..12.
func NormalizeHouse(house int) int {
	return ((house-1)%HouseCount+HouseCount)%HouseCount + 1
}

// NewChartPoint builds a ChartPoint with sign and degree derived from longitude.
func NewChartPoint(planet Planet, longitude float64, house int, retrograde, combust bool) ChartPoint {
	lon := NormalizeLongitude(longitude)
	return ChartPoint{
		Planet:       planet,
		Longitude:    lon,
		Sign:         SignOf(lon),
		DegreeInSign: DegreeInSign(lon),
		House:        house,
		Retrograde:   retrograde,
		Combust:      combust,
	}
}

// NewAscendant builds an Ascendant from its longitude.
func NewAscendant(longitude float64) *Ascendant {
	lon := NormalizeLongitude(longitude)
	return &Ascendant{Sign: SignOf(lon), Longitude: lon}
}

// NewChart assembles and validates a chart.
func NewChart(asc *Ascendant, points ...ChartPoint) (*Chart, error) {
	c := &Chart{Ascendant: asc, Points: append([]ChartPoint(nil), points...)}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the structural invariants of the chart. Every failure is a
// ChartError naming the offending entity.
func (c *Chart) Validate() error {
	if c == nil || c.Ascendant == nil {
		return &ChartError{Kind: ErrMissingAscendant, Entity: "ascendant"}
	}
	if !c.Ascendant.Sign.IsValid() {
		return NewChartError(ErrInvalidPlacement, "ascendant", "sign index %d out of range", int(c.Ascendant.Sign))
	}
	seen := make(map[Planet]struct{}, len(c.Points))
	for _, p := range c.Points {
		if !p.Planet.IsValid() {
			return NewChartError(ErrInvalidPlacement, p.Planet.String(), "unknown planet")
		}
		if _, dup := seen[p.Planet]; dup {
			return &ChartError{Kind: ErrDuplicatePlanet, Entity: p.Planet.String()}
		}
		seen[p.Planet] = struct{}{}
		if p.House < 1 || p.House > HouseCount {
			return NewChartError(ErrInvalidPlacement, p.Planet.String(), "house %d out of range", p.House)
		}
		if p.Longitude < 0 || p.Longitude >= FullCircle || math.IsNaN(p.Longitude) {
			return NewChartError(ErrInvalidPlacement, p.Planet.String(), "longitude %.4f out of range", p.Longitude)
		}
		if p.Sign != SignOf(p.Longitude) {
			return NewChartError(ErrInvalidPlacement, p.Planet.String(),
				"sign %s does not match longitude %.4f", p.Sign, p.Longitude)
		}
	}
	return nil
}

// Point returns the placement of a planet if present.
func (c *Chart) Point(planet Planet) (ChartPoint, bool) {
	if c == nil {
		return ChartPoint{}, false
	}
	for _, p := range c.Points {
		if p.Planet == planet {
			return p, true
		}
	}
	return ChartPoint{}, false
}

// RequirePoint returns the placement of a planet or a data-integrity error naming it.
func (c *Chart) RequirePoint(planet Planet) (ChartPoint, error) {
	p, ok := c.Point(planet)
	if !ok {
		return ChartPoint{}, &ChartError{Kind: ErrMissingPlanet, Entity: planet.String()}
	}
	return p, nil
}

// HouseSign returns the sign occupying a house, counted from the ascendant sign.
func (c *Chart) HouseSign(house int) Sign {
	return c.Ascendant.Sign.Add(NormalizeHouse(house) - 1)
}

// Occupants returns the points in a house, in chart order.
func (c *Chart) Occupants(house int) []ChartPoint {
	var out []ChartPoint
	for _, p := range c.Points {
		if p.House == house {
			out = append(out, p)
		}
	}
	return out
}
