package ephemeris

import (
	"math"
	"time"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/metrics"
	"github.com/llm-d/llm-d-graha-engine/pkg/solver"
)

// lightTimeDaysPerAU is the light travel time across one astronomical unit, in days.
const lightTimeDaysPerAU = 0.0057755

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Approximator computes positions from analytic orbital elements. It holds no
// state and is safe for concurrent use.
type Approximator struct{}

// NewApproximator returns an Approximator.
func NewApproximator() *Approximator {
	return &Approximator{}
}

var _ Source = (*Approximator)(nil)

// Position computes planet's placement at Julian Day jd. It never fails: an
// unconverged Kepler solution is used as-is and flagged on the result.
func (a *Approximator) Position(planet v1alpha1.Planet, jd float64) Position {
	if !planet.IsValid() {
		return newPosition(planet, jd, 0)
	}
	el := &elementTable[planet]
	t := JulianCenturies(jd)

	// 1. mean elements
	meanLongitude := el.meanLongitude.at(t)
	e := el.eccentricity.at(t)
	perihelion := el.perihelion.at(t)
	meanAnomaly := v1alpha1.NormalizeLongitude(meanLongitude - perihelion)

	// 2. Kepler's equation and true anomaly
	sol := solver.SolveKepler(meanAnomaly*degToRad, e)
	if !sol.Converged {
		metrics.ObserveKeplerCapHit(planet.String())
	}
	trueAnomaly := solver.TrueAnomaly(sol.EccentricAnomaly, e) * radToDeg
	longitude := trueAnomaly + perihelion

	// 3. perturbations against the light-time shifted mean longitude
	distance := solver.RadiusVector(el.semiMajorAxis.at(t), e, sol.EccentricAnomaly)
	shifted := JulianCenturies(jd - lightTimeDaysPerAU*distance)
	longitude += el.perturbationDegrees(t, el.meanLongitude.linear(shifted))

	// 4. nutation
	longitude += Nutation(t)

	pos := newPosition(planet, jd, longitude)
	pos.Retrograde = el.isRetrograde(meanAnomaly)
	pos.Distance = distance
	pos.KeplerConverged = sol.Converged
	return pos
}

// PositionAt is Position for a time.Time instant.
func (a *Approximator) PositionAt(planet v1alpha1.Planet, t time.Time) Position {
	return a.Position(planet, JulianDay(t))
}

// MeanMotion returns the secular rate of the planet's mean longitude in degrees per day.
func (a *Approximator) MeanMotion(planet v1alpha1.Planet) float64 {
	if !planet.IsValid() {
		return 0
	}
	return elementTable[planet].meanLongitude[1] / DaysPerCentury
}

// OrbitalPeriod returns the mean sidereal period in days.
func (a *Approximator) OrbitalPeriod(planet v1alpha1.Planet) float64 {
	motion := math.Abs(a.MeanMotion(planet))
	if motion == 0 {
		return math.Inf(1)
	}
	return v1alpha1.FullCircle / motion
}
