/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ephemeris

import (
	"math"
	"time"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
)

const (
	// J2000 is the Julian Day of 2000-01-01 12:00 TT.
	J2000 = 2451545.0
	// UnixEpochJD is the Julian Day of 1970-01-01 00:00 UTC.
	UnixEpochJD = 2440587.5
	// DaysPerCentury is the length of a Julian century.
	DaysPerCentury = 36525.0

	secondsPerDay = 86400.0
)

// Position is a planet's computed placement at an instant.
type Position struct {
	Planet       v1alpha1.Planet
	JulianDay    float64
	Longitude    float64
	Sign         v1alpha1.Sign
	DegreeInSign float64
	Retrograde   bool

	// Distance is the orbital radius in AU; zero for the lunar nodes.
	Distance float64

	// KeplerConverged is false when the solver hit its iteration cap.
	KeplerConverged bool
}

// Source produces planetary positions.
type Source interface {
	// Position returns the placement of planet at Julian Day jd.
	Position(planet v1alpha1.Planet, jd float64) Position

	// MeanMotion returns the planet's mean daily motion in degrees, negative for
	// bodies that move backwards through the zodiac.
	MeanMotion(planet v1alpha1.Planet) float64
}

// JulianDay converts an instant into a continuous Julian Day.
func JulianDay(t time.Time) float64 {
	return float64(t.Unix())/secondsPerDay + float64(t.Nanosecond())/(secondsPerDay*1e9) + UnixEpochJD
}

// TimeFromJulianDay converts a Julian Day back into a UTC instant.
func TimeFromJulianDay(jd float64) time.Time {
	seconds := (jd - UnixEpochJD) * secondsPerDay
	whole := math.Floor(seconds)
	nanos := math.Round((seconds - whole) * 1e9)
	return time.Unix(int64(whole), int64(nanos)).UTC()
}

// JulianCenturies returns the Julian centuries elapsed since J2000.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// SignDays returns the mean number of days a source's planet spends in one sign.
func SignDays(src Source, planet v1alpha1.Planet) float64 {
	motion := math.Abs(src.MeanMotion(planet))
	if motion == 0 {
		return math.Inf(1)
	}
	return v1alpha1.DegreesPerSign / motion
}

func newPosition(planet v1alpha1.Planet, jd, longitude float64) Position {
	lon := v1alpha1.NormalizeLongitude(longitude)
	return Position{
		Planet:       planet,
		JulianDay:    jd,
		Longitude:    lon,
		Sign:         v1alpha1.SignOf(lon),
		DegreeInSign: v1alpha1.DegreeInSign(lon),
	}
}
