package ephemeris

import (
	"math"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
)

// polynomial holds coefficients c0 + c1*T + c2*T^2 + c3*T^3 in Julian centuries T.
type polynomial [4]float64

func (p polynomial) at(t float64) float64 {
	return p[0] + t*(p[1]+t*(p[2]+t*p[3]))
}

// linear evaluates only the constant and secular terms.
func (p polynomial) linear(t float64) float64 {
	return p[0] + t*p[1]
}

// perturbation is a harmonic series sum(w[n-1] * sin(n*D)) in arcseconds, where D
// is the angular distance from the perturbed body to the perturbing argument.
type perturbation struct {
	argument polynomial
	weights  []float64
}

type retrogradeRule int

const (
	neverRetrograde retrogradeRule = iota
	alwaysRetrograde
	meanAnomalyWindow
)

// orbitalElements drives the Approximator for one body. Angles are in degrees.
type orbitalElements struct {
	meanLongitude polynomial
	eccentricity  polynomial
	perihelion    polynomial
	semiMajorAxis polynomial
	perturbations []perturbation

	retrograde retrogradeRule
	// window is the open mean-anomaly interval classified as retrograde.
	window [2]float64
}

// elementTable is indexed by Planet. Sun and Moon use geocentric mean elements;
// the true planets use heliocentric elements; the nodes use the mean lunar node
// with zero eccentricity so that longitude equals mean longitude.
var elementTable = [v1alpha1.PlanetCount]orbitalElements{
	v1alpha1.Sun: {
		meanLongitude: polynomial{280.46646, 36000.76983, 0.0003032},
		eccentricity:  polynomial{0.016708634, -0.000042037, -0.0000001267},
		perihelion:    polynomial{282.93735, 1.71946, 0.00045688},
		semiMajorAxis: polynomial{1.000001018},
		retrograde:    neverRetrograde,
	},
	v1alpha1.Moon: {
		meanLongitude: polynomial{218.3164477, 481267.88123421, -0.0015786},
		eccentricity:  polynomial{0.0549},
		perihelion:    polynomial{83.3532465, 4069.0137287, -0.0103200},
		semiMajorAxis: polynomial{0.00256955},
		retrograde:    neverRetrograde,
	},
	v1alpha1.Mars: {
		meanLongitude: polynomial{355.433275, 19140.2993313, 0.00000261, -0.000000003},
		eccentricity:  polynomial{0.09340062, 0.000090483, -0.0000000806},
		perihelion:    polynomial{336.060234, 0.4438898, -0.00017321, 0.000000300},
		semiMajorAxis: polynomial{1.523679342},
		retrograde:    meanAnomalyWindow,
		window:        [2]float64{162, 198},
	},
	v1alpha1.Mercury: {
		meanLongitude: polynomial{252.250906, 149472.6746358, -0.00000535, 0.000000002},
		eccentricity:  polynomial{0.20563175, 0.000020406, -0.0000000284},
		perihelion:    polynomial{77.456119, 0.1588643, -0.00001343, 0.000000039},
		semiMajorAxis: polynomial{0.387098310},
		retrograde:    meanAnomalyWindow,
		window:        [2]float64{146, 214},
	},
	v1alpha1.Jupiter: {
		meanLongitude: polynomial{34.351484, 3034.9056746, -0.00008501, 0.000000004},
		eccentricity:  polynomial{0.04849485, 0.000163244, -0.0000004719},
		perihelion:    polynomial{14.331309, 0.2155525, 0.00072252, -0.000004590},
		semiMajorAxis: polynomial{5.202603191, 0.0000001913},
		retrograde:    meanAnomalyWindow,
		window:        [2]float64{126, 234},
	},
	v1alpha1.Venus: {
		meanLongitude: polynomial{181.979801, 58517.8156760, 0.00000165, -0.000000002},
		eccentricity:  polynomial{0.00677188, -0.000047766, 0.0000000975},
		perihelion:    polynomial{131.563707, 0.0048646, -0.00138232, -0.000005332},
		semiMajorAxis: polynomial{0.723329820},
		retrograde:    meanAnomalyWindow,
		window:        [2]float64{167, 193},
	},
	v1alpha1.Saturn: {
		meanLongitude: polynomial{50.0749643, 1222.1137943, 0.00021004, -0.000000190},
		eccentricity:  polynomial{0.0557506, -0.000034494, -0.0000006819, 0.0000000016},
		perihelion:    polynomial{92.5904329, 1.9637613, 0.00083177},
		semiMajorAxis: polynomial{9.5549093, -0.0000213},
		perturbations: []perturbation{
			{argument: polynomial{100.464441, 1190.8502918, 0.00016617, -0.000000129}, weights: []float64{0.812, 0.490, 0.143, 0.049, 0.024}},
			{argument: polynomial{355.433, 19140.2993, 0.00000261, -0.000000003}, weights: []float64{0.018}},
			{argument: polynomial{181.979801, 58517.8156, 0.00000165, -0.000000002}, weights: []float64{0.012}},
		},
		retrograde: meanAnomalyWindow,
		window:     [2]float64{95, 265},
	},
	v1alpha1.Rahu: {
		meanLongitude: polynomial{125.04452, -1934.136261, 0.0020708, 1.0 / 450000},
		retrograde:    alwaysRetrograde,
	},
	v1alpha1.Ketu: {
		meanLongitude: polynomial{305.04452, -1934.136261, 0.0020708, 1.0 / 450000},
		retrograde:    alwaysRetrograde,
	},
}

// perturbationDegrees sums every perturbation series for a body whose light-time
// corrected mean longitude is meanLongitude.
func (el *orbitalElements) perturbationDegrees(t, meanLongitude float64) float64 {
	arcsec := 0.0
	for _, p := range el.perturbations {
		d := (p.argument.at(t) - meanLongitude) * math.Pi / 180
		for i, w := range p.weights {
			arcsec += w * math.Sin(float64(i+1)*d)
		}
	}
	return arcsec / 3600
}

func (el *orbitalElements) isRetrograde(meanAnomaly float64) bool {
	switch el.retrograde {
	case alwaysRetrograde:
		return true
	case meanAnomalyWindow:
		m := v1alpha1.NormalizeLongitude(meanAnomaly)
		return m > el.window[0] && m < el.window[1]
	default:
		return false
	}
}

// Nutation returns the nutation in longitude, in degrees, at Julian centuries t.
func Nutation(t float64) float64 {
	const rad = math.Pi / 180
	omega := (125.04452 - 1934.136261*t) * rad
	sunL := (280.4665 + 36000.7698*t) * rad
	moonL := (218.3165 + 481267.8813*t) * rad
	arcsec := -17.20*math.Sin(omega) - 1.32*math.Sin(2*sunL) - 0.23*math.Sin(2*moonL) + 0.21*math.Sin(2*omega)
	return arcsec / 3600
}
