package solver

import "math"

const (
	// MaxKeplerIterations caps the Newton-Raphson loop.
	MaxKeplerIterations = 10
	// KeplerTolerance is the step size below which the solution is accepted.
	KeplerTolerance = 1e-12
)

// KeplerSolution is the outcome of SolveKepler.
type KeplerSolution struct {
	// EccentricAnomaly in radians.
	EccentricAnomaly float64
	// Iterations performed, 1..MaxKeplerIterations.
	Iterations int
	// Converged is false when the cap was hit before the step fell below KeplerTolerance.
	Converged bool
}

// SolveKepler solves E - e*sin(E) = M for E by Newton-Raphson starting from E = M.
// meanAnomaly is in radians; eccentricity must be in [0,1).
func SolveKepler(meanAnomaly, eccentricity float64) KeplerSolution {
	e := eccentricity
	E := meanAnomaly
	sol := KeplerSolution{EccentricAnomaly: E}
	for i := 1; i <= MaxKeplerIterations; i++ {
		delta := (E - e*math.Sin(E) - meanAnomaly) / (1 - e*math.Cos(E))
		E -= delta
		sol.EccentricAnomaly = E
		sol.Iterations = i
		if math.Abs(delta) < KeplerTolerance {
			sol.Converged = true
			break
		}
	}
	return sol
}

// Residual evaluates |E - e*sin(E) - M|.
func Residual(eccentricAnomaly, eccentricity, meanAnomaly float64) float64 {
	return math.Abs(eccentricAnomaly - eccentricity*math.Sin(eccentricAnomaly) - meanAnomaly)
}

// TrueAnomaly converts an eccentric anomaly into a true anomaly, both in radians.
func TrueAnomaly(eccentricAnomaly, eccentricity float64) float64 {
	return 2 * math.Atan(math.Sqrt((1+eccentricity)/(1-eccentricity))*math.Tan(eccentricAnomaly/2))
}

// RadiusVector returns the orbital distance a(1 - e*cos(E)) in the units of a.
func RadiusVector(semiMajorAxis, eccentricity, eccentricAnomaly float64) float64 {
	return semiMajorAxis * (1 - eccentricity*math.Cos(eccentricAnomaly))
}
