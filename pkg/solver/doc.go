// Package solver implements the iterative numerical solvers used by the ephemeris engine.
//
// The solver package contains a Newton-Raphson solution of Kepler's equation
//
//	E - e*sin(E) = M
//
// which converts a mean anomaly M into an eccentric anomaly E for an orbit of
// eccentricity e. The solver is bounded: it never runs more than MaxKeplerIterations
// steps and never fails. When the iteration cap is hit the last estimate is
// returned with Converged set to false so that callers can record the shortfall.
//
// Example usage:
//
//	sol := solver.SolveKepler(meanAnomaly, eccentricity)
//	if !sol.Converged {
//	    logger.V(logging.DEBUG).Info("kepler cap hit", "iterations", sol.Iterations)
//	}
//	trueAnomaly := solver.TrueAnomaly(sol.EccentricAnomaly, eccentricity)
//
// The solver is designed to be:
//   - Bounded: hard iteration cap instead of cancellation
//   - Deterministic: same inputs produce same outputs
//   - Allocation free: safe to call from hot search loops
package solver
