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

// Package ephemeris computes approximate planetary longitudes.
//
// The Approximator evaluates per-planet polynomial orbital elements in Julian
// centuries from J2000, solves Kepler's equation, applies a light-time shifted
// perturbation series and nutation in longitude, and normalizes the result into
// [0,360). The accuracy target is arc-minute level: enough for sign, house and
// aspect decisions, not for precision astronomy.
//
// Retrograde status is classified from a fixed window of the planet's own mean
// anomaly rather than from its velocity. This is an empirical approximation kept
// for parity with existing expected outputs.
//
// Architecture:
//
//	Source (interface)
//	    ├── Approximator   (analytic elements + Kepler solver)
//	    └── CachedSource   (bounded LRU memo keyed by planet and truncated Julian Day)
//
// Consumers such as the transit search depend on Source only, so a synthetic
// body can replace the Approximator in tests.
package ephemeris
