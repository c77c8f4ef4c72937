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

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/config"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/common"
)

type positionKey struct {
	planet v1alpha1.Planet
	tick   int64
}

// CachedSource memoizes another Source. Julian Days are truncated to the cache
// resolution and the position is always computed at the truncated instant, so a
// cached and an uncached lookup return identical values.
type CachedSource struct {
	inner      Source
	cache      *common.Cache[positionKey, Position]
	resolution float64
}

var _ Source = (*CachedSource)(nil)

// NewCachedSource wraps inner with a bounded LRU sized by cfg.
func NewCachedSource(inner Source, cfg config.EphemerisConfig) *CachedSource {
	resolution := cfg.CacheResolutionMinutes / (24 * 60)
	if resolution <= 0 {
		resolution = 1.0 / (24 * 60)
	}
	return &CachedSource{
		inner:      inner,
		cache:      common.NewCache[positionKey, Position](cfg.CacheSize),
		resolution: resolution,
	}
}

// Position returns the inner source's position at jd truncated to the cache resolution.
func (c *CachedSource) Position(planet v1alpha1.Planet, jd float64) Position {
	tick := int64(math.Floor(jd / c.resolution))
	truncated := float64(tick) * c.resolution
	pos, _ := c.cache.GetOrCompute(positionKey{planet: planet, tick: tick}, func() Position {
		return c.inner.Position(planet, truncated)
	})
	return pos
}

// MeanMotion delegates to the inner source.
func (c *CachedSource) MeanMotion(planet v1alpha1.Planet) float64 {
	return c.inner.MeanMotion(planet)
}

// Len returns the number of cached positions.
func (c *CachedSource) Len() int {
	return c.cache.Len()
}
