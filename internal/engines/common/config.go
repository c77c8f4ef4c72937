package common

import (
	"sync"

	"github.com/llm-d/llm-d-graha-engine/internal/config"
)

// GlobalConfig holds the active engine configuration and scoring profiles.
// Readers always see a complete configuration; updates replace it atomically.
type GlobalConfig struct {
	mu       sync.RWMutex
	engine   *config.EngineConfig
	profiles config.ProfileData
}

// NewGlobalConfig creates a holder seeded with cfg, or the defaults when cfg is nil.
func NewGlobalConfig(cfg *config.EngineConfig) *GlobalConfig {
	g := &GlobalConfig{}
	if cfg == nil {
		d := config.DefaultEngineConfig()
		cfg = &d
	}
	g.engine = cfg
	return g
}

// UpdateEngineConfig replaces the active configuration.
func (g *GlobalConfig) UpdateEngineConfig(cfg config.EngineConfig) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.engine = &cfg
}

// GetEngineConfig returns a copy of the active configuration.
func (g *GlobalConfig) GetEngineConfig() config.EngineConfig {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.engine == nil {
		return config.DefaultEngineConfig()
	}
	return *g.engine
}

// UpdateProfiles replaces the scoring profiles.
func (g *GlobalConfig) UpdateProfiles(profiles config.ProfileData) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.profiles = profiles
}

// GetProfiles returns the scoring profiles.
func (g *GlobalConfig) GetProfiles() config.ProfileData {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.profiles
}

// ResolveProfile returns the effective configuration of a named profile. An empty
// name resolves to the active engine configuration.
func (g *GlobalConfig) ResolveProfile(name string) config.EngineConfig {
	if name == "" {
		return g.GetEngineConfig()
	}
	g.mu.RLock()
	profiles := g.profiles
	base := config.DefaultEngineConfig()
	if g.engine != nil {
		base = *g.engine
	}
	g.mu.RUnlock()

	if profile, ok := profiles[name]; ok && name != config.GlobalDefaultsKey {
		return config.Merge(config.Merge(base, profiles[config.GlobalDefaultsKey]), profile)
	}
	return base
}
