package config

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/llm-d/llm-d-graha-engine/internal/logging"
)

const (
	// GlobalDefaultsKey is the profile entry whose values apply to every profile.
	GlobalDefaultsKey = "default"
)

// ProfileData holds pre-read scoring profiles.
// Maps profile name to its (partial) configuration.
type ProfileData map[string]EngineConfig

// ParseProfiles parses scoring profiles from a key/value document set, such as
// the files of a mounted configuration directory.
// The format:
//   - "default": global defaults applied on top of the built-in configuration
//   - "<entry-key>": a profile override carrying a name field
//
// Entries that fail to decode or validate are logged and skipped.
func ParseProfiles(data map[string]string) ProfileData {
	out := make(ProfileData)
	if data == nil {
		return out
	}
	logger := logging.Default()

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nameToKey := make(map[string]string)
	builtin := DefaultEngineConfig()

	// defaults first so overrides validate against them
	if doc, ok := data[GlobalDefaultsKey]; ok {
		var defaults EngineConfig
		if err := yaml.Unmarshal([]byte(doc), &defaults); err != nil {
			logger.Info("Failed to parse default profile, ignoring", "error", err)
		} else {
			merged := Merge(builtin, defaults)
			if err := merged.Validate(); err != nil {
				logger.Info("Invalid default profile, ignoring", "error", err)
			} else {
				out[GlobalDefaultsKey] = defaults
			}
		}
	}
	base := Merge(builtin, out[GlobalDefaultsKey])

	for _, key := range keys {
		if key == GlobalDefaultsKey {
			continue
		}

		var profile EngineConfig
		if err := yaml.Unmarshal([]byte(data[key]), &profile); err != nil {
			logger.Info("Failed to parse profile entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		merged := Merge(base, profile)
		if err := merged.Validate(); err != nil {
			logger.Info("Invalid profile entry, skipping",
				"key", key,
				"error", err)
			continue
		}

		if profile.Name == "" {
			logger.Info("Skipping profile without name field",
				"key", key)
			continue
		}

		if winner, exists := nameToKey[profile.Name]; exists {
			logger.Info("Duplicate profile name found - first key wins",
				"name", profile.Name,
				"winningKey", winner,
				"duplicateKey", key)
			continue
		}
		nameToKey[profile.Name] = key

		out[profile.Name] = profile
	}

	logger.V(logging.DEBUG).Info("Parsed scoring profiles",
		"profileCount", len(out))

	return out
}

// GetProfileConfig returns the effective configuration for a profile: the built-in
// configuration, then the global defaults entry, then the profile's own values.
// Unknown profiles resolve to the defaults.
func (data ProfileData) GetProfileConfig(name string) EngineConfig {
	result := Merge(DefaultEngineConfig(), data[GlobalDefaultsKey])
	if profile, ok := data[name]; ok && name != GlobalDefaultsKey {
		result = Merge(result, profile)
	}
	return result
}

// Names returns the profile names in sorted order, excluding the defaults entry.
func (data ProfileData) Names() []string {
	names := make([]string, 0, len(data))
	for name := range data {
		if name != GlobalDefaultsKey {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
