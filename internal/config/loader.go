package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. GRAHA_TRANSIT_BRACKETBUFFERDAYS.
	EnvPrefix = "GRAHA"

	// ConfigFlag names the flag carrying the configuration file path.
	ConfigFlag = "config"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":                        "logLevel",
	"ephemeris-cache-size":             "ephemeris.cacheSize",
	"transit-bracket-buffer-days":      "transit.bracketBufferDays",
	"transit-max-bracket-iterations":   "transit.maxBracketIterations",
	"transit-max-bisection-iterations": "transit.maxBisectionIterations",
	"transit-verify":                   "transit.verify",
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	d := DefaultEngineConfig()
	fs.String(ConfigFlag, "", "Path to the engine configuration file (yaml or json).")
	fs.String("log-level", d.LogLevel, "Log level: error, warn, info, debug or trace.")
	fs.Int("ephemeris-cache-size", d.Ephemeris.CacheSize, "Ephemeris LRU cache capacity in entries; 0 disables caching.")
	fs.Float64("transit-bracket-buffer-days", d.Transit.BracketBufferDays, "Half-width of the initial transit search bracket in days.")
	fs.Int("transit-max-bracket-iterations", d.Transit.MaxBracketIterations, "Maximum bracket slides before a transit search falls back.")
	fs.Int("transit-max-bisection-iterations", d.Transit.MaxBisectionIterations, "Maximum bisection steps of a transit search.")
	fs.Bool("transit-verify", true, "Verify transit boundaries at hour resolution.")
}

// Load builds the engine configuration from, in increasing precedence: built-in
// defaults, the configuration file, GRAHA_* environment variables and changed flags.
// path may be empty; when fs carries a --config flag its value is used instead.
func Load(path string, fs *pflag.FlagSet) (*EngineConfig, error) {
	v := viper.New()
	setDefaults(v, DefaultEngineConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for flag, key := range flagKeys {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", flag, err)
				}
			}
		}
		if f := fs.Lookup(ConfigFlag); f != nil && f.Value.String() != "" {
			path = f.Value.String()
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading configuration %s: %w", path, err)
		}
	}

	var cfg EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d EngineConfig) {
	v.SetDefault("logLevel", d.LogLevel)

	v.SetDefault("weights.dignity", d.Weights.Dignity)
	v.SetDefault("weights.house", d.Weights.House)
	v.SetDefault("weights.aspect", d.Weights.Aspect)
	v.SetDefault("weights.conjunction", d.Weights.Conjunction)
	v.SetDefault("weights.vargottama", d.Weights.Vargottama)

	v.SetDefault("adjustments.retrogradeMultiplier", d.Adjustments.RetrogradeMultiplier)
	v.SetDefault("adjustments.applyRetrograde", *d.Adjustments.ApplyRetrograde)
	v.SetDefault("adjustments.severeCombustionMultiplier", d.Adjustments.SevereCombustionMultiplier)
	v.SetDefault("adjustments.severeCombustionOrb", d.Adjustments.SevereCombustionOrb)
	v.SetDefault("adjustments.aspectInfluenceScale", d.Adjustments.AspectInfluenceScale)
	v.SetDefault("adjustments.conjunctionOrb", d.Adjustments.ConjunctionOrb)
	v.SetDefault("adjustments.conjunctionPoints", d.Adjustments.ConjunctionPoints)

	for label, strength := range d.Aspects.LabelStrengths {
		v.SetDefault("aspects.labelStrengths."+label, strength)
	}
	v.SetDefault("aspects.defaultStrength", d.Aspects.DefaultStrength)
	v.SetDefault("aspects.significantThreshold", d.Aspects.SignificantThreshold)
	v.SetDefault("aspects.orbs.tight", d.Aspects.Orbs.Tight)
	v.SetDefault("aspects.orbs.standard", d.Aspects.Orbs.Standard)
	v.SetDefault("aspects.orbs.wide", d.Aspects.Orbs.Wide)

	v.SetDefault("transit.bracketBufferDays", d.Transit.BracketBufferDays)
	v.SetDefault("transit.maxBracketIterations", d.Transit.MaxBracketIterations)
	v.SetDefault("transit.maxBisectionIterations", d.Transit.MaxBisectionIterations)
	v.SetDefault("transit.bisectionToleranceDays", d.Transit.BisectionToleranceDays)
	v.SetDefault("transit.verificationWindowsHours", d.Transit.VerificationWindowsHours)
	v.SetDefault("transit.verify", *d.Transit.Verify)

	v.SetDefault("ephemeris.cacheSize", d.Ephemeris.CacheSize)
	v.SetDefault("ephemeris.cacheResolutionMinutes", d.Ephemeris.CacheResolutionMinutes)
}
