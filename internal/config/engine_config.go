package config

import (
	"fmt"
	"math"
	"sort"

	"k8s.io/utils/ptr"
)

// Aspect labels shared by the aspect engine and the label strength table.
const (
	Label3rd  = "3rd"
	Label4th  = "4th"
	Label5th  = "5th"
	Label7th  = "7th"
	Label8th  = "8th"
	Label9th  = "9th"
	Label10th = "10th"
)

// StrengthWeights are the shares of each sub-score in the composite strength.
type StrengthWeights struct {
	Dignity     float64 `yaml:"dignity,omitempty" json:"dignity,omitempty" mapstructure:"dignity"`
	House       float64 `yaml:"house,omitempty" json:"house,omitempty" mapstructure:"house"`
	Aspect      float64 `yaml:"aspect,omitempty" json:"aspect,omitempty" mapstructure:"aspect"`
	Conjunction float64 `yaml:"conjunction,omitempty" json:"conjunction,omitempty" mapstructure:"conjunction"`
	Vargottama  float64 `yaml:"vargottama,omitempty" json:"vargottama,omitempty" mapstructure:"vargottama"`
}

// Vector returns the weights in component order: dignity, house, aspect, conjunction, vargottama.
func (w StrengthWeights) Vector() []float64 {
	return []float64{w.Dignity, w.House, w.Aspect, w.Conjunction, w.Vargottama}
}

var weightNames = [...]string{"dignity", "house", "aspect", "conjunction", "vargottama"}

func (w StrengthWeights) isZero() bool {
	return w == StrengthWeights{}
}

// Adjustments tune the strength scorer beyond the weighted sum.
type Adjustments struct {
	// RetrogradeMultiplier scales the composite of a retrograde planet.
	RetrogradeMultiplier float64 `yaml:"retrogradeMultiplier,omitempty" json:"retrogradeMultiplier,omitempty" mapstructure:"retrogradeMultiplier"`

	// ApplyRetrograde disables the retrograde multiplier when false.
	// Use pointer to allow omitting this field and inheriting from defaults.
	ApplyRetrograde *bool `yaml:"applyRetrograde,omitempty" json:"applyRetrograde,omitempty" mapstructure:"applyRetrograde"`

	// SevereCombustionMultiplier scales the composite of a severely combust planet.
	SevereCombustionMultiplier float64 `yaml:"severeCombustionMultiplier,omitempty" json:"severeCombustionMultiplier,omitempty" mapstructure:"severeCombustionMultiplier"`

	// SevereCombustionOrb is the distance from the Sun, in degrees, under which combustion is severe.
	SevereCombustionOrb float64 `yaml:"severeCombustionOrb,omitempty" json:"severeCombustionOrb,omitempty" mapstructure:"severeCombustionOrb"`

	// AspectInfluenceScale converts the signed aspect influence (0-10 scale) into score points.
	AspectInfluenceScale float64 `yaml:"aspectInfluenceScale,omitempty" json:"aspectInfluenceScale,omitempty" mapstructure:"aspectInfluenceScale"`

	// ConjunctionOrb is the separation at which a co-housed planet stops influencing.
	ConjunctionOrb float64 `yaml:"conjunctionOrb,omitempty" json:"conjunctionOrb,omitempty" mapstructure:"conjunctionOrb"`

	// ConjunctionPoints is the score swing of an exact conjunction.
	ConjunctionPoints float64 `yaml:"conjunctionPoints,omitempty" json:"conjunctionPoints,omitempty" mapstructure:"conjunctionPoints"`
}

// OrbBands are the tolerance classes used by the orb-based aspect variant.
type OrbBands struct {
	Tight    float64 `yaml:"tight,omitempty" json:"tight,omitempty" mapstructure:"tight"`
	Standard float64 `yaml:"standard,omitempty" json:"standard,omitempty" mapstructure:"standard"`
	Wide     float64 `yaml:"wide,omitempty" json:"wide,omitempty" mapstructure:"wide"`
}

// AspectConfig holds the aspect strength lookup and orb bands.
type AspectConfig struct {
	// LabelStrengths maps an aspect label ("7th") to its strength in [0,10].
	LabelStrengths map[string]float64 `yaml:"labelStrengths,omitempty" json:"labelStrengths,omitempty" mapstructure:"labelStrengths"`

	// DefaultStrength applies to labels missing from LabelStrengths.
	DefaultStrength float64 `yaml:"defaultStrength,omitempty" json:"defaultStrength,omitempty" mapstructure:"defaultStrength"`

	// SignificantThreshold is the minimum strength of a significant aspect.
	SignificantThreshold float64 `yaml:"significantThreshold,omitempty" json:"significantThreshold,omitempty" mapstructure:"significantThreshold"`

	Orbs OrbBands `yaml:"orbs,omitempty" json:"orbs,omitempty" mapstructure:"orbs"`
}

// LabelStrength returns the configured strength of a label or the default.
func (c AspectConfig) LabelStrength(label string) float64 {
	if s, ok := c.LabelStrengths[label]; ok {
		return s
	}
	return c.DefaultStrength
}

// TransitConfig bounds the sign ingress search.
type TransitConfig struct {
	// BracketBufferDays is the half-width of the initial bracket around the estimate.
	BracketBufferDays float64 `yaml:"bracketBufferDays,omitempty" json:"bracketBufferDays,omitempty" mapstructure:"bracketBufferDays"`

	MaxBracketIterations   int     `yaml:"maxBracketIterations,omitempty" json:"maxBracketIterations,omitempty" mapstructure:"maxBracketIterations"`
	MaxBisectionIterations int     `yaml:"maxBisectionIterations,omitempty" json:"maxBisectionIterations,omitempty" mapstructure:"maxBisectionIterations"`
	BisectionToleranceDays float64 `yaml:"bisectionToleranceDays,omitempty" json:"bisectionToleranceDays,omitempty" mapstructure:"bisectionToleranceDays"`

	// VerificationWindowsHours are the half-widths sampled around the bisection result, ascending.
	VerificationWindowsHours []float64 `yaml:"verificationWindowsHours,omitempty" json:"verificationWindowsHours,omitempty" mapstructure:"verificationWindowsHours"`

	// Verify disables the verification stage when false.
	Verify *bool `yaml:"verify,omitempty" json:"verify,omitempty" mapstructure:"verify"`
}

// EphemerisConfig controls position memoization.
type EphemerisConfig struct {
	// CacheSize is the LRU capacity in entries. Zero disables caching.
	CacheSize int `yaml:"cacheSize,omitempty" json:"cacheSize,omitempty" mapstructure:"cacheSize"`

	// CacheResolutionMinutes is the Julian Day truncation used for cache keys.
	CacheResolutionMinutes float64 `yaml:"cacheResolutionMinutes,omitempty" json:"cacheResolutionMinutes,omitempty" mapstructure:"cacheResolutionMinutes"`
}

// EngineConfig is the complete tunable configuration of the engines.
type EngineConfig struct {
	// Name is the profile name (only used in profile override entries).
	Name string `yaml:"name,omitempty" json:"name,omitempty" mapstructure:"name"`

	LogLevel    string          `yaml:"logLevel,omitempty" json:"logLevel,omitempty" mapstructure:"logLevel"`
	Weights     StrengthWeights `yaml:"weights,omitempty" json:"weights,omitempty" mapstructure:"weights"`
	Adjustments Adjustments     `yaml:"adjustments,omitempty" json:"adjustments,omitempty" mapstructure:"adjustments"`
	Aspects     AspectConfig    `yaml:"aspects,omitempty" json:"aspects,omitempty" mapstructure:"aspects"`
	Transit     TransitConfig   `yaml:"transit,omitempty" json:"transit,omitempty" mapstructure:"transit"`
	Ephemeris   EphemerisConfig `yaml:"ephemeris,omitempty" json:"ephemeris,omitempty" mapstructure:"ephemeris"`
}

// DefaultEngineConfig returns the built-in configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		LogLevel: "info",
		Weights: StrengthWeights{
			Dignity:     0.4,
			House:       0.2,
			Aspect:      0.2,
			Conjunction: 0.1,
			Vargottama:  0.1,
		},
		Adjustments: Adjustments{
			RetrogradeMultiplier:       0.8,
			ApplyRetrograde:            ptr.To(true),
			SevereCombustionMultiplier: 0.5,
			SevereCombustionOrb:        3,
			AspectInfluenceScale:       2.5,
			ConjunctionOrb:             10,
			ConjunctionPoints:          15,
		},
		Aspects: AspectConfig{
			LabelStrengths: map[string]float64{
				Label7th:  8,
				Label4th:  7,
				Label5th:  7,
				Label8th:  7,
				Label9th:  7,
				Label3rd:  6,
				Label10th: 6,
			},
			DefaultStrength:      5,
			SignificantThreshold: 5,
			Orbs: OrbBands{
				Tight:    5,
				Standard: 8,
				Wide:     10,
			},
		},
		Transit: TransitConfig{
			BracketBufferDays:        365,
			MaxBracketIterations:     10,
			MaxBisectionIterations:   25,
			BisectionToleranceDays:   0.5,
			VerificationWindowsHours: []float64{6, 12, 24, 48},
			Verify:                   ptr.To(true),
		},
		Ephemeris: EphemerisConfig{
			CacheSize:              4096,
			CacheResolutionMinutes: 1,
		},
	}
}

// Validate checks for invalid configuration values.
func (c *EngineConfig) Validate() error {
	sum := 0.0
	for i, v := range c.Weights.Vector() {
		if v < 0 || v > 1 {
			return fmt.Errorf("weight %s must be between 0 and 1, got %.3f", weightNames[i], v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("strength weights must sum to 1, got %.6f", sum)
	}

	a := c.Adjustments
	if a.RetrogradeMultiplier <= 0 || a.RetrogradeMultiplier > 1 {
		return fmt.Errorf("retrogradeMultiplier must be in (0,1], got %.2f", a.RetrogradeMultiplier)
	}
	if a.SevereCombustionMultiplier <= 0 || a.SevereCombustionMultiplier > 1 {
		return fmt.Errorf("severeCombustionMultiplier must be in (0,1], got %.2f", a.SevereCombustionMultiplier)
	}
	if a.SevereCombustionOrb < 0 {
		return fmt.Errorf("severeCombustionOrb must be >= 0, got %.2f", a.SevereCombustionOrb)
	}
	if a.ConjunctionOrb <= 0 {
		return fmt.Errorf("conjunctionOrb must be > 0, got %.2f", a.ConjunctionOrb)
	}
	if a.AspectInfluenceScale < 0 || a.ConjunctionPoints < 0 {
		return fmt.Errorf("aspectInfluenceScale (%.2f) and conjunctionPoints (%.2f) must be >= 0",
			a.AspectInfluenceScale, a.ConjunctionPoints)
	}

	asp := c.Aspects
	labels := make([]string, 0, len(asp.LabelStrengths))
	for label := range asp.LabelStrengths {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		if s := asp.LabelStrengths[label]; s < 0 || s > 10 {
			return fmt.Errorf("strength of aspect %s must be between 0 and 10, got %.1f", label, s)
		}
	}
	if asp.DefaultStrength < 0 || asp.DefaultStrength > 10 {
		return fmt.Errorf("defaultStrength must be between 0 and 10, got %.1f", asp.DefaultStrength)
	}
	o := asp.Orbs
	if o.Tight <= 0 || o.Tight > o.Standard || o.Standard > o.Wide {
		return fmt.Errorf("orbs must satisfy 0 < tight <= standard <= wide, got %.1f/%.1f/%.1f",
			o.Tight, o.Standard, o.Wide)
	}

	t := c.Transit
	if t.BracketBufferDays <= 0 {
		return fmt.Errorf("bracketBufferDays must be > 0, got %.1f", t.BracketBufferDays)
	}
	if t.MaxBracketIterations < 1 || t.MaxBisectionIterations < 1 {
		return fmt.Errorf("transit iteration caps must be >= 1, got bracket=%d bisection=%d",
			t.MaxBracketIterations, t.MaxBisectionIterations)
	}
	if t.BisectionToleranceDays <= 0 {
		return fmt.Errorf("bisectionToleranceDays must be > 0, got %.3f", t.BisectionToleranceDays)
	}
	prev := 0.0
	for _, h := range t.VerificationWindowsHours {
		if h <= prev {
			return fmt.Errorf("verificationWindowsHours must be positive and ascending, got %v", t.VerificationWindowsHours)
		}
		prev = h
	}

	if c.Ephemeris.CacheSize < 0 {
		return fmt.Errorf("ephemeris cacheSize must be >= 0, got %d", c.Ephemeris.CacheSize)
	}
	if c.Ephemeris.CacheResolutionMinutes <= 0 {
		return fmt.Errorf("ephemeris cacheResolutionMinutes must be > 0, got %.2f", c.Ephemeris.CacheResolutionMinutes)
	}
	return nil
}

// RetrogradeEnabled reports whether the retrograde multiplier applies.
func (c *EngineConfig) RetrogradeEnabled() bool {
	return ptr.Deref(c.Adjustments.ApplyRetrograde, true)
}

// VerificationEnabled reports whether the transit search runs its verification stage.
func (c *EngineConfig) VerificationEnabled() bool {
	return ptr.Deref(c.Transit.Verify, true)
}

// Merge returns base with every non-zero field of override applied on top.
func Merge(base, override EngineConfig) EngineConfig {
	result := base

	if override.Name != "" {
		result.Name = override.Name
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	// weights replace as a unit so the sum invariant is preserved
	if !override.Weights.isZero() {
		result.Weights = override.Weights
	}

	a := override.Adjustments
	if a.RetrogradeMultiplier != 0 {
		result.Adjustments.RetrogradeMultiplier = a.RetrogradeMultiplier
	}
	if a.ApplyRetrograde != nil {
		result.Adjustments.ApplyRetrograde = a.ApplyRetrograde
	}
	if a.SevereCombustionMultiplier != 0 {
		result.Adjustments.SevereCombustionMultiplier = a.SevereCombustionMultiplier
	}
	if a.SevereCombustionOrb != 0 {
		result.Adjustments.SevereCombustionOrb = a.SevereCombustionOrb
	}
	if a.AspectInfluenceScale != 0 {
		result.Adjustments.AspectInfluenceScale = a.AspectInfluenceScale
	}
	if a.ConjunctionOrb != 0 {
		result.Adjustments.ConjunctionOrb = a.ConjunctionOrb
	}
	if a.ConjunctionPoints != 0 {
		result.Adjustments.ConjunctionPoints = a.ConjunctionPoints
	}

	asp := override.Aspects
	if len(asp.LabelStrengths) > 0 {
		merged := make(map[string]float64, len(base.Aspects.LabelStrengths)+len(asp.LabelStrengths))
		for k, v := range base.Aspects.LabelStrengths {
			merged[k] = v
		}
		for k, v := range asp.LabelStrengths {
			merged[k] = v
		}
		result.Aspects.LabelStrengths = merged
	}
	if asp.DefaultStrength != 0 {
		result.Aspects.DefaultStrength = asp.DefaultStrength
	}
	if asp.SignificantThreshold != 0 {
		result.Aspects.SignificantThreshold = asp.SignificantThreshold
	}
	if asp.Orbs.Tight != 0 {
		result.Aspects.Orbs.Tight = asp.Orbs.Tight
	}
	if asp.Orbs.Standard != 0 {
		result.Aspects.Orbs.Standard = asp.Orbs.Standard
	}
	if asp.Orbs.Wide != 0 {
		result.Aspects.Orbs.Wide = asp.Orbs.Wide
	}

	t := override.Transit
	if t.BracketBufferDays != 0 {
		result.Transit.BracketBufferDays = t.BracketBufferDays
	}
	if t.MaxBracketIterations != 0 {
		result.Transit.MaxBracketIterations = t.MaxBracketIterations
	}
	if t.MaxBisectionIterations != 0 {
		result.Transit.MaxBisectionIterations = t.MaxBisectionIterations
	}
	if t.BisectionToleranceDays != 0 {
		result.Transit.BisectionToleranceDays = t.BisectionToleranceDays
	}
	if len(t.VerificationWindowsHours) > 0 {
		result.Transit.VerificationWindowsHours = append([]float64(nil), t.VerificationWindowsHours...)
	}
	if t.Verify != nil {
		result.Transit.Verify = t.Verify
	}

	if override.Ephemeris.CacheSize != 0 {
		result.Ephemeris.CacheSize = override.Ephemeris.CacheSize
	}
	if override.Ephemeris.CacheResolutionMinutes != 0 {
		result.Ephemeris.CacheResolutionMinutes = override.Ephemeris.CacheResolutionMinutes
	}

	return result
}
