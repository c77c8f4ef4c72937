package v1alpha1

import "time"

// Nature is the benefic/malefic classification of a casting planet.
type Nature string

const (
	Benefic Nature = "benefic"
	Malefic Nature = "malefic"
	Neutral Nature = "neutral"
)

// Aspect is a directional planet-to-planet aspect.
type Aspect struct {
	Source Planet `json:"source"`
	Target Planet `json:"target"`

	// HouseDistance is counted inclusively from the source house, 1..12.
	HouseDistance int `json:"houseDistance"`

	// Label is the ordinal of the aspected house ("7th", "4th", ...).
	Label string `json:"label"`

	// Angle is the nominal aspect angle for orb-based aspects; zero for house-based aspects.
	Angle float64 `json:"angle,omitempty"`

	// Orb is the deviation from the exact angle in degrees; zero for house-based aspects.
	Orb float64 `json:"orb"`

	// MaxOrb is the tolerance band that admitted the aspect.
	MaxOrb float64 `json:"maxOrb,omitempty"`

	// Strength is in [0,10].
	Strength float64 `json:"strength"`

	Nature Nature `json:"nature"`
}

// Closeness is 1 at an exact aspect and falls linearly to 0 at MaxOrb.
// House-based aspects have no orb and are always fully close.
func (a Aspect) Closeness() float64 {
	if a.MaxOrb <= 0 {
		return 1
	}
	c := 1 - a.Orb/a.MaxOrb
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// HouseAspect is an aspect cast on a house, regardless of its occupants.
type HouseAspect struct {
	Source        Planet  `json:"source"`
	House         int     `json:"house"`
	HouseDistance int     `json:"houseDistance"`
	Label         string  `json:"label"`
	Strength      float64 `json:"strength"`
	Nature        Nature  `json:"nature"`
}

// DignityType is the classification produced by the dignity evaluator.
type DignityType string

const (
	DignityDeepExaltation    DignityType = "Deep Exaltation"
	DignityExalted           DignityType = "Exalted"
	DignityDeepDebilitation  DignityType = "Deep Debilitation"
	DignityDebilitated       DignityType = "Debilitated"
	DignityMoolatrikona      DignityType = "Moolatrikona"
	DignityOwnSign           DignityType = "Own Sign"
	DignityGreatFriend       DignityType = "Great Friend"
	DignityFriend            DignityType = "Friend"
	DignityNeutral           DignityType = "Neutral"
	DignityEnemy             DignityType = "Enemy"
	DignityBitterEnemy       DignityType = "Bitter Enemy"
	DignityExaltedShadow     DignityType = "Exalted (Shadow Planet)"
	DignityDebilitatedShadow DignityType = "Debilitated (Shadow Planet)"
)

// DignityFlags are the sensitive-degree markers of a placement.
type DignityFlags struct {
	Gandanta   bool `json:"gandanta"`
	Pushkara   bool `json:"pushkara"`
	Vargottama bool `json:"vargottama"`
}

// DignityResult is the classification of a placement.
type DignityResult struct {
	Planet Planet      `json:"planet"`
	Sign   Sign        `json:"sign"`
	Type   DignityType `json:"type"`

	// Strength is in [0,100].
	Strength float64      `json:"strength"`
	Flags    DignityFlags `json:"flags"`
}

// Grade is the qualitative band of a strength score.
type Grade string

const (
	GradeExcellent    Grade = "Excellent"
	GradeVeryGood     Grade = "Very Good"
	GradeGood         Grade = "Good"
	GradeAverage      Grade = "Average"
	GradeBelowAverage Grade = "Below Average"
	GradeWeak         Grade = "Weak"
	GradeVeryWeak     Grade = "Very Weak"
)

// StrengthComponents holds the sub-scores that fed a composite, each in [0,100].
type StrengthComponents struct {
	Dignity     float64 `json:"dignity"`
	House       float64 `json:"house"`
	Aspect      float64 `json:"aspect"`
	Conjunction float64 `json:"conjunction"`
	Vargottama  float64 `json:"vargottama"`
}

// StrengthResult is a composite score in [0,100].
type StrengthResult struct {
	Total      float64            `json:"total"`
	Grade      Grade              `json:"grade"`
	Components StrengthComponents `json:"components"`
}

// HouseLordPlacement locates the ruler of a house.
type HouseLordPlacement struct {
	House         int    `json:"house"`
	RuledSign     Sign   `json:"ruledSign"`
	Lord          Planet `json:"lordPlanetId"`
	OccupiedHouse int    `json:"occupiedHouse"`

	// HouseDistance counts from the ruled house to the occupied house inclusively, 1..12.
	HouseDistance int `json:"houseDistance"`

	PlacementType     string        `json:"placementType"`
	PlacementStrength float64       `json:"placementStrength"`
	Dignity           DignityResult `json:"dignity"`
}

// TimelineEvent is one dated entry of a transit timeline.
type TimelineEvent struct {
	Event       string    `json:"eventLabel"`
	Date        time.Time `json:"date"`
	Phase       string    `json:"phaseTag"`
	Description string    `json:"description"`

	// Approximate marks dates the transit search could not verify.
	Approximate bool `json:"approximate,omitempty"`
}
