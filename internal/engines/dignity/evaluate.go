package dignity

import (
	"math"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
)

const (
	// deepOrb is the distance from the exact point within which exaltation and
	// debilitation are deep.
	deepOrb = 3.0

	// gandantaSpan is the width of the junction at the end of a water sign and
	// the start of the following fire sign.
	gandantaSpan = v1alpha1.DegreesPerSign / 9

	pushkaraOrb  = 1.0
	navamsaCount = 9
)

// Strength bands of each classification.
const (
	StrengthDeepExaltation      = 100.0
	StrengthExaltedMax          = 99.0
	StrengthExaltedMin          = 85.0
	StrengthMoolatrikona        = 90.0
	StrengthOwnSign             = 85.0
	StrengthGreatFriend         = 72.0
	StrengthFriend              = 70.0
	StrengthNeutral             = 55.0
	StrengthEnemy               = 40.0
	StrengthBitterEnemy         = 38.0
	StrengthDebilitated         = 20.0
	StrengthDeepDebilitation    = 5.0
	StrengthDeepDebilitationMax = 15.0
	StrengthExaltedShadow       = 85.0
	StrengthDebilitatedShadow   = 20.0
)

var relationStrengths = map[Relationship]float64{
	RelationGreatFriend: StrengthGreatFriend,
	RelationFriend:      StrengthFriend,
	RelationNeutral:     StrengthNeutral,
	RelationEnemy:       StrengthEnemy,
	RelationBitterEnemy: StrengthBitterEnemy,
}

// Evaluate classifies planet at longitude. It is a pure function of its inputs.
func Evaluate(planet v1alpha1.Planet, longitude float64) v1alpha1.DignityResult {
	lon := v1alpha1.NormalizeLongitude(longitude)
	sign := v1alpha1.SignOf(lon)
	kind, strength := Classify(planet, lon)
	return v1alpha1.DignityResult{
		Planet:   planet,
		Sign:     sign,
		Type:     kind,
		Strength: strength,
		Flags: v1alpha1.DignityFlags{
			Gandanta:   IsGandanta(lon),
			Pushkara:   IsPushkara(lon),
			Vargottama: IsVargottama(lon),
		},
	}
}

// EvaluatePoint classifies a chart point by its longitude.
func EvaluatePoint(p v1alpha1.ChartPoint) v1alpha1.DignityResult {
	return Evaluate(p.Planet, p.Longitude)
}

// Classify returns the dignity type and strength of planet at longitude. The
// first matching rule wins: exaltation, debilitation, moolatrikona, own sign,
// then the planet's friendship with the sign lord.
func Classify(planet v1alpha1.Planet, longitude float64) (v1alpha1.DignityType, float64) {
	if !planet.IsValid() {
		return v1alpha1.DignityNeutral, StrengthNeutral
	}
	lon := v1alpha1.NormalizeLongitude(longitude)
	sign := v1alpha1.SignOf(lon)
	deg := v1alpha1.DegreeInSign(lon)

	if planet.IsShadow() {
		switch sign {
		case shadowSigns[planet].exalted:
			return v1alpha1.DignityExaltedShadow, StrengthExaltedShadow
		case shadowSigns[planet].debilitated:
			return v1alpha1.DignityDebilitatedShadow, StrengthDebilitatedShadow
		}
		return byFriendship(planet, sign)
	}

	ex := exaltations[planet]
	if sign == ex.sign {
		dist := math.Abs(deg - ex.degree)
		if dist <= deepOrb {
			return v1alpha1.DignityDeepExaltation, StrengthDeepExaltation
		}
		span := v1alpha1.DegreesPerSign - deepOrb
		s := StrengthExaltedMax - (StrengthExaltedMax-StrengthExaltedMin)*(dist-deepOrb)/span
		return v1alpha1.DignityExalted, clamp(s, StrengthExaltedMin, StrengthExaltedMax)
	}
	if sign == ex.sign.Add(6) {
		dist := math.Abs(deg - ex.degree)
		if dist <= deepOrb {
			s := StrengthDeepDebilitation + (StrengthDeepDebilitationMax-StrengthDeepDebilitation)*dist/deepOrb
			return v1alpha1.DignityDeepDebilitation, s
		}
		return v1alpha1.DignityDebilitated, StrengthDebilitated
	}

	mt := moolatrikonas[planet]
	if sign == mt.sign && deg >= mt.start && deg <= mt.end {
		return v1alpha1.DignityMoolatrikona, StrengthMoolatrikona
	}
	if contains(ownSigns[planet], sign) {
		return v1alpha1.DignityOwnSign, StrengthOwnSign
	}
	return byFriendship(planet, sign)
}

func byFriendship(planet v1alpha1.Planet, sign v1alpha1.Sign) (v1alpha1.DignityType, float64) {
	rel := Friendship(planet, sign.Lord())
	return rel.dignityType(), relationStrengths[rel]
}

// Gandanta returns the junction label ("Pisces-Aries") when longitude falls in
// the last ninth of a water sign or the first ninth of a fire sign.
func Gandanta(longitude float64) (string, bool) {
	lon := v1alpha1.NormalizeLongitude(longitude)
	sign := v1alpha1.SignOf(lon)
	deg := v1alpha1.DegreeInSign(lon)

	switch sign.Element() {
	case v1alpha1.Water:
		if deg >= v1alpha1.DegreesPerSign-gandantaSpan {
			return junction(sign, sign.Add(1)), true
		}
	case v1alpha1.Fire:
		if deg <= gandantaSpan {
			return junction(sign.Add(-1), sign), true
		}
	}
	return "", false
}

// IsGandanta reports whether longitude falls in a water-fire junction.
func IsGandanta(longitude float64) bool {
	_, ok := Gandanta(longitude)
	return ok
}

func junction(from, to v1alpha1.Sign) string {
	return from.String() + "-" + to.String()
}

// IsPushkara reports whether longitude is within a degree of one of its sign's
// Pushkara degrees.
func IsPushkara(longitude float64) bool {
	lon := v1alpha1.NormalizeLongitude(longitude)
	deg := v1alpha1.DegreeInSign(lon)
	for _, d := range pushkaraDegrees[v1alpha1.SignOf(lon)] {
		if math.Abs(deg-d) <= pushkaraOrb {
			return true
		}
	}
	return false
}

// navamsaStart is the offset from a sign to its first navamsa: movable signs
// start from themselves, fixed from their 9th and dual from their 5th.
var navamsaStart = map[v1alpha1.Modality]int{
	v1alpha1.Movable: 0,
	v1alpha1.Fixed:   8,
	v1alpha1.Dual:    4,
}

// NavamsaSign returns the sign of longitude in the ninth-harmonic chart.
func NavamsaSign(longitude float64) v1alpha1.Sign {
	lon := v1alpha1.NormalizeLongitude(longitude)
	sign := v1alpha1.SignOf(lon)
	part := int(v1alpha1.DegreeInSign(lon) * navamsaCount / v1alpha1.DegreesPerSign)
	if part >= navamsaCount {
		part = navamsaCount - 1
	}
	return sign.Add(navamsaStart[sign.Modality()] + part)
}

// IsVargottama reports whether longitude occupies the same sign in the natal and
// navamsa charts.
func IsVargottama(longitude float64) bool {
	lon := v1alpha1.NormalizeLongitude(longitude)
	return NavamsaSign(lon) == v1alpha1.SignOf(lon)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
