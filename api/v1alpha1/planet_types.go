package v1alpha1

import (
	"fmt"
	"strings"
)

// Planet identifies one of the nine bodies used by the engines.
// The set is closed: every lookup table in the engines is an array indexed by Planet,
// so adding a body without extending the tables fails at compile time.
type Planet int

const (
	Sun Planet = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// PlanetCount is the number of bodies in the closed Planet set.
const PlanetCount = 9

// Planets lists every body in canonical order.
var Planets = [PlanetCount]Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

var planetNames = [PlanetCount]string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu"}

// IsValid reports whether p is one of the nine bodies.
func (p Planet) IsValid() bool {
	return p >= Sun && p <= Ketu
}

// IsShadow reports whether p is a lunar node.
func (p Planet) IsShadow() bool {
	return p == Rahu || p == Ketu
}

func (p Planet) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("Planet(%d)", int(p))
	}
	return planetNames[p]
}

// ParsePlanet resolves a case-insensitive planet name.
func ParsePlanet(name string) (Planet, error) {
	n := strings.TrimSpace(name)
	for i, candidate := range planetNames {
		if strings.EqualFold(candidate, n) {
			return Planet(i), nil
		}
	}
	return 0, fmt.Errorf("unknown planet %q", name)
}

// MarshalText encodes the planet by name.
func (p Planet) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid planet %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a planet name.
func (p *Planet) UnmarshalText(text []byte) error {
	parsed, err := ParsePlanet(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Sign is a zodiac sign index, Aries = 0 through Pisces = 11.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// SignCount is the number of zodiac signs.
const SignCount = 12

var signNames = [SignCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// signLords maps each sign to its ruling planet.
var signLords = [SignCount]Planet{Mars, Venus, Mercury, Moon, Sun, Mercury, Venus, Mars, Jupiter, Saturn, Saturn, Jupiter}

// Modality is the quality of a sign (movable, fixed or dual).
type Modality string

const (
	Movable Modality = "movable"
	Fixed   Modality = "fixed"
	Dual    Modality = "dual"
)

// Element is the classical element of a sign.
type Element string

const (
	Fire  Element = "fire"
	Earth Element = "earth"
	Air   Element = "air"
	Water Element = "water"
)

// IsValid reports whether s is within Aries..Pisces.
func (s Sign) IsValid() bool {
	return s >= Aries && s <= Pisces
}

func (s Sign) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Lord returns the ruling planet of the sign.
func (s Sign) Lord() Planet {
	return signLords[s.Normalize()]
}

// Add returns the sign n steps forward, wrapping around the zodiac.
func (s Sign) Add(n int) Sign {
	return Sign(((int(s)+n)%SignCount + SignCount) % SignCount)
}

// Normalize wraps an arbitrary index into Aries..Pisces.
func (s Sign) Normalize() Sign {
	return Aries.Add(int(s))
}

// Modality returns the sign's quality.
func (s Sign) Modality() Modality {
	switch s.Normalize() % 3 {
	case 0:
		return Movable
	case 1:
		return Fixed
	default:
		return Dual
	}
}

// Element returns the sign's element.
func (s Sign) Element() Element {
	switch s.Normalize() % 4 {
	case 0:
		return Fire
	case 1:
		return Earth
	case 2:
		return Air
	default:
		return Water
	}
}

// MarshalText encodes the sign by name.
func (s Sign) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid sign %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a case-insensitive sign name.
func (s *Sign) UnmarshalText(text []byte) error {
	n := strings.TrimSpace(string(text))
	for i, candidate := range signNames {
		if strings.EqualFold(candidate, n) {
			*s = Sign(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sign %q", string(text))
}
