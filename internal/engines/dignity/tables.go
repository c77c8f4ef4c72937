package dignity

import (
	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
)

// point is an exact sign and degree.
type point struct {
	sign   v1alpha1.Sign
	degree float64
}

// degreeRange is an inclusive degree range within one sign.
type degreeRange struct {
	sign       v1alpha1.Sign
	start, end float64
}

// exaltations are the exact exaltation points of the seven visible planets.
// Debilitation is the opposite point.
var exaltations = [v1alpha1.PlanetCount]point{
	v1alpha1.Sun:     {v1alpha1.Aries, 10},
	v1alpha1.Moon:    {v1alpha1.Taurus, 3},
	v1alpha1.Mars:    {v1alpha1.Capricorn, 28},
	v1alpha1.Mercury: {v1alpha1.Virgo, 15},
	v1alpha1.Jupiter: {v1alpha1.Cancer, 5},
	v1alpha1.Venus:   {v1alpha1.Pisces, 27},
	v1alpha1.Saturn:  {v1alpha1.Libra, 20},
}

var moolatrikonas = [v1alpha1.PlanetCount]degreeRange{
	v1alpha1.Sun:     {v1alpha1.Leo, 0, 20},
	v1alpha1.Moon:    {v1alpha1.Taurus, 3, 30},
	v1alpha1.Mars:    {v1alpha1.Aries, 0, 12},
	v1alpha1.Mercury: {v1alpha1.Virgo, 15, 20},
	v1alpha1.Jupiter: {v1alpha1.Sagittarius, 0, 10},
	v1alpha1.Venus:   {v1alpha1.Libra, 0, 15},
	v1alpha1.Saturn:  {v1alpha1.Aquarius, 0, 20},
}

var ownSigns = [v1alpha1.PlanetCount][]v1alpha1.Sign{
	v1alpha1.Sun:     {v1alpha1.Leo},
	v1alpha1.Moon:    {v1alpha1.Cancer},
	v1alpha1.Mars:    {v1alpha1.Aries, v1alpha1.Scorpio},
	v1alpha1.Mercury: {v1alpha1.Gemini, v1alpha1.Virgo},
	v1alpha1.Jupiter: {v1alpha1.Sagittarius, v1alpha1.Pisces},
	v1alpha1.Venus:   {v1alpha1.Taurus, v1alpha1.Libra},
	v1alpha1.Saturn:  {v1alpha1.Capricorn, v1alpha1.Aquarius},
}

// shadowSigns are the exaltation and debilitation signs of the lunar nodes.
var shadowSigns = [v1alpha1.PlanetCount]struct{ exalted, debilitated v1alpha1.Sign }{
	v1alpha1.Rahu: {v1alpha1.Gemini, v1alpha1.Sagittarius},
	v1alpha1.Ketu: {v1alpha1.Sagittarius, v1alpha1.Gemini},
}

// Relationship is the natural friendship of one planet towards another.
type Relationship int

const (
	RelationNeutral Relationship = iota
	RelationGreatFriend
	RelationFriend
	RelationEnemy
	RelationBitterEnemy
)

func (r Relationship) String() string {
	return string(r.dignityType())
}

func (r Relationship) dignityType() v1alpha1.DignityType {
	switch r {
	case RelationGreatFriend:
		return v1alpha1.DignityGreatFriend
	case RelationFriend:
		return v1alpha1.DignityFriend
	case RelationEnemy:
		return v1alpha1.DignityEnemy
	case RelationBitterEnemy:
		return v1alpha1.DignityBitterEnemy
	default:
		return v1alpha1.DignityNeutral
	}
}

// friendTiers lists the planets a planet regards in each non-neutral tier.
type friendTiers struct {
	greatFriends []v1alpha1.Planet
	friends      []v1alpha1.Planet
	enemies      []v1alpha1.Planet
	bitter       []v1alpha1.Planet
}

func (t friendTiers) relationTo(p v1alpha1.Planet) Relationship {
	switch {
	case contains(t.greatFriends, p):
		return RelationGreatFriend
	case contains(t.friends, p):
		return RelationFriend
	case contains(t.enemies, p):
		return RelationEnemy
	case contains(t.bitter, p):
		return RelationBitterEnemy
	default:
		return RelationNeutral
	}
}

var nodes = []v1alpha1.Planet{v1alpha1.Rahu, v1alpha1.Ketu}

var friendships = [v1alpha1.PlanetCount]friendTiers{
	v1alpha1.Sun: {
		greatFriends: []v1alpha1.Planet{v1alpha1.Moon, v1alpha1.Mars, v1alpha1.Jupiter},
		friends:      []v1alpha1.Planet{v1alpha1.Mercury},
		bitter:       nodes,
	},
	v1alpha1.Moon: {
		greatFriends: []v1alpha1.Planet{v1alpha1.Sun, v1alpha1.Mercury},
		friends:      []v1alpha1.Planet{v1alpha1.Mars, v1alpha1.Jupiter, v1alpha1.Venus, v1alpha1.Saturn},
		bitter:       nodes,
	},
	v1alpha1.Mars: {
		greatFriends: []v1alpha1.Planet{v1alpha1.Sun, v1alpha1.Moon, v1alpha1.Jupiter},
		enemies:      []v1alpha1.Planet{v1alpha1.Mercury},
		bitter:       nodes,
	},
	v1alpha1.Mercury: {
		greatFriends: []v1alpha1.Planet{v1alpha1.Sun, v1alpha1.Venus},
		friends:      []v1alpha1.Planet{v1alpha1.Moon},
		bitter:       nodes,
	},
	v1alpha1.Jupiter: {
		greatFriends: []v1alpha1.Planet{v1alpha1.Sun, v1alpha1.Moon, v1alpha1.Mars},
		enemies:      []v1alpha1.Planet{v1alpha1.Mercury, v1alpha1.Venus},
		bitter:       nodes,
	},
	v1alpha1.Venus: {
		greatFriends: []v1alpha1.Planet{v1alpha1.Mercury, v1alpha1.Saturn},
		friends:      []v1alpha1.Planet{v1alpha1.Moon},
		enemies:      []v1alpha1.Planet{v1alpha1.Sun, v1alpha1.Jupiter},
		bitter:       nodes,
	},
	v1alpha1.Saturn: {
		greatFriends: []v1alpha1.Planet{v1alpha1.Mercury, v1alpha1.Venus},
		friends:      []v1alpha1.Planet{v1alpha1.Moon},
		enemies:      []v1alpha1.Planet{v1alpha1.Sun, v1alpha1.Mars},
		bitter:       nodes,
	},
	v1alpha1.Rahu: {
		greatFriends: []v1alpha1.Planet{v1alpha1.Venus, v1alpha1.Saturn},
		friends:      []v1alpha1.Planet{v1alpha1.Mercury},
		enemies:      []v1alpha1.Planet{v1alpha1.Sun, v1alpha1.Moon, v1alpha1.Mars},
		bitter:       []v1alpha1.Planet{v1alpha1.Jupiter},
	},
	v1alpha1.Ketu: {
		greatFriends: []v1alpha1.Planet{v1alpha1.Mars},
		friends:      []v1alpha1.Planet{v1alpha1.Venus, v1alpha1.Saturn},
		enemies:      []v1alpha1.Planet{v1alpha1.Sun, v1alpha1.Moon},
		bitter:       []v1alpha1.Planet{v1alpha1.Jupiter},
	},
}

// pushkaraDegrees are the sensitive degrees of each sign.
var pushkaraDegrees = [v1alpha1.SignCount][]float64{
	v1alpha1.Aries:       {21, 25},
	v1alpha1.Taurus:      {23, 24},
	v1alpha1.Gemini:      {18, 17},
	v1alpha1.Cancer:      {19, 22},
	v1alpha1.Leo:         {20, 21},
	v1alpha1.Virgo:       {16, 25},
	v1alpha1.Libra:       {24, 23},
	v1alpha1.Scorpio:     {22, 19},
	v1alpha1.Sagittarius: {21, 20},
	v1alpha1.Capricorn:   {25, 16},
	v1alpha1.Aquarius:    {24, 23},
	v1alpha1.Pisces:      {22, 19},
}

// Friendship returns how a regards b.
func Friendship(a, b v1alpha1.Planet) Relationship {
	if !a.IsValid() {
		return RelationNeutral
	}
	return friendships[a].relationTo(b)
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
