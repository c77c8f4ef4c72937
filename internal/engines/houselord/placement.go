package houselord

// Placement describes where a lord sits relative to the house it rules.
type Placement struct {
	Type     string
	Strength float64
}

// placements is indexed by house distance minus one.
var placements = [12]Placement{
	{"Self-placed", 85},
	{"Wealth-focused", 70},
	{"Effort-based", 65},
	{"Comfort-seeking", 75},
	{"Creative", 80},
	{"Service-oriented", 60},
	{"Partnership-focused", 70},
	{"Transformative", 45},
	{"Fortune-bringing", 85},
	{"Achievement-oriented", 80},
	{"Gains-oriented", 90},
	{"Loss-indicating", 40},
}

// unknownPlacement applies to distances outside 1..12.
var unknownPlacement = Placement{Type: "Unknown", Strength: 50}

// PlacementFor returns the placement type and strength of a house distance.
func PlacementFor(distance int) Placement {
	if distance < 1 || distance > len(placements) {
		return unknownPlacement
	}
	return placements[distance-1]
}

// Category is the classical grouping of a house.
type Category string

const (
	Kendra   Category = "Kendra"
	Trikona  Category = "Trikona"
	Upachaya Category = "Upachaya"
	Dusthana Category = "Dusthana"
	Other    Category = "Other"
)

var categoryStrengths = map[Category]float64{
	Kendra:   85,
	Trikona:  90,
	Upachaya: 70,
	Dusthana: 30,
	Other:    60,
}

// CategoryOf returns the category of house. The 1st house is a Kendra and the
// 6th an Upachaya.
func CategoryOf(house int) Category {
	switch house {
	case 1, 4, 7, 10:
		return Kendra
	case 5, 9:
		return Trikona
	case 3, 6, 11:
		return Upachaya
	case 8, 12:
		return Dusthana
	default:
		return Other
	}
}

// CategoryStrength returns the base strength of the category of house.
func CategoryStrength(house int) float64 {
	return categoryStrengths[CategoryOf(house)]
}
