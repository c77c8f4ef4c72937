package aspect

import (
	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
)

// Significant returns the aspects whose strength is at least threshold,
// preserving order.
func Significant(aspects []v1alpha1.Aspect, threshold float64) []v1alpha1.Aspect {
	var out []v1alpha1.Aspect
	for _, a := range aspects {
		if a.Strength >= threshold {
			out = append(out, a)
		}
	}
	return out
}

// Received returns the aspects cast on planet.
func Received(aspects []v1alpha1.Aspect, planet v1alpha1.Planet) []v1alpha1.Aspect {
	var out []v1alpha1.Aspect
	for _, a := range aspects {
		if a.Target == planet {
			out = append(out, a)
		}
	}
	return out
}

// NatureTotals sums aspect strengths by the nature of the casting planet.
type NatureTotals struct {
	Benefic float64 `json:"benefic"`
	Malefic float64 `json:"malefic"`
	Neutral float64 `json:"neutral"`
	Count   int     `json:"count"`
}

func (t *NatureTotals) add(a v1alpha1.Aspect) {
	switch a.Nature {
	case v1alpha1.Benefic:
		t.Benefic += a.Strength
	case v1alpha1.Malefic:
		t.Malefic += a.Strength
	default:
		t.Neutral += a.Strength
	}
	t.Count++
}

// Net is benefic minus malefic strength.
func (t NatureTotals) Net() float64 {
	return t.Benefic - t.Malefic
}

// PlanetSummary aggregates the aspects a planet gives and receives.
type PlanetSummary struct {
	Planet   v1alpha1.Planet `json:"planet"`
	Given    NatureTotals    `json:"given"`
	Received NatureTotals    `json:"received"`
}

// Summarize aggregates aspects per planet. Planets with no aspect either way
// are absent from the result.
func Summarize(aspects []v1alpha1.Aspect) map[v1alpha1.Planet]PlanetSummary {
	out := make(map[v1alpha1.Planet]PlanetSummary)
	for _, a := range aspects {
		src := out[a.Source]
		src.Planet = a.Source
		src.Given.add(a)
		out[a.Source] = src

		tgt := out[a.Target]
		tgt.Planet = a.Target
		tgt.Received.add(a)
		out[a.Target] = tgt
	}
	return out
}

// IncomingByHouse groups house aspects by the aspected house.
func IncomingByHouse(aspects []v1alpha1.HouseAspect) map[int][]v1alpha1.HouseAspect {
	out := make(map[int][]v1alpha1.HouseAspect)
	for _, a := range aspects {
		out[a.House] = append(out[a.House], a)
	}
	return out
}

// MutualPair is two planets that aspect each other.
type MutualPair struct {
	First  v1alpha1.Planet `json:"first"`
	Second v1alpha1.Planet `json:"second"`

	// FirstLabel and SecondLabel are the labels each planet casts on the other.
	FirstLabel  string `json:"firstLabel"`
	SecondLabel string `json:"secondLabel"`
}

// Mutual returns the planet pairs that aspect each other, ordered by the first
// planet then the second, with First < Second.
func Mutual(aspects []v1alpha1.Aspect) []MutualPair {
	type key struct{ from, to v1alpha1.Planet }
	labels := make(map[key]string, len(aspects))
	for _, a := range aspects {
		if _, ok := labels[key{a.Source, a.Target}]; !ok {
			labels[key{a.Source, a.Target}] = a.Label
		}
	}

	var out []MutualPair
	for _, first := range v1alpha1.Planets {
		for _, second := range v1alpha1.Planets {
			if second <= first {
				continue
			}
			fwd, ok := labels[key{first, second}]
			if !ok {
				continue
			}
			back, ok := labels[key{second, first}]
			if !ok {
				continue
			}
			out = append(out, MutualPair{First: first, Second: second, FirstLabel: fwd, SecondLabel: back})
		}
	}
	return out
}
