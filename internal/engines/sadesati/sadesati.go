package sadesati

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/config"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/ephemeris"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/transit"
	"github.com/llm-d/llm-d-graha-engine/internal/logging"
)

// Phase is a stage of Saturn's passage over the natal Moon.
type Phase string

const (
	PhaseNone     Phase = ""
	PhaseRising   Phase = "rising"
	PhasePeak     Phase = "peak"
	PhaseSetting  Phase = "setting"
	PhaseComplete Phase = "complete"
)

// Status is whether Sade Sati is in effect for a Moon sign and Saturn sign.
type Status struct {
	Active     bool          `json:"active"`
	Phase      Phase         `json:"phase,omitempty"`
	MoonSign   v1alpha1.Sign `json:"moonSign"`
	SaturnSign v1alpha1.Sign `json:"saturnSign"`
}

// StatusOf returns the Sade Sati status of Saturn in saturn relative to the natal
// Moon in moon. It is active while Saturn transits the sign before the Moon, the
// Moon sign and the sign after it.
func StatusOf(moon, saturn v1alpha1.Sign) Status {
	s := Status{MoonSign: moon, SaturnSign: saturn}
	switch saturn {
	case moon.Add(-1):
		s.Active, s.Phase = true, PhaseRising
	case moon:
		s.Active, s.Phase = true, PhasePeak
	case moon.Add(1):
		s.Active, s.Phase = true, PhaseSetting
	}
	return s
}

// Analysis is the Sade Sati state at an instant and the timeline of the
// current or next cycle.
type Analysis struct {
	Status
	At       time.Time                `json:"at"`
	Timeline []v1alpha1.TimelineEvent `json:"timeline"`

	// RemainingDays is the time left in the current phase; zero when inactive.
	RemainingDays float64 `json:"remainingDays,omitempty"`
}

// Analyzer computes Sade Sati timing from an ephemeris source.
type Analyzer struct {
	source   ephemeris.Source
	searcher *transit.Searcher
}

// NewAnalyzer creates an Analyzer over source with the given search limits.
func NewAnalyzer(source ephemeris.Source, cfg config.TransitConfig) *Analyzer {
	return &Analyzer{
		source:   source,
		searcher: transit.NewSearcher(source, cfg),
	}
}

// Analyze evaluates Sade Sati for the natal Moon of chart at instant at. A chart
// without a Moon is a data-integrity error.
func (a *Analyzer) Analyze(ctx context.Context, chart *v1alpha1.Chart, at time.Time) (Analysis, error) {
	moon, err := chart.RequirePoint(v1alpha1.Moon)
	if err != nil {
		return Analysis{}, fmt.Errorf("analyzing sade sati: %w", err)
	}
	return a.AnalyzeMoonSign(ctx, moon.Sign, at), nil
}

// AnalyzeMoonSign evaluates Sade Sati for a natal Moon sign at instant at.
func (a *Analyzer) AnalyzeMoonSign(ctx context.Context, moon v1alpha1.Sign, at time.Time) Analysis {
	logger := logging.FromContext(ctx).WithValues("moonSign", moon)

	jd := ephemeris.JulianDay(at)
	saturn := a.source.Position(v1alpha1.Saturn, jd)
	res := Analysis{
		Status: StatusOf(moon, saturn.Sign),
		At:     at,
	}

	starts := a.phaseStarts(ctx, moon, at, res.Active)
	res.Timeline = timeline(moon, starts)

	if res.Active {
		end := starts[phaseIndex(res.Phase)+1]
		res.RemainingDays = math.Max(0, end.JulianDay-jd)
	}
	logger.V(logging.DEBUG).Info("Sade Sati evaluated",
		"saturnSign", saturn.Sign,
		"active", res.Active,
		"phase", res.Phase,
		"remainingDays", res.RemainingDays)
	return res
}

// phaseStarts returns Saturn's ingresses into the rising, peak and setting signs
// and into the sign that ends the cycle. During an active cycle the rising
// ingress is the one that began it; otherwise it is the next one.
func (a *Analyzer) phaseStarts(ctx context.Context, moon v1alpha1.Sign, at time.Time, active bool) [4]transit.Result {
	var starts [4]transit.Result
	rising := moon.Add(-1)
	if active {
		starts[0] = a.searcher.PreviousIngress(ctx, v1alpha1.Saturn, rising, at)
	} else {
		starts[0] = a.searcher.NextIngress(ctx, v1alpha1.Saturn, rising, at)
	}
	for i := 1; i < len(starts); i++ {
		starts[i] = a.searcher.NextIngress(ctx, v1alpha1.Saturn, rising.Add(i), starts[i-1].Time)
	}
	return starts
}

var events = [4]struct {
	label       string
	phase       Phase
	description string
}{
	{"Sade Sati Begins (Rising Phase)", PhaseRising, "Saturn enters the 12th sign from the Moon (%s)"},
	{"Peak Phase Begins", PhasePeak, "Saturn enters the Moon sign (%s)"},
	{"Setting Phase Begins", PhaseSetting, "Saturn enters the 2nd sign from the Moon (%s)"},
	{"Sade Sati Ends", PhaseComplete, "Saturn leaves the 2nd sign from the Moon for %s"},
}

func timeline(moon v1alpha1.Sign, starts [4]transit.Result) []v1alpha1.TimelineEvent {
	out := make([]v1alpha1.TimelineEvent, 0, len(starts))
	for i, r := range starts {
		e := events[i]
		out = append(out, v1alpha1.TimelineEvent{
			Event:       e.label,
			Date:        r.Time,
			Phase:       string(e.phase),
			Description: fmt.Sprintf(e.description, moon.Add(i-1)),
			Approximate: r.Approximate,
		})
	}
	return out
}

func phaseIndex(p Phase) int {
	switch p {
	case PhasePeak:
		return 1
	case PhaseSetting:
		return 2
	default:
		return 0
	}
}
