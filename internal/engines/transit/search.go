package transit

import (
	"context"
	"math"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/config"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/ephemeris"
	"github.com/llm-d/llm-d-graha-engine/internal/logging"
	"github.com/llm-d/llm-d-graha-engine/internal/metrics"
)

const (
	hour = 1.0 / 24

	// bufferSignFraction caps the bracket half-width so that a window never spans
	// more than one boundary into the target sign.
	bufferSignFraction = 0.45

	refineHalfWidthHours   = 6
	boundaryHalfWidthHours = 24
	boundaryStepHours      = 0.5
)

// Request describes one ingress search.
type Request struct {
	Planet    v1alpha1.Planet
	Target    v1alpha1.Sign
	Start     time.Time
	Direction Direction
}

// Result is the outcome of a search. A search always yields an instant; when the
// boundary could not be located or verified the instant is a best effort and
// Approximate is set.
type Result struct {
	Planet    v1alpha1.Planet
	Target    v1alpha1.Sign
	JulianDay float64
	Time      time.Time

	// State is the terminal state, Done or Fallback.
	State       State
	Approximate bool

	// Estimate is the projected Julian Day before refinement.
	Estimate float64

	// Trace lists the visited states in order.
	Trace []State

	BracketIterations   int
	BisectionIterations int
}

// Searcher locates the instant a planet enters a sign. It is stateless between
// calls and safe for concurrent use when its Source is.
type Searcher struct {
	source ephemeris.Source
	cfg    config.TransitConfig
}

// NewSearcher creates a Searcher over source bounded by cfg.
func NewSearcher(source ephemeris.Source, cfg config.TransitConfig) *Searcher {
	return &Searcher{source: source, cfg: cfg}
}

// NextIngress finds the next entry of planet into target after from.
func (s *Searcher) NextIngress(ctx context.Context, planet v1alpha1.Planet, target v1alpha1.Sign, from time.Time) Result {
	return s.Search(ctx, Request{Planet: planet, Target: target, Start: from, Direction: Forward})
}

// PreviousIngress finds the most recent entry of planet into target before from.
func (s *Searcher) PreviousIngress(ctx context.Context, planet v1alpha1.Planet, target v1alpha1.Sign, from time.Time) Result {
	return s.Search(ctx, Request{Planet: planet, Target: target, Start: from, Direction: Backward})
}

// Search runs the state machine to a terminal state. It never fails.
func (s *Searcher) Search(ctx context.Context, req Request) Result {
	m := s.newMachine(ctx, req)
	m.run()

	metrics.ObserveTransitSearch(req.Planet.String(), string(m.state))
	metrics.ObserveTransitStage(string(StateBracketing), m.bracketIters)
	metrics.ObserveTransitStage(string(StateBisecting), m.bisectIters)

	res := Result{
		Planet:              req.Planet,
		Target:              req.Target,
		JulianDay:           m.result,
		Time:                ephemeris.TimeFromJulianDay(m.result),
		State:               m.state,
		Approximate:         m.state == StateFallback,
		Estimate:            m.estimate,
		Trace:               m.trace,
		BracketIterations:   m.bracketIters,
		BisectionIterations: m.bisectIters,
	}
	m.logger.V(logging.DEBUG).Info("Transit search finished",
		"planet", req.Planet,
		"target", req.Target,
		"direction", req.Direction,
		"state", res.State,
		"time", res.Time,
		"approximate", res.Approximate)
	return res
}

// machine carries the mutable state of a single search.
type machine struct {
	source ephemeris.Source
	cfg    config.TransitConfig
	req    Request
	logger logr.Logger

	state State
	trace []State

	startJD  float64
	dir      int
	signDays float64

	estimate float64
	lo, hi   float64
	result   float64

	bracketIters int
	bisectIters  int
}

func (s *Searcher) newMachine(ctx context.Context, req Request) *machine {
	return &machine{
		source:  s.source,
		cfg:     s.cfg,
		req:     req,
		logger:  logging.FromContext(ctx).WithValues("planet", req.Planet.String(), "target", req.Target.String()),
		state:   StateEstimating,
		trace:   []State{StateEstimating},
		startJD: ephemeris.JulianDay(req.Start),
	}
}

func (m *machine) run() {
	for !m.state.IsTerminal() {
		var next State
		switch m.state {
		case StateEstimating:
			next = m.estimating()
		case StateBracketing:
			next = m.bracketing()
		case StateBisecting:
			next = m.bisecting()
		case StateVerifying:
			next = m.verifying()
		}
		m.transition(next)
	}
}

func (m *machine) transition(to State) {
	if !isAllowedTransition(m.state, to) {
		m.logger.Error(nil, "Disallowed transit search transition, falling back",
			"from", m.state, "to", to)
		to = StateFallback
	}
	m.logger.V(logging.TRACE).Info("Transit search transition", "from", m.state, "to", to)
	m.state = to
	m.trace = append(m.trace, to)
}

func (m *machine) signAt(jd float64) v1alpha1.Sign {
	return m.source.Position(m.req.Planet, jd).Sign
}

// offset is the signed number of signs from the target to s along the planet's
// motion, in (-6,6]. Negative means the target is still ahead.
func (m *machine) offset(s v1alpha1.Sign) int {
	d := mod12((int(s) - int(m.req.Target)) * m.dir)
	if d > 6 {
		d -= 12
	}
	return d
}

func (m *machine) reached(jd float64) bool {
	return m.offset(m.signAt(jd)) >= 0
}

func (m *machine) inTarget(jd float64) bool {
	return m.signAt(jd) == m.req.Target
}

// estimating projects the ingress from the mean days per sign and the signed sign
// distance between the current and target signs.
func (m *machine) estimating() State {
	m.result = m.startJD
	m.estimate = m.startJD

	motion := m.source.MeanMotion(m.req.Planet)
	if motion == 0 || !m.req.Target.IsValid() {
		m.logger.V(logging.DEBUG).Info("Cannot estimate ingress", "meanMotion", motion)
		return StateFallback
	}
	m.dir = 1
	if motion < 0 {
		m.dir = -1
	}
	m.signDays = v1alpha1.DegreesPerSign / math.Abs(motion)

	pos := m.source.Position(m.req.Planet, m.startJD)
	traversed := pos.DegreeInSign / v1alpha1.DegreesPerSign
	if m.dir < 0 {
		traversed = 1 - traversed
	}

	if m.req.Direction == Backward {
		steps := mod12((int(pos.Sign) - int(m.req.Target)) * m.dir)
		m.estimate = m.startJD - (float64(steps)+traversed)*m.signDays
	} else {
		steps := mod12((int(m.req.Target) - int(pos.Sign)) * m.dir)
		if steps == 0 {
			steps = 12
		}
		m.estimate = m.startJD + (float64(steps)-traversed)*m.signDays
	}
	m.result = m.estimate
	m.logger.V(logging.TRACE).Info("Estimated ingress",
		"currentSign", pos.Sign, "signDays", m.signDays, "estimate", m.estimate)
	return StateBracketing
}

// bracketing searches for a window whose start has not reached the target and
// whose end has, sliding by a quarter sign while neither holds.
func (m *machine) bracketing() State {
	buffer := math.Min(m.cfg.BracketBufferDays, bufferSignFraction*m.signDays)
	step := m.signDays / 4
	m.lo, m.hi = m.estimate-buffer, m.estimate+buffer

	for m.bracketIters = 1; m.bracketIters <= m.cfg.MaxBracketIterations; m.bracketIters++ {
		loReached, hiReached := m.reached(m.lo), m.reached(m.hi)
		if !loReached && hiReached {
			return StateBisecting
		}
		if !hiReached {
			m.lo += step
			m.hi += step
		} else {
			m.lo -= step
			m.hi -= step
		}
		m.logger.V(logging.TRACE).Info("Sliding bracket", "iteration", m.bracketIters, "lo", m.lo, "hi", m.hi)
	}
	m.bracketIters = m.cfg.MaxBracketIterations
	m.result = m.estimate
	m.logger.V(logging.DEBUG).Info("Bracket iteration cap hit, returning estimate",
		"iterations", m.cfg.MaxBracketIterations)
	return StateFallback
}

// bisecting halves the bracket until it is narrower than the tolerance. The
// result is the end of the bracket, which has reached the target.
func (m *machine) bisecting() State {
	m.bisectIters = 0
	for m.bisectIters < m.cfg.MaxBisectionIterations && m.hi-m.lo >= m.cfg.BisectionToleranceDays {
		m.bisectIters++
		mid := (m.lo + m.hi) / 2
		if m.reached(mid) {
			m.hi = mid
		} else {
			m.lo = mid
		}
	}
	m.result = m.hi
	m.logger.V(logging.TRACE).Info("Bisection finished",
		"iterations", m.bisectIters, "width", m.hi-m.lo, "result", m.result)
	if !ptr.Deref(m.cfg.Verify, true) {
		return StateDone
	}
	return StateVerifying
}

// verifying confirms the crossing at hour resolution around the bisection result.
func (m *machine) verifying() State {
	// 1. walk back hour by hour to the first hour inside the target
	if m.inTarget(m.result) {
		maxSteps := int(math.Ceil((m.hi-m.lo)/hour)) + 2
		t := m.result
		for i := 0; i < maxSteps; i++ {
			prev := t - hour
			if !m.inTarget(prev) {
				m.result = t
				return StateDone
			}
			t = prev
		}
	}

	// 2. widening hour windows, refined at one-hour steps
	for _, window := range m.cfg.VerificationWindowsHours {
		step := math.Min(2, window/6) * hour
		if at, ok := m.scanCrossing(m.result-window*hour, m.result+window*hour, step); ok {
			if refined, ok := m.scanCrossing(at-refineHalfWidthHours*hour, at+refineHalfWidthHours*hour, hour); ok {
				at = refined
			}
			m.result = at
			return StateDone
		}
	}

	// 3. half-hour boundary scan
	if at, ok := m.scanCrossing(m.result-boundaryHalfWidthHours*hour, m.result+boundaryHalfWidthHours*hour, boundaryStepHours*hour); ok {
		m.result = at
		return StateDone
	}

	m.logger.V(logging.DEBUG).Info("Could not verify ingress, keeping best unverified date", "result", m.result)
	return StateFallback
}

// scanCrossing samples [from,to] at step and returns the first sample inside the
// target sign whose predecessor is outside it.
func (m *machine) scanCrossing(from, to, step float64) (float64, bool) {
	prevIn := m.inTarget(from)
	for t := from + step; t <= to+step/2; t += step {
		in := m.inTarget(t)
		if in && !prevIn {
			return t, true
		}
		prevIn = in
	}
	return 0, false
}

func mod12(n int) int {
	return ((n % 12) + 12) % 12
}
