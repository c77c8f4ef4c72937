package analysis

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/llm-d/llm-d-graha-engine/api/v1alpha1"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/aspect"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/common"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/dignity"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/ephemeris"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/houselord"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/sadesati"
	"github.com/llm-d/llm-d-graha-engine/internal/engines/strength"
	"github.com/llm-d/llm-d-graha-engine/internal/logging"
	"github.com/llm-d/llm-d-graha-engine/internal/utils/nature"
)

// Options select what an analysis computes.
type Options struct {
	// Profile names the scoring profile; empty uses the active configuration.
	Profile string

	// At enables the Sade Sati section evaluated at this instant.
	At time.Time
}

// PlanetReport is the evaluation of one planet.
type PlanetReport struct {
	Point       v1alpha1.ChartPoint     `json:"point"`
	Dignity     v1alpha1.DignityResult  `json:"dignity"`
	Strength    v1alpha1.StrengthResult `json:"strength"`
	HousesRuled []int                   `json:"housesRuled"`
}

// HouseReport is the evaluation of one house.
type HouseReport struct {
	House        int                         `json:"house"`
	Sign         v1alpha1.Sign               `json:"sign"`
	Category     houselord.Category          `json:"category"`
	Lord         v1alpha1.HouseLordPlacement `json:"lord"`
	LordStrength v1alpha1.StrengthResult     `json:"lordStrength"`
	Occupants    []v1alpha1.Planet           `json:"occupants"`
	Incoming     []v1alpha1.HouseAspect      `json:"incoming"`
}

// Report is the full analysis of a chart.
type Report struct {
	Ascendant     v1alpha1.Sign               `json:"ascendant"`
	LagnaLord     v1alpha1.HouseLordPlacement `json:"lagnaLord"`
	LagnaStrength v1alpha1.StrengthResult     `json:"lagnaStrength"`

	Planets []PlanetReport `json:"planets"`
	Houses  []HouseReport  `json:"houses"`

	Aspects     []v1alpha1.Aspect                        `json:"aspects"`
	OrbAspects  []v1alpha1.Aspect                        `json:"orbAspects"`
	Significant []v1alpha1.Aspect                        `json:"significant"`
	Summaries   map[v1alpha1.Planet]aspect.PlanetSummary `json:"summaries"`
	Mutual      []aspect.MutualPair                      `json:"mutual"`

	SadeSati *sadesati.Analysis `json:"sadeSati,omitempty"`
}

// Analyzer produces chart reports. It is safe for concurrent use.
type Analyzer struct {
	global  *common.GlobalConfig
	source  ephemeris.Source
	natures nature.NatureConfig
}

// NewAnalyzer creates an Analyzer. A nil source uses a cached approximator sized
// by the active configuration.
func NewAnalyzer(global *common.GlobalConfig, source ephemeris.Source, natures nature.NatureConfig) *Analyzer {
	if global == nil {
		global = common.NewGlobalConfig(nil)
	}
	if source == nil {
		source = ephemeris.NewCachedSource(ephemeris.NewApproximator(), global.GetEngineConfig().Ephemeris)
	}
	return &Analyzer{global: global, source: source, natures: natures}
}

// Analyze evaluates chart. Any data-integrity error aborts the analysis.
func (a *Analyzer) Analyze(ctx context.Context, chart *v1alpha1.Chart, opts Options) (*Report, error) {
	if err := chart.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chart: %w", err)
	}
	logger := logging.FromContext(ctx).WithValues("profile", opts.Profile)

	cfg := a.global.ResolveProfile(opts.Profile)
	scorer := strength.NewScorer(cfg, a.natures)
	houses := aspect.NewHouseCaster(cfg.Aspects, a.natures)
	orbs := aspect.NewOrbCaster(cfg.Aspects, a.natures)

	lords, err := houselord.ResolveAll(chart)
	if err != nil {
		return nil, fmt.Errorf("resolving house lords: %w", err)
	}

	report := &Report{
		Ascendant:  chart.Ascendant.Sign,
		LagnaLord:  lords[0],
		Aspects:    houses.Cast(chart),
		OrbAspects: orbs.Cast(chart),
	}
	report.Significant = aspect.Significant(report.Aspects, cfg.Aspects.SignificantThreshold)
	report.Summaries = aspect.Summarize(report.Aspects)
	report.Mutual = aspect.Mutual(report.Aspects)

	for _, point := range chart.Points {
		score, err := scorer.ScorePlanet(chart, point.Planet)
		if err != nil {
			return nil, err
		}
		report.Planets = append(report.Planets, PlanetReport{
			Point:       point,
			Dignity:     dignity.EvaluatePoint(point),
			Strength:    score,
			HousesRuled: houselord.HousesRuledBy(chart, point.Planet),
		})
	}

	incoming := aspect.IncomingByHouse(houses.HouseAspects(chart))
	for _, lord := range lords {
		score, err := scorer.ScoreHouseLord(chart, lord)
		if err != nil {
			return nil, err
		}
		h := HouseReport{
			House:        lord.House,
			Sign:         lord.RuledSign,
			Category:     houselord.CategoryOf(lord.House),
			Lord:         lord,
			LordStrength: score,
			Incoming:     incoming[lord.House],
		}
		for _, p := range chart.Occupants(lord.House) {
			h.Occupants = append(h.Occupants, p.Planet)
		}
		report.Houses = append(report.Houses, h)
	}
	report.LagnaStrength = report.Houses[0].LordStrength

	if !opts.At.IsZero() {
		ss, err := sadesati.NewAnalyzer(a.source, cfg.Transit).Analyze(ctx, chart, opts.At)
		if err != nil {
			return nil, err
		}
		report.SadeSati = &ss
	}

	logger.V(logging.DEBUG).Info("Chart analyzed",
		"ascendant", report.Ascendant,
		"lagnaLord", report.LagnaLord.Lord,
		"lagnaStrength", report.LagnaStrength.Total,
		"aspects", len(report.Aspects),
		"significant", len(report.Significant))
	return report, nil
}

// AnalyzeCharts analyzes charts concurrently with at most limit analyses in
// flight; a limit below one means no limit. Reports are returned in input order.
// The first error cancels the remaining analyses and is returned.
func (a *Analyzer) AnalyzeCharts(ctx context.Context, charts []*v1alpha1.Chart, opts Options, limit int) ([]*Report, error) {
	reports := make([]*Report, len(charts))
	eg, egCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, chart := range charts {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			r, err := a.Analyze(egCtx, chart, opts)
			if err != nil {
				return fmt.Errorf("chart %d: %w", i, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
