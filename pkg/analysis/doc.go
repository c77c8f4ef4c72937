// Package analysis composes the chart engines into a single per-chart report.
//
// An Analyzer reads its scoring configuration from a shared common.GlobalConfig,
// so profile updates apply to the next analysis without rebuilding it. A report
// carries, for one chart:
//
//   - the lord of every house with its placement, dignity and strength
//   - the dignity and composite strength of every planet
//   - house-based and orb-based aspects with the significant, per-planet and
//     per-house views derived from them
//   - optionally the Sade Sati status and timeline at a given instant
//
// Example usage:
//
//	analyzer := analysis.NewAnalyzer(common.NewGlobalConfig(nil), nil, nature.DefaultNatureConfig())
//	report, err := analyzer.Analyze(ctx, chart, analysis.Options{At: time.Now()})
//	if err != nil {
//	    // the chart is malformed; nothing in the report can be trusted
//	}
//
// Data-integrity problems in a chart are returned as errors. Numerical
// shortfalls are not: they surface as approximate timeline entries.
package analysis
