// Cross-run aggregate statistics for the "batch" command, computed with
// gonum/stat the way the teacher's Metrics aggregates per-simulation
// numbers — promoted here from an indirect teacher dependency to a direct
// one.
package report

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// BatchSummary aggregates the total elapsed time across many estimator
// runs.
type BatchSummary struct {
	Runs   int
	Mean   float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	Min    float64
	Max    float64
}

// Summarize computes a BatchSummary over elapsed, a slice of one total
// elapsed time per run. elapsed is sorted in place.
func Summarize(elapsed []float64) BatchSummary {
	if len(elapsed) == 0 {
		return BatchSummary{}
	}
	sort.Float64s(elapsed)

	mean, stdDev := stat.MeanStdDev(elapsed, nil)
	return BatchSummary{
		Runs:   len(elapsed),
		Mean:   mean,
		StdDev: stdDev,
		P50:    stat.Quantile(0.50, stat.Empirical, elapsed, nil),
		P90:    stat.Quantile(0.90, stat.Empirical, elapsed, nil),
		P99:    stat.Quantile(0.99, stat.Empirical, elapsed, nil),
		Min:    elapsed[0],
		Max:    elapsed[len(elapsed)-1],
	}
}
