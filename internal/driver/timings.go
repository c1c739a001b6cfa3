package driver

import "mlc/internal/observ"

// AggregateTimings sums per-file phase timings; cached and failed files
// have none and are skipped.
func AggregateTimings(results []FileResult) observ.Report {
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if r.Timing != nil {
			reports = append(reports, *r.Timing)
		}
	}
	return observ.Aggregate(reports)
}
