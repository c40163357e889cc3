package analyzer

import (
	"math"

	"github.com/vaibhavgoel0230/crux-analyzer/model"
)

// summarize aggregates p75 values per metric kind across successful results.
// Kinds with no usable sample in any result are omitted entirely.
func summarize(results []*model.AnalysisResult) map[model.MetricKind]*model.SummaryStat {
	summary := make(map[model.MetricKind]*model.SummaryStat, len(model.MetricKinds))

	for _, kind := range model.MetricKinds {
		var values []float64
		for _, result := range results {
			if sample := result.Metrics[kind]; sample != nil && sample.P75 != nil {
				values = append(values, *sample.P75)
			}
		}
		if len(values) == 0 {
			continue
		}

		sum := values[0]
		minVal := values[0]
		maxVal := values[0]
		for _, v := range values[1:] {
			sum += v
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}

		summary[kind] = &model.SummaryStat{
			Avg:   round2(sum / float64(len(values))),
			Min:   minVal,
			Max:   maxVal,
			Count: len(values),
		}
	}

	return summary
}

// round2 rounds to two decimal places for the response contract
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
