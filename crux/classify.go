package crux

import "github.com/vaibhavgoel0230/crux-analyzer/model"

// Core Web Vitals thresholds. LCP and FCP are in milliseconds, CLS is
// unitless. A p75 exactly on a boundary falls in the better band.
const (
	lcpGoodMs = 2500.0
	lcpPoorMs = 4000.0
	clsGood   = 0.1
	clsPoor   = 0.25
	fcpGoodMs = 1800.0
	fcpPoorMs = 3000.0
)

// Classify maps a metric's p75 value to its performance band.
func Classify(kind model.MetricKind, p75 float64) model.MetricStatus {
	var good, poor float64

	switch kind {
	case model.MetricLCP:
		good, poor = lcpGoodMs, lcpPoorMs
	case model.MetricCLS:
		good, poor = clsGood, clsPoor
	case model.MetricFCP:
		good, poor = fcpGoodMs, fcpPoorMs
	default:
		return model.StatusUnavailable
	}

	switch {
	case p75 <= good:
		return model.StatusGood
	case p75 <= poor:
		return model.StatusNeedsImprovement
	default:
		return model.StatusPoor
	}
}
