package model

import "time"

// MetricKind identifies a Core Web Vitals metric in responses and summaries.
type MetricKind string

const (
	MetricLCP MetricKind = "lcp"
	MetricCLS MetricKind = "cls"
	MetricFCP MetricKind = "fcp"
)

// MetricKinds lists every metric the service reports, in reporting order.
var MetricKinds = []MetricKind{MetricLCP, MetricCLS, MetricFCP}

// MetricStatus is the classification band for a metric sample.
type MetricStatus string

const (
	StatusGood             MetricStatus = "good"
	StatusNeedsImprovement MetricStatus = "needs-improvement"
	StatusPoor             MetricStatus = "poor"
	StatusUnavailable      MetricStatus = "unavailable"
)

// CivilDate is a calendar date as reported by the field-data provider.
type CivilDate struct {
	Year  int `json:"year" example:"2025"`
	Month int `json:"month" example:"7"`
	Day   int `json:"day" example:"15"`
}

// CollectionPeriod is the date range the field data was aggregated over.
type CollectionPeriod struct {
	FirstDate CivilDate `json:"firstDate"`
	LastDate  CivilDate `json:"lastDate"`
}

// HistogramBucket is one slice of a metric's value distribution.
// The final bucket is open-ended and has no upper bound.
type HistogramBucket struct {
	Start   float64  `json:"start"`
	End     *float64 `json:"end,omitempty"`
	Density float64  `json:"density"`
}

// MetricSample holds the percentiles, distribution, and classification for
// one metric of one URL. Percentiles are null when the provider reported no
// usable data for the metric; status is "unavailable" in that case.
type MetricSample struct {
	P75              *float64          `json:"p75"`
	P90              *float64          `json:"p90"`
	P99              *float64          `json:"p99"`
	Distribution     []HistogramBucket `json:"distribution,omitempty"`
	Status           MetricStatus      `json:"status"`
	CollectionPeriod *CollectionPeriod `json:"collectionPeriod,omitempty"`
}

// AnalysisResult is the successful analysis of a single URL.
type AnalysisResult struct {
	URL              string                       `json:"url" example:"https://example.com"`
	FetchTime        time.Time                    `json:"fetchTime"`
	Metrics          map[MetricKind]*MetricSample `json:"metrics"`
	CollectionPeriod CollectionPeriod             `json:"collectionPeriod"`
}

// AnalysisError is the failed analysis of a single URL. URL is the raw input
// when normalization rejected it, the normalized URL when the fetch failed.
type AnalysisError struct {
	URL   string `json:"url" example:"not a url"`
	Error string `json:"error" example:"Failed to fetch CrUX data: HTTP 404"`
}

// SummaryStat aggregates one metric's p75 values across a batch.
type SummaryStat struct {
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// BatchResponse is the full response for a batch analysis request. Metrics
// absent from every result are omitted from Summary.
type BatchResponse struct {
	Results      []*AnalysisResult           `json:"results"`
	Summary      map[MetricKind]*SummaryStat `json:"summary"`
	Errors       []AnalysisError             `json:"errors"`
	TotalURLs    int                         `json:"totalUrls" example:"3"`
	SuccessCount int                         `json:"successCount" example:"2"`
	Timestamp    time.Time                   `json:"timestamp"`
}

// HealthResponse reports service liveness and credential presence.
type HealthResponse struct {
	Status        string    `json:"status" example:"ok"`
	APIConfigured bool      `json:"apiConfigured" example:"true"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version" example:"1.0.0"`
}
