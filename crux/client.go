package crux

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vaibhavgoel0230/crux-analyzer/config"
	"github.com/vaibhavgoel0230/crux-analyzer/model"

	"github.com/rs/zerolog/log"
)

// DefaultAPIURL is the Chrome UX Report queryRecord endpoint.
const DefaultAPIURL = "https://chromeuxreport.googleapis.com/v1/records:queryRecord"

// defaultTimeoutSeconds bounds provider fetches when the configured timeout
// is missing or non-positive; a zero http.Client timeout would never expire.
const defaultTimeoutSeconds = 10

// ErrMissingAPIKey is returned when a query is attempted without a credential.
var ErrMissingAPIKey = errors.New("CrUX API key not configured")

// APIError is a failed provider fetch. StatusCode is set for non-200
// responses, Reason for transport and decode failures.
type APIError struct {
	StatusCode int
	Reason     string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("Failed to fetch CrUX data: HTTP %d", e.StatusCode)
	}
	return "Failed to fetch CrUX data: " + e.Reason
}

// Record is the parsed field data for one URL.
type Record struct {
	Metrics          map[model.MetricKind]Metric `json:"metrics"`
	CollectionPeriod model.CollectionPeriod      `json:"collectionPeriod"`
}

// Metric holds one metric's percentiles and value distribution.
type Metric struct {
	P75              *float64                `json:"p75,omitempty"`
	P90              *float64                `json:"p90,omitempty"`
	P99              *float64                `json:"p99,omitempty"`
	Distribution     []model.HistogramBucket `json:"distribution,omitempty"`
	CollectionPeriod *model.CollectionPeriod `json:"collectionPeriod,omitempty"`
}

// Client queries the Chrome UX Report API
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a CrUX API client from configuration
func NewClient(cfg config.CrUXConfig) *Client {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}

	return &Client{
		apiURL: apiURL,
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// metricNames maps CrUX API metric identifiers to reported metric kinds.
// Identifiers outside this map (INP, TTFB, experimental metrics) are ignored.
var metricNames = map[string]model.MetricKind{
	"largest_contentful_paint": model.MetricLCP,
	"cumulative_layout_shift":  model.MetricCLS,
	"first_contentful_paint":   model.MetricFCP,
}

// flexNumber decodes JSON numbers that the CrUX API serializes as strings
// for some metrics (CLS percentiles and histogram bounds).
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*n = flexNumber(v)
		return nil
	}
	return json.Unmarshal(data, (*float64)(n))
}

// queryRequest represents a CrUX API queryRecord request body
type queryRequest struct {
	URL string `json:"url"`
}

// queryResponse represents a CrUX API queryRecord response
type queryResponse struct {
	Record struct {
		Key struct {
			URL string `json:"url"`
		} `json:"key"`
		Metrics          map[string]wireMetric `json:"metrics"`
		CollectionPeriod *wirePeriod           `json:"collectionPeriod"`
	} `json:"record"`
}

type wireMetric struct {
	Histogram   []wireBucket `json:"histogram"`
	Percentiles struct {
		P75 *flexNumber `json:"p75"`
		P90 *flexNumber `json:"p90"`
		P99 *flexNumber `json:"p99"`
	} `json:"percentiles"`
	CollectionPeriod *wirePeriod `json:"collectionPeriod"`
}

type wireBucket struct {
	Start   flexNumber  `json:"start"`
	End     *flexNumber `json:"end"`
	Density flexNumber  `json:"density"`
}

type wirePeriod struct {
	FirstDate model.CivilDate `json:"firstDate"`
	LastDate  model.CivilDate `json:"lastDate"`
}

// wireError is the error envelope googleapis endpoints attach to non-200
// responses. Decoded for logging only.
type wireError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// QueryRecord fetches field data for a single normalized URL.
func (c *Client) QueryRecord(ctx context.Context, pageURL string) (*Record, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	jsonData, err := json.Marshal(queryRequest{URL: pageURL})
	if err != nil {
		return nil, &APIError{Reason: err.Error()}
	}

	endpoint := c.apiURL + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &APIError{Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Reason: transportReason(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logProviderError(pageURL, resp)
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Error().Err(err).Str("url", pageURL).Msg("Failed to decode CrUX response")
		return nil, &APIError{Reason: "malformed response body"}
	}

	return buildRecord(&decoded), nil
}

// transportReason renders a transport failure without echoing the request
// URL, which carries the API key in its query string.
func transportReason(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return "request timed out"
		}
		return urlErr.Err.Error()
	}
	return err.Error()
}

// logProviderError records the provider's error detail for a non-200 response
func logProviderError(pageURL string, resp *http.Response) {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	event := log.Warn().
		Str("url", pageURL).
		Int("status", resp.StatusCode)

	var detail wireError
	if err := json.Unmarshal(body, &detail); err == nil && detail.Error.Message != "" {
		event = event.
			Str("provider_message", detail.Error.Message).
			Str("provider_status", detail.Error.Status)
	}

	event.Msg("CrUX API returned non-200 status")
}

// buildRecord converts a decoded wire response into a Record
func buildRecord(decoded *queryResponse) *Record {
	record := &Record{
		Metrics: make(map[model.MetricKind]Metric, len(metricNames)),
	}

	if p := decoded.Record.CollectionPeriod; p != nil {
		record.CollectionPeriod = model.CollectionPeriod{
			FirstDate: p.FirstDate,
			LastDate:  p.LastDate,
		}
	}

	for name, kind := range metricNames {
		wm, ok := decoded.Record.Metrics[name]
		if !ok {
			continue
		}

		m := Metric{
			P75: floatPtr(wm.Percentiles.P75),
			P90: floatPtr(wm.Percentiles.P90),
			P99: floatPtr(wm.Percentiles.P99),
		}

		for _, b := range wm.Histogram {
			bucket := model.HistogramBucket{
				Start:   float64(b.Start),
				Density: float64(b.Density),
			}
			if b.End != nil {
				end := float64(*b.End)
				bucket.End = &end
			}
			m.Distribution = append(m.Distribution, bucket)
		}

		if wm.CollectionPeriod != nil {
			m.CollectionPeriod = &model.CollectionPeriod{
				FirstDate: wm.CollectionPeriod.FirstDate,
				LastDate:  wm.CollectionPeriod.LastDate,
			}
		}

		record.Metrics[kind] = m
	}

	return record
}

func floatPtr(n *flexNumber) *float64 {
	if n == nil {
		return nil
	}
	v := float64(*n)
	return &v
}
