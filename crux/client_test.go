package crux

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vaibhavgoel0230/crux-analyzer/config"
	"github.com/vaibhavgoel0230/crux-analyzer/model"
)

// recordFixture mirrors a real queryRecord response: CLS percentiles and
// histogram bounds arrive as strings, the last histogram bucket is
// open-ended, and metrics this service does not report (INP) are present.
const recordFixture = `{
  "record": {
    "key": {"url": "https://example.com"},
    "metrics": {
      "largest_contentful_paint": {
        "histogram": [
          {"start": 0, "end": 2500, "density": 0.85},
          {"start": 2500, "end": 4000, "density": 0.10},
          {"start": 4000, "density": 0.05}
        ],
        "percentiles": {"p75": 2100}
      },
      "cumulative_layout_shift": {
        "histogram": [
          {"start": "0.00", "end": "0.10", "density": 0.91},
          {"start": "0.10", "end": "0.25", "density": 0.06},
          {"start": "0.25", "density": 0.03}
        ],
        "percentiles": {"p75": "0.08"}
      },
      "first_contentful_paint": {
        "histogram": [
          {"start": 0, "end": 1800, "density": 0.88},
          {"start": 1800, "end": 3000, "density": 0.08},
          {"start": 3000, "density": 0.04}
        ],
        "percentiles": {"p75": 1500},
        "collectionPeriod": {
          "firstDate": {"year": 2025, "month": 6, "day": 20},
          "lastDate": {"year": 2025, "month": 7, "day": 17}
        }
      },
      "interaction_to_next_paint": {
        "histogram": [{"start": 0, "end": 200, "density": 0.93}],
        "percentiles": {"p75": 120}
      }
    },
    "collectionPeriod": {
      "firstDate": {"year": 2025, "month": 6, "day": 20},
      "lastDate": {"year": 2025, "month": 7, "day": 17}
    }
  }
}`

func newTestClient(serverURL string) *Client {
	return NewClient(config.CrUXConfig{
		APIKey:  "test-key",
		APIURL:  serverURL,
		Timeout: 5,
	})
}

func TestQueryRecord_Success(t *testing.T) {
	var gotMethod, gotKey, gotContentType, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotKey = r.URL.Query().Get("key")
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(recordFixture))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	record, err := client.QueryRecord(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("QueryRecord() error = %v", err)
	}

	// Request shape
	if gotMethod != http.MethodPost {
		t.Errorf("Expected POST request, got %s", gotMethod)
	}
	if gotKey != "test-key" {
		t.Errorf("Expected key=test-key in query, got %q", gotKey)
	}
	if gotContentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", gotContentType)
	}
	var reqBody map[string]string
	if err := json.Unmarshal([]byte(gotBody), &reqBody); err != nil || reqBody["url"] != "https://example.com" {
		t.Errorf("Expected body with url field, got %q", gotBody)
	}

	// Only reported kinds survive parsing
	if len(record.Metrics) != 3 {
		t.Fatalf("Expected 3 metrics, got %d", len(record.Metrics))
	}

	lcp := record.Metrics[model.MetricLCP]
	if lcp.P75 == nil || *lcp.P75 != 2100 {
		t.Errorf("LCP p75 = %v, want 2100", lcp.P75)
	}
	if lcp.P90 != nil {
		t.Errorf("LCP p90 = %v, want nil", *lcp.P90)
	}
	if len(lcp.Distribution) != 3 {
		t.Fatalf("LCP distribution length = %d, want 3", len(lcp.Distribution))
	}
	if lcp.Distribution[0].End == nil || *lcp.Distribution[0].End != 2500 {
		t.Errorf("LCP first bucket end = %v, want 2500", lcp.Distribution[0].End)
	}
	if lcp.Distribution[2].End != nil {
		t.Errorf("LCP last bucket should be open-ended, got end %v", *lcp.Distribution[2].End)
	}

	// String-encoded CLS values decode as numbers
	cls := record.Metrics[model.MetricCLS]
	if cls.P75 == nil || *cls.P75 != 0.08 {
		t.Errorf("CLS p75 = %v, want 0.08", cls.P75)
	}
	if cls.Distribution[1].Start != 0.10 || *cls.Distribution[1].End != 0.25 {
		t.Errorf("CLS bucket bounds = %v..%v, want 0.10..0.25",
			cls.Distribution[1].Start, *cls.Distribution[1].End)
	}

	fcp := record.Metrics[model.MetricFCP]
	if fcp.CollectionPeriod == nil || fcp.CollectionPeriod.FirstDate.Day != 20 {
		t.Error("Expected metric-level collection period on FCP")
	}

	if record.CollectionPeriod.FirstDate != (model.CivilDate{Year: 2025, Month: 6, Day: 20}) {
		t.Errorf("Record collection period first date = %+v", record.CollectionPeriod.FirstDate)
	}
	if record.CollectionPeriod.LastDate != (model.CivilDate{Year: 2025, Month: 7, Day: 17}) {
		t.Errorf("Record collection period last date = %+v", record.CollectionPeriod.LastDate)
	}
}

func TestQueryRecord_HTTPErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantMsg    string
	}{
		{
			name:       "Not found",
			statusCode: http.StatusNotFound,
			body:       `{"error":{"code":404,"message":"chrome ux report data not found","status":"NOT_FOUND"}}`,
			wantMsg:    "Failed to fetch CrUX data: HTTP 404",
		},
		{
			name:       "Rate limited",
			statusCode: http.StatusTooManyRequests,
			body:       `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`,
			wantMsg:    "Failed to fetch CrUX data: HTTP 429",
		},
		{
			name:       "Server error without envelope",
			statusCode: http.StatusInternalServerError,
			body:       "internal error",
			wantMsg:    "Failed to fetch CrUX data: HTTP 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.QueryRecord(context.Background(), "https://example.com")
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %T", err)
			}
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.statusCode)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestQueryRecord_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"record": {`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.QueryRecord(context.Background(), "https://example.com")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if err.Error() != "Failed to fetch CrUX data: malformed response body" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestQueryRecord_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(recordFixture))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.httpClient.Timeout = 50 * time.Millisecond

	_, err := client.QueryRecord(context.Background(), "https://example.com")
	if err == nil {
		t.Fatal("Expected timeout error, got nil")
	}
	if err.Error() != "Failed to fetch CrUX data: request timed out" {
		t.Errorf("Error() = %q", err.Error())
	}
	// The request URL embeds the API key; it must never leak into messages
	if strings.Contains(err.Error(), "test-key") {
		t.Errorf("Error message leaked the API key: %q", err.Error())
	}
}

func TestQueryRecord_MissingKey(t *testing.T) {
	client := NewClient(config.CrUXConfig{Timeout: 5})

	if client.Configured() {
		t.Error("Configured() = true for empty key")
	}

	_, err := client.QueryRecord(context.Background(), "https://example.com")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewClient_TimeoutFallback(t *testing.T) {
	tests := []struct {
		name    string
		timeout int
		want    time.Duration
	}{
		{"Configured", 5, 5 * time.Second},
		{"Zero", 0, 10 * time.Second},
		{"Negative", -1, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(config.CrUXConfig{APIKey: "test-key", Timeout: tt.timeout})
			if got := client.httpClient.Timeout; got != tt.want {
				t.Errorf("httpClient.Timeout = %v, want %v", got, tt.want)
			}
		})
	}
}
