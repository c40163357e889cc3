package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/vaibhavgoel0230/crux-analyzer/analyzer"
	"github.com/vaibhavgoel0230/crux-analyzer/cache"
	"github.com/vaibhavgoel0230/crux-analyzer/config"
	"github.com/vaibhavgoel0230/crux-analyzer/crux"
	"github.com/vaibhavgoel0230/crux-analyzer/model"

	"github.com/rs/zerolog/log"
)

const (
	// version reported by the health endpoint
	version = "1.0.0"

	maxBatchURLs = 20
	maxURLLength = 2048
)

// AnalyzeRequest is the request body for batch analysis
type AnalyzeRequest struct {
	URLs []string `json:"urls" example:"https://web.dev,example.com"`
}

// AnalysisHandler handles Core Web Vitals analysis requests
type AnalysisHandler struct {
	service *analyzer.Service
	store   cache.Store
	config  config.Config
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *analyzer.Service, store cache.Store, cfg config.Config) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		store:   store,
		config:  cfg,
	}
}

// AnalyzeURLs handles POST /api/analyze-url
// @Summary Analyze URLs for Core Web Vitals
// @Description Fetches Chrome UX Report field data for up to 20 URLs, classifies LCP, CLS, and FCP percentiles into performance bands, and aggregates p75 statistics across the batch. Invalid URLs and fetch failures are reported per URL inside a 200 response without failing the batch.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "URL analysis request"
// @Success 200 {object} model.BatchResponse "Batch analysis results"
// @Failure 400 {object} ErrorResponse "Malformed body or invalid URL list"
// @Failure 503 {object} ErrorResponse "CrUX API key not configured"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/analyze-url [post]
func (h *AnalysisHandler) AnalyzeURLs(w http.ResponseWriter, r *http.Request) {
	var input AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		SendJSONError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	if message := validateURLList(input.URLs); message != "" {
		log.Warn().Int("url_count", len(input.URLs)).Str("reason", message).Msg("Rejected analysis request")
		SendJSONErrorWithDetails(w, http.StatusBadRequest, errors.New("Invalid input"), map[string]string{
			"urls": message,
		})
		return
	}

	response, err := h.service.AnalyzeURLs(r.Context(), input.URLs)
	if err != nil {
		if errors.Is(err, crux.ErrMissingAPIKey) {
			log.Error().Msg("Analysis requested without a configured CrUX API key")
			SendJSONError(w, http.StatusServiceUnavailable, errors.New("CrUX API error"), err.Error())
			return
		}
		log.Error().Err(err).Msg("Batch analysis failed")
		SendJSONError(w, http.StatusInternalServerError, errors.New("Internal server error"), "")
		return
	}

	SendJSONSuccess(w, http.StatusOK, response)
}

// validateURLList enforces the request-level list shape: the list itself plus
// the non-blank and length rules for its elements. Deeper URL validity is the
// normalizer's job; those failures become per-URL error entries rather than
// rejecting the batch.
func validateURLList(urls []string) string {
	if urls == nil {
		return "This field is required."
	}
	if len(urls) == 0 {
		return "At least one URL is required."
	}
	if len(urls) > maxBatchURLs {
		return "A maximum of 20 URLs can be analyzed per request."
	}
	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			return "URLs may not be blank."
		}
		if len(u) > maxURLLength {
			return "URLs must not exceed 2048 characters."
		}
	}
	return ""
}

// HealthCheck handles GET /api/health/
// @Summary Health check
// @Description Returns service status and whether a CrUX API key is configured
// @Tags System
// @Produce json
// @Success 200 {object} model.HealthResponse "Service is healthy"
// @Router /api/health/ [get]
func (h *AnalysisHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	SendJSONSuccess(w, http.StatusOK, model.HealthResponse{
		Status:        "ok",
		APIConfigured: h.config.CrUX.APIKey != "",
		Timestamp:     time.Now(),
		Version:       version,
	})
}

// CacheMetrics handles GET /api/cache/metrics
// @Summary Cache performance metrics
// @Description Returns provider-cache hit/miss counters for backends that track them
// @Tags System
// @Produce json
// @Success 200 {object} cache.MetricsSnapshot "Cache metrics"
// @Failure 503 {object} ErrorResponse "Cache disabled or backend does not report metrics"
// @Router /api/cache/metrics [get]
func (h *AnalysisHandler) CacheMetrics(w http.ResponseWriter, r *http.Request) {
	reporter, ok := h.store.(cache.MetricsReporter)
	if !ok {
		SendJSONError(w, http.StatusServiceUnavailable, errors.New("cache metrics unavailable"),
			"Enable the memory cache backend to collect metrics")
		return
	}

	SendJSONSuccess(w, http.StatusOK, reporter.MetricsSnapshot())
}
