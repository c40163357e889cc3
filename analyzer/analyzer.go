package analyzer

import (
	"context"
	"sync"
	"time"

	"github.com/vaibhavgoel0230/crux-analyzer/cache"
	"github.com/vaibhavgoel0230/crux-analyzer/config"
	"github.com/vaibhavgoel0230/crux-analyzer/crux"
	"github.com/vaibhavgoel0230/crux-analyzer/model"
	"github.com/vaibhavgoel0230/crux-analyzer/utils"

	"github.com/rs/zerolog/log"
)

const defaultMaxConcurrent = 4

// Service runs batch Core Web Vitals analyses against the field-data
// provider.
type Service struct {
	client *crux.Client
	store  cache.Store
	config config.Config
}

// New creates an analysis service. store may be nil to disable caching.
func New(client *crux.Client, store cache.Store, cfg config.Config) *Service {
	return &Service{
		client: client,
		store:  store,
		config: cfg,
	}
}

// outcome is the per-URL slot a worker fills: exactly one of result or
// failure is set.
type outcome struct {
	result  *model.AnalysisResult
	failure *model.AnalysisError
}

// AnalyzeURLs analyzes a batch of raw URLs. Per-URL failures never abort the
// batch; they surface as entries in the response's errors list. The only
// batch-level error is a missing provider credential, checked before any
// per-URL work starts.
func (s *Service) AnalyzeURLs(ctx context.Context, urls []string) (*model.BatchResponse, error) {
	if !s.client.Configured() {
		return nil, crux.ErrMissingAPIKey
	}

	log.Info().Int("total_urls", len(urls)).Msg("Starting batch analysis")

	workers := s.config.CrUX.MaxConcurrent
	if workers <= 0 {
		workers = defaultMaxConcurrent
	}
	if workers > len(urls) {
		workers = len(urls)
	}

	outcomes := make([]outcome, len(urls))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				// Each worker writes a disjoint slot, no locking needed
				outcomes[idx] = s.analyzeOne(ctx, urls[idx])
			}
		}()
	}

	for idx := range urls {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	// Walk the slots in input order so results and errors each preserve
	// the submission order of their URLs.
	results := make([]*model.AnalysisResult, 0, len(urls))
	analysisErrors := make([]model.AnalysisError, 0)
	for _, oc := range outcomes {
		if oc.result != nil {
			results = append(results, oc.result)
		} else if oc.failure != nil {
			analysisErrors = append(analysisErrors, *oc.failure)
		}
	}

	log.Info().
		Int("total_urls", len(urls)).
		Int("success_count", len(results)).
		Int("error_count", len(analysisErrors)).
		Msg("Batch analysis completed")

	return &model.BatchResponse{
		Results:      results,
		Summary:      summarize(results),
		Errors:       analysisErrors,
		TotalURLs:    len(urls),
		SuccessCount: len(results),
		Timestamp:    time.Now(),
	}, nil
}

// analyzeOne runs the per-URL pipeline: normalize, fetch, classify.
func (s *Service) analyzeOne(ctx context.Context, rawURL string) outcome {
	normalized, err := utils.NormalizeURL(rawURL)
	if err != nil {
		log.Warn().Str("url", rawURL).Err(err).Msg("URL rejected by normalizer")
		return outcome{failure: &model.AnalysisError{URL: rawURL, Error: err.Error()}}
	}

	record, err := s.lookup(ctx, normalized)
	if err != nil {
		log.Warn().Str("url", normalized).Err(err).Msg("CrUX fetch failed")
		return outcome{failure: &model.AnalysisError{URL: normalized, Error: err.Error()}}
	}

	return outcome{result: buildResult(normalized, record)}
}

// lookup serves a record from cache when possible, querying the provider on
// a miss. Only successful fetches are cached.
func (s *Service) lookup(ctx context.Context, normalizedURL string) (*crux.Record, error) {
	var key string
	if s.store != nil {
		key = utils.HashURL(normalizedURL)
		if record, found := s.store.Get(ctx, key); found {
			log.Debug().Str("url", normalizedURL).Msg("Cache hit")
			return record, nil
		}
	}

	record, err := s.client.QueryRecord(ctx, normalizedURL)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		s.store.Set(ctx, key, record)
	}

	return record, nil
}

// buildResult assembles the outward result for one URL. Every reported kind
// appears in the metrics map; kinds the provider had no usable data for are
// marked unavailable.
func buildResult(normalizedURL string, record *crux.Record) *model.AnalysisResult {
	metrics := make(map[model.MetricKind]*model.MetricSample, len(model.MetricKinds))

	for _, kind := range model.MetricKinds {
		metric, ok := record.Metrics[kind]
		if !ok || metric.P75 == nil {
			// Classification and aggregation both need p75
			metrics[kind] = &model.MetricSample{Status: model.StatusUnavailable}
			continue
		}

		metrics[kind] = &model.MetricSample{
			P75:              metric.P75,
			P90:              metric.P90,
			P99:              metric.P99,
			Distribution:     metric.Distribution,
			Status:           crux.Classify(kind, *metric.P75),
			CollectionPeriod: metric.CollectionPeriod,
		}
	}

	return &model.AnalysisResult{
		URL:              normalizedURL,
		FetchTime:        time.Now(),
		Metrics:          metrics,
		CollectionPeriod: record.CollectionPeriod,
	}
}
