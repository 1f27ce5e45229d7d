package budget

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"travelagg/internal/catalog"
	"travelagg/pkg/cache"
	"travelagg/pkg/logger"
)

const instrumentationName = "travelagg/internal/budget"

const (
	messageEmpty = "No combinations found within your budget. Try increasing your budget or reducing the number of days."
	messageFound = "Found %d travel combinations within your budget"
)

// CatalogProvider is the read side of the catalog the search runs against.
type CatalogProvider interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

type Option func(*Service)

func WithLimits(l Limits) Option {
	return func(s *Service) { s.limits = l.normalized() }
}

// WithDerivedRoutes prices legs missing from the route table by distance.
func WithDerivedRoutes(enabled bool) Option {
	return func(s *Service) { s.deriveRoutes = enabled }
}

type estimatorEntry struct {
	fingerprint string
	estimator   TransportEstimator
}

type Service struct {
	catalog      CatalogProvider
	cache        cache.Cache
	ttl          time.Duration
	logger       logger.Client
	limits       Limits
	deriveRoutes bool

	estimator atomic.Pointer[estimatorEntry]

	tracer     trace.Tracer
	searches   metric.Int64Counter
	candidates metric.Int64Histogram
}

func NewService(catalog CatalogProvider, cache cache.Cache, ttlMinutes int, logger logger.Client, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		cache:   cache,
		ttl:     time.Duration(ttlMinutes) * time.Minute,
		logger:  logger,
		limits:  DefaultLimits(),
		tracer:  otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.initMetrics()
	return s
}

func (s *Service) initMetrics() {
	meter := otel.Meter(instrumentationName)
	fallback := noop.NewMeterProvider().Meter(instrumentationName)

	var err error
	s.searches, err = meter.Int64Counter("budget_travel.searches",
		metric.WithDescription("Budget travel searches by outcome"))
	if err != nil {
		s.logger.Warn("Failed to create searches counter", logger.Err(err))
		s.searches, _ = fallback.Int64Counter("budget_travel.searches")
	}

	s.candidates, err = meter.Int64Histogram("budget_travel.candidates",
		metric.WithDescription("Candidate combinations generated per search"))
	if err != nil {
		s.logger.Warn("Failed to create candidates histogram", logger.Err(err))
		s.candidates, _ = fallback.Int64Histogram("budget_travel.candidates")
	}
}

// Upper bounds for a single search request.
const (
	MaxNumPersons = 1000
	MaxNumDays    = 365
)

// Validate checks the request fields that do not need the catalog.
func (r Request) Validate() error {
	switch {
	case r.Budget <= 0:
		return invalidRequest("budget must be greater than 0")
	case r.NumPersons < 1:
		return invalidRequest("num_persons must be at least 1")
	case r.NumPersons > MaxNumPersons:
		return invalidRequest("num_persons must be at most %d", MaxNumPersons)
	case r.NumDays < 1:
		return invalidRequest("num_days must be at least 1")
	case r.NumDays > MaxNumDays:
		return invalidRequest("num_days must be at most %d", MaxNumDays)
	}
	return nil
}

// generateCacheKey is deterministic over the request and the catalog version.
func (s *Service) generateCacheKey(req Request, fingerprint string) string {
	key := fmt.Sprintf("budget:%d:%d:%d:%s:%s:%d:%d:%d:%d:%t",
		req.Budget,
		req.NumPersons,
		req.NumDays,
		catalog.DestinationKey(req.Place),
		fingerprint,
		s.limits.MaxPackages,
		s.limits.MaxPerDestination,
		s.limits.MaxCandidates,
		s.limits.MaxResults,
		s.deriveRoutes,
	)

	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("budget:search:%x", hash[:16])
}

func (s *Service) snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		s.logger.Error("Failed to load catalog", logger.Err(err))
		return nil, catalogUnavailable(err)
	}
	return snap, nil
}

// estimatorFor reuses the estimator while the catalog fingerprint is unchanged.
func (s *Service) estimatorFor(snap *catalog.Snapshot) TransportEstimator {
	if cur := s.estimator.Load(); cur != nil && cur.fingerprint == snap.Fingerprint() {
		return cur.estimator
	}
	est := NewEstimator(snap, s.deriveRoutes)
	s.estimator.Store(&estimatorEntry{fingerprint: snap.Fingerprint(), estimator: est})
	return est
}

func (s *Service) Search(ctx context.Context, req Request) (resp *Response, err error) {
	ctx, span := s.tracer.Start(ctx, "budget.Search", trace.WithAttributes(
		attribute.Int("budget.num_persons", req.NumPersons),
		attribute.Int("budget.num_days", req.NumDays),
		attribute.String("budget.place", req.Place),
	))
	result := "error"
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		s.searches.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
		span.End()
	}()

	if err := req.Validate(); err != nil {
		result = "invalid"
		return nil, err
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		result = "unavailable"
		return nil, err
	}

	cacheKey := s.generateCacheKey(req, snap.Fingerprint())

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		s.logger.Info("Cache hit for budget search", logger.Field{Key: "cache_key", Value: cacheKey})

		var response Response
		uerr := json.Unmarshal([]byte(cached), &response)
		if uerr == nil {
			response.Metadata.CacheHit = true
			response.Metadata.CacheKey = cacheKey
			result = "cache_hit"
			return &response, nil
		}
		s.logger.Error("Failed to unmarshal cached data", logger.Err(uerr))
	} else if err != nil && !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("Cache lookup failed", logger.Err(err), logger.Field{Key: "cache_key", Value: cacheKey})
	}

	s.logger.Info("Cache miss for budget search", logger.Field{Key: "cache_key", Value: cacheKey})

	startTime := time.Now()
	response, err := s.search(ctx, snap, req)
	if err != nil {
		result = "invalid"
		return nil, err
	}

	response.Metadata.SearchTimeMs = uint32(time.Since(startTime).Milliseconds())
	response.Metadata.CacheKey = cacheKey
	if response.TotalCombinationsFound == 0 {
		result = "empty"
	} else {
		result = "found"
	}

	responseBytes, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("Failed to marshal response", logger.Err(err))
		return response, nil
	}

	if err := s.cache.Set(ctx, cacheKey, string(responseBytes), s.ttl); err != nil {
		s.logger.Error("Failed to cache response", logger.Err(err))
	}

	return response, nil
}

// search runs generation and ranking against one snapshot.
func (s *Service) search(ctx context.Context, snap *catalog.Snapshot, req Request) (*Response, error) {
	_, genSpan := s.tracer.Start(ctx, "budget.Generate")
	candidates, err := NewGenerator(s.estimatorFor(snap), s.limits).Generate(snap, req)
	genSpan.SetAttributes(attribute.Int("budget.candidates", len(candidates)))
	genSpan.End()
	if err != nil {
		return nil, err
	}
	s.candidates.Record(ctx, int64(len(candidates)))

	_, rankSpan := s.tracer.Start(ctx, "budget.Rank")
	combinations := FilterAndRank(candidates, req, s.limits.MaxResults)
	rankSpan.SetAttributes(attribute.Int("budget.results", len(combinations)))
	rankSpan.End()

	response := &Response{
		Request:                req,
		Combinations:           combinations,
		TotalCombinationsFound: len(combinations),
		Metadata: Metadata{
			CatalogVersion:       snap.Fingerprint(),
			CandidatesConsidered: len(candidates),
		},
	}
	if len(combinations) == 0 {
		response.Message = messageEmpty
	} else {
		response.Message = fmt.Sprintf(messageFound, len(combinations))
	}

	s.logger.Debug("Budget search ranked",
		logger.Field{Key: "candidates", Value: len(candidates)},
		logger.Field{Key: "results", Value: len(combinations)},
		logger.Field{Key: "place", Value: req.Place},
	)
	return response, nil
}

func (s *Service) Preview(ctx context.Context) (*Preview, error) {
	ctx, span := s.tracer.Start(ctx, "budget.Preview")
	defer span.End()

	snap, err := s.snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog unavailable")
		return nil, err
	}
	return buildPreview(snap), nil
}

// Export renders a combination, typically one returned by Search, as a PDF.
func (s *Service) Export(ctx context.Context, combo PackageCombination, numPersons int) ([]byte, error) {
	_, span := s.tracer.Start(ctx, "budget.Export")
	defer span.End()

	if err := validateCombination(combo); err != nil {
		return nil, err
	}

	pdf, err := GenerateItineraryPDF(ExportData{Combination: combo, NumPersons: numPersons})
	if err != nil {
		s.logger.Error("Failed to render itinerary", logger.Err(err))
		return nil, err
	}
	return pdf, nil
}
