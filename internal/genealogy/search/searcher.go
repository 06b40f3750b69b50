package search

import (
	"context"
	"log/slog"

	"gimm/internal/genealogy/metrics"
	"gimm/internal/genealogy/models"
	"gimm/pkg/platform/circuit"
)

// Cache stores search results for a snapshot version. Entries of different
// versions never collide, so a reload never serves stale matches.
type Cache interface {
	Get(ctx context.Context, version, key string) (*Entry, error)
	Set(ctx context.Context, version, key string, entry *Entry) error
}

// Entry is the cached form of a Result.
type Entry struct {
	IDs       []models.IndividualID `json:"ids"`
	Total     int                   `json:"total"`
	Truncated bool                  `json:"truncated"`
}

// Searcher runs queries with an optional cache in front of Run.
type Searcher struct {
	limit   int
	cache   Cache
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithCache puts cache in front of every search.
func WithCache(cache Cache) Option {
	return func(s *Searcher) {
		s.cache = cache
	}
}

// WithBreaker skips the cache while breaker is open.
func WithBreaker(breaker *circuit.Breaker) Option {
	return func(s *Searcher) {
		s.breaker = breaker
	}
}

// WithLogger sets the logger for cache failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

// WithMetrics records result sizes and cache outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Searcher) {
		s.metrics = m
	}
}

// NewSearcher creates a Searcher returning at most limit matches.
func NewSearcher(limit int, opts ...Option) *Searcher {
	s := &Searcher{limit: limit, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs q against tree. Cache failures are logged and fall back to a
// direct scan; they never fail the search.
func (s *Searcher) Search(ctx context.Context, tree *models.Tree, version string, q Query) Result {
	if q.Empty() {
		return Result{Query: q}
	}
	key := q.Key()
	useCache := s.cacheAllowed(ctx)

	if useCache {
		entry, err := s.cache.Get(ctx, version, key)
		switch {
		case err != nil:
			s.metrics.IncrementSearchCache("error")
			s.logger.WarnContext(ctx, "search cache lookup failed", "error", err)
			s.recordCache(ctx, err)
			useCache = false
		case entry != nil:
			s.metrics.IncrementSearchCache("hit")
			s.recordCache(ctx, nil)
			return fromEntry(tree, q, entry)
		default:
			s.metrics.IncrementSearchCache("miss")
			s.recordCache(ctx, nil)
		}
	}

	res := Run(tree, q, s.limit)
	s.metrics.ObserveSearch(res.Total)

	if useCache {
		if err := s.cache.Set(ctx, version, key, toEntry(res)); err != nil {
			s.logger.WarnContext(ctx, "search cache store failed", "error", err)
			s.recordCache(ctx, err)
		}
	}
	return res
}

func (s *Searcher) cacheAllowed(ctx context.Context) bool {
	if s.cache == nil {
		return false
	}
	if s.breaker != nil && !s.breaker.Allow() {
		s.metrics.IncrementSearchCache("bypass")
		s.logger.DebugContext(ctx, "search cache bypassed", "breaker", s.breaker.Name())
		return false
	}
	return true
}

func (s *Searcher) recordCache(ctx context.Context, err error) {
	if s.breaker == nil {
		return
	}
	if err != nil {
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.WarnContext(ctx, "search cache circuit opened", "breaker", s.breaker.Name())
		}
		return
	}
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "search cache circuit closed", "breaker", s.breaker.Name())
	}
}

func toEntry(res Result) *Entry {
	ids := make([]models.IndividualID, 0, len(res.Matches))
	for _, ind := range res.Matches {
		ids = append(ids, ind.ID)
	}
	return &Entry{IDs: ids, Total: res.Total, Truncated: res.Truncated}
}

func fromEntry(tree *models.Tree, q Query, entry *Entry) Result {
	res := Result{Query: q, Total: entry.Total, Truncated: entry.Truncated}
	for _, id := range entry.IDs {
		if ind, ok := tree.Individual(id); ok {
			res.Matches = append(res.Matches, ind)
		}
	}
	return res
}
