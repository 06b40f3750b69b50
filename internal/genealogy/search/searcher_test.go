package search

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"gimm/pkg/platform/circuit"
)

type memoryCache struct {
	entries map[string]*Entry
	getErr  error
	gets    int
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*Entry)}
}

func (c *memoryCache) Get(_ context.Context, version, key string) (*Entry, error) {
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[version+"/"+key], nil
}

func (c *memoryCache) Set(_ context.Context, version, key string, entry *Entry) error {
	c.sets++
	c.entries[version+"/"+key] = entry
	return nil
}

type SearcherSuite struct {
	suite.Suite
	ctx   context.Context
	cache *memoryCache
	logs  *bytes.Buffer
}

func TestSearcherSuite(t *testing.T) {
	suite.Run(t, new(SearcherSuite))
}

func (s *SearcherSuite) SetupTest() {
	s.ctx = context.Background()
	s.cache = newMemoryCache()
	s.logs = &bytes.Buffer{}
}

func (s *SearcherSuite) searcher() *Searcher {
	return NewSearcher(10, WithCache(s.cache), WithLogger(slog.New(slog.NewTextHandler(s.logs, nil))))
}

func (s *SearcherSuite) TestMissThenHit() {
	tree := fixtureTree(s.T())
	searcher := s.searcher()

	first := searcher.Search(s.ctx, tree, "v1", Query{Text: "groat"})
	s.Equal(1, s.cache.sets)

	second := searcher.Search(s.ctx, tree, "v1", Query{Text: " GROAT "})
	s.Equal(1, s.cache.sets, "normalized query served from cache")
	s.Equal(ids(first), ids(second))
	s.Equal(first.Total, second.Total)
}

func (s *SearcherSuite) TestVersionsDoNotShareEntries() {
	tree := fixtureTree(s.T())
	searcher := s.searcher()

	searcher.Search(s.ctx, tree, "v1", Query{Text: "groat"})
	searcher.Search(s.ctx, tree, "v2", Query{Text: "groat"})

	s.Equal(2, s.cache.sets)
}

func (s *SearcherSuite) TestCacheFailureFallsBack() {
	s.cache.getErr = errors.New("connection refused")
	tree := fixtureTree(s.T())

	res := s.searcher().Search(s.ctx, tree, "v1", Query{Text: "michael"})

	s.Equal([]int{1, 4}, toInts(ids(res)))
	s.Contains(s.logs.String(), "search cache lookup failed")
}

func (s *SearcherSuite) TestOpenBreakerBypassesCache() {
	s.cache.getErr = errors.New("connection refused")
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	breaker := circuit.New("search-cache",
		circuit.WithFailureThreshold(2),
		circuit.WithSuccessThreshold(1),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	tree := fixtureTree(s.T())
	searcher := NewSearcher(10, WithCache(s.cache), WithBreaker(breaker),
		WithLogger(slog.New(slog.NewTextHandler(s.logs, nil))))

	searcher.Search(s.ctx, tree, "v1", Query{Text: "groat"})
	searcher.Search(s.ctx, tree, "v1", Query{Text: "groat"})
	s.True(breaker.IsOpen())
	s.Contains(s.logs.String(), "search cache circuit opened")

	res := searcher.Search(s.ctx, tree, "v1", Query{Text: "groat"})
	s.Equal(2, s.cache.gets, "open circuit skips the cache")
	s.Equal([]int{2, 1}, toInts(ids(res)))

	s.cache.getErr = nil
	now = now.Add(time.Minute)
	searcher.Search(s.ctx, tree, "v1", Query{Text: "groat"})
	s.Equal(3, s.cache.gets, "probe after cooldown")
	s.False(breaker.IsOpen())
	s.Contains(s.logs.String(), "search cache circuit closed")
}

func (s *SearcherSuite) TestEmptyQuerySkipsCache() {
	res := s.searcher().Search(s.ctx, fixtureTree(s.T()), "v1", Query{})

	s.Empty(res.Matches)
	s.Equal(0, s.cache.sets)
}

func TestSearcherWithoutCache(t *testing.T) {
	res := NewSearcher(1).Search(context.Background(), fixtureTree(t), "v1", Query{Surname: "groat"})

	assert.Len(t, res.Matches, 1)
	assert.True(t, res.Truncated)
	assert.Equal(t, 2, res.Total)
}

func toInts[T ~int](in []T) []int {
	out := make([]int, 0, len(in))
	for _, v := range in {
		out = append(out, int(v))
	}
	return out
}
