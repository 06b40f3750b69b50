// Package service owns the published tree snapshot and answers page requests
// from it.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"gimm/internal/gedcom"
	"gimm/internal/genealogy/builder"
	"gimm/internal/genealogy/metrics"
	"gimm/internal/genealogy/models"
	"gimm/internal/genealogy/pedigree"
	"gimm/internal/genealogy/search"
	"gimm/internal/genealogy/sheet"
	"gimm/internal/render"
	dErrors "gimm/pkg/domain-errors"
	"gimm/pkg/platform/sentinel"
)

var tracer = otel.Tracer("gimm/genealogy/service")

// DefaultSearchLimit caps search results when no searcher is configured.
const DefaultSearchLimit = 500

// Service answers page requests from the currently published snapshot.
// Readers load the snapshot pointer once per request and never block on a reload.
type Service struct {
	path         string
	contactEmail string
	version      string

	renderer *render.Renderer
	searcher *search.Searcher
	logger   *slog.Logger
	metrics  *metrics.Metrics

	current  atomic.Pointer[Snapshot]
	reloadMu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics records build phases, snapshot sizes and chart sizes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSearcher replaces the default uncached searcher.
func WithSearcher(searcher *search.Searcher) Option {
	return func(s *Service) {
		s.searcher = searcher
	}
}

// WithContactEmail is shown in every page footer.
func WithContactEmail(email string) Option {
	return func(s *Service) {
		s.contactEmail = email
	}
}

// WithVersion is the application version shown in every page footer.
func WithVersion(version string) Option {
	return func(s *Service) {
		s.version = version
	}
}

// New creates a Service reading the GEDCOM file at path. Nothing is loaded
// until Load is called.
func New(path string, renderer *render.Renderer, opts ...Option) *Service {
	s := &Service{
		path:     path,
		renderer: renderer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.searcher == nil {
		s.searcher = search.NewSearcher(DefaultSearchLimit, search.WithLogger(s.logger), search.WithMetrics(s.metrics))
	}
	return s
}

// Load parses the source file, builds a snapshot and publishes it.
func (s *Service) Load(ctx context.Context) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	ctx, span := tracer.Start(ctx, "Service.Load")
	defer span.End()

	snap, err := s.build(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return nil, err
	}
	s.current.Store(snap)
	s.metrics.SetSnapshotSize(snap.Tree.Len(), len(snap.Tree.Families()), snap.PageCount())
	span.SetAttributes(
		attribute.String("snapshot.version", snap.Version),
		attribute.Int("tree.individuals", snap.Tree.Len()),
	)
	s.logger.InfoContext(ctx, "snapshot published",
		"version", snap.Version,
		"individuals", snap.Tree.Len(),
		"families", len(snap.Tree.Families()),
		"index_pages", snap.PageCount(),
	)
	return snap, nil
}

// Reload rebuilds the snapshot. On failure the previous snapshot stays
// published and the error is logged.
func (s *Service) Reload(ctx context.Context) error {
	if _, err := s.Load(ctx); err != nil {
		s.metrics.IncrementReload("failed")
		s.logger.ErrorContext(ctx, "snapshot reload failed, keeping current snapshot",
			"error", err,
			"path", s.path,
		)
		return err
	}
	s.metrics.IncrementReload("published")
	return nil
}

// Publish makes snap the current snapshot.
func (s *Service) Publish(snap *Snapshot) {
	s.current.Store(snap)
}

// Current returns the published snapshot, or nil before the first Load.
func (s *Service) Current() *Snapshot {
	return s.current.Load()
}

func (s *Service) build(ctx context.Context) (*Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening gedcom source: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading gedcom source info: %w", err)
	}

	start := time.Now()
	recs, err := gedcom.Parse(f)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "gedcom source could not be parsed")
	}
	s.phase(ctx, "parse", start, "individuals", len(recs.Individuals), "families", len(recs.Families))

	start = time.Now()
	tree, err := builder.Build(recs, models.Metadata{
		SourceModTime: info.ModTime(),
		ContactEmail:  s.contactEmail,
		Version:       s.version,
	})
	if err != nil {
		return nil, err
	}
	s.phase(ctx, "build", start, "individuals", tree.Len(), "families", len(tree.Families()))

	start = time.Now()
	snap, err := NewSnapshot(ctx, tree, s.renderer)
	if err != nil {
		return nil, err
	}
	s.phase(ctx, "render", start, "index_pages", snap.PageCount())
	return snap, nil
}

func (s *Service) phase(ctx context.Context, name string, start time.Time, args ...any) {
	d := time.Since(start)
	s.metrics.ObservePhase(name, d)
	args = append(args, "phase", name, "duration_ms", d.Milliseconds())
	s.logger.InfoContext(ctx, "snapshot phase complete", args...)
}

func (s *Service) snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, dErrors.Wrap(sentinel.ErrUnavailable, dErrors.CodeUnavailable, "tree not loaded")
	}
	return snap, nil
}

// Sheet renders the page of individual id.
func (s *Service) Sheet(ctx context.Context, id models.IndividualID) (string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return "", err
	}
	sh, err := sheet.Build(snap.Tree, id)
	if err != nil {
		return "", err
	}
	return s.renderer.Sheet(snap.Tree.Metadata(), sh)
}

// Pedigree renders the ancestor chart of id within a budget of levels.
func (s *Service) Pedigree(ctx context.Context, id models.IndividualID, levels int) (string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return "", err
	}
	depth := pedigree.DepthFromLevels(levels)
	_, span := tracer.Start(ctx, "Service.Pedigree", trace.WithAttributes(
		attribute.Int("individual.id", int(id)),
		attribute.Int("chart.depth", depth),
	))
	defer span.End()

	root, err := snap.Pedigree.Build(id, depth)
	if err != nil {
		return "", err
	}
	count := root.Count()
	span.SetAttributes(attribute.Int("chart.individuals", count))
	s.metrics.ObserveChart("pedigree", count)
	return s.renderer.Pedigree(snap.Tree.Metadata(), root, levels)
}

// Descendants renders the descendant chart of id within a budget of levels.
func (s *Service) Descendants(ctx context.Context, id models.IndividualID, levels int) (string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return "", err
	}
	depth := pedigree.DepthFromLevels(levels)
	_, span := tracer.Start(ctx, "Service.Descendants", trace.WithAttributes(
		attribute.Int("individual.id", int(id)),
		attribute.Int("chart.depth", depth),
	))
	defer span.End()

	root, err := snap.Descendants.Build(id, depth)
	if err != nil {
		return "", err
	}
	count := root.Count()
	span.SetAttributes(attribute.Int("chart.individuals", count))
	s.metrics.ObserveChart("descendants", count)
	return s.renderer.Descendants(snap.Tree.Metadata(), root, levels)
}

// MasterIndex returns the pre-rendered master index page.
func (s *Service) MasterIndex(ctx context.Context) (string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return "", err
	}
	return snap.masterHTML, nil
}

// IndexPage returns pre-rendered index page n.
func (s *Service) IndexPage(ctx context.Context, n int) (string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return "", err
	}
	if n < 0 || n >= len(snap.pagesHTML) {
		return "", dErrors.New(dErrors.CodeNotFound, "index page not found")
	}
	return snap.pagesHTML[n], nil
}

// Surnames returns the pre-rendered surname index.
func (s *Service) Surnames(ctx context.Context) (string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return "", err
	}
	return snap.surnamesHTML, nil
}

// Search runs q and renders the results page.
func (s *Service) Search(ctx context.Context, q search.Query) (string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return "", err
	}
	ctx, span := tracer.Start(ctx, "Service.Search")
	defer span.End()

	res := s.searcher.Search(ctx, snap.Tree, snap.Version, q)
	span.SetAttributes(attribute.Int("search.total", res.Total), attribute.Bool("search.truncated", res.Truncated))
	return s.renderer.Search(snap.Tree.Metadata(), res)
}

// SnapshotVersion returns the version of the published snapshot.
func (s *Service) SnapshotVersion() (string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return "", err
	}
	return snap.Version, nil
}

// IsSourceMissing reports whether err comes from a missing source file.
func IsSourceMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
