package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gimm/internal/genealogy/descendant"
	"gimm/internal/genealogy/index"
	"gimm/internal/genealogy/models"
	"gimm/internal/genealogy/pedigree"
	"gimm/internal/genealogy/surname"
	"gimm/internal/render"
)

// Snapshot bundles an immutable tree with everything derived from it. A
// published snapshot is never modified; a reload publishes a new one.
type Snapshot struct {
	Version     string
	BuiltAt     time.Time
	Tree        *models.Tree
	Index       *index.Index
	Pedigree    *pedigree.Engine
	Descendants *descendant.Engine
	Surnames    []surname.Entry

	masterHTML   string
	pagesHTML    []string
	surnamesHTML string
}

// NewSnapshot derives the index, engines and pre-rendered pages from tree.
// Pages render concurrently; the tree is read-only so no locking is needed.
func NewSnapshot(ctx context.Context, tree *models.Tree, r *render.Renderer) (*Snapshot, error) {
	snap := &Snapshot{
		Version:     uuid.NewString(),
		BuiltAt:     time.Now(),
		Tree:        tree,
		Index:       index.New(tree),
		Pedigree:    pedigree.New(tree),
		Descendants: descendant.New(tree),
		Surnames:    surname.Build(tree),
	}
	meta := tree.Metadata()
	visible := snap.Index.Visible()
	snap.pagesHTML = make([]string, len(visible))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	g.Go(func() error {
		html, err := r.Master(meta, snap.Index, tree.Len())
		snap.masterHTML = html
		return err
	})
	g.Go(func() error {
		html, err := r.Surnames(meta, snap.Surnames)
		snap.surnamesHTML = html
		return err
	})
	for i := range visible {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			html, err := r.IndexPage(meta, snap.Index, i)
			if err != nil {
				return fmt.Errorf("index page %d: %w", i, err)
			}
			snap.pagesHTML[i] = html
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pre-rendering pages: %w", err)
	}
	return snap, nil
}

// PageCount is the number of visible index pages.
func (s *Snapshot) PageCount() int {
	return len(s.pagesHTML)
}
