// Package index orders individuals for browsing and splits them into pages.
//
// Individuals are sorted by (surname, given) using ordinal string comparison,
// ties keeping source order. With N individuals there are ceil(sqrt(N)) page
// buckets of ceil(sqrt(N)) slots each, so every individual lands on exactly one
// page and any empty buckets can only trail the non-empty ones.
package index

import (
	"math"
	"sort"

	"gimm/internal/genealogy/models"
	dErrors "gimm/pkg/domain-errors"
)

// Sort returns people ordered by (surname, given). The input is not modified.
func Sort(people []*models.Individual) []*models.Individual {
	sorted := make([]*models.Individual, len(people))
	copy(sorted, people)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Name, sorted[j].Name
		if a.Surname != b.Surname {
			return a.Surname < b.Surname
		}
		return a.Given < b.Given
	})
	return sorted
}

// PageCount returns ceil(sqrt(n)) computed exactly for any n >= 0.
func PageCount(n int) int {
	if n <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(n)))
	for r*r < n {
		r++
	}
	for r > 1 && (r-1)*(r-1) >= n {
		r--
	}
	return r
}

// Page is one contiguous bucket of the sorted list.
type Page struct {
	Number      int
	Individuals []*models.Individual
}

// Empty reports whether the bucket holds nobody.
func (p Page) Empty() bool {
	return len(p.Individuals) == 0
}

// First returns the first individual on the page.
func (p Page) First() *models.Individual {
	if p.Empty() {
		return nil
	}
	return p.Individuals[0]
}

// Last returns the last individual on the page.
func (p Page) Last() *models.Individual {
	if p.Empty() {
		return nil
	}
	return p.Individuals[len(p.Individuals)-1]
}

// Paginate splits sorted into pageCount buckets of pageCount slots. Buckets past
// the end of the list are returned empty so bucket numbers never shift.
func Paginate(sorted []*models.Individual, pageCount int) []Page {
	pages := make([]Page, 0, pageCount)
	for n := 0; n < pageCount; n++ {
		start := min(n*pageCount, len(sorted))
		end := min(start+pageCount, len(sorted))
		pages = append(pages, Page{Number: n, Individuals: sorted[start:end:end]})
	}
	return pages
}

// Index is the paginated view of a tree's sorted individuals.
type Index struct {
	pages   []Page
	visible []Page
}

// New paginates the tree's sorted individuals.
func New(tree *models.Tree) *Index {
	pages := Paginate(tree.Sorted(), tree.PageCount())
	visible := make([]Page, 0, len(pages))
	for _, p := range pages {
		if !p.Empty() {
			visible = append(visible, p)
		}
	}
	return &Index{pages: pages, visible: visible}
}

// Pages returns every bucket, empty ones included.
func (ix *Index) Pages() []Page {
	return ix.pages
}

// Visible returns the non-empty pages in ascending order.
func (ix *Index) Visible() []Page {
	return ix.visible
}

// Page returns visible page n.
func (ix *Index) Page(n int) (Page, error) {
	if n < 0 || n >= len(ix.visible) {
		return Page{}, dErrors.New(dErrors.CodeNotFound, "index page not found")
	}
	return ix.visible[n], nil
}
