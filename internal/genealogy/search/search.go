// Package search matches individuals against a free-text or fielded query.
//
// Matching is case-insensitive. A surname or given-name field matches by
// prefix of the corresponding name; every free-text term must appear as a
// substring of the surname, the given name, or equal the individual's id.
// Results follow index order. Run is a pure function of (query, tree).
package search

import (
	"strings"

	"gimm/internal/genealogy/models"
	pstrings "gimm/pkg/platform/strings"
)

// Query is a search request.
type Query struct {
	Text    string
	Surname string
	Given   string
}

// Normalize folds case and whitespace so equivalent queries compare equal.
func (q Query) Normalize() Query {
	return Query{
		Text:    strings.Join(pstrings.Terms(q.Text), " "),
		Surname: pstrings.Fold(q.Surname),
		Given:   pstrings.Fold(q.Given),
	}
}

// Empty reports whether the query has no criteria.
func (q Query) Empty() bool {
	n := q.Normalize()
	return n.Text == "" && n.Surname == "" && n.Given == ""
}

// Key is a stable identity for the normalized query.
func (q Query) Key() string {
	n := q.Normalize()
	return "t=" + n.Text + "|s=" + n.Surname + "|g=" + n.Given
}

// Result is the outcome of a search.
type Result struct {
	Query     Query
	Matches   []*models.Individual
	Total     int
	Truncated bool
}

// Run scans the tree in index order and returns at most limit matches.
// A limit <= 0 means no limit. An empty query matches nobody.
func Run(tree *models.Tree, q Query, limit int) Result {
	res := Result{Query: q}
	if q.Empty() {
		return res
	}
	m := newMatcher(q)
	for _, ind := range tree.Sorted() {
		if !m.match(ind) {
			continue
		}
		res.Total++
		if limit > 0 && len(res.Matches) >= limit {
			res.Truncated = true
			continue
		}
		res.Matches = append(res.Matches, ind)
	}
	return res
}

type matcher struct {
	terms   []string
	surname string
	given   string
}

func newMatcher(q Query) matcher {
	n := q.Normalize()
	return matcher{terms: pstrings.Terms(n.Text), surname: n.Surname, given: n.Given}
}

func (m matcher) match(ind *models.Individual) bool {
	surname := pstrings.Fold(ind.Name.Surname)
	given := pstrings.Fold(ind.Name.Given)

	if m.surname != "" && !strings.HasPrefix(surname, m.surname) {
		return false
	}
	if m.given != "" && !givenPrefix(given, m.given) {
		return false
	}
	for _, term := range m.terms {
		if term == ind.ID.String() {
			continue
		}
		if !strings.Contains(surname, term) && !strings.Contains(given, term) {
			return false
		}
	}
	return true
}

// givenPrefix matches the start of any given name ("ann" matches "Mary Ann").
func givenPrefix(given, prefix string) bool {
	for _, part := range strings.Fields(given) {
		if strings.HasPrefix(part, prefix) {
			return true
		}
	}
	return strings.HasPrefix(given, prefix)
}
