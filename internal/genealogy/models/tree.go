package models

import "time"

// Metadata describes the loaded source and is shown on every page.
type Metadata struct {
	SourceModTime time.Time
	ContactEmail  string
	Version       string
}

// Tree is the immutable aggregate root built once from raw records.
//
// Families live in an arena ordered by sequence number with a separate
// key-to-slot index. Nothing mutates a Tree after NewTree returns, so it is
// shared by concurrent readers without locking. Callers must treat the
// returned entities as read-only.
type Tree struct {
	individuals map[IndividualID]*Individual
	families    []*Family
	familyIndex map[FamilyKey]int
	sorted      []*Individual
	pageCount   int
	meta        Metadata
}

// NewTree assembles a Tree. families must be ordered by Seq.
func NewTree(individuals map[IndividualID]*Individual, families []*Family, sorted []*Individual, pageCount int, meta Metadata) *Tree {
	idx := make(map[FamilyKey]int, len(families))
	for i, f := range families {
		idx[f.Key] = i
	}
	return &Tree{
		individuals: individuals,
		families:    families,
		familyIndex: idx,
		sorted:      sorted,
		pageCount:   pageCount,
		meta:        meta,
	}
}

// Individual looks up a person by id.
func (t *Tree) Individual(id IndividualID) (*Individual, bool) {
	ind, ok := t.individuals[id]
	return ind, ok
}

// Family looks up a union by key.
func (t *Tree) Family(key FamilyKey) (*Family, bool) {
	i, ok := t.familyIndex[key]
	if !ok {
		return nil, false
	}
	return t.families[i], true
}

// Families returns every union ordered by sequence number.
func (t *Tree) Families() []*Family {
	return t.families
}

// Sorted returns every individual in index order.
func (t *Tree) Sorted() []*Individual {
	return t.sorted
}

// Len is the number of individuals.
func (t *Tree) Len() int {
	return len(t.individuals)
}

// PageCount is ceil(sqrt(Len())).
func (t *Tree) PageCount() int {
	return t.pageCount
}

// Metadata returns the source metadata.
func (t *Tree) Metadata() Metadata {
	return t.meta
}
