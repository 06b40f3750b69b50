// Package builder consolidates raw person and union records into a Tree.
package builder

import (
	"fmt"

	"gimm/internal/genealogy/index"
	"gimm/internal/genealogy/models"
	dErrors "gimm/pkg/domain-errors"
)

// Consistency error kinds.
const (
	KindIndividual  = "individual"
	KindFamily      = "family"
	KindDuplicateID = "duplicate id"
	KindZeroID      = "zero id"
)

// ConsistencyError reports a reference to a record that does not exist, or
// an individual whose id is zero or already taken.
type ConsistencyError struct {
	Kind     string
	Ref      int
	Referrer string
}

func (e *ConsistencyError) Error() string {
	switch e.Kind {
	case KindDuplicateID:
		return fmt.Sprintf("individual id %d is declared more than once", e.Ref)
	case KindZeroID:
		return "individual record has no id"
	default:
		return fmt.Sprintf("%s references unknown %s %d", e.Referrer, e.Kind, e.Ref)
	}
}

// Build runs graph construction and index ordering and returns the finished
// Tree. Any dangling reference aborts construction; a partial tree is never
// returned.
func Build(recs *models.RawRecords, meta models.Metadata) (*models.Tree, error) {
	b := newGraph(len(recs.Individuals), len(recs.Families))
	if err := b.addIndividuals(recs.Individuals); err != nil {
		return nil, err
	}
	if err := b.checkFamilies(recs.Families); err != nil {
		return nil, err
	}
	if err := b.linkParents(recs.Individuals); err != nil {
		return nil, err
	}
	for i := range recs.Families {
		b.merge(&recs.Families[i])
	}
	b.linkFamilies()

	sorted := index.Sort(b.order)
	return models.NewTree(b.individuals, b.families, sorted, index.PageCount(len(sorted)), meta), nil
}

type graph struct {
	individuals map[models.IndividualID]*models.Individual
	order       []*models.Individual
	rawFamilies map[int]*models.RawFamily

	families    []*models.Family
	familyIndex map[models.FamilyKey]int
	childSeen   []map[models.IndividualID]struct{}
}

func newGraph(people, unions int) *graph {
	return &graph{
		individuals: make(map[models.IndividualID]*models.Individual, people),
		order:       make([]*models.Individual, 0, people),
		rawFamilies: make(map[int]*models.RawFamily, unions),
		familyIndex: make(map[models.FamilyKey]int, unions),
	}
}

func (g *graph) addIndividuals(raws []models.RawIndividual) error {
	for _, r := range raws {
		if !r.ID.Known() {
			return consistency(&ConsistencyError{Kind: KindZeroID, Referrer: "individual list"})
		}
		if _, dup := g.individuals[r.ID]; dup {
			return consistency(&ConsistencyError{Kind: KindDuplicateID, Ref: int(r.ID), Referrer: "individual list"})
		}
		ind := &models.Individual{
			ID:      r.ID,
			Name:    r.Name,
			Sex:     r.Sex,
			Facts:   r.Facts,
			Notes:   r.Notes,
			Sources: r.Sources,
		}
		g.individuals[r.ID] = ind
		g.order = append(g.order, ind)
	}
	return nil
}

func (g *graph) checkFamilies(raws []models.RawFamily) error {
	for i := range raws {
		f := &raws[i]
		g.rawFamilies[f.ID] = f
		referrer := fmt.Sprintf("family %d", f.ID)
		for _, id := range []models.IndividualID{f.Husband, f.Wife} {
			if id.Known() && !g.exists(id) {
				return consistency(&ConsistencyError{Kind: KindIndividual, Ref: int(id), Referrer: referrer})
			}
		}
		for _, id := range f.Children {
			if !g.exists(id) {
				return consistency(&ConsistencyError{Kind: KindIndividual, Ref: int(id), Referrer: referrer})
			}
		}
	}
	return nil
}

// linkParents records, for each person, the families of origin the person
// points at and the parent pairs they imply. The first origin family in source
// order becomes the preferred one.
func (g *graph) linkParents(raws []models.RawIndividual) error {
	for _, r := range raws {
		ind := g.individuals[r.ID]
		for _, famID := range r.OriginFamilies {
			raw, ok := g.rawFamilies[famID]
			if !ok {
				return consistency(&ConsistencyError{Kind: KindFamily, Ref: famID, Referrer: fmt.Sprintf("individual %d", r.ID)})
			}
			g.addOrigin(ind, raw.Key())
		}
	}
	return nil
}

func (g *graph) addOrigin(ind *models.Individual, key models.FamilyKey) {
	if !ind.HasOriginFamily(key) {
		ind.OriginFamilies = append(ind.OriginFamilies, key)
	}
	if pair := key.Pair(); pair.HasKnownParent() && !ind.HasParentPair(pair) {
		ind.ParentPairs = append(ind.ParentPairs, pair)
	}
}

// merge folds one raw union into the canonical family for its key.
func (g *graph) merge(raw *models.RawFamily) {
	key := raw.Key()
	slot, ok := g.familyIndex[key]
	if !ok {
		seq := len(g.families) + 1
		g.families = append(g.families, &models.Family{Key: key, Seq: seq, DisplayNumber: seq})
		g.childSeen = append(g.childSeen, make(map[models.IndividualID]struct{}))
		slot = len(g.families) - 1
		g.familyIndex[key] = slot
	}
	fam, seen := g.families[slot], g.childSeen[slot]

	for _, c := range raw.Children {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		fam.Children = append(fam.Children, c)
	}
	if raw.Number != 0 {
		fam.DisplayNumber = raw.Number
	}
	if len(raw.Facts) > 0 {
		fam.Facts = raw.Facts
	}
	if len(raw.Notes) > 0 {
		fam.Notes = raw.Notes
	}
	if len(raw.Sources) > 0 {
		fam.Sources = raw.Sources
	}
	fam.Sealed = fam.Sealed || raw.Sealed
}

// linkFamilies cross-links merged families back onto their members: every
// child carries the family key among its origins and every known parent
// carries it among its spouse families.
func (g *graph) linkFamilies() {
	for _, fam := range g.families {
		for _, c := range fam.Children {
			g.addOrigin(g.individuals[c], fam.Key)
		}
		for _, p := range []models.IndividualID{fam.Key.Father, fam.Key.Mother} {
			if !p.Known() {
				continue
			}
			parent := g.individuals[p]
			if !hasKey(parent.SpouseFamilies, fam.Key) {
				parent.SpouseFamilies = append(parent.SpouseFamilies, fam.Key)
			}
		}
	}
}

func (g *graph) exists(id models.IndividualID) bool {
	_, ok := g.individuals[id]
	return ok
}

func hasKey(keys []models.FamilyKey, key models.FamilyKey) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func consistency(err *ConsistencyError) error {
	return dErrors.Wrap(err, dErrors.CodeInvariantViolation, "graph construction aborted")
}
