// Package sheet assembles the per-person view: the person, their families of
// origin and the unions they are a partner in.
package sheet

import (
	"gimm/internal/genealogy/models"
	dErrors "gimm/pkg/domain-errors"
)

// Sheet is everything shown on one person's page.
type Sheet struct {
	Individual *models.Individual
	// Father and Mother come from the preferred parent pair; either may be nil.
	Father  *models.Individual
	Mother  *models.Individual
	Origins []Origin
	Unions  []Union
}

// Origin is a family the person is a child in.
type Origin struct {
	Family   *models.Family
	Father   *models.Individual
	Mother   *models.Individual
	Siblings []*models.Individual
}

// Union is a family the person is a partner in.
type Union struct {
	Family   *models.Family
	Spouse   *models.Individual
	Children []*models.Individual
}

// Build returns the sheet for id.
func Build(tree *models.Tree, id models.IndividualID) (*Sheet, error) {
	ind, ok := tree.Individual(id)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "individual not found")
	}

	s := &Sheet{Individual: ind}
	if pair, ok := ind.PreferredParents(); ok {
		s.Father = lookup(tree, pair.Father)
		s.Mother = lookup(tree, pair.Mother)
	}

	for _, key := range ind.OriginFamilies {
		fam, ok := tree.Family(key)
		if !ok {
			continue
		}
		origin := Origin{Family: fam, Father: lookup(tree, key.Father), Mother: lookup(tree, key.Mother)}
		for _, c := range fam.Children {
			if c == id {
				continue
			}
			if sib := lookup(tree, c); sib != nil {
				origin.Siblings = append(origin.Siblings, sib)
			}
		}
		s.Origins = append(s.Origins, origin)
	}

	for _, key := range ind.SpouseFamilies {
		fam, ok := tree.Family(key)
		if !ok {
			continue
		}
		union := Union{Family: fam, Spouse: lookup(tree, key.Spouse(id))}
		for _, c := range fam.Children {
			if child := lookup(tree, c); child != nil {
				union.Children = append(union.Children, child)
			}
		}
		s.Unions = append(s.Unions, union)
	}
	return s, nil
}

func lookup(tree *models.Tree, id models.IndividualID) *models.Individual {
	if !id.Known() {
		return nil
	}
	ind, _ := tree.Individual(id)
	return ind
}
