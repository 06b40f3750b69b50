package builder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"gimm/internal/genealogy/models"
	dErrors "gimm/pkg/domain-errors"
)

type BuilderSuite struct {
	suite.Suite
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

func person(id int, surname, given string, famc ...int) models.RawIndividual {
	return models.RawIndividual{
		ID:             models.IndividualID(id),
		Name:           models.Name{Surname: surname, Given: given},
		OriginFamilies: famc,
	}
}

func union(id, number, husb, wife int, children ...int) models.RawFamily {
	kids := make([]models.IndividualID, 0, len(children))
	for _, c := range children {
		kids = append(kids, models.IndividualID(c))
	}
	return models.RawFamily{
		ID:       id,
		Number:   number,
		Husband:  models.IndividualID(husb),
		Wife:     models.IndividualID(wife),
		Children: kids,
	}
}

func (s *BuilderSuite) build(recs *models.RawRecords) *models.Tree {
	tree, err := Build(recs, models.Metadata{Version: "test"})
	s.Require().NoError(err)
	return tree
}

func (s *BuilderSuite) TestDuplicateUnionsCollapse() {
	s.Run("disjoint children are unioned", func() {
		tree := s.build(&models.RawRecords{
			Individuals: []models.RawIndividual{
				person(1, "Groat", "Father"),
				person(2, "Smith", "Mother"),
				person(10, "Groat", "X", 100),
				person(11, "Groat", "Y", 101),
			},
			Families: []models.RawFamily{
				union(100, 100, 1, 2, 10),
				union(101, 101, 1, 2, 11),
			},
		})

		s.Len(tree.Families(), 1)
		fam, ok := tree.Family(models.FamilyKey{Father: 1, Mother: 2})
		s.Require().True(ok)
		s.ElementsMatch([]models.IndividualID{10, 11}, fam.Children)
	})

	s.Run("repeated merge is idempotent", func() {
		tree := s.build(&models.RawRecords{
			Individuals: []models.RawIndividual{
				person(1, "A", "F"), person(2, "B", "M"), person(3, "A", "C", 7),
			},
			Families: []models.RawFamily{
				union(7, 7, 1, 2, 3),
				union(8, 0, 1, 2, 3),
				union(9, 0, 1, 2, 3),
			},
		})

		fam, ok := tree.Family(models.FamilyKey{Father: 1, Mother: 2})
		s.Require().True(ok)
		s.Equal([]models.IndividualID{3}, fam.Children)
	})

	s.Run("merge order does not change the child set", func() {
		individuals := []models.RawIndividual{
			person(1, "A", "F"), person(2, "B", "M"),
			person(3, "A", "C1"), person(4, "A", "C2"), person(5, "A", "C3"),
		}
		forward := s.build(&models.RawRecords{
			Individuals: individuals,
			Families:    []models.RawFamily{union(1, 0, 1, 2, 3, 4), union(2, 0, 1, 2, 5)},
		})
		backward := s.build(&models.RawRecords{
			Individuals: individuals,
			Families:    []models.RawFamily{union(2, 0, 1, 2, 5), union(1, 0, 1, 2, 3, 4)},
		})

		f1, _ := forward.Family(models.FamilyKey{Father: 1, Mother: 2})
		f2, _ := backward.Family(models.FamilyKey{Father: 1, Mother: 2})
		s.ElementsMatch(f1.Children, f2.Children)
	})
}

func (s *BuilderSuite) TestMergeRules() {
	a := union(1, 0, 1, 2)
	a.Facts = []models.Fact{{Tag: "MARR", Date: "1900"}}
	a.Notes = []string{"first note"}
	a.Sealed = true

	b := union(2, 42, 1, 2)
	b.Notes = []string{"second note"}

	c := union(3, 0, 1, 2)

	tree := s.build(&models.RawRecords{
		Individuals: []models.RawIndividual{person(1, "A", "F"), person(2, "B", "M")},
		Families:    []models.RawFamily{a, b, c},
	})

	fam, ok := tree.Family(models.FamilyKey{Father: 1, Mother: 2})
	s.Require().True(ok)
	s.Equal(1, fam.Seq)
	s.Equal(42, fam.DisplayNumber, "last non-zero raw number wins")
	s.Equal([]models.Fact{{Tag: "MARR", Date: "1900"}}, fam.Facts, "empty facts never overwrite")
	s.Equal([]string{"second note"}, fam.Notes, "last non-empty notes win")
	s.True(fam.Sealed, "sealed is a logical OR")
}

func (s *BuilderSuite) TestSequenceNumbersFollowFirstAppearance() {
	tree := s.build(&models.RawRecords{
		Individuals: []models.RawIndividual{
			person(1, "A", "F"), person(2, "B", "M"), person(3, "C", "F2"),
		},
		Families: []models.RawFamily{
			union(50, 0, 3, 0),
			union(51, 0, 1, 2),
			union(52, 0, 3, 0),
		},
	})

	fams := tree.Families()
	s.Require().Len(fams, 2)
	s.Equal(models.FamilyKey{Father: 3}, fams[0].Key)
	s.Equal(1, fams[0].DisplayNumber)
	s.Equal(models.FamilyKey{Father: 1, Mother: 2}, fams[1].Key)
	s.Equal(2, fams[1].Seq)
}

func (s *BuilderSuite) TestParentPairs() {
	s.Run("first origin family is preferred", func() {
		tree := s.build(&models.RawRecords{
			Individuals: []models.RawIndividual{
				person(1, "A", "F1"), person(2, "B", "M1"),
				person(3, "C", "F2"), person(4, "D", "M2"),
				person(5, "A", "Child", 20, 10),
			},
			Families: []models.RawFamily{
				union(10, 0, 1, 2, 5),
				union(20, 0, 3, 4, 5),
			},
		})

		child, ok := tree.Individual(5)
		s.Require().True(ok)
		pair, ok := child.PreferredParents()
		s.Require().True(ok)
		s.Equal(models.ParentPair{Father: 3, Mother: 4}, pair)
		s.Equal([]models.ParentPair{{Father: 3, Mother: 4}, {Father: 1, Mother: 2}}, child.ParentPairs)
		s.Equal([]models.FamilyKey{{Father: 3, Mother: 4}, {Father: 1, Mother: 2}}, child.OriginFamilies)
	})

	s.Run("single known parent still yields a pair", func() {
		tree := s.build(&models.RawRecords{
			Individuals: []models.RawIndividual{person(1, "A", "M"), person(2, "A", "C", 9)},
			Families:    []models.RawFamily{union(9, 0, 0, 1, 2)},
		})

		child, _ := tree.Individual(2)
		s.Equal([]models.ParentPair{{Mother: 1}}, child.ParentPairs)
	})

	s.Run("no origin family means no parents", func() {
		tree := s.build(&models.RawRecords{
			Individuals: []models.RawIndividual{person(1, "A", "Root")},
		})

		ind, _ := tree.Individual(1)
		_, ok := ind.PreferredParents()
		s.False(ok)
		s.Empty(ind.OriginFamilies)
	})

	s.Run("unknown parents keep the origin but no pair", func() {
		tree := s.build(&models.RawRecords{
			Individuals: []models.RawIndividual{person(1, "A", "Foundling", 3)},
			Families:    []models.RawFamily{union(3, 0, 0, 0, 1)},
		})

		ind, _ := tree.Individual(1)
		s.Equal([]models.FamilyKey{{}}, ind.OriginFamilies)
		s.Empty(ind.ParentPairs)
		fam, ok := tree.Family(models.FamilyKey{})
		s.Require().True(ok)
		s.Equal([]models.IndividualID{1}, fam.Children)
	})
}

func (s *BuilderSuite) TestEveryChildCarriesItsOriginFamily() {
	tree := s.build(&models.RawRecords{
		Individuals: []models.RawIndividual{
			person(1, "A", "F"), person(2, "B", "M"),
			person(3, "A", "Listed"),
		},
		Families: []models.RawFamily{union(4, 0, 1, 2, 3)},
	})

	for _, fam := range tree.Families() {
		for _, c := range fam.Children {
			child, ok := tree.Individual(c)
			s.Require().True(ok)
			s.True(child.HasOriginFamily(fam.Key), "child %d missing origin %s", c, fam.Key)
		}
	}
	child, _ := tree.Individual(3)
	s.Equal([]models.ParentPair{{Father: 1, Mother: 2}}, child.ParentPairs)
}

func (s *BuilderSuite) TestSpouseFamilies() {
	tree := s.build(&models.RawRecords{
		Individuals: []models.RawIndividual{
			person(1, "A", "Husband"), person(2, "B", "First"), person(3, "C", "Second"),
		},
		Families: []models.RawFamily{union(1, 0, 1, 2), union(2, 0, 1, 3)},
	})

	husband, _ := tree.Individual(1)
	s.Equal([]models.FamilyKey{{Father: 1, Mother: 2}, {Father: 1, Mother: 3}}, husband.SpouseFamilies)
	wife, _ := tree.Individual(3)
	s.Equal([]models.FamilyKey{{Father: 1, Mother: 3}}, wife.SpouseFamilies)
}

func TestBuildConsistencyErrors(t *testing.T) {
	cases := []struct {
		name string
		recs *models.RawRecords
		kind string
		ref  int
		msg  string
	}{
		{
			name: "unknown husband",
			recs: &models.RawRecords{
				Individuals: []models.RawIndividual{person(2, "B", "M")},
				Families:    []models.RawFamily{union(1, 0, 99, 2)},
			},
			kind: KindIndividual, ref: 99,
			msg:  "family 1 references unknown individual 99",
		},
		{
			name: "unknown child",
			recs: &models.RawRecords{
				Individuals: []models.RawIndividual{person(1, "A", "F")},
				Families:    []models.RawFamily{union(1, 0, 1, 0, 77)},
			},
			kind: "individual", ref: 77,
		},
		{
			name: "unknown family of origin",
			recs: &models.RawRecords{
				Individuals: []models.RawIndividual{person(1, "A", "C", 5)},
			},
			kind: "family", ref: 5,
		},
		{
			name: "duplicate individual",
			recs: &models.RawRecords{
				Individuals: []models.RawIndividual{person(1, "A", "X"), person(1, "A", "Y")},
			},
			kind: KindDuplicateID, ref: 1,
			msg:  "individual id 1 is declared more than once",
		},
		{
			name: "zero id",
			recs: &models.RawRecords{
				Individuals: []models.RawIndividual{person(0, "A", "X")},
			},
			kind: KindZeroID, ref: 0,
			msg:  "individual record has no id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := Build(tc.recs, models.Metadata{})
			require.Error(t, err)
			assert.Nil(t, tree)
			assert.True(t, dErrors.Is(err, dErrors.CodeInvariantViolation))

			var ce *ConsistencyError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.kind, ce.Kind)
			assert.Equal(t, tc.ref, ce.Ref)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, ce.Error())
			}
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	tree, err := Build(&models.RawRecords{}, models.Metadata{})
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 0, tree.PageCount())
	assert.Empty(t, tree.Sorted())
}

func TestBuildSortsIndividuals(t *testing.T) {
	tree, err := Build(&models.RawRecords{
		Individuals: []models.RawIndividual{
			person(1, "Smith", "John"),
			person(2, "Adams", "Zoe"),
			person(3, "Smith", "Anna"),
			person(4, "Adams", "Zoe"),
		},
	}, models.Metadata{})
	require.NoError(t, err)

	var ids []models.IndividualID
	for _, ind := range tree.Sorted() {
		ids = append(ids, ind.ID)
	}
	assert.Equal(t, []models.IndividualID{2, 4, 3, 1}, ids)
	assert.Equal(t, 2, tree.PageCount())
}
