package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gimm/internal/genealogy/builder"
	"gimm/internal/genealogy/models"
	dErrors "gimm/pkg/domain-errors"
)

func fixture(t *testing.T) *models.Tree {
	t.Helper()
	tree, err := builder.Build(&models.RawRecords{
		Individuals: []models.RawIndividual{
			{ID: 1, Name: models.Name{Surname: "Groat", Given: "John"}},
			{ID: 2, Name: models.Name{Surname: "Jones", Given: "Mary"}},
			{ID: 3, Name: models.Name{Surname: "Groat", Given: "Michael"}, OriginFamilies: []int{10}},
			{ID: 4, Name: models.Name{Surname: "Groat", Given: "Ann"}, OriginFamilies: []int{10}},
			{ID: 5, Name: models.Name{Surname: "Hill", Given: "Sue"}},
			{ID: 6, Name: models.Name{Surname: "Groat", Given: "Tim"}, OriginFamilies: []int{20}},
		},
		Families: []models.RawFamily{
			{ID: 10, Husband: 1, Wife: 2, Children: []models.IndividualID{3, 4}},
			{ID: 20, Husband: 3, Wife: 5, Children: []models.IndividualID{6}, Sealed: true},
		},
	}, models.Metadata{})
	require.NoError(t, err)
	return tree
}

func TestBuild(t *testing.T) {
	s, err := Build(fixture(t), 3)
	require.NoError(t, err)

	assert.Equal(t, "Michael Groat", s.Individual.Name.Display())
	require.NotNil(t, s.Father)
	require.NotNil(t, s.Mother)
	assert.Equal(t, models.IndividualID(1), s.Father.ID)
	assert.Equal(t, models.IndividualID(2), s.Mother.ID)

	require.Len(t, s.Origins, 1)
	require.Len(t, s.Origins[0].Siblings, 1)
	assert.Equal(t, models.IndividualID(4), s.Origins[0].Siblings[0].ID)

	require.Len(t, s.Unions, 1)
	assert.Equal(t, models.IndividualID(5), s.Unions[0].Spouse.ID)
	assert.True(t, s.Unions[0].Family.Sealed)
	require.Len(t, s.Unions[0].Children, 1)
	assert.Equal(t, models.IndividualID(6), s.Unions[0].Children[0].ID)
}

func TestBuildWithoutParents(t *testing.T) {
	s, err := Build(fixture(t), 5)
	require.NoError(t, err)

	assert.Nil(t, s.Father)
	assert.Nil(t, s.Mother)
	assert.Empty(t, s.Origins)
	assert.Len(t, s.Unions, 1)
}

func TestBuildUnknown(t *testing.T) {
	_, err := Build(fixture(t), 77)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}
