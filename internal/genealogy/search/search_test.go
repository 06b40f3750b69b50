package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gimm/internal/genealogy/builder"
	"gimm/internal/genealogy/models"
)

func fixtureTree(t *testing.T) *models.Tree {
	t.Helper()
	tree, err := builder.Build(&models.RawRecords{
		Individuals: []models.RawIndividual{
			{ID: 1, Name: models.Name{Surname: "Groat", Given: "Michael"}},
			{ID: 2, Name: models.Name{Surname: "Groat", Given: "Mary Ann"}},
			{ID: 3, Name: models.Name{Surname: "Grote", Given: "Anna"}},
			{ID: 4, Name: models.Name{Surname: "Smith", Given: "Michael"}},
			{ID: 42, Name: models.Name{Surname: "Jones", Given: "Bob"}},
		},
	}, models.Metadata{})
	require.NoError(t, err)
	return tree
}

func ids(res Result) []models.IndividualID {
	out := make([]models.IndividualID, 0, len(res.Matches))
	for _, ind := range res.Matches {
		out = append(out, ind.ID)
	}
	return out
}

func TestRun(t *testing.T) {
	tree := fixtureTree(t)

	cases := []struct {
		name  string
		query Query
		want  []models.IndividualID
	}{
		{name: "free text substring", query: Query{Text: "gro"}, want: []models.IndividualID{2, 1, 3}},
		{name: "every term must match", query: Query{Text: "michael GROAT"}, want: []models.IndividualID{1}},
		{name: "surname prefix", query: Query{Surname: "gr"}, want: []models.IndividualID{2, 1, 3}},
		{name: "surname prefix is not substring", query: Query{Surname: "oat"}, want: []models.IndividualID{}},
		{name: "given matches any given name", query: Query{Given: "ann"}, want: []models.IndividualID{2, 3}},
		{name: "fields combine", query: Query{Surname: "groat", Given: "mi"}, want: []models.IndividualID{1}},
		{name: "id term", query: Query{Text: "42"}, want: []models.IndividualID{42}},
		{name: "no match", query: Query{Text: "zebra"}, want: []models.IndividualID{}},
		{name: "empty query", query: Query{Text: "   "}, want: []models.IndividualID{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Run(tree, tc.query, 0)
			assert.Equal(t, tc.want, ids(res))
			assert.Equal(t, len(tc.want), res.Total)
			assert.False(t, res.Truncated)
		})
	}
}

func TestRunLimit(t *testing.T) {
	res := Run(fixtureTree(t), Query{Text: "gro"}, 2)

	assert.Equal(t, []models.IndividualID{2, 1}, ids(res))
	assert.Equal(t, 3, res.Total)
	assert.True(t, res.Truncated)
}

func TestRunIsPure(t *testing.T) {
	tree := fixtureTree(t)
	before := append([]*models.Individual(nil), tree.Sorted()...)

	first := Run(tree, Query{Text: "michael"}, 0)
	second := Run(tree, Query{Text: "michael"}, 0)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, before, tree.Sorted())
}

func TestQueryKeyNormalizes(t *testing.T) {
	a := Query{Text: "  Mary   GROAT mary", Surname: " Groat "}
	b := Query{Text: "mary groat", Surname: "groat"}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Query{Text: "mary groat"}.Key())
	assert.True(t, Query{Given: "  "}.Empty())
}
