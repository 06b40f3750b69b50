package surname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gimm/internal/genealogy/builder"
	"gimm/internal/genealogy/models"
)

func TestBuild(t *testing.T) {
	tree, err := builder.Build(&models.RawRecords{
		Individuals: []models.RawIndividual{
			{ID: 1, Name: models.Name{Surname: "Smith", Given: "John"}},
			{ID: 2, Name: models.Name{Surname: "Adams", Given: "Zoe"}},
			{ID: 3, Name: models.Name{Surname: "Smith", Given: "Anna"}},
			{ID: 4, Name: models.Name{Given: "Nobody"}},
			{ID: 5, Name: models.Name{Surname: "smith", Given: "lower"}},
		},
	}, models.Metadata{})
	require.NoError(t, err)

	entries := Build(tree)

	require.Len(t, entries, 4)
	assert.Equal(t, []string{"", "Adams", "Smith", "smith"}, []string{
		entries[0].Surname, entries[1].Surname, entries[2].Surname, entries[3].Surname,
	})
	assert.Equal(t, 2, entries[2].Count())
	assert.Equal(t, models.IndividualID(3), entries[2].Bearers[0].ID)
	assert.Equal(t, models.IndividualID(1), entries[2].Bearers[1].ID)

	total := 0
	for _, e := range entries {
		total += e.Count()
	}
	assert.Equal(t, tree.Len(), total)
}

func TestBuildEmptyTree(t *testing.T) {
	tree, err := builder.Build(&models.RawRecords{}, models.Metadata{})
	require.NoError(t, err)
	assert.Empty(t, Build(tree))
}
