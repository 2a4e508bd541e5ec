package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/search"
)

// TestDistances_Detour: the flood goes around a wall.
//
//	S . .
//	# # .
//	E . .
func TestDistances_Detour(t *testing.T) {
	g := mustParse(t, "S..\n##.\nE..\n")
	d, err := search.Distances(g, g.Start())
	require.NoError(t, err)

	assert.Equal(t, 0, d.At(0, 0))
	assert.Equal(t, 2, d.At(0, 2))
	assert.Equal(t, 6, d.To(g.End()))
	assert.Equal(t, search.Unreachable, d.At(1, 0), "barrier")
	assert.Equal(t, search.Unreachable, d.At(5, 5), "out of bounds")
	assert.Equal(t, 7, d.Reached())
	assert.Equal(t, "S..\n##.\nE..\n", g.String(), "flood does not touch display states")
}

func TestDistances_Errors(t *testing.T) {
	_, err := search.Distances(nil, nil)
	assert.ErrorIs(t, err, search.ErrNilGrid)

	g := mustParse(t, "S.\n")
	_, err = search.Distances(g, nil)
	assert.ErrorIs(t, err, search.ErrNoStart)

	other := mustParse(t, "S.\n")
	_, err = search.Distances(g, other.Start())
	assert.ErrorIs(t, err, search.ErrForeignCell)
}

// TestDistances_BarrierOrigin reaches nothing.
func TestDistances_BarrierOrigin(t *testing.T) {
	g := mustParse(t, "#.\n..\n")
	d, err := search.Distances(g, cellAt(t, g, 0, 0))
	require.NoError(t, err)
	assert.Zero(t, d.Reached())
}
