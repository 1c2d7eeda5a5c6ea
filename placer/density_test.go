package placer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlap_ZeroBeyondRange(t *testing.T) {
	v := overlap(100, 1, 1)
	assert.Equal(t, 0.0, v)
}

func TestOverlap_FullAtCenter(t *testing.T) {
	v := overlap(0, 1, 1)
	assert.InDelta(t, 1.0, v, 1e-9)
}

func TestOverlap_ContinuousAtBranchBoundaries(t *testing.T) {
	binSize, modSize := 1.0, 2.0
	inner := 0.5*modSize + binSize
	outer := 0.5*modSize + 2*binSize

	// the two branches must agree at their shared boundary.
	assert.InDelta(t, overlap(inner, binSize, modSize), overlap(inner+1e-9, binSize, modSize), 1e-6)
	assert.InDelta(t, overlap(outer, binSize, modSize), overlap(outer+1e-9, binSize, modSize), 1e-6)
}

func TestBinGrid_AddAndAt(t *testing.T) {
	g := newBinGrid(4)
	g.add(1, 2, 5.0)
	g.add(1, 2, 3.0)
	assert.Equal(t, 8.0, g.at(1, 2))
	assert.Equal(t, 0.0, g.at(0, 0))
	g.reset()
	assert.Equal(t, 0.0, g.at(1, 2))
}

func TestDensity_ForwardDeterministicAcrossWorkerCounts(t *testing.T) {
	p := smallPlacement()
	pos := []Point{{X: 3, Y: 3}, {X: 6, Y: 2}, {X: 8, Y: 8}}

	var values []float64
	for _, workers := range []int{1, 2, 4} {
		d := newDensity(p, 1.0, 1.0, workers)
		v, err := d.Forward(context.Background(), pos)
		require.NoError(t, err)
		values = append(values, v)
	}
	for i := 1; i < len(values); i++ {
		assert.InDelta(t, values[0], values[i], 1e-9)
	}
}

func TestDensity_BackwardZeroForFixedModule(t *testing.T) {
	p := smallPlacement()
	pos := []Point{{X: 3, Y: 3}, {X: 6, Y: 2}, {X: 8, Y: 8}}
	d := newDensity(p, 1.0, 1.0, 1)
	_, err := d.Forward(context.Background(), pos)
	require.NoError(t, err)
	grad, err := d.Backward(context.Background(), pos)
	require.NoError(t, err)
	assert.Equal(t, Point{}, grad[2])
}
