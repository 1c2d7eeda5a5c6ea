package placer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWirelength_ForwardDeterministicAcrossWorkerCounts(t *testing.T) {
	p := smallPlacement()
	pos := []Point{{X: 3, Y: 3}, {X: 6, Y: 2}, {X: 8, Y: 8}}

	var values []float64
	for _, workers := range []int{1, 2, 4} {
		w := newWirelength(p, workers)
		v, err := w.Forward(context.Background(), pos)
		require.NoError(t, err)
		values = append(values, v)
	}
	for i := 1; i < len(values); i++ {
		assert.InDelta(t, values[0], values[i], 1e-9)
	}
}

func TestWirelength_ApproximatesTrueHpwl(t *testing.T) {
	p := smallPlacement()
	pos := []Point{{X: 3, Y: 3}, {X: 6, Y: 2}, {X: 8, Y: 8}}
	w := newWirelength(p, 1)
	smooth, err := w.Forward(context.Background(), pos)
	require.NoError(t, err)

	// true hpwl over the one net's three pins.
	pts := []Point{
		pinPos(p, pos, &p.Pins[0]),
		pinPos(p, pos, &p.Pins[1]),
		pinPos(p, pos, &p.Pins[2]),
	}
	minX, maxX, minY, maxY := pts[0].X, pts[0].X, pts[0].Y, pts[0].Y
	for _, pt := range pts[1:] {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	trueHpwl := (maxX - minX) + (maxY - minY)
	assert.InDelta(t, trueHpwl, smooth, 0.5)
}

func TestWirelength_BackwardZeroForFixedModule(t *testing.T) {
	p := smallPlacement()
	pos := []Point{{X: 3, Y: 3}, {X: 6, Y: 2}, {X: 8, Y: 8}}
	w := newWirelength(p, 1)
	_, err := w.Forward(context.Background(), pos)
	require.NoError(t, err)
	grad, err := w.Backward(context.Background(), pos)
	require.NoError(t, err)
	assert.Equal(t, Point{}, grad[2])
}
