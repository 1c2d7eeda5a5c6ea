package placer

import (
	"context"
	"strings"
	"testing"

	"github.com/katalvlaran/vlsipd/pdconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlacerCase() pdconfig.PlacerCase {
	return pdconfig.PlacerCase{
		OverflowAcceptRatio:  0.1,
		CostImprovementRatio: 0.01,
		AdjustGammaOverflow:  0.3,
		MulLambda:            1.5,
		MulGamma:             0.5,
		EarlyStopSteps:       3,
		MaxSteps:             200,
		StepSize:             0.2,
		NumBinSideRatio:      1.0,
		ObjectDensity:        1.0,
		Threads:              2,
	}
}

// smallPlacement builds a tiny design: two movable 2x2 modules and one
// fixed 2x2 module inside a 10x10 chip, connected by a single net.
func smallPlacement() *Placement {
	p := &Placement{
		Modules: []Module{
			{Name: "m0", W: 2, H: 2},
			{Name: "m1", W: 2, H: 2},
			{Name: "f0", W: 2, H: 2, Fixed: true, X: 8, Y: 8},
		},
		BoundaryLeft: 0, BoundaryRight: 10,
		BoundaryBottom: 0, BoundaryTop: 10,
	}
	p.Pins = []Pin{
		{ModuleID: 0, NetID: 0, XOffset: 1, YOffset: 1},
		{ModuleID: 1, NetID: 0, XOffset: 1, YOffset: 1},
		{ModuleID: 2, NetID: 0, XOffset: 1, YOffset: 1},
	}
	p.Modules[0].PinIDs = []int{0}
	p.Modules[1].PinIDs = []int{1}
	p.Modules[2].PinIDs = []int{2}
	p.Nets = []Net{{Name: "n0", PinIDs: []int{0, 1, 2}}}
	return p
}

func TestNewPlacer_RejectsEmptyPlacement(t *testing.T) {
	p := &Placement{BoundaryLeft: 0, BoundaryRight: 10, BoundaryBottom: 0, BoundaryTop: 10}
	_, err := NewPlacer(p, testPlacerCase())
	require.ErrorIs(t, err, ErrNoModules)
}

func TestNewPlacer_SeedsFixedAndMovable(t *testing.T) {
	p := smallPlacement()
	pl, err := NewPlacer(p, testPlacerCase())
	require.NoError(t, err)

	pos := pl.Positions()
	assert.Equal(t, 8.0, pos[2].X)
	assert.Equal(t, 8.0, pos[2].Y)
	assert.Equal(t, 5.0, pos[0].X) // chip center
	assert.Equal(t, 5.0, pos[0].Y)
}

func TestPlacer_RunConverges(t *testing.T) {
	p := smallPlacement()
	pl, err := NewPlacer(p, testPlacerCase())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, pl.Run(ctx))
	assert.Greater(t, pl.Steps(), 0)

	stats := pl.Stats()
	assert.Equal(t, 1, stats.FixedCount)
	assert.Equal(t, 3, stats.TotalCount)

	// fixed module must not have moved.
	pos := pl.Positions()
	assert.Equal(t, 8.0, pos[2].X)
	assert.Equal(t, 8.0, pos[2].Y)

	// movable modules must stay within the chip boundary.
	for i := 0; i < 2; i++ {
		assert.GreaterOrEqual(t, pos[i].X, 0.0)
		assert.LessOrEqual(t, pos[i].X, 10.0)
		assert.GreaterOrEqual(t, pos[i].Y, 0.0)
		assert.LessOrEqual(t, pos[i].Y, 10.0)
	}
}

func TestPlacer_HpwlNonNegative(t *testing.T) {
	p := smallPlacement()
	pl, err := NewPlacer(p, testPlacerCase())
	require.NoError(t, err)
	require.NoError(t, pl.Run(context.Background()))
	assert.GreaterOrEqual(t, pl.Hpwl(), 0.0)
}

func TestPlacer_DeterministicAcrossWorkerCounts(t *testing.T) {
	var hpwls []float64
	for _, workers := range []int{1, 2, 4} {
		cfg := testPlacerCase()
		cfg.Threads = workers
		p := smallPlacement()
		pl, err := NewPlacer(p, cfg)
		require.NoError(t, err)
		require.NoError(t, pl.Run(context.Background()))
		hpwls = append(hpwls, pl.Hpwl())
	}
	for i := 1; i < len(hpwls); i++ {
		assert.InDelta(t, hpwls[0], hpwls[i], 1e-9)
	}
}

func TestParseBookshelfPlacement(t *testing.T) {
	input := `Boundary: 0 0 10 10
NumModules: 2
NumNets: 1
m0 2 2 movable
f0 2 2 fixed 8 8
NetDegree: 2
m0 1 1
f0 1 1
`
	p, err := ParseBookshelfPlacement(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, p.Modules, 2)
	assert.Equal(t, "m0", p.Modules[0].Name)
	assert.False(t, p.Modules[0].Fixed)
	assert.True(t, p.Modules[1].Fixed)
	assert.Equal(t, 8.0, p.Modules[1].X)
	require.Len(t, p.Nets, 1)
	assert.Len(t, p.Nets[0].PinIDs, 2)
}

func TestParseBookshelfPlacement_RejectsUnknownModule(t *testing.T) {
	input := `Boundary: 0 0 10 10
NumModules: 1
NumNets: 1
m0 2 2 movable
NetDegree: 1
ghost 0 0
`
	_, err := ParseBookshelfPlacement(strings.NewReader(input))
	require.ErrorIs(t, err, ErrUnknownModule)
}

func TestWriteBookshelfPlacement(t *testing.T) {
	p := smallPlacement()
	pos := []Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 8, Y: 8}}
	var sb strings.Builder
	require.NoError(t, WriteBookshelfPlacement(&sb, p, pos))
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "m0")
}
