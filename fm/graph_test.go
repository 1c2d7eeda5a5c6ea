package fm_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/vlsipd/fm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_DumpCellsAndDumpNets(t *testing.T) {
	g, _, err := fm.ParseInput(strings.NewReader("0.5\nNET N1 a b ;\nNET N2 b c ;\n"))
	require.NoError(t, err)

	cells := g.DumpCells()
	assert.Contains(t, cells, "Number of cells: 3")
	assert.Contains(t, cells, "a")
	assert.Contains(t, cells, "N1")

	nets := g.DumpNets()
	assert.Contains(t, nets, "Number of nets: 2")
	assert.Contains(t, nets, "N2")
	assert.Contains(t, nets, "b")
}

func TestGraph_DumpNets_ExcludesDroppedSinglePinNet(t *testing.T) {
	g, _, err := fm.ParseInput(strings.NewReader("0.5\nNET N1 a b ;\nNET N2 a ;\n"))
	require.NoError(t, err)

	nets := g.DumpNets()
	assert.Contains(t, nets, "Number of nets: 1")
	assert.NotContains(t, nets, "N2")
}
