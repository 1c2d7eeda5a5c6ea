package floorplan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBlockFile = `Outline: 20 20
NumBlocks: 2
NumTerminals: 1
b0 4 2
b1 3 5
p0 terminal 0 0
`

const sampleNetFile = `NumNets: 1
NetDegree: 3
b0 b1 p0
`

func TestParseBlockFile(t *testing.T) {
	in, err := ParseBlockFile(strings.NewReader(sampleBlockFile))
	require.NoError(t, err)

	assert.Equal(t, 20, in.OutlineW)
	assert.Equal(t, 20, in.OutlineH)
	assert.Len(t, in.Blocks, 2)
	assert.Contains(t, in.Terminals, "p0")
}

func TestParseBlockFile_RejectsZeroBlocks(t *testing.T) {
	const in = "Outline: 10 10\nNumBlocks: 0\nNumTerminals: 0\n"
	_, err := ParseBlockFile(strings.NewReader(in))
	assert.ErrorIs(t, err, ErrNoBlocks)
}

func TestParseNetFile(t *testing.T) {
	in, err := ParseBlockFile(strings.NewReader(sampleBlockFile))
	require.NoError(t, err)
	require.NoError(t, ParseNetFile(strings.NewReader(sampleNetFile), in))

	require.Len(t, in.Nets, 1)
	assert.Equal(t, []string{"b0", "b1", "p0"}, in.Nets[0].Members)
}

func TestParseNetFile_RejectsUnknownMember(t *testing.T) {
	in, err := ParseBlockFile(strings.NewReader(sampleBlockFile))
	require.NoError(t, err)

	const badNets = "NumNets: 1\nNetDegree: 1\nghost\n"
	err = ParseNetFile(strings.NewReader(badNets), in)
	assert.ErrorIs(t, err, ErrUnknownTerminal)
}
