package floorplan

import (
	"strings"
	"testing"

	"github.com/katalvlaran/vlsipd/pdconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCase is a small, fast hyperparameter set so the annealer converges in
// a handful of perturbations during a test run rather than thousands.
func testCase() pdconfig.FloorplanCase {
	return pdconfig.FloorplanCase{
		InitProb: 0.9, AlphaBase: 0.5, AdaptiveNum: 8,
		Seed: 1, PerturbNum: 20, TempK: 4, TempC: 20,
	}
}

func twoBlocks() []blockSpec {
	return []blockSpec{
		{Name: "b0", W: 4, H: 2},
		{Name: "b1", W: 3, H: 5},
	}
}

func TestNewPlanner_RejectsEmptyBlocks(t *testing.T) {
	_, err := NewPlanner(nil, nil, nil, 10, 10, 0.5, testCase())
	assert.ErrorIs(t, err, ErrNoBlocks)
}

func TestNewPlanner_RejectsBadAlpha(t *testing.T) {
	_, err := NewPlanner(twoBlocks(), nil, nil, 10, 10, 1.5, testCase())
	assert.ErrorIs(t, err, ErrBadAlpha)
}

func TestNewPlanner_RejectsBadOutline(t *testing.T) {
	_, err := NewPlanner(twoBlocks(), nil, nil, 0, 10, 0.5, testCase())
	assert.ErrorIs(t, err, ErrBadOutline)
}

func TestPlanner_TwoBlockFeasibleOutline(t *testing.T) {
	p, err := NewPlanner(twoBlocks(), nil, nil, 20, 20, 0.5, testCase())
	require.NoError(t, err)

	p.Run()

	require.True(t, p.Found(), "a 20x20 outline comfortably fits two small blocks")
	x, y := p.BestBox()
	assert.LessOrEqual(t, x, 20)
	assert.LessOrEqual(t, y, 20)
}

func TestPlanner_WriteResult(t *testing.T) {
	p, err := NewPlanner(twoBlocks(), nil, nil, 20, 20, 0.5, testCase())
	require.NoError(t, err)
	p.Run()
	require.True(t, p.Found())

	var buf strings.Builder
	require.NoError(t, p.WriteResult(&buf, 0.01))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5+2, "5 header lines plus one per block")
	assert.Contains(t, lines[5], "b0")
	assert.Contains(t, lines[6], "b1")
}

func TestTree_RotateRoundTrip(t *testing.T) {
	tr := newTree(twoBlocks())
	before := tr.nodes[0].rotated
	tr.rotateBlock(0)
	assert.NotEqual(t, before, tr.nodes[0].rotated)
	tr.rotateBlock(0)
	assert.Equal(t, before, tr.nodes[0].rotated)
}

func TestTree_PackKeepsContourSorted(t *testing.T) {
	tr := newTree(twoBlocks())
	tr.pack()

	cur := tr.nodes[tr.dummyRoot].next
	lastXl := -1
	for cur != tr.tail {
		assert.GreaterOrEqual(t, tr.nodes[cur].xl, lastXl)
		lastXl = tr.nodes[cur].xl
		cur = tr.nodes[cur].next
	}
}

func TestTree_RootIsUniqueChildOfDummyRoot(t *testing.T) {
	tr := newTree(twoBlocks())
	assert.Equal(t, 0, tr.root())
	assert.Equal(t, noNode, tr.nodes[tr.dummyRoot].right)
}

func TestPlanner_MoveBackToPrevRestoresShape(t *testing.T) {
	blocks := []blockSpec{
		{Name: "a", W: 1, H: 1},
		{Name: "b", W: 1, H: 1},
		{Name: "c", W: 1, H: 1},
		{Name: "d", W: 1, H: 1},
	}
	p, err := NewPlanner(blocks, nil, nil, 100, 100, 0.5, testCase())
	require.NoError(t, err)

	before := snapshotShape(p.tree)
	p.swapCount = 0
	p.modBlks[0], p.modBlks[1] = 0, 2
	p.moveBlock(0, 2)
	p.backToPrev(PerturbMove)
	after := snapshotShape(p.tree)

	assert.Equal(t, before, after)
}

func TestPlanner_SwapBackToPrevRestoresShape(t *testing.T) {
	blocks := []blockSpec{
		{Name: "a", W: 1, H: 1},
		{Name: "b", W: 1, H: 1},
		{Name: "c", W: 1, H: 1},
	}
	p, err := NewPlanner(blocks, nil, nil, 100, 100, 0.5, testCase())
	require.NoError(t, err)

	before := snapshotShape(p.tree)
	p.swapBlocks(0, 1)
	p.modBlks[0], p.modBlks[1] = 0, 1
	p.backToPrev(PerturbSwap)
	after := snapshotShape(p.tree)

	assert.Equal(t, before, after)
}

func snapshotShape(t *Tree) [][3]int {
	shape := make([][3]int, len(t.nodes))
	for i, n := range t.nodes {
		shape[i] = [3]int{n.left, n.right, n.parent}
	}
	return shape
}
