package floorplan

import "math"

// node is one slot in the block arena: a real block (indices [0,n)), or
// one of the two fixed sentinels (dummyRoot at index n, tail at n+1).
// Parent/left/right/prev/next are indices into Tree.nodes, or noNode
// (spec §9 design note 2: "index-based arenas... Option<u32> fields").
type node struct {
	name string
	w, h int

	xl, yl         int
	lastXl, lastYl int
	rotated        bool
	bestXl, bestYl int
	bestRotated    bool

	left, right, parent int
	prev, next          int
}

// Tree is the B*-tree plus its horizontal contour, both threaded through
// the same flat node arena. MaxX/MaxY replace the C++ Block::max_x_/
// max_y_ statics, hoisted here per spec §9 design note 3.
type Tree struct {
	nodes             []node
	n                 int // number of real blocks
	dummyRoot, tail   int
	maxX, maxY        int
	nameToID          map[string]int
}

// blockSpec is the input to newTree: a block's identity and fixed
// dimensions.
type blockSpec struct {
	Name string
	W, H int
}

// newTree allocates the arena and assembles the initial B*-tree as a
// complete binary tree over blocks in input order (mirrors
// Floorplanner::beginningIter's BFS assignment).
func newTree(blocks []blockSpec) *Tree {
	n := len(blocks)
	t := &Tree{
		nodes:    make([]node, n+2),
		n:        n,
		nameToID: make(map[string]int, n),
	}
	for i, b := range blocks {
		t.nodes[i] = node{name: b.Name, w: b.W, h: b.H, left: noNode, right: noNode, parent: noNode, prev: noNode, next: noNode}
		t.nameToID[b.Name] = i
	}

	t.dummyRoot = n
	t.tail = n + 1
	t.nodes[t.dummyRoot] = node{name: "dummy_root", left: 0, right: noNode, parent: noNode, prev: noNode, next: noNode}
	t.nodes[t.tail] = node{name: "tail", left: noNode, right: noNode, parent: noNode, prev: noNode, next: noNode, xl: math.MaxInt32 / 2}

	if n == 0 {
		return t
	}
	t.nodes[0].parent = t.dummyRoot

	queue := []int{0}
	for i := 1; i < n; {
		cur := queue[0]
		queue = queue[1:]
		queue = append(queue, i)
		t.nodes[cur].left = i
		t.nodes[i].parent = cur
		i++
		if i < n {
			queue = append(queue, i)
			t.nodes[cur].right = i
			t.nodes[i].parent = cur
			i++
		}
	}
	return t
}

// root is the real root block, dummyRoot's left child.
func (t *Tree) root() int { return t.nodes[t.dummyRoot].left }

func (t *Tree) width(i int, best bool) int {
	n := &t.nodes[i]
	rotated := n.rotated
	if best {
		rotated = n.bestRotated
	}
	if rotated {
		return n.h
	}
	return n.w
}

func (t *Tree) height(i int, best bool) int {
	n := &t.nodes[i]
	rotated := n.rotated
	if best {
		rotated = n.bestRotated
	}
	if rotated {
		return n.w
	}
	return n.h
}

func (t *Tree) setXl(i, x int) {
	n := &t.nodes[i]
	n.xl = x
	if w := x + t.width(i, false); w > t.maxX {
		t.maxX = w
	}
}

func (t *Tree) setYl(i, y int) {
	n := &t.nodes[i]
	n.yl = y
	if h := y + t.height(i, false); h > t.maxY {
		t.maxY = h
	}
}

func (t *Tree) setLast(i int) {
	n := &t.nodes[i]
	n.lastXl, n.lastYl = n.xl, n.yl
}

func (t *Tree) backToLast(i int) {
	n := &t.nodes[i]
	n.xl, n.yl = n.lastXl, n.lastYl
}

func (t *Tree) setBest(i int) {
	n := &t.nodes[i]
	n.bestXl, n.bestYl, n.bestRotated = n.xl, n.yl, n.rotated
}

func (t *Tree) rotateBlock(i int) { t.nodes[i].rotated = !t.nodes[i].rotated }

// centerX/centerY give a block's pin-reference centre for net HPWL, always
// derived from the live (xl,yl,width,height) rather than cached (spec
// keeps xc/yc as a pure function of geometry, never a separately mutated
// field, so rotate() never needs to touch it directly).
func (t *Tree) centerX(i int, best bool) float64 {
	return float64(t.xl(i, best)) + float64(t.width(i, best))/2
}

func (t *Tree) centerY(i int, best bool) float64 {
	return float64(t.yl(i, best)) + float64(t.height(i, best))/2
}

func (t *Tree) xl(i int, best bool) int {
	if best {
		return t.nodes[i].bestXl
	}
	return t.nodes[i].xl
}

func (t *Tree) yl(i int, best bool) int {
	if best {
		return t.nodes[i].bestYl
	}
	return t.nodes[i].yl
}

// deleteNodeForward unlinks i from the contour list and returns its
// successor (mirrors Block::deleteNodeNForward).
func (t *Tree) deleteNodeForward(i int) int {
	n := &t.nodes[i]
	next, prev := n.next, n.prev
	t.nodes[prev].next = next
	t.nodes[next].prev = prev
	n.prev, n.next = noNode, noNode
	return next
}

// insertNodeBefore splices newNode into the contour list immediately
// before at (mirrors `at->insertNode(newNode)` in the C++, i.e. this
// method's receiver plays the role of `at`).
func (t *Tree) insertNodeBefore(at, newNode int) {
	cur := &t.nodes[at]
	nn := &t.nodes[newNode]
	nn.prev = cur.prev
	nn.next = at
	t.nodes[cur.prev].next = newNode
	cur.prev = newNode
}
