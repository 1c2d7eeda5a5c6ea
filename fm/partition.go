package fm

import (
	"container/heap"
	"fmt"
	"math"
)

// initFactor scales the balance factor down for the initial bipartition
// only, the way partitioner.cpp's initPartition does
// ("constexpr double init_factor = 0.9"): the starting cut sits a bit
// closer to even than the balance bound the moves themselves respect.
const initFactor = 0.9

// Options configures a Partitioner.
type Options struct {
	// BalanceFactor bounds how far PartSize[side] may drift from N/2 during
	// the move loop: a legal move requires the source side to have more
	// than ceil((1-BalanceFactor)*N/2) cells remaining. Must be in (0,1).
	BalanceFactor float64
}

// Option mutates an Options during construction.
type Option func(*Options)

// WithBalanceFactor overrides the default balance factor (0.5).
func WithBalanceFactor(b float64) Option {
	return func(o *Options) { o.BalanceFactor = b }
}

// Partitioner runs the FM two-way partitioning algorithm over a Graph. It
// owns the per-side bucket list and the pass-level move bookkeeping;
// construct one with NewPartitioner and drive it with Run.
type Partitioner struct {
	g       *Graph
	balance float64

	lowerBound int // legal-move floor per side, ceil((1-balance)*N/2)
	pmax       int

	bl       *bucketList
	PartSize [2]int
	CutSize  int

	accGain     int
	maxAccGain  int
	moveNum     int
	bestMoveNum int
	moveStack   []int
}

// NewPartitioner builds a Partitioner over g with an initial bipartition
// assigning the first cells to side A and the rest to side B (mirrors
// partitioner.cpp's initPartition), opts defaulting to a 0.5 balance factor.
func NewPartitioner(g *Graph, opts ...Option) (*Partitioner, error) {
	if len(g.Cells) == 0 {
		return nil, ErrNoCells
	}
	o := Options{BalanceFactor: 0.5}
	for _, apply := range opts {
		apply(&o)
	}
	if o.BalanceFactor <= 0 || o.BalanceFactor >= 1 {
		return nil, ErrBadBalanceFactor
	}

	n := len(g.Cells)
	p := &Partitioner{
		g:          g,
		balance:    o.BalanceFactor,
		lowerBound: int(math.Ceil((1 - o.BalanceFactor) * float64(n) / 2.0)),
		pmax:       g.MaxPinNum(),
	}

	limit := int(math.Ceil((1 - initFactor*o.BalanceFactor) * float64(n) / 2.0))
	for i, cell := range g.Cells {
		side := SideA
		if i >= limit {
			side = SideB
		}
		cell.Side = side
		p.PartSize[side]++
		for _, nid := range cell.Nets {
			g.Nets[nid].Count[side]++
		}
	}
	for _, net := range g.Nets {
		if net.Cut() {
			p.CutSize++
		}
	}

	p.bl = newBucketList(n, p.pmax, func(id int) int { return g.Cells[id].CLIPGain() })
	return p, nil
}

// cellHeap orders cells ascending by Gain; draining it and prepending each
// popped cell to bucket 0 leaves the largest-gain cell at the head of the
// chain (spec §4.1/§9: "inserting smallest first leaves the largest-gain
// cell at the head, which is the desired tie-break").
type cellHeap []*Cell

func (h cellHeap) Len() int            { return len(h) }
func (h cellHeap) Less(i, j int) bool  { return h[i].Gain < h[j].Gain }
func (h cellHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cellHeap) Push(x interface{}) { *h = append(*h, x.(*Cell)) }
func (h *cellHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// initPass recomputes every cell's gain from scratch, reseeds the bucket
// list at clip-gain 0, and resets the pass-level accumulators (mirrors
// Partitioner::initPass).
func (p *Partitioner) initPass() {
	p.accGain = 0
	p.maxAccGain = math.MinInt32
	p.moveNum = 0
	p.bestMoveNum = 0
	p.moveStack = p.moveStack[:0]
	p.bl.reset()

	h := make(cellHeap, 0, len(p.g.Cells))
	for _, cell := range p.g.Cells {
		cell.Locked = false
		gain := 0
		for _, nid := range cell.Nets {
			net := p.g.Nets[nid]
			switch {
			case net.Count[cell.Side] == 1:
				gain++
			case net.Count[cell.Side.Opposite()] == 0:
				gain--
			}
		}
		cell.Gain = gain
		cell.InitGain = gain
		h = append(h, cell)
	}
	heap.Init(&h)
	for h.Len() > 0 {
		cell := heap.Pop(&h).(*Cell)
		p.bl.insert(cell.ID, cell.Side, 0)
	}
}

// bumpGain adjusts a cell's live gain by delta, removing and reinserting it
// in the bucket list under its new clip gain (mirrors updateBucketList).
func (p *Partitioner) bumpGain(cell *Cell, delta int) {
	p.bl.remove(cell.ID, cell.Side, cell.CLIPGain())
	cell.Gain += delta
	p.bl.insert(cell.ID, cell.Side, cell.CLIPGain())
}

// moveCell moves the head-of-bucket cell to the opposite side, locking it
// for the remainder of the pass and recording it on the rollback stack.
func (p *Partitioner) moveCell(id int) {
	cell := p.g.Cells[id]
	side := cell.Side
	p.PartSize[side]--
	p.PartSize[side.Opposite()]++
	p.bl.remove(id, side, cell.CLIPGain())
	cell.Side = side.Opposite()
	cell.Locked = true

	p.accGain += cell.Gain
	p.moveNum++
	p.moveStack = append(p.moveStack, id)
	if p.accGain > p.maxAccGain {
		p.maxAccGain = p.accGain
		p.bestMoveNum = p.moveNum
	}
}

// updateGain propagates the effect of moving one cell from `from` to `to`
// onto the gains of its unlocked net-neighbors (mirrors
// Partitioner::updateGain's pre-move / net-flip / post-move structure).
func (p *Partitioner) updateGain(movedID int, from, to Side) {
	cell := p.g.Cells[movedID]
	for _, nid := range cell.Nets {
		net := p.g.Nets[nid]

		switch net.Count[to] {
		case 0:
			p.bumpNetSide(net, to, +1)
		case 1:
			p.bumpNetSideMatching(net, to, -1, to)
		}

		net.MoveCell(to)

		switch net.Count[from] {
		case 0:
			p.bumpNetSide(net, from, -1)
		case 1:
			p.bumpNetSideMatching(net, from, +1, from)
		}
	}
}

// bumpNetSide applies delta to every unlocked cell on the net, regardless
// of which side it currently sits on (used for the "net just became
// touched/untouched on this side" cases, which affect all members).
func (p *Partitioner) bumpNetSide(net *Net, _ Side, delta int) {
	for _, cid := range net.Cells {
		c := p.g.Cells[cid]
		if !c.Locked {
			p.bumpGain(c, delta)
		}
	}
}

// bumpNetSideMatching applies delta only to unlocked cells currently on
// side want (used for the "net has exactly one cell left on this side"
// cases, where only that remaining cell's gain changes).
func (p *Partitioner) bumpNetSideMatching(net *Net, _ Side, delta int, want Side) {
	for _, cid := range net.Cells {
		c := p.g.Cells[cid]
		if !c.Locked && c.Side == want {
			p.bumpGain(c, delta)
		}
	}
}

// Run executes the full multi-pass FM schedule: repeated passes, each
// moving cells greedily under the balance bound and then rolling back to
// the best-seen prefix, until a pass makes no further cut improvement
// (mirrors Partitioner::partition).
func (p *Partitioner) Run() {
	for {
		lastFrom := SideA
		p.initPass()

		for {
			headA, headB := p.bl.maxHead[SideA], p.bl.maxHead[SideB]
			canA := headA != sentinelNone && p.PartSize[SideA] > p.lowerBound
			canB := headB != sentinelNone && p.PartSize[SideB] > p.lowerBound

			var moveID int
			switch {
			case !canA && !canB:
				goto passDone
			case canA && !canB:
				moveID = headA
			case canB && !canA:
				moveID = headB
			default:
				gainA := p.g.Cells[headA].CLIPGain()
				gainB := p.g.Cells[headB].CLIPGain()
				switch {
				case gainA == gainB:
					if lastFrom == SideA {
						moveID = headA
					} else {
						moveID = headB
					}
				case gainA > gainB:
					moveID = headA
				default:
					moveID = headB
				}
			}

			from := p.g.Cells[moveID].Side
			p.moveCell(moveID)
			p.updateGain(moveID, from, from.Opposite())
			lastFrom = from
		}

	passDone:
		if p.maxAccGain <= 0 {
			return
		}
		p.CutSize -= p.maxAccGain
		for i := p.bestMoveNum; i < len(p.moveStack); i++ {
			cell := p.g.Cells[p.moveStack[i]]
			cell.Side = cell.Side.Opposite()
			p.PartSize[cell.Side]++
			p.PartSize[cell.Side.Opposite()]--
			for _, nid := range cell.Nets {
				p.g.Nets[nid].MoveCell(cell.Side)
			}
		}
	}
}

// Result summarizes a finished Run for reporting (spec §6).
type Result struct {
	CutSize  int
	PartSize [2]int
}

// Result returns the current cut size and side sizes.
func (p *Partitioner) Result() Result {
	return Result{CutSize: p.CutSize, PartSize: p.PartSize}
}

// String renders a one-line summary, handy in logs and tests.
func (r Result) String() string {
	return fmt.Sprintf("cut=%d sizeA=%d sizeB=%d", r.CutSize, r.PartSize[SideA], r.PartSize[SideB])
}
