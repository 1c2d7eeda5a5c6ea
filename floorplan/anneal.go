package floorplan

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/vlsipd/pdconfig"
)

// Planner runs fixed-outline simulated annealing over a B*-tree. Construct
// one with NewPlanner and drive it with Run.
type Planner struct {
	tree      *Tree
	nets      []*Net
	terminals map[string]Terminal

	cfg          pdconfig.FloorplanCase
	alpha        float64
	outlineW     int
	outlineH     int
	outlineRatio float64
	rng          *rand.Rand

	areaNorm, wireNorm, ratioDiffNorm float64
	beginSols                         []beginSol
	deltaBeginAvg                     float64

	numSAIter int
	deltaAvg  float64
	initTemp  float64

	numFeasible, numRecent int
	perturbNum             int
	tempK, tempC           int

	swapCount int
	modBlks   [2]int
	record    [2]record

	bestCost   float64
	bestBoxX   int
	bestBoxY   int
	found      bool
}

// NewPlanner builds a Planner over the given blocks, nets and fixed
// terminals, inside an outlineW x outlineH outline (mirrors the
// Floorplanner constructor).
func NewPlanner(blocks []blockSpec, nets []*Net, terminals map[string]Terminal, outlineW, outlineH int, alpha float64, cfg pdconfig.FloorplanCase) (*Planner, error) {
	if len(blocks) == 0 {
		return nil, ErrNoBlocks
	}
	if alpha < 0 || alpha > 1 {
		return nil, ErrBadAlpha
	}
	if outlineW <= 0 || outlineH <= 0 {
		return nil, ErrBadOutline
	}

	n := len(blocks)
	p := &Planner{
		tree:         newTree(blocks),
		nets:         nets,
		terminals:    terminals,
		cfg:          cfg,
		alpha:        alpha,
		outlineW:     outlineW,
		outlineH:     outlineH,
		outlineRatio: float64(outlineH) / float64(outlineW),
		rng:          rand.New(rand.NewSource(cfg.Seed)),
		perturbNum:   cfg.PerturbNum * n,
		modBlks:      [2]int{noNode, noNode},
	}
	p.tempK = maxInt(2, n/cfg.TempK)
	p.tempC = maxInt(cfg.TempC-n, 10)
	return p, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// beginningIter perturbs the current tree (newTree's complete binary tree
// on a fresh Planner) once per block to warm up the area/wirelength/ratio
// normalisers, and returns the resulting cost (mirrors
// Floorplanner::beginningIter).
func (p *Planner) beginningIter() Cost {
	p.deltaBeginAvg = 0
	p.areaNorm, p.wireNorm, p.ratioDiffNorm = 0, 0, 0
	uphillCount := 0

	n := p.tree.n
	p.beginSols = make([]beginSol, n)
	for i := 0; i < n; i++ {
		p.perturb()
		p.tree.pack()
		wl := p.wirelength(false)
		p.beginSols[i] = beginSol{boxX: p.boxX(), boxY: p.boxY(), wirelength: wl}
		fi := float64(i)
		p.areaNorm = (float64(p.boxX())*float64(p.boxY()) + p.areaNorm*fi) / (fi + 1)
		p.wireNorm = (wl + p.wireNorm*fi) / (fi + 1)
		p.ratioDiffNorm = (math.Abs(float64(p.boxY())/float64(p.boxX())-p.outlineRatio) + p.ratioDiffNorm*fi) / (fi + 1)
	}

	cost := p.calBeginCost(0)
	for i := 1; i < n; i++ {
		newCost := p.calBeginCost(i)
		delta := newCost.Total - cost.Total
		if delta > 0 {
			p.deltaBeginAvg = (p.deltaBeginAvg*float64(uphillCount) + delta) / float64(uphillCount+1)
			uphillCount++
		}
		cost = newCost
	}
	return cost
}

// temperature computes the next SA temperature from the three-phase
// schedule (mirrors Floorplanner::temperature).
func (p *Planner) temperature() float64 {
	switch {
	case p.numSAIter <= 0:
		p.initTemp = -p.deltaBeginAvg / math.Log(p.cfg.InitProb)
		return p.initTemp
	case p.numSAIter <= p.tempK-1:
		return p.initTemp * p.deltaAvg / (float64(p.tempC) * float64(p.numSAIter))
	default:
		return p.initTemp * p.deltaAvg / float64(p.numSAIter)
	}
}

// Run executes the full simulated-annealing search until a feasible
// solution is found and the schedule has converged (mirrors
// Floorplanner::floorplan).
func (p *Planner) Run() {
	p.numSAIter, p.numRecent, p.numFeasible = 0, 0, 0
	p.bestCost = math.MaxFloat64
	p.bestBoxX, p.bestBoxY = 0, 0
	p.found = false

	cost := p.beginningIter()
	temp := p.temperature()

	var feasQueue []bool
	for {
		iter, uphill, reject := 0, 0, 0
		p.deltaAvg = 0
		var newCost Cost

		for iter < p.perturbNum && uphill < p.perturbNum/2 {
			for i := 0; i < p.tree.n; i++ {
				p.tree.setLast(i)
			}
			lastBoxX, lastBoxY := p.boxX(), p.boxY()

			kind := p.perturb()
			p.tree.pack()
			newCost = p.calCost()

			feas := p.boxX() <= p.outlineW && p.boxY() <= p.outlineH
			feasQueue = append(feasQueue, feas)
			if feas {
				p.numFeasible++
			}
			if p.numRecent == p.cfg.AdaptiveNum {
				if feasQueue[0] {
					p.numFeasible--
				}
				feasQueue = feasQueue[1:]
			} else {
				p.numRecent++
			}

			delta := newCost.Total - cost.Total
			if delta <= 0 || p.rng.Float64() <= math.Exp(-delta/temp) {
				if delta > 0 {
					uphill++
				}
				cost = newCost
				if feas && cost.Real < p.bestCost {
					p.found = true
					p.bestCost = cost.Real
					for i := 0; i < p.tree.n; i++ {
						p.tree.setBest(i)
					}
					p.bestBoxX, p.bestBoxY = p.boxX(), p.boxY()
				}
			} else {
				p.backToPrev(kind)
				for i := 0; i < p.tree.n; i++ {
					p.tree.backToLast(i)
				}
				p.tree.maxX, p.tree.maxY = lastBoxX, lastBoxY
				reject++
			}

			p.deltaAvg = (p.deltaAvg*float64(iter) + delta) / float64(iter+1)
			iter++
		}

		switch {
		case temp < 1e-10:
			if p.found {
				return
			}
			p.numSAIter = 0
			temp = p.temperature()
		case reject >= p.perturbNum:
			if p.found {
				return
			}
			p.numSAIter = 0
			temp = p.temperature()
		default:
			p.numSAIter++
			temp = p.temperature()
		}
	}
}

// Found reports whether Run located at least one feasible solution.
func (p *Planner) Found() bool { return p.found }

// BestBox returns the bounding box of the best feasible solution found.
func (p *Planner) BestBox() (x, y int) { return p.bestBoxX, p.bestBoxY }
