package floorplan

import "math"

// Cost is the pair of values calCost produces: the pure area+wirelength
// blend (used to pick the best feasible solution) and the fully blended
// total (used to accept/reject during annealing).
type Cost struct {
	Real, Total float64
}

// beginSol is one warm-up iteration's outcome, cached so calCost can
// recompute its cost retroactively once the normalisers are known
// (mirrors the C++ tuple<int,int,double> beginning_iter_sol_ entries).
type beginSol struct {
	boxX, boxY int
	wirelength float64
}

func (p *Planner) boxX() int { return p.tree.maxX }
func (p *Planner) boxY() int { return p.tree.maxY }

// wirelength sums every net's half-perimeter wirelength over the live (or
// best-snapshot) block positions.
func (p *Planner) wirelength(best bool) float64 {
	total := 0.0
	for _, net := range p.nets {
		total += p.netHPWL(net, best)
	}
	return total
}

func (p *Planner) netHPWL(net *Net, best bool) float64 {
	if len(net.Members) == 0 {
		return 0
	}
	x0, y0 := p.centerOf(net.Members[0], best)
	minX, maxX, minY, maxY := x0, x0, y0, y0
	for _, name := range net.Members[1:] {
		x, y := p.centerOf(name, best)
		if x < minX {
			minX = x
		} else if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		} else if y > maxY {
			maxY = y
		}
	}
	return (maxX - minX) + (maxY - minY)
}

func (p *Planner) centerOf(name string, best bool) (float64, float64) {
	if id, ok := p.tree.nameToID[name]; ok {
		return p.tree.centerX(id, best), p.tree.centerY(id, best)
	}
	term := p.terminals[name]
	return term.Xc, term.Yc
}

// calCost computes the real/total cost pair for the live solution
// (mirrors Floorplanner::calCost(-1)).
func (p *Planner) calCost() Cost {
	return p.cost(p.boxX(), p.boxY(), p.wirelength(false))
}

// calBeginCost recomputes the cost of warm-up iteration i from its cached
// (boxX, boxY, wirelength) tuple (mirrors Floorplanner::calCost(iter)).
func (p *Planner) calBeginCost(i int) Cost {
	s := p.beginSols[i]
	return p.cost(s.boxX, s.boxY, s.wirelength)
}

func (p *Planner) cost(boxX, boxY int, wirelength float64) Cost {
	real := p.alpha * float64(boxX) * float64(boxY) / p.areaNorm
	if p.wireNorm > 0 {
		real += (1 - p.alpha) * wirelength / p.wireNorm
	}

	adaptAlpha := p.cfg.AlphaBase
	if p.numRecent > 0 {
		adaptAlpha = p.cfg.AlphaBase + (1-p.cfg.AlphaBase)*float64(p.numFeasible)/float64(p.numRecent)
	}
	outlineCost := math.Pow((float64(boxY)/float64(boxX)-p.outlineRatio)/p.ratioDiffNorm, 2)
	total := adaptAlpha*real + (1-adaptAlpha)*outlineCost
	return Cost{Real: real, Total: total}
}
