package placer

import (
	"context"
	"math"

	"github.com/katalvlaran/vlsipd/pdconfig"
)

// Placer runs the analytical global-placement control loop over a
// Placement (mirrors GlobalPlacer).
type Placer struct {
	placement *Placement
	cfg       pdconfig.PlacerCase

	obj *objective
	opt *optimizer
	pos []Point

	steps         int
	fixedCount    int
	totalCount    int
}

// NewPlacer validates placement and builds the objective/optimizer pair,
// seeding every movable module at the chip center and every fixed module
// at its given position (mirrors GlobalPlacer's constructor plus the
// first half of place()).
func NewPlacer(p *Placement, cfg pdconfig.PlacerCase) (*Placer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := len(p.Modules)
	pos := make([]Point, n)
	fixed := 0
	centerX := (p.BoundaryLeft + p.BoundaryRight) * 0.5
	centerY := (p.BoundaryBottom + p.BoundaryTop) * 0.5
	for i := range p.Modules {
		if p.Modules[i].Fixed {
			pos[i] = Point{X: p.Modules[i].X, Y: p.Modules[i].Y}
			fixed++
		} else {
			pos[i] = Point{X: centerX, Y: centerY}
		}
	}

	obj := newObjective(p, cfg)
	return &Placer{
		placement:  p,
		cfg:        cfg,
		obj:        obj,
		opt:        newOptimizer(p, obj, pos, cfg.StepSize, cfg.Threads),
		pos:        pos,
		fixedCount: fixed,
		totalCount: n,
	}, nil
}

// Run drives the optimizer until the overflow target is met or the
// control loop's patience/step budget is exhausted (mirrors
// GlobalPlacer::place's iteration loop).
func (pl *Placer) Run(ctx context.Context) error {
	if err := pl.opt.Initialize(ctx); err != nil {
		return err
	}
	if err := pl.opt.Step(ctx); err != nil {
		return err
	}

	bestOverflow := pl.obj.overflowRatio()
	lastCost := pl.obj.value
	pl.steps = 1
	haltSpreadSteps := 0
	adjustGamma := false

	for {
		if err := pl.opt.Step(ctx); err != nil {
			return err
		}
		overflow := pl.obj.overflowRatio()

		if (lastCost-pl.obj.value)/lastCost > pl.cfg.CostImprovementRatio {
			lastCost = pl.obj.value
		} else {
			pl.obj.multiplyLambda(pl.cfg.MulLambda)
			lastCost = math.MaxFloat64
		}

		if overflow < bestOverflow {
			if overflow < pl.cfg.OverflowAcceptRatio {
				break
			}
			bestOverflow = overflow
			haltSpreadSteps = 0

			if !adjustGamma && overflow < pl.cfg.AdjustGammaOverflow {
				pl.obj.multiplyGamma(pl.cfg.MulGamma)
				adjustGamma = true
			}
		} else {
			haltSpreadSteps++
			if overflow < pl.cfg.OverflowAcceptRatio && haltSpreadSteps > pl.cfg.EarlyStopSteps {
				break
			}
		}
		pl.steps++
		if pl.steps > pl.cfg.MaxSteps {
			break
		}
	}
	return nil
}

// Positions returns the final module positions (fixed modules unchanged).
func (pl *Placer) Positions() []Point { return pl.opt.pos }

// Steps reports how many optimizer steps Run performed.
func (pl *Placer) Steps() int { return pl.steps }

// RunStats is a supplemented reporting feature (not in the original
// stdout-only tool): a structured summary of one Run call, for a CLI's
// "--stats" flag or machine-readable output.
type RunStats struct {
	Steps       int
	FixedCount  int
	TotalCount  int
	Overflow    float64
	Wirelength  float64
	ObjectiveValue float64
}

// Stats reports RunStats for the most recent Run call.
func (pl *Placer) Stats() RunStats {
	return RunStats{
		Steps:          pl.steps,
		FixedCount:     pl.fixedCount,
		TotalCount:     pl.totalCount,
		Overflow:       pl.obj.overflowRatio(),
		Wirelength:     pl.obj.wirelengthCost(),
		ObjectiveValue: pl.obj.value,
	}
}

// Hpwl computes the true (non-smoothed) half-perimeter wirelength over the
// final positions, for reporting (mirrors Placement::computeHpwl).
func (pl *Placer) Hpwl() float64 {
	total := 0.0
	for i := range pl.placement.Nets {
		net := &pl.placement.Nets[i]
		if len(net.PinIDs) == 0 {
			continue
		}
		first := pinPos(pl.placement, pl.pos, &pl.placement.Pins[net.PinIDs[0]])
		minX, maxX, minY, maxY := first.X, first.X, first.Y, first.Y
		for _, pinID := range net.PinIDs[1:] {
			pp := pinPos(pl.placement, pl.pos, &pl.placement.Pins[pinID])
			if pp.X < minX {
				minX = pp.X
			} else if pp.X > maxX {
				maxX = pp.X
			}
			if pp.Y < minY {
				minY = pp.Y
			} else if pp.Y > maxY {
				maxY = pp.Y
			}
		}
		total += (maxX - minX) + (maxY - minY)
	}
	return total
}
