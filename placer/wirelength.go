package placer

import (
	"context"
	"math"

	"github.com/katalvlaran/vlsipd/internal/pdpar"
)

// expTerm caches the four log-sum-exp accumulators a net needs for both
// passes: sum(pos*exp) and sum(exp), for both the max and min directions
// (mirrors Wirelength's all_exp_term_ entry, sum_xe_max/sum_weight_max/
// sum_xe_min/sum_weight_min).
type expTerm struct {
	sumXeMax, sumWMax Point
	sumXeMin, sumWMin Point
}

// wirelength is the smooth (differentiable) log-sum-exp approximation of
// total half-perimeter wirelength (mirrors ObjectiveFunction.h's
// Wirelength). Unlike the floorplanner's netHPWL, gamma here is a single
// global smoothing constant, and max/min coordinates are the true global
// extremes across all module positions — not per-net — matching the
// original's maxCoord_/minCoord_ (spec's Open Question on this point is
// resolved by following the original exactly: global, not per-net).
type wirelength struct {
	placement *Placement
	gamma     float64

	terms []expTerm
	maxC, minC Point
	value      float64
	grad       []Point

	workers int
}

func newWirelength(p *Placement, workers int) *wirelength {
	gamma := 0.05 * math.Min(p.ChipWidth(), p.ChipHeight())
	return &wirelength{
		placement: p,
		gamma:     gamma,
		terms:     make([]expTerm, len(p.Nets)),
		grad:      make([]Point, len(p.Modules)),
		workers:   workers,
	}
}

func pinPos(p *Placement, pos []Point, pin *Pin) Point {
	m := &p.Modules[pin.ModuleID]
	return Point{
		X: pos[pin.ModuleID].X + m.W/2 + pin.XOffset,
		Y: pos[pin.ModuleID].Y + m.H/2 + pin.YOffset,
	}
}

// Forward recomputes the global max/min coordinate, then accumulates each
// net's four log-sum-exp terms and the resulting wirelength value
// (mirrors Wirelength::operator()).
func (w *wirelength) Forward(ctx context.Context, pos []Point) (float64, error) {
	w.maxC, w.minC = pos[0], pos[0]
	for _, pt := range pos[1:] {
		if pt.X > w.maxC.X {
			w.maxC.X = pt.X
		}
		if pt.Y > w.maxC.Y {
			w.maxC.Y = pt.Y
		}
		if pt.X < w.minC.X {
			w.minC.X = pt.X
		}
		if pt.Y < w.minC.Y {
			w.minC.Y = pt.Y
		}
	}

	total, err := pdpar.Reduce(ctx, len(w.placement.Nets), w.workers, 0.0,
		func(ctx context.Context, r pdpar.Range) (float64, error) {
			sum := 0.0
			for netID := r.Start; netID < r.End; netID++ {
				net := &w.placement.Nets[netID]
				var t expTerm
				for _, pinID := range net.PinIDs {
					pp := pinPos(w.placement, pos, &w.placement.Pins[pinID])
					posexp := expDiv(pp.Sub(w.maxC), w.gamma)
					negexp := expDiv(pp.Scale(-1).Add(w.minC), w.gamma)

					t.sumXeMax = t.sumXeMax.Add(pp.hadamard(posexp))
					t.sumWMax = t.sumWMax.Add(posexp)
					t.sumXeMin = t.sumXeMin.Add(pp.hadamard(negexp))
					t.sumWMin = t.sumWMin.Add(negexp)
				}
				w.terms[netID] = t
				sum += (t.sumXeMax.X/t.sumWMax.X - t.sumXeMin.X/t.sumWMin.X) +
					(t.sumXeMax.Y/t.sumWMax.Y - t.sumXeMin.Y/t.sumWMin.Y)
			}
			return sum, nil
		},
		func(acc, partial float64) float64 { return acc + partial },
	)
	w.value = total
	return total, err
}

func expDiv(p Point, gamma float64) Point {
	return Point{X: math.Exp(p.X / gamma), Y: math.Exp(p.Y / gamma)}
}

func (p Point) hadamard(q Point) Point { return Point{p.X * q.X, p.Y * q.Y} }

// Backward computes dWirelength/dPos for every non-fixed module from the
// cached per-net terms (mirrors Wirelength::Backward).
func (w *wirelength) Backward(ctx context.Context, pos []Point) ([]Point, error) {
	n := len(w.placement.Modules)
	for i := range w.grad {
		w.grad[i] = Point{}
	}

	return w.grad, pdpar.ForEachRange(ctx, n, w.workers, func(ctx context.Context, r pdpar.Range) error {
		for i := r.Start; i < r.End; i++ {
			m := &w.placement.Modules[i]
			if m.Fixed {
				continue
			}
			var local Point
			for _, pinID := range m.PinIDs {
				pin := &w.placement.Pins[pinID]
				pp := pinPos(w.placement, pos, pin)
				t := w.terms[pin.NetID]

				posexp := expDiv(pp.Sub(w.maxC), w.gamma)
				negexp := expDiv(pp.Scale(-1).Add(w.minC), w.gamma)
				sumXeMax := pp.hadamard(posexp)
				sumWMax := posexp
				sumXeMin := pp.hadamard(negexp)
				sumWMin := negexp

				maxTerm := sumXeMax.Scale(1 / w.gamma).Add(sumWMax).divide(t.sumWMax).
					Sub(sumWMax.hadamard(t.sumXeMax).divide(t.sumWMax.hadamard(t.sumWMax).Scale(w.gamma)))
				minTerm := sumWMin.Sub(sumXeMin.Scale(1 / w.gamma)).divide(t.sumWMin).
					Add(sumWMin.hadamard(t.sumXeMin).divide(t.sumWMin.hadamard(t.sumWMin).Scale(w.gamma)))

				local = local.Add(maxTerm.Sub(minTerm))
			}
			w.grad[i] = local
		}
		return nil
	})
}

func (p Point) divide(q Point) Point { return Point{p.X / q.X, p.Y / q.Y} }
