package placer

import (
	"context"

	"github.com/katalvlaran/vlsipd/internal/pdpar"
)

// optimizer is a conjugate-gradient driver with a constant step size,
// using a Hestenes-Stiefel-like beta update whose denominator is a
// component-sum-of-abs rather than a dot product (mirrors
// SimpleConjugateGradient).
type optimizer struct {
	placement *Placement
	obj       *objective

	pos      []Point
	gradPrev []Point
	dirPrev  []Point
	stepSize float64
	workers  int
}

func newOptimizer(p *Placement, obj *objective, pos []Point, stepSize float64, workers int) *optimizer {
	return &optimizer{
		placement: p,
		obj:       obj,
		pos:       pos,
		gradPrev:  make([]Point, len(pos)),
		dirPrev:   make([]Point, len(pos)),
		stepSize:  stepSize,
		workers:   workers,
	}
}

func (o *optimizer) clamp(i int) {
	m := &o.placement.Modules[i]
	left := o.placement.BoundaryLeft
	right := o.placement.BoundaryRight - m.W
	bottom := o.placement.BoundaryBottom
	top := o.placement.BoundaryTop - m.H

	if o.pos[i].X < left {
		o.pos[i].X = left
	} else if o.pos[i].X > right {
		o.pos[i].X = right
	}
	if o.pos[i].Y < bottom {
		o.pos[i].Y = bottom
	} else if o.pos[i].Y > top {
		o.pos[i].Y = top
	}
}

// Initialize sets lambda from the relative gradient magnitude, then takes
// the first descent step along the raw negative gradient (mirrors
// SimpleConjugateGradient::Initialize).
func (o *optimizer) Initialize(ctx context.Context) error {
	if err := o.obj.InitializeLambda(ctx, o.pos); err != nil {
		return err
	}

	n := len(o.pos)
	dir := make([]Point, n)
	binW, binH := o.obj.binWidth(), o.obj.binHeight()

	err := pdpar.ForEachRange(ctx, n, o.workers, func(ctx context.Context, r pdpar.Range) error {
		for i := r.Start; i < r.End; i++ {
			m := &o.placement.Modules[i]
			if !m.Fixed {
				dir[i] = o.obj.grad[i].Scale(-1)
				norm := dir[i].Norm2()
				o.pos[i].X += o.stepSize * binW * dir[i].X / norm
				o.pos[i].Y += o.stepSize * binH * dir[i].Y / norm
			}
			o.clamp(i)
		}
		return nil
	})
	if err != nil {
		return err
	}

	copy(o.gradPrev, o.obj.grad)
	copy(o.dirPrev, dir)
	return nil
}

// Step performs one conjugate-gradient update: recompute the objective and
// its gradient, derive beta from the fixed-order parallel reduction of
// (g . (g-g_prev)) and (sum|g|)^2, form the new direction, then move and
// clamp every module (mirrors SimpleConjugateGradient::Step).
func (o *optimizer) Step(ctx context.Context) error {
	if _, err := o.obj.Forward(ctx, o.pos); err != nil {
		return err
	}
	if _, err := o.obj.Backward(ctx, o.pos); err != nil {
		return err
	}

	n := len(o.pos)
	type partial struct{ t1, t2 float64 }
	sums, err := pdpar.Reduce(ctx, n, o.workers, partial{},
		func(ctx context.Context, r pdpar.Range) (partial, error) {
			var t1, t2 float64
			for i := r.Start; i < r.End; i++ {
				if o.placement.Modules[i].Fixed {
					continue
				}
				g := o.obj.grad[i]
				gp := o.gradPrev[i]
				t1 += g.X*(g.X-gp.X) + g.Y*(g.Y-gp.Y)
				t2 += abs(g.X) + abs(g.Y)
			}
			return partial{t1, t2}, nil
		},
		func(acc, p partial) partial { return partial{acc.t1 + p.t1, acc.t2 + p.t2} },
	)
	if err != nil {
		return err
	}

	beta := 0.0
	if sums.t2 != 0 {
		beta = sums.t1 / (sums.t2 * sums.t2)
	}

	dir := make([]Point, n)
	binW, binH := o.obj.binWidth(), o.obj.binHeight()
	err = pdpar.ForEachRange(ctx, n, o.workers, func(ctx context.Context, r pdpar.Range) error {
		for i := r.Start; i < r.End; i++ {
			m := &o.placement.Modules[i]
			if !m.Fixed {
				dir[i] = o.obj.grad[i].Scale(-1).Add(o.dirPrev[i].Scale(beta))
				norm := dir[i].Norm2()
				o.pos[i].X += o.stepSize * binW * dir[i].X / norm
				o.pos[i].Y += o.stepSize * binH * dir[i].Y / norm
			}
			o.clamp(i)
		}
		return nil
	})
	if err != nil {
		return err
	}

	copy(o.gradPrev, o.obj.grad)
	copy(o.dirPrev, dir)
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
