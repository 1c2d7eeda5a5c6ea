package placer

import (
	"context"

	"github.com/katalvlaran/vlsipd/pdconfig"
)

// objective combines the wirelength and density terms into one
// differentiable cost, with lambda blending the two and gamma controlling
// wirelength smoothing (mirrors ObjectiveFunction).
type objective struct {
	wl  *wirelength
	den *density

	lambda float64
	value  float64
	grad   []Point
}

func newObjective(p *Placement, cfg pdconfig.PlacerCase) *objective {
	return &objective{
		wl:   newWirelength(p, cfg.Threads),
		den:  newDensity(p, cfg.NumBinSideRatio, cfg.ObjectDensity, cfg.Threads),
		grad: make([]Point, len(p.Modules)),
	}
}

func (o *objective) binWidth() float64  { return o.den.binW }
func (o *objective) binHeight() float64 { return o.den.binH }
func (o *objective) overflowRatio() float64 { return o.den.overflowRatio }
func (o *objective) wirelengthCost() float64 { return o.wl.value }
func (o *objective) densityCost() float64    { return o.den.value }

func (o *objective) multiplyGamma(times float64) { o.wl.gamma *= times }
func (o *objective) multiplyLambda(times float64) { o.lambda *= times }

// InitializeLambda runs one forward+backward pass of both terms and sets
// lambda to the ratio of their gradient magnitudes, so neither term
// dominates the very first optimizer step (mirrors
// ObjectiveFunction::initialize_lambda).
func (o *objective) InitializeLambda(ctx context.Context, pos []Point) error {
	wlCost, err := o.wl.Forward(ctx, pos)
	if err != nil {
		return err
	}
	denCost, err := o.den.Forward(ctx, pos)
	if err != nil {
		return err
	}
	wlGrad, err := o.wl.Backward(ctx, pos)
	if err != nil {
		return err
	}
	denGrad, err := o.den.Backward(ctx, pos)
	if err != nil {
		return err
	}

	var wlSum, denSum float64
	for i := range pos {
		wlSum += wlGrad[i].Norm2()
		denSum += denGrad[i].Norm2()
	}
	o.lambda = wlSum / denSum

	for i := range pos {
		o.grad[i] = wlGrad[i].Add(denGrad[i].Scale(o.lambda))
	}
	o.value = wlCost + o.lambda*denCost
	return nil
}

// Forward recomputes the blended objective value (mirrors
// ObjectiveFunction::operator()).
func (o *objective) Forward(ctx context.Context, pos []Point) (float64, error) {
	wlCost, err := o.wl.Forward(ctx, pos)
	if err != nil {
		return 0, err
	}
	denCost, err := o.den.Forward(ctx, pos)
	if err != nil {
		return 0, err
	}
	o.value = wlCost + o.lambda*denCost
	return o.value, nil
}

// Backward recomputes the blended gradient (mirrors
// ObjectiveFunction::Backward).
func (o *objective) Backward(ctx context.Context, pos []Point) ([]Point, error) {
	wlGrad, err := o.wl.Backward(ctx, pos)
	if err != nil {
		return nil, err
	}
	denGrad, err := o.den.Backward(ctx, pos)
	if err != nil {
		return nil, err
	}
	for i := range pos {
		o.grad[i] = wlGrad[i].Add(denGrad[i].Scale(o.lambda))
	}
	return o.grad, nil
}
