package placer

import (
	"context"
	"math"

	"github.com/katalvlaran/vlsipd/internal/pdpar"
)

// binGrid is a row-major flat-slice grid of accumulated module area per
// bin (same storage layout as the teacher's matrix.Dense — row-major,
// single backing slice, O(1) At/Add — adapted here for scatter-add rather
// than general linear algebra, since that's all the density model needs).
type binGrid struct {
	side int // square grid, side x side bins
	data []float64
}

func newBinGrid(side int) *binGrid {
	if side < 1 {
		side = 1
	}
	return &binGrid{side: side, data: make([]float64, side*side)}
}

func (g *binGrid) at(x, y int) float64   { return g.data[x*g.side+y] }
func (g *binGrid) add(x, y int, v float64) { g.data[x*g.side+y] += v }
func (g *binGrid) reset() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// density is the NTUPlace3 bin-density term: the sum of squared
// (accumulated-area − target-area) over all bins, plus the gradient of
// that term with respect to each movable module's position (mirrors
// PA3's ObjectiveFunction.h::Density).
type density struct {
	placement *Placement

	numBinsSide int
	binW, binH  float64
	binArea     float64
	objectArea  float64

	grid   *binGrid
	coeff  []float64 // per-module scatter normalization coefficient
	grad   []Point
	value  float64
	overflowRatio float64

	workers int
}

func newDensity(p *Placement, numBinSideRatio, objectDensityRatio float64, workers int) *density {
	n := len(p.Modules)
	side := int(numBinSideRatio * math.Sqrt(float64(n)))
	if side < 1 {
		side = 1
	}
	binW := p.ChipWidth() / float64(side)
	binH := p.ChipHeight() / float64(side)
	binArea := binW * binH

	avail := 0.0
	for i := range p.Modules {
		if !p.Modules[i].Fixed {
			avail += p.Modules[i].Area()
		}
	}
	objectArea := math.Max(avail/p.ChipArea(), objectDensityRatio*binArea)

	return &density{
		placement:   p,
		numBinsSide: side,
		binW:        binW,
		binH:        binH,
		binArea:     binArea,
		objectArea:  objectArea,
		grid:        newBinGrid(side),
		coeff:       make([]float64, n),
		grad:        make([]Point, n),
		workers:     workers,
	}
}

// overlap returns the 1D overlap area fraction of a module against a bin,
// using the three-branch smoothed bell function (mirrors
// Density::overLapping).
func overlap(centerDist, binSize, moduleSize float64) float64 {
	d := math.Abs(centerDist)
	switch {
	case d >= 0.5*moduleSize+2*binSize:
		return 0
	case d <= 0.5*moduleSize+binSize:
		alpha := 4.0 / ((moduleSize + 2*binSize) * (moduleSize + 4*binSize))
		return 1 - alpha*d*d
	default:
		beta := 2.0 / (binSize * (moduleSize + 4*binSize))
		return beta * math.Pow(d-0.5*moduleSize-2*binSize, 2)
	}
}

// diffOverlap is the derivative of overlap with respect to centerDist
// (mirrors Density::diff_overLapping).
func diffOverlap(centerDist, binSize, moduleSize float64) float64 {
	d := math.Abs(centerDist)
	switch {
	case d >= 0.5*moduleSize+2*binSize:
		return 0
	case d <= 0.5*moduleSize+binSize:
		alpha := 4.0 / ((moduleSize + 2*binSize) * (moduleSize + 4*binSize))
		return -2 * alpha * centerDist
	default:
		beta := 2.0 / (binSize * (moduleSize + 4*binSize))
		if centerDist > 0 {
			return 2 * beta * (centerDist - 0.5*moduleSize - 2*binSize)
		}
		return 2 * beta * (centerDist + 0.5*moduleSize + 2*binSize)
	}
}

func (d *density) binWindow(pos Point, m *Module) (left, bottom, right, top int) {
	p := d.placement
	leftF := (pos.X - p.BoundaryLeft) / d.binW
	bottomF := (pos.Y - p.BoundaryBottom) / d.binH
	rightF := (pos.X+m.W-p.BoundaryLeft)/d.binW + 2
	topF := (pos.Y+m.H-p.BoundaryBottom)/d.binH + 2

	left, bottom = int(leftF), int(bottomF)
	right, top = int(rightF), int(topF)
	if left >= 2 {
		left -= 2
	}
	if bottom >= 2 {
		bottom -= 2
	}
	if right > d.numBinsSide-1 {
		right = d.numBinsSide - 1
	}
	if top > d.numBinsSide-1 {
		top = d.numBinsSide - 1
	}
	return left, bottom, right, top
}

// Forward scatters every movable module's area across its overlapping
// bins, merges the per-worker partial grids in worker order (determinism
// requirement: floating-point sums depend on add order), and returns the
// resulting squared-overflow cost (mirrors Density::operator()).
func (d *density) Forward(ctx context.Context, pos []Point) (float64, error) {
	d.grid.reset()
	for i := range d.coeff {
		d.coeff[i] = 0
	}
	n := len(d.placement.Modules)

	type partial struct {
		grid *binGrid
	}
	merged, err := pdpar.Reduce(ctx, n, d.workers, partial{grid: newBinGrid(d.numBinsSide)},
		func(ctx context.Context, r pdpar.Range) (partial, error) {
			local := newBinGrid(d.numBinsSide)
			for i := r.Start; i < r.End; i++ {
				m := &d.placement.Modules[i]
				if m.Fixed {
					continue
				}
				left, bottom, right, top := d.binWindow(pos[i], m)
				centerX := pos[i].X + m.W/2 - d.placement.BoundaryLeft
				centerY := pos[i].Y + m.H/2 - d.placement.BoundaryBottom

				ovX := make([]float64, right-left+1)
				for dx := range ovX {
					binCenterX := d.binW * (float64(left+dx) + 0.5)
					ovX[dx] = overlap(centerX-binCenterX, d.binW, m.W)
				}

				sum := 0.0
				overlaps := make([][]float64, top-bottom+1)
				for dy, by := 0, bottom; by <= top; dy, by = dy+1, by+1 {
					binCenterY := d.binH * (float64(by) + 0.5)
					ovY := overlap(centerY-binCenterY, d.binH, m.H)
					row := make([]float64, len(ovX))
					for dx := range ovX {
						row[dx] = ovX[dx] * ovY
						sum += row[dx]
					}
					overlaps[dy] = row
				}
				if sum == 0 {
					continue
				}
				coeff := m.Area() / sum
				d.coeff[i] = coeff
				for dy, by := 0, bottom; by <= top; dy, by = dy+1, by+1 {
					for dx, bx := 0, left; bx <= right; dx, bx = dx+1, bx+1 {
						local.add(bx, by, coeff*overlaps[dy][dx])
					}
				}
			}
			return partial{grid: local}, nil
		},
		func(acc, p partial) partial {
			for i := range acc.grid.data {
				acc.grid.data[i] += p.grid.data[i]
			}
			return acc
		},
	)
	if err != nil {
		return 0, err
	}
	d.grid = merged.grid

	value := 0.0
	overflowArea := 0.0
	for i := 0; i < d.numBinsSide; i++ {
		for j := 0; j < d.numBinsSide; j++ {
			diff := d.grid.at(i, j) - d.objectArea
			if diff > 0 {
				overflowArea += diff
			}
			value += diff * diff
		}
	}
	d.value = value
	d.overflowRatio = overflowArea / d.placement.ChipArea()
	return value, nil
}

// Backward computes dCost/dPos for every movable module from the current
// grid snapshot (mirrors Density::Backward).
func (d *density) Backward(ctx context.Context, pos []Point) ([]Point, error) {
	n := len(d.placement.Modules)
	for i := range d.grad {
		d.grad[i] = Point{}
	}

	return d.grad, pdpar.ForEachRange(ctx, n, d.workers, func(ctx context.Context, r pdpar.Range) error {
		for i := r.Start; i < r.End; i++ {
			m := &d.placement.Modules[i]
			if m.Fixed {
				continue
			}
			left, bottom, right, top := d.binWindow(pos[i], m)
			centerX := pos[i].X + m.W/2 - d.placement.BoundaryLeft
			centerY := pos[i].Y + m.H/2 - d.placement.BoundaryBottom
			coeff := d.coeff[i]

			var gx, gy float64
			for bx := left; bx <= right; bx++ {
				binCenterX := d.binW * (float64(bx) + 0.5)
				distX := centerX - binCenterX
				dOvX := diffOverlap(distX, d.binW, m.W)
				ovX := overlap(distX, d.binW, m.W)
				for by := bottom; by <= top; by++ {
					binCenterY := d.binH * (float64(by) + 0.5)
					distY := centerY - binCenterY
					dOvY := diffOverlap(distY, d.binH, m.H)
					ovY := overlap(distY, d.binH, m.H)

					diff := d.grid.at(bx, by) - d.objectArea
					gx += 2 * diff * coeff * dOvX * ovY
					gy += 2 * diff * coeff * ovX * dOvY
				}
			}
			d.grad[i] = Point{X: gx, Y: gy}
		}
		return nil
	})
}
