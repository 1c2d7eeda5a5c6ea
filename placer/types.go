package placer

import (
	"errors"
	"math"
)

// Sentinel errors for the placer package.
var (
	ErrNoModules      = errors.New("placer: no modules in input")
	ErrBadChipArea    = errors.New("placer: chip boundary has zero or negative area")
	ErrUnknownModule  = errors.New("placer: pin references unknown module")
	ErrMalformedInput = errors.New("placer: malformed input")
)

// Point is a 2D coordinate, used both for module positions and gradients
// (mirrors PA3's Point2<double>).
type Point struct {
	X, Y float64
}

// Add returns the componentwise sum.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the componentwise difference.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Norm2 returns the Euclidean norm.
func (p Point) Norm2() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Module is one placeable cell: a fixed macro/terminal if Fixed, otherwise
// a movable standard cell whose position is an optimization variable
// (mirrors PA3's Module).
type Module struct {
	Name   string
	W, H   float64
	Fixed  bool
	X, Y   float64 // only meaningful at load time for Fixed modules
	PinIDs []int
}

// Area returns the module's footprint.
func (m *Module) Area() float64 { return m.W * m.H }

// Pin is one terminal of a net, offset from its owning module's lower-left
// corner (mirrors PA3's Pin).
type Pin struct {
	ModuleID int
	NetID    int
	XOffset  float64
	YOffset  float64
}

// Net is a hyperwire connecting two or more pins (mirrors PA3's Net).
type Net struct {
	Name   string
	PinIDs []int
}

// Placement is the full design database: modules, pins, nets and the
// fixed chip boundary they must be placed within (mirrors PA3's
// Placement, trimmed to what global placement needs — no Row/legalization
// bookkeeping, since that is this spec's explicit non-goal).
type Placement struct {
	Modules []Module
	Pins    []Pin
	Nets    []Net

	BoundaryLeft, BoundaryRight   float64
	BoundaryBottom, BoundaryTop   float64
}

func (p *Placement) ChipWidth() float64  { return p.BoundaryRight - p.BoundaryLeft }
func (p *Placement) ChipHeight() float64 { return p.BoundaryTop - p.BoundaryBottom }
func (p *Placement) ChipArea() float64   { return p.ChipWidth() * p.ChipHeight() }

// Validate checks the invariants NewPlacer relies on.
func (p *Placement) Validate() error {
	if len(p.Modules) == 0 {
		return ErrNoModules
	}
	if p.ChipWidth() <= 0 || p.ChipHeight() <= 0 {
		return ErrBadChipArea
	}
	for _, pin := range p.Pins {
		if pin.ModuleID < 0 || pin.ModuleID >= len(p.Modules) {
			return ErrUnknownModule
		}
	}
	return nil
}

