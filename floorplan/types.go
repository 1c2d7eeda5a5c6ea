package floorplan

import "errors"

// Sentinel errors for the floorplan package, wrapped with
// fmt.Errorf("%w: ...", ...) where extra context helps.
var (
	// ErrNoBlocks indicates a block file with zero blocks.
	ErrNoBlocks = errors.New("floorplan: no blocks in input")

	// ErrUnknownTerminal indicates a net referenced a name no block or
	// terminal record defined.
	ErrUnknownTerminal = errors.New("floorplan: unknown terminal or block name")

	// ErrBadAlpha indicates an alpha outside [0,1].
	ErrBadAlpha = errors.New("floorplan: alpha must be in [0,1]")

	// ErrBadOutline indicates a non-positive outline dimension.
	ErrBadOutline = errors.New("floorplan: outline width/height must be positive")

	ErrMalformedInput = errors.New("floorplan: malformed input")
)

// noNode marks the absence of a node index (the B*-tree/contour
// equivalent of fm's sentinelNone).
const noNode = -1

// Dir records which side of its parent a block sits on, needed to replay
// moveBlock's inverse exactly (mirrors module.h's Dir enum).
type Dir int

const (
	DirNone Dir = iota
	DirLeft
	DirRight
)

// Terminal is a fixed-position pin pad a net can connect to, in addition
// to blocks (every Block is also usable as a Terminal via its centre).
type Terminal struct {
	Name string
	Xc, Yc float64
}

// Net is a hyperwire: an ordered list of terminal/block names. Its cost is
// the half-perimeter of the bounding box over their centres (mirrors
// module.h's Net::calcHPWL).
type Net struct {
	Name    string
	Members []string
}
