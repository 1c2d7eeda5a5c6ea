package placer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// ParseBookshelfPlacement reads a simplified bookshelf-style placement
// description: a chip boundary line, module count, net count, one
// "<name> <w> <h> [fixed <x> <y>]" line per module, then one
// "NetDegree: <d>" line per net followed by d "<module> <xoff> <yoff>"
// pin lines (mirrors Placement::readBookshelfFormat, trimmed to the
// fields global placement needs).
func ParseBookshelfPlacement(r io.Reader) (*Placement, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("%w: unexpected end of placement file", ErrMalformedInput)
		}
		return sc.Text(), nil
	}
	nextFloat := func() (float64, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedInput, tok)
		}
		return v, nil
	}
	nextInt := func() (int, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformedInput, tok)
		}
		return v, nil
	}

	if _, err := next(); err != nil { // "Boundary:"
		return nil, err
	}
	left, err := nextFloat()
	if err != nil {
		return nil, err
	}
	bottom, err := nextFloat()
	if err != nil {
		return nil, err
	}
	right, err := nextFloat()
	if err != nil {
		return nil, err
	}
	top, err := nextFloat()
	if err != nil {
		return nil, err
	}

	if _, err := next(); err != nil { // "NumModules:"
		return nil, err
	}
	numModules, err := nextInt()
	if err != nil {
		return nil, err
	}
	if _, err := next(); err != nil { // "NumNets:"
		return nil, err
	}
	numNets, err := nextInt()
	if err != nil {
		return nil, err
	}

	p := &Placement{BoundaryLeft: left, BoundaryBottom: bottom, BoundaryRight: right, BoundaryTop: top}
	byName := make(map[string]int, numModules)

	for i := 0; i < numModules; i++ {
		name, err := next()
		if err != nil {
			return nil, err
		}
		w, err := nextFloat()
		if err != nil {
			return nil, err
		}
		h, err := nextFloat()
		if err != nil {
			return nil, err
		}

		m := Module{Name: name, W: w, H: h}
		tag, err := next()
		if err != nil {
			return nil, err
		}
		if tag == "fixed" {
			m.Fixed = true
			if m.X, err = nextFloat(); err != nil {
				return nil, err
			}
			if m.Y, err = nextFloat(); err != nil {
				return nil, err
			}
		} else if tag != "movable" {
			return nil, fmt.Errorf("%w: expected \"fixed\" or \"movable\", got %q", ErrMalformedInput, tag)
		}
		byName[name] = len(p.Modules)
		p.Modules = append(p.Modules, m)
	}
	if len(p.Modules) == 0 {
		return nil, ErrNoModules
	}

	for netID := 0; netID < numNets; netID++ {
		if _, err := next(); err != nil { // "NetDegree:"
			return nil, err
		}
		degree, err := nextInt()
		if err != nil {
			return nil, err
		}
		net := Net{Name: fmt.Sprintf("n%d", netID)}
		for j := 0; j < degree; j++ {
			modName, err := next()
			if err != nil {
				return nil, err
			}
			modID, ok := byName[modName]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownModule, modName)
			}
			xoff, err := nextFloat()
			if err != nil {
				return nil, err
			}
			yoff, err := nextFloat()
			if err != nil {
				return nil, err
			}
			pinID := len(p.Pins)
			p.Pins = append(p.Pins, Pin{ModuleID: modID, NetID: netID, XOffset: xoff, YOffset: yoff})
			p.Modules[modID].PinIDs = append(p.Modules[modID].PinIDs, pinID)
			net.PinIDs = append(net.PinIDs, pinID)
		}
		p.Nets = append(p.Nets, net)
	}

	return p, sc.Err()
}

// WriteBookshelfPlacement writes each module's final position, one
// "name x y" line per module (mirrors Placement::outputBookshelfFormat,
// trimmed to what global placement produces — no row/site legalization
// columns, since that stage is this spec's explicit non-goal).
func WriteBookshelfPlacement(w io.Writer, p *Placement, pos []Point) error {
	bw := bufio.NewWriter(w)
	for i := range p.Modules {
		fmt.Fprintf(bw, "%s %.6f %.6f\n", p.Modules[i].Name, pos[i].X, pos[i].Y)
	}
	return bw.Flush()
}
