package floorplan

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// ParsedInput is the fully parsed block/terminal/net description a Planner
// is built from (mirrors the Floorplanner constructor's two-file input).
type ParsedInput struct {
	OutlineW, OutlineH int
	Blocks             []blockSpec
	Terminals          map[string]Terminal
	Nets               []*Net
}

// ParseBlockFile reads the ".blk"-style block file: an outline line, block
// count, terminal count, one "<name> <w> <h>" line per block, then one
// "<name> terminal <x> <y>" line per fixed terminal.
func ParseBlockFile(r io.Reader) (*ParsedInput, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("%w: unexpected end of block file", ErrMalformedInput)
		}
		return sc.Text(), nil
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

	if _, err := next(); err != nil { // "Outline:"
		return nil, err
	}
	outW, err := nextInt()
	if err != nil {
		return nil, err
	}
	outH, err := nextInt()
	if err != nil {
		return nil, err
	}
	if outW <= 0 || outH <= 0 {
		return nil, ErrBadOutline
	}

	if _, err := next(); err != nil { // "NumBlocks:"
		return nil, err
	}
	numBlocks, err := nextInt()
	if err != nil {
		return nil, err
	}
	if _, err := next(); err != nil { // "NumTerminals:"
		return nil, err
	}
	numTerms, err := nextInt()
	if err != nil {
		return nil, err
	}

	in := &ParsedInput{OutlineW: outW, OutlineH: outH, Terminals: make(map[string]Terminal, numTerms)}
	for i := 0; i < numBlocks; i++ {
		name, err := next()
		if err != nil {
			return nil, err
		}
		w, err := nextInt()
		if err != nil {
			return nil, err
		}
		h, err := nextInt()
		if err != nil {
			return nil, err
		}
		in.Blocks = append(in.Blocks, blockSpec{Name: name, W: w, H: h})
	}
	if len(in.Blocks) == 0 {
		return nil, ErrNoBlocks
	}

	for i := 0; i < numTerms; i++ {
		name, err := next()
		if err != nil {
			return nil, err
		}
		if _, err := next(); err != nil { // literal "terminal"
			return nil, err
		}
		x, err := nextInt()
		if err != nil {
			return nil, err
		}
		y, err := nextInt()
		if err != nil {
			return nil, err
		}
		in.Terminals[name] = Terminal{Name: name, Xc: float64(x), Yc: float64(y)}
	}
	return in, sc.Err()
}

// ParseNetFile reads the ".nets"-style net file into in.Nets: a net count,
// then for each net a "NetDegree: <d>" line followed by d member names
// (block or terminal), validated against blocks/terminals already parsed
// from the block file.
func ParseNetFile(r io.Reader, in *ParsedInput) error {
	known := make(map[string]bool, len(in.Blocks)+len(in.Terminals))
	for _, b := range in.Blocks {
		known[b.Name] = true
	}
	for name := range in.Terminals {
		known[name] = true
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("%w: unexpected end of net file", ErrMalformedInput)
		}
		return sc.Text(), nil
	}

	if _, err := next(); err != nil { // "NumNets:"
		return err
	}
	numNetsTok, err := next()
	if err != nil {
		return err
	}
	numNets, err := strconv.Atoi(numNetsTok)
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrMalformedInput, numNetsTok)
	}

	for i := 0; i < numNets; i++ {
		if _, err := next(); err != nil { // "NetDegree:"
			return err
		}
		degTok, err := next()
		if err != nil {
			return err
		}
		degree, err := strconv.Atoi(degTok)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrMalformedInput, degTok)
		}

		net := &Net{Name: fmt.Sprintf("n%d", i)}
		for j := 0; j < degree; j++ {
			name, err := next()
			if err != nil {
				return err
			}
			if !known[name] {
				return fmt.Errorf("%w: %q", ErrUnknownTerminal, name)
			}
			net.Members = append(net.Members, name)
		}
		in.Nets = append(in.Nets, net)
	}
	return sc.Err()
}

// FinalCost is the unnormalised area/wirelength blend writeOutput reports,
// distinct from the adaptively-normalised cost the annealer optimises.
type FinalCost struct {
	Cost       float64
	Wirelength float64
	Area       int
	BoxX, BoxY int
}

// Finalize computes the reportable cost/wirelength/area/box for the best
// snapshot found by Run (mirrors Floorplanner::writeOutput's cost block).
func (p *Planner) Finalize() FinalCost {
	wl := p.wirelength(true)
	area := p.bestBoxX * p.bestBoxY
	cost := p.alpha*float64(area) + (1-p.alpha)*wl
	return FinalCost{Cost: cost, Wirelength: wl, Area: area, BoxX: p.bestBoxX, BoxY: p.bestBoxY}
}

// WriteResult writes the cost/wirelength/area/box/runtime header followed
// by one "name xl yl xr yr" line per block in its best snapshot (mirrors
// Floorplanner::writeOutput's body).
func (p *Planner) WriteResult(w io.Writer, runTime float64) error {
	fc := p.Finalize()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%.6f\n", fc.Cost)
	fmt.Fprintf(bw, "%.1f\n", fc.Wirelength)
	fmt.Fprintf(bw, "%d\n", fc.Area)
	fmt.Fprintf(bw, "%d %d\n", fc.BoxX, fc.BoxY)
	fmt.Fprintf(bw, "%.6f\n", runTime)
	for i := 0; i < p.tree.n; i++ {
		n := &p.tree.nodes[i]
		xr := n.bestXl + p.tree.width(i, true)
		yr := n.bestYl + p.tree.height(i, true)
		fmt.Fprintf(bw, "%s %d %d %d %d\n", n.name, n.bestXl, n.bestYl, xr, yr)
	}
	return bw.Flush()
}
