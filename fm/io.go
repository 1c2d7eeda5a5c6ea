package fm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// ParseInput reads the Bookshelf-ish net-list format of spec §6: a leading
// balance factor token, followed by zero or more
//
//	NET <name> <cell>+ ;
//
// records, whitespace-delimited throughout (mirrors
// Partitioner::parseInput). Single-pin nets are dropped, per AddNet.
func ParseInput(r io.Reader) (*Graph, float64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	if !sc.Scan() {
		return nil, 0, malformed("missing balance factor")
	}
	balance, err := strconv.ParseFloat(sc.Text(), 64)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: balance factor %q: %v", ErrMalformedInput, sc.Text(), err)
	}

	g := NewGraph()
	for sc.Scan() {
		if sc.Text() != "NET" {
			continue
		}
		if !sc.Scan() {
			return nil, 0, malformed("NET record missing name")
		}
		name := sc.Text()
		if name == "" {
			return nil, 0, ErrEmptyNetName
		}

		var cells []string
		for sc.Scan() {
			if sc.Text() == ";" {
				break
			}
			cells = append(cells, sc.Text())
		}
		g.AddNet(name, cells)
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("fm: reading input: %w", err)
	}
	if len(g.Cells) == 0 {
		return nil, 0, ErrNoCells
	}
	return g, balance, nil
}

// WriteResult writes the result file format of spec §6:
//
//	Cutsize = <k>
//	G1 <sizeA>
//	<names of side-A cells, space separated> ;
//	G2 <sizeB>
//	<names of side-B cells, space separated> ;
//
// (mirrors Partitioner::writeResult exactly, including the trailing space
// before each ";").
func WriteResult(w io.Writer, g *Graph, res Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Cutsize = %d\n", res.CutSize)

	for _, side := range [2]Side{SideA, SideB} {
		fmt.Fprintf(bw, "G%d %d\n", side+1, res.PartSize[side])
		for _, cell := range g.Cells {
			if cell.Side == side {
				fmt.Fprintf(bw, "%s ", cell.Name)
			}
		}
		fmt.Fprint(bw, ";\n")
	}
	return bw.Flush()
}
