// Package vlsipd bundles three classical physical-design engines for VLSI
// layout under one module:
//
//	fm/          — Fiduccia–Mattheyses two-way hypergraph partitioner
//	floorplan/   — fixed-outline simulated-annealing B*-tree floorplanner
//	placer/      — analytical global placer (log-sum-exp wirelength + density)
//
// Each engine is an independent pipeline from an input graph to a result
// file; they share no runtime state. Cross-cutting pieces live in
// pdconfig/ (per-case hyperparameter tables) and internal/pdpar/ (the
// deterministic fork/join helper used by the placer).
//
//	go get github.com/katalvlaran/vlsipd
package vlsipd
