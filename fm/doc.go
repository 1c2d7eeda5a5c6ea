// Package fm implements a two-way Fiduccia–Mattheyses hypergraph
// partitioner: a bucket-list gain data structure plus a pass-level schedule
// with the CLIP (Cumulative Lifetime Improvement per Pass) gain reset.
//
// The package is organized as:
//
//	types.go    — sentinel errors and the Side type
//	graph.go    — Cell, Net and the Graph hypergraph they live in
//	bucket.go   — the index-based bucket-list gain structure (design note: no
//	              raw pointers, cell IDs thread an intrusive doubly-linked
//	              list through parallel prev/next arrays)
//	partition.go — the Options/BalanceFactor knobs, pass initialisation,
//	              candidate selection, move/update, and the outer Run driver
//	              with rollback
//	io.go       — the Bookshelf-ish net-list/result file format (spec §6)
//
// fm is single-threaded and deterministic: there is no randomness anywhere
// in the algorithm (ties are broken by the "previous move's from-side"
// rule, never by chance).
package fm
