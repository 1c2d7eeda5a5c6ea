// Package floorplan implements a fixed-outline floorplanner: a B*-tree
// packs rectangular blocks via a horizontal contour, and simulated
// annealing searches the tree's perturbation space (rotate/move/swap) for
// a layout that fits the outline and minimises area + wirelength.
//
// The package is organized as:
//
//	types.go    — sentinel errors, Terminal/Net, the Dir enum
//	tree.go     — the block arena: an index-based B*-tree + contour list
//	              (design note: no raw pointers, parent/left/right/prev/next
//	              are indices into a flat node slice; dummy_root and tail
//	              occupy the two reserved slots past the real blocks)
//	contour.go  — calPosition: DFS-preorder packing against the contour
//	perturb.go  — rotate/move/swap and their exact inverses
//	cost.go     — real/outline cost, adaptive alpha, warm-up normalisation
//	anneal.go   — temperature schedule and the outer SA driver
//	io.go       — block-file/net-file parsing, result-file writing
//
// Unlike fm, floorplan's outer loop is explicitly randomised: every run is
// seeded from pdconfig.FloorplanCase.Seed through a single *rand.Rand never
// shared or read concurrently, so two runs with the same seed and inputs
// produce bit-identical output.
package floorplan
