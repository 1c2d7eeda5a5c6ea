// Package placer implements analytical global placement: a log-sum-exp
// wirelength model blended with an NTUPlace3-style bin-density penalty,
// optimized by conjugate gradient with dynamically growing density weight
// (mirrors PA3's GlobalPlacer/ObjectiveFunction/Optimizer).
//
// File manifest:
//   - types.go       — Module/Pin/Net/Placement, sentinel errors
//   - density.go     — bin grid (internal/pdpar-parallel scatter) and the
//                       bell-shaped overlap density function
//   - wirelength.go  — log-sum-exp forward/backward wirelength term
//   - objective.go   — combined objective, lambda initialization/growth
//   - optimizer.go   — conjugate-gradient Step/Initialize
//   - placer.go      — outer control loop (overflow/gamma/lambda schedule)
//   - io.go          — bookshelf-style placement file parsing and output
package placer
