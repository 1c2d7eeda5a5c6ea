package floorplan

import (
	"runtime"
	"time"
)

// RunStats is a supplemented reporting feature: the original tool's
// tm_usage.cpp wall/CPU-time accounting, ported so a CLI can report the
// runtime field spec.md's own output format already requires.
type RunStats struct {
	WallTime     time.Duration
	AllocDelta   uint64
	NumSAIter    int
	NumFeasible  int
	Found        bool
}

// RunWithStats runs the annealer and returns timing/allocation stats
// alongside the usual Found/BestBox results.
func (p *Planner) RunWithStats() RunStats {
	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	p.Run()

	elapsed := time.Since(start)
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	var delta uint64
	if after.TotalAlloc > before.TotalAlloc {
		delta = after.TotalAlloc - before.TotalAlloc
	}

	return RunStats{
		WallTime:    elapsed,
		AllocDelta:  delta,
		NumSAIter:   p.numSAIter,
		NumFeasible: p.numFeasible,
		Found:       p.found,
	}
}
