package pdconfig

import "strings"

// FloorplanCase is the simulated-annealing hyperparameter set for one
// (benchmark case, alpha) pairing, ported verbatim from PA2's config.cpp.
type FloorplanCase struct {
	InitProb   float64 // kInitProb: target acceptance probability at SA start
	AlphaBase  float64 // kAlphaBase: floor of the adaptive-alpha blend
	AdaptiveNum int    // kAdaptiveNum: feasibility sliding-window size
	Seed       int64   // kSeed: RNG seed
	PerturbNum int     // kPerturbNum: perturbations per block, per outer sweep
	TempK      int     // kTempK: divisor for the fast-cooling phase length
	TempC      int     // kTempC: fast-cooling divisor base; the block count is subtracted from it, floored at 10
}

// defaultFloorplanCase is config.cpp's fallback row, used both for an
// unrecognized case name and an unrecognized alpha within a known case.
var defaultFloorplanCase = FloorplanCase{
	InitProb: 0.98, AlphaBase: 0.78, AdaptiveNum: 2736, Seed: 933,
	PerturbNum: 51, TempK: 17, TempC: 812,
}

// floorplanTable[case][alphaBucket] mirrors config.cpp's nested switch
// exactly. alphaBucket 0 is unused (kept to match the 1-indexed alpha_id of
// the original); case 0 is likewise unused.
var floorplanTable = map[int]map[int]FloorplanCase{
	1: { // ami33
		1: {0.98, 0.79, 2328, 575, 73, 23, 238},
		2: {0.99, 0.68, 2671, 311, 89, 18, 99},
		3: {0.99, 0.76, 2928, 688, 54, 6, 770},
	},
	2: { // ami49
		1: {0.93, 0.81, 2054, 467, 93, 18, 546},
		2: {0.87, 0.82, 1317, 310, 36, 15, 966},
		3: {0.94, 0.9, 1699, 790, 40, 6, 470},
	},
	3: { // apte
		1: {0.86, 0.78, 1922, 96, 5, 16, 106},
		2: {0.92, 0.64, 1851, 589, 4, 17, 338},
		3: {0.98, 0.87, 1349, 898, 100, 1, 520},
	},
	4: { // hp
		1: {0.8, 0.77, 1577, 755, 13, 14, 434},
		2: {0.92, 0.61, 830, 768, 17, 24, 776},
		3: {0.84, 0.81, 2009, 415, 11, 17, 83},
	},
	5: { // xerox
		1: {0.8, 0.85, 178, 753, 15, 24, 457},
		2: {0.9, 0.82, 2307, 938, 16, 9, 939},
		3: {0.87, 0.84, 1340, 252, 20, 7, 460},
	},
}

// caseIDFromName maps a benchmark file's base name to a case id the way
// config.cpp's setConfig does: a case-insensitive substring match against
// a fixed list, checked in table order, first match wins.
func caseIDFromName(name string) int {
	name = strings.ToLower(name)
	for _, c := range []struct {
		id   int
		stem string
	}{
		{1, "ami33"}, {2, "ami49"}, {3, "apte"}, {4, "hp"}, {5, "xerox"},
	} {
		if strings.Contains(name, c.stem) {
			return c.id
		}
	}
	return 0
}

// alphaBucket maps an alpha value to config.cpp's alpha_id: 0.25→1, 0.5→2,
// 0.75→3, anything else→0 (the "unrecognized" bucket).
func alphaBucket(alpha float64) int {
	switch alpha {
	case 0.25:
		return 1
	case 0.5:
		return 2
	case 0.75:
		return 3
	default:
		return 0
	}
}

// LookupFloorplanCase returns the hyperparameter set for caseName (matched
// by substring against ami33/ami49/apte/hp/xerox, case-insensitive) and
// alpha, falling back to defaultFloorplanCase when either is unrecognized.
func LookupFloorplanCase(caseName string, alpha float64) FloorplanCase {
	rows, ok := floorplanTable[caseIDFromName(caseName)]
	if !ok {
		return defaultFloorplanCase
	}
	row, ok := rows[alphaBucket(alpha)]
	if !ok {
		return defaultFloorplanCase
	}
	return row
}
