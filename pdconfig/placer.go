package pdconfig

import "runtime"

// PlacerCase is the conjugate-gradient/density hyperparameter set for one
// benchmark case, ported verbatim from PA3's config.cpp.
type PlacerCase struct {
	OverflowAcceptRatio  float64 // kOverflowAcceptRatio: overflow below which a step is accepted
	CostImprovementRatio float64 // kCostImprovementRatio: required relative drop in cost before lambda grows
	AdjustGammaOverflow  float64 // kAdjustGammaOverflow: overflow threshold for the one-shot gamma cut
	MulLambda            float64 // kMulLambda: lambda growth factor
	MulGamma             float64 // kMulGamma: one-shot gamma shrink factor
	EarlyStopSteps       int     // kEarlyStopSteps: patience once overflow is acceptable but not improving
	MaxSteps             int     // kMaxSteps: hard iteration cap
	StepSize             float64 // kStepSize: conjugate-gradient step scale
	NumBinSideRatio      float64 // kNumBinSideRatio: bins-per-side = ratio * sqrt(numModules)
	ObjectDensity        float64 // kObjectDensity: target bin fill fraction
	Threads              int     // kThreads: worker count for the density/wirelength fork-join passes
}

var placerTable = map[int]PlacerCase{
	1: {0.05, 0.0012, 0.25, 1.3, 0.3, 10, 600, 0.15, 0.5, 0.9, 0},
	5: {0.05, 0.0012, 0.25, 1.3, 0.3, 10, 600, 0.07, 0.21, 0.8, 0},
}

var defaultPlacerCase = PlacerCase{0.05, 0.0012, 0.25, 1.3, 0.3, 10, 600, 0.1, 0.25, 0.9, 0}

// LookupPlacerCase returns the hyperparameter set for caseID (1 or 5 are
// the benchmark-tuned rows; anything else falls back to the default row),
// with Threads filled from runtime.NumCPU()/2 (at least 1), mirroring
// config.cpp's "hardware_concurrency() / 2".
func LookupPlacerCase(caseID int) PlacerCase {
	c, ok := placerTable[caseID]
	if !ok {
		c = defaultPlacerCase
	}
	c.Threads = runtime.NumCPU() / 2
	if c.Threads < 1 {
		c.Threads = 1
	}
	return c
}
