package pdconfig

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrUnknownOverrideField indicates an override file named a field that
// does not exist on the target struct.
var ErrUnknownOverrideField = errors.New("pdconfig: unknown override field")

// LoadFloorplanOverrides reads a YAML/TOML/JSON file (format sniffed from
// its extension by viper) and applies any fields present onto base,
// returning the merged case. A file overriding unknown keys is rejected so
// a typo'd override doesn't silently do nothing.
func LoadFloorplanOverrides(path string, base FloorplanCase) (FloorplanCase, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return base, fmt.Errorf("pdconfig: reading %s: %w", path, err)
	}

	out := base
	setters := floorplanOverrideSetters(&out)
	for _, key := range v.AllKeys() {
		setter, ok := setters[key]
		if !ok {
			return base, fmt.Errorf("%w: %q", ErrUnknownOverrideField, key)
		}
		setter(v)
	}
	return out, nil
}

func floorplanOverrideSetters(c *FloorplanCase) map[string]func(*viper.Viper) {
	return map[string]func(*viper.Viper){
		"initprob":    func(v *viper.Viper) { c.InitProb = v.GetFloat64("initprob") },
		"alphabase":   func(v *viper.Viper) { c.AlphaBase = v.GetFloat64("alphabase") },
		"adaptivenum": func(v *viper.Viper) { c.AdaptiveNum = v.GetInt("adaptivenum") },
		"seed":        func(v *viper.Viper) { c.Seed = v.GetInt64("seed") },
		"perturbnum":  func(v *viper.Viper) { c.PerturbNum = v.GetInt("perturbnum") },
		"tempk":       func(v *viper.Viper) { c.TempK = v.GetInt("tempk") },
		"tempc":       func(v *viper.Viper) { c.TempC = v.GetInt("tempc") },
	}
}

// LoadPlacerOverrides is LoadFloorplanOverrides's counterpart for
// PlacerCase.
func LoadPlacerOverrides(path string, base PlacerCase) (PlacerCase, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return base, fmt.Errorf("pdconfig: reading %s: %w", path, err)
	}

	out := base
	setters := placerOverrideSetters(&out)
	for _, key := range v.AllKeys() {
		setter, ok := setters[key]
		if !ok {
			return base, fmt.Errorf("%w: %q", ErrUnknownOverrideField, key)
		}
		setter(v)
	}
	return out, nil
}

func placerOverrideSetters(c *PlacerCase) map[string]func(*viper.Viper) {
	return map[string]func(*viper.Viper){
		"overflowacceptratio":  func(v *viper.Viper) { c.OverflowAcceptRatio = v.GetFloat64("overflowacceptratio") },
		"costimprovementratio": func(v *viper.Viper) { c.CostImprovementRatio = v.GetFloat64("costimprovementratio") },
		"adjustgammaoverflow":  func(v *viper.Viper) { c.AdjustGammaOverflow = v.GetFloat64("adjustgammaoverflow") },
		"mullambda":            func(v *viper.Viper) { c.MulLambda = v.GetFloat64("mullambda") },
		"mulgamma":             func(v *viper.Viper) { c.MulGamma = v.GetFloat64("mulgamma") },
		"earlystopsteps":       func(v *viper.Viper) { c.EarlyStopSteps = v.GetInt("earlystopsteps") },
		"maxsteps":             func(v *viper.Viper) { c.MaxSteps = v.GetInt("maxsteps") },
		"stepsize":             func(v *viper.Viper) { c.StepSize = v.GetFloat64("stepsize") },
		"numbinsideratio":      func(v *viper.Viper) { c.NumBinSideRatio = v.GetFloat64("numbinsideratio") },
		"objectdensity":        func(v *viper.Viper) { c.ObjectDensity = v.GetFloat64("objectdensity") },
		"threads":              func(v *viper.Viper) { c.Threads = v.GetInt("threads") },
	}
}

// DumpYAML renders a resolved case as YAML, for a CLI's "--show-config"
// flag or for seeding a new override file from the active defaults.
func DumpYAML(v interface{}) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("pdconfig: marshaling config: %w", err)
	}
	return string(out), nil
}
