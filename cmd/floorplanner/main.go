// Command floorplanner runs fixed-outline simulated-annealing B*-tree
// floorplanning over a block/net file pair and writes the packed result
// (spec.md §6).
package main

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/vlsipd/floorplan"
	"github.com/katalvlaran/vlsipd/pdconfig"
	"github.com/spf13/cobra"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var showConfig bool

	cmd := &cobra.Command{
		Use:           "floorplanner <alpha> <block_file> <net_file> <output>",
		Short:         "Fixed-outline B*-tree floorplanner",
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			alpha, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				log.Printf("floorplanner: alpha %q: %v", args[0], err)
				return err
			}
			return run(alpha, args[1], args[2], args[3], configPath, showConfig)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML/TOML/JSON override of the per-case hyperparameter table")
	cmd.Flags().BoolVar(&showConfig, "show-config", false, "log the resolved hyperparameter case as YAML before running")
	return cmd
}

func run(alpha float64, blockPath, netPath, outputPath, configPath string, showConfig bool) error {
	blockFile, err := os.Open(blockPath)
	if err != nil {
		log.Printf("floorplanner: opening %s: %v", blockPath, err)
		return err
	}
	defer blockFile.Close()

	parsed, err := floorplan.ParseBlockFile(blockFile)
	if err != nil {
		log.Printf("floorplanner: parsing %s: %v", blockPath, err)
		return err
	}

	netFile, err := os.Open(netPath)
	if err != nil {
		log.Printf("floorplanner: opening %s: %v", netPath, err)
		return err
	}
	defer netFile.Close()

	if err := floorplan.ParseNetFile(netFile, parsed); err != nil {
		log.Printf("floorplanner: parsing %s: %v", netPath, err)
		return err
	}

	caseName := filepath.Base(blockPath)
	cfg := pdconfig.LookupFloorplanCase(caseName, alpha)
	if configPath != "" {
		cfg, err = pdconfig.LoadFloorplanOverrides(configPath, cfg)
		if err != nil {
			log.Printf("floorplanner: %v", err)
			return err
		}
	}

	if showConfig {
		yaml, err := pdconfig.DumpYAML(cfg)
		if err != nil {
			log.Printf("floorplanner: %v", err)
			return err
		}
		log.Printf("floorplanner: resolved config:\n%s", yaml)
	}

	planner, err := floorplan.NewPlanner(parsed.Blocks, parsed.Nets, parsed.Terminals, parsed.OutlineW, parsed.OutlineH, alpha, cfg)
	if err != nil {
		log.Printf("floorplanner: building planner: %v", err)
		return err
	}

	stats := planner.RunWithStats()
	if !stats.Found {
		log.Printf("floorplanner: no feasible solution within the cooling schedule; emitting best snapshot")
	}
	log.Printf("floorplanner: %d SA iterations, wall time %s", stats.NumSAIter, stats.WallTime)

	out, err := os.Create(outputPath)
	if err != nil {
		log.Printf("floorplanner: creating %s: %v", outputPath, err)
		return err
	}
	defer out.Close()

	if err := planner.WriteResult(out, stats.WallTime.Seconds()); err != nil {
		log.Printf("floorplanner: writing %s: %v", outputPath, err)
		return err
	}
	return nil
}
