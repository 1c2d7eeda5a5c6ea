// Command fm runs the two-way FM hypergraph partitioner over a Bookshelf-ish
// net-list file and writes the resulting bipartition (spec.md §6).
package main

import (
	"log"
	"os"

	"github.com/katalvlaran/vlsipd/fm"
	"github.com/spf13/cobra"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:           "fm <input> <output>",
		Short:         "Two-way FM hypergraph partitioner",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], dump)
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "log the parsed cell/net listing before partitioning")
	return cmd
}

func run(inputPath, outputPath string, dump bool) error {
	in, err := os.Open(inputPath)
	if err != nil {
		log.Printf("fm: opening input %s: %v", inputPath, err)
		return err
	}
	defer in.Close()

	g, balance, err := fm.ParseInput(in)
	if err != nil {
		log.Printf("fm: parsing %s: %v", inputPath, err)
		return err
	}

	if dump {
		log.Print(g.DumpCells())
		log.Print(g.DumpNets())
	}

	p, err := fm.NewPartitioner(g, fm.WithBalanceFactor(balance))
	if err != nil {
		log.Printf("fm: building partitioner: %v", err)
		return err
	}
	p.Run()
	res := p.Result()
	log.Printf("fm: %s", res)

	out, err := os.Create(outputPath)
	if err != nil {
		log.Printf("fm: creating output %s: %v", outputPath, err)
		return err
	}
	defer out.Close()

	if err := fm.WriteResult(out, g, res); err != nil {
		log.Printf("fm: writing %s: %v", outputPath, err)
		return err
	}
	return nil
}
