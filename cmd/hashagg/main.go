// Command hashagg runs and benchmarks parallel aggregations over uint64 key sets.
//
//	hashagg gen --n 100000000 --cardinality 1000000 --run-length 4 --format lz4 --output keys.lz4
//	hashagg run --n 100000000 --threads 8 --method 0 --input keys.lz4 --format lz4
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "hashagg",
		Short:        "Parallel key-based aggregation engine",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newGenCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
