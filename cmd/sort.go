package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqslice/seqslice/internal/toposort"
)

// sortCmd represents the sort command
var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Print a stable pseudo-topological node order for a graph",
	Long: `Order and orient every node of a graph

On an acyclic graph this is a topological sort. Cyclic and reversing
graphs are still ordered completely: edges into already-ordered cycle
entry points are broken as they are met, so every node appears exactly
once and the order is stable across runs`,
	Run: runSort,
}

func init() {
	RootCmd.AddCommand(sortCmd)

	sortCmd.Flags().StringP("in", "i", "", "Input graph <GFA> (\"-\" for stdin)")
	must(sortCmd.MarkFlagRequired("in"))
}

func runSort(cmd *cobra.Command, args []string) {
	in, _ := cmd.Flags().GetString("in")

	g, err := readGraphArg(in)
	if err != nil {
		stderr.Fatalf("failed to read graph: %v", err)
	}

	for _, h := range toposort.Order(g) {
		strand := "+"
		if h.IsReverse() {
			strand = "-"
		}
		fmt.Printf("%d\t%s\n", h.ID(), strand)
	}
}
