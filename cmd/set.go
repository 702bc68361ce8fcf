package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seqslice/seqslice/config"
	"github.com/seqslice/seqslice/internal/graphset"
)

// setCmd represents the set command and its collection subcommands
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Manage a collection of graphs on disk",
	Long: `Manage a named collection of GFA graphs

Member graphs stay in their own files; a sqlite index tracks names,
paths, and id spaces so the collection can be listed without reparsing
every member. Merging id spaces reads every member file`,
}

var setAddCmd = &cobra.Command{
	Use:   "add <name> <graph.gfa>",
	Short: "Add a graph to the collection",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := openSet()
		defer s.Close()

		entry, err := s.Add(args[0], args[1])
		if err != nil {
			stderr.Fatalf("failed to add graph: %v", err)
		}
		fmt.Printf("added %s: %d nodes, %d edges, ids %d..%d\n",
			entry.Name, entry.Nodes, entry.Edges, entry.MinID, entry.MaxID)
	},
}

var setListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the graphs in the collection",
	Run: func(cmd *cobra.Command, args []string) {
		s := openSet()
		defer s.Close()

		entries, err := s.List()
		if err != nil {
			stderr.Fatalf("failed to list collection: %v", err)
		}
		for _, e := range entries {
			fmt.Printf("%s\t%s\t%d nodes\t%d edges\tids %d..%d\n",
				e.Name, e.Path, e.Nodes, e.Edges, e.MinID, e.MaxID)
		}
	},
}

var setDropCmd = &cobra.Command{
	Use:   "drop <name>",
	Short: "Remove a graph from the collection index",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openSet()
		defer s.Close()

		if err := s.Drop(args[0]); err != nil {
			stderr.Fatalf("failed to drop graph: %v", err)
		}
	},
}

var setMergeIDsCmd = &cobra.Command{
	Use:   "merge-ids",
	Short: "Rewrite member graphs so their id spaces are disjoint",
	Run: func(cmd *cobra.Command, args []string) {
		s := openSet()
		defer s.Close()

		maxID, err := s.MergeIDSpace()
		if err != nil {
			stderr.Fatalf("failed to merge id spaces: %v", err)
		}
		fmt.Printf("id spaces merged, max id %d\n", maxID)
	},
}

func init() {
	RootCmd.AddCommand(setCmd)
	setCmd.AddCommand(setAddCmd)
	setCmd.AddCommand(setListCmd)
	setCmd.AddCommand(setDropCmd)
	setCmd.AddCommand(setMergeIDsCmd)

	setCmd.PersistentFlags().String("index", "seqslice.db", "Path to the collection's sqlite index")
	must(viper.BindPFlag("set.index", setCmd.PersistentFlags().Lookup("index")))
}

func openSet() *graphset.Set {
	c := config.New()
	s, err := graphset.Open(c.Set.Index)
	if err != nil {
		stderr.Fatalf("failed to open collection index: %v", err)
	}
	return s
}
