package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seqslice/seqslice/config"
	"github.com/seqslice/seqslice/internal/gfa"
	"github.com/seqslice/seqslice/internal/handlegraph"
	"github.com/seqslice/seqslice/internal/subgraph"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the subgraph connecting two positions",
	Long: `Extract the subgraph of a sequence graph that connects two oriented
positions within a maximum walk length

Every path between the positions that fits the length bound is kept and
the positions become tips of the result. Positions are written as
"id:strand:offset", eg "42:+:17" for offset 17 on the forward strand of
node 42. The id translation from sliced ids back to input ids is
reported on stderr for any node that was duplicated`,
	Run: runExtract,
}

func init() {
	RootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("in", "i", "", "Input graph <GFA> (\"-\" for stdin)")
	extractCmd.Flags().StringP("out", "o", "", "Output file for the sliced graph (default stdout)")
	extractCmd.Flags().String("from", "", "Start position as id:strand:offset")
	extractCmd.Flags().String("to", "", "End position as id:strand:offset")
	extractCmd.Flags().Int64P("max-len", "m", 10000, "Maximum walk length between the positions")
	extractCmd.Flags().Bool("terminals", false, "Keep the bases at the positions themselves")
	extractCmd.Flags().Bool("cycles", false, "Preserve cycles through the terminal nodes")
	extractCmd.Flags().Bool("strict", false, "Prune paths over the length bound")
	extractCmd.Flags().Bool("only-paths", false, "Prune nodes off every connecting path")
	extractCmd.Flags().Bool("no-tips", false, "Prune tips other than the two positions")

	must(extractCmd.MarkFlagRequired("in"))
	must(extractCmd.MarkFlagRequired("from"))
	must(extractCmd.MarkFlagRequired("to"))

	must(viper.BindPFlag("extract.max-len", extractCmd.Flags().Lookup("max-len")))
	must(viper.BindPFlag("extract.include-terminals", extractCmd.Flags().Lookup("terminals")))
	must(viper.BindPFlag("extract.detect-cycles", extractCmd.Flags().Lookup("cycles")))
}

func runExtract(cmd *cobra.Command, args []string) {
	c := config.New()

	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	fromFlag, _ := cmd.Flags().GetString("from")
	toFlag, _ := cmd.Flags().GetString("to")
	strict, _ := cmd.Flags().GetBool("strict")
	onlyPaths, _ := cmd.Flags().GetBool("only-paths")
	noTips, _ := cmd.Flags().GetBool("no-tips")

	from, err := parsePos(fromFlag)
	if err != nil {
		stderr.Fatalf("failed to parse --from: %v", err)
	}
	to, err := parsePos(toFlag)
	if err != nil {
		stderr.Fatalf("failed to parse --to: %v", err)
	}

	source, err := readGraphArg(in)
	if err != nil {
		stderr.Fatalf("failed to read graph: %v", err)
	}
	if !source.HasNode(from.ID) {
		stderr.Fatalf("node %d is not in the graph", from.ID)
	}
	if !source.HasNode(to.ID) {
		stderr.Fatalf("node %d is not in the graph", to.ID)
	}

	slice := handlegraph.NewHashGraph()
	trans := subgraph.ExtractConnecting(source, slice, c.Extract.MaxLen, from, to,
		subgraph.Options{
			IncludeTerminalPositions: c.Extract.IncludeTerminals,
			DetectTerminalCycles:     c.Extract.DetectCycles,
			NoAdditionalTips:         noTips,
			OnlyPaths:                onlyPaths,
			StrictMaxLen:             strict,
		})

	if len(trans) == 0 {
		stderr.Fatalf("no path connects %s to %s within %d bases", fromFlag, toFlag, c.Extract.MaxLen)
	}

	for sliceID, sourceID := range trans {
		if sliceID != sourceID {
			stderr.Printf("node %d translates to %d in the input graph", sliceID, sourceID)
		}
	}

	w := io.Writer(os.Stdout)
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			stderr.Fatalf("failed to create output file: %v", err)
		}
		defer f.Close()
		w = f
	}
	if err := gfa.Write(w, slice); err != nil {
		stderr.Fatalf("failed to write sliced graph: %v", err)
	}
}

// parsePos parses an "id:strand:offset" position argument.
func parsePos(s string) (subgraph.Pos, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return subgraph.Pos{}, fmt.Errorf("%q is not id:strand:offset", s)
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id < 1 {
		return subgraph.Pos{}, fmt.Errorf("node id %q must be a positive integer", parts[0])
	}
	var rev bool
	switch parts[1] {
	case "+":
	case "-":
		rev = true
	default:
		return subgraph.Pos{}, fmt.Errorf("strand %q must be + or -", parts[1])
	}
	off, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || off < 0 {
		return subgraph.Pos{}, fmt.Errorf("offset %q must be a non-negative integer", parts[2])
	}
	return subgraph.Pos{ID: id, Rev: rev, Off: off}, nil
}

// readGraphArg reads a GFA graph from a file path or stdin.
func readGraphArg(in string) (*handlegraph.HashGraph, error) {
	if in == "-" {
		return gfa.Read(os.Stdin)
	}
	f, err := os.Open(in)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gfa.Read(f)
}

func must(err error) {
	if err != nil {
		stderr.Fatal(err)
	}
}
