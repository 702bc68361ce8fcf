// Package gfa reads and writes bidirected sequence graphs in the GFA
// v1 format: S lines with numeric ids and sequences, L lines whose
// orientations name the node sides an edge connects. Only the blunt
// subset is supported (overlaps must be 0M or *).
package gfa

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/seqslice/seqslice/internal/handlegraph"
)

// Read parses a GFA v1 graph. Unknown record types are skipped; S and
// L lines with too few fields, non-numeric ids, bad orientations, or
// non-blunt overlaps are errors.
func Read(r io.Reader) (*handlegraph.HashGraph, error) {
	g := handlegraph.NewHashGraph()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		switch fields[0] {
		case "S":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: segment needs an id and a sequence", lineNum)
			}
			id, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: segment id %q is not numeric", lineNum, fields[1])
			}
			seq := fields[2]
			if seq == "*" {
				seq = ""
			}
			g.AddNode(id, seq)
		case "L":
			if len(fields) < 5 {
				return nil, fmt.Errorf("line %d: link needs from, to, and orientations", lineNum)
			}
			from, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: link from id %q is not numeric", lineNum, fields[1])
			}
			to, err := strconv.ParseInt(fields[3], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: link to id %q is not numeric", lineNum, fields[3])
			}
			fromRev, err := parseOrient(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			toRev, err := parseOrient(fields[4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			if len(fields) > 5 && fields[5] != "0M" && fields[5] != "*" {
				return nil, fmt.Errorf("line %d: only blunt overlaps are supported, got %q", lineNum, fields[5])
			}
			// a reverse from-orientation leaves the node's left side;
			// a reverse to-orientation enters the node's right side
			g.AddEdge(from, to, fromRev, toRev)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading graph: %w", err)
	}
	return g, nil
}

func parseOrient(s string) (bool, error) {
	switch s {
	case "+":
		return false, nil
	case "-":
		return true, nil
	}
	return false, fmt.Errorf("orientation %q is not + or -", s)
}

// Write emits the graph as GFA v1: a header, S lines in ascending id
// order, then each edge exactly once as an L line.
func Write(w io.Writer, g *handlegraph.HashGraph) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "H\tVN:Z:1.0"); err != nil {
		return err
	}
	var err error
	g.ForEachHandle(func(h handlegraph.Handle) bool {
		seq := g.Sequence(h)
		if seq == "" {
			seq = "*"
		}
		_, err = fmt.Fprintf(bw, "S\t%d\t%s\n", h.ID(), seq)
		return err == nil
	})
	if err != nil {
		return err
	}
	g.ForEachEdge(func(e handlegraph.Edge) bool {
		_, err = fmt.Fprintf(bw, "L\t%d\t%s\t%d\t%s\t0M\n",
			e.From.ID(), orient(e.From.IsReverse()),
			e.To.ID(), orient(e.To.IsReverse()))
		return err == nil
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

func orient(rev bool) string {
	if rev {
		return "-"
	}
	return "+"
}
