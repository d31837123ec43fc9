package graphsink

import (
	"bufio"
	"fmt"
	"io"

	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/kmer"
)

// Sink accepts the final, cleaned graph for export.
type Sink interface {
	WriteGraph(store *graphstore.Store) error
	Close() error
}

// NopSink discards the graph. Default when no graph output path is configured.
type NopSink struct{}

func (NopSink) WriteGraph(*graphstore.Store) error { return nil }
func (NopSink) Close() error                       { return nil }

// DOTWriter renders the store as a Graphviz DOT graph: one node per
// present vertex, one directed edge per set adjacency bit.
type DOTWriter struct {
	w *bufio.Writer
}

// NewDOTWriter wraps w as a DOTWriter and writes the graph preamble.
func NewDOTWriter(w io.Writer) (*DOTWriter, error) {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "digraph assembly {"); err != nil {
		return nil, err
	}

	return &DOTWriter{w: bw}, nil
}

// WriteGraph emits every present vertex and its sense/antisense edges.
func (d *DOTWriter) WriteGraph(store *graphstore.Store) error {
	for canon := range store.All() {
		label := canon.Decode()
		if _, err := fmt.Fprintf(d.w, "  %q;\n", label); err != nil {
			return err
		}

		for _, dir := range [2]kmer.Direction{kmer.Sense, kmer.Antisense} {
			neighbors, err := store.Neighbors(canon, dir)
			if err != nil {
				continue
			}
			for _, n := range neighbors {
				if _, err := fmt.Fprintf(d.w, "  %q -> %q;\n", label, n.Canonical.Decode()); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Close emits the closing brace and flushes buffered output.
func (d *DOTWriter) Close() error {
	if _, err := fmt.Fprintln(d.w, "}"); err != nil {
		return err
	}

	return d.w.Flush()
}
