package bubblesink

import (
	"bufio"
	"fmt"
	"io"
)

// Record describes one popped bubble: the split (Source) and merge
// (Sink) vertices, the two branch sequences, which one was retained,
// and the vertex-count difference between the branches (0 when equal
// length).
type Record struct {
	Source, Sink      string
	RetainedSequence  string
	DiscardedSequence string
	LengthDifference  int
}

// Sink accepts popped-bubble records as the bubble popper emits them.
type Sink interface {
	WriteBubble(rec Record) error
	Close() error
}

// NopSink discards every record. It is the default when no bubble
// report path is configured.
type NopSink struct{}

func (NopSink) WriteBubble(Record) error { return nil }
func (NopSink) Close() error             { return nil }

// TSVWriter writes one tab-separated line per popped bubble.
type TSVWriter struct {
	w *bufio.Writer
}

// NewTSVWriter wraps w as a TSVWriter, emitting a header line immediately.
func NewTSVWriter(w io.Writer) (*TSVWriter, error) {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "source\tsink\tretained\tdiscarded\tlength_diff"); err != nil {
		return nil, err
	}

	return &TSVWriter{w: bw}, nil
}

// WriteBubble appends one TSV line for rec.
func (t *TSVWriter) WriteBubble(rec Record) error {
	_, err := fmt.Fprintf(t.w, "%s\t%s\t%s\t%s\t%d\n",
		rec.Source, rec.Sink, rec.RetainedSequence, rec.DiscardedSequence, rec.LengthDifference)

	return err
}

// Close flushes buffered output.
func (t *TSVWriter) Close() error {
	return t.w.Flush()
}
