package iosupport

import (
	"bufio"
	"fmt"
	"io"
)

const fastaWrapWidth = 70

// ContigSink accepts finished contigs as they are assembled.
type ContigSink interface {
	WriteContig(id, sequence string, coverage uint64) error
	Close() error
}

// FASTAWriter writes contigs as wrapped FASTA, one header line
// ">id len coverage" (coverage = sum of constituent vertex
// multiplicities) followed by the sequence wrapped at fastaWrapWidth
// columns.
type FASTAWriter struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewFASTAWriter wraps w as a FASTAWriter. If w also implements
// io.Closer, Close flushes then closes it.
func NewFASTAWriter(w io.Writer) *FASTAWriter {
	fw := &FASTAWriter{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		fw.closer = c
	}

	return fw
}

// WriteContig appends one FASTA record for the given contig.
func (f *FASTAWriter) WriteContig(id, sequence string, coverage uint64) error {
	if _, err := fmt.Fprintf(f.w, ">%s %d %d\n", id, len(sequence), coverage); err != nil {
		return iosupportErrorf("WriteContig", err)
	}

	for i := 0; i < len(sequence); i += fastaWrapWidth {
		end := i + fastaWrapWidth
		if end > len(sequence) {
			end = len(sequence)
		}
		if _, err := fmt.Fprintln(f.w, sequence[i:end]); err != nil {
			return iosupportErrorf("WriteContig", err)
		}
	}

	return nil
}

// Close flushes buffered output and closes the underlying writer, if closeable.
func (f *FASTAWriter) Close() error {
	if err := f.w.Flush(); err != nil {
		return iosupportErrorf("Close", err)
	}
	if f.closer != nil {
		if err := f.closer.Close(); err != nil {
			return iosupportErrorf("Close", err)
		}
	}

	return nil
}
