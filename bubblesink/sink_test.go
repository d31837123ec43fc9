package bubblesink_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/abyssgo/assembler/bubblesink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTSVWriterWritesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w, err := bubblesink.NewTSVWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, w.WriteBubble(bubblesink.Record{
		Source: "ACG", Sink: "GTT",
		RetainedSequence: "ACGT", DiscardedSequence: "ACCT",
		LengthDifference: 0,
	}))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "source\tsink\tretained\tdiscarded\tlength_diff", lines[0])
	assert.Equal(t, "ACG\tGTT\tACGT\tACCT\t0", lines[1])
}

func TestNopSinkDiscardsSilently(t *testing.T) {
	var s bubblesink.NopSink
	require.NoError(t, s.WriteBubble(bubblesink.Record{Source: "x"}))
	require.NoError(t, s.Close())
}
