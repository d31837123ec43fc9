package telemetry

// PhaseSummary reports one phase's effect on the graph: how many
// vertices the run loaded, how many the phase removed, how many
// survive, and the resulting signal-to-noise ratio
// (10*log10(surviving/removed)).
type PhaseSummary struct {
	Name      string
	Loaded    int
	Removed   int
	Surviving int
	SNR       float64
}

// Sink accepts one PhaseSummary per completed phase.
type Sink interface {
	RecordPhase(summary PhaseSummary) error
	Close() error
}

// NopSink discards every summary. It is the default telemetry sink.
type NopSink struct{}

func (NopSink) RecordPhase(PhaseSummary) error { return nil }
func (NopSink) Close() error                   { return nil }
