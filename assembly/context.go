package assembly

import (
	"github.com/abyssgo/assembler/bubblesink"
	"github.com/abyssgo/assembler/config"
	"github.com/abyssgo/assembler/coverage"
	"github.com/abyssgo/assembler/graphsink"
	"github.com/abyssgo/assembler/telemetry"
	"go.uber.org/zap"
)

// Context threads every process-wide, read-only dependency a single
// assembly run needs through its phases: configuration, the derived
// coverage thresholds, a logger, and the optional bubble/graph/
// telemetry sinks, so no phase ever consults process-wide state.
type Context struct {
	Config     config.Config
	Thresholds coverage.Thresholds
	Logger     *zap.SugaredLogger
	BubbleSink bubblesink.Sink
	GraphSink  graphsink.Sink
	Telemetry  telemetry.Sink
}

// ContextOption customizes a Context at construction time.
type ContextOption func(*Context)

// NewContext builds a Context for cfg and thresholds, applying
// defaults (a no-op logger, NopSink for every optional sink) before
// any supplied options, mirroring config.Resolve's functional-options
// idiom.
func NewContext(cfg config.Config, thresholds coverage.Thresholds, opts ...ContextOption) Context {
	c := Context{
		Config:     cfg,
		Thresholds: thresholds,
		Logger:     zap.NewNop().Sugar(),
		BubbleSink: bubblesink.NopSink{},
		GraphSink:  graphsink.NopSink{},
		Telemetry:  telemetry.NopSink{},
	}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithLogger sets the structured logger phases report through.
func WithLogger(logger *zap.SugaredLogger) ContextOption {
	return func(c *Context) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithBubbleSink sets where popped-bubble records are written.
func WithBubbleSink(sink bubblesink.Sink) ContextOption {
	return func(c *Context) {
		if sink != nil {
			c.BubbleSink = sink
		}
	}
}

// WithGraphSink sets where the final cleaned graph is written.
func WithGraphSink(sink graphsink.Sink) ContextOption {
	return func(c *Context) {
		if sink != nil {
			c.GraphSink = sink
		}
	}
}

// WithTelemetry sets the per-phase summary sink.
func WithTelemetry(sink telemetry.Sink) ContextOption {
	return func(c *Context) {
		if sink != nil {
			c.Telemetry = sink
		}
	}
}
