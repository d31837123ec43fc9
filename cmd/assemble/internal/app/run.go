package app

import (
	"context"
	"os"

	"github.com/abyssgo/assembler/assembly"
	"github.com/abyssgo/assembler/bubblesink"
	"github.com/abyssgo/assembler/config"
	"github.com/abyssgo/assembler/coverage"
	"github.com/abyssgo/assembler/graphsink"
	"github.com/abyssgo/assembler/ingest"
	"github.com/abyssgo/assembler/iosupport"
	"github.com/abyssgo/assembler/telemetry"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrOutputUnwritable wraps any error writing the contigs or graph
// sink, distinguishing an I/O failure at the output boundary from one
// at the input boundary (ExitInputUnusable) or during assembly proper.
var ErrOutputUnwritable = errors.New("assemble: output unwritable")

// Run executes one end-to-end assembly: load source at cfg.K, run the
// cleaning/extraction pipeline, and write contigs (and, if configured,
// the cleaned graph and telemetry) to their destinations.
func Run(ctx context.Context, cfg config.Config, source iosupport.SequenceSource) error {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	workers := flagWorkers
	loaded, err := ingest.Load(ctx, source, cfg.K, workers)
	if err != nil {
		return err
	}
	sugar.Infow("load complete", "vertices", loaded.Histogram.Total(), "reads", loaded.ReadsLoaded, "skipped_bases", loaded.SkippedBases)

	thresholds, err := resolveThresholds(cfg, loaded.Histogram)
	if err != nil {
		return errors.Wrap(err, "assemble: derive thresholds")
	}

	telemetrySink, closeTelemetry, err := buildTelemetrySink(ctx)
	if err != nil {
		return errors.Wrap(err, "assemble: connect telemetry")
	}
	defer closeTelemetry()

	graphSink, closeGraphSink, err := buildGraphSink(cfg)
	if err != nil {
		return errors.Wrap(ErrOutputUnwritable, err.Error())
	}
	defer closeGraphSink()

	bubbleSink, closeBubbleSink, err := buildBubbleSink()
	if err != nil {
		return errors.Wrap(ErrOutputUnwritable, err.Error())
	}
	defer closeBubbleSink()

	actx := assembly.NewContext(cfg, thresholds,
		assembly.WithLogger(sugar),
		assembly.WithGraphSink(graphSink),
		assembly.WithBubbleSink(bubbleSink),
		assembly.WithTelemetry(telemetrySink),
	)

	result, err := assembly.Run(ctx, loaded.Store, actx, loaded.Store.Size())
	if err != nil {
		return err
	}

	if err := writeContigs(cfg.ContigsPath, result.Contigs); err != nil {
		return errors.Wrap(ErrOutputUnwritable, err.Error())
	}

	if err := graphSink.WriteGraph(loaded.Store); err != nil {
		return errors.Wrap(ErrOutputUnwritable, err.Error())
	}

	return nil
}

func resolveThresholds(cfg config.Config, h *coverage.Histogram) (coverage.Thresholds, error) {
	t, err := baseThresholds(cfg, h)
	if err != nil {
		return coverage.Thresholds{}, err
	}
	if cfg.ErodeStrand != nil {
		t.ErodeStrand = uint32(*cfg.ErodeStrand)
	}

	return t, nil
}

func baseThresholds(cfg config.Config, h *coverage.Histogram) (coverage.Thresholds, error) {
	if override, ok := cfg.ErosionOverride(); ok {
		return coverage.Thresholds{Erosion: uint32(override), Contig: cfg.Coverage}, nil
	}
	if cfg.ErosionDisabled() {
		return coverage.Thresholds{Erosion: 0, Contig: cfg.Coverage}, nil
	}

	return coverage.Derive(h, cfg.Coverage)
}

func buildTelemetrySink(ctx context.Context) (telemetry.Sink, func(), error) {
	if flagPostgresDSN == "" {
		sink := telemetry.NopSink{}

		return sink, func() {}, nil
	}

	sink, err := telemetry.ConnectPostgres(ctx, flagPostgresDSN, flagContigsPath)
	if err != nil {
		return nil, nil, err
	}
	if err := sink.InitSchema(ctx); err != nil {
		return nil, nil, err
	}

	return sink, func() { sink.Close() }, nil
}

func buildBubbleSink() (bubblesink.Sink, func(), error) {
	if flagBubblesPath == "" {
		return bubblesink.NopSink{}, func() {}, nil
	}

	f, err := os.Create(flagBubblesPath)
	if err != nil {
		return nil, nil, err
	}

	sink, err := bubblesink.NewTSVWriter(f)
	if err != nil {
		f.Close()

		return nil, nil, err
	}

	return sink, func() { sink.Close(); f.Close() }, nil
}

func buildGraphSink(cfg config.Config) (graphsink.Sink, func(), error) {
	if cfg.GraphPath == "" {
		return graphsink.NopSink{}, func() {}, nil
	}

	f, err := os.Create(cfg.GraphPath)
	if err != nil {
		return nil, nil, err
	}

	sink, err := graphsink.NewDOTWriter(f)
	if err != nil {
		f.Close()

		return nil, nil, err
	}

	return sink, func() { sink.Close(); f.Close() }, nil
}

func writeContigs(path string, contigs []assembly.Contig) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := iosupport.NewFASTAWriter(f)
	for _, c := range contigs {
		if err := w.WriteContig(c.ID, c.Sequence, c.Coverage); err != nil {
			return err
		}
	}

	return w.Close()
}

func isAssemblyEmpty(err error) bool {
	return errors.Is(err, assembly.ErrAssemblyEmpty)
}

func isOutputError(err error) bool {
	return errors.Is(err, ErrOutputUnwritable)
}
