// Package sweep implements the outer multi-k driver. The engine stays
// stateless between invocations, so a sweep across several k values is
// external orchestration, not a core component: it re-runs
// ingest.Load/assembly.Run once per k and feeds the previous round's
// contigs in as the next round's reads.
package sweep

import (
	"context"

	"github.com/abyssgo/assembler/assembly"
	"github.com/abyssgo/assembler/config"
	"github.com/abyssgo/assembler/coverage"
	"github.com/abyssgo/assembler/ingest"
	"github.com/abyssgo/assembler/iosupport"
)

// Round records one k value's outcome within a sweep.
type Round struct {
	K      int
	Result assembly.Result
}

// ContextOption customizes every round's assembly.Context beyond
// config and thresholds (e.g. a logger or telemetry sink shared across
// the whole sweep).
type ContextOption = assembly.ContextOption

// Run assembles source at ks[0], then re-assembles each subsequent k
// against the previous round's contig sequences treated as reads,
// returning one Round per k attempted. base supplies every Config
// field except K, which Run overrides per round. The sweep never
// writes to disk itself; wrap the final Round's contigs with
// iosupport.FASTAWriter if persistence is wanted. Stops and returns
// the rounds completed so far, plus the error, if any round fails.
func Run(ctx context.Context, base config.Config, source iosupport.SequenceSource, ks []int, workers int, opts ...ContextOption) ([]Round, error) {
	rounds := make([]Round, 0, len(ks))
	current := source

	for _, k := range ks {
		select {
		case <-ctx.Done():
			return rounds, ctx.Err()
		default:
		}

		cfg := base
		cfg.K = k

		loaded, err := ingest.Load(ctx, current, k, workers)
		if err != nil {
			return rounds, err
		}

		thresholds, err := resolveThresholds(cfg, loaded.Histogram)
		if err != nil {
			return rounds, err
		}

		actx := assembly.NewContext(cfg, thresholds, opts...)

		result, err := assembly.Run(ctx, loaded.Store, actx, loaded.Store.Size())
		if err != nil {
			return rounds, err
		}

		rounds = append(rounds, Round{K: k, Result: result})
		current = contigSource(result.Contigs)
	}

	return rounds, nil
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

// contigSource turns one round's contigs into the next round's
// SequenceSource, carrying each contig's ID forward as the synthetic
// read's ID so a caller inspecting intermediate rounds can trace
// provenance.
func contigSource(contigs []assembly.Contig) iosupport.SequenceSource {
	records := make([]iosupport.Record, len(contigs))
	for i, c := range contigs {
		records[i] = iosupport.Record{ID: c.ID, Sequence: c.Sequence}
	}

	return iosupport.NewSliceSource(records)
}
