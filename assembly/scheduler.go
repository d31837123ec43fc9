package assembly

import (
	"context"
	"fmt"
	"math"

	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/telemetry"
)

// Result summarizes one completed assembly run.
type Result struct {
	Loaded              int
	Eroded              int
	Trimmed             int
	FilteredLowCoverage int
	BubblesPopped       int
	Contigs             []Contig
}

// Run executes the fixed cleaning pipeline against s: erode, trim,
// low-coverage filter (with a single mandatory re-erode pass), pop
// bubbles, then walk contigs. loaded is the vertex count s started
// with, used only for telemetry. Each phase is skipped when actx.Config
// says so (ErosionDisabled, TrimLength <= 0, CoverageFilterDisabled,
// BubblesDisabled); skipping a phase still reports it with zero
// removed, so a telemetry consumer sees every phase on every run.
func Run(ctx context.Context, s *graphstore.Store, actx Context, loaded int) (Result, error) {
	result := Result{Loaded: loaded}
	cfg := actx.Config

	eroded, err := runErode(ctx, s, actx)
	if err != nil {
		return result, err
	}
	result.Eroded = eroded
	if err := reportPhase(actx, "erode", loaded, eroded, s); err != nil {
		return result, err
	}

	trimLen := cfg.TrimLength()
	trimmed := 0
	if trimLen > 0 {
		trimmed, err = Trim(ctx, s, trimLen)
		if err != nil {
			return result, err
		}
	}
	result.Trimmed = trimmed
	if err := reportPhase(actx, "trim", loaded, trimmed, s); err != nil {
		return result, err
	}

	filtered := 0
	if !cfg.CoverageFilterDisabled() {
		filtered, err = LowCoverageFilter(ctx, s, actx.Thresholds)
		if err != nil {
			return result, err
		}
		result.FilteredLowCoverage = filtered
		if err := reportPhase(actx, "lowcov", loaded, filtered, s); err != nil {
			return result, err
		}

		// The filter strands ambiguous endpoints as fresh low-coverage
		// tips, so erosion re-runs here. It already iterates to a fixed
		// point internally; the second call asserts that fixed point
		// held. A non-zero second pass is a convergence bug, never
		// recovered.
		reeroded, err := runErode(ctx, s, actx)
		if err != nil {
			return result, err
		}
		result.Eroded += reeroded
		if err := reportPhase(actx, "re-erode", loaded, reeroded, s); err != nil {
			return result, err
		}

		again, err := runErode(ctx, s, actx)
		if err != nil {
			return result, err
		}
		if again != 0 {
			panic(fmt.Sprintf("assembly: second erode pass after low-coverage filter removed %d vertices, want 0 (graph not at a fixed point)", again))
		}
	} else {
		if err := reportPhase(actx, "lowcov", loaded, 0, s); err != nil {
			return result, err
		}
		if err := reportPhase(actx, "re-erode", loaded, 0, s); err != nil {
			return result, err
		}
	}

	s.ClearMarks()

	bubbleLen := cfg.BubbleLength()
	popped, err := PopBubbles(ctx, s, bubbleLen, actx.BubbleSink)
	if err != nil {
		return result, err
	}
	result.BubblesPopped = popped
	if err := reportPhase(actx, "bubble", loaded, popped, s); err != nil {
		return result, err
	}

	s.ClearMarks()

	contigs, err := WalkContigs(ctx, s)
	if err != nil {
		return result, err
	}
	result.Contigs = contigs

	actx.Logger.Infow("assembly complete",
		"loaded", loaded,
		"eroded", result.Eroded,
		"trimmed", result.Trimmed,
		"filtered_low_coverage", result.FilteredLowCoverage,
		"bubbles_popped", result.BubblesPopped,
		"contigs", len(contigs),
	)

	return result, nil
}

// runErode applies the eroder phase actx.Config selects: disabled,
// stranded, or plain, each skipped or run to a fixed point.
func runErode(ctx context.Context, s *graphstore.Store, actx Context) (int, error) {
	cfg := actx.Config
	if cfg.ErosionDisabled() {
		return 0, nil
	}
	if cfg.ErodeStrand != nil {
		return ErodeStranded(ctx, s, actx.Thresholds.ErodeStrand)
	}

	return Erode(ctx, s, actx.Thresholds.Erosion)
}

// reportPhase logs and forwards one phase's effect to actx.Telemetry.
func reportPhase(actx Context, name string, loaded, removed int, s *graphstore.Store) error {
	surviving := 0
	for range s.All() {
		surviving++
	}

	snr := signalToNoise(surviving, removed)

	actx.Logger.Debugw("phase complete",
		"phase", name,
		"removed", removed,
		"surviving", surviving,
		"snr", snr,
	)

	return actx.Telemetry.RecordPhase(telemetry.PhaseSummary{
		Name:      name,
		Loaded:    loaded,
		Removed:   removed,
		Surviving: surviving,
		SNR:       snr,
	})
}

// signalToNoise returns 10*log10(surviving/removed), or +Inf when
// nothing was removed: a phase that removed nothing has no noise to
// measure against.
func signalToNoise(surviving, removed int) float64 {
	if removed == 0 {
		return math.Inf(1)
	}

	return 10 * math.Log10(float64(surviving)/float64(removed))
}
