package config

import (
	"math"

	"github.com/abyssgo/assembler/kmer"
)

// Config holds every tunable of one assembly run. Zero-value pointer
// fields mean "use the derived default"; see the accessor methods
// below for the resolution rules.
type Config struct {
	K int

	// Erode is the erosion coverage threshold. nil means derive it
	// automatically from the multiplicity histogram; math.Inf(1) means
	// disable the eroder phase entirely; any other finite value pins
	// the threshold directly, bypassing histogram derivation.
	Erode *float64

	// ErodeStrand overrides Erode with a distinct per-strand threshold
	// for the stranded erosion variant. nil means use Erode.
	ErodeStrand *float64

	// Coverage is the mean-multiplicity cutoff for the low-coverage
	// filter. <= 0 disables the filter.
	Coverage float64

	// TrimLen bounds the trimmer's branch-length cutoff. nil defaults to K.
	TrimLen *int

	// BubbleLen bounds the bubble popper's path-length cutoff. nil
	// defaults to 3*K; an explicit 0 disables bubble popping.
	BubbleLen *int

	GraphPath   string
	ContigsPath string
}

// Option customizes a Config at construction time.
type Option func(*Config)

// Resolve builds a Config from defaults, then applies each opt in
// order (later options override earlier ones), then validates the
// result.
func Resolve(opts ...Option) (Config, error) {
	cfg := Config{Coverage: 0}

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the invariants Resolve and every caller must hold:
// k in range, a contigs output path present, and non-negative length
// overrides.
func (c Config) Validate() error {
	if c.K < 3 || c.K > kmer.MaxK {
		return configErrorf("Validate", ErrKOutOfRange)
	}
	if c.ContigsPath == "" {
		return configErrorf("Validate", ErrMissingContigsPath)
	}
	if c.TrimLen != nil && *c.TrimLen < 0 {
		return configErrorf("Validate", ErrInvalidLengthBound)
	}
	if c.BubbleLen != nil && *c.BubbleLen < 0 {
		return configErrorf("Validate", ErrInvalidLengthBound)
	}

	return nil
}

// TrimLength resolves TrimLen against its default (K).
func (c Config) TrimLength() int {
	if c.TrimLen != nil {
		return *c.TrimLen
	}

	return c.K
}

// BubbleLength resolves BubbleLen against its default (3*K).
func (c Config) BubbleLength() int {
	if c.BubbleLen != nil {
		return *c.BubbleLen
	}

	return 3 * c.K
}

// BubblesDisabled reports whether bubble popping is switched off
// (an explicit BubbleLen of 0).
func (c Config) BubblesDisabled() bool {
	return c.BubbleLen != nil && *c.BubbleLen == 0
}

// ErosionAuto reports whether the erosion threshold should be derived
// from the histogram rather than taken from configuration.
func (c Config) ErosionAuto() bool {
	return c.Erode == nil
}

// ErosionDisabled reports whether the eroder phase is switched off
// entirely (Erode configured as +Inf).
func (c Config) ErosionDisabled() bool {
	return c.Erode != nil && math.IsInf(*c.Erode, 1)
}

// ErosionOverride returns the explicit erosion threshold and true, or
// (0, false) if none was configured (auto-derive or disabled).
func (c Config) ErosionOverride() (float64, bool) {
	if c.Erode == nil || c.ErosionDisabled() {
		return 0, false
	}

	return *c.Erode, true
}

// CoverageFilterDisabled reports whether the low-coverage filter is
// switched off (Coverage <= 0).
func (c Config) CoverageFilterDisabled() bool {
	return c.Coverage <= 0
}
