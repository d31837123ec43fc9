package config

import "math"

// Infinity is the sentinel passed to WithErode/WithErodeStrand to
// disable the corresponding erosion threshold entirely.
var Infinity = math.Inf(1)

// WithK sets the k-mer length. Panics if k <= 0: a non-positive k is
// never meaningful and always indicates a programmer error, not a
// runtime condition worth an error return.
func WithK(k int) Option {
	if k <= 0 {
		panic("config: WithK(k<=0)")
	}
	return func(c *Config) { c.K = k }
}

// WithErode pins the erosion coverage threshold explicitly. Pass
// Infinity to disable the eroder phase.
func WithErode(threshold float64) Option {
	return func(c *Config) {
		t := threshold
		c.Erode = &t
	}
}

// WithErodeStrand sets a distinct per-strand erosion threshold.
func WithErodeStrand(threshold float64) Option {
	return func(c *Config) {
		t := threshold
		c.ErodeStrand = &t
	}
}

// WithCoverage sets the mean-coverage cutoff for the low-coverage
// filter. cutoff <= 0 disables the filter.
func WithCoverage(cutoff float64) Option {
	return func(c *Config) { c.Coverage = cutoff }
}

// WithTrimLen overrides the trimmer's length bound. Panics if n < 0.
func WithTrimLen(n int) Option {
	if n < 0 {
		panic("config: WithTrimLen(n<0)")
	}
	return func(c *Config) { c.TrimLen = &n }
}

// WithBubbleLen overrides the bubble popper's length bound. n == 0
// disables bubble popping. Panics if n < 0.
func WithBubbleLen(n int) Option {
	if n < 0 {
		panic("config: WithBubbleLen(n<0)")
	}
	return func(c *Config) { c.BubbleLen = &n }
}

// WithGraphPath sets the optional DOT graph output path.
func WithGraphPath(path string) Option {
	return func(c *Config) { c.GraphPath = path }
}

// WithContigsPath sets the required contigs output path.
func WithContigsPath(path string) Option {
	return func(c *Config) { c.ContigsPath = path }
}
