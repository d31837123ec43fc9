package config_test

import (
	"testing"

	"github.com/abyssgo/assembler/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	cfg, err := config.Resolve(config.WithK(25), config.WithContigsPath("out.fa"))
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.K)
	assert.Equal(t, 25, cfg.TrimLength())
	assert.Equal(t, 75, cfg.BubbleLength())
	assert.True(t, cfg.ErosionAuto())
	assert.False(t, cfg.ErosionDisabled())
	assert.True(t, cfg.CoverageFilterDisabled())
}

func TestResolveRejectsKOutOfRange(t *testing.T) {
	_, err := config.Resolve(config.WithK(2), config.WithContigsPath("out.fa"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrKOutOfRange)
}

func TestResolveRejectsMissingContigsPath(t *testing.T) {
	_, err := config.Resolve(config.WithK(25))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingContigsPath)
}

func TestWithErodeInfinityDisablesEroder(t *testing.T) {
	cfg, err := config.Resolve(
		config.WithK(25),
		config.WithContigsPath("out.fa"),
		config.WithErode(config.Infinity),
	)
	require.NoError(t, err)
	assert.True(t, cfg.ErosionDisabled())
	assert.False(t, cfg.ErosionAuto())

	_, ok := cfg.ErosionOverride()
	assert.False(t, ok)
}

func TestWithErodeExplicitValue(t *testing.T) {
	cfg, err := config.Resolve(
		config.WithK(25),
		config.WithContigsPath("out.fa"),
		config.WithErode(4),
	)
	require.NoError(t, err)
	assert.False(t, cfg.ErosionAuto())

	threshold, ok := cfg.ErosionOverride()
	require.True(t, ok)
	assert.Equal(t, 4.0, threshold)
}

func TestWithBubbleLenZeroDisablesBubbles(t *testing.T) {
	cfg, err := config.Resolve(
		config.WithK(25),
		config.WithContigsPath("out.fa"),
		config.WithBubbleLen(0),
	)
	require.NoError(t, err)
	assert.True(t, cfg.BubblesDisabled())
	assert.Equal(t, 0, cfg.BubbleLength())
}

func TestWithKPanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { config.WithK(0) })
}

func TestWithTrimLenPanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { config.WithTrimLen(-1) })
}
