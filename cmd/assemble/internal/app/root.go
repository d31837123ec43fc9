// Package app wires cmd/assemble's cobra command tree: flag parsing
// into config.Config, the load -> assemble -> write pipeline, and exit
// code selection, kept separate from main.go so it stays testable.
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/abyssgo/assembler/config"
	"github.com/abyssgo/assembler/ingest"
	"github.com/abyssgo/assembler/iosupport"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Exit codes: 0 success, and one code per error kind so a caller
// scripting this binary can distinguish a bad flag from unusable input
// from a graph that assembled to nothing.
const (
	ExitSuccess = iota
	ExitConfigInvalid
	ExitInputUnusable
	ExitOutputUnwritable
	ExitAssemblyEmpty
	ExitCancelled
)

var (
	flagInput          string
	flagK              int
	flagErode          float64
	flagErodeSet       bool
	flagErodeStrand    float64
	flagErodeStrandSet bool
	flagCoverage       float64
	flagTrimLen        int
	flagTrimLenSet     bool
	flagBubbleLen      int
	flagBubbleSet      bool
	flagGraphPath      string
	flagBubblesPath    string
	flagContigsPath    string
	flagWorkers        int
	flagPostgresDSN    string
)

// NewRootCommand builds the "assemble" cobra command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "assemble",
		Short:         "assemble short reads into contigs via a de Bruijn graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runAssemble,
	}

	flags := cmd.Flags()
	flags.StringVar(&flagInput, "input", "", "input FASTA path (required)")
	flags.IntVar(&flagK, "k", 21, "k-mer length")
	flags.Float64Var(&flagErode, "erode", 0, "erosion coverage threshold (0 = auto-derive from histogram)")
	flags.Float64Var(&flagErodeStrand, "erode-strand", 0, "per-strand erosion threshold used by the stranded erosion variant (unset = use erode)")
	flags.Float64Var(&flagCoverage, "coverage", 0, "mean-coverage cutoff for the low-coverage filter (<=0 disables it)")
	flags.IntVar(&flagTrimLen, "trim-len", 0, "trimmer length bound (0 = default to k)")
	flags.IntVar(&flagBubbleLen, "bubble-len", 0, "bubble popper length bound (0 = default to 3k; pass -1 to disable)")
	flags.StringVar(&flagGraphPath, "graph-out", "", "optional DOT graph output path")
	flags.StringVar(&flagBubblesPath, "bubbles-out", "", "optional popped-bubble record output path (TSV)")
	flags.StringVar(&flagContigsPath, "contigs-out", "", "contigs FASTA output path (required)")
	flags.IntVar(&flagWorkers, "workers", 0, "adjacency-build worker count (0 = NumCPU)")
	flags.StringVar(&flagPostgresDSN, "telemetry-dsn", "", "optional PostgreSQL DSN for per-phase telemetry")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("contigs-out")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		flagErodeSet = cmd.Flags().Changed("erode")
		flagErodeStrandSet = cmd.Flags().Changed("erode-strand")
		flagTrimLenSet = cmd.Flags().Changed("trim-len")
		flagBubbleSet = cmd.Flags().Changed("bubble-len")

		return nil
	}

	return cmd
}

func runAssemble(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := buildConfig()
	if err != nil {
		return errors.Wrap(err, "assemble: invalid configuration")
	}

	in, err := os.Open(flagInput)
	if err != nil {
		return errors.Wrap(err, "assemble: open input")
	}
	defer in.Close()

	return Run(ctx, cfg, iosupport.NewFASTAReader(in))
}

func buildConfig() (config.Config, error) {
	opts := []config.Option{
		config.WithK(flagK),
		config.WithCoverage(flagCoverage),
		config.WithContigsPath(flagContigsPath),
	}
	if flagGraphPath != "" {
		opts = append(opts, config.WithGraphPath(flagGraphPath))
	}
	if flagErodeSet && flagErode != 0 {
		if flagErode < 0 {
			opts = append(opts, config.WithErode(config.Infinity))
		} else {
			opts = append(opts, config.WithErode(flagErode))
		}
	}
	if flagErodeStrandSet {
		if flagErodeStrand < 0 {
			opts = append(opts, config.WithErodeStrand(config.Infinity))
		} else {
			opts = append(opts, config.WithErodeStrand(flagErodeStrand))
		}
	}
	if flagTrimLenSet && flagTrimLen != 0 {
		opts = append(opts, config.WithTrimLen(flagTrimLen))
	}
	if flagBubbleSet && flagBubbleLen != 0 {
		if flagBubbleLen < 0 {
			opts = append(opts, config.WithBubbleLen(0))
		} else {
			opts = append(opts, config.WithBubbleLen(flagBubbleLen))
		}
	}

	return config.Resolve(opts...)
}

// ExitCode maps err to the process exit code for its error kind,
// falling back to ExitConfigInvalid for anything unrecognized (closest
// in spirit: the run never got off the ground).
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitCancelled
	case errors.Is(err, ingest.ErrNoUsableSequence):
		return ExitInputUnusable
	case isAssemblyEmpty(err):
		return ExitAssemblyEmpty
	case isOutputError(err):
		return ExitOutputUnwritable
	default:
		return ExitConfigInvalid
	}
}
