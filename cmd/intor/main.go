// Package main provides the intor command line tool: it lists integral kinds, reports
// output shapes and assembles integral tensors into SafeTensors files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/intor/internal/envconfig"
	"github.com/born-ml/intor/internal/kernel"
	"github.com/born-ml/intor/internal/libcint"
	"github.com/born-ml/intor/internal/logutil"
)

const version = "v0.1.0-dev"

var (
	// Global flags
	verbose bool

	logger *zap.Logger

	// undoGlobals restores the zap global logger replaced for the current command.
	undoGlobals = func() {}

	// newLogger builds the command logger at the given level.
	newLogger = logutil.New

	// registry returns the integral kinds the binary can assemble.
	registry = libcint.Registry
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "intor",
		Short: "Assemble molecular integral tensors",
		Long: `intor evaluates libcint-style integral kernels over shell ranges of a basis
and assembles the blocks into dense (s1) or triangular-packed (s2ij) column-major tensors.

Basis files hold the raw atm/bas/env tables in YAML. Results are written as SafeTensors.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := envconfig.LogLevel()
			if verbose {
				level = zap.DebugLevel
			}
			var err error
			logger, err = newLogger(level)
			if err != nil {
				return err
			}
			// envconfig reports malformed INTOR_* values through the global logger.
			undoGlobals = zap.ReplaceGlobals(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newVersionCmd(),
		newKindsCmd(),
		newShapeCmd(),
		newAssembleCmd(),
		newEnvCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "intor %s (libcint linked: %t)\n", version, libcint.Available())
		},
	}
}

// lookup resolves an integral kind by name.
func lookup(name string) (*kernel.Descriptor, error) {
	r, err := registry()
	if err != nil {
		return nil, err
	}
	return r.Lookup(name)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, newRootCmd()); err != nil {
		stop()
		os.Exit(1)
	}
}

// execute runs cmd and restores the zap global logger afterwards, also when the
// command fails.
func execute(ctx context.Context, cmd *cobra.Command) error {
	defer func() {
		undoGlobals()
		undoGlobals = func() {}
	}()
	return cmd.ExecuteContext(ctx)
}
