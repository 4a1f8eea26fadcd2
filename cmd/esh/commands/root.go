// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/esh/config"
)

// app carries the global flags and the resolved configuration of one run.
type app struct {
	verbose    bool
	configPath string
	envFiles   []string

	cfg    *config.Config
	logger *slog.Logger
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "esh",
		Short: "Learn and apply spectral hash functions",
		Long: `esh - spectral hashing on the Stiefel manifold.

A model is a projection W (features × bits) learned from a feature matrix X
and an anchor mapping Z. Codes are the signs of XW.

Configuration resolves from defaults, an optional YAML file (--config),
.env files (--env) and ESH_* environment variables, in that order.

Examples:
  # Learn a 32-bit model from features.csv with k-means anchors
  esh train --features features.csv --bits 32

  # Learn 16, 32 and 64 bit models in parallel
  esh sweep --features features.csv --bits 16,32,64

  # Encode new data
  esh encode --model plain/k32.esh --features queries.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env", []string{".env"}, ".env files to load")

	root.AddCommand(
		newTrainCommand(a),
		newSweepCommand(a),
		newEncodeCommand(a),
		newSearchCommand(a),
		newInspectCommand(a),
	)

	return root
}

// init sets up logging and resolves the configuration.
func (a *app) init(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	if err := config.LoadEnv(a.envFiles...); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err = cfg.ApplyEnv(nil); err != nil {
		return err
	}
	a.cfg = cfg

	return nil
}

// validate runs after per-command flags were applied to the configuration.
func (a *app) validate() error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	return nil
}
