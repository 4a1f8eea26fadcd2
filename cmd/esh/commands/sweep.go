// SPDX-License-Identifier: MIT

package commands

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/esh/manifold"
)

func newSweepCommand(a *app) *cobra.Command {
	var (
		flags       solverFlags
		parallelism int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Learn one hash function per bit width, in parallel",
		Long: `Learn one model for each entry of --bits on the same data.

The anchor graph and affinity are built once and shared by all solves.
Models are stored as <variant>/k<bits>.esh.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.apply(a, cmd)
			if cmd.Flags().Changed("parallelism") {
				a.cfg.Solver.Parallelism = parallelism
			}
			if err := a.validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			x, z, err := a.loadTrainingData(ctx)
			if err != nil {
				return err
			}
			variant, ks := a.cfg.Variant(), a.cfg.Solver.Bits
			results, err := manifold.SolveMany(ctx, x, z, ks, variant, a.cfg.Solver.Parallelism, a.solverOptions()...)
			if err != nil {
				return err
			}
			for i, res := range results {
				if err = a.save(cmd, modelName(variant.String(), ks[i]), res); err != nil {
					return err
				}
			}

			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 0, "concurrent solves (0 = unlimited)")

	return cmd
}
