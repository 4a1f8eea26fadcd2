// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/esh/manifold"
	"github.com/katalvlaran/esh/model"
	"github.com/katalvlaran/esh/modelstore"
)

// solverFlags are the overrides shared by train and sweep.
type solverFlags struct {
	features string
	anchors  string
	variant  string
	bits     []int
	alpha    float64
	maxIter  int
}

func (f *solverFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.features, "features", "f", "", "feature matrix CSV (n×d)")
	fl.StringVar(&f.anchors, "anchors", "", "anchor mapping CSV (n×m); k-means anchors when empty")
	fl.StringVar(&f.variant, "variant", "", "plain or generalized")
	fl.IntSliceVarP(&f.bits, "bits", "k", nil, "code width(s)")
	fl.Float64Var(&f.alpha, "alpha", 0, "regularization weight (0 selects automatically)")
	fl.IntVar(&f.maxIter, "max-iter", 0, "iteration cap")
}

// apply copies the flags that were set into the configuration.
func (f *solverFlags) apply(a *app, cmd *cobra.Command) {
	fl := cmd.Flags()
	if fl.Changed("features") {
		a.cfg.Data.Features = f.features
	}
	if fl.Changed("anchors") {
		a.cfg.Data.Anchors = f.anchors
	}
	if fl.Changed("variant") {
		a.cfg.Solver.Variant = f.variant
	}
	if fl.Changed("bits") {
		a.cfg.Solver.Bits = f.bits
	}
	if fl.Changed("alpha") {
		a.cfg.Solver.Alpha = f.alpha
	}
	if fl.Changed("max-iter") {
		a.cfg.Solver.MaxIter = f.maxIter
	}
}

func (a *app) solverOptions() []manifold.Option {
	return append(a.cfg.SolverOptions(), manifold.WithLogger(manifold.FromSlog(a.logger)))
}

func newTrainCommand(a *app) *cobra.Command {
	var (
		flags solverFlags
		name  string
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Learn one hash function and store it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.apply(a, cmd)
			if err := a.validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			x, z, err := a.loadTrainingData(ctx)
			if err != nil {
				return err
			}
			variant, bits := a.cfg.Variant(), a.cfg.Solver.Bits[0]
			res, err := manifold.Solve(ctx, x, z, bits, variant, a.solverOptions()...)
			if err != nil {
				return err
			}
			if name == "" {
				name = modelName(variant.String(), bits)
			}

			return a.save(cmd, name, res)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "store name (default <variant>/k<bits>.esh)")

	return cmd
}

// save stores res under name and prints its summary.
func (a *app) save(cmd *cobra.Command, name string, res *manifold.Result) error {
	m, err := model.FromResult(res)
	if err != nil {
		return err
	}
	comp, err := a.cfg.ModelCompression()
	if err != nil {
		return err
	}
	store, closeStore, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	if err = modelstore.SaveModel(cmd.Context(), store, name, m, comp); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	printModel(cmd.OutOrStdout(), name, m)

	return nil
}
