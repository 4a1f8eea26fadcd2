// SPDX-License-Identifier: MIT

package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/esh/dataset"
	"github.com/katalvlaran/esh/hashing"
	"github.com/katalvlaran/esh/model"
	"github.com/katalvlaran/esh/modelstore"
)

// loadModel fetches a model from the configured store.
func (a *app) loadModel(ctx context.Context, name string) (*model.Model, error) {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeStore() }()

	m, err := modelstore.LoadModel(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	return m, nil
}

// encodeFile loads the model and encodes every row of the feature CSV.
// It also returns the code width.
func (a *app) encodeFile(ctx context.Context, name, features string) ([]hashing.Code, int, error) {
	m, err := a.loadModel(ctx, name)
	if err != nil {
		return nil, 0, err
	}
	enc, err := m.Encoder()
	if err != nil {
		return nil, 0, err
	}
	x, err := dataset.LoadCSV(features)
	if err != nil {
		return nil, 0, err
	}
	codes, err := enc.Encode(x)
	if err != nil {
		return nil, 0, err
	}

	return codes, enc.Bits(), nil
}

func newEncodeCommand(a *app) *cobra.Command {
	var name, features, out string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Write the code of every feature row as a hex line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.validate(); err != nil {
				return err
			}
			codes, _, err := a.encodeFile(cmd.Context(), name, features)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			bw := bufio.NewWriter(w)
			for _, c := range codes {
				if _, err = fmt.Fprintln(bw, c.String()); err != nil {
					return err
				}
			}

			return bw.Flush()
		},
	}
	cmd.Flags().StringVarP(&name, "model", "m", "", "model name in the store")
	cmd.Flags().StringVarP(&features, "features", "f", "", "feature matrix CSV")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("features")

	return cmd
}
