// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/esh/hashing"
)

func newSearchCommand(a *app) *cobra.Command {
	var (
		name, features string
		row, radius    int
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "List the rows within a Hamming radius of a query row",
		Long: `Encode a feature file, index the codes and print the ids of the rows
whose code lies within --radius of the code of row --row, with distances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.validate(); err != nil {
				return err
			}
			codes, bits, err := a.encodeFile(cmd.Context(), name, features)
			if err != nil {
				return err
			}
			if row < 0 || row >= len(codes) {
				return fmt.Errorf("row %d out of range [0,%d)", row, len(codes))
			}
			idx, err := hashing.Build(bits, codes)
			if err != nil {
				return err
			}
			a.logger.DebugContext(cmd.Context(), "index built", "rows", idx.Len(), "buckets", idx.Buckets())

			q := codes[row]
			ids, err := idx.Search(q, radius)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, id := range ids {
				fmt.Fprintf(w, "%d\t%d\n", id, hashing.Hamming(codes[id], q))
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "model", "m", "", "model name in the store")
	cmd.Flags().StringVarP(&features, "features", "f", "", "feature matrix CSV")
	cmd.Flags().IntVar(&row, "row", 0, "query row")
	cmd.Flags().IntVarP(&radius, "radius", "r", 2, "Hamming radius")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("features")

	return cmd
}
