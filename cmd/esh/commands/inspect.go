// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInspectCommand(a *app) *cobra.Command {
	var prefix string
	list := false
	cmd := &cobra.Command{
		Use:   "inspect [name...]",
		Short: "Show model metadata, or list stored models",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			if list || len(args) == 0 {
				store, closeStore, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = closeStore() }()
				names, err := store.List(ctx, prefix)
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}
			for _, name := range args {
				m, err := a.loadModel(ctx, name)
				if err != nil {
					return err
				}
				printModel(cmd.OutOrStdout(), name, m)
			}

			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list stored model names")
	cmd.Flags().StringVar(&prefix, "prefix", "", "name prefix for --list")

	return cmd
}
