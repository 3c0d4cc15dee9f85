package main

import (
	"github.com/spf13/cobra"
)

func newExpandCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Print listings expanded from the seed dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := opts.commandContext(cmd)
			c, err := opts.buildCatalog(ctx)
			if err != nil {
				return err
			}

			listings := c.All(ctx)
			if limit > 0 && limit < len(listings) {
				listings = listings[:limit]
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, toListingRows(listings))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most n listings (0 - all)")
	return cmd
}
