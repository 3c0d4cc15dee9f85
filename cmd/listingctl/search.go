package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"listing-service/internal/core/usecase"
)

type searchOutput struct {
	Query      string       `json:"query" yaml:"query"`
	Heading    string       `json:"heading" yaml:"heading"`
	CountLabel string       `json:"countLabel" yaml:"countLabel"`
	Total      int          `json:"total" yaml:"total"`
	Page       int          `json:"page" yaml:"page"`
	TotalPages int          `json:"totalPages" yaml:"totalPages"`
	Listings   []listingRow `json:"listings" yaml:"listings"`
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var perPage int

	cmd := &cobra.Command{
		Use:     "search [query]",
		Short:   "Run an area search, query uses the /search URL format",
		Example: `  listingctl search "area=tokyo&rent_max=10&sort=price-asc"`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = strings.TrimPrefix(args[0], "?")
			}
			values, err := url.ParseQuery(raw)
			if err != nil {
				return fmt.Errorf("invalid query %q: %w", raw, err)
			}
			if perPage <= 0 {
				return fmt.Errorf("per-page must be positive")
			}

			ctx := opts.commandContext(cmd)
			c, err := opts.buildCatalog(ctx)
			if err != nil {
				return err
			}

			result, err := usecase.NewSearchListingsUseCase(c, c.Matcher(), perPage).Execute(ctx, values)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), opts.output, searchOutput{
				Query:      result.Query,
				Heading:    result.Heading,
				CountLabel: result.CountLabel,
				Total:      result.Total,
				Page:       result.Page,
				TotalPages: result.TotalPages,
				Listings:   toListingRows(result.Listings),
			})
		},
	}

	cmd.Flags().IntVar(&perPage, "per-page", 10, "listings per page")
	return cmd
}
