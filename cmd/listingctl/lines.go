package main

import (
	"github.com/spf13/cobra"

	"listing-service/internal/core/usecase"
)

type lineRow struct {
	Key        string `json:"key" yaml:"key"`
	Name       string `json:"name" yaml:"name"`
	Prefecture string `json:"prefecture" yaml:"prefecture"`
	Count      int    `json:"count" yaml:"count"`
}

type stopRow struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

type lineStopsOutput struct {
	Key        string    `json:"key" yaml:"key"`
	Name       string    `json:"name" yaml:"name"`
	Prefecture string    `json:"prefecture" yaml:"prefecture"`
	Stops      []stopRow `json:"stops" yaml:"stops"`
}

// Без аргумента печатает все линии, с ключом линии - ее станции.
func newLinesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lines [line-key]",
		Short: "List railway lines or the stops of one line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := opts.commandContext(cmd)
			c, err := opts.buildCatalog(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				details, err := usecase.NewGetLineStopsUseCase(c.Matcher()).Execute(ctx, args[0])
				if err != nil {
					return err
				}
				out := lineStopsOutput{
					Key:        details.Key,
					Name:       details.Name,
					Prefecture: details.PrefectureKey,
					Stops:      make([]stopRow, 0, len(details.Stops)),
				}
				for _, s := range details.Stops {
					out.Stops = append(out.Stops, stopRow{Name: s.Name, Count: s.Count})
				}
				return writeOutput(cmd.OutOrStdout(), opts.output, out)
			}

			dicts, err := usecase.NewGetDictionariesUseCase(c.Matcher()).Execute(ctx, []string{usecase.DictLines})
			if err != nil {
				return err
			}
			rows := make([]lineRow, 0, len(dicts[usecase.DictLines]))
			for _, item := range dicts[usecase.DictLines] {
				rows = append(rows, lineRow{
					Key:        item.SystemName,
					Name:       item.DisplayName,
					Prefecture: item.Group,
					Count:      item.Count,
				})
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, rows)
		},
	}
}
