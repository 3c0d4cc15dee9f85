// listingctl - консольный доступ к каталогу объявлений без HTTP-сервера.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"listing-service/dataset"
	"listing-service/internal/adapters/catalog"
	logger_adapter "listing-service/internal/adapters/logger"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/factory"
)

type rootOptions struct {
	output      string
	currentYear int
	startID     int
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "listingctl",
		Short:         "Inspect the rental listing catalog",
		Long:          `Builds the listing catalog from the embedded dataset and runs searches against it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputJSON && opts.output != outputYAML {
				return fmt.Errorf("unsupported output format %q (json|yaml)", opts.output)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.output, "output", "o", outputJSON, "output format: json|yaml")
	flags.IntVar(&opts.currentYear, "current-year", time.Now().Year(), "year used for building age labels")
	flags.IntVar(&opts.startID, "start-id", 1, "first listing id")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log catalog building to stderr")

	root.AddCommand(newExpandCmd(opts), newSearchCmd(opts), newLinesCmd(opts))
	return root
}

// commandContext кладет в контекст логгер, пишущий в stderr команды.
func (o *rootOptions) commandContext(cmd *cobra.Command) context.Context {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Writer: cmd.ErrOrStderr(),
		Level:  level,
	})
	return contextkeys.ContextWithLogger(cmd.Context(), logger)
}

func (o *rootOptions) buildCatalog(ctx context.Context) (*catalog.Catalog, error) {
	c, err := catalog.New(ctx, dataset.FS, factory.NewPropertyFactory(o.currentYear), o.startID)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	return c, nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
