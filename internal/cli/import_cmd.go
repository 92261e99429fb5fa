package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mazen-hassani/masar2-sub000/internal/cli/formatter"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project from a JSON file",
		Long: `Import reads a project with its WBS items, cost items and invoice
allocations from a JSON document, validates it, writes it in a single
transaction and rebuilds the aggregates. Nothing is written when
validation fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportProject(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatImportResult(res))
			return nil
		},
	}
	return cmd
}
