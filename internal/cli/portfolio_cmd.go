package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mazen-hassani/masar2-sub000/internal/app"
	"github.com/mazen-hassani/masar2-sub000/internal/cli/formatter"
)

func newPortfolioCmd(cliApp *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Show budget health across all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := cliApp.Portfolio.Overview(context.Background(), app.PortfolioRequest{
				IncludeArchived: all,
			})
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatPortfolio(resp))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include archived projects")
	return cmd
}
