package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mazen-hassani/masar2-sub000/internal/cli/formatter"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Short:   "Manage projects",
		Aliases: []string{"proj"},
	}
	cmd.AddCommand(newProjectAddCmd(app))
	cmd.AddCommand(newProjectListCmd(app))
	cmd.AddCommand(newProjectInspectCmd(app))
	cmd.AddCommand(newProjectUpdateCmd(app))
	cmd.AddCommand(newProjectArchiveCmd(app))
	cmd.AddCommand(newProjectUnarchiveCmd(app))
	cmd.AddCommand(newProjectRemoveCmd(app))
	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var (
		shortID    string
		department string
		start      string
		target     string
	)
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p := &domain.Project{
				ShortID:    strings.ToUpper(shortID),
				Name:       args[0],
				Department: department,
			}
			if start != "" {
				t, err := parseDate("start", start)
				if err != nil {
					return err
				}
				p.StartDate = t
			}
			tgt, err := parseOptionalDate("target", target)
			if err != nil {
				return err
			}
			p.TargetDate = tgt
			if err := app.Projects.Create(ctx, p); err != nil {
				return err
			}
			fmt.Printf("Created project %s (%s)\n", p.Name, p.DisplayID())
			return nil
		},
	}
	cmd.Flags().StringVar(&shortID, "id", "", "short ID, 3-6 letters then 2-4 digits (e.g. ROAD01)")
	cmd.Flags().StringVar(&department, "department", "", "owning department")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&target, "target", "", "target completion date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List projects",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background(), all)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatProjectList(projects))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include archived projects")
	return cmd
}

func newProjectInspectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect PROJECT",
		Short: "Show a project with its WBS structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			roots, childMap, err := loadTreeShape(ctx, app, p.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatProjectInspect(formatter.ProjectInspectData{
				Project:  p,
				Roots:    roots,
				ChildMap: childMap,
			}))
			return nil
		},
	}
	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var (
		name       string
		department string
		status     string
		start      string
		target     string
	)
	cmd := &cobra.Command{
		Use:   "update PROJECT",
		Short: "Update project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("department") {
				p.Department = department
			}
			if cmd.Flags().Changed("status") {
				st, err := parseProjectStatus(status)
				if err != nil {
					return err
				}
				p.Status = st
			}
			if cmd.Flags().Changed("start") {
				t, err := parseDate("start", start)
				if err != nil {
					return err
				}
				p.StartDate = t
			}
			if cmd.Flags().Changed("target") {
				tgt, err := parseOptionalDate("target", target)
				if err != nil {
					return err
				}
				p.TargetDate = tgt
			}
			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Printf("Updated project %s\n", p.DisplayID())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&department, "department", "", "owning department")
	cmd.Flags().StringVar(&status, "status", "", "status (active, on_hold, completed)")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&target, "target", "", "target date (YYYY-MM-DD, empty clears)")
	return cmd
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive PROJECT",
		Short: "Archive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Archive(ctx, p.ID); err != nil {
				return err
			}
			fmt.Printf("Archived project %s\n", p.DisplayID())
			return nil
		},
	}
	return cmd
}

func newProjectUnarchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unarchive PROJECT",
		Short: "Restore an archived project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Unarchive(ctx, p.ID); err != nil {
				return err
			}
			fmt.Printf("Restored project %s\n", p.DisplayID())
			return nil
		},
	}
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "remove PROJECT",
		Short:   "Delete a project and its WBS items",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, p.ID, force); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", p.DisplayID())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "delete even if not archived")
	return cmd
}
