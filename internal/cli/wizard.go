package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mazen-hassani/masar2-sub000/internal/cli/formatter"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// masarHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func masarHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardSelectProject creates a huh form to select a project from the list.
func wizardSelectProject(ctx context.Context, app *App, result *string) *huh.Form {
	projects, err := app.Projects.List(ctx, false)
	if err != nil || len(projects) == 0 {
		return nil
	}

	options := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		label := p.Name
		if p.ShortID != "" {
			label = fmt.Sprintf("%s - %s", p.ShortID, p.Name)
		}
		options = append(options, huh.NewOption(label, p.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which Project?").
				Options(options...).
				Value(result),
		),
	).WithTheme(masarHuhTheme()).WithShowHelp(false)
}

// wizardSelectParent creates a huh form to pick a parent for a new WBS item,
// with a root-level option first. Items are indented by hierarchy level.
func wizardSelectParent(ctx context.Context, app *App, projectID string, result *string) *huh.Form {
	items, err := app.WBS.ListByProject(ctx, projectID)
	if err != nil {
		return nil
	}

	options := make([]huh.Option[string], 0, len(items)+1)
	options = append(options, huh.NewOption("(root level)", ""))
	for _, item := range items {
		label := fmt.Sprintf("%s%s - %s", strings.Repeat("  ", item.Level), item.DisplayRef(), item.Title)
		options = append(options, huh.NewOption(label, item.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Parent Item").
				Options(options...).
				Value(result),
		),
	).WithTheme(masarHuhTheme()).WithShowHelp(false)
}

// wizardSelectStatus creates a huh form to select an authored item status.
func wizardSelectStatus(result *string) *huh.Form {
	*result = string(domain.WBSNotStarted)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Not Started", string(domain.WBSNotStarted)),
					huh.NewOption("In Progress", string(domain.WBSInProgress)),
					huh.NewOption("Delayed", string(domain.WBSDelayed)),
					huh.NewOption("Completed", string(domain.WBSCompleted)),
					huh.NewOption("Cancelled", string(domain.WBSCancelled)),
				).
				Value(result),
		),
	).WithTheme(masarHuhTheme()).WithShowHelp(false)
}

// wizardInputText creates a huh form for a single text input.
func wizardInputText(title, placeholder string, required bool, result *string) *huh.Form {
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(result)

	if required {
		input = input.Validate(func(s string) error {
			if s == "" {
				return fmt.Errorf("%s is required", title)
			}
			return nil
		})
	}

	return huh.NewForm(
		huh.NewGroup(input),
	).WithTheme(masarHuhTheme()).WithShowHelp(false)
}

// wizardInputSchedule creates a huh form for the optional planned start and
// end dates.
func wizardInputSchedule(start, end *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Planned Start").
				Placeholder("YYYY-MM-DD, empty to skip").
				Value(start).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Planned End").
				Placeholder("YYYY-MM-DD, empty to skip").
				Value(end).
				Validate(validateOptionalDate),
		),
	).WithTheme(masarHuhTheme()).WithShowHelp(false)
}

// wizardInputMoney creates a huh form for an optional non-negative amount.
func wizardInputMoney(title string, result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("e.g. 45000, empty to skip").
				Value(result).
				Validate(validateOptionalMoney),
		),
	).WithTheme(masarHuhTheme()).WithShowHelp(false)
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateOptionalMoney accepts empty or a non-negative number.
func validateOptionalMoney(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative amount")
	}
	return nil
}

// runWBSAddForm walks the user through creating a WBS item. The forms have
// already validated every value, so the parses at the end cannot fail.
func runWBSAddForm(ctx context.Context, app *App, projectRef string) error {
	var projectID string
	if projectRef != "" {
		p, err := resolveProject(ctx, app, projectRef)
		if err != nil {
			return err
		}
		projectID = p.ID
	} else {
		form := wizardSelectProject(ctx, app, &projectID)
		if form == nil {
			return fmt.Errorf("no projects to add items to (create one with: masar project add)")
		}
		if err := form.Run(); err != nil {
			return err
		}
	}

	var title string
	if err := wizardInputText("Item Title", "e.g. Earthworks", true, &title).Run(); err != nil {
		return err
	}

	var parentID string
	if form := wizardSelectParent(ctx, app, projectID, &parentID); form != nil {
		if err := form.Run(); err != nil {
			return err
		}
	}

	var status string
	if err := wizardSelectStatus(&status).Run(); err != nil {
		return err
	}

	var start, end string
	if err := wizardInputSchedule(&start, &end).Run(); err != nil {
		return err
	}

	var cost string
	if err := wizardInputMoney("Planned Cost", &cost).Run(); err != nil {
		return err
	}

	item := &domain.WBSItem{
		ProjectID: projectID,
		Title:     title,
		Status:    domain.WBSStatus(status),
	}
	if parentID != "" {
		item.ParentID = &parentID
	}
	if start != "" {
		t, _ := time.Parse(dateLayout, start)
		item.PlannedStart = &t
	}
	if end != "" {
		t, _ := time.Parse(dateLayout, end)
		item.PlannedEnd = &t
	}
	if cost != "" {
		v, _ := strconv.ParseFloat(cost, 64)
		item.PlannedCost = &v
	}
	if err := app.WBS.Create(ctx, item); err != nil {
		return err
	}
	fmt.Printf("Added %s %s\n", item.DisplayRef(), item.Title)
	return nil
}
