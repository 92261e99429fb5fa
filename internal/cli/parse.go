package cli

import (
	"fmt"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD flag value. The label names the flag in the
// error message.
func parseDate(label, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q (expected YYYY-MM-DD)", label, value)
	}
	return t, nil
}

// parseOptionalDate parses a YYYY-MM-DD flag value, treating "" as unset.
func parseOptionalDate(label, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(label, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseWBSStatus(value string) (domain.WBSStatus, error) {
	if !domain.ValidWBSStatuses[value] {
		return "", fmt.Errorf("invalid status %q (expected not_started, in_progress, delayed, completed or cancelled)", value)
	}
	return domain.WBSStatus(value), nil
}

// parseProjectStatus accepts the statuses a user may set directly; archived
// is reached through the archive command instead.
func parseProjectStatus(value string) (domain.ProjectStatus, error) {
	switch domain.ProjectStatus(value) {
	case domain.ProjectActive, domain.ProjectOnHold, domain.ProjectCompleted:
		return domain.ProjectStatus(value), nil
	case domain.ProjectArchived:
		return "", fmt.Errorf("use the archive command to archive a project")
	}
	return "", fmt.Errorf("invalid status %q (expected active, on_hold or completed)", value)
}

func parsePercent(value int) (int, error) {
	if value < 0 || value > 100 {
		return 0, fmt.Errorf("percent complete %d out of range (expected 0-100)", value)
	}
	return value, nil
}
