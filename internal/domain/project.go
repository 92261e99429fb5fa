package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

type Project struct {
	ID         string
	ShortID    string
	Name       string
	Department string
	StartDate  time.Time
	TargetDate *time.Time
	Status     ProjectStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. ROAD01, INFRA0234).
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. ROAD01)", p.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// Archive moves the project to archived status and stamps ArchivedAt.
func (p *Project) Archive(now time.Time) error {
	if p.Status == ProjectArchived {
		return fmt.Errorf("project %s is already archived", p.DisplayID())
	}
	p.Status = ProjectArchived
	p.ArchivedAt = &now
	p.UpdatedAt = now
	return nil
}

// Unarchive restores an archived project to active status.
func (p *Project) Unarchive(now time.Time) error {
	if p.Status != ProjectArchived {
		return fmt.Errorf("project %s is not archived", p.DisplayID())
	}
	p.Status = ProjectActive
	p.ArchivedAt = nil
	p.UpdatedAt = now
	return nil
}
