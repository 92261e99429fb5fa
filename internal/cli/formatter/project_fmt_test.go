package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

func TestFormatProjectList(t *testing.T) {
	target := time.Now().AddDate(0, 3, 0)
	projects := []*domain.Project{
		{ID: "p-1", ShortID: "RING01", Name: "Ring Road", Department: "infrastructure", Status: domain.ProjectActive, TargetDate: &target},
		{ID: "a1b2c3d4-e5f6", Name: "Unnamed Works", Status: domain.ProjectOnHold},
	}

	out := FormatProjectList(projects)
	assert.Contains(t, out, "RING01")
	assert.Contains(t, out, "Ring Road")
	assert.Contains(t, out, "Infrastructure")
	assert.Contains(t, out, "Active")
	// Fallback to the truncated UUID when no short ID is set.
	assert.Contains(t, out, "a1b2c3d4")
	assert.Contains(t, out, "On Hold")
}

func TestFormatProjectInspect_PanelsAndTree(t *testing.T) {
	target := time.Now().AddDate(0, 6, 0)
	p := &domain.Project{
		ID:         "p-1",
		ShortID:    "RING01",
		Name:       "Ring Road",
		Department: "infrastructure",
		Status:     domain.ProjectActive,
		StartDate:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		TargetDate: &target,
		UpdatedAt:  time.Now(),
	}

	cost := 45000.0
	root := &domain.WBSItem{ID: "w-1", Seq: 1, Title: "Design Phase", Status: domain.WBSInProgress}
	child := &domain.WBSItem{ID: "w-2", Seq: 2, ParentID: &root.ID, Title: "Survey", Status: domain.WBSCompleted, PlannedCost: &cost}

	out := FormatProjectInspect(ProjectInspectData{
		Project:  p,
		Roots:    []*domain.WBSItem{root},
		ChildMap: map[string][]*domain.WBSItem{root.ID: {child}},
	})

	assert.Contains(t, out, "Ring Road")
	assert.Contains(t, out, "RING01")
	assert.Contains(t, out, "STRUCTURE")
	assert.Contains(t, out, "Design Phase")
	assert.Contains(t, out, "Survey")
	assert.Contains(t, out, "45,000")
}

func TestFormatProjectInspect_NoItems(t *testing.T) {
	p := &domain.Project{ID: "p-1", ShortID: "RING01", Name: "Ring Road", Status: domain.ProjectActive, UpdatedAt: time.Now()}

	out := FormatProjectInspect(ProjectInspectData{Project: p})
	assert.Contains(t, out, "No WBS items")
}
