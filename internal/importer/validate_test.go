package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string     { return &s }
func ptrInt(i int) *int           { return &i }
func ptrFloat(f float64) *float64 { return &f }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Project: ProjectImport{
			ShortID:    "ROAD01",
			Name:       "Ring Road Upgrade",
			Department: "infrastructure",
			StartDate:  "2025-02-01",
		},
		Items: []ItemImport{
			{Ref: "p1", Title: "Phase 1"},
		},
	}
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	errs := ValidateImportSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_ValidFull(t *testing.T) {
	schema := &ImportSchema{
		Project: ProjectImport{
			ShortID:    "BRG02",
			Name:       "Harbor Bridge",
			Department: "civil",
			StartDate:  "2025-02-01",
			TargetDate: ptrStr("2026-06-01"),
		},
		Items: []ItemImport{
			{Ref: "design", Title: "Design", Order: 0, Status: "completed", PercentComplete: ptrInt(100),
				PlannedStart: ptrStr("2025-02-01"), PlannedEnd: ptrStr("2025-04-30")},
			{Ref: "design_survey", ParentRef: ptrStr("design"), Title: "Site Survey", Order: 0,
				PlannedCost: ptrFloat(120000), ActualCost: ptrFloat(98000)},
			{Ref: "build", Title: "Construction", Order: 1, Status: "in_progress", PercentComplete: ptrInt(40)},
		},
		CostItems: []CostItemImport{
			{ItemRef: "design_survey", Description: "Geotechnical report", Category: "services", PlannedAmount: 45000, ActualAmount: 43150},
			{ItemRef: "build", Description: "Steel", Category: "materials", PlannedAmount: 800000},
		},
		Allocations: []AllocationImport{
			{ItemRef: "build", InvoiceRef: "INV-2025-014", Amount: 150000, Percentage: 60},
		},
	}
	errs := ValidateImportSchema(schema)
	assert.Empty(t, errs)
}

func TestValidateImportSchema_MissingProjectFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *ImportSchema)
		wantMsg string
	}{
		{"missing short_id", func(s *ImportSchema) { s.Project.ShortID = "" }, "project.short_id is required"},
		{"missing name", func(s *ImportSchema) { s.Project.Name = "" }, "project.name is required"},
		{"missing start_date", func(s *ImportSchema) { s.Project.StartDate = "" }, "project.start_date is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validMinimalSchema()
			tc.mutate(s)
			errs := ValidateImportSchema(s)
			assert.NotEmpty(t, errs)
			assert.Contains(t, errs[0].Error(), tc.wantMsg)
		})
	}
}

func TestValidateImportSchema_ShortIDFormat(t *testing.T) {
	s := validMinimalSchema()
	s.Project.ShortID = "R1"
	errs := ValidateImportSchema(s)
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "project.short_id")

	// Lowercase is accepted; Convert uppercases it.
	s = validMinimalSchema()
	s.Project.ShortID = "road01"
	assert.Empty(t, ValidateImportSchema(s))
}

func TestValidateImportSchema_InvalidDates(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *ImportSchema)
		wantMsg string
	}{
		{"bad start_date", func(s *ImportSchema) { s.Project.StartDate = "not-a-date" }, "invalid date format"},
		{"bad target_date", func(s *ImportSchema) { s.Project.TargetDate = ptrStr("not-a-date") }, "invalid date format"},
		{"target before start", func(s *ImportSchema) { s.Project.TargetDate = ptrStr("2025-01-01") }, "must be after start_date"},
		{"bad planned_start", func(s *ImportSchema) { s.Items[0].PlannedStart = ptrStr("bad") }, "invalid date format"},
		{"bad actual_end", func(s *ImportSchema) { s.Items[0].ActualEnd = ptrStr("2025-13-40") }, "invalid date format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validMinimalSchema()
			tc.mutate(s)
			errs := ValidateImportSchema(s)
			assert.NotEmpty(t, errs)
			found := false
			for _, e := range errs {
				if contains(e.Error(), tc.wantMsg) {
					found = true
					break
				}
			}
			assert.True(t, found, "expected error containing %q, got %v", tc.wantMsg, errs)
		})
	}
}

func TestValidateImportSchema_DuplicateItemRef(t *testing.T) {
	s := validMinimalSchema()
	s.Items = append(s.Items, ItemImport{Ref: "p1", Title: "Dup"})
	errs := ValidateImportSchema(s)
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "duplicate ref")
}

func TestValidateImportSchema_UnknownParentRef(t *testing.T) {
	s := validMinimalSchema()
	s.Items[0].ParentRef = ptrStr("nonexistent")
	errs := ValidateImportSchema(s)
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "not found")
}

func TestValidateImportSchema_ParentDeclaredLater(t *testing.T) {
	s := validMinimalSchema()
	s.Items = []ItemImport{
		{Ref: "child", ParentRef: ptrStr("parent"), Title: "Child"},
		{Ref: "parent", Title: "Parent"},
	}
	errs := ValidateImportSchema(s)
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "must appear earlier")
}

func TestValidateImportSchema_ItemFieldBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *ImportSchema)
		wantMsg string
	}{
		{"bad status", func(s *ImportSchema) { s.Items[0].Status = "paused" }, "invalid value"},
		{"percent too high", func(s *ImportSchema) { s.Items[0].PercentComplete = ptrInt(130) }, "out of range"},
		{"percent negative", func(s *ImportSchema) { s.Items[0].PercentComplete = ptrInt(-5) }, "out of range"},
		{"negative planned_cost", func(s *ImportSchema) { s.Items[0].PlannedCost = ptrFloat(-100) }, "planned_cost must not be negative"},
		{"negative actual_cost", func(s *ImportSchema) { s.Items[0].ActualCost = ptrFloat(-1) }, "actual_cost must not be negative"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validMinimalSchema()
			tc.mutate(s)
			errs := ValidateImportSchema(s)
			assert.NotEmpty(t, errs)
			found := false
			for _, e := range errs {
				if contains(e.Error(), tc.wantMsg) {
					found = true
					break
				}
			}
			assert.True(t, found, "expected error containing %q, got %v", tc.wantMsg, errs)
		})
	}
}

func TestValidateImportSchema_CostItemChecks(t *testing.T) {
	tests := []struct {
		name    string
		item    CostItemImport
		wantMsg string
	}{
		{"unknown item_ref", CostItemImport{ItemRef: "ghost", Description: "X", PlannedAmount: 10}, "not found in items"},
		{"missing item_ref", CostItemImport{Description: "X", PlannedAmount: 10}, "item_ref is required"},
		{"missing description", CostItemImport{ItemRef: "p1", PlannedAmount: 10}, "description is required"},
		{"negative planned", CostItemImport{ItemRef: "p1", Description: "X", PlannedAmount: -10}, "planned_amount must not be negative"},
		{"negative actual", CostItemImport{ItemRef: "p1", Description: "X", ActualAmount: -1}, "actual_amount must not be negative"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validMinimalSchema()
			s.CostItems = []CostItemImport{tc.item}
			errs := ValidateImportSchema(s)
			assert.NotEmpty(t, errs)
			found := false
			for _, e := range errs {
				if contains(e.Error(), tc.wantMsg) {
					found = true
					break
				}
			}
			assert.True(t, found, "expected error containing %q, got %v", tc.wantMsg, errs)
		})
	}
}

func TestValidateImportSchema_AllocationChecks(t *testing.T) {
	tests := []struct {
		name    string
		alloc   AllocationImport
		wantMsg string
	}{
		{"unknown item_ref", AllocationImport{ItemRef: "ghost", InvoiceRef: "INV-1", Amount: 10}, "not found in items"},
		{"missing invoice_ref", AllocationImport{ItemRef: "p1", Amount: 10}, "invoice_ref is required"},
		{"negative amount", AllocationImport{ItemRef: "p1", InvoiceRef: "INV-1", Amount: -10}, "amount must not be negative"},
		{"percentage too high", AllocationImport{ItemRef: "p1", InvoiceRef: "INV-1", Amount: 10, Percentage: 180}, "out of range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validMinimalSchema()
			s.Allocations = []AllocationImport{tc.alloc}
			errs := ValidateImportSchema(s)
			assert.NotEmpty(t, errs)
			found := false
			for _, e := range errs {
				if contains(e.Error(), tc.wantMsg) {
					found = true
					break
				}
			}
			assert.True(t, found, "expected error containing %q, got %v", tc.wantMsg, errs)
		})
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && searchSubstring(s, substr)
}

func searchSubstring(s, sub string) bool {
	for i := 0; i <= len(s)-len(sub); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
