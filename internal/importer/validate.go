package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)

	itemRefs := make(map[string]bool)
	errs = append(errs, validateItems(schema.Items, itemRefs)...)
	errs = append(errs, validateCostItems(schema.CostItems, itemRefs)...)
	errs = append(errs, validateAllocations(schema.Allocations, itemRefs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.ShortID == "" {
		errs = append(errs, fmt.Errorf("project.short_id is required"))
	} else {
		probe := domain.Project{ShortID: strings.ToUpper(p.ShortID)}
		if err := probe.ValidateShortID(); err != nil {
			errs = append(errs, fmt.Errorf("project.short_id: %v", err))
		}
	}
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if p.StartDate == "" {
		errs = append(errs, fmt.Errorf("project.start_date is required"))
	} else if _, err := time.Parse("2006-01-02", p.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("project.start_date: invalid date format %q (expected YYYY-MM-DD)", p.StartDate))
	}
	if p.TargetDate != nil {
		if _, err := time.Parse("2006-01-02", *p.TargetDate); err != nil {
			errs = append(errs, fmt.Errorf("project.target_date: invalid date format %q (expected YYYY-MM-DD)", *p.TargetDate))
		} else if p.StartDate != "" {
			start, startErr := time.Parse("2006-01-02", p.StartDate)
			target, targetErr := time.Parse("2006-01-02", *p.TargetDate)
			if startErr == nil && targetErr == nil && !target.After(start) {
				errs = append(errs, fmt.Errorf("project.target_date %q must be after start_date %q", *p.TargetDate, p.StartDate))
			}
		}
	}

	return errs
}

// validateItems fills itemRefs while iterating, so a parent_ref only resolves
// against earlier entries. Top-down ordering makes parent cycles impossible.
func validateItems(items []ItemImport, itemRefs map[string]bool) []error {
	var errs []error

	for i, it := range items {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if itemRefs[it.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, it.Ref))
		} else {
			itemRefs[it.Ref] = true
		}

		if it.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if it.Status != "" && !domain.ValidWBSStatuses[it.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, it.Status))
		}
		if it.PercentComplete != nil && (*it.PercentComplete < 0 || *it.PercentComplete > 100) {
			errs = append(errs, fmt.Errorf("%s.percent_complete: %d out of range 0-100", prefix, *it.PercentComplete))
		}

		if it.ParentRef != nil && *it.ParentRef != "" {
			if !itemRefs[*it.ParentRef] {
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in items list)", prefix, *it.ParentRef))
			}
		}

		errs = append(errs, validateOptionalDate(prefix+".planned_start", it.PlannedStart)...)
		errs = append(errs, validateOptionalDate(prefix+".planned_end", it.PlannedEnd)...)
		errs = append(errs, validateOptionalDate(prefix+".actual_start", it.ActualStart)...)
		errs = append(errs, validateOptionalDate(prefix+".actual_end", it.ActualEnd)...)

		if it.PlannedCost != nil && *it.PlannedCost < 0 {
			errs = append(errs, fmt.Errorf("%s.planned_cost must not be negative", prefix))
		}
		if it.ActualCost != nil && *it.ActualCost < 0 {
			errs = append(errs, fmt.Errorf("%s.actual_cost must not be negative", prefix))
		}
	}

	return errs
}

func validateCostItems(costItems []CostItemImport, itemRefs map[string]bool) []error {
	var errs []error

	for i, ci := range costItems {
		prefix := fmt.Sprintf("cost_items[%d]", i)

		if ci.ItemRef == "" {
			errs = append(errs, fmt.Errorf("%s.item_ref is required", prefix))
		} else if !itemRefs[ci.ItemRef] {
			errs = append(errs, fmt.Errorf("%s.item_ref: ref %q not found in items", prefix, ci.ItemRef))
		}

		if ci.Description == "" {
			errs = append(errs, fmt.Errorf("%s.description is required", prefix))
		}
		if ci.PlannedAmount < 0 {
			errs = append(errs, fmt.Errorf("%s.planned_amount must not be negative", prefix))
		}
		if ci.ActualAmount < 0 {
			errs = append(errs, fmt.Errorf("%s.actual_amount must not be negative", prefix))
		}
	}

	return errs
}

func validateAllocations(allocations []AllocationImport, itemRefs map[string]bool) []error {
	var errs []error

	for i, a := range allocations {
		prefix := fmt.Sprintf("allocations[%d]", i)

		if a.ItemRef == "" {
			errs = append(errs, fmt.Errorf("%s.item_ref is required", prefix))
		} else if !itemRefs[a.ItemRef] {
			errs = append(errs, fmt.Errorf("%s.item_ref: ref %q not found in items", prefix, a.ItemRef))
		}

		if a.InvoiceRef == "" {
			errs = append(errs, fmt.Errorf("%s.invoice_ref is required", prefix))
		}
		if a.Amount < 0 {
			errs = append(errs, fmt.Errorf("%s.amount must not be negative", prefix))
		}
		if a.Percentage < 0 || a.Percentage > 100 {
			errs = append(errs, fmt.Errorf("%s.percentage: %.1f out of range 0-100", prefix, a.Percentage))
		}
	}

	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
