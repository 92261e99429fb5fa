package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

// GeneratedProject bundles the domain objects produced from one import file.
type GeneratedProject struct {
	Project     *domain.Project
	Items       []*domain.WBSItem
	CostItems   []*domain.CostItem
	Allocations []*domain.InvoiceAllocation
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*GeneratedProject, error) {
	now := time.Now().UTC()

	startDate, err := time.Parse("2006-01-02", schema.Project.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}

	var targetDate *time.Time
	if schema.Project.TargetDate != nil {
		t, err := time.Parse("2006-01-02", *schema.Project.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("parsing target_date: %w", err)
		}
		targetDate = &t
	}

	project := &domain.Project{
		ID:         uuid.New().String(),
		ShortID:    strings.ToUpper(schema.Project.ShortID),
		Name:       schema.Project.Name,
		Department: schema.Project.Department,
		StartDate:  startDate,
		TargetDate: targetDate,
		Status:     domain.ProjectActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	refMap := make(map[string]string) // ref -> UUID
	levelByRef := make(map[string]int)

	// Convert items. Seq follows file order, which the validator guarantees
	// is top-down, so display numbers read in tree order.
	items := make([]*domain.WBSItem, 0, len(schema.Items))
	for i, it := range schema.Items {
		realID := uuid.New().String()
		refMap[it.Ref] = realID

		var parentID *string
		level := 0
		if it.ParentRef != nil && *it.ParentRef != "" {
			if pid, ok := refMap[*it.ParentRef]; ok {
				parentID = &pid
				level = levelByRef[*it.ParentRef] + 1
			}
		}
		levelByRef[it.Ref] = level

		status := it.Status
		if status == "" {
			status = string(domain.WBSNotStarted)
		}

		// Resolve percent complete: explicit value > auto-fill for completed items > 0
		percent := 0
		if it.PercentComplete != nil {
			percent = *it.PercentComplete
		} else if status == string(domain.WBSCompleted) {
			percent = 100
		}

		item := &domain.WBSItem{
			ID:              realID,
			ProjectID:       project.ID,
			Seq:             i + 1,
			ParentID:        parentID,
			Title:           it.Title,
			Level:           level,
			OrderIndex:      it.Order,
			PlannedStart:    parseOptionalDate(it.PlannedStart),
			PlannedEnd:      parseOptionalDate(it.PlannedEnd),
			ActualStart:     parseOptionalDate(it.ActualStart),
			ActualEnd:       parseOptionalDate(it.ActualEnd),
			Status:          domain.WBSStatus(status),
			PercentComplete: percent,
			PlannedCost:     it.PlannedCost,
			ActualCost:      it.ActualCost,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		items = append(items, item)
	}

	// Convert cost items
	costItems := make([]*domain.CostItem, 0, len(schema.CostItems))
	for _, ci := range schema.CostItems {
		itemUUID, ok := refMap[ci.ItemRef]
		if !ok {
			return nil, fmt.Errorf("item_ref %q not found for cost item %q", ci.ItemRef, ci.Description)
		}
		costItems = append(costItems, &domain.CostItem{
			ID:            uuid.New().String(),
			WBSItemID:     itemUUID,
			Description:   ci.Description,
			Category:      ci.Category,
			PlannedAmount: ci.PlannedAmount,
			ActualAmount:  ci.ActualAmount,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	// Convert allocations
	var allocations []*domain.InvoiceAllocation
	for _, a := range schema.Allocations {
		itemUUID, ok := refMap[a.ItemRef]
		if !ok {
			return nil, fmt.Errorf("item_ref %q not found for allocation %q", a.ItemRef, a.InvoiceRef)
		}
		allocations = append(allocations, &domain.InvoiceAllocation{
			ID:         uuid.New().String(),
			WBSItemID:  itemUUID,
			InvoiceRef: a.InvoiceRef,
			Amount:     a.Amount,
			Percentage: a.Percentage,
			CreatedAt:  now,
		})
	}

	return &GeneratedProject{
		Project:     project,
		Items:       items,
		CostItems:   costItems,
		Allocations: allocations,
	}, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
