package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithTargetDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.TargetDate = &d
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithDepartment(d string) ProjectOption {
	return func(p *domain.Project) {
		p.Department = d
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:         uuid.New().String(),
		ShortID:    defaultShortID(name),
		Name:       name,
		Department: "engineering",
		StartDate:  now.AddDate(0, -1, 0),
		Status:     domain.ProjectActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WBSItem options
type ItemOption func(*domain.WBSItem)

func WithParent(id string) ItemOption {
	return func(w *domain.WBSItem) {
		w.ParentID = &id
	}
}

func WithSeq(seq int) ItemOption {
	return func(w *domain.WBSItem) {
		w.Seq = seq
	}
}

func WithLevel(level int) ItemOption {
	return func(w *domain.WBSItem) {
		w.Level = level
	}
}

func WithOrderIndex(i int) ItemOption {
	return func(w *domain.WBSItem) {
		w.OrderIndex = i
	}
}

func WithItemStatus(s domain.WBSStatus) ItemOption {
	return func(w *domain.WBSItem) {
		w.Status = s
	}
}

func WithPercent(pct int) ItemOption {
	return func(w *domain.WBSItem) {
		w.PercentComplete = pct
	}
}

func WithPlannedCost(amount float64) ItemOption {
	return func(w *domain.WBSItem) {
		w.PlannedCost = &amount
	}
}

func WithActualCost(amount float64) ItemOption {
	return func(w *domain.WBSItem) {
		w.ActualCost = &amount
	}
}

func WithPlannedWindow(start, end time.Time) ItemOption {
	return func(w *domain.WBSItem) {
		w.PlannedStart = &start
		w.PlannedEnd = &end
	}
}

func WithActualWindow(start, end time.Time) ItemOption {
	return func(w *domain.WBSItem) {
		w.ActualStart = &start
		w.ActualEnd = &end
	}
}

func NewTestItem(projectID, title string, opts ...ItemOption) *domain.WBSItem {
	now := time.Now().UTC()
	w := &domain.WBSItem{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		Status:    domain.WBSNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CostItem options
type CostItemOption func(*domain.CostItem)

func WithCategory(c string) CostItemOption {
	return func(ci *domain.CostItem) {
		ci.Category = c
	}
}

func NewTestCostItem(wbsItemID, description string, planned, actual float64, opts ...CostItemOption) *domain.CostItem {
	now := time.Now().UTC()
	c := &domain.CostItem{
		ID:            uuid.New().String(),
		WBSItemID:     wbsItemID,
		Description:   description,
		Category:      "materials",
		PlannedAmount: planned,
		ActualAmount:  actual,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Allocation options
type AllocationOption func(*domain.InvoiceAllocation)

func WithPercentage(pct float64) AllocationOption {
	return func(a *domain.InvoiceAllocation) {
		a.Percentage = pct
	}
}

func NewTestAllocation(wbsItemID, invoiceRef string, amount float64, opts ...AllocationOption) *domain.InvoiceAllocation {
	a := &domain.InvoiceAllocation{
		ID:         uuid.New().String(),
		WBSItemID:  wbsItemID,
		InvoiceRef: invoiceRef,
		Amount:     amount,
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewTestSnapshot builds a cost snapshot with variance derived from the totals.
func NewTestSnapshot(entityType domain.EntityType, entityID string, planned, actual float64, recordedAt time.Time) *domain.CostSnapshot {
	return &domain.CostSnapshot{
		ID:          uuid.New().String(),
		EntityType:  entityType,
		EntityID:    entityID,
		PlannedCost: planned,
		ActualCost:  actual,
		Variance:    planned - actual,
		RecordedAt:  recordedAt,
	}
}
