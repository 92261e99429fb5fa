package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for project import.
type ImportSchema struct {
	Project     ProjectImport      `json:"project"`
	Items       []ItemImport       `json:"items"`
	CostItems   []CostItemImport   `json:"cost_items,omitempty"`
	Allocations []AllocationImport `json:"allocations,omitempty"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	ShortID    string  `json:"short_id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	StartDate  string  `json:"start_date"`
	TargetDate *string `json:"target_date,omitempty"`
}

// ItemImport defines a WBS item in the import file. Parent references point
// at earlier entries in the items list, so the hierarchy is written top-down.
type ItemImport struct {
	Ref             string   `json:"ref"`
	ParentRef       *string  `json:"parent_ref,omitempty"`
	Title           string   `json:"title"`
	Order           int      `json:"order"`
	Status          string   `json:"status,omitempty"`
	PercentComplete *int     `json:"percent_complete,omitempty"`
	PlannedStart    *string  `json:"planned_start,omitempty"`
	PlannedEnd      *string  `json:"planned_end,omitempty"`
	ActualStart     *string  `json:"actual_start,omitempty"`
	ActualEnd       *string  `json:"actual_end,omitempty"`
	PlannedCost     *float64 `json:"planned_cost,omitempty"`
	ActualCost      *float64 `json:"actual_cost,omitempty"`
}

// CostItemImport defines a cost line attached to a WBS item.
type CostItemImport struct {
	ItemRef       string  `json:"item_ref"`
	Description   string  `json:"description"`
	Category      string  `json:"category,omitempty"`
	PlannedAmount float64 `json:"planned_amount"`
	ActualAmount  float64 `json:"actual_amount,omitempty"`
}

// AllocationImport defines an invoice allocation against a WBS item.
type AllocationImport struct {
	ItemRef    string  `json:"item_ref"`
	InvoiceRef string  `json:"invoice_ref"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage,omitempty"`
}

// LoadImportSchema reads and parses a project import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
