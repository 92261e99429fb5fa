package app

import "github.com/mazen-hassani/masar2-sub000/internal/domain"

// ImportResult holds the outcome of a project import.
type ImportResult struct {
	Project         *domain.Project
	ItemCount       int
	CostItemCount   int
	AllocationCount int
	Rebuild         *RebuildReport
}

type ImportErrorCode string

const (
	ImportErrFileRead   ImportErrorCode = "FILE_READ"
	ImportErrParse      ImportErrorCode = "PARSE"
	ImportErrValidation ImportErrorCode = "VALIDATION"
	ImportErrConflict   ImportErrorCode = "CONFLICT"
)

type ImportError struct {
	Code    ImportErrorCode
	Message string
}

func (e *ImportError) Error() string {
	return string(e.Code) + ": " + e.Message
}
