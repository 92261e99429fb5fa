package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/app"
	"github.com/mazen-hassani/masar2-sub000/internal/db"
	"github.com/mazen-hassani/masar2-sub000/internal/importer"
	"github.com/mazen-hassani/masar2-sub000/internal/repository"
)

type importService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	agg      AggregationService
	opts     aggregation.Options
	observer UseCaseObserver
}

// NewImportService creates the bulk import service. Writes run inside a
// single transaction on uow; the aggregation rebuild runs after commit.
func NewImportService(
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	agg AggregationService,
	opts aggregation.Options,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		projects: projects,
		uow:      uow,
		agg:      agg,
		opts:     opts,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, &app.ImportError{Code: app.ImportErrFileRead, Message: err.Error()}
		}
		return nil, &app.ImportError{Code: app.ImportErrParse, Message: err.Error()}
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*app.ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-project",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, &app.ImportError{Code: app.ImportErrValidation, Message: formatValidationErrors(errs)}
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	fields["project"] = generated.Project.ShortID
	fields["items"] = len(generated.Items)

	existing, err := s.projects.GetByShortID(ctx, generated.Project.ShortID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking for existing project: %w", err)
	}
	if existing != nil {
		return nil, &app.ImportError{
			Code:    app.ImportErrConflict,
			Message: fmt.Sprintf("project with short ID %s already exists", generated.Project.ShortID),
		}
	}

	err = s.uow.WithinTx(ctx, func(tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txItems := repository.NewSQLiteWBSItemRepo(tx)
		txCostItems := repository.NewSQLiteCostItemRepo(tx)
		txAllocations := repository.NewSQLiteAllocationRepo(tx)

		if err := txProjects.Create(ctx, generated.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, item := range generated.Items {
			if err := txItems.Create(ctx, item); err != nil {
				return fmt.Errorf("creating item %q: %w", item.Title, err)
			}
		}
		for _, ci := range generated.CostItems {
			if err := txCostItems.Create(ctx, ci); err != nil {
				return fmt.Errorf("creating cost item %q: %w", ci.Description, err)
			}
		}
		for _, alloc := range generated.Allocations {
			if err := txAllocations.Create(ctx, alloc); err != nil {
				return fmt.Errorf("creating allocation %q: %w", alloc.InvoiceRef, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The rows are committed at this point. A rebuild failure leaves the
	// derived fields stale; `rebuild` on the new project recovers them.
	report, err := s.agg.RebuildHierarchy(ctx, generated.Project.ID, s.opts)
	if err != nil {
		return nil, fmt.Errorf("rebuilding aggregates after import: %w", err)
	}

	return &app.ImportResult{
		Project:         generated.Project,
		ItemCount:       len(generated.Items),
		CostItemCount:   len(generated.CostItems),
		AllocationCount: len(generated.Allocations),
		Rebuild:         report,
	}, nil
}

func formatValidationErrors(errs []error) string {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return msg
}
