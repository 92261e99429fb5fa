package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/app"
	"github.com/mazen-hassani/masar2-sub000/internal/repository"
)

type aggregationService struct {
	items    repository.WBSItemRepo
	observer UseCaseObserver
}

func NewAggregationService(items repository.WBSItemRepo, observers ...UseCaseObserver) AggregationService {
	return &aggregationService{
		items:    items,
		observer: useCaseObserverOrNoop(observers),
	}
}

// AggregateNode recomputes one node's derived fields from its live children
// and persists them. A childless node gets the neutral record, which clears
// any aggregates left over from children it no longer has.
func (s *aggregationService) AggregateNode(ctx context.Context, nodeID string, opts aggregation.Options) (*aggregation.NodeUpdate, error) {
	node, err := s.items.GetByID(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("loading node: %w", err)
	}
	children, err := s.items.ListChildren(ctx, node.ID)
	if err != nil {
		return nil, fmt.Errorf("listing children of %s: %w", node.DisplayRef(), err)
	}

	up := aggregation.AggregateNode(aggregation.SnapshotAll(children), opts)
	if err := s.items.UpdateAggregates(ctx, node.ID, up, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("persisting aggregates for %s: %w", node.DisplayRef(), err)
	}
	return &up, nil
}

// PropagateFromItem walks from the changed item's parent to the root,
// recomputing and persisting at every level. The walk is iterative and
// depth-capped. Returns the number of levels updated.
func (s *aggregationService) PropagateFromItem(ctx context.Context, itemID string, opts aggregation.Options) (int, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("loading item: %w", err)
	}

	levels := 0
	parentID := item.ParentID
	for depth := 0; parentID != nil; depth++ {
		if depth >= maxTreeDepth {
			return levels, fmt.Errorf("parent chain above %s exceeds depth %d: hierarchy contains a cycle", item.DisplayRef(), maxTreeDepth)
		}
		parent, err := s.items.GetByID(ctx, *parentID)
		if err != nil {
			return levels, fmt.Errorf("loading ancestor: %w", err)
		}
		children, err := s.items.ListChildren(ctx, parent.ID)
		if err != nil {
			return levels, fmt.Errorf("listing children of %s: %w", parent.DisplayRef(), err)
		}
		up := aggregation.AggregateNode(aggregation.SnapshotAll(children), opts)
		if err := s.items.UpdateAggregates(ctx, parent.ID, up, time.Now().UTC()); err != nil {
			return levels, fmt.Errorf("persisting aggregates for %s: %w", parent.DisplayRef(), err)
		}
		levels++
		parentID = parent.ParentID
	}
	return levels, nil
}

// RebuildHierarchy recomputes every parent in the project bottom-up. Items
// arrive deepest level first, and each update is applied to the in-memory
// copy as well, so by the time a parent is reached its children already
// carry this run's values. A node that fails to persist is recorded in the
// report and skipped; only the initial listing aborts the rebuild.
func (s *aggregationService) RebuildHierarchy(ctx context.Context, projectID string, opts aggregation.Options) (report *app.RebuildReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": projectID}
	defer func() {
		if report != nil {
			fields["nodes_updated"] = report.NodesUpdated
			fields["node_errors"] = len(report.Errors)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "rebuild-hierarchy",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	items, err := s.items.ListByProjectDeepestFirst(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project items: %w", err)
	}

	report = &app.RebuildReport{ProjectID: projectID, GeneratedAt: startedAt}
	byParent := groupByParent(items)
	for _, it := range items {
		children := byParent[it.ID]
		if len(children) == 0 {
			continue
		}
		now := time.Now().UTC()
		up := aggregation.AggregateNode(aggregation.SnapshotAll(children), opts)
		if uerr := s.items.UpdateAggregates(ctx, it.ID, up, now); uerr != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", it.DisplayRef(), uerr))
			continue
		}
		applyAggregates(it, up, now)
		report.NodesUpdated++
	}
	return report, nil
}

func (s *aggregationService) GetAggregationResult(ctx context.Context, nodeID string, opts aggregation.Options) (*aggregation.Result, error) {
	node, err := s.items.GetByID(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("loading node: %w", err)
	}
	children, err := s.items.ListChildren(ctx, node.ID)
	if err != nil {
		return nil, fmt.Errorf("listing children of %s: %w", node.DisplayRef(), err)
	}
	res := aggregation.Compute(node.ID, aggregation.SnapshotAll(children), opts, time.Now().UTC())
	return &res, nil
}

func (s *aggregationService) GetAggregationSummary(ctx context.Context, nodeID string) (*aggregation.Summary, error) {
	node, err := s.items.GetByID(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("loading node: %w", err)
	}
	children, err := s.items.ListChildren(ctx, node.ID)
	if err != nil {
		return nil, fmt.Errorf("listing children of %s: %w", node.DisplayRef(), err)
	}
	sum := aggregation.Summarize(node.ID, aggregation.SnapshotAll(children))
	return &sum, nil
}
