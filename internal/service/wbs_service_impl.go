package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mazen-hassani/masar2-sub000/internal/aggregation"
	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/repository"
)

type wbsService struct {
	items    repository.WBSItemRepo
	seqs     repository.SequenceAllocator
	agg      AggregationService
	opts     aggregation.Options
	observer UseCaseObserver
}

func NewWBSService(
	items repository.WBSItemRepo,
	seqs repository.SequenceAllocator,
	agg AggregationService,
	opts aggregation.Options,
	observers ...UseCaseObserver,
) WBSService {
	return &wbsService{
		items:    items,
		seqs:     seqs,
		agg:      agg,
		opts:     opts,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *wbsService) Create(ctx context.Context, w *domain.WBSItem) error {
	if w.ProjectID == "" {
		return fmt.Errorf("project ID is required")
	}
	if w.Status == "" {
		w.Status = domain.WBSNotStarted
	}
	if err := w.Validate(); err != nil {
		return err
	}

	if w.ParentID != nil {
		parent, err := s.items.GetByID(ctx, *w.ParentID)
		if err != nil {
			return fmt.Errorf("loading parent: %w", err)
		}
		if parent.ProjectID != w.ProjectID {
			return fmt.Errorf("parent %s belongs to a different project", parent.DisplayRef())
		}
		w.Level = parent.Level + 1
	} else {
		w.Level = 0
	}

	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.Seq == 0 {
		seq, err := s.seqs.NextProjectSeq(ctx, w.ProjectID)
		if err != nil {
			return fmt.Errorf("allocating sequence: %w", err)
		}
		w.Seq = seq
	}
	if w.OrderIndex == 0 {
		siblings, err := s.siblingsOf(ctx, w.ProjectID, w.ParentID)
		if err != nil {
			return fmt.Errorf("listing siblings: %w", err)
		}
		w.OrderIndex = len(siblings)
	}

	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	if err := s.items.Create(ctx, w); err != nil {
		return err
	}

	if w.ParentID != nil {
		if _, err := s.agg.PropagateFromItem(ctx, w.ID, s.opts); err != nil {
			return fmt.Errorf("propagating aggregates: %w", err)
		}
	}
	return nil
}

func (s *wbsService) GetByID(ctx context.Context, id string) (*domain.WBSItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *wbsService) GetBySeq(ctx context.Context, projectID string, seq int) (*domain.WBSItem, error) {
	return s.items.GetBySeq(ctx, projectID, seq)
}

func (s *wbsService) ListByProject(ctx context.Context, projectID string) ([]*domain.WBSItem, error) {
	return s.items.ListByProject(ctx, projectID)
}

func (s *wbsService) ListChildren(ctx context.Context, parentID string) ([]*domain.WBSItem, error) {
	return s.items.ListChildren(ctx, parentID)
}

func (s *wbsService) ListRoots(ctx context.Context, projectID string) ([]*domain.WBSItem, error) {
	return s.items.ListRoots(ctx, projectID)
}

// Tree returns the project's live items nested for display. Items are
// ordered as ListByProject orders them, so children appear in order index
// order under each parent.
func (s *wbsService) Tree(ctx context.Context, projectID string) ([]*TreeNode, error) {
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project items: %w", err)
	}

	nodes := make(map[string]*TreeNode, len(items))
	for _, it := range items {
		nodes[it.ID] = &TreeNode{Item: it}
	}
	var roots []*TreeNode
	for _, it := range items {
		n := nodes[it.ID]
		if it.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		if parent, ok := nodes[*it.ParentID]; ok {
			parent.Children = append(parent.Children, n)
		} else {
			roots = append(roots, n)
		}
	}
	return roots, nil
}

func (s *wbsService) Update(ctx context.Context, w *domain.WBSItem) error {
	existing, err := s.items.GetByID(ctx, w.ID)
	if err != nil {
		return fmt.Errorf("loading item: %w", err)
	}
	if !sameParent(existing.ParentID, w.ParentID) {
		return fmt.Errorf("parent of %s cannot be changed with update (use move)", existing.DisplayRef())
	}
	if err := w.Validate(); err != nil {
		return err
	}

	// Structural fields stay as stored; update touches authored data only.
	w.Seq = existing.Seq
	w.Level = existing.Level
	w.UpdatedAt = time.Now().UTC()
	if err := s.items.Update(ctx, w); err != nil {
		return err
	}

	if w.ParentID != nil {
		if _, err := s.agg.PropagateFromItem(ctx, w.ID, s.opts); err != nil {
			return fmt.Errorf("propagating aggregates: %w", err)
		}
	}
	return nil
}

func (s *wbsService) Move(ctx context.Context, id string, newParentID *string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"item": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "wbs-move",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("loading item: %w", err)
	}
	fields["item"] = item.DisplayRef()
	oldParentID := item.ParentID

	newLevel := 0
	if newParentID != nil {
		if *newParentID == item.ID {
			return fmt.Errorf("cannot move %s under itself", item.DisplayRef())
		}
		parent, perr := s.items.GetByID(ctx, *newParentID)
		if perr != nil {
			return fmt.Errorf("loading new parent: %w", perr)
		}
		if parent.ProjectID != item.ProjectID {
			return fmt.Errorf("cannot move %s into another project", item.DisplayRef())
		}
		if err = s.ensureNotDescendant(ctx, item, parent); err != nil {
			return err
		}
		newLevel = parent.Level + 1
	}

	if sameParent(oldParentID, newParentID) {
		return nil
	}

	siblings, err := s.siblingsOf(ctx, item.ProjectID, newParentID)
	if err != nil {
		return fmt.Errorf("listing siblings: %w", err)
	}

	now := time.Now().UTC()
	levelShift := newLevel - item.Level
	item.ParentID = newParentID
	item.Level = newLevel
	item.OrderIndex = len(siblings)
	item.UpdatedAt = now
	if err = s.items.Update(ctx, item); err != nil {
		return fmt.Errorf("moving %s: %w", item.DisplayRef(), err)
	}

	if levelShift != 0 {
		if err = s.shiftSubtreeLevels(ctx, item.ID, levelShift, now); err != nil {
			return err
		}
	}

	// Both chains need a refresh: the parent the item left and the one it
	// joined.
	if oldParentID != nil {
		if err = s.reaggregateFrom(ctx, *oldParentID); err != nil {
			return err
		}
	}
	if newParentID != nil {
		if err = s.reaggregateFrom(ctx, *newParentID); err != nil {
			return err
		}
	}
	return nil
}

func (s *wbsService) Remove(ctx context.Context, id string) (count int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"item": id}
	defer func() {
		fields["removed"] = count
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "wbs-remove",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("loading item: %w", err)
	}
	fields["item"] = item.DisplayRef()

	count, err = s.items.SoftDeleteSubtree(ctx, id, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("removing %s: %w", item.DisplayRef(), err)
	}

	if item.ParentID != nil {
		if err = s.reaggregateFrom(ctx, *item.ParentID); err != nil {
			return count, err
		}
	}
	return count, nil
}

// reaggregateFrom recomputes a node's own derived fields and then every
// ancestor above it.
func (s *wbsService) reaggregateFrom(ctx context.Context, nodeID string) error {
	if _, err := s.agg.AggregateNode(ctx, nodeID, s.opts); err != nil {
		return fmt.Errorf("reaggregating: %w", err)
	}
	if _, err := s.agg.PropagateFromItem(ctx, nodeID, s.opts); err != nil {
		return fmt.Errorf("propagating aggregates: %w", err)
	}
	return nil
}

// ensureNotDescendant rejects a move whose target parent sits inside the
// moved item's own subtree. The walk up from the candidate is depth-capped.
func (s *wbsService) ensureNotDescendant(ctx context.Context, item, candidate *domain.WBSItem) error {
	cur := candidate
	for depth := 0; ; depth++ {
		if depth >= maxTreeDepth {
			return fmt.Errorf("parent chain above %s exceeds depth %d: hierarchy contains a cycle", candidate.DisplayRef(), maxTreeDepth)
		}
		if cur.ID == item.ID {
			return fmt.Errorf("cannot move %s under its own descendant %s", item.DisplayRef(), candidate.DisplayRef())
		}
		if cur.ParentID == nil {
			return nil
		}
		next, err := s.items.GetByID(ctx, *cur.ParentID)
		if err != nil {
			return fmt.Errorf("walking parent chain: %w", err)
		}
		cur = next
	}
}

func (s *wbsService) shiftSubtreeLevels(ctx context.Context, rootID string, shift int, now time.Time) error {
	frontier := []string{rootID}
	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= maxTreeDepth {
			return fmt.Errorf("subtree under %s exceeds depth %d: hierarchy contains a cycle", rootID, maxTreeDepth)
		}
		var next []string
		for _, id := range frontier {
			children, err := s.items.ListChildren(ctx, id)
			if err != nil {
				return fmt.Errorf("listing children: %w", err)
			}
			for _, c := range children {
				c.Level += shift
				c.UpdatedAt = now
				if err := s.items.Update(ctx, c); err != nil {
					return fmt.Errorf("shifting level of %s: %w", c.DisplayRef(), err)
				}
				next = append(next, c.ID)
			}
		}
		frontier = next
	}
	return nil
}

func (s *wbsService) siblingsOf(ctx context.Context, projectID string, parentID *string) ([]*domain.WBSItem, error) {
	if parentID == nil {
		return s.items.ListRoots(ctx, projectID)
	}
	return s.items.ListChildren(ctx, *parentID)
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
