package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mazen-hassani/masar2-sub000/internal/domain"
	"github.com/mazen-hassani/masar2-sub000/internal/repository"
)

// resolveProject turns a user-typed project reference into a project.
// References match in order: short ID (case-insensitive), exact UUID, then
// unique UUID prefix across all projects including archived ones.
func resolveProject(ctx context.Context, app *App, ref string) (*domain.Project, error) {
	p, err := app.Projects.GetByShortID(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if _, parseErr := uuid.Parse(ref); parseErr == nil {
		return app.Projects.GetByID(ctx, ref)
	}

	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(ref)
	var matches []*domain.Project
	for _, cand := range projects {
		if strings.HasPrefix(strings.ToLower(cand.ID), lower) {
			matches = append(matches, cand)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("project not found: %q", ref)
	default:
		return nil, fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveItem turns a user-typed WBS item reference into an item. A leading
// "#" or a bare number resolves as a sequence within projectRef; anything
// else is treated as a UUID or UUID prefix. Sequence lookups require a
// project reference because sequences are only unique per project.
func resolveItem(ctx context.Context, app *App, projectRef, ref string) (*domain.WBSItem, error) {
	seqRef := strings.TrimPrefix(ref, "#")
	if seq, err := strconv.Atoi(seqRef); err == nil {
		if projectRef == "" {
			return nil, fmt.Errorf("numeric ID #%d requires project context (use --project with a project reference)", seq)
		}
		p, err := resolveProject(ctx, app, projectRef)
		if err != nil {
			return nil, err
		}
		return app.WBS.GetBySeq(ctx, p.ID, seq)
	}

	item, err := app.WBS.GetByID(ctx, ref)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if projectRef == "" {
		return nil, fmt.Errorf("WBS item not found: %q", ref)
	}

	p, perr := resolveProject(ctx, app, projectRef)
	if perr != nil {
		return nil, perr
	}
	items, lerr := app.WBS.ListByProject(ctx, p.ID)
	if lerr != nil {
		return nil, lerr
	}
	lower := strings.ToLower(ref)
	var matches []*domain.WBSItem
	for _, cand := range items {
		if strings.HasPrefix(strings.ToLower(cand.ID), lower) {
			matches = append(matches, cand)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("WBS item not found: %q", ref)
	default:
		return nil, fmt.Errorf("item ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveFinanceEntity maps an entity reference plus a --type flag to the
// validated ID the finance services expect, along with a display name.
func resolveFinanceEntity(ctx context.Context, app *App, entityType, projectRef, ref string) (id, name string, err error) {
	switch domain.EntityType(entityType) {
	case domain.EntityProject:
		p, err := resolveProject(ctx, app, ref)
		if err != nil {
			return "", "", err
		}
		return p.ID, p.Name, nil
	case domain.EntityWBSItem:
		item, err := resolveItem(ctx, app, projectRef, ref)
		if err != nil {
			return "", "", err
		}
		return item.ID, fmt.Sprintf("%s %s", item.DisplayRef(), item.Title), nil
	}
	return "", "", fmt.Errorf("unknown entity type %q (expected project or wbs_item)", entityType)
}
