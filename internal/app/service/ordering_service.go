package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ordering"
	"taskboard/internal/core/ports"
)

// OrderingService applies positional mutations. Every write to sort_order in
// a scope runs inside one transaction holding that scope's lock, so neighbour
// reads are never stale and a renormalization is all or nothing.
type OrderingService struct {
	uow    ports.UnitOfWork
	engine *ordering.Engine
	logger *zap.Logger
}

func NewOrderingService(uow ports.UnitOfWork, engine *ordering.Engine, logger *zap.Logger) *OrderingService {
	return &OrderingService{uow: uow, engine: engine, logger: loggerOrGlobal(logger)}
}

var _ ports.OrderingService = (*OrderingService)(nil)

// MoveTask places a task in the destination section (nil is the backlog)
// relative to an anchor task of that same section. The source section is
// never renumbered.
func (s *OrderingService) MoveTask(ctx context.Context, id string, input domain.MoveTaskInput) (domain.Task, error) {
	if input.AfterTaskID != nil && input.BeforeTaskID != nil {
		return domain.Task{}, domain.ErrConflictingAnchors
	}

	var anchor ordering.Anchor
	var anchorID string
	switch {
	case input.AfterTaskID != nil:
		anchor.After, anchorID = *input.AfterTaskID, *input.AfterTaskID
	case input.BeforeTaskID != nil:
		anchor.Before, anchorID = *input.BeforeTaskID, *input.BeforeTaskID
	}
	if anchorID == id {
		return domain.Task{}, domain.ErrInvalidReorderTarget
	}

	var moved domain.Task
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		scope := ports.TaskScope(input.SectionID)
		if err := tx.Locks().LockScope(ctx, scope); err != nil {
			return err
		}
		if input.SectionID != nil {
			if _, err := tx.Sections().GetByID(ctx, *input.SectionID); err != nil {
				return err
			}
		}
		task, err := tx.Tasks().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		items, err := tx.Tasks().ListOrderItems(ctx, input.SectionID)
		if err != nil {
			return err
		}
		placement, err := s.engine.Place(excludeItem(items, id), anchor)
		if errors.Is(err, ordering.ErrAnchorNotInScope) {
			return s.taskAnchorError(ctx, tx, anchorID)
		}
		if err != nil {
			return err
		}

		if placement.Renormalized != nil {
			s.logger.Info("renormalizing task scope",
				zap.String("scope", scope),
				zap.Int("items", len(placement.Renormalized)),
			)
			if err := tx.Tasks().UpdateSortOrders(ctx, placement.Renormalized); err != nil {
				return err
			}
		}
		if err := tx.Tasks().UpdatePosition(ctx, id, input.SectionID, placement.SortOrder); err != nil {
			return err
		}

		task.SectionID = input.SectionID
		task.SortOrder = placement.SortOrder
		task.UpdatedAt = now()
		moved = task
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return moved, nil
}

// MoveSection places a section after another one; nil moves it to the head.
func (s *OrderingService) MoveSection(ctx context.Context, id string, afterSectionID *string) (domain.Section, error) {
	anchor := ordering.Anchor{Head: true}
	if afterSectionID != nil {
		if *afterSectionID == id {
			return domain.Section{}, domain.ErrInvalidReorderTarget
		}
		anchor = ordering.Anchor{After: *afterSectionID}
	}

	var moved domain.Section
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		if err := tx.Locks().LockScope(ctx, ports.ScopeSections); err != nil {
			return err
		}
		section, err := tx.Sections().GetByID(ctx, id)
		if err != nil {
			return err
		}
		sections, err := tx.Sections().List(ctx)
		if err != nil {
			return err
		}

		placement, err := s.engine.Place(excludeItem(sectionItems(sections), id), anchor)
		if errors.Is(err, ordering.ErrAnchorNotInScope) {
			return domain.ErrSectionNotFound
		}
		if err != nil {
			return err
		}

		orders := placement.Renormalized
		if orders == nil {
			orders = make(map[string]float64, 1)
		} else {
			s.logger.Info("renormalizing section list", zap.Int("items", len(orders)))
		}
		orders[id] = placement.SortOrder
		if err := tx.Sections().UpdateSortOrders(ctx, orders); err != nil {
			return err
		}

		section.SortOrder = placement.SortOrder
		moved = section
		return nil
	})
	if err != nil {
		return domain.Section{}, err
	}
	return moved, nil
}

// ReorderSections rewrites the whole section list. orderedIDs must name every
// existing section exactly once.
func (s *OrderingService) ReorderSections(ctx context.Context, orderedIDs []string) ([]domain.Section, error) {
	var reordered []domain.Section
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		if err := tx.Locks().LockScope(ctx, ports.ScopeSections); err != nil {
			return err
		}
		sections, err := tx.Sections().List(ctx)
		if err != nil {
			return err
		}
		if !sameIDSet(sections, orderedIDs) {
			return domain.ErrInvalidOrderedIDs
		}

		orders := s.engine.Sequence(orderedIDs)
		if err := tx.Sections().UpdateSortOrders(ctx, orders); err != nil {
			return err
		}
		for i := range sections {
			sections[i].SortOrder = orders[sections[i].ID]
		}
		sortSections(sections)
		reordered = sections
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reordered, nil
}

// taskAnchorError tells a missing anchor apart from one living elsewhere.
func (s *OrderingService) taskAnchorError(ctx context.Context, tx ports.Repositories, anchorID string) error {
	if _, err := tx.Tasks().GetByID(ctx, anchorID); err != nil {
		return err
	}
	return domain.ErrInvalidReorderTarget
}

func excludeItem(items []ordering.Item, id string) []ordering.Item {
	out := items[:0:0]
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func sectionItems(sections []domain.Section) []ordering.Item {
	items := make([]ordering.Item, 0, len(sections))
	for _, section := range sections {
		items = append(items, ordering.Item{ID: section.ID, SortOrder: section.SortOrder, CreatedAt: section.CreatedAt})
	}
	return items
}

func sortSections(sections []domain.Section) {
	items := sectionItems(sections)
	ordering.Sort(items)
	rank := make(map[string]int, len(items))
	for i, item := range items {
		rank[item.ID] = i
	}
	sorted := make([]domain.Section, len(sections))
	for _, section := range sections {
		sorted[rank[section.ID]] = section
	}
	copy(sections, sorted)
}

func sameIDSet(sections []domain.Section, ids []string) bool {
	if len(sections) != len(ids) {
		return false
	}
	known := make(map[string]bool, len(sections))
	for _, section := range sections {
		known[section.ID] = false
	}
	for _, id := range ids {
		seen, ok := known[id]
		if !ok || seen {
			return false
		}
		known[id] = true
	}
	return true
}
