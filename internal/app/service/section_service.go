package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ordering"
	"taskboard/internal/core/ports"
)

type SectionService struct {
	uow    ports.UnitOfWork
	engine *ordering.Engine
	logger *zap.Logger
}

func NewSectionService(uow ports.UnitOfWork, engine *ordering.Engine, logger *zap.Logger) *SectionService {
	return &SectionService{uow: uow, engine: engine, logger: loggerOrGlobal(logger)}
}

var _ ports.SectionService = (*SectionService)(nil)

func (s *SectionService) ListSections(ctx context.Context) ([]domain.Section, error) {
	sections, err := s.uow.Sections().List(ctx)
	if err != nil {
		return nil, err
	}
	sortSections(sections)
	return sections, nil
}

// CreateSection appends the section to the tail of the section list.
func (s *SectionService) CreateSection(ctx context.Context, input domain.CreateSectionInput) (domain.Section, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Section{}, domain.ErrEmptyName
	}

	section := domain.Section{
		ID:        newID(),
		Name:      name,
		Color:     input.Color,
		CreatedAt: now(),
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		if err := tx.Locks().LockScope(ctx, ports.ScopeSections); err != nil {
			return err
		}
		sections, err := tx.Sections().List(ctx)
		if err != nil {
			return err
		}
		section.SortOrder = s.engine.Append(sectionItems(sections))
		return tx.Sections().Insert(ctx, section)
	})
	if err != nil {
		return domain.Section{}, err
	}
	return section, nil
}

func (s *SectionService) UpdateSection(ctx context.Context, id string, input domain.UpdateSectionInput) (domain.Section, error) {
	var updated domain.Section
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		section, err := tx.Sections().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return domain.ErrEmptyName
			}
			section.Name = name
		}
		if input.Color != nil {
			section.Color = *input.Color
		}
		if input.IsCollapsed != nil {
			section.IsCollapsed = *input.IsCollapsed
		}
		if err := tx.Sections().Update(ctx, section); err != nil {
			return err
		}
		updated = section
		return nil
	})
	if err != nil {
		return domain.Section{}, err
	}
	return updated, nil
}

// DeleteSection moves contained tasks to the backlog, keeping their sort
// order, and removes the section. Tasks are never deleted with it.
func (s *SectionService) DeleteSection(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		if err := tx.Locks().LockScope(ctx, ports.ScopeSections); err != nil {
			return err
		}
		if _, err := tx.Sections().GetByID(ctx, id); err != nil {
			return err
		}
		if err := tx.Locks().LockScope(ctx, ports.ScopeBacklog); err != nil {
			return err
		}
		if err := tx.Locks().LockScope(ctx, ports.TaskScope(&id)); err != nil {
			return err
		}
		if err := tx.Tasks().ClearSection(ctx, id); err != nil {
			return err
		}
		s.logger.Info("section deleted", zap.String("section_id", id))
		return tx.Sections().Delete(ctx, id)
	})
}
