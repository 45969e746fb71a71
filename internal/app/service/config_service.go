package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const defaultDependencyTimeout = 2 * time.Second

// ConfigService is the Config Store: statuses and priorities behind a
// read-through cache that every write invalidates.
type ConfigService struct {
	uow     ports.UnitOfWork
	cache   ports.ConfigCache
	timeout time.Duration
	logger  *zap.Logger
}

func NewConfigService(uow ports.UnitOfWork, cache ports.ConfigCache, timeout time.Duration, logger *zap.Logger) *ConfigService {
	if timeout <= 0 {
		timeout = defaultDependencyTimeout
	}
	return &ConfigService{uow: uow, cache: cache, timeout: timeout, logger: loggerOrGlobal(logger)}
}

var _ ports.ConfigService = (*ConfigService)(nil)

func (s *ConfigService) ListStatuses(ctx context.Context) ([]domain.ConfigEntry, error) {
	return s.List(ctx, domain.ConfigKindStatus)
}

func (s *ConfigService) ListPriorities(ctx context.Context) ([]domain.ConfigEntry, error) {
	return s.List(ctx, domain.ConfigKindPriority)
}

func (s *ConfigService) GetDefaultStatus(ctx context.Context) (domain.ConfigEntry, error) {
	return s.getDefault(ctx, domain.ConfigKindStatus)
}

func (s *ConfigService) GetDefaultPriority(ctx context.Context) (domain.ConfigEntry, error) {
	return s.getDefault(ctx, domain.ConfigKindPriority)
}

// List returns the entries of kind ordered by sort order. Lookups are bounded
// by the dependency timeout and surface as ErrDependencyUnavailable.
func (s *ConfigService) List(ctx context.Context, kind domain.ConfigKind) ([]domain.ConfigEntry, error) {
	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		if entries, ok := s.cache.Get(ctx, kind); ok {
			return entries, nil
		}
		generation, cacheable = s.cache.Generation(ctx, kind)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	entries, err := s.uow.Config().List(lookupCtx, kind)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	sortEntries(entries)

	if cacheable {
		s.cache.Set(ctx, kind, generation, entries)
	}
	return entries, nil
}

func (s *ConfigService) Get(ctx context.Context, kind domain.ConfigKind, id string) (domain.ConfigEntry, error) {
	entries, err := s.List(ctx, kind)
	if err != nil {
		return domain.ConfigEntry{}, err
	}
	entry, ok := domain.FindEntry(entries, id)
	if !ok {
		return domain.ConfigEntry{}, kind.NotFoundErr()
	}
	return entry, nil
}

func (s *ConfigService) getDefault(ctx context.Context, kind domain.ConfigKind) (domain.ConfigEntry, error) {
	entries, err := s.List(ctx, kind)
	if err != nil {
		return domain.ConfigEntry{}, err
	}
	entry, ok := domain.DefaultEntry(entries)
	if !ok {
		return domain.ConfigEntry{}, kind.NotFoundErr()
	}
	return entry, nil
}

func (s *ConfigService) Create(ctx context.Context, kind domain.ConfigKind, input domain.CreateConfigInput) (domain.ConfigEntry, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.ConfigEntry{}, domain.ErrEmptyName
	}
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return domain.ConfigEntry{}, domain.ErrInvalidConfigCode
	}

	entry := domain.ConfigEntry{
		ID:        newID(),
		Kind:      kind,
		Name:      name,
		Code:      code,
		Color:     input.Color,
		IsDefault: input.IsDefault,
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		existing, err := tx.Config().List(ctx, kind)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			entry.IsDefault = true
		}
		if input.SortOrder != nil {
			entry.SortOrder = *input.SortOrder
		} else {
			entry.SortOrder = len(existing) + 1
		}
		if entry.IsDefault {
			if err := tx.Config().ClearDefault(ctx, kind); err != nil {
				return err
			}
		}
		return tx.Config().Insert(ctx, entry)
	})
	s.invalidate(ctx, kind)
	if err != nil {
		return domain.ConfigEntry{}, err
	}
	return entry, nil
}

// Update edits cosmetic fields. Promoting an entry to default demotes the
// previous one in the same transaction; demoting the default is refused so
// exactly one default always exists.
func (s *ConfigService) Update(ctx context.Context, kind domain.ConfigKind, id string, input domain.UpdateConfigInput) (domain.ConfigEntry, error) {
	var updated domain.ConfigEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		entry, err := tx.Config().GetByID(ctx, kind, id)
		if err != nil {
			return err
		}
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return domain.ErrEmptyName
			}
			entry.Name = name
		}
		if input.Color != nil {
			entry.Color = *input.Color
		}
		if input.SortOrder != nil {
			entry.SortOrder = *input.SortOrder
		}
		if input.IsDefault != nil && *input.IsDefault != entry.IsDefault {
			if !*input.IsDefault {
				return domain.ErrDefaultConfigDemote
			}
			if err := tx.Config().ClearDefault(ctx, kind); err != nil {
				return err
			}
			entry.IsDefault = true
		}
		if err := tx.Config().Update(ctx, entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	s.invalidate(ctx, kind)
	if err != nil {
		return domain.ConfigEntry{}, err
	}
	return updated, nil
}

// Delete refuses while any task references the entry; callers reassign those
// tasks first.
func (s *ConfigService) Delete(ctx context.Context, kind domain.ConfigKind, id string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		entry, err := tx.Config().GetByID(ctx, kind, id)
		if err != nil {
			return err
		}
		refs, err := tx.Tasks().CountByConfig(ctx, kind, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return domain.ErrConfigInUse
		}
		if entry.IsDefault {
			return domain.ErrDefaultConfigDelete
		}
		return tx.Config().Delete(ctx, kind, id)
	})
	s.invalidate(ctx, kind)
	return err
}

func (s *ConfigService) invalidate(ctx context.Context, kind domain.ConfigKind) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, kind)
	s.logger.Debug("config cache invalidated", zap.String("kind", string(kind)))
}

func sortEntries(entries []domain.ConfigEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].SortOrder != entries[j].SortOrder {
			return entries[i].SortOrder < entries[j].SortOrder
		}
		return entries[i].ID < entries[j].ID
	})
}
