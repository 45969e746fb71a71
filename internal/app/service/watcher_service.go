package service

import (
	"context"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// WatcherService is the Watcher Registry. It owns explicit watch rows; the
// implicit membership of creator and assignees is derived from the task.
type WatcherService struct {
	uow ports.UnitOfWork
}

func NewWatcherService(uow ports.UnitOfWork) *WatcherService {
	return &WatcherService{uow: uow}
}

var _ ports.WatcherService = (*WatcherService)(nil)

func (s *WatcherService) IsWatching(ctx context.Context, taskID, userID string) (bool, error) {
	task, watchers, err := s.load(ctx, s.uow, taskID)
	if err != nil {
		return false, err
	}
	return domain.IsWatching(task, watchers, userID), nil
}

// ToggleWatch flips the effective watch state and returns the new one.
func (s *WatcherService) ToggleWatch(ctx context.Context, taskID, userID string) (bool, error) {
	var watching bool
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		task, watchers, err := s.loadForUpdate(ctx, tx, taskID)
		if err != nil {
			return err
		}
		watching = !domain.IsWatching(task, watchers, userID)
		return tx.Watchers().Upsert(ctx, watcherRow(taskID, userID, watching))
	})
	return watching, err
}

// SetWatch records an explicit decision. An explicit unwatch suppresses
// notifications even for the creator and assignees.
func (s *WatcherService) SetWatch(ctx context.Context, taskID, userID string, watch bool) (bool, error) {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		if _, err := tx.Tasks().GetForUpdate(ctx, taskID); err != nil {
			return err
		}
		return tx.Watchers().Upsert(ctx, watcherRow(taskID, userID, watch))
	})
	if err != nil {
		return false, err
	}
	return watch, nil
}

func (s *WatcherService) ResolveNotifySet(ctx context.Context, taskID, actorID string) ([]string, error) {
	task, watchers, err := s.load(ctx, s.uow, taskID)
	if err != nil {
		return nil, err
	}
	return domain.ResolveNotifySet(domain.SourcesFor(task, watchers, actorID)), nil
}

func (s *WatcherService) load(ctx context.Context, repos ports.Repositories, taskID string) (domain.Task, []domain.Watcher, error) {
	task, err := repos.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, nil, err
	}
	watchers, err := repos.Watchers().ListByTask(ctx, taskID)
	if err != nil {
		return domain.Task{}, nil, err
	}
	return task, watchers, nil
}

func (s *WatcherService) loadForUpdate(ctx context.Context, tx ports.Repositories, taskID string) (domain.Task, []domain.Watcher, error) {
	task, err := tx.Tasks().GetForUpdate(ctx, taskID)
	if err != nil {
		return domain.Task{}, nil, err
	}
	watchers, err := tx.Watchers().ListByTask(ctx, taskID)
	if err != nil {
		return domain.Task{}, nil, err
	}
	return task, watchers, nil
}

func watcherRow(taskID, userID string, watch bool) domain.Watcher {
	mode := domain.WatchModeUnwatch
	if watch {
		mode = domain.WatchModeWatch
	}
	return domain.Watcher{TaskID: taskID, UserID: userID, Mode: mode}
}
