package service_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/adapter/cache"
	"taskboard/internal/adapter/memory"
	"taskboard/internal/app/service"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ordering"
	"taskboard/internal/core/ports"

	"github.com/stretchr/testify/require"
)

const (
	userU = "user-u"
	userV = "user-v"
	userW = "user-w"
)

type env struct {
	store         *memory.Store
	configs       *service.ConfigService
	tasks         *service.TaskService
	ordering      *service.OrderingService
	sections      *service.SectionService
	watchers      *service.WatcherService
	notifications *service.NotificationService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	store.Seed(memory.DefaultConfig()...)
	return newEnvWith(t, store, store)
}

// newEnvWith lets tests swap the unit of work for one with injected faults.
func newEnvWith(t *testing.T, store *memory.Store, uow ports.UnitOfWork) *env {
	t.Helper()
	logger := zap.NewNop()
	engine := ordering.NewEngine(ordering.Config{})

	configs := service.NewConfigService(uow, cache.NewMemoryConfigCache(time.Minute), 50*time.Millisecond, logger)
	watchers := service.NewWatcherService(uow)
	notifications := service.NewNotificationService(uow, watchers, 4, logger)

	return &env{
		store:         store,
		configs:       configs,
		tasks:         service.NewTaskService(uow, configs, engine, notifications, 50*time.Millisecond, logger),
		ordering:      service.NewOrderingService(uow, engine, logger),
		sections:      service.NewSectionService(uow, engine, logger),
		watchers:      watchers,
		notifications: notifications,
	}
}

func (e *env) section(t *testing.T, name string) domain.Section {
	t.Helper()
	section, err := e.sections.CreateSection(context.Background(), domain.CreateSectionInput{Name: name})
	require.NoError(t, err)
	return section
}

func (e *env) task(t *testing.T, actor, title string, sectionID *string) domain.Task {
	t.Helper()
	task, err := e.tasks.CreateTask(context.Background(), actor, domain.CreateTaskInput{Title: title, SectionID: sectionID})
	require.NoError(t, err)
	return task
}

func (e *env) inbox(t *testing.T, userID string) []domain.Notification {
	t.Helper()
	notifications, err := e.notifications.ListForUser(context.Background(), userID, domain.NotificationFilter{})
	require.NoError(t, err)
	return notifications
}

func taskIDs(tasks []domain.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func ptr[T any](v T) *T {
	return &v
}
