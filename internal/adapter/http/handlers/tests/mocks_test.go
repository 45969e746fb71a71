package tests

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskboard/internal/core/domain"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, actorID string, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, actorID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, actorID, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, actorID, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) AssignSection(ctx context.Context, id string, sectionID *string) (domain.Task, error) {
	args := m.Called(ctx, id, sectionID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) AddComment(ctx context.Context, actorID, taskID, body string) (domain.Comment, error) {
	args := m.Called(ctx, actorID, taskID, body)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *taskServiceMock) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	args := m.Called(ctx, taskID)

	var comments []domain.Comment
	if value := args.Get(0); value != nil {
		comments = value.([]domain.Comment)
	}
	return comments, args.Error(1)
}

type orderingServiceMock struct {
	mock.Mock
}

func (m *orderingServiceMock) MoveTask(ctx context.Context, id string, input domain.MoveTaskInput) (domain.Task, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *orderingServiceMock) MoveSection(ctx context.Context, id string, afterSectionID *string) (domain.Section, error) {
	args := m.Called(ctx, id, afterSectionID)
	return args.Get(0).(domain.Section), args.Error(1)
}

func (m *orderingServiceMock) ReorderSections(ctx context.Context, orderedIDs []string) ([]domain.Section, error) {
	args := m.Called(ctx, orderedIDs)

	var sections []domain.Section
	if value := args.Get(0); value != nil {
		sections = value.([]domain.Section)
	}
	return sections, args.Error(1)
}

type configServiceMock struct {
	mock.Mock
}

func (m *configServiceMock) ListStatuses(ctx context.Context) ([]domain.ConfigEntry, error) {
	return m.List(ctx, domain.ConfigKindStatus)
}

func (m *configServiceMock) ListPriorities(ctx context.Context) ([]domain.ConfigEntry, error) {
	return m.List(ctx, domain.ConfigKindPriority)
}

func (m *configServiceMock) GetDefaultStatus(ctx context.Context) (domain.ConfigEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ConfigEntry), args.Error(1)
}

func (m *configServiceMock) GetDefaultPriority(ctx context.Context) (domain.ConfigEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ConfigEntry), args.Error(1)
}

func (m *configServiceMock) List(ctx context.Context, kind domain.ConfigKind) ([]domain.ConfigEntry, error) {
	args := m.Called(ctx, kind)

	var entries []domain.ConfigEntry
	if value := args.Get(0); value != nil {
		entries = value.([]domain.ConfigEntry)
	}
	return entries, args.Error(1)
}

func (m *configServiceMock) Get(ctx context.Context, kind domain.ConfigKind, id string) (domain.ConfigEntry, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(domain.ConfigEntry), args.Error(1)
}

func (m *configServiceMock) Create(ctx context.Context, kind domain.ConfigKind, input domain.CreateConfigInput) (domain.ConfigEntry, error) {
	args := m.Called(ctx, kind, input)
	return args.Get(0).(domain.ConfigEntry), args.Error(1)
}

func (m *configServiceMock) Update(ctx context.Context, kind domain.ConfigKind, id string, input domain.UpdateConfigInput) (domain.ConfigEntry, error) {
	args := m.Called(ctx, kind, id, input)
	return args.Get(0).(domain.ConfigEntry), args.Error(1)
}

func (m *configServiceMock) Delete(ctx context.Context, kind domain.ConfigKind, id string) error {
	return m.Called(ctx, kind, id).Error(0)
}

type watcherServiceMock struct {
	mock.Mock
}

func (m *watcherServiceMock) IsWatching(ctx context.Context, taskID, userID string) (bool, error) {
	args := m.Called(ctx, taskID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *watcherServiceMock) ToggleWatch(ctx context.Context, taskID, userID string) (bool, error) {
	args := m.Called(ctx, taskID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *watcherServiceMock) SetWatch(ctx context.Context, taskID, userID string, watch bool) (bool, error) {
	args := m.Called(ctx, taskID, userID, watch)
	return args.Bool(0), args.Error(1)
}

func (m *watcherServiceMock) ResolveNotifySet(ctx context.Context, taskID, actorID string) ([]string, error) {
	args := m.Called(ctx, taskID, actorID)

	var ids []string
	if value := args.Get(0); value != nil {
		ids = value.([]string)
	}
	return ids, args.Error(1)
}

type notificationServiceMock struct {
	mock.Mock
}

func (m *notificationServiceMock) Notify(ctx context.Context, event domain.Event) {
	m.Called(ctx, event)
}

func (m *notificationServiceMock) ListForUser(ctx context.Context, userID string, filter domain.NotificationFilter) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, filter)

	var notifications []domain.Notification
	if value := args.Get(0); value != nil {
		notifications = value.([]domain.Notification)
	}
	return notifications, args.Error(1)
}

func (m *notificationServiceMock) UnreadCount(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *notificationServiceMock) MarkRead(ctx context.Context, userID, notificationID string) error {
	return m.Called(ctx, userID, notificationID).Error(0)
}

func (m *notificationServiceMock) MarkAllRead(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
