package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

type ConfigService interface {
	ListStatuses(ctx context.Context) ([]domain.ConfigEntry, error)
	ListPriorities(ctx context.Context) ([]domain.ConfigEntry, error)
	GetDefaultStatus(ctx context.Context) (domain.ConfigEntry, error)
	GetDefaultPriority(ctx context.Context) (domain.ConfigEntry, error)
	List(ctx context.Context, kind domain.ConfigKind) ([]domain.ConfigEntry, error)
	Get(ctx context.Context, kind domain.ConfigKind, id string) (domain.ConfigEntry, error)
	Create(ctx context.Context, kind domain.ConfigKind, input domain.CreateConfigInput) (domain.ConfigEntry, error)
	Update(ctx context.Context, kind domain.ConfigKind, id string, input domain.UpdateConfigInput) (domain.ConfigEntry, error)
	Delete(ctx context.Context, kind domain.ConfigKind, id string) error
}

type TaskService interface {
	CreateTask(ctx context.Context, actorID string, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	UpdateTask(ctx context.Context, actorID, id string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	AssignSection(ctx context.Context, id string, sectionID *string) (domain.Task, error)
	AddComment(ctx context.Context, actorID, taskID, body string) (domain.Comment, error)
	ListComments(ctx context.Context, taskID string) ([]domain.Comment, error)
}

type OrderingService interface {
	MoveTask(ctx context.Context, id string, input domain.MoveTaskInput) (domain.Task, error)
	MoveSection(ctx context.Context, id string, afterSectionID *string) (domain.Section, error)
	ReorderSections(ctx context.Context, orderedIDs []string) ([]domain.Section, error)
}

type SectionService interface {
	ListSections(ctx context.Context) ([]domain.Section, error)
	CreateSection(ctx context.Context, input domain.CreateSectionInput) (domain.Section, error)
	UpdateSection(ctx context.Context, id string, input domain.UpdateSectionInput) (domain.Section, error)
	DeleteSection(ctx context.Context, id string) error
}

type WatcherService interface {
	IsWatching(ctx context.Context, taskID, userID string) (bool, error)
	ToggleWatch(ctx context.Context, taskID, userID string) (bool, error)
	SetWatch(ctx context.Context, taskID, userID string, watch bool) (bool, error)
	ResolveNotifySet(ctx context.Context, taskID, actorID string) ([]string, error)
}

type NotificationService interface {
	Notify(ctx context.Context, event domain.Event)
	ListForUser(ctx context.Context, userID string, filter domain.NotificationFilter) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
}
