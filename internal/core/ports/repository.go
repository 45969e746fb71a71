package ports

import (
	"context"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ordering"
)

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (domain.Task, error)
	// GetForUpdate row-locks the task until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	ListOrderItems(ctx context.Context, sectionID *string) ([]ordering.Item, error)
	Insert(ctx context.Context, task domain.Task) error
	Update(ctx context.Context, task domain.Task) error
	UpdatePosition(ctx context.Context, id string, sectionID *string, sortOrder float64) error
	UpdateSortOrders(ctx context.Context, orders map[string]float64) error
	ClearSection(ctx context.Context, sectionID string) error
	CountByConfig(ctx context.Context, kind domain.ConfigKind, id string) (int, error)
	Delete(ctx context.Context, id string) error
}

type SectionRepository interface {
	GetByID(ctx context.Context, id string) (domain.Section, error)
	List(ctx context.Context) ([]domain.Section, error)
	Insert(ctx context.Context, section domain.Section) error
	Update(ctx context.Context, section domain.Section) error
	UpdateSortOrders(ctx context.Context, orders map[string]float64) error
	Delete(ctx context.Context, id string) error
}

type ConfigRepository interface {
	List(ctx context.Context, kind domain.ConfigKind) ([]domain.ConfigEntry, error)
	GetByID(ctx context.Context, kind domain.ConfigKind, id string) (domain.ConfigEntry, error)
	Insert(ctx context.Context, entry domain.ConfigEntry) error
	Update(ctx context.Context, entry domain.ConfigEntry) error
	ClearDefault(ctx context.Context, kind domain.ConfigKind) error
	Delete(ctx context.Context, kind domain.ConfigKind, id string) error
}

type WatcherRepository interface {
	ListByTask(ctx context.Context, taskID string) ([]domain.Watcher, error)
	Upsert(ctx context.Context, watcher domain.Watcher) error
	DeleteByTask(ctx context.Context, taskID string) error
}

type CommentRepository interface {
	ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error)
	Insert(ctx context.Context, comment domain.Comment) error
	DeleteByTask(ctx context.Context, taskID string) error
}

type NotificationRepository interface {
	GetByID(ctx context.Context, id string) (domain.Notification, error)
	ListByUser(ctx context.Context, userID string, filter domain.NotificationFilter) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	Insert(ctx context.Context, notification domain.Notification) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
}

// ScopeLocker serializes sort_order writes per ordering scope. Locks are held
// until the surrounding transaction commits or rolls back.
type ScopeLocker interface {
	LockScope(ctx context.Context, scope string) error
}

type Repositories interface {
	Tasks() TaskRepository
	Sections() SectionRepository
	Config() ConfigRepository
	Watchers() WatcherRepository
	Comments() CommentRepository
	Notifications() NotificationRepository
	Locks() ScopeLocker
}

// UnitOfWork exposes auto-commit repositories and a transactional scope.
// Returning an error from fn rolls every write back.
type UnitOfWork interface {
	Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Repositories) error) error
}

// Ordering scopes.
const (
	ScopeSections = "sections"
	ScopeBacklog  = "backlog"
)

// TaskScope names the lock scope of a section, or the backlog for nil.
func TaskScope(sectionID *string) string {
	if sectionID == nil {
		return ScopeBacklog
	}
	return "section:" + *sectionID
}
