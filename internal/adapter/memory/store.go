// Package memory keeps the whole board in process. Transactions serialize on
// a single mutex and roll back through an undo journal, which covers the
// per-scope serialization the MySQL adapter gets from row locks.
package memory

import (
	"context"
	"sync"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type state struct {
	tasks         map[string]domain.Task
	sections      map[string]domain.Section
	config        map[domain.ConfigKind]map[string]domain.ConfigEntry
	watchers      map[string]map[string]domain.WatchMode
	comments      map[string][]domain.Comment
	notifications map[string]domain.Notification

	journal *journal
}

func newState() *state {
	return &state{
		tasks:    make(map[string]domain.Task),
		sections: make(map[string]domain.Section),
		config: map[domain.ConfigKind]map[string]domain.ConfigEntry{
			domain.ConfigKindStatus:   {},
			domain.ConfigKindPriority: {},
		},
		watchers:      make(map[string]map[string]domain.WatchMode),
		comments:      make(map[string][]domain.Comment),
		notifications: make(map[string]domain.Notification),
	}
}

// journal holds the undo steps for the rows the running transaction wrote.
type journal struct {
	undo []func(st *state)
}

func (s *state) record(fn func(st *state)) {
	if s.journal != nil {
		s.journal.undo = append(s.journal.undo, fn)
	}
}

func (s *state) rollback() {
	for i := len(s.journal.undo) - 1; i >= 0; i-- {
		s.journal.undo[i](s)
	}
}

func (s *state) saveTask(id string) {
	prev, ok := s.tasks[id]
	s.record(func(st *state) {
		if ok {
			st.tasks[id] = prev
		} else {
			delete(st.tasks, id)
		}
	})
}

func (s *state) saveSection(id string) {
	prev, ok := s.sections[id]
	s.record(func(st *state) {
		if ok {
			st.sections[id] = prev
		} else {
			delete(st.sections, id)
		}
	})
}

func (s *state) saveConfig(kind domain.ConfigKind, id string) {
	prev, ok := s.config[kind][id]
	s.record(func(st *state) {
		if ok {
			st.config[kind][id] = prev
		} else {
			delete(st.config[kind], id)
		}
	})
}

func (s *state) saveWatchers(taskID string) {
	users, ok := s.watchers[taskID]
	var prev map[string]domain.WatchMode
	if ok {
		prev = make(map[string]domain.WatchMode, len(users))
		for userID, mode := range users {
			prev[userID] = mode
		}
	}
	s.record(func(st *state) {
		if ok {
			st.watchers[taskID] = prev
		} else {
			delete(st.watchers, taskID)
		}
	})
}

func (s *state) saveComments(taskID string) {
	prev, ok := s.comments[taskID]
	s.record(func(st *state) {
		if ok {
			st.comments[taskID] = prev
		} else {
			delete(st.comments, taskID)
		}
	})
}

func (s *state) saveNotification(id string) {
	prev, ok := s.notifications[id]
	s.record(func(st *state) {
		if ok {
			st.notifications[id] = prev
		} else {
			delete(st.notifications, id)
		}
	})
}

type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

var _ ports.UnitOfWork = (*Store)(nil)

// WithinTx runs fn while holding the store lock. Any error undoes the writes
// fn made.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st.journal = &journal{}
	defer func() { s.st.journal = nil }()

	if err := fn(ctx, view{store: s, inTx: true}); err != nil {
		s.st.rollback()
		return err
	}
	return nil
}

func (s *Store) Tasks() ports.TaskRepository                 { return view{store: s}.Tasks() }
func (s *Store) Sections() ports.SectionRepository           { return view{store: s}.Sections() }
func (s *Store) Config() ports.ConfigRepository              { return view{store: s}.Config() }
func (s *Store) Watchers() ports.WatcherRepository           { return view{store: s}.Watchers() }
func (s *Store) Comments() ports.CommentRepository           { return view{store: s}.Comments() }
func (s *Store) Notifications() ports.NotificationRepository { return view{store: s}.Notifications() }
func (s *Store) Locks() ports.ScopeLocker                    { return view{store: s}.Locks() }

// view binds repositories either to a running transaction, where the lock is
// already held, or to auto-commit calls that take it per call.
type view struct {
	store *Store
	inTx  bool
}

func (v view) Tasks() ports.TaskRepository                 { return taskRepo{v} }
func (v view) Sections() ports.SectionRepository           { return sectionRepo{v} }
func (v view) Config() ports.ConfigRepository              { return configRepo{v} }
func (v view) Watchers() ports.WatcherRepository           { return watcherRepo{v} }
func (v view) Comments() ports.CommentRepository           { return commentRepo{v} }
func (v view) Notifications() ports.NotificationRepository { return notificationRepo{v} }
func (v view) Locks() ports.ScopeLocker                    { return scopeLocker{} }

func (v view) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable(err)
	}
	if !v.inTx {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
	}
	return fn(v.store.st)
}

type scopeLocker struct{}

func (scopeLocker) LockScope(ctx context.Context, _ string) error {
	return ctx.Err()
}

func copyTask(t domain.Task) domain.Task {
	if t.AssigneeIDs != nil {
		t.AssigneeIDs = append([]string(nil), t.AssigneeIDs...)
	}
	return t
}
