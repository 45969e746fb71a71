package memory

import (
	"context"
	"sort"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ordering"
)

type taskRepo struct{ v view }

func (r taskRepo) GetByID(ctx context.Context, id string) (domain.Task, error) {
	var task domain.Task
	err := r.v.do(ctx, func(st *state) error {
		t, ok := st.tasks[id]
		if !ok {
			return domain.ErrTaskNotFound
		}
		task = copyTask(t)
		return nil
	})
	return task, err
}

func (r taskRepo) GetForUpdate(ctx context.Context, id string) (domain.Task, error) {
	return r.GetByID(ctx, id)
}

func (r taskRepo) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.v.do(ctx, func(st *state) error {
		tasks = make([]domain.Task, 0, len(st.tasks))
		for _, t := range st.tasks {
			if matchesFilter(t, filter) {
				tasks = append(tasks, copyTask(t))
			}
		}
		return nil
	})
	sort.Slice(tasks, func(i, j int) bool {
		return ordering.Less(
			ordering.Item{ID: tasks[i].ID, SortOrder: tasks[i].SortOrder, CreatedAt: tasks[i].CreatedAt},
			ordering.Item{ID: tasks[j].ID, SortOrder: tasks[j].SortOrder, CreatedAt: tasks[j].CreatedAt},
		)
	})
	return tasks, err
}

func matchesFilter(t domain.Task, f domain.TaskFilter) bool {
	switch {
	case f.Backlog:
		if t.SectionID != nil {
			return false
		}
	case f.SectionID != nil:
		if t.SectionID == nil || *t.SectionID != *f.SectionID {
			return false
		}
	}
	if f.StatusID != nil && t.StatusID != *f.StatusID {
		return false
	}
	if f.PriorityID != nil && t.PriorityID != *f.PriorityID {
		return false
	}
	if f.AssigneeID != nil && !t.HasAssignee(*f.AssigneeID) {
		return false
	}
	return true
}

func (r taskRepo) ListOrderItems(ctx context.Context, sectionID *string) ([]ordering.Item, error) {
	var items []ordering.Item
	err := r.v.do(ctx, func(st *state) error {
		for _, t := range st.tasks {
			if sameSection(t.SectionID, sectionID) {
				items = append(items, ordering.Item{ID: t.ID, SortOrder: t.SortOrder, CreatedAt: t.CreatedAt})
			}
		}
		return nil
	})
	ordering.Sort(items)
	return items, err
}

func sameSection(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r taskRepo) Insert(ctx context.Context, task domain.Task) error {
	return r.v.do(ctx, func(st *state) error {
		st.saveTask(task.ID)
		st.tasks[task.ID] = copyTask(task)
		return nil
	})
}

func (r taskRepo) Update(ctx context.Context, task domain.Task) error {
	return r.v.do(ctx, func(st *state) error {
		current, ok := st.tasks[task.ID]
		if !ok {
			return domain.ErrTaskNotFound
		}
		task.SectionID = current.SectionID
		task.SortOrder = current.SortOrder
		st.saveTask(task.ID)
		st.tasks[task.ID] = copyTask(task)
		return nil
	})
}

func (r taskRepo) UpdatePosition(ctx context.Context, id string, sectionID *string, sortOrder float64) error {
	return r.v.do(ctx, func(st *state) error {
		t, ok := st.tasks[id]
		if !ok {
			return domain.ErrTaskNotFound
		}
		if sectionID != nil {
			value := *sectionID
			sectionID = &value
		}
		t.SectionID = sectionID
		t.SortOrder = sortOrder
		t.UpdatedAt = time.Now().UTC()
		st.saveTask(id)
		st.tasks[id] = t
		return nil
	})
}

func (r taskRepo) UpdateSortOrders(ctx context.Context, orders map[string]float64) error {
	return r.v.do(ctx, func(st *state) error {
		for id, order := range orders {
			if t, ok := st.tasks[id]; ok {
				t.SortOrder = order
				st.saveTask(id)
				st.tasks[id] = t
			}
		}
		return nil
	})
}

func (r taskRepo) ClearSection(ctx context.Context, sectionID string) error {
	return r.v.do(ctx, func(st *state) error {
		for id, t := range st.tasks {
			if t.SectionID != nil && *t.SectionID == sectionID {
				t.SectionID = nil
				st.saveTask(id)
				st.tasks[id] = t
			}
		}
		return nil
	})
}

func (r taskRepo) CountByConfig(ctx context.Context, kind domain.ConfigKind, id string) (int, error) {
	var count int
	err := r.v.do(ctx, func(st *state) error {
		for _, t := range st.tasks {
			ref := t.StatusID
			if kind == domain.ConfigKindPriority {
				ref = t.PriorityID
			}
			if ref == id {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r taskRepo) Delete(ctx context.Context, id string) error {
	return r.v.do(ctx, func(st *state) error {
		if _, ok := st.tasks[id]; !ok {
			return domain.ErrTaskNotFound
		}
		st.saveTask(id)
		delete(st.tasks, id)
		return nil
	})
}

type sectionRepo struct{ v view }

func (r sectionRepo) GetByID(ctx context.Context, id string) (domain.Section, error) {
	var section domain.Section
	err := r.v.do(ctx, func(st *state) error {
		s, ok := st.sections[id]
		if !ok {
			return domain.ErrSectionNotFound
		}
		section = s
		return nil
	})
	return section, err
}

func (r sectionRepo) List(ctx context.Context) ([]domain.Section, error) {
	var sections []domain.Section
	err := r.v.do(ctx, func(st *state) error {
		sections = make([]domain.Section, 0, len(st.sections))
		for _, s := range st.sections {
			sections = append(sections, s)
		}
		return nil
	})
	sort.Slice(sections, func(i, j int) bool {
		return ordering.Less(
			ordering.Item{ID: sections[i].ID, SortOrder: sections[i].SortOrder, CreatedAt: sections[i].CreatedAt},
			ordering.Item{ID: sections[j].ID, SortOrder: sections[j].SortOrder, CreatedAt: sections[j].CreatedAt},
		)
	})
	return sections, err
}

func (r sectionRepo) Insert(ctx context.Context, section domain.Section) error {
	return r.v.do(ctx, func(st *state) error {
		st.saveSection(section.ID)
		st.sections[section.ID] = section
		return nil
	})
}

func (r sectionRepo) Update(ctx context.Context, section domain.Section) error {
	return r.v.do(ctx, func(st *state) error {
		current, ok := st.sections[section.ID]
		if !ok {
			return domain.ErrSectionNotFound
		}
		section.SortOrder = current.SortOrder
		st.saveSection(section.ID)
		st.sections[section.ID] = section
		return nil
	})
}

func (r sectionRepo) UpdateSortOrders(ctx context.Context, orders map[string]float64) error {
	return r.v.do(ctx, func(st *state) error {
		for id, order := range orders {
			if s, ok := st.sections[id]; ok {
				s.SortOrder = order
				st.saveSection(id)
				st.sections[id] = s
			}
		}
		return nil
	})
}

func (r sectionRepo) Delete(ctx context.Context, id string) error {
	return r.v.do(ctx, func(st *state) error {
		if _, ok := st.sections[id]; !ok {
			return domain.ErrSectionNotFound
		}
		st.saveSection(id)
		delete(st.sections, id)
		return nil
	})
}

type configRepo struct{ v view }

func (r configRepo) List(ctx context.Context, kind domain.ConfigKind) ([]domain.ConfigEntry, error) {
	var entries []domain.ConfigEntry
	err := r.v.do(ctx, func(st *state) error {
		entries = make([]domain.ConfigEntry, 0, len(st.config[kind]))
		for _, e := range st.config[kind] {
			entries = append(entries, e)
		}
		return nil
	})
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SortOrder != entries[j].SortOrder {
			return entries[i].SortOrder < entries[j].SortOrder
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, err
}

func (r configRepo) GetByID(ctx context.Context, kind domain.ConfigKind, id string) (domain.ConfigEntry, error) {
	var entry domain.ConfigEntry
	err := r.v.do(ctx, func(st *state) error {
		e, ok := st.config[kind][id]
		if !ok {
			return kind.NotFoundErr()
		}
		entry = e
		return nil
	})
	return entry, err
}

func (r configRepo) Insert(ctx context.Context, entry domain.ConfigEntry) error {
	return r.v.do(ctx, func(st *state) error {
		st.saveConfig(entry.Kind, entry.ID)
		st.config[entry.Kind][entry.ID] = entry
		return nil
	})
}

func (r configRepo) Update(ctx context.Context, entry domain.ConfigEntry) error {
	return r.v.do(ctx, func(st *state) error {
		current, ok := st.config[entry.Kind][entry.ID]
		if !ok {
			return entry.Kind.NotFoundErr()
		}
		entry.Code = current.Code
		st.saveConfig(entry.Kind, entry.ID)
		st.config[entry.Kind][entry.ID] = entry
		return nil
	})
}

func (r configRepo) ClearDefault(ctx context.Context, kind domain.ConfigKind) error {
	return r.v.do(ctx, func(st *state) error {
		for id, e := range st.config[kind] {
			if e.IsDefault {
				e.IsDefault = false
				st.saveConfig(kind, id)
				st.config[kind][id] = e
			}
		}
		return nil
	})
}

func (r configRepo) Delete(ctx context.Context, kind domain.ConfigKind, id string) error {
	return r.v.do(ctx, func(st *state) error {
		if _, ok := st.config[kind][id]; !ok {
			return kind.NotFoundErr()
		}
		st.saveConfig(kind, id)
		delete(st.config[kind], id)
		return nil
	})
}

type watcherRepo struct{ v view }

func (r watcherRepo) ListByTask(ctx context.Context, taskID string) ([]domain.Watcher, error) {
	var watchers []domain.Watcher
	err := r.v.do(ctx, func(st *state) error {
		for userID, mode := range st.watchers[taskID] {
			watchers = append(watchers, domain.Watcher{TaskID: taskID, UserID: userID, Mode: mode})
		}
		return nil
	})
	sort.Slice(watchers, func(i, j int) bool { return watchers[i].UserID < watchers[j].UserID })
	return watchers, err
}

func (r watcherRepo) Upsert(ctx context.Context, watcher domain.Watcher) error {
	return r.v.do(ctx, func(st *state) error {
		st.saveWatchers(watcher.TaskID)
		users, ok := st.watchers[watcher.TaskID]
		if !ok {
			users = make(map[string]domain.WatchMode)
			st.watchers[watcher.TaskID] = users
		}
		users[watcher.UserID] = watcher.Mode
		return nil
	})
}

func (r watcherRepo) DeleteByTask(ctx context.Context, taskID string) error {
	return r.v.do(ctx, func(st *state) error {
		st.saveWatchers(taskID)
		delete(st.watchers, taskID)
		return nil
	})
}

type commentRepo struct{ v view }

func (r commentRepo) ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.v.do(ctx, func(st *state) error {
		comments = append([]domain.Comment{}, st.comments[taskID]...)
		return nil
	})
	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, err
}

func (r commentRepo) Insert(ctx context.Context, comment domain.Comment) error {
	return r.v.do(ctx, func(st *state) error {
		st.saveComments(comment.TaskID)
		st.comments[comment.TaskID] = append(st.comments[comment.TaskID], comment)
		return nil
	})
}

func (r commentRepo) DeleteByTask(ctx context.Context, taskID string) error {
	return r.v.do(ctx, func(st *state) error {
		st.saveComments(taskID)
		delete(st.comments, taskID)
		return nil
	})
}

type notificationRepo struct{ v view }

func (r notificationRepo) GetByID(ctx context.Context, id string) (domain.Notification, error) {
	var notification domain.Notification
	err := r.v.do(ctx, func(st *state) error {
		n, ok := st.notifications[id]
		if !ok {
			return domain.ErrNotificationNotFound
		}
		notification = n
		return nil
	})
	return notification, err
}

func (r notificationRepo) ListByUser(ctx context.Context, userID string, filter domain.NotificationFilter) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := r.v.do(ctx, func(st *state) error {
		for _, n := range st.notifications {
			if n.UserID != userID || (filter.UnreadOnly && n.IsRead) {
				continue
			}
			notifications = append(notifications, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(notifications, func(i, j int) bool {
		if !notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		}
		return notifications[i].ID > notifications[j].ID
	})
	if filter.Limit > 0 && len(notifications) > filter.Limit {
		notifications = notifications[:filter.Limit]
	}
	return notifications, nil
}

func (r notificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.v.do(ctx, func(st *state) error {
		for _, n := range st.notifications {
			if n.UserID == userID && !n.IsRead {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r notificationRepo) Insert(ctx context.Context, notification domain.Notification) error {
	return r.v.do(ctx, func(st *state) error {
		st.saveNotification(notification.ID)
		st.notifications[notification.ID] = notification
		return nil
	})
}

func (r notificationRepo) MarkRead(ctx context.Context, id string) error {
	return r.v.do(ctx, func(st *state) error {
		n, ok := st.notifications[id]
		if !ok {
			return domain.ErrNotificationNotFound
		}
		n.IsRead = true
		st.saveNotification(id)
		st.notifications[id] = n
		return nil
	})
}

func (r notificationRepo) MarkAllRead(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.v.do(ctx, func(st *state) error {
		for id, n := range st.notifications {
			if n.UserID == userID && !n.IsRead {
				n.IsRead = true
				st.saveNotification(id)
				st.notifications[id] = n
				count++
			}
		}
		return nil
	})
	return count, err
}
