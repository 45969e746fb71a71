package domain

import "sort"

// WatchMode records an explicit watch or unwatch decision.
type WatchMode string

const (
	WatchModeWatch   WatchMode = "watch"
	WatchModeUnwatch WatchMode = "unwatch"
)

type Watcher struct {
	TaskID string
	UserID string
	Mode   WatchMode
}

// NotifySources are the membership sets a task's notify-set is derived from.
type NotifySources struct {
	CreatorID string
	Assignees []string
	Watching  []string
	Unwatched []string
	ActorID   string
}

// SourcesFor builds the notify sources of task from its explicit watcher rows.
func SourcesFor(task Task, watchers []Watcher, actorID string) NotifySources {
	src := NotifySources{
		CreatorID: task.CreatorID,
		Assignees: task.AssigneeIDs,
		ActorID:   actorID,
	}
	for _, w := range watchers {
		switch w.Mode {
		case WatchModeWatch:
			src.Watching = append(src.Watching, w.UserID)
		case WatchModeUnwatch:
			src.Unwatched = append(src.Unwatched, w.UserID)
		}
	}
	return src
}

// ResolveNotifySet returns the sorted recipients for an event:
// (creator ∪ assignees ∪ watching) − unwatched − actor.
// An explicit unwatch always wins over implicit membership.
func ResolveNotifySet(src NotifySources) []string {
	members := make(map[string]struct{})
	add := func(id string) {
		if id != "" {
			members[id] = struct{}{}
		}
	}
	add(src.CreatorID)
	for _, id := range src.Assignees {
		add(id)
	}
	for _, id := range src.Watching {
		add(id)
	}
	for _, id := range src.Unwatched {
		delete(members, id)
	}
	delete(members, src.ActorID)

	out := make([]string, 0, len(members))
	for id := range members {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsWatching applies the same precedence for a single user, without the
// actor exclusion.
func IsWatching(task Task, watchers []Watcher, userID string) bool {
	for _, w := range watchers {
		if w.UserID != userID {
			continue
		}
		return w.Mode == WatchModeWatch
	}
	return task.CreatorID == userID || task.HasAssignee(userID)
}
