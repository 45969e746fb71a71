package syncclient

import (
	"sort"
	"sync"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/ordering"
)

// Record is a task as the consumer currently sees it. Pending records carry
// an optimistic edit the server has not confirmed yet.
type Record struct {
	Task    dto.TaskItem
	Pending bool
}

type entry struct {
	task     dto.TaskItem
	pending  bool
	editedAt time.Time
	// snapshot is the last server state; nil for optimistic creations.
	snapshot *dto.TaskItem
}

// View is the local task cache. Conflicting edits resolve last write wins
// on the server; the view only decides what to show until then.
type View struct {
	mu      sync.Mutex
	entries map[string]*entry
	// sectionRank is the section order of the last fetch.
	sectionRank map[string]int
	now         func() time.Time
}

func NewView() *View {
	return &View{
		entries:     make(map[string]*entry),
		sectionRank: make(map[string]int),
		now:         time.Now,
	}
}

// ApplyOptimistic applies mutate to the local copy of id and marks it
// pending. An unknown id starts a new optimistic record.
func (v *View) ApplyOptimistic(id string, mutate func(task *dto.TaskItem)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, ok := v.entries[id]
	if !ok {
		e = &entry{task: dto.TaskItem{ID: id}}
		v.entries[id] = e
	} else if !e.pending {
		snapshot := cloneTask(e.task)
		e.snapshot = &snapshot
	}
	mutate(&e.task)
	e.task.ID = id
	e.pending = true
	e.editedAt = v.now()
}

// Confirm replaces the record with the server answer to the edit.
func (v *View) Confirm(task dto.TaskItem) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries[task.ID] = &entry{task: cloneTask(task)}
}

// Rollback restores the last server state of id, or drops an optimistic
// creation.
func (v *View) Rollback(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, ok := v.entries[id]
	if !ok || !e.pending {
		return
	}
	if e.snapshot == nil {
		delete(v.entries, id)
		return
	}
	v.entries[id] = &entry{task: *e.snapshot}
}

// Reconcile folds a full fetch into the view. A record edited before
// fetchStartedAt takes the server copy and loses its pending tag, so an edit
// whose response never arrived settles on the next fetch. A record edited
// while the fetch was in flight keeps its optimistic state; only its rollback
// snapshot is refreshed, or, when the server does not have it yet, it is kept
// as is.
func (v *View) Reconcile(tasks []dto.TaskItem, fetchStartedAt time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	server := make(map[string]dto.TaskItem, len(tasks))
	v.sectionRank = make(map[string]int)
	for _, task := range tasks {
		server[task.ID] = task
		if task.SectionID != nil {
			if _, ok := v.sectionRank[*task.SectionID]; !ok {
				v.sectionRank[*task.SectionID] = len(v.sectionRank)
			}
		}
	}

	for id, e := range v.entries {
		task, onServer := server[id]
		inFlight := e.pending && e.editedAt.After(fetchStartedAt)
		switch {
		case onServer && inFlight:
			snapshot := cloneTask(task)
			e.snapshot = &snapshot
		case onServer:
			v.entries[id] = &entry{task: cloneTask(task)}
		case inFlight:
		default:
			delete(v.entries, id)
		}
		delete(server, id)
	}

	for id, task := range server {
		v.entries[id] = &entry{task: cloneTask(task)}
	}
}

func (v *View) Get(id string) (Record, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	e, ok := v.entries[id]
	if !ok {
		return Record{}, false
	}
	return Record{Task: cloneTask(e.task), Pending: e.pending}, true
}

// Records lists the view in board order: sections in the order of the last
// fetch, sections only known locally after them by id, the backlog last.
// Within a section records sort by sort order, creation time, then id.
func (v *View) Records() []Record {
	v.mu.Lock()
	records := make([]Record, 0, len(v.entries))
	for _, e := range v.entries {
		records = append(records, Record{Task: cloneTask(e.task), Pending: e.pending})
	}
	sectionRank := v.sectionRank
	v.mu.Unlock()

	type sectionKey struct {
		group int
		rank  int
		id    string
	}
	keyOf := func(task dto.TaskItem) sectionKey {
		if task.SectionID == nil {
			return sectionKey{group: 2}
		}
		if rank, ok := sectionRank[*task.SectionID]; ok {
			return sectionKey{group: 0, rank: rank}
		}
		return sectionKey{group: 1, id: *task.SectionID}
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := keyOf(records[i].Task), keyOf(records[j].Task)
		if a != b {
			if a.group != b.group {
				return a.group < b.group
			}
			if a.rank != b.rank {
				return a.rank < b.rank
			}
			return a.id < b.id
		}
		return ordering.Less(orderItem(records[i].Task), orderItem(records[j].Task))
	})
	return records
}

func orderItem(task dto.TaskItem) ordering.Item {
	// Unparsable timestamps sort as the zero time.
	createdAt, _ := time.Parse(time.RFC3339Nano, task.CreatedAt)
	return ordering.Item{ID: task.ID, SortOrder: task.SortOrder, CreatedAt: createdAt}
}

func (v *View) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.entries)
}

func cloneTask(task dto.TaskItem) dto.TaskItem {
	if task.AssigneeIDs != nil {
		task.AssigneeIDs = append([]string(nil), task.AssigneeIDs...)
	}
	if task.Description != nil {
		value := *task.Description
		task.Description = &value
	}
	if task.SectionID != nil {
		value := *task.SectionID
		task.SectionID = &value
	}
	if task.DueDate != nil {
		value := *task.DueDate
		task.DueDate = &value
	}
	return task
}
