package syncclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskboard/internal/adapter/http/dto"
)

func fixedClock(v *View, at time.Time) {
	v.now = func() time.Time { return at }
}

func serverTask(id, status string, sortOrder float64) dto.TaskItem {
	return dto.TaskItem{ID: id, Title: id, StatusID: status, SortOrder: sortOrder, AssigneeIDs: []string{}}
}

func TestView_OptimisticConfirm(t *testing.T) {
	view := NewView()
	view.Reconcile([]dto.TaskItem{serverTask("a", "status-todo", 1000)}, time.Now())

	view.ApplyOptimistic("a", func(task *dto.TaskItem) { task.StatusID = "status-done" })

	rec, ok := view.Get("a")
	require.True(t, ok)
	require.True(t, rec.Pending)
	require.Equal(t, "status-done", rec.Task.StatusID)

	view.Confirm(serverTask("a", "status-done", 1000))

	rec, _ = view.Get("a")
	require.False(t, rec.Pending)
	require.Equal(t, "status-done", rec.Task.StatusID)
}

func TestView_RollbackRestoresServerState(t *testing.T) {
	view := NewView()
	view.Reconcile([]dto.TaskItem{serverTask("a", "status-todo", 1000)}, time.Now())

	view.ApplyOptimistic("a", func(task *dto.TaskItem) { task.StatusID = "status-done" })
	view.ApplyOptimistic("a", func(task *dto.TaskItem) { task.SortOrder = 5 })
	view.Rollback("a")

	rec, ok := view.Get("a")
	require.True(t, ok)
	require.False(t, rec.Pending)
	require.Equal(t, "status-todo", rec.Task.StatusID)
	require.Equal(t, 1000.0, rec.Task.SortOrder)
}

func TestView_RollbackDropsOptimisticCreate(t *testing.T) {
	view := NewView()

	view.ApplyOptimistic("tmp-1", func(task *dto.TaskItem) { task.Title = "draft" })
	require.Equal(t, 1, view.Len())

	view.Rollback("tmp-1")
	require.Equal(t, 0, view.Len())
}

func TestView_Reconcile(t *testing.T) {
	fetchStarted := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	view := NewView()
	view.Reconcile([]dto.TaskItem{
		serverTask("kept", "status-todo", 1000),
		serverTask("deleted", "status-todo", 2000),
		serverTask("settled", "status-todo", 3000),
		serverTask("stale-pending", "status-todo", 4000),
		serverTask("in-flight", "status-todo", 6000),
	}, fetchStarted.Add(-time.Minute))

	fixedClock(view, fetchStarted.Add(-time.Second))
	view.ApplyOptimistic("settled", func(task *dto.TaskItem) { task.StatusID = "status-done" })
	view.ApplyOptimistic("stale-pending", func(task *dto.TaskItem) { task.StatusID = "status-done" })

	fixedClock(view, fetchStarted.Add(time.Second))
	view.ApplyOptimistic("in-flight", func(task *dto.TaskItem) { task.StatusID = "status-done" })
	view.ApplyOptimistic("fresh-create", func(task *dto.TaskItem) { task.Title = "new" })

	view.Reconcile([]dto.TaskItem{
		serverTask("kept", "status-in-progress", 1000),
		serverTask("settled", "status-in-progress", 3000),
		serverTask("added", "status-todo", 5000),
		serverTask("in-flight", "status-in-progress", 6000),
	}, fetchStarted)

	rec, ok := view.Get("kept")
	require.True(t, ok)
	require.Equal(t, "status-in-progress", rec.Task.StatusID)

	_, ok = view.Get("deleted")
	require.False(t, ok)

	_, ok = view.Get("added")
	require.True(t, ok)

	// Edited before the fetch started: the server copy wins.
	rec, ok = view.Get("settled")
	require.True(t, ok)
	require.False(t, rec.Pending)
	require.Equal(t, "status-in-progress", rec.Task.StatusID)

	// Edited while the fetch was in flight: optimistic state survives and
	// rollback lands on the new server copy.
	rec, ok = view.Get("in-flight")
	require.True(t, ok)
	require.True(t, rec.Pending)
	require.Equal(t, "status-done", rec.Task.StatusID)
	view.Rollback("in-flight")
	rec, _ = view.Get("in-flight")
	require.False(t, rec.Pending)
	require.Equal(t, "status-in-progress", rec.Task.StatusID)

	// Edited before the fetch and gone upstream.
	_, ok = view.Get("stale-pending")
	require.False(t, ok)

	// Created while the fetch was in flight.
	rec, ok = view.Get("fresh-create")
	require.True(t, ok)
	require.True(t, rec.Pending)
}

func TestView_LostResponseSettlesOnNextFetch(t *testing.T) {
	edited := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	view := NewView()
	view.Reconcile([]dto.TaskItem{{ID: "a", Title: "server"}}, edited.Add(-time.Minute))

	fixedClock(view, edited)
	view.ApplyOptimistic("a", func(task *dto.TaskItem) { task.Title = "optimistic" })

	for i := 1; i <= 3; i++ {
		view.Reconcile([]dto.TaskItem{{ID: "a", Title: "server"}}, edited.Add(time.Duration(i)*time.Second))
	}

	rec, ok := view.Get("a")
	require.True(t, ok)
	require.False(t, rec.Pending)
	require.Equal(t, "server", rec.Task.Title)
}

func TestView_RecordsInBoardOrder(t *testing.T) {
	view := NewView()
	view.Reconcile([]dto.TaskItem{
		{ID: "c", SortOrder: 2000, CreatedAt: "2026-03-01T10:00:00Z"},
		{ID: "b", SortOrder: 1000, CreatedAt: "2026-03-01T11:00:00Z"},
		{ID: "a", SortOrder: 1000, CreatedAt: "2026-03-01T11:00:00Z"},
		{ID: "d", SortOrder: 1000, CreatedAt: "2026-03-01T09:00:00Z"},
	}, time.Now())

	require.Equal(t, []string{"d", "a", "b", "c"}, recordIDs(view))
}

func TestView_RecordsBreakTiesOnSubsecondCreation(t *testing.T) {
	view := NewView()
	view.Reconcile([]dto.TaskItem{
		{ID: "a", SortOrder: 1000, CreatedAt: "2026-03-01T11:00:00.000002Z"},
		{ID: "b", SortOrder: 1000, CreatedAt: "2026-03-01T11:00:00.000001Z"},
	}, time.Now())

	require.Equal(t, []string{"b", "a"}, recordIDs(view))
}

func TestView_RecordsGroupBySection(t *testing.T) {
	doing, done := "sec-doing", "sec-done"
	view := NewView()
	view.Reconcile([]dto.TaskItem{
		{ID: "doing-1", SectionID: &doing, SortOrder: 2000},
		{ID: "doing-2", SectionID: &doing, SortOrder: 3000},
		{ID: "done-1", SectionID: &done, SortOrder: 1000},
		{ID: "backlog-1", SortOrder: 500},
	}, time.Now())

	local := "sec-new"
	view.ApplyOptimistic("moved", func(task *dto.TaskItem) {
		task.SectionID = &local
		task.SortOrder = 1
	})

	require.Equal(t, []string{"doing-1", "doing-2", "done-1", "moved", "backlog-1"}, recordIDs(view))
}

func recordIDs(view *View) []string {
	records := view.Records()
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.Task.ID)
	}
	return ids
}

func TestView_GetReturnsCopy(t *testing.T) {
	view := NewView()
	view.Reconcile([]dto.TaskItem{{ID: "a", AssigneeIDs: []string{"user-u"}}}, time.Now())

	rec, _ := view.Get("a")
	rec.Task.AssigneeIDs[0] = "user-x"

	again, _ := view.Get("a")
	require.Equal(t, "user-u", again.Task.AssigneeIDs[0])
}
