package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/adapter/memory"
	"taskboard/internal/app/service"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ordering"
	"taskboard/internal/core/ports"

	"github.com/stretchr/testify/require"
)

func TestCreateTask_AppliesDefaultsAndAppends(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first := e.task(t, userU, "  first  ", nil)
	require.Equal(t, "first", first.Title)
	require.Equal(t, "status-todo", first.StatusID)
	require.Equal(t, "priority-medium", first.PriorityID)
	require.Equal(t, userU, first.CreatorID)
	require.Nil(t, first.SectionID)

	second, err := e.tasks.CreateTask(ctx, userU, domain.CreateTaskInput{
		Title:       "second",
		StatusID:    ptr("status-done"),
		PriorityID:  ptr("priority-high"),
		AssigneeIDs: []string{userV, userV, ""},
	})
	require.NoError(t, err)
	require.Equal(t, "status-done", second.StatusID)
	require.Equal(t, "priority-high", second.PriorityID)
	require.Equal(t, []string{userV}, second.AssigneeIDs)
	require.Greater(t, second.SortOrder, first.SortOrder)

	watching, err := e.watchers.IsWatching(ctx, first.ID, userU)
	require.NoError(t, err)
	require.True(t, watching)
}

func TestCreateTask_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.tasks.CreateTask(ctx, userU, domain.CreateTaskInput{Title: "   "})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.tasks.CreateTask(ctx, userU, domain.CreateTaskInput{Title: "x", StatusID: ptr("nope")})
	require.ErrorIs(t, err, domain.ErrStatusNotFound)

	_, err = e.tasks.CreateTask(ctx, userU, domain.CreateTaskInput{Title: "x", PriorityID: ptr("nope")})
	require.ErrorIs(t, err, domain.ErrPriorityNotFound)

	_, err = e.tasks.CreateTask(ctx, userU, domain.CreateTaskInput{Title: "x", SectionID: ptr("nope")})
	require.ErrorIs(t, err, domain.ErrSectionNotFound)

	tasks, err := e.tasks.ListTasks(ctx, domain.TaskFilter{})
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestCreateTask_AssigneesAreNotified(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.tasks.CreateTask(ctx, userU, domain.CreateTaskInput{Title: "x", AssigneeIDs: []string{userU, userV}})
	require.NoError(t, err)

	require.Empty(t, e.inbox(t, userU))
	inbox := e.inbox(t, userV)
	require.Len(t, inbox, 1)
	require.Equal(t, domain.EventAssigned, inbox[0].Type)
}

func TestUpdateTask_PartialPatchAndEvents(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	task, err := e.tasks.CreateTask(ctx, userU, domain.CreateTaskInput{Title: "x", Description: ptr("keep me")})
	require.NoError(t, err)

	updated, err := e.tasks.UpdateTask(ctx, userV, task.ID, domain.UpdateTaskInput{
		StatusID:    ptr("status-in-progress"),
		AssigneeIDs: &[]string{userW},
	})
	require.NoError(t, err)
	require.Equal(t, "x", updated.Title)
	require.Equal(t, "keep me", *updated.Description)
	require.Equal(t, "status-in-progress", updated.StatusID)
	require.Equal(t, "priority-medium", updated.PriorityID)
	require.Equal(t, task.SortOrder, updated.SortOrder)

	inboxU := e.inbox(t, userU)
	require.Len(t, inboxU, 2)
	types := []domain.EventType{inboxU[0].Type, inboxU[1].Type}
	require.ElementsMatch(t, []domain.EventType{domain.EventStatusChanged, domain.EventAssigned}, types)
	require.Empty(t, e.inbox(t, userV))
	require.Len(t, e.inbox(t, userW), 2)

	cleared, err := e.tasks.UpdateTask(ctx, userU, task.ID, domain.UpdateTaskInput{DescriptionSet: true})
	require.NoError(t, err)
	require.Nil(t, cleared.Description)

	// Same status again is not a change.
	_, err = e.tasks.UpdateTask(ctx, userV, task.ID, domain.UpdateTaskInput{StatusID: ptr("status-in-progress")})
	require.NoError(t, err)
	require.Len(t, e.inbox(t, userU), 2)
}

func TestUpdateTask_Failures(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	task := e.task(t, userU, "x", nil)

	_, err := e.tasks.UpdateTask(ctx, userU, task.ID, domain.UpdateTaskInput{Title: ptr(" ")})
	require.ErrorIs(t, err, domain.ErrEmptyTitle)

	_, err = e.tasks.UpdateTask(ctx, userU, task.ID, domain.UpdateTaskInput{PriorityID: ptr("nope")})
	require.ErrorIs(t, err, domain.ErrPriorityNotFound)

	_, err = e.tasks.UpdateTask(ctx, userU, "nope", domain.UpdateTaskInput{Title: ptr("y")})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	got, err := e.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, "x", got.Title)
	require.Equal(t, "priority-medium", got.PriorityID)
}

func TestUpdateTask_CommutesWithMove(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	section := e.section(t, "A")
	task := e.task(t, userU, "x", nil)

	_, err := e.ordering.MoveTask(ctx, task.ID, domain.MoveTaskInput{SectionID: &section.ID})
	require.NoError(t, err)
	_, err = e.tasks.UpdateTask(ctx, userU, task.ID, domain.UpdateTaskInput{StatusID: ptr("status-done")})
	require.NoError(t, err)

	got, err := e.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, section.ID, *got.SectionID)
	require.Equal(t, "status-done", got.StatusID)
}

func TestComment_NotifiesCreatorNotAuthor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	task := e.task(t, userU, "T", nil)
	comment, err := e.tasks.AddComment(ctx, userV, task.ID, "looks good")
	require.NoError(t, err)
	require.Equal(t, userV, comment.AuthorID)

	inbox := e.inbox(t, userU)
	require.Len(t, inbox, 1)
	require.Equal(t, domain.EventComment, inbox[0].Type)
	require.Equal(t, task.ID, *inbox[0].TaskID)
	require.Contains(t, inbox[0].Message, "looks good")
	require.Empty(t, e.inbox(t, userV))

	comments, err := e.tasks.ListComments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	_, err = e.tasks.AddComment(ctx, userV, task.ID, "  ")
	require.ErrorIs(t, err, domain.ErrValidation)
	_, err = e.tasks.AddComment(ctx, userV, "nope", "hi")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteTask_CascadesCommentsAndWatchers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	section := e.section(t, "A")
	task := e.task(t, userU, "T", &section.ID)
	_, err := e.tasks.AddComment(ctx, userV, task.ID, "hi")
	require.NoError(t, err)
	_, err = e.watchers.SetWatch(ctx, task.ID, userW, true)
	require.NoError(t, err)

	require.NoError(t, e.tasks.DeleteTask(ctx, task.ID))

	_, err = e.tasks.GetTask(ctx, task.ID)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	comments, err := e.store.Comments().ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Empty(t, comments)
	watchers, err := e.store.Watchers().ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Empty(t, watchers)

	require.ErrorIs(t, e.tasks.DeleteTask(ctx, task.ID), domain.ErrTaskNotFound)
}

func TestAssignSection_KeepsSortOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	section := e.section(t, "A")
	task := e.task(t, userU, "T", nil)

	moved, err := e.tasks.AssignSection(ctx, task.ID, &section.ID)
	require.NoError(t, err)
	require.Equal(t, section.ID, *moved.SectionID)
	require.Equal(t, task.SortOrder, moved.SortOrder)

	back, err := e.tasks.AssignSection(ctx, task.ID, nil)
	require.NoError(t, err)
	require.Nil(t, back.SectionID)

	_, err = e.tasks.AssignSection(ctx, task.ID, ptr("nope"))
	require.ErrorIs(t, err, domain.ErrSectionNotFound)
}

func TestListTasks_GroupsBySectionOrderWithBacklogLast(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	a := e.section(t, "A")
	b := e.section(t, "B")
	backlog := e.task(t, userU, "backlog", nil)
	inB := e.task(t, userU, "in B", &b.ID)
	inA := e.task(t, userU, "in A", &a.ID)

	_, err := e.ordering.ReorderSections(ctx, []string{b.ID, a.ID})
	require.NoError(t, err)

	tasks, err := e.tasks.ListTasks(ctx, domain.TaskFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{inB.ID, inA.ID, backlog.ID}, taskIDs(tasks))

	_, err = e.tasks.UpdateTask(ctx, userU, inA.ID, domain.UpdateTaskInput{AssigneeIDs: &[]string{userV}})
	require.NoError(t, err)
	assigned, err := e.tasks.ListTasks(ctx, domain.TaskFilter{AssigneeID: ptr(userV)})
	require.NoError(t, err)
	require.Equal(t, []string{inA.ID}, taskIDs(assigned))
}

type failingNotifications struct {
	ports.NotificationRepository
}

func (failingNotifications) Insert(context.Context, domain.Notification) error {
	return errors.New("disk full")
}

type faultyStore struct {
	*memory.Store
	notifications ports.NotificationRepository
	config        ports.ConfigRepository
}

func (s faultyStore) Notifications() ports.NotificationRepository {
	if s.notifications != nil {
		return s.notifications
	}
	return s.Store.Notifications()
}

func (s faultyStore) Config() ports.ConfigRepository {
	if s.config != nil {
		return s.config
	}
	return s.Store.Config()
}

func TestUpdateTask_SucceedsWhenFanOutFails(t *testing.T) {
	store := memory.NewStore()
	store.Seed(memory.DefaultConfig()...)
	e := newEnvWith(t, store, faultyStore{Store: store, notifications: failingNotifications{}})
	ctx := context.Background()

	task := e.task(t, userU, "T", nil)
	updated, err := e.tasks.UpdateTask(ctx, userV, task.ID, domain.UpdateTaskInput{StatusID: ptr("status-done")})
	require.NoError(t, err)
	require.Equal(t, "status-done", updated.StatusID)

	_, err = e.tasks.AddComment(ctx, userV, task.ID, "still works")
	require.NoError(t, err)

	count, err := store.Notifications().CountUnread(ctx, userU)
	require.NoError(t, err)
	require.Zero(t, count)
}

type blockingConfig struct {
	ports.ConfigRepository
}

func (blockingConfig) List(ctx context.Context, _ domain.ConfigKind) ([]domain.ConfigEntry, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestCreateTask_ConfigTimeoutIsRetryable(t *testing.T) {
	store := memory.NewStore()
	e := newEnvWith(t, store, faultyStore{Store: store, config: blockingConfig{}})

	start := time.Now()
	_, err := e.tasks.CreateTask(context.Background(), userU, domain.CreateTaskInput{Title: "x"})
	require.ErrorIs(t, err, domain.ErrDependencyUnavailable)
	require.Less(t, time.Since(start), 2*time.Second)

	tasks, err := store.Tasks().List(context.Background(), domain.TaskFilter{})
	require.NoError(t, err)
	require.Empty(t, tasks)
}

// deletingConfigs removes an entry right after handing it out, as a config
// delete committing between lookup and write would.
type deletingConfigs struct {
	*service.ConfigService
}

func (d deletingConfigs) Get(ctx context.Context, kind domain.ConfigKind, id string) (domain.ConfigEntry, error) {
	entry, err := d.ConfigService.Get(ctx, kind, id)
	if err != nil {
		return entry, err
	}
	if err := d.ConfigService.Delete(ctx, kind, id); err != nil {
		return domain.ConfigEntry{}, err
	}
	return entry, nil
}

func TestWriteRejectsConfigDeletedAfterLookup(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	racing := deletingConfigs{ConfigService: e.configs}
	tasks := service.NewTaskService(e.store, racing, ordering.NewEngine(ordering.Config{}), e.notifications, time.Second, zap.NewNop())

	t.Run("update", func(t *testing.T) {
		blocked, err := e.configs.Create(ctx, domain.ConfigKindStatus, domain.CreateConfigInput{Name: "Blocked", Code: "blocked"})
		require.NoError(t, err)
		task := e.task(t, userU, "x", nil)

		_, err = tasks.UpdateTask(ctx, userU, task.ID, domain.UpdateTaskInput{StatusID: ptr(blocked.ID)})
		require.ErrorIs(t, err, domain.ErrStatusNotFound)

		got, err := e.tasks.GetTask(ctx, task.ID)
		require.NoError(t, err)
		require.Equal(t, "status-todo", got.StatusID)
	})

	t.Run("create", func(t *testing.T) {
		high, err := e.configs.Create(ctx, domain.ConfigKindPriority, domain.CreateConfigInput{Name: "Highest", Code: "highest"})
		require.NoError(t, err)

		_, err = tasks.CreateTask(ctx, userU, domain.CreateTaskInput{Title: "y", PriorityID: ptr(high.ID)})
		require.ErrorIs(t, err, domain.ErrPriorityNotFound)

		all, err := e.tasks.ListTasks(ctx, domain.TaskFilter{})
		require.NoError(t, err)
		for _, task := range all {
			require.NotEqual(t, "y", task.Title)
		}
	})
}
