package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ordering"
	"taskboard/internal/core/ports"
)

// TaskService is the Task Store. It owns task and comment lifecycles and
// raises notifiable events once a mutation has committed.
type TaskService struct {
	uow     ports.UnitOfWork
	configs ports.ConfigService
	engine  *ordering.Engine
	events  ports.EventDispatcher
	timeout time.Duration
	logger  *zap.Logger
}

func NewTaskService(
	uow ports.UnitOfWork,
	configs ports.ConfigService,
	engine *ordering.Engine,
	events ports.EventDispatcher,
	timeout time.Duration,
	logger *zap.Logger,
) *TaskService {
	if timeout <= 0 {
		timeout = defaultDependencyTimeout
	}
	return &TaskService{
		uow:     uow,
		configs: configs,
		engine:  engine,
		events:  events,
		timeout: timeout,
		logger:  loggerOrGlobal(logger),
	}
}

var _ ports.TaskService = (*TaskService)(nil)

func (s *TaskService) CreateTask(ctx context.Context, actorID string, input domain.CreateTaskInput) (domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Task{}, domain.ErrEmptyTitle
	}

	status, err := s.resolveConfig(ctx, domain.ConfigKindStatus, input.StatusID)
	if err != nil {
		return domain.Task{}, err
	}
	priority, err := s.resolveConfig(ctx, domain.ConfigKindPriority, input.PriorityID)
	if err != nil {
		return domain.Task{}, err
	}

	createdAt := now()
	task := domain.Task{
		ID:          newID(),
		Title:       title,
		Description: input.Description,
		StatusID:    status.ID,
		PriorityID:  priority.ID,
		SectionID:   input.SectionID,
		AssigneeIDs: uniqueStrings(input.AssigneeIDs),
		CreatorID:   actorID,
		DueDate:     input.DueDate,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		if err := tx.Locks().LockScope(ctx, ports.TaskScope(task.SectionID)); err != nil {
			return err
		}
		if task.SectionID != nil {
			if _, err := tx.Sections().GetByID(ctx, *task.SectionID); err != nil {
				return err
			}
		}
		if err := s.requireConfig(ctx, tx, domain.ConfigKindStatus, task.StatusID); err != nil {
			return err
		}
		if err := s.requireConfig(ctx, tx, domain.ConfigKindPriority, task.PriorityID); err != nil {
			return err
		}
		items, err := tx.Tasks().ListOrderItems(ctx, task.SectionID)
		if err != nil {
			return err
		}
		task.SortOrder = s.engine.Append(items)
		return tx.Tasks().Insert(ctx, task)
	})
	if err != nil {
		return domain.Task{}, err
	}

	if len(task.AssigneeIDs) > 0 {
		s.emit(ctx, domain.Event{
			Type:      domain.EventAssigned,
			TaskID:    task.ID,
			TaskTitle: task.Title,
			ActorID:   actorID,
			Payload:   map[string]string{domain.PayloadAssignees: strings.Join(task.AssigneeIDs, ",")},
		})
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return s.uow.Tasks().GetByID(ctx, id)
}

// UpdateTask applies a partial patch. Concurrent patches are last writer wins
// per field: only the fields present in input are written.
func (s *TaskService) UpdateTask(ctx context.Context, actorID, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return domain.Task{}, domain.ErrEmptyTitle
	}

	var newStatus, newPriority domain.ConfigEntry
	if input.StatusID != nil {
		entry, err := s.configs.Get(ctx, domain.ConfigKindStatus, *input.StatusID)
		if err != nil {
			return domain.Task{}, err
		}
		newStatus = entry
	}
	if input.PriorityID != nil {
		entry, err := s.configs.Get(ctx, domain.ConfigKindPriority, *input.PriorityID)
		if err != nil {
			return domain.Task{}, err
		}
		newPriority = entry
	}

	var before, after domain.Task
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		task, err := tx.Tasks().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		before = task
		before.AssigneeIDs = cloneStrings(task.AssigneeIDs)

		// The cached lookup above may predate a concurrent delete.
		if input.StatusID != nil {
			if err := s.requireConfig(ctx, tx, domain.ConfigKindStatus, *input.StatusID); err != nil {
				return err
			}
		}
		if input.PriorityID != nil {
			if err := s.requireConfig(ctx, tx, domain.ConfigKindPriority, *input.PriorityID); err != nil {
				return err
			}
		}

		applyTaskPatch(&task, input)
		task.UpdatedAt = now()
		if err := tx.Tasks().Update(ctx, task); err != nil {
			return err
		}
		after = task
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}

	if before.StatusID != after.StatusID {
		s.emit(ctx, domain.Event{
			Type:      domain.EventStatusChanged,
			TaskID:    after.ID,
			TaskTitle: after.Title,
			ActorID:   actorID,
			Payload: map[string]string{
				domain.PayloadFrom: s.configName(ctx, domain.ConfigKindStatus, before.StatusID),
				domain.PayloadTo:   newStatus.Name,
			},
		})
	}
	if before.PriorityID != after.PriorityID {
		s.emit(ctx, domain.Event{
			Type:      domain.EventPriorityChanged,
			TaskID:    after.ID,
			TaskTitle: after.Title,
			ActorID:   actorID,
			Payload: map[string]string{
				domain.PayloadFrom: s.configName(ctx, domain.ConfigKindPriority, before.PriorityID),
				domain.PayloadTo:   newPriority.Name,
			},
		})
	}
	if added := addedAssignees(before.AssigneeIDs, after.AssigneeIDs); len(added) > 0 {
		s.emit(ctx, domain.Event{
			Type:      domain.EventAssigned,
			TaskID:    after.ID,
			TaskTitle: after.Title,
			ActorID:   actorID,
			Payload:   map[string]string{domain.PayloadAssignees: strings.Join(added, ",")},
		})
	}
	return after, nil
}

// DeleteTask hard deletes the task with its comments and watcher rows.
// Sections and config entries are left untouched.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		if _, err := tx.Tasks().GetForUpdate(ctx, id); err != nil {
			return err
		}
		if err := tx.Comments().DeleteByTask(ctx, id); err != nil {
			return err
		}
		if err := tx.Watchers().DeleteByTask(ctx, id); err != nil {
			return err
		}
		return tx.Tasks().Delete(ctx, id)
	})
}

// ListTasks returns tasks grouped by section order with the backlog last.
func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.uow.Tasks().List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sections, err := s.uow.Sections().List(ctx)
	if err != nil {
		return nil, err
	}
	sortTasks(tasks, sections)
	return tasks, nil
}

// AssignSection relocates a task without renumbering anything; the task keeps
// its sort order and ties resolve through the read order tie-break.
func (s *TaskService) AssignSection(ctx context.Context, id string, sectionID *string) (domain.Task, error) {
	var moved domain.Task
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx ports.Repositories) error {
		if err := tx.Locks().LockScope(ctx, ports.TaskScope(sectionID)); err != nil {
			return err
		}
		if sectionID != nil {
			if _, err := tx.Sections().GetByID(ctx, *sectionID); err != nil {
				return err
			}
		}
		task, err := tx.Tasks().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Tasks().UpdatePosition(ctx, id, sectionID, task.SortOrder); err != nil {
			return err
		}
		task.SectionID = sectionID
		task.UpdatedAt = now()
		moved = task
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return moved, nil
}

func (s *TaskService) AddComment(ctx context.Context, actorID, taskID, body string) (domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}

	task, err := s.uow.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return domain.Comment{}, err
	}

	comment := domain.Comment{
		ID:        newID(),
		TaskID:    taskID,
		AuthorID:  actorID,
		Body:      body,
		CreatedAt: now(),
	}
	if err := s.uow.Comments().Insert(ctx, comment); err != nil {
		return domain.Comment{}, err
	}

	s.emit(ctx, domain.Event{
		Type:      domain.EventComment,
		TaskID:    task.ID,
		TaskTitle: task.Title,
		ActorID:   actorID,
		Payload:   map[string]string{domain.PayloadCommentBody: body},
	})
	return comment, nil
}

func (s *TaskService) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	if _, err := s.uow.Tasks().GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.uow.Comments().ListByTask(ctx, taskID)
}

func (s *TaskService) resolveConfig(ctx context.Context, kind domain.ConfigKind, id *string) (domain.ConfigEntry, error) {
	if id != nil {
		return s.configs.Get(ctx, kind, *id)
	}
	if kind == domain.ConfigKindPriority {
		return s.configs.GetDefaultPriority(ctx)
	}
	return s.configs.GetDefaultStatus(ctx)
}

// requireConfig checks inside tx that the referenced entry still exists.
func (s *TaskService) requireConfig(ctx context.Context, tx ports.Repositories, kind domain.ConfigKind, id string) error {
	lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, err := tx.Config().GetByID(lookupCtx, kind, id)
	return err
}

func (s *TaskService) configName(ctx context.Context, kind domain.ConfigKind, id string) string {
	entry, err := s.configs.Get(ctx, kind, id)
	if err != nil {
		return id
	}
	return entry.Name
}

// emit runs after commit; the fan-out must not be cut short by the caller
// going away.
func (s *TaskService) emit(ctx context.Context, event domain.Event) {
	if s.events == nil {
		return
	}
	s.events.Notify(context.WithoutCancel(ctx), event)
}

func applyTaskPatch(task *domain.Task, input domain.UpdateTaskInput) {
	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.DescriptionSet {
		task.Description = input.Description
	}
	if input.StatusID != nil {
		task.StatusID = *input.StatusID
	}
	if input.PriorityID != nil {
		task.PriorityID = *input.PriorityID
	}
	if input.AssigneeIDs != nil {
		task.AssigneeIDs = uniqueStrings(*input.AssigneeIDs)
	}
	if input.DueDateSet {
		task.DueDate = input.DueDate
	}
}

func addedAssignees(before, after []string) []string {
	had := make(map[string]struct{}, len(before))
	for _, id := range before {
		had[id] = struct{}{}
	}
	var added []string
	for _, id := range after {
		if _, ok := had[id]; !ok {
			added = append(added, id)
		}
	}
	return added
}

func sortTasks(tasks []domain.Task, sections []domain.Section) {
	position := make(map[string]int, len(sections))
	for i, section := range sections {
		position[section.ID] = i
	}
	rank := func(t domain.Task) int {
		if t.SectionID == nil {
			return len(sections)
		}
		if p, ok := position[*t.SectionID]; ok {
			return p
		}
		return len(sections)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := rank(tasks[i]), rank(tasks[j])
		if ri != rj {
			return ri < rj
		}
		return ordering.Less(orderItem(tasks[i]), orderItem(tasks[j]))
	})
}

func orderItem(t domain.Task) ordering.Item {
	return ordering.Item{ID: t.ID, SortOrder: t.SortOrder, CreatedAt: t.CreatedAt}
}
