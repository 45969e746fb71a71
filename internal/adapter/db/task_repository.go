package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ordering"
	"taskboard/internal/core/ports"
)

const taskColumns = `
  t.id, t.title, t.description, t.status_id, t.priority_id, t.section_id,
  t.creator_id, t.due_date, t.sort_order, t.created_at, t.updated_at`

const taskOrder = `ORDER BY t.sort_order, t.created_at, t.id`

type TaskRepository struct {
	q querier
}

type taskRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	StatusID    string         `db:"status_id"`
	PriorityID  string         `db:"priority_id"`
	SectionID   sql.NullString `db:"section_id"`
	CreatorID   string         `db:"creator_id"`
	DueDate     sql.NullTime   `db:"due_date"`
	SortOrder   float64        `db:"sort_order"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type assigneeRow struct {
	TaskID string `db:"task_id"`
	UserID string `db:"user_id"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func (r *TaskRepository) GetByID(ctx context.Context, id string) (domain.Task, error) {
	return r.get(ctx, `SELECT`+taskColumns+` FROM tasks t WHERE t.id = ?`, id)
}

func (r *TaskRepository) GetForUpdate(ctx context.Context, id string) (domain.Task, error) {
	return r.get(ctx, `SELECT`+taskColumns+` FROM tasks t WHERE t.id = ? FOR UPDATE`, id)
}

func (r *TaskRepository) get(ctx context.Context, query, id string) (domain.Task, error) {
	var row taskRow
	if err := r.q.GetContext(ctx, &row, query, id); err != nil {
		return domain.Task{}, translate(err, domain.ErrTaskNotFound)
	}
	tasks, err := r.withAssignees(ctx, []taskRow{row})
	if err != nil {
		return domain.Task{}, err
	}
	return tasks[0], nil
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	var (
		where []string
		args  []interface{}
	)
	switch {
	case filter.Backlog:
		where = append(where, "t.section_id IS NULL")
	case filter.SectionID != nil:
		where = append(where, "t.section_id = ?")
		args = append(args, *filter.SectionID)
	}
	if filter.StatusID != nil {
		where = append(where, "t.status_id = ?")
		args = append(args, *filter.StatusID)
	}
	if filter.PriorityID != nil {
		where = append(where, "t.priority_id = ?")
		args = append(args, *filter.PriorityID)
	}
	if filter.AssigneeID != nil {
		where = append(where, "EXISTS (SELECT 1 FROM task_assignees a WHERE a.task_id = t.id AND a.user_id = ?)")
		args = append(args, *filter.AssigneeID)
	}

	query := `SELECT` + taskColumns + ` FROM tasks t`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " " + taskOrder

	var rows []taskRow
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, translate(err, nil)
	}
	return r.withAssignees(ctx, rows)
}

func (r *TaskRepository) ListOrderItems(ctx context.Context, sectionID *string) ([]ordering.Item, error) {
	var rows []struct {
		ID        string    `db:"id"`
		SortOrder float64   `db:"sort_order"`
		CreatedAt time.Time `db:"created_at"`
	}
	err := r.q.SelectContext(ctx, &rows,
		`SELECT t.id, t.sort_order, t.created_at FROM tasks t WHERE t.section_id <=> ? `+taskOrder,
		nullString(sectionID))
	if err != nil {
		return nil, translate(err, nil)
	}
	items := make([]ordering.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, ordering.Item{ID: row.ID, SortOrder: row.SortOrder, CreatedAt: row.CreatedAt})
	}
	return items, nil
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) error {
	_, err := r.q.ExecContext(ctx, `
INSERT INTO tasks (id, title, description, status_id, priority_id, section_id,
  creator_id, due_date, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, nullString(task.Description), task.StatusID, task.PriorityID,
		nullString(task.SectionID), task.CreatorID, nullTime(task.DueDate), task.SortOrder,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return translate(err, nil)
	}
	return r.insertAssignees(ctx, task.ID, task.AssigneeIDs)
}

// Update writes the editable fields. Section and sort order only change
// through UpdatePosition.
func (r *TaskRepository) Update(ctx context.Context, task domain.Task) error {
	_, err := r.q.ExecContext(ctx, `
UPDATE tasks
SET title = ?, description = ?, status_id = ?, priority_id = ?, due_date = ?, updated_at = ?
WHERE id = ?`,
		task.Title, nullString(task.Description), task.StatusID, task.PriorityID,
		nullTime(task.DueDate), task.UpdatedAt, task.ID,
	)
	if err != nil {
		return translate(err, nil)
	}
	if _, err := r.q.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = ?`, task.ID); err != nil {
		return translate(err, nil)
	}
	return r.insertAssignees(ctx, task.ID, task.AssigneeIDs)
}

func (r *TaskRepository) UpdatePosition(ctx context.Context, id string, sectionID *string, sortOrder float64) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE tasks SET section_id = ?, sort_order = ?, updated_at = ? WHERE id = ?`,
		nullString(sectionID), sortOrder, time.Now().UTC(), id,
	)
	return translate(err, nil)
}

func (r *TaskRepository) UpdateSortOrders(ctx context.Context, orders map[string]float64) error {
	for id, order := range orders {
		if _, err := r.q.ExecContext(ctx, `UPDATE tasks SET sort_order = ? WHERE id = ?`, order, id); err != nil {
			return translate(err, nil)
		}
	}
	return nil
}

func (r *TaskRepository) ClearSection(ctx context.Context, sectionID string) error {
	_, err := r.q.ExecContext(ctx, `UPDATE tasks SET section_id = NULL WHERE section_id = ?`, sectionID)
	return translate(err, nil)
}

func (r *TaskRepository) CountByConfig(ctx context.Context, kind domain.ConfigKind, id string) (int, error) {
	column := "status_id"
	if kind == domain.ConfigKindPriority {
		column = "priority_id"
	}
	var count int
	if err := r.q.GetContext(ctx, &count, `SELECT COUNT(*) FROM tasks WHERE `+column+` = ?`, id); err != nil {
		return 0, translate(err, nil)
	}
	return count, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = ?`, id); err != nil {
		return translate(err, nil)
	}
	res, err := r.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return translate(err, nil)
	}
	return requireDeleted(res, domain.ErrTaskNotFound)
}

func (r *TaskRepository) insertAssignees(ctx context.Context, taskID string, assignees []string) error {
	for i, userID := range assignees {
		_, err := r.q.ExecContext(ctx,
			`INSERT INTO task_assignees (task_id, user_id, position) VALUES (?, ?, ?)`,
			taskID, userID, i,
		)
		if err != nil {
			return translate(err, nil)
		}
	}
	return nil
}

func (r *TaskRepository) withAssignees(ctx context.Context, rows []taskRow) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(rows))
	if len(rows) == 0 {
		return tasks, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	query, args, err := sqlx.In(
		`SELECT task_id, user_id FROM task_assignees WHERE task_id IN (?) ORDER BY task_id, position`, ids)
	if err != nil {
		return nil, translate(err, nil)
	}
	var assignees []assigneeRow
	if err := r.q.SelectContext(ctx, &assignees, r.q.Rebind(query), args...); err != nil {
		return nil, translate(err, nil)
	}
	byTask := make(map[string][]string, len(rows))
	for _, a := range assignees {
		byTask[a.TaskID] = append(byTask[a.TaskID], a.UserID)
	}

	for _, row := range rows {
		task := mapTaskRowToDomainTask(row)
		task.AssigneeIDs = byTask[row.ID]
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:         row.ID,
		Title:      row.Title,
		StatusID:   row.StatusID,
		PriorityID: row.PriorityID,
		CreatorID:  row.CreatorID,
		SortOrder:  row.SortOrder,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.SectionID.Valid {
		value := row.SectionID.String
		task.SectionID = &value
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}

	return task
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}
