package db

import (
	"context"
	"database/sql"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type WatcherRepository struct {
	q querier
}

var _ ports.WatcherRepository = (*WatcherRepository)(nil)

func (r *WatcherRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Watcher, error) {
	var rows []struct {
		TaskID string `db:"task_id"`
		UserID string `db:"user_id"`
		Mode   string `db:"mode"`
	}
	err := r.q.SelectContext(ctx, &rows,
		`SELECT task_id, user_id, mode FROM task_watchers WHERE task_id = ? ORDER BY user_id`, taskID)
	if err != nil {
		return nil, translate(err, nil)
	}
	watchers := make([]domain.Watcher, 0, len(rows))
	for _, row := range rows {
		watchers = append(watchers, domain.Watcher{
			TaskID: row.TaskID,
			UserID: row.UserID,
			Mode:   domain.WatchMode(row.Mode),
		})
	}
	return watchers, nil
}

func (r *WatcherRepository) Upsert(ctx context.Context, watcher domain.Watcher) error {
	_, err := r.q.ExecContext(ctx, `
INSERT INTO task_watchers (task_id, user_id, mode) VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE mode = VALUES(mode)`,
		watcher.TaskID, watcher.UserID, string(watcher.Mode),
	)
	return translate(err, nil)
}

func (r *WatcherRepository) DeleteByTask(ctx context.Context, taskID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM task_watchers WHERE task_id = ?`, taskID)
	return translate(err, nil)
}

type CommentRepository struct {
	q querier
}

type commentRow struct {
	ID        string    `db:"id"`
	TaskID    string    `db:"task_id"`
	AuthorID  string    `db:"author_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error) {
	var rows []commentRow
	err := r.q.SelectContext(ctx, &rows, `
SELECT id, task_id, author_id, body, created_at
FROM task_comments WHERE task_id = ? ORDER BY created_at, id`, taskID)
	if err != nil {
		return nil, translate(err, nil)
	}
	comments := make([]domain.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, domain.Comment(row))
	}
	return comments, nil
}

func (r *CommentRepository) Insert(ctx context.Context, comment domain.Comment) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO task_comments (id, task_id, author_id, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		comment.ID, comment.TaskID, comment.AuthorID, comment.Body, comment.CreatedAt,
	)
	return translate(err, nil)
}

func (r *CommentRepository) DeleteByTask(ctx context.Context, taskID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM task_comments WHERE task_id = ?`, taskID)
	return translate(err, nil)
}

type NotificationRepository struct {
	q querier
}

type notificationRow struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	TaskID    sql.NullString `db:"task_id"`
	Type      string         `db:"type"`
	Title     string         `db:"title"`
	Message   string         `db:"message"`
	IsRead    bool           `db:"is_read"`
	CreatedAt time.Time      `db:"created_at"`
}

const notificationColumns = `id, user_id, task_id, type, title, message, is_read, created_at`

var _ ports.NotificationRepository = (*NotificationRepository)(nil)

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (domain.Notification, error) {
	var row notificationRow
	err := r.q.GetContext(ctx, &row, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id)
	if err != nil {
		return domain.Notification{}, translate(err, domain.ErrNotificationNotFound)
	}
	return row.toDomain(), nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, filter domain.NotificationFilter) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ?`
	if filter.UnreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC, id DESC`
	args := []interface{}{userID}
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	var rows []notificationRow
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, translate(err, nil)
	}
	notifications := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, row.toDomain())
	}
	return notifications, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.q.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = FALSE`, userID)
	if err != nil {
		return 0, translate(err, nil)
	}
	return count, nil
}

func (r *NotificationRepository) Insert(ctx context.Context, n domain.Notification) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO notifications (`+notificationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, nullString(n.TaskID), string(n.Type), n.Title, n.Message, n.IsRead, n.CreatedAt,
	)
	return translate(err, nil)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = ?`, id)
	return translate(err, nil)
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = ? AND is_read = FALSE`, userID)
	if err != nil {
		return 0, translate(err, nil)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, translate(err, nil)
	}
	return int(n), nil
}

func (row notificationRow) toDomain() domain.Notification {
	n := domain.Notification{
		ID:        row.ID,
		UserID:    row.UserID,
		Type:      domain.EventType(row.Type),
		Title:     row.Title,
		Message:   row.Message,
		IsRead:    row.IsRead,
		CreatedAt: row.CreatedAt,
	}
	if row.TaskID.Valid {
		value := row.TaskID.String
		n.TaskID = &value
	}
	return n
}
