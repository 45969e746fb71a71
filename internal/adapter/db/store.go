package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// querier is the part of sqlx shared by *sqlx.DB and *sqlx.Tx.
type querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Store is the MySQL unit of work. Outside WithinTx every repository call
// auto-commits.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

var _ ports.UnitOfWork = (*Store)(nil)

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Unavailable(err)
	}
	if err := fn(ctx, repositories{q: tx, inTx: true}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.Unavailable(err)
	}
	return nil
}

func (s *Store) Tasks() ports.TaskRepository                 { return s.repos().Tasks() }
func (s *Store) Sections() ports.SectionRepository           { return s.repos().Sections() }
func (s *Store) Config() ports.ConfigRepository              { return s.repos().Config() }
func (s *Store) Watchers() ports.WatcherRepository           { return s.repos().Watchers() }
func (s *Store) Comments() ports.CommentRepository           { return s.repos().Comments() }
func (s *Store) Notifications() ports.NotificationRepository { return s.repos().Notifications() }
func (s *Store) Locks() ports.ScopeLocker                    { return s.repos().Locks() }

func (s *Store) repos() repositories {
	return repositories{q: s.db}
}

type repositories struct {
	q    querier
	inTx bool
}

func (r repositories) Tasks() ports.TaskRepository                 { return &TaskRepository{q: r.q} }
func (r repositories) Sections() ports.SectionRepository           { return &SectionRepository{q: r.q} }
func (r repositories) Config() ports.ConfigRepository              { return &ConfigRepository{q: r.q} }
func (r repositories) Watchers() ports.WatcherRepository           { return &WatcherRepository{q: r.q} }
func (r repositories) Comments() ports.CommentRepository           { return &CommentRepository{q: r.q} }
func (r repositories) Notifications() ports.NotificationRepository { return &NotificationRepository{q: r.q} }
func (r repositories) Locks() ports.ScopeLocker                    { return &ScopeLocker{q: r.q, inTx: r.inTx} }

// translate maps driver errors to domain errors: sql.ErrNoRows becomes
// notFound, a failed foreign key check becomes the missing parent's not found
// error, anything else (deadlocks, lock wait timeouts, lost connections) is a
// retryable dependency failure.
func translate(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) && notFound != nil {
		return notFound
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == errNoReferencedRow {
		if missing := missingParent(mysqlErr.Message); missing != nil {
			return missing
		}
	}
	return domain.Unavailable(err)
}

// errNoReferencedRow is ER_NO_REFERENCED_ROW_2.
const errNoReferencedRow = 1452

// missingParent reads the violated constraint out of a 1452 message.
func missingParent(message string) error {
	switch {
	case strings.Contains(message, "`fk_tasks_status`"):
		return domain.ErrStatusNotFound
	case strings.Contains(message, "`fk_tasks_priority`"):
		return domain.ErrPriorityNotFound
	case strings.Contains(message, "`fk_tasks_section`"):
		return domain.ErrSectionNotFound
	case strings.Contains(message, "REFERENCES `tasks`"):
		return domain.ErrTaskNotFound
	default:
		return nil
	}
}

// requireDeleted reports notFound when a DELETE matched nothing. UPDATE
// statements are not checked this way since MySQL counts changed rows only.
func requireDeleted(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return translate(err, nil)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
