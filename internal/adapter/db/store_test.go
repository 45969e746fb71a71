package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"

	"taskboard/internal/core/domain"
)

func fkError(constraint, column, parent string) error {
	return &mysql.MySQLError{
		Number: errNoReferencedRow,
		Message: fmt.Sprintf("Cannot add or update a child row: a foreign key constraint fails "+
			"(`taskboard`.`tasks`, CONSTRAINT `%s` FOREIGN KEY (`%s`) REFERENCES `%s` (`id`))", constraint, column, parent),
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		notFound error
		want     error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "no rows", err: sql.ErrNoRows, notFound: domain.ErrTaskNotFound, want: domain.ErrTaskNotFound},
		{name: "deleted status", err: fkError("fk_tasks_status", "status_id", "task_statuses"), want: domain.ErrStatusNotFound},
		{name: "deleted priority", err: fkError("fk_tasks_priority", "priority_id", "task_priorities"), want: domain.ErrPriorityNotFound},
		{name: "deleted section", err: fkError("fk_tasks_section", "section_id", "task_sections"), want: domain.ErrSectionNotFound},
		{name: "deleted task", err: fmt.Errorf("insert comment: %w", fkError("fk_task_comments_task", "task_id", "tasks")), want: domain.ErrTaskNotFound},
		{name: "deadlock", err: &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}, want: domain.ErrDependencyUnavailable},
		{name: "connection", err: errors.New("connection refused"), want: domain.ErrDependencyUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err, tt.notFound)
			if tt.want == nil {
				require.NoError(t, got)
				return
			}
			require.ErrorIs(t, got, tt.want)
		})
	}
}
