package db

import (
	"context"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const configColumns = `id, name, code, color, is_default, sort_order`

// ConfigRepository stores statuses and priorities in one table per kind.
type ConfigRepository struct {
	q querier
}

type configRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Code      string `db:"code"`
	Color     string `db:"color"`
	IsDefault bool   `db:"is_default"`
	SortOrder int    `db:"sort_order"`
}

var _ ports.ConfigRepository = (*ConfigRepository)(nil)

func configTable(kind domain.ConfigKind) string {
	if kind == domain.ConfigKindPriority {
		return "task_priorities"
	}
	return "task_statuses"
}

func (r *ConfigRepository) List(ctx context.Context, kind domain.ConfigKind) ([]domain.ConfigEntry, error) {
	var rows []configRow
	err := r.q.SelectContext(ctx, &rows,
		`SELECT `+configColumns+` FROM `+configTable(kind)+` ORDER BY sort_order, id`)
	if err != nil {
		return nil, translate(err, nil)
	}
	entries := make([]domain.ConfigEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toDomain(kind))
	}
	return entries, nil
}

func (r *ConfigRepository) GetByID(ctx context.Context, kind domain.ConfigKind, id string) (domain.ConfigEntry, error) {
	var row configRow
	err := r.q.GetContext(ctx, &row,
		`SELECT `+configColumns+` FROM `+configTable(kind)+` WHERE id = ? FOR UPDATE`, id)
	if err != nil {
		return domain.ConfigEntry{}, translate(err, kind.NotFoundErr())
	}
	return row.toDomain(kind), nil
}

func (r *ConfigRepository) Insert(ctx context.Context, entry domain.ConfigEntry) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO `+configTable(entry.Kind)+` (`+configColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Name, entry.Code, entry.Color, entry.IsDefault, entry.SortOrder,
	)
	return translate(err, nil)
}

// Update never touches the code column.
func (r *ConfigRepository) Update(ctx context.Context, entry domain.ConfigEntry) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE `+configTable(entry.Kind)+` SET name = ?, color = ?, is_default = ?, sort_order = ? WHERE id = ?`,
		entry.Name, entry.Color, entry.IsDefault, entry.SortOrder, entry.ID,
	)
	return translate(err, nil)
}

func (r *ConfigRepository) ClearDefault(ctx context.Context, kind domain.ConfigKind) error {
	_, err := r.q.ExecContext(ctx, `UPDATE `+configTable(kind)+` SET is_default = FALSE WHERE is_default`)
	return translate(err, nil)
}

func (r *ConfigRepository) Delete(ctx context.Context, kind domain.ConfigKind, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM `+configTable(kind)+` WHERE id = ?`, id)
	if err != nil {
		return translate(err, nil)
	}
	return requireDeleted(res, kind.NotFoundErr())
}

func (row configRow) toDomain(kind domain.ConfigKind) domain.ConfigEntry {
	return domain.ConfigEntry{
		ID:        row.ID,
		Kind:      kind,
		Name:      row.Name,
		Code:      row.Code,
		Color:     row.Color,
		IsDefault: row.IsDefault,
		SortOrder: row.SortOrder,
	}
}
