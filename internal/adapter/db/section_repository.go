package db

import (
	"context"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const sectionColumns = `id, name, color, sort_order, is_collapsed, created_at`

type SectionRepository struct {
	q querier
}

type sectionRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Color       string    `db:"color"`
	SortOrder   float64   `db:"sort_order"`
	IsCollapsed bool      `db:"is_collapsed"`
	CreatedAt   time.Time `db:"created_at"`
}

var _ ports.SectionRepository = (*SectionRepository)(nil)

func (r *SectionRepository) GetByID(ctx context.Context, id string) (domain.Section, error) {
	var row sectionRow
	err := r.q.GetContext(ctx, &row, `SELECT `+sectionColumns+` FROM task_sections WHERE id = ?`, id)
	if err != nil {
		return domain.Section{}, translate(err, domain.ErrSectionNotFound)
	}
	return domain.Section(row), nil
}

func (r *SectionRepository) List(ctx context.Context) ([]domain.Section, error) {
	var rows []sectionRow
	err := r.q.SelectContext(ctx, &rows,
		`SELECT `+sectionColumns+` FROM task_sections ORDER BY sort_order, created_at, id`)
	if err != nil {
		return nil, translate(err, nil)
	}
	sections := make([]domain.Section, 0, len(rows))
	for _, row := range rows {
		sections = append(sections, domain.Section(row))
	}
	return sections, nil
}

func (r *SectionRepository) Insert(ctx context.Context, section domain.Section) error {
	_, err := r.q.ExecContext(ctx, `
INSERT INTO task_sections (id, name, color, sort_order, is_collapsed, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		section.ID, section.Name, section.Color, section.SortOrder, section.IsCollapsed, section.CreatedAt,
	)
	return translate(err, nil)
}

func (r *SectionRepository) Update(ctx context.Context, section domain.Section) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE task_sections SET name = ?, color = ?, is_collapsed = ? WHERE id = ?`,
		section.Name, section.Color, section.IsCollapsed, section.ID,
	)
	return translate(err, nil)
}

func (r *SectionRepository) UpdateSortOrders(ctx context.Context, orders map[string]float64) error {
	for id, order := range orders {
		if _, err := r.q.ExecContext(ctx, `UPDATE task_sections SET sort_order = ? WHERE id = ?`, order, id); err != nil {
			return translate(err, nil)
		}
	}
	return nil
}

func (r *SectionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM task_sections WHERE id = ?`, id)
	if err != nil {
		return translate(err, nil)
	}
	return requireDeleted(res, domain.ErrSectionNotFound)
}
