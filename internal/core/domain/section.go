package domain

import "time"

type Section struct {
	ID          string
	Name        string
	Color       string
	SortOrder   float64
	IsCollapsed bool
	CreatedAt   time.Time
}

type CreateSectionInput struct {
	Name  string
	Color string
}

type UpdateSectionInput struct {
	Name        *string
	Color       *string
	IsCollapsed *bool
}
