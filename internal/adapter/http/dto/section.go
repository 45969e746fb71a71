package dto

type SectionItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	SortOrder   float64 `json:"sort_order"`
	IsCollapsed bool    `json:"is_collapsed"`
	CreatedAt   string  `json:"created_at"`
}

type CreateSectionRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Color string `json:"color" binding:"omitempty,max=20"`
}

type UpdateSectionRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Color       *string `json:"color" binding:"omitempty,max=20"`
	IsCollapsed *bool   `json:"is_collapsed"`
}

// ReorderSectionsRequest takes orderedIds; ordered_ids is accepted as an
// alias.
type ReorderSectionsRequest struct {
	OrderedIDs      []string `json:"orderedIds" binding:"omitempty,dive,min=1,max=64"`
	OrderedIDsAlias []string `json:"ordered_ids" binding:"omitempty,dive,min=1,max=64"`
}

// IDs returns the ordered ids, preferring orderedIds; nil when neither is sent.
func (r ReorderSectionsRequest) IDs() []string {
	if r.OrderedIDs != nil {
		return r.OrderedIDs
	}
	return r.OrderedIDsAlias
}

// MoveSectionRequest places the section after after_section_id; null or
// absent moves it to the head.
type MoveSectionRequest struct {
	AfterSectionID *string `json:"after_section_id" binding:"omitempty,min=1,max=64"`
}
