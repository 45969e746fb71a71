package dto

type ConfigItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Color     string `json:"color"`
	IsDefault bool   `json:"is_default"`
	SortOrder int    `json:"sort_order"`
}

type CreateConfigRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Code      string `json:"code" binding:"required,max=50"`
	Color     string `json:"color" binding:"omitempty,max=20"`
	IsDefault bool   `json:"is_default"`
	SortOrder *int   `json:"sort_order" binding:"omitempty,gte=0"`
}

type UpdateConfigRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	Color     *string `json:"color" binding:"omitempty,max=20"`
	SortOrder *int    `json:"sort_order" binding:"omitempty,gte=0"`
	IsDefault *bool   `json:"is_default"`
}
