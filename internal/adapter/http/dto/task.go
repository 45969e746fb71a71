package dto

type TaskItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	StatusID    string   `json:"status_id"`
	PriorityID  string   `json:"priority_id"`
	SectionID   *string  `json:"section_id"`
	AssigneeIDs []string `json:"assignee_ids"`
	CreatorID   string   `json:"creator_id"`
	DueDate     *string  `json:"due_date"`
	SortOrder   float64  `json:"sort_order"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=65535"`
	StatusID    *string  `json:"status_id" binding:"omitempty,min=1,max=64"`
	PriorityID  *string  `json:"priority_id" binding:"omitempty,min=1,max=64"`
	SectionID   *string  `json:"section_id" binding:"omitempty,min=1,max=64"`
	AssigneeIDs []string `json:"assignee_ids" binding:"omitempty,max=50,dive,min=1,max=128"`
	DueDate     *string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateTaskRequest struct {
	Title       *string   `json:"title" binding:"omitempty,max=255"`
	Description *string   `json:"description" binding:"omitempty,max=65535"`
	StatusID    *string   `json:"status_id" binding:"omitempty,min=1,max=64"`
	PriorityID  *string   `json:"priority_id" binding:"omitempty,min=1,max=64"`
	AssigneeIDs *[]string `json:"assignee_ids" binding:"omitempty,max=50,dive,min=1,max=128"`
	DueDate     *string   `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// AssignSectionRequest requires sectionId (or section_id) to be present;
// null means backlog.
type AssignSectionRequest struct {
	SectionID      *string `json:"sectionId" binding:"omitempty,min=1,max=64"`
	SectionIDAlias *string `json:"section_id" binding:"omitempty,min=1,max=64"`
}

type MoveTaskRequest struct {
	SectionID    *string `json:"section_id" binding:"omitempty,min=1,max=64"`
	AfterTaskID  *string `json:"after_task_id" binding:"omitempty,min=1,max=64"`
	BeforeTaskID *string `json:"before_task_id" binding:"omitempty,min=1,max=64"`
}

type CommentItem struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	AuthorID  string `json:"author_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=10000"`
}

type WatchRequest struct {
	Action *string `json:"action" binding:"omitempty,oneof=watch unwatch toggle"`
}

type WatchResponse struct {
	Watching bool `json:"watching"`
}
