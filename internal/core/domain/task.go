package domain

import "time"

type Task struct {
	ID          string
	Title       string
	Description *string
	StatusID    string
	PriorityID  string
	SectionID   *string
	AssigneeIDs []string
	CreatorID   string
	DueDate     *time.Time
	SortOrder   float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasAssignee reports whether userID is among the task assignees.
func (t Task) HasAssignee(userID string) bool {
	for _, id := range t.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type CreateTaskInput struct {
	Title       string
	Description *string
	StatusID    *string
	PriorityID  *string
	SectionID   *string
	AssigneeIDs []string
	DueDate     *time.Time
}

// UpdateTaskInput is a partial patch. The *Set flags distinguish an explicit
// null from an absent field for nullable columns.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	StatusID       *string
	PriorityID     *string
	AssigneeIDs    *[]string
	DueDate        *time.Time
	DueDateSet     bool
}

// TaskFilter narrows listTasks. Backlog selects tasks without a section and
// takes precedence over SectionID.
type TaskFilter struct {
	SectionID  *string
	Backlog    bool
	StatusID   *string
	PriorityID *string
	AssigneeID *string
}

// MoveTaskInput describes a drag and drop. At most one anchor may be set; no
// anchor appends to the destination tail.
type MoveTaskInput struct {
	SectionID    *string
	AfterTaskID  *string
	BeforeTaskID *string
}

type Comment struct {
	ID        string
	TaskID    string
	AuthorID  string
	Body      string
	CreatedAt time.Time
}
