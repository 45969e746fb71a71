package domain

import "time"

type EventType string

const (
	EventStatusChanged   EventType = "status_changed"
	EventPriorityChanged EventType = "priority_changed"
	EventAssigned        EventType = "assigned"
	EventComment         EventType = "comment"
)

// Event is a notifiable domain event raised after a mutation commits.
type Event struct {
	Type      EventType
	TaskID    string
	TaskTitle string
	ActorID   string
	Payload   map[string]string
}

// Payload keys.
const (
	PayloadFrom        = "from"
	PayloadTo          = "to"
	PayloadCommentBody = "body"
	PayloadAssignees   = "assignees"
)

// Notification is one record per (event, recipient); never merged afterwards.
type Notification struct {
	ID        string
	UserID    string
	TaskID    *string
	Type      EventType
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

type NotificationFilter struct {
	UnreadOnly bool
	Limit      int
}
