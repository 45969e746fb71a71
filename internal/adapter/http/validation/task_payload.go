package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

var (
	ErrInvalidTaskPayload = errors.New("invalid task payload")
	ErrInvalidMovePayload = errors.New("invalid move payload")
	ErrInvalidQuery       = errors.New("invalid query")
)

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	for _, field := range []string{"status_id", "priority_id"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	return domain.CreateTaskInput{
		Title:       title,
		Description: req.Description,
		StatusID:    req.StatusID,
		PriorityID:  req.PriorityID,
		SectionID:   req.SectionID,
		AssigneeIDs: req.AssigneeIDs,
		DueDate:     dueDate,
	}, nil
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasAnyField(raw, "title", "description", "status_id", "priority_id", "assignee_ids", "due_date") {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	// Non-nullable fields may be omitted but never sent as null.
	for _, field := range []string{"title", "status_id", "priority_id", "assignee_ids"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
	}

	var title *string
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		title = &value
	}

	descriptionSet := hasJSONField(raw, "description")

	dueDateSet := hasJSONField(raw, "due_date")
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return domain.UpdateTaskInput{}, err
	}

	return domain.UpdateTaskInput{
		Title:          title,
		Description:    req.Description,
		DescriptionSet: descriptionSet,
		StatusID:       req.StatusID,
		PriorityID:     req.PriorityID,
		AssigneeIDs:    req.AssigneeIDs,
		DueDate:        dueDate,
		DueDateSet:     dueDateSet,
	}, nil
}

// BuildAssignSection returns the destination section; nil means backlog.
func BuildAssignSection(req dto.AssignSectionRequest, raw map[string]json.RawMessage) (*string, error) {
	switch {
	case hasJSONField(raw, "sectionId"):
		return req.SectionID, nil
	case hasJSONField(raw, "section_id"):
		return req.SectionIDAlias, nil
	default:
		return nil, ErrInvalidMovePayload
	}
}

func BuildMoveTaskInput(req dto.MoveTaskRequest) (domain.MoveTaskInput, error) {
	if req.AfterTaskID != nil && req.BeforeTaskID != nil {
		return domain.MoveTaskInput{}, ErrInvalidMovePayload
	}
	return domain.MoveTaskInput{
		SectionID:    req.SectionID,
		AfterTaskID:  req.AfterTaskID,
		BeforeTaskID: req.BeforeTaskID,
	}, nil
}

// BuildTaskFilter reads the listTasks query parameters.
func BuildTaskFilter(values url.Values) (domain.TaskFilter, error) {
	var filter domain.TaskFilter

	if raw := values.Get("backlog"); raw != "" {
		backlog, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.TaskFilter{}, ErrInvalidQuery
		}
		filter.Backlog = backlog
	}
	filter.SectionID = optionalQuery(values, "section_id")
	if filter.Backlog && filter.SectionID != nil {
		return domain.TaskFilter{}, ErrInvalidQuery
	}
	filter.StatusID = optionalQuery(values, "status_id")
	filter.PriorityID = optionalQuery(values, "priority_id")
	filter.AssigneeID = optionalQuery(values, "assignee_id")
	return filter, nil
}

func parseDueDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, ErrInvalidTaskPayload
	}
	return &parsed, nil
}

func optionalQuery(values url.Values, key string) *string {
	value := strings.TrimSpace(values.Get(key))
	if value == "" {
		return nil
	}
	return &value
}

func hasAnyField(raw map[string]json.RawMessage, fields ...string) bool {
	for _, field := range fields {
		if hasJSONField(raw, field) {
			return true
		}
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
