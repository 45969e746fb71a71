package validation

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"taskboard/internal/adapter/http/dto"
)

func decode(t *testing.T, body string, req any) map[string]json.RawMessage {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	require.NoError(t, json.Unmarshal([]byte(body), req))
	return raw
}

func TestBuildUpdateTaskInput(t *testing.T) {
	var req dto.UpdateTaskRequest
	raw := decode(t, `{"description": null, "status_id": "status-done"}`, &req)
	input, err := BuildUpdateTaskInput(req, raw)
	require.NoError(t, err)
	require.True(t, input.DescriptionSet)
	require.Nil(t, input.Description)
	require.Equal(t, "status-done", *input.StatusID)
	require.False(t, input.DueDateSet)

	for _, body := range []string{`{}`, `{"title": null}`, `{"title": "  "}`, `{"status_id": null}`, `{"due_date": "tomorrow"}`} {
		var req dto.UpdateTaskRequest
		raw := decode(t, body, &req)
		_, err := BuildUpdateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload, body)
	}
}

func TestBuildCreateTaskInput(t *testing.T) {
	var req dto.CreateTaskRequest
	raw := decode(t, `{"title": " Ship ", "due_date": "2026-03-01", "assignee_ids": ["u1"]}`, &req)
	input, err := BuildCreateTaskInput(req, raw)
	require.NoError(t, err)
	require.Equal(t, "Ship", input.Title)
	require.Equal(t, 2026, input.DueDate.Year())
	require.Equal(t, []string{"u1"}, input.AssigneeIDs)

	req = dto.CreateTaskRequest{}
	raw = decode(t, `{"title": "x", "status_id": null}`, &req)
	_, err = BuildCreateTaskInput(req, raw)
	require.ErrorIs(t, err, ErrInvalidTaskPayload)
}

func TestBuildAssignSectionRequiresField(t *testing.T) {
	var req dto.AssignSectionRequest
	raw := decode(t, `{"section_id": null}`, &req)
	section, err := BuildAssignSection(req, raw)
	require.NoError(t, err)
	require.Nil(t, section)

	req = dto.AssignSectionRequest{}
	raw = decode(t, `{"sectionId": "s1"}`, &req)
	section, err = BuildAssignSection(req, raw)
	require.NoError(t, err)
	require.Equal(t, "s1", *section)

	req = dto.AssignSectionRequest{}
	raw = decode(t, `{"sectionId": null}`, &req)
	section, err = BuildAssignSection(req, raw)
	require.NoError(t, err)
	require.Nil(t, section)

	req = dto.AssignSectionRequest{}
	raw = decode(t, `{}`, &req)
	_, err = BuildAssignSection(req, raw)
	require.ErrorIs(t, err, ErrInvalidMovePayload)
}

func TestBuildMoveTaskInputRejectsBothAnchors(t *testing.T) {
	a, b := "a", "b"
	_, err := BuildMoveTaskInput(dto.MoveTaskRequest{AfterTaskID: &a, BeforeTaskID: &b})
	require.ErrorIs(t, err, ErrInvalidMovePayload)
}

func TestBuildTaskFilter(t *testing.T) {
	filter, err := BuildTaskFilter(url.Values{"backlog": {"true"}, "assignee_id": {"u1"}})
	require.NoError(t, err)
	require.True(t, filter.Backlog)
	require.Equal(t, "u1", *filter.AssigneeID)

	_, err = BuildTaskFilter(url.Values{"backlog": {"true"}, "section_id": {"s1"}})
	require.ErrorIs(t, err, ErrInvalidQuery)
	_, err = BuildTaskFilter(url.Values{"backlog": {"maybe"}})
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestBuildUpdateConfigInputRejectsCode(t *testing.T) {
	var req dto.UpdateConfigRequest
	raw := decode(t, `{"code": "x", "name": "y"}`, &req)
	_, err := BuildUpdateConfigInput(req, raw)
	require.ErrorIs(t, err, ErrInvalidConfigPayload)
}

func TestParseWatchAction(t *testing.T) {
	action, err := ParseWatchAction(dto.WatchRequest{})
	require.NoError(t, err)
	require.Equal(t, WatchToggle, action)

	unwatch := "unwatch"
	action, err = ParseWatchAction(dto.WatchRequest{Action: &unwatch})
	require.NoError(t, err)
	require.Equal(t, WatchOff, action)

	bogus := "maybe"
	_, err = ParseWatchAction(dto.WatchRequest{Action: &bogus})
	require.ErrorIs(t, err, ErrInvalidWatchPayload)
}

func TestBuildNotificationFilter(t *testing.T) {
	filter, err := BuildNotificationFilter(url.Values{"unread_only": {"1"}, "limit": {"20"}})
	require.NoError(t, err)
	require.True(t, filter.UnreadOnly)
	require.Equal(t, 20, filter.Limit)

	_, err = BuildNotificationFilter(url.Values{"limit": {"500"}})
	require.ErrorIs(t, err, ErrInvalidQuery)
}
