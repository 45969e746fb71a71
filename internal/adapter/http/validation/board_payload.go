package validation

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

var (
	ErrInvalidSectionPayload = errors.New("invalid section payload")
	ErrInvalidConfigPayload  = errors.New("invalid config payload")
	ErrInvalidWatchPayload   = errors.New("invalid watch payload")
)

const maxNotificationLimit = 200

// WatchAction is the parsed body of a watch request.
type WatchAction int

const (
	WatchToggle WatchAction = iota
	WatchOn
	WatchOff
)

func BuildUpdateSectionInput(req dto.UpdateSectionRequest, raw map[string]json.RawMessage) (domain.UpdateSectionInput, error) {
	if !hasAnyField(raw, "name", "color", "is_collapsed") {
		return domain.UpdateSectionInput{}, ErrInvalidSectionPayload
	}
	for _, field := range []string{"name", "color", "is_collapsed"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateSectionInput{}, ErrInvalidSectionPayload
		}
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return domain.UpdateSectionInput{}, ErrInvalidSectionPayload
	}
	return domain.UpdateSectionInput{
		Name:        req.Name,
		Color:       req.Color,
		IsCollapsed: req.IsCollapsed,
	}, nil
}

func BuildCreateConfigInput(req dto.CreateConfigRequest) (domain.CreateConfigInput, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.TrimSpace(req.Code)
	if name == "" || code == "" {
		return domain.CreateConfigInput{}, ErrInvalidConfigPayload
	}
	return domain.CreateConfigInput{
		Name:      name,
		Code:      code,
		Color:     req.Color,
		IsDefault: req.IsDefault,
		SortOrder: req.SortOrder,
	}, nil
}

func BuildUpdateConfigInput(req dto.UpdateConfigRequest, raw map[string]json.RawMessage) (domain.UpdateConfigInput, error) {
	if hasJSONField(raw, "code") {
		return domain.UpdateConfigInput{}, ErrInvalidConfigPayload
	}
	if !hasAnyField(raw, "name", "color", "sort_order", "is_default") {
		return domain.UpdateConfigInput{}, ErrInvalidConfigPayload
	}
	for _, field := range []string{"name", "color", "sort_order", "is_default"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateConfigInput{}, ErrInvalidConfigPayload
		}
	}
	return domain.UpdateConfigInput{
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.SortOrder,
		IsDefault: req.IsDefault,
	}, nil
}

func ParseWatchAction(req dto.WatchRequest) (WatchAction, error) {
	if req.Action == nil {
		return WatchToggle, nil
	}
	switch *req.Action {
	case "toggle":
		return WatchToggle, nil
	case "watch":
		return WatchOn, nil
	case "unwatch":
		return WatchOff, nil
	default:
		return WatchToggle, ErrInvalidWatchPayload
	}
}

func BuildNotificationFilter(values url.Values) (domain.NotificationFilter, error) {
	var filter domain.NotificationFilter
	if raw := values.Get("unread_only"); raw != "" {
		unread, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.NotificationFilter{}, ErrInvalidQuery
		}
		filter.UnreadOnly = unread
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > maxNotificationLimit {
			return domain.NotificationFilter{}, ErrInvalidQuery
		}
		filter.Limit = limit
	}
	return filter, nil
}
