package mapper

import (
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

func ToSectionItems(sections []domain.Section) []dto.SectionItem {
	items := make([]dto.SectionItem, 0, len(sections))
	for _, section := range sections {
		items = append(items, ToSectionItem(section))
	}
	return items
}

func ToSectionItem(section domain.Section) dto.SectionItem {
	return dto.SectionItem{
		ID:          section.ID,
		Name:        section.Name,
		Color:       section.Color,
		SortOrder:   section.SortOrder,
		IsCollapsed: section.IsCollapsed,
		CreatedAt:   section.CreatedAt.Format(time.RFC3339Nano),
	}
}

func ToConfigItems(entries []domain.ConfigEntry) []dto.ConfigItem {
	items := make([]dto.ConfigItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, ToConfigItem(entry))
	}
	return items
}

func ToConfigItem(entry domain.ConfigEntry) dto.ConfigItem {
	return dto.ConfigItem{
		ID:        entry.ID,
		Name:      entry.Name,
		Code:      entry.Code,
		Color:     entry.Color,
		IsDefault: entry.IsDefault,
		SortOrder: entry.SortOrder,
	}
}

func ToNotificationItems(notifications []domain.Notification) []dto.NotificationItem {
	items := make([]dto.NotificationItem, 0, len(notifications))
	for _, n := range notifications {
		item := dto.NotificationItem{
			ID:        n.ID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339Nano),
		}
		if n.TaskID != nil {
			value := *n.TaskID
			item.TaskID = &value
		}
		items = append(items, item)
	}
	return items
}
