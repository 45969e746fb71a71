package memory

import "taskboard/internal/core/domain"

// DefaultConfig mirrors the rows seeded by the SQL migrations.
func DefaultConfig() []domain.ConfigEntry {
	return []domain.ConfigEntry{
		{ID: "status-todo", Kind: domain.ConfigKindStatus, Name: "To do", Code: "todo", Color: "#9ca3af", IsDefault: true, SortOrder: 1},
		{ID: "status-in-progress", Kind: domain.ConfigKindStatus, Name: "In progress", Code: "in_progress", Color: "#3b82f6", SortOrder: 2},
		{ID: "status-done", Kind: domain.ConfigKindStatus, Name: "Done", Code: "done", Color: "#22c55e", SortOrder: 3},
		{ID: "priority-low", Kind: domain.ConfigKindPriority, Name: "Low", Code: "low", Color: "#9ca3af", SortOrder: 1},
		{ID: "priority-medium", Kind: domain.ConfigKindPriority, Name: "Medium", Code: "medium", Color: "#eab308", IsDefault: true, SortOrder: 2},
		{ID: "priority-high", Kind: domain.ConfigKindPriority, Name: "High", Code: "high", Color: "#f97316", SortOrder: 3},
		{ID: "priority-urgent", Kind: domain.ConfigKindPriority, Name: "Urgent", Code: "urgent", Color: "#ef4444", SortOrder: 4},
	}
}

// Seed inserts config entries, replacing entries with the same id.
func (s *Store) Seed(entries ...domain.ConfigEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.st.config[e.Kind][e.ID] = e
	}
}
