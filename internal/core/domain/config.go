package domain

// ConfigKind selects one of the finite config sets a task references.
type ConfigKind string

const (
	ConfigKindStatus   ConfigKind = "status"
	ConfigKindPriority ConfigKind = "priority"
)

// NotFoundErr returns the kind specific not found sentinel.
func (k ConfigKind) NotFoundErr() error {
	if k == ConfigKindPriority {
		return ErrPriorityNotFound
	}
	return ErrStatusNotFound
}

// ConfigEntry is a status or priority definition. Tasks reference entries by
// id only, so cosmetic edits apply to every referencing task.
type ConfigEntry struct {
	ID        string
	Kind      ConfigKind
	Name      string
	Code      string
	Color     string
	IsDefault bool
	SortOrder int
}

type CreateConfigInput struct {
	Name      string
	Code      string
	Color     string
	IsDefault bool
	SortOrder *int
}

// UpdateConfigInput only carries cosmetic fields; the code is immutable.
type UpdateConfigInput struct {
	Name      *string
	Color     *string
	SortOrder *int
	IsDefault *bool
}

// DefaultEntry returns the entry flagged as default.
func DefaultEntry(entries []ConfigEntry) (ConfigEntry, bool) {
	for _, entry := range entries {
		if entry.IsDefault {
			return entry, true
		}
	}
	return ConfigEntry{}, false
}

// FindEntry looks an entry up by id.
func FindEntry(entries []ConfigEntry, id string) (ConfigEntry, bool) {
	for _, entry := range entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return ConfigEntry{}, false
}
