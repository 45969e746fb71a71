package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrConfigInUse           = errors.New("config entry in use")
	ErrInvalidReorderTarget  = errors.New("invalid reorder target")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrValidation            = errors.New("validation error")
)

var (
	ErrTaskNotFound         = fmt.Errorf("task %w", ErrNotFound)
	ErrSectionNotFound      = fmt.Errorf("section %w", ErrNotFound)
	ErrStatusNotFound       = fmt.Errorf("status %w", ErrNotFound)
	ErrPriorityNotFound     = fmt.Errorf("priority %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)
)

var (
	ErrEmptyTitle          = fmt.Errorf("%w: title is required", ErrValidation)
	ErrEmptyComment        = fmt.Errorf("%w: comment body is required", ErrValidation)
	ErrEmptyName           = fmt.Errorf("%w: name is required", ErrValidation)
	ErrInvalidConfigCode   = fmt.Errorf("%w: code is required", ErrValidation)
	ErrDefaultConfigDelete = fmt.Errorf("%w: default entry cannot be deleted", ErrValidation)
	ErrDefaultConfigDemote = fmt.Errorf("%w: default entry cannot be demoted, promote another entry instead", ErrValidation)
	ErrInvalidOrderedIDs   = fmt.Errorf("%w: ordered ids must list every section exactly once", ErrValidation)
	ErrInvalidWatchAction  = fmt.Errorf("%w: unknown watch action", ErrValidation)
	ErrConflictingAnchors  = fmt.Errorf("%w: after and before anchors are exclusive", ErrValidation)
)

// Unavailable marks err as a retryable dependency failure. Domain errors pass
// through untouched so callers still see NotFound and friends.
func Unavailable(err error) error {
	if err == nil || isDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
}

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound,
		ErrConfigInUse,
		ErrInvalidReorderTarget,
		ErrUnauthorized,
		ErrDependencyUnavailable,
		ErrValidation,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
