package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

// ConfigCache is the read-through cache in front of the config repository.
// Get reports a miss with false; cache failures are treated as misses.
//
// Invalidate bumps the generation of kind. Readers take Generation before
// querying the repository and pass it to Set, which drops the write when an
// invalidation happened in between. ok is false when the generation cannot
// be read; the caller then skips Set.
type ConfigCache interface {
	Get(ctx context.Context, kind domain.ConfigKind) ([]domain.ConfigEntry, bool)
	Generation(ctx context.Context, kind domain.ConfigKind) (generation int64, ok bool)
	Set(ctx context.Context, kind domain.ConfigKind, generation int64, entries []domain.ConfigEntry)
	Invalidate(ctx context.Context, kind domain.ConfigKind)
}

// EventDispatcher receives notifiable events after the mutation committed.
type EventDispatcher interface {
	Notify(ctx context.Context, event domain.Event)
}
