package db

import (
	"context"

	"taskboard/internal/core/ports"
)

// ScopeLocker serializes ordering writes with one row per scope in
// ordering_locks. The row lock is held until the transaction ends.
type ScopeLocker struct {
	q    querier
	inTx bool
}

var _ ports.ScopeLocker = (*ScopeLocker)(nil)

func (l *ScopeLocker) LockScope(ctx context.Context, scope string) error {
	if !l.inTx {
		return nil
	}
	// The upsert takes the exclusive row lock straight away; a plain
	// INSERT IGNORE followed by FOR UPDATE deadlocks on the S to X upgrade.
	_, err := l.q.ExecContext(ctx,
		`INSERT INTO ordering_locks (scope) VALUES (?) ON DUPLICATE KEY UPDATE scope = scope`, scope)
	return translate(err, nil)
}
