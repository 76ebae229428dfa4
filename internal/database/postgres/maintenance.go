package postgres

import (
	"context"
	"fmt"
)

// Vacuum reclaims dead row space in the players table. JSONB-heavy rows
// churn a lot of dead tuples, so the maintenance worker runs this on a
// schedule instead of waiting for autovacuum to catch up.
func (r *PlayerRepository) Vacuum(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `VACUUM (ANALYZE) players`); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToVacuum, err)
	}
	return nil
}

// Size reports the total on-disk size of the players table in bytes,
// indexes and TOAST included.
func (r *PlayerRepository) Size(ctx context.Context) (int64, error) {
	var size int64
	err := r.db.QueryRow(ctx, `SELECT pg_total_relation_size('players')`).Scan(&size)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetTableSize, err)
	}
	return size, nil
}
