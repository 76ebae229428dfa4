package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUndefinedTable is raised when a dependent table has not been
	// created in this deployment; Delete tolerates it.
	PgErrorCodeUndefinedTable = "42P01"
	// PgErrorCodeSerializationFailure and PgErrorCodeDeadlockDetected mark
	// retryable transaction failures.
	PgErrorCodeSerializationFailure = "40001"
	PgErrorCodeDeadlockDetected     = "40P01"
	// PgErrorClassConnection covers connection exceptions, retryable once the
	// pool re-establishes.
	PgErrorClassConnection = "08"
)

// Error Messages - Player Operations
const (
	ErrMsgFailedToGetPlayer    = "failed to get player"
	ErrMsgFailedToUpsertPlayer = "failed to upsert player"
	ErrMsgFailedToListPlayers  = "failed to list players"
	ErrMsgFailedToDeletePlayer = "failed to delete player"
	ErrMsgFailedToVacuum       = "failed to vacuum players table"
	ErrMsgFailedToGetTableSize = "failed to get players table size"
)

// dependentTables lists sibling tables holding rows keyed by player_id that
// must go when a player is purged. Not every deployment carries all of them,
// so missing relations are skipped.
var dependentTables = []string{
	"player_trades",
	"player_logs",
	"guild_members",
	"market_listings",
}
