package repository

import (
	"context"
)

// PlayerRecord is the storage shape of a player row: scalar columns plus the
// JSON document columns keyed by column name.
type PlayerRecord struct {
	ID             int64
	Level          int
	XP             int64
	StatPoints     int64
	SkillPoints    int64
	LastStatReset  *int64
	LastSkillReset *int64

	Attack    int
	Defense   int
	HP        int
	MP        int
	Precision int

	Gold    int64
	Diamond int64
	Stone   int64
	Ticket  int64
	Key     int64
	TOS     int64

	FireCube  int64
	IceCube   int64
	WindCube  int64
	EarthCube int64
	DarkCube  int64
	LightCube int64

	Gear1 int64
	Gear2 int64
	Gear3 int64

	Busy    bool
	Trading bool

	// Documents maps JSON column name to raw column bytes. A nil value means
	// the column was NULL.
	Documents map[string][]byte
}

// Player defines the interface for player persistence
type Player interface {
	// Get fetches a player record. A missing row returns (nil, nil).
	Get(ctx context.Context, id int64) (*PlayerRecord, error)
	// Upsert inserts or fully replaces the player row.
	Upsert(ctx context.Context, rec *PlayerRecord) error
	// All returns every player ID in the table.
	All(ctx context.Context) ([]int64, error)
	// Delete removes the player row and any dependent rows keyed by the
	// same ID in sibling tables.
	Delete(ctx context.Context, id int64) error
	// Vacuum reclaims dead row space in the players table.
	Vacuum(ctx context.Context) error
	// Size reports the total on-disk size of the players table in bytes.
	Size(ctx context.Context) (int64, error)
}
