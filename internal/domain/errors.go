package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Player errors
	ErrMsgPlayerNotFound = "player not found"
	ErrMsgPlayerBusy     = "player is busy in another action"

	// Collection errors
	ErrMsgNotOwned    = "content not owned"
	ErrMsgSlotUnknown = "unknown equipment slot"

	// Spend errors
	ErrMsgInsufficientPoints = "insufficient points"
	ErrMsgInsufficientTOS    = "insufficient traces of shadow"
	ErrMsgInsufficientShards = "insufficient shards"
	ErrMsgInsufficientCubes  = "insufficient cubes"
	ErrMsgInsufficientGold   = "insufficient gold"

	// Progression errors
	ErrMsgLevelCapReached = "level cap reached for current tier"
	ErrMsgLevelCapNotMet  = "level cap not reached yet"
	ErrMsgTierMaxed       = "already at maximum tier"
	ErrMsgResetOnCooldown = "reset is on cooldown"

	// Storage errors
	ErrMsgRowTooLarge   = "player row too large to save"
	ErrMsgDatabaseError = "database error"
)

// Common domain errors. Wrap with fmt.Errorf("%w: ...", domain.ErrXxx) for
// additional context; callers branch with errors.Is.
var (
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)
	ErrPlayerBusy     = errors.New(ErrMsgPlayerBusy)

	ErrNotOwned    = errors.New(ErrMsgNotOwned)
	ErrSlotUnknown = errors.New(ErrMsgSlotUnknown)

	ErrInsufficientPoints = errors.New(ErrMsgInsufficientPoints)
	ErrInsufficientTOS    = errors.New(ErrMsgInsufficientTOS)
	ErrInsufficientShards = errors.New(ErrMsgInsufficientShards)
	ErrInsufficientCubes  = errors.New(ErrMsgInsufficientCubes)
	ErrInsufficientGold   = errors.New(ErrMsgInsufficientGold)

	ErrLevelCapReached = errors.New(ErrMsgLevelCapReached)
	ErrLevelCapNotMet  = errors.New(ErrMsgLevelCapNotMet)
	ErrTierMaxed       = errors.New(ErrMsgTierMaxed)
	ErrResetOnCooldown = errors.New(ErrMsgResetOnCooldown)

	ErrRowTooLarge = errors.New(ErrMsgRowTooLarge)
)
