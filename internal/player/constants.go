package player

// Stat names accepted by SpendStatPoints.
const (
	StatAttack    = "attack"
	StatDefense   = "defense"
	StatHP        = "hp"
	StatMP        = "mp"
	StatPrecision = "precision"
)

// Log messages
const (
	logMsgPlayerCreated     = "New player created"
	logMsgPlayerRepaired    = "Player repaired on load"
	logMsgDocumentDefaulted = "Document column defaulted on load"
	logMsgRowOverSoftLimit  = "Player row over soft size limit"
	logMsgEmergencyShrink   = "Emergency shrink applied to oversized player"
	logMsgPlayerSaved       = "Player saved"
	logMsgPlayerPurged      = "Player purged"
	logMsgLevelUp           = "Player leveled up"
)
