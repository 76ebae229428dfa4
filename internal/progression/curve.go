// Package progression is the single source of truth for leveling arithmetic.
// Every call site depends on these functions instead of re-deriving the
// constants; the formulas here are deliberately side-effect-free so they can
// be tested without storage concerns.
package progression

import "fmt"

// Point grants per player level.
const (
	StatPointsPerLevel  = 10
	SkillPointsPerLevel = 5
)

// MaxTier is the highest limit-break tier for hunters and weapons.
const MaxTier = 5

// hunterLevelCaps maps limit-break tier to the level ceiling.
var hunterLevelCaps = [MaxTier + 1]int{10, 20, 40, 60, 80, 100}

// Limit-break costs indexed by current tier (breaking tier t into t+1).
var (
	limitBreakShardCosts = [MaxTier]int64{1, 1, 2, 2, 4}
	limitBreakCubeCosts  = [MaxTier]int64{5, 10, 20, 40, 60}
)

// StatPointsForLevel returns the canonical stat-point total for a level,
// achievement bonuses excluded.
func StatPointsForLevel(level int) int64 {
	return int64(level) * StatPointsPerLevel
}

// SkillPointsForLevel returns the canonical skill-point total for a level.
func SkillPointsForLevel(level int) int64 {
	return int64(level) * SkillPointsPerLevel
}

// XPThreshold returns the XP needed to advance from the given level.
func XPThreshold(level int) int64 {
	return int64(level) * 100
}

// ShadowXPThreshold returns the XP a shadow needs to advance from the given
// level.
func ShadowXPThreshold(level int) int64 {
	return int64(level) * 1000
}

// GearXPThreshold returns the XP a hunter or weapon needs to advance one
// level. The gear curve is flat.
func GearXPThreshold() int64 {
	return 100
}

// HunterLevelCap returns the level ceiling for a limit-break tier.
func HunterLevelCap(tier int) (int, error) {
	if tier < 0 || tier > MaxTier {
		return 0, fmt.Errorf("invalid tier %d: must be 0-%d", tier, MaxTier)
	}
	return hunterLevelCaps[tier], nil
}

// LimitBreakShardCost returns the shard cost to break out of the given tier.
func LimitBreakShardCost(tier int) (int64, error) {
	if tier < 0 || tier >= MaxTier {
		return 0, fmt.Errorf("invalid tier %d: must be 0-%d", tier, MaxTier-1)
	}
	return limitBreakShardCosts[tier], nil
}

// LimitBreakCubeCost returns the elemental cube cost to break out of the
// given tier.
func LimitBreakCubeCost(tier int) (int64, error) {
	if tier < 0 || tier >= MaxTier {
		return 0, fmt.Errorf("invalid tier %d: must be 0-%d", tier, MaxTier-1)
	}
	return limitBreakCubeCosts[tier], nil
}

// ValidateTier checks that a tier value is within 0..MaxTier.
func ValidateTier(tier int) error {
	if tier < 0 || tier > MaxTier {
		return fmt.Errorf("tier must be between 0 and %d, got %d", MaxTier, tier)
	}
	return nil
}
