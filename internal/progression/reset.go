package progression

import "time"

// Reset cooldown periods.
const (
	StatResetPeriod  = 7 * 24 * time.Hour
	SkillResetPeriod = 14 * 24 * time.Hour
)

// CanResetStats reports whether a stat reset is allowed. last is the epoch
// second of the previous reset, nil if the player has never reset.
func CanResetStats(now time.Time, last *int64) bool {
	return canReset(now, last, StatResetPeriod)
}

// CanResetSkills reports whether a skill reset is allowed.
func CanResetSkills(now time.Time, last *int64) bool {
	return canReset(now, last, SkillResetPeriod)
}

// NextResetAt returns when the cooldown expires; the zero time means the
// reset is available now.
func NextResetAt(last *int64, period time.Duration) time.Time {
	if last == nil {
		return time.Time{}
	}
	return time.Unix(*last, 0).Add(period)
}

func canReset(now time.Time, last *int64, period time.Duration) bool {
	if last == nil {
		return true
	}
	return now.Sub(time.Unix(*last, 0)) >= period
}
