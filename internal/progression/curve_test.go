package progression

import (
	"testing"
	"time"
)

func TestPointFormulas(t *testing.T) {
	tests := []struct {
		level     int
		wantStat  int64
		wantSkill int64
	}{
		{1, 10, 5},
		{2, 20, 10},
		{10, 100, 50},
		{57, 570, 285},
		{100, 1000, 500},
	}

	for _, tt := range tests {
		if got := StatPointsForLevel(tt.level); got != tt.wantStat {
			t.Errorf("StatPointsForLevel(%d) = %d, want %d", tt.level, got, tt.wantStat)
		}
		if got := SkillPointsForLevel(tt.level); got != tt.wantSkill {
			t.Errorf("SkillPointsForLevel(%d) = %d, want %d", tt.level, got, tt.wantSkill)
		}
	}
}

func TestXPThresholds(t *testing.T) {
	if got := XPThreshold(1); got != 100 {
		t.Errorf("XPThreshold(1) = %d, want 100", got)
	}
	if got := XPThreshold(42); got != 4200 {
		t.Errorf("XPThreshold(42) = %d, want 4200", got)
	}
	if got := ShadowXPThreshold(3); got != 3000 {
		t.Errorf("ShadowXPThreshold(3) = %d, want 3000", got)
	}
	if got := GearXPThreshold(); got != 100 {
		t.Errorf("GearXPThreshold() = %d, want 100", got)
	}
}

func TestHunterLevelCap(t *testing.T) {
	tests := []struct {
		name    string
		tier    int
		want    int
		wantErr bool
	}{
		{"tier 0", 0, 10, false},
		{"tier 1", 1, 20, false},
		{"tier 2", 2, 40, false},
		{"tier 3", 3, 60, false},
		{"tier 4", 4, 80, false},
		{"tier 5 max", 5, 100, false},
		{"negative", -1, 0, true},
		{"too high", 6, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HunterLevelCap(tt.tier)
			if (err != nil) != tt.wantErr {
				t.Errorf("HunterLevelCap(%d) error = %v, wantErr %v", tt.tier, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("HunterLevelCap(%d) = %d, want %d", tt.tier, got, tt.want)
			}
		})
	}
}

func TestLimitBreakCosts(t *testing.T) {
	wantShards := []int64{1, 1, 2, 2, 4}
	wantCubes := []int64{5, 10, 20, 40, 60}

	for tier := 0; tier < MaxTier; tier++ {
		shards, err := LimitBreakShardCost(tier)
		if err != nil {
			t.Fatalf("LimitBreakShardCost(%d) error = %v", tier, err)
		}
		if shards != wantShards[tier] {
			t.Errorf("LimitBreakShardCost(%d) = %d, want %d", tier, shards, wantShards[tier])
		}
		cubes, err := LimitBreakCubeCost(tier)
		if err != nil {
			t.Fatalf("LimitBreakCubeCost(%d) error = %v", tier, err)
		}
		if cubes != wantCubes[tier] {
			t.Errorf("LimitBreakCubeCost(%d) = %d, want %d", tier, cubes, wantCubes[tier])
		}
	}

	// Tier 5 is max: nothing left to break into.
	if _, err := LimitBreakShardCost(MaxTier); err == nil {
		t.Error("LimitBreakShardCost(MaxTier) expected error")
	}
	if _, err := LimitBreakCubeCost(MaxTier); err == nil {
		t.Error("LimitBreakCubeCost(MaxTier) expected error")
	}
}

func TestResetEligibility(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	if !CanResetStats(now, nil) {
		t.Error("never-reset player should be eligible")
	}

	justNow := now.Unix() - 60
	if CanResetStats(now, &justNow) {
		t.Error("reset a minute ago should be on cooldown")
	}

	weekAgo := now.Add(-StatResetPeriod).Unix()
	if !CanResetStats(now, &weekAgo) {
		t.Error("reset exactly one period ago should be eligible")
	}

	thirteenDays := now.Add(-13 * 24 * time.Hour).Unix()
	if CanResetSkills(now, &thirteenDays) {
		t.Error("skill reset needs two weeks, 13 days should be on cooldown")
	}
	fourteenDays := now.Add(-SkillResetPeriod).Unix()
	if !CanResetSkills(now, &fourteenDays) {
		t.Error("skill reset after two weeks should be eligible")
	}
}
