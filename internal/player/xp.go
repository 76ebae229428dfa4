package player

import (
	"context"
	"fmt"

	"github.com/monarchbot/arise/internal/domain"
	"github.com/monarchbot/arise/internal/logger"
	"github.com/monarchbot/arise/internal/metrics"
	"github.com/monarchbot/arise/internal/progression"
)

// AddXP credits player XP and applies every level-up it pays for. Each level
// grants stat and skill points per the progression curve. Residual XP carries
// over to the next level.
func (s *service) AddXP(ctx context.Context, id int64, amount int64) (int, error) {
	if amount <= 0 {
		return 0, nil
	}

	levelsGained := 0
	err := s.WithLock(ctx, id, func(p *domain.Player) error {
		p.XP += amount
		for p.XP >= progression.XPThreshold(p.Level) {
			p.XP -= progression.XPThreshold(p.Level)
			p.Level++
			p.StatPoints += progression.StatPointsPerLevel
			p.SkillPoints += progression.SkillPointsPerLevel
			levelsGained++
		}
		if levelsGained > 0 {
			metrics.LevelsGained.Add(float64(levelsGained))
			logger.FromContext(ctx).Info(logMsgLevelUp,
				"player_id", id, "level", p.Level, "levels_gained", levelsGained)
		}
		return nil
	})
	return levelsGained, err
}

// AddShadowXP credits XP to an arisen shadow. Shadows level on a steeper
// curve than their owner.
func (s *service) AddShadowXP(ctx context.Context, id int64, shadowID string, amount int64) (int, error) {
	if amount <= 0 {
		return 0, nil
	}

	levelsGained := 0
	err := s.WithLock(ctx, id, func(p *domain.Player) error {
		shadow, ok := p.Shadows[shadowID]
		if !ok {
			return fmt.Errorf("%w: shadow %s", domain.ErrNotOwned, shadowID)
		}
		shadow.XP += amount
		for shadow.XP >= progression.ShadowXPThreshold(shadow.Level) {
			shadow.XP -= progression.ShadowXPThreshold(shadow.Level)
			shadow.Level++
			levelsGained++
		}
		return nil
	})
	return levelsGained, err
}

// AddHunterXP credits XP to an owned hunter, clamped at the level cap of its
// current limit-break tier. Residual XP is retained so it pays out after the
// next limit break.
func (s *service) AddHunterXP(ctx context.Context, id int64, hunterID string, amount int64) (int, error) {
	return s.addGearXP(ctx, id, hunterID, amount, func(p *domain.Player) *domain.Collection {
		return &p.Hunters
	})
}

// AddWeaponXP credits XP to an owned weapon. Weapons share the hunter tier
// and cap rules.
func (s *service) AddWeaponXP(ctx context.Context, id int64, weaponID string, amount int64) (int, error) {
	return s.addGearXP(ctx, id, weaponID, amount, func(p *domain.Player) *domain.Collection {
		return &p.Inventory
	})
}

func (s *service) addGearXP(ctx context.Context, id int64, contentID string, amount int64, pick func(*domain.Player) *domain.Collection) (int, error) {
	if amount <= 0 {
		return 0, nil
	}

	levelsGained := 0
	err := s.WithLock(ctx, id, func(p *domain.Player) error {
		entry, ok := pick(p).Entries[contentID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrNotOwned, contentID)
		}
		levelCap, err := progression.HunterLevelCap(entry.Tier)
		if err != nil {
			return err
		}
		entry.XP += amount
		for entry.Level < levelCap && entry.XP >= progression.GearXPThreshold() {
			entry.XP -= progression.GearXPThreshold()
			entry.Level++
			levelsGained++
		}
		return nil
	})
	return levelsGained, err
}

// LimitBreak advances an owned hunter or weapon to the next tier. Requires
// the entry to sit at its tier's level cap and spends duplicate shards plus
// elemental cubes per the cost tables. Shards are always drawn from the
// inventory document, whichever collection owns the entry.
func (s *service) LimitBreak(ctx context.Context, id int64, contentID, element string) error {
	return s.WithLock(ctx, id, func(p *domain.Player) error {
		entry, ok := p.Hunters.Entries[contentID]
		if !ok {
			entry, ok = p.Inventory.Entries[contentID]
		}
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrNotOwned, contentID)
		}
		if entry.Tier >= progression.MaxTier {
			return fmt.Errorf("%w: %s", domain.ErrTierMaxed, contentID)
		}

		levelCap, err := progression.HunterLevelCap(entry.Tier)
		if err != nil {
			return err
		}
		if entry.Level < levelCap {
			return fmt.Errorf("%w: %s is level %d of %d", domain.ErrLevelCapNotMet, contentID, entry.Level, levelCap)
		}

		shardCost, err := progression.LimitBreakShardCost(entry.Tier)
		if err != nil {
			return err
		}
		cubeCost, err := progression.LimitBreakCubeCost(entry.Tier)
		if err != nil {
			return err
		}

		if p.Inventory.Shards[contentID] < shardCost {
			return fmt.Errorf("%w: need %d shards of %s", domain.ErrInsufficientShards, shardCost, contentID)
		}
		if !p.Cubes.Spend(element, cubeCost) {
			return fmt.Errorf("%w: need %d %s cubes", domain.ErrInsufficientCubes, cubeCost, element)
		}

		p.Inventory.Shards[contentID] -= shardCost
		if p.Inventory.Shards[contentID] <= 0 {
			delete(p.Inventory.Shards, contentID)
		}
		entry.Tier++
		return nil
	})
}
