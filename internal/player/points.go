package player

import (
	"context"
	"fmt"

	"github.com/monarchbot/arise/internal/domain"
	"github.com/monarchbot/arise/internal/progression"
)

// SpendStatPoints allocates stat points into a named base stat. Returns
// false without mutation when the balance is short.
func (s *service) SpendStatPoints(ctx context.Context, id int64, stat string, amount int64) (bool, error) {
	if amount <= 0 {
		return false, nil
	}

	spent := false
	err := s.WithLock(ctx, id, func(p *domain.Player) error {
		target, err := statField(p, stat)
		if err != nil {
			return err
		}
		if p.StatPoints < amount {
			return nil
		}
		p.StatPoints -= amount
		*target += int(amount)
		spent = true
		return nil
	})
	return spent, err
}

// SpendSkillPoints deducts skill points. Returns false without mutation when
// the balance is short.
func (s *service) SpendSkillPoints(ctx context.Context, id int64, amount int64) (bool, error) {
	if amount <= 0 {
		return false, nil
	}

	spent := false
	err := s.WithLock(ctx, id, func(p *domain.Player) error {
		if p.SkillPoints < amount {
			return nil
		}
		p.SkillPoints -= amount
		spent = true
		return nil
	})
	return spent, err
}

// ResetStats restores base stats and refunds the canonical stat-point total
// for the player's level plus recorded achievement bonuses. Gated to once
// per week.
func (s *service) ResetStats(ctx context.Context, id int64) error {
	return s.WithLock(ctx, id, func(p *domain.Player) error {
		now := s.now()
		if !progression.CanResetStats(now, p.LastStatReset) {
			next := progression.NextResetAt(p.LastStatReset, progression.StatResetPeriod)
			return fmt.Errorf("%w: available at %s", domain.ErrResetOnCooldown, next.UTC().Format("2006-01-02 15:04"))
		}

		p.Attack = domain.BaseAttack
		p.Defense = domain.BaseDefense
		p.HP = domain.BaseHP
		p.MP = domain.BaseMP
		p.Precision = domain.BasePrecision
		p.StatPoints = progression.StatPointsForLevel(p.Level) + achievementBonus(p)

		ts := now.Unix()
		p.LastStatReset = &ts
		return nil
	})
}

// ResetSkills refunds the canonical skill-point total for the player's
// level. Gated to once per two weeks.
func (s *service) ResetSkills(ctx context.Context, id int64) error {
	return s.WithLock(ctx, id, func(p *domain.Player) error {
		now := s.now()
		if !progression.CanResetSkills(now, p.LastSkillReset) {
			next := progression.NextResetAt(p.LastSkillReset, progression.SkillResetPeriod)
			return fmt.Errorf("%w: available at %s", domain.ErrResetOnCooldown, next.UTC().Format("2006-01-02 15:04"))
		}

		p.SkillPoints = progression.SkillPointsForLevel(p.Level)

		ts := now.Unix()
		p.LastSkillReset = &ts
		return nil
	})
}

// GrantAchievement unlocks an achievement once and credits its one-time
// stat-point bonus. Re-granting an unlocked achievement is a no-op.
func (s *service) GrantAchievement(ctx context.Context, id int64, achievementID string, bonusStatPoints int64) error {
	return s.WithLock(ctx, id, func(p *domain.Player) error {
		a, ok := p.Achievements[achievementID]
		if ok && a.Unlocked {
			return nil
		}
		if !ok {
			a = &domain.Achievement{}
			p.Achievements[achievementID] = a
		}
		a.Unlocked = true
		a.StatPoints = bonusStatPoints
		a.UnlockedAt = s.now().Unix()
		p.StatPoints += bonusStatPoints
		return nil
	})
}

// achievementBonus sums the recorded one-time stat-point bonuses so resets
// can refund them without consulting content tables.
func achievementBonus(p *domain.Player) int64 {
	var total int64
	for _, a := range p.Achievements {
		if a != nil && a.Unlocked {
			total += a.StatPoints
		}
	}
	return total
}

func statField(p *domain.Player, stat string) (*int, error) {
	switch stat {
	case StatAttack:
		return &p.Attack, nil
	case StatDefense:
		return &p.Defense, nil
	case StatHP:
		return &p.HP, nil
	case StatMP:
		return &p.MP, nil
	case StatPrecision:
		return &p.Precision, nil
	}
	return nil, fmt.Errorf("unknown stat %q", stat)
}
