package player

import (
	"context"

	"github.com/monarchbot/arise/internal/domain"
)

// AddBossDefeat records a boss kill, upgrading any legacy record shape to
// the structured count on the way.
func (s *service) AddBossDefeat(ctx context.Context, id int64, bossID string) error {
	return s.WithLock(ctx, id, func(p *domain.Player) error {
		now := s.now().Unix()
		r, ok := p.DefeatedBosses[bossID]
		if !ok || r == nil {
			p.DefeatedBosses[bossID] = &domain.BossRecord{
				Count:       1,
				FirstDefeat: now,
				LastDefeat:  now,
			}
			return nil
		}
		r.Count++
		if r.FirstDefeat == 0 {
			r.FirstDefeat = now
		}
		r.LastDefeat = now
		return nil
	})
}

// HasDefeatedBoss reports whether the player has ever defeated the boss.
func (s *service) HasDefeatedBoss(ctx context.Context, id int64, bossID string) (bool, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return p.DefeatedBosses[bossID].Defeated(), nil
}

// UpdateQuest advances a quest by delta, creating the record on first touch.
// Returns whether the quest is now complete.
func (s *service) UpdateQuest(ctx context.Context, id int64, questName string, delta int64) (bool, error) {
	completed := false
	err := s.WithLock(ctx, id, func(p *domain.Player) error {
		q, ok := p.Quests[questName]
		if !ok {
			q = &domain.Quest{Required: domain.DefaultQuestRequired}
			p.Quests[questName] = q
		}
		q.Current += delta
		if q.Current < 0 {
			q.Current = 0
		}
		if q.Current >= q.Required {
			q.Completed = true
		}
		completed = q.Completed
		return nil
	})
	return completed, err
}

// AdvanceMission bumps the per-command mission counter, resetting it when
// the command changes. Returns the new count.
func (s *service) AdvanceMission(ctx context.Context, id int64, cmd string) (int64, error) {
	var times int64
	err := s.WithLock(ctx, id, func(p *domain.Player) error {
		if p.Mission.Cmd != cmd {
			p.Mission = domain.Mission{Cmd: cmd}
		}
		p.Mission.Times++
		times = p.Mission.Times
		return nil
	})
	return times, err
}
