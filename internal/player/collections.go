package player

import (
	"context"
	"fmt"

	"github.com/monarchbot/arise/internal/domain"
	"github.com/monarchbot/arise/internal/logger"
	"github.com/monarchbot/arise/internal/progression"
)

// AddItem grants an item. A first copy becomes an owned entry seeded from
// init (the zero value means level 1, tier 0); further copies increment the
// shard counter instead. Returns whether the grant was a duplicate.
func (s *service) AddItem(ctx context.Context, id int64, itemID string, init domain.GearEntry) (bool, error) {
	return s.addToCollection(ctx, id, itemID, init, func(p *domain.Player) *domain.Collection {
		return &p.Inventory
	})
}

// AddHunter grants a hunter with the same duplicate-to-shard rule as items.
// Hunter shards live in the inventory document under "s_<hunter_id>", the
// same place item shards go; the hunters document never carries shard keys.
func (s *service) AddHunter(ctx context.Context, id int64, hunterID string, init domain.GearEntry) (bool, error) {
	return s.addToCollection(ctx, id, hunterID, init, func(p *domain.Player) *domain.Collection {
		return &p.Hunters
	})
}

func (s *service) addToCollection(ctx context.Context, id int64, contentID string, init domain.GearEntry, pick func(*domain.Player) *domain.Collection) (bool, error) {
	if err := progression.ValidateTier(init.Tier); err != nil {
		return false, err
	}
	if init.Level < 1 {
		init.Level = 1
	}
	if levelCap, err := progression.HunterLevelCap(init.Tier); err == nil && init.Level > levelCap {
		init.Level = levelCap
	}
	if init.XP < 0 {
		init.XP = 0
	}

	duplicate := false
	err := s.WithLock(ctx, id, func(p *domain.Player) error {
		if pick(p).Has(contentID) {
			// All duplicate shards are stored in the inventory document,
			// hunters included.
			p.Inventory.Shards[contentID]++
			duplicate = true
			return nil
		}
		entry := init
		pick(p).Entries[contentID] = &entry
		return nil
	})
	return duplicate, err
}

// RemoveItem deletes an owned item along with its shards and clears any
// equipment slot still pointing at it.
func (s *service) RemoveItem(ctx context.Context, id int64, itemID string) error {
	return s.WithLock(ctx, id, func(p *domain.Player) error {
		if !p.Inventory.Has(itemID) {
			return fmt.Errorf("%w: %s", domain.ErrNotOwned, itemID)
		}
		delete(p.Inventory.Entries, itemID)
		delete(p.Inventory.Shards, itemID)
		if cleared := p.Equipped.ClearReferences(itemID); len(cleared) > 0 {
			logger.FromContext(ctx).Debug("Cleared equipment references on removal",
				"player_id", id, "item", itemID, "slots", cleared)
		}
		return nil
	})
}

// AriseShadow converts traces of shadow into an arisen shadow. Returns false
// without spending when the balance is short or the shadow already exists.
func (s *service) AriseShadow(ctx context.Context, id int64, shadowID string, cost int64) (bool, error) {
	arisen := false
	err := s.WithLock(ctx, id, func(p *domain.Player) error {
		if _, ok := p.Shadows[shadowID]; ok {
			return nil
		}
		if p.TOS < cost {
			return nil
		}
		p.TOS -= cost
		p.Shadows[shadowID] = &domain.Shadow{Level: 1}
		arisen = true
		return nil
	})
	return arisen, err
}
