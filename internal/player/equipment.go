package player

import (
	"context"
	"fmt"

	"github.com/monarchbot/arise/internal/domain"
)

// Equip places an owned item or hunter into a slot, replacing whatever was
// there.
func (s *service) Equip(ctx context.Context, id int64, slot, contentID string) error {
	return s.WithLock(ctx, id, func(p *domain.Player) error {
		if !p.Equipped.KnownSlot(slot) {
			return fmt.Errorf("%w: %s", domain.ErrSlotUnknown, slot)
		}
		if !p.Inventory.Has(contentID) && !p.Hunters.Has(contentID) {
			return fmt.Errorf("%w: %s", domain.ErrNotOwned, contentID)
		}
		p.Equipped[slot] = contentID
		return nil
	})
}

// Unequip empties a slot. Unequipping an already empty slot is a no-op.
func (s *service) Unequip(ctx context.Context, id int64, slot string) error {
	return s.WithLock(ctx, id, func(p *domain.Player) error {
		if !p.Equipped.KnownSlot(slot) {
			return fmt.Errorf("%w: %s", domain.ErrSlotUnknown, slot)
		}
		p.Equipped[slot] = ""
		return nil
	})
}
