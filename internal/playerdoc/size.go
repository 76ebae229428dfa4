package playerdoc

import (
	"sort"

	"github.com/monarchbot/arise/internal/domain"
)

// Payload size limits for one player row. Crossing the soft limit logs a
// warning; crossing the hard limit triggers an emergency shrink before the
// save is retried, because losing low-value duplicate entries beats losing
// the whole row.
const (
	SoftSizeLimitBytes = 1 << 20 // 1 MiB
	HardSizeLimitBytes = 5 << 20 // 5 MiB

	MaxInventoryItems = 1000
	MaxHunters        = 500
)

// EmergencyShrink bounds the largest collections and clears transient state.
// Invalid entries go first, then the sorted-key tail beyond the cap, so the
// cut is deterministic. Returns the number of entries dropped.
func EmergencyShrink(p *domain.Player) int {
	dropped := capEntries(p.Inventory.Entries, MaxInventoryItems)
	dropped += capEntries(p.Hunters.Entries, MaxHunters)
	p.Busy = false
	p.Trading = false
	return dropped
}

func capEntries(entries map[string]*domain.GearEntry, limit int) int {
	dropped := 0
	keys := make([]string, 0, len(entries))
	for id, e := range entries {
		if e == nil || e.Level < 1 {
			delete(entries, id)
			dropped++
			continue
		}
		keys = append(keys, id)
	}
	if len(keys) <= limit {
		return dropped
	}
	sort.Strings(keys)
	for _, id := range keys[limit:] {
		delete(entries, id)
		dropped++
	}
	return dropped
}
