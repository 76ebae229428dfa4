package domain

import (
	"encoding/json"
	"strings"
)

// ShardKeyPrefix marks duplicate-ownership counters inside a collection
// document: owning a second copy of "igris" stores the counter under
// "s_igris" instead of overwriting the original entry.
const ShardKeyPrefix = "s_"

// ShardKey returns the shard counter key for a content ID.
func ShardKey(id string) string { return ShardKeyPrefix + id }

// GearEntry is one owned item or hunter.
type GearEntry struct {
	Level int   `json:"level"`
	Tier  int   `json:"tier"`
	XP    int64 `json:"xp"`
}

// Collection is an owned-content document. On the wire it is a single map
// mixing entry objects with integer shard counters keyed "s_<id>", which is
// the shape the legacy rows use; in memory the two are kept apart.
type Collection struct {
	Entries map[string]*GearEntry
	Shards  map[string]int64 // keyed by base content ID, without the prefix
}

// NewCollection returns an empty collection.
func NewCollection() Collection {
	return Collection{
		Entries: map[string]*GearEntry{},
		Shards:  map[string]int64{},
	}
}

// Has reports whether the base content ID is owned.
func (c Collection) Has(id string) bool {
	_, ok := c.Entries[id]
	return ok
}

// Len returns the number of owned entries, shards excluded.
func (c Collection) Len() int { return len(c.Entries) }

// MarshalJSON flattens entries and shard counters into the legacy mixed map.
func (c Collection) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(c.Entries)+len(c.Shards))
	for id, e := range c.Entries {
		flat[id] = e
	}
	for id, n := range c.Shards {
		flat[ShardKey(id)] = n
	}
	return json.Marshal(flat)
}

// UnmarshalJSON splits the legacy mixed map back into entries and shards.
// Values that are neither an entry object nor a numeric shard counter are
// dropped rather than failing the whole document.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	*c = NewCollection()
	for key, raw := range flat {
		if strings.HasPrefix(key, ShardKeyPrefix) {
			var n int64
			if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
				c.Shards[strings.TrimPrefix(key, ShardKeyPrefix)] = n
			}
			continue
		}
		var e GearEntry
		if err := json.Unmarshal(raw, &e); err == nil {
			entry := e
			c.Entries[key] = &entry
		}
	}
	return nil
}

// Shadow is one arisen shadow, leveled independently of its owner.
type Shadow struct {
	Level int   `json:"level"`
	XP    int64 `json:"xp"`
}

// ShadowMap keys shadows by content ID.
type ShadowMap map[string]*Shadow

// Equipment slot names. Slot values reference an owned inventory or hunter
// ID, or are empty. The lowercase army keys are the legacy spelling and are
// kept so old rows round-trip unchanged.
var EquipmentSlots = []string{
	"Weapon", "Weapon_2", "Basic", "QTE", "Ultimate",
	"Helmet", "Armor", "Gloves", "Boots", "Necklaces",
	"Bracelets", "Rings", "Earrings",
	"Party_1", "Party_2", "Party_3",
	"army_1", "army_2", "army_3",
}

// Equipment maps slot name to equipped content ID ("" = empty). Empty slots
// serialize as null, matching the legacy rows.
type Equipment map[string]string

// NewEquipment returns an equipment map with every known slot empty.
func NewEquipment() Equipment {
	eq := make(Equipment, len(EquipmentSlots))
	for _, slot := range EquipmentSlots {
		eq[slot] = ""
	}
	return eq
}

// KnownSlot reports whether the slot name is one of the fixed slots.
func (Equipment) KnownSlot(slot string) bool {
	for _, s := range EquipmentSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// ClearReferences empties every slot pointing at the given content ID and
// returns the slots cleared. Called when an item or hunter is removed so no
// stale reference survives.
func (eq Equipment) ClearReferences(id string) []string {
	var cleared []string
	for slot, ref := range eq {
		if ref != "" && ref == id {
			eq[slot] = ""
			cleared = append(cleared, slot)
		}
	}
	return cleared
}

func (eq Equipment) MarshalJSON() ([]byte, error) {
	out := make(map[string]*string, len(eq))
	for slot, ref := range eq {
		if ref == "" {
			out[slot] = nil
			continue
		}
		r := ref
		out[slot] = &r
	}
	return json.Marshal(out)
}

func (eq *Equipment) UnmarshalJSON(data []byte) error {
	var in map[string]*string
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := NewEquipment()
	for slot, ref := range in {
		if ref != nil {
			out[slot] = *ref
		} else if _, known := out[slot]; !known {
			out[slot] = ""
		}
	}
	*eq = out
	return nil
}

// Quest is one quest progress record.
type Quest struct {
	Current   int64 `json:"current"`
	Required  int64 `json:"required"`
	Completed bool  `json:"completed"`
}

// DefaultQuestRequired substitutes for corrupted quest records.
const DefaultQuestRequired = 100

// UnmarshalJSON resets corrupted records (old rows hold stray strings here)
// to a fresh quest instead of failing the document.
func (q *Quest) UnmarshalJSON(data []byte) error {
	type plain Quest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*q = Quest{Required: DefaultQuestRequired}
		return nil
	}
	*q = Quest(p)
	if q.Required <= 0 {
		q.Required = DefaultQuestRequired
	}
	return nil
}

// QuestMap keys quests by quest name.
type QuestMap map[string]*Quest

// Mission is the per-command mission counter document.
type Mission struct {
	Cmd   string `json:"cmd"`
	Times int64  `json:"times"`
}

// Loot tracks lootbox win/lose tallies.
type Loot struct {
	Won  int64 `json:"won"`
	Lose int64 `json:"lose"`
}

// Title is one earned title.
type Title struct {
	Unlocked   bool  `json:"unlocked"`
	UnlockedAt int64 `json:"unlocked_at,omitempty"`
}

// TitleMap keys titles by title ID.
type TitleMap map[string]*Title

// Achievement is one achievement record. StatPoints records the one-time
// stat-point bonus granted on unlock so point totals stay reconcilable
// without consulting content tables.
type Achievement struct {
	Unlocked   bool  `json:"unlocked"`
	Progress   int64 `json:"progress,omitempty"`
	StatPoints int64 `json:"stat_points,omitempty"`
	UnlockedAt int64 `json:"unlocked_at,omitempty"`
}

// AchievementMap keys achievements by achievement ID.
type AchievementMap map[string]*Achievement

// BossRecord tracks defeats of one boss.
type BossRecord struct {
	Count       int64 `json:"count"`
	FirstDefeat int64 `json:"first_defeat,omitempty"`
	LastDefeat  int64 `json:"last_defeat,omitempty"`
}

// UnmarshalJSON accepts both the current structured record and the legacy
// truthy marker (true, 1, "1") that older rows stored per boss.
func (r *BossRecord) UnmarshalJSON(data []byte) error {
	type plain BossRecord
	var p plain
	if err := json.Unmarshal(data, &p); err == nil {
		*r = BossRecord(p)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*r = BossRecord{Count: 1}
		}
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*r = BossRecord{Count: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "" && s != "0" && s != "false" {
			*r = BossRecord{Count: 1}
		}
		return nil
	}
	// Unknown legacy shape, treat as not defeated.
	*r = BossRecord{}
	return nil
}

// Defeated reports whether the record counts as a defeat.
func (r *BossRecord) Defeated() bool { return r != nil && r.Count > 0 }

// BossMap keys defeat records by boss ID.
type BossMap map[string]*BossRecord

// Document is a shape-free auxiliary JSON document (story progress, market).
type Document map[string]any
