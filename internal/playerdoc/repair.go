package playerdoc

import (
	"fmt"

	"github.com/monarchbot/arise/internal/domain"
	"github.com/monarchbot/arise/internal/progression"
)

// XPMissing is the scan sentinel for rows created before the xp column
// existed (stored NULL). Repair backfills a conservative estimate.
const XPMissing = -1

// legacySkillPointFactor flags stored skill-point totals left over from the
// old 10-per-level formula: anything above double the canonical total is
// treated as drift and clamped.
const legacySkillPointFactor = 2

// Repair normalizes a freshly hydrated player in place and returns a
// description of every fix applied. leased reports whether a lock lease is
// currently held for this player; when it is not, stale busy flags are
// force-cleared so a crash can never wedge the row.
func Repair(p *domain.Player, leased bool) (applied []string) {
	if p.Level < 1 {
		p.Level = 1
		applied = append(applied, "level floored to 1")
	}

	if p.XP == XPMissing {
		// Pre-xp-column row: conservative estimate, same as the original
		// backfill.
		p.XP = 0
		if p.Level > 1 {
			p.XP = int64(p.Level-1) * 50
		}
		applied = append(applied, "xp backfilled from level")
	} else if p.XP < 0 {
		p.XP = 0
		applied = append(applied, "negative xp zeroed")
	}

	applied = append(applied, repairPoints(p)...)
	applied = append(applied, repairStats(p)...)
	applied = append(applied, repairCurrencies(p)...)
	applied = append(applied, repairCollections(p)...)
	applied = append(applied, repairShards(p)...)
	applied = append(applied, repairEquipment(p)...)

	if !leased && (p.Busy || p.Trading) {
		p.Busy = false
		p.Trading = false
		applied = append(applied, "stale busy flags cleared")
	}

	return applied
}

// repairPoints reconciles stored point balances with the canonical
// per-level formulas. Stored values may legitimately sit below the
// canonical total (spends) or above it (achievement bonuses); only
// negative/missing values and legacy-formula drift are corrected.
func repairPoints(p *domain.Player) (applied []string) {
	if p.StatPoints < 0 {
		p.StatPoints = progression.StatPointsForLevel(p.Level)
		applied = append(applied, "stat points recalculated")
	}

	canonical := progression.SkillPointsForLevel(p.Level)
	if p.SkillPoints < 0 {
		p.SkillPoints = canonical
		applied = append(applied, "skill points recalculated")
	} else if p.SkillPoints > canonical*legacySkillPointFactor {
		p.SkillPoints = canonical
		applied = append(applied, fmt.Sprintf("legacy skill points clamped to %d", canonical))
	}
	return applied
}

func repairStats(p *domain.Player) (applied []string) {
	fix := func(v *int, base int, name string) {
		if *v <= 0 {
			*v = base
			applied = append(applied, name+" restored to base")
		}
	}
	fix(&p.Attack, domain.BaseAttack, "attack")
	fix(&p.Defense, domain.BaseDefense, "defense")
	fix(&p.HP, domain.BaseHP, "hp")
	fix(&p.MP, domain.BaseMP, "mp")
	fix(&p.Precision, domain.BasePrecision, "precision")
	return applied
}

// repairCurrencies zeroes every negative counter; a row can hold several at
// once, so the sweep never stops early.
func repairCurrencies(p *domain.Player) (applied []string) {
	zeroed := false
	for _, c := range []*int64{
		&p.Gold, &p.Diamond, &p.Stone, &p.Ticket, &p.Key, &p.TOS,
		&p.Cubes.Fire, &p.Cubes.Ice, &p.Cubes.Wind, &p.Cubes.Earth,
		&p.Cubes.Dark, &p.Cubes.Light, &p.Gear1, &p.Gear2, &p.Gear3,
	} {
		if *c < 0 {
			*c = 0
			zeroed = true
		}
	}
	if zeroed {
		applied = append(applied, "negative currencies zeroed")
	}
	return applied
}

// repairCollections replaces nil maps so mutators never have to nil-check.
func repairCollections(p *domain.Player) (applied []string) {
	if p.Inventory.Entries == nil || p.Inventory.Shards == nil {
		p.Inventory = mergeCollection(p.Inventory)
		applied = append(applied, "inventory maps initialized")
	}
	if p.Hunters.Entries == nil || p.Hunters.Shards == nil {
		p.Hunters = mergeCollection(p.Hunters)
		applied = append(applied, "hunters maps initialized")
	}
	if p.Shadows == nil {
		p.Shadows = domain.ShadowMap{}
	}
	if p.Quests == nil {
		p.Quests = domain.QuestMap{}
	}
	if p.Titles == nil {
		p.Titles = domain.TitleMap{}
	}
	if p.Achievements == nil {
		p.Achievements = domain.AchievementMap{}
	}
	if p.DefeatedBosses == nil {
		p.DefeatedBosses = domain.BossMap{}
	}
	if p.StoryProgress == nil {
		p.StoryProgress = domain.Document{}
	}
	if p.Market == nil {
		p.Market = domain.Document{}
	}
	return applied
}

// repairShards moves shard counters found in the hunters document into the
// inventory, the canonical home for all shards. Must run after
// repairCollections so both shard maps exist.
func repairShards(p *domain.Player) (applied []string) {
	if len(p.Hunters.Shards) == 0 {
		return nil
	}
	for id, n := range p.Hunters.Shards {
		if n > 0 {
			p.Inventory.Shards[id] += n
		}
	}
	p.Hunters.Shards = map[string]int64{}
	applied = append(applied, "hunter shards moved to inventory")
	return applied
}

func mergeCollection(c domain.Collection) domain.Collection {
	if c.Entries == nil {
		c.Entries = map[string]*domain.GearEntry{}
	}
	if c.Shards == nil {
		c.Shards = map[string]int64{}
	}
	return c
}

// repairEquipment fills in missing slots and clears references to content
// the player no longer owns.
func repairEquipment(p *domain.Player) (applied []string) {
	if p.Equipped == nil {
		p.Equipped = domain.NewEquipment()
		applied = append(applied, "equipment initialized")
		return applied
	}
	for _, slot := range domain.EquipmentSlots {
		if _, ok := p.Equipped[slot]; !ok {
			p.Equipped[slot] = ""
		}
	}
	for slot, ref := range p.Equipped {
		if ref == "" {
			continue
		}
		if !p.Inventory.Has(ref) && !p.Hunters.Has(ref) {
			p.Equipped[slot] = ""
			applied = append(applied, fmt.Sprintf("stale reference cleared from slot %s", slot))
		}
	}
	return applied
}
