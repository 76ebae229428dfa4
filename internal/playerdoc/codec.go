// Package playerdoc keeps old or corrupted player rows usable without manual
// intervention. It owns the tolerant decode of the JSONB document columns,
// the prune-on-save pass that bounds row growth, and the emergency shrink
// applied when a row outgrows the storage ceiling. Every fix is applied
// lazily on read or write; there is no separate migration runner for
// document shapes.
package playerdoc

import (
	"encoding/json"

	"github.com/monarchbot/arise/internal/domain"
)

// Document column names, in the order they appear in the players table.
const (
	DocInventory      = "inventory"
	DocHunters        = "hunters"
	DocShadows        = "shadows"
	DocEquipped       = "equipped"
	DocQuests         = "quests"
	DocMission        = "mission"
	DocStoryProgress  = "story_progress"
	DocTitles         = "titles"
	DocAchievements   = "achievements"
	DocDefeatedBosses = "defeated_bosses"
	DocMarket         = "market"
	DocLoot           = "loot"
)

// DocColumns lists every document column.
var DocColumns = []string{
	DocInventory, DocHunters, DocShadows, DocEquipped, DocQuests,
	DocMission, DocStoryProgress, DocTitles, DocAchievements,
	DocDefeatedBosses, DocMarket, DocLoot,
}

// DecodeDocuments fills the player's document fields from raw column bytes.
// Each field tolerates three input shapes: the structured value, a
// JSON-encoded string of that value (legacy double encoding), or absence.
// A field that fails to decode is left at its typed default and reported in
// the returned list; decoding never fails as a whole.
func DecodeDocuments(p *domain.Player, docs map[string][]byte) (defaulted []string) {
	for _, col := range DocColumns {
		raw, ok := docs[col]
		if !ok || len(raw) == 0 {
			continue
		}
		if !decodeDoc(raw, target(p, col)) {
			defaulted = append(defaulted, col)
		}
	}
	return defaulted
}

// EncodeDocuments serializes the player's document fields, pruned of dead
// weight, and reports the total payload size in bytes.
func EncodeDocuments(p *domain.Player) (map[string][]byte, int, error) {
	PruneDocuments(p)

	docs := make(map[string][]byte, len(DocColumns))
	size := 0
	for _, col := range DocColumns {
		b, err := json.Marshal(target(p, col))
		if err != nil {
			return nil, 0, err
		}
		docs[col] = b
		size += len(b)
	}
	return docs, size, nil
}

// PruneDocuments drops nil values, empty strings and empty nested maps from
// the shape-free documents so rows stop accreting junk across saves.
func PruneDocuments(p *domain.Player) {
	p.StoryProgress = pruneDocument(p.StoryProgress)
	p.Market = pruneDocument(p.Market)
	for id, n := range p.Inventory.Shards {
		if n <= 0 {
			delete(p.Inventory.Shards, id)
		}
	}
	for id, n := range p.Hunters.Shards {
		if n <= 0 {
			delete(p.Hunters.Shards, id)
		}
	}
}

// decodeDoc unmarshals raw into target, unwrapping one layer of legacy
// string encoding if present. Returns false when the value is unusable and
// the target was left untouched.
func decodeDoc(raw []byte, target any) bool {
	if string(raw) == "null" {
		return true
	}
	if err := json.Unmarshal(raw, target); err == nil {
		return true
	}
	// Legacy rows sometimes hold the document JSON-encoded inside a string.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return true
		}
		if err := json.Unmarshal([]byte(s), target); err == nil {
			return true
		}
	}
	return false
}

// target maps a column name to the matching field pointer.
func target(p *domain.Player, col string) any {
	switch col {
	case DocInventory:
		return &p.Inventory
	case DocHunters:
		return &p.Hunters
	case DocShadows:
		return &p.Shadows
	case DocEquipped:
		return &p.Equipped
	case DocQuests:
		return &p.Quests
	case DocMission:
		return &p.Mission
	case DocStoryProgress:
		return &p.StoryProgress
	case DocTitles:
		return &p.Titles
	case DocAchievements:
		return &p.Achievements
	case DocDefeatedBosses:
		return &p.DefeatedBosses
	case DocMarket:
		return &p.Market
	case DocLoot:
		return &p.Loot
	}
	return nil
}

func pruneDocument(doc domain.Document) domain.Document {
	if doc == nil {
		return domain.Document{}
	}
	for key, value := range doc {
		switch v := value.(type) {
		case nil:
			delete(doc, key)
		case string:
			if v == "" {
				delete(doc, key)
			}
		case map[string]any:
			nested := pruneDocument(domain.Document(v))
			if len(nested) == 0 {
				delete(doc, key)
			} else {
				doc[key] = map[string]any(nested)
			}
		}
	}
	return doc
}
