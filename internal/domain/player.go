package domain

// Base stat values restored by a stat reset.
const (
	BaseAttack    = 10
	BaseDefense   = 10
	BaseHP        = 100
	BaseMP        = 10
	BasePrecision = 10
)

// Cubes holds the six elemental crafting currencies.
type Cubes struct {
	Fire  int64 `json:"fire"`
	Ice   int64 `json:"ice"`
	Wind  int64 `json:"wind"`
	Earth int64 `json:"earth"`
	Dark  int64 `json:"dark"`
	Light int64 `json:"light"`
}

// Element names accepted by cube operations.
const (
	ElementFire  = "fire"
	ElementIce   = "ice"
	ElementWind  = "wind"
	ElementEarth = "earth"
	ElementDark  = "dark"
	ElementLight = "light"
)

// Get returns the counter for the named element, false if the name is unknown.
func (c *Cubes) Get(element string) (int64, bool) {
	switch element {
	case ElementFire:
		return c.Fire, true
	case ElementIce:
		return c.Ice, true
	case ElementWind:
		return c.Wind, true
	case ElementEarth:
		return c.Earth, true
	case ElementDark:
		return c.Dark, true
	case ElementLight:
		return c.Light, true
	}
	return 0, false
}

// Spend deducts amount from the named element. Returns false without mutation
// if the name is unknown or the balance is insufficient.
func (c *Cubes) Spend(element string, amount int64) bool {
	have, ok := c.Get(element)
	if !ok || have < amount {
		return false
	}
	switch element {
	case ElementFire:
		c.Fire -= amount
	case ElementIce:
		c.Ice -= amount
	case ElementWind:
		c.Wind -= amount
	case ElementEarth:
		c.Earth -= amount
	case ElementDark:
		c.Dark -= amount
	case ElementLight:
		c.Light -= amount
	}
	return true
}

// Add credits amount to the named element. Unknown names are ignored.
func (c *Cubes) Add(element string, amount int64) {
	switch element {
	case ElementFire:
		c.Fire += amount
	case ElementIce:
		c.Ice += amount
	case ElementWind:
		c.Wind += amount
	case ElementEarth:
		c.Earth += amount
	case ElementDark:
		c.Dark += amount
	case ElementLight:
		c.Light += amount
	}
}

// Player is the in-memory aggregate for one player row. It is hydrated from
// the store with every field defaulted, mutated through player.Service, and
// written back on Save. It is not safe for concurrent use; serialize access
// per player ID via the service's WithLock.
type Player struct {
	ID int64 `json:"id"`

	// Progression
	Level          int    `json:"level"`
	XP             int64  `json:"xp"`
	StatPoints     int64  `json:"stat_points"`
	SkillPoints    int64  `json:"skill_points"`
	LastStatReset  *int64 `json:"last_stat_reset,omitempty"`  // epoch seconds, nil = never
	LastSkillReset *int64 `json:"last_skill_reset,omitempty"` // epoch seconds, nil = never

	// Base combat stats
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	HP        int `json:"hp"`
	MP        int `json:"mp"`
	Precision int `json:"precision"`

	// Currencies
	Gold    int64 `json:"gold"`
	Diamond int64 `json:"diamond"`
	Stone   int64 `json:"stone"`
	Ticket  int64 `json:"ticket"`
	Key     int64 `json:"key"`
	TOS     int64 `json:"tos"` // traces of shadow
	Cubes   Cubes `json:"cubes"`
	Gear1   int64 `json:"gear1"`
	Gear2   int64 `json:"gear2"`
	Gear3   int64 `json:"gear3"`

	// Collections (JSONB document columns)
	Inventory      Collection     `json:"inventory"`
	Hunters        Collection     `json:"hunters"`
	Shadows        ShadowMap      `json:"shadows"`
	Equipped       Equipment      `json:"equipped"`
	Quests         QuestMap       `json:"quests"`
	Mission        Mission        `json:"mission"`
	StoryProgress  Document       `json:"story_progress"`
	Titles         TitleMap       `json:"titles"`
	Achievements   AchievementMap `json:"achievements"`
	DefeatedBosses BossMap        `json:"defeated_bosses"`
	Market         Document       `json:"market"`
	Loot           Loot           `json:"loot"`

	// Legacy advisory flags. Persisted so older tooling can still read them,
	// but the lease lock is the real mutual-exclusion mechanism; these are
	// cleared on load whenever no lease is held.
	Busy    bool `json:"busy"`  // legacy `inc`
	Trading bool `json:"trade"`
}

// New returns a fully defaulted player for the given ID. The row is not
// persisted until the first Save.
func New(id int64) *Player {
	return &Player{
		ID:             id,
		Level:          1,
		Attack:         BaseAttack,
		Defense:        BaseDefense,
		HP:             BaseHP,
		MP:             BaseMP,
		Precision:      BasePrecision,
		Inventory:      NewCollection(),
		Hunters:        NewCollection(),
		Shadows:        ShadowMap{},
		Equipped:       NewEquipment(),
		Quests:         QuestMap{},
		Mission:        Mission{},
		StoryProgress:  Document{},
		Titles:         TitleMap{},
		Achievements:   AchievementMap{},
		DefeatedBosses: BossMap{},
		Market:         Document{},
	}
}

// TotalBaseStats is used by rank evaluation and achievement progress.
func (p *Player) TotalBaseStats() int {
	return p.Attack + p.Defense + p.HP + p.MP
}
