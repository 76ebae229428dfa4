package player

import (
	"github.com/monarchbot/arise/internal/domain"
	"github.com/monarchbot/arise/internal/playerdoc"
	"github.com/monarchbot/arise/internal/repository"
)

// fromRecord hydrates a domain player from a storage record. Document decode
// failures fall back to typed defaults; the caller is expected to run
// playerdoc.Repair before handing the player out.
func fromRecord(rec *repository.PlayerRecord) (*domain.Player, []string) {
	p := domain.New(rec.ID)

	p.Level = rec.Level
	p.XP = rec.XP
	p.StatPoints = rec.StatPoints
	p.SkillPoints = rec.SkillPoints
	p.LastStatReset = rec.LastStatReset
	p.LastSkillReset = rec.LastSkillReset

	p.Attack = rec.Attack
	p.Defense = rec.Defense
	p.HP = rec.HP
	p.MP = rec.MP
	p.Precision = rec.Precision

	p.Gold = rec.Gold
	p.Diamond = rec.Diamond
	p.Stone = rec.Stone
	p.Ticket = rec.Ticket
	p.Key = rec.Key
	p.TOS = rec.TOS

	p.Cubes = domain.Cubes{
		Fire:  rec.FireCube,
		Ice:   rec.IceCube,
		Wind:  rec.WindCube,
		Earth: rec.EarthCube,
		Dark:  rec.DarkCube,
		Light: rec.LightCube,
	}

	p.Gear1 = rec.Gear1
	p.Gear2 = rec.Gear2
	p.Gear3 = rec.Gear3

	p.Busy = rec.Busy
	p.Trading = rec.Trading

	defaulted := playerdoc.DecodeDocuments(p, rec.Documents)
	return p, defaulted
}

// toRecord serializes a domain player into a storage record. The player is
// pruned as a side effect of encoding. Returns the total document payload
// size in bytes.
func toRecord(p *domain.Player) (*repository.PlayerRecord, int, error) {
	docs, size, err := playerdoc.EncodeDocuments(p)
	if err != nil {
		return nil, 0, err
	}

	rec := &repository.PlayerRecord{
		ID:             p.ID,
		Level:          p.Level,
		XP:             p.XP,
		StatPoints:     p.StatPoints,
		SkillPoints:    p.SkillPoints,
		LastStatReset:  p.LastStatReset,
		LastSkillReset: p.LastSkillReset,

		Attack:    p.Attack,
		Defense:   p.Defense,
		HP:        p.HP,
		MP:        p.MP,
		Precision: p.Precision,

		Gold:    p.Gold,
		Diamond: p.Diamond,
		Stone:   p.Stone,
		Ticket:  p.Ticket,
		Key:     p.Key,
		TOS:     p.TOS,

		FireCube:  p.Cubes.Fire,
		IceCube:   p.Cubes.Ice,
		WindCube:  p.Cubes.Wind,
		EarthCube: p.Cubes.Earth,
		DarkCube:  p.Cubes.Dark,
		LightCube: p.Cubes.Light,

		Gear1: p.Gear1,
		Gear2: p.Gear2,
		Gear3: p.Gear3,

		Busy:    p.Busy,
		Trading: p.Trading,

		Documents: docs,
	}
	return rec, size, nil
}
