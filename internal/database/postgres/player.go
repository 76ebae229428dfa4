// Package postgres implements the player repository on pgx. The players
// table keeps progression scalars as real columns and the collection
// documents as JSONB; rows predating a column addition scan through COALESCE
// sentinels so the service layer can repair them.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/monarchbot/arise/internal/logger"
	"github.com/monarchbot/arise/internal/playerdoc"
	"github.com/monarchbot/arise/internal/repository"
)

const (
	upsertMaxAttempts = 3
	upsertRetryDelay  = 100 * time.Millisecond
)

// PlayerRepository implements repository.Player on a pgx pool.
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// The xp and point columns were added after launch; COALESCE maps the NULLs
// in old rows to -1 so playerdoc.Repair can tell "missing" from "zero".
const selectPlayer = `
SELECT id, level,
       COALESCE(xp, -1),
       COALESCE(stat_points, -1),
       COALESCE(skill_points, -1),
       last_stat_reset, last_skill_reset,
       attack, defense, hp, mp, precision,
       gold, diamond, stone, ticket, key, tos,
       fire_cube, ice_cube, wind_cube, earth_cube, dark_cube, light_cube,
       gear1, gear2, gear3,
       busy, trading,
       inventory, hunters, shadows, equipped, quests, mission,
       story_progress, titles, achievements, defeated_bosses, market, loot
FROM players
WHERE id = $1`

const upsertPlayer = `
INSERT INTO players (
    id, level, xp, stat_points, skill_points,
    last_stat_reset, last_skill_reset,
    attack, defense, hp, mp, precision,
    gold, diamond, stone, ticket, key, tos,
    fire_cube, ice_cube, wind_cube, earth_cube, dark_cube, light_cube,
    gear1, gear2, gear3,
    busy, trading,
    inventory, hunters, shadows, equipped, quests, mission,
    story_progress, titles, achievements, defeated_bosses, market, loot
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
    $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
    $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
    $31, $32, $33, $34, $35, $36, $37, $38, $39, $40, $41
)
ON CONFLICT (id) DO UPDATE SET
    level = EXCLUDED.level,
    xp = EXCLUDED.xp,
    stat_points = EXCLUDED.stat_points,
    skill_points = EXCLUDED.skill_points,
    last_stat_reset = EXCLUDED.last_stat_reset,
    last_skill_reset = EXCLUDED.last_skill_reset,
    attack = EXCLUDED.attack,
    defense = EXCLUDED.defense,
    hp = EXCLUDED.hp,
    mp = EXCLUDED.mp,
    precision = EXCLUDED.precision,
    gold = EXCLUDED.gold,
    diamond = EXCLUDED.diamond,
    stone = EXCLUDED.stone,
    ticket = EXCLUDED.ticket,
    key = EXCLUDED.key,
    tos = EXCLUDED.tos,
    fire_cube = EXCLUDED.fire_cube,
    ice_cube = EXCLUDED.ice_cube,
    wind_cube = EXCLUDED.wind_cube,
    earth_cube = EXCLUDED.earth_cube,
    dark_cube = EXCLUDED.dark_cube,
    light_cube = EXCLUDED.light_cube,
    gear1 = EXCLUDED.gear1,
    gear2 = EXCLUDED.gear2,
    gear3 = EXCLUDED.gear3,
    busy = EXCLUDED.busy,
    trading = EXCLUDED.trading,
    inventory = EXCLUDED.inventory,
    hunters = EXCLUDED.hunters,
    shadows = EXCLUDED.shadows,
    equipped = EXCLUDED.equipped,
    quests = EXCLUDED.quests,
    mission = EXCLUDED.mission,
    story_progress = EXCLUDED.story_progress,
    titles = EXCLUDED.titles,
    achievements = EXCLUDED.achievements,
    defeated_bosses = EXCLUDED.defeated_bosses,
    market = EXCLUDED.market,
    loot = EXCLUDED.loot,
    updated_at = now()`

// Get fetches a player record. A missing row returns (nil, nil).
func (r *PlayerRepository) Get(ctx context.Context, id int64) (*repository.PlayerRecord, error) {
	rec := &repository.PlayerRecord{}
	docs := make([][]byte, len(playerdoc.DocColumns))

	dest := []any{
		&rec.ID, &rec.Level, &rec.XP, &rec.StatPoints, &rec.SkillPoints,
		&rec.LastStatReset, &rec.LastSkillReset,
		&rec.Attack, &rec.Defense, &rec.HP, &rec.MP, &rec.Precision,
		&rec.Gold, &rec.Diamond, &rec.Stone, &rec.Ticket, &rec.Key, &rec.TOS,
		&rec.FireCube, &rec.IceCube, &rec.WindCube, &rec.EarthCube, &rec.DarkCube, &rec.LightCube,
		&rec.Gear1, &rec.Gear2, &rec.Gear3,
		&rec.Busy, &rec.Trading,
	}
	for i := range docs {
		dest = append(dest, &docs[i])
	}

	err := r.db.QueryRow(ctx, selectPlayer, id).Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlayer, err)
	}

	rec.Documents = make(map[string][]byte, len(playerdoc.DocColumns))
	for i, col := range playerdoc.DocColumns {
		rec.Documents[col] = docs[i]
	}
	return rec, nil
}

// Upsert inserts or fully replaces the player row. Transient failures are
// retried a few times before giving up.
func (r *PlayerRepository) Upsert(ctx context.Context, rec *repository.PlayerRecord) error {
	args := []any{
		rec.ID, rec.Level, rec.XP, rec.StatPoints, rec.SkillPoints,
		rec.LastStatReset, rec.LastSkillReset,
		rec.Attack, rec.Defense, rec.HP, rec.MP, rec.Precision,
		rec.Gold, rec.Diamond, rec.Stone, rec.Ticket, rec.Key, rec.TOS,
		rec.FireCube, rec.IceCube, rec.WindCube, rec.EarthCube, rec.DarkCube, rec.LightCube,
		rec.Gear1, rec.Gear2, rec.Gear3,
		rec.Busy, rec.Trading,
	}
	for _, col := range playerdoc.DocColumns {
		args = append(args, rec.Documents[col])
	}

	var err error
	for attempt := 1; attempt <= upsertMaxAttempts; attempt++ {
		_, err = r.db.Exec(ctx, upsertPlayer, args...)
		if err == nil {
			return nil
		}
		if !isTransient(err) || attempt == upsertMaxAttempts {
			break
		}
		logger.FromContext(ctx).Warn("Retrying player upsert after transient error",
			"player_id", rec.ID, "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(upsertRetryDelay):
		}
	}
	return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertPlayer, err)
}

// All returns every player ID in the table.
func (r *PlayerRepository) All(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPlayers, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPlayers, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPlayers, err)
	}
	return ids, nil
}

// Delete removes the player row and sweeps dependent tables. Dependent
// tables missing from this deployment are skipped.
func (r *PlayerRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeletePlayer, err)
	}

	log := logger.FromContext(ctx)
	for _, table := range dependentTables {
		_, err := r.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE player_id = $1`, table), id)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUndefinedTable {
				log.Debug("Dependent table not present, skipping", "table", table)
				continue
			}
			return fmt.Errorf("%s: sweep %s: %w", ErrMsgFailedToDeletePlayer, table, err)
		}
	}
	return nil
}

// isTransient reports whether an error is worth retrying.
func isTransient(err error) bool {
	if pgconn.SafeToRetry(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == PgErrorClassConnection {
			return true
		}
		return pgErr.Code == PgErrorCodeSerializationFailure || pgErr.Code == PgErrorCodeDeadlockDetected
	}
	return false
}
