// Package player implements the player aggregate service: hydration from the
// store, every progression mutation, and the guarded save path. All mutations
// go through WithLock so one player is only ever mutated by one action at a
// time.
package player

import (
	"context"
	"fmt"
	"time"

	"github.com/monarchbot/arise/internal/concurrency"
	"github.com/monarchbot/arise/internal/domain"
	"github.com/monarchbot/arise/internal/logger"
	"github.com/monarchbot/arise/internal/metrics"
	"github.com/monarchbot/arise/internal/playerdoc"
	"github.com/monarchbot/arise/internal/repository"
)

// Service defines player aggregate operations.
type Service interface {
	// Get returns the hydrated player, or a fresh default for an unknown ID.
	// The default is not persisted until the first Save.
	Get(ctx context.Context, id int64) (*domain.Player, error)
	// Save prunes, size-checks and persists the player.
	Save(ctx context.Context, p *domain.Player) error
	// WithLock runs fn with the player loaded under an exclusive lease and
	// saves afterwards. fn returning an error aborts the save.
	WithLock(ctx context.Context, id int64, fn func(p *domain.Player) error) error
	// Purge deletes the player row, its dependent rows and any cached state.
	Purge(ctx context.Context, id int64) error

	// AddItem and AddHunter seed a first copy from init (zero value means
	// level 1, tier 0) and turn further copies into inventory shards.
	AddItem(ctx context.Context, id int64, itemID string, init domain.GearEntry) (duplicate bool, err error)
	AddHunter(ctx context.Context, id int64, hunterID string, init domain.GearEntry) (duplicate bool, err error)
	RemoveItem(ctx context.Context, id int64, itemID string) error

	AddXP(ctx context.Context, id int64, amount int64) (levelsGained int, err error)
	AddShadowXP(ctx context.Context, id int64, shadowID string, amount int64) (levelsGained int, err error)
	AddHunterXP(ctx context.Context, id int64, hunterID string, amount int64) (levelsGained int, err error)
	AddWeaponXP(ctx context.Context, id int64, weaponID string, amount int64) (levelsGained int, err error)
	LimitBreak(ctx context.Context, id int64, hunterID, element string) error

	SpendStatPoints(ctx context.Context, id int64, stat string, amount int64) (bool, error)
	SpendSkillPoints(ctx context.Context, id int64, amount int64) (bool, error)
	ResetStats(ctx context.Context, id int64) error
	ResetSkills(ctx context.Context, id int64) error
	GrantAchievement(ctx context.Context, id int64, achievementID string, bonusStatPoints int64) error

	Equip(ctx context.Context, id int64, slot, contentID string) error
	Unequip(ctx context.Context, id int64, slot string) error

	AriseShadow(ctx context.Context, id int64, shadowID string, cost int64) (bool, error)
	AddBossDefeat(ctx context.Context, id int64, bossID string) error
	HasDefeatedBoss(ctx context.Context, id int64, bossID string) (bool, error)
	UpdateQuest(ctx context.Context, id int64, questName string, delta int64) (completed bool, err error)
	AdvanceMission(ctx context.Context, id int64, cmd string) (int64, error)
}

type service struct {
	repo  repository.Player
	locks *concurrency.LeaseManager
	cache *playerCache
	now   func() time.Time
}

// Options tunes service internals. The zero value selects defaults.
type Options struct {
	LockTTL   time.Duration
	CacheSize int
	CacheTTL  time.Duration

	// Leases lets the caller share a lease manager with the maintenance
	// worker. When nil the service creates its own with LockTTL.
	Leases *concurrency.LeaseManager
}

// NewService creates a new player service.
func NewService(repo repository.Player, opts Options) Service {
	locks := opts.Leases
	if locks == nil {
		locks = concurrency.NewLeaseManager(opts.LockTTL)
	}
	return &service{
		repo:  repo,
		locks: locks,
		cache: newPlayerCache(opts.CacheSize, opts.CacheTTL),
		now:   time.Now,
	}
}

func (s *service) Get(ctx context.Context, id int64) (*domain.Player, error) {
	if p, ok := s.cache.get(id); ok {
		return p, nil
	}

	log := logger.FromContext(ctx)

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		metrics.PlayerLoads.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("%s: %w", domain.ErrMsgDatabaseError, err)
	}
	if rec == nil {
		metrics.PlayerLoads.WithLabelValues(metrics.ResultMiss).Inc()
		p := domain.New(id)
		log.Info(logMsgPlayerCreated, "player_id", id)
		s.cache.put(p)
		return p, nil
	}

	p, defaulted := fromRecord(rec)
	for _, col := range defaulted {
		log.Warn(logMsgDocumentDefaulted, "player_id", id, "column", col)
	}

	applied := playerdoc.Repair(p, s.locks.Held(id))
	for _, fix := range applied {
		metrics.RepairsApplied.WithLabelValues(fix).Inc()
	}
	if len(applied) > 0 {
		log.Info(logMsgPlayerRepaired, "player_id", id, "fixes", applied)
	}

	metrics.PlayerLoads.WithLabelValues(metrics.ResultOK).Inc()
	s.cache.put(p)
	return p, nil
}

func (s *service) Save(ctx context.Context, p *domain.Player) error {
	log := logger.FromContext(ctx)

	rec, size, err := toRecord(p)
	if err != nil {
		metrics.PlayerSaves.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("encode player %d: %w", p.ID, err)
	}

	if size > playerdoc.HardSizeLimitBytes {
		dropped := playerdoc.EmergencyShrink(p)
		metrics.EmergencyShrinks.Inc()
		log.Warn(logMsgEmergencyShrink, "player_id", p.ID, "bytes", size, "entries_dropped", dropped)

		rec, size, err = toRecord(p)
		if err != nil {
			metrics.PlayerSaves.WithLabelValues(metrics.ResultError).Inc()
			return fmt.Errorf("encode player %d: %w", p.ID, err)
		}
		if size > playerdoc.HardSizeLimitBytes {
			metrics.PlayerSaves.WithLabelValues(metrics.ResultError).Inc()
			return fmt.Errorf("%w: player %d is %d bytes after shrink", domain.ErrRowTooLarge, p.ID, size)
		}
	} else if size > playerdoc.SoftSizeLimitBytes {
		log.Warn(logMsgRowOverSoftLimit, "player_id", p.ID, "bytes", size)
	}

	metrics.PlayerSaveBytes.Observe(float64(size))

	if err := s.repo.Upsert(ctx, rec); err != nil {
		metrics.PlayerSaves.WithLabelValues(metrics.ResultError).Inc()
		// In-memory state no longer matches the store; drop it.
		s.cache.remove(p.ID)
		return fmt.Errorf("%s: %w", domain.ErrMsgDatabaseError, err)
	}

	metrics.PlayerSaves.WithLabelValues(metrics.ResultOK).Inc()
	s.cache.put(p)
	log.Debug(logMsgPlayerSaved, "player_id", p.ID, "bytes", size)
	return nil
}

func (s *service) WithLock(ctx context.Context, id int64, fn func(p *domain.Player) error) error {
	start := time.Now()
	lease, err := s.locks.Acquire(ctx, id)
	metrics.LockWaitDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPlayerBusy, err)
	}
	defer s.locks.Release(lease)

	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	return s.Save(ctx, p)
}

func (s *service) Purge(ctx context.Context, id int64) error {
	lease, err := s.locks.Acquire(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPlayerBusy, err)
	}
	defer s.locks.Release(lease)

	s.cache.remove(id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", domain.ErrMsgDatabaseError, err)
	}
	logger.FromContext(ctx).Info(logMsgPlayerPurged, "player_id", id)
	return nil
}
