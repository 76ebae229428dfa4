package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monarchbot/arise/internal/domain"
	"github.com/monarchbot/arise/internal/playerdoc"
)

func newTestService(t *testing.T) (*service, *FakeRepository) {
	t.Helper()
	repo := NewFakeRepository()
	svc := NewService(repo, Options{}).(*service)
	return svc, repo
}

func TestGetUnknownPlayerReturnsDefault(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	p, err := svc.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, domain.BaseAttack, p.Attack)
	assert.Equal(t, domain.BaseHP, p.HP)
	assert.NotNil(t, p.Inventory.Entries)
	assert.NotNil(t, p.Equipped)

	// Default is not persisted until the first save.
	assert.Nil(t, repo.Row(42))
}

func TestSaveRoundTrip(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	p, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	p.Gold = 500
	p.Inventory.Entries["sword"] = &domain.GearEntry{Level: 3, Tier: 1, XP: 40}
	p.Inventory.Shards["sword"] = 2
	p.Shadows["igris"] = &domain.Shadow{Level: 4, XP: 250}
	require.NoError(t, svc.Save(ctx, p))

	// Reload through a fresh service so the cache cannot mask the store.
	svc2 := NewService(repo, Options{}).(*service)
	got, err := svc2.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(500), got.Gold)
	require.Contains(t, got.Inventory.Entries, "sword")
	assert.Equal(t, 3, got.Inventory.Entries["sword"].Level)
	assert.Equal(t, int64(2), got.Inventory.Shards["sword"])
	require.Contains(t, got.Shadows, "igris")
	assert.Equal(t, 4, got.Shadows["igris"].Level)
}

func TestSavePrunesDeadWeight(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	p, err := svc.Get(ctx, 9)
	require.NoError(t, err)
	p.Inventory.Shards["ghost"] = 0
	p.StoryProgress["empty"] = ""
	p.StoryProgress["nil"] = nil
	p.StoryProgress["kept"] = "chapter 3"
	require.NoError(t, svc.Save(ctx, p))

	svc2 := NewService(repo, Options{}).(*service)
	got, err := svc2.Get(ctx, 9)
	require.NoError(t, err)
	assert.NotContains(t, got.Inventory.Shards, "ghost")
	assert.NotContains(t, got.StoryProgress, "empty")
	assert.NotContains(t, got.StoryProgress, "nil")
	assert.Equal(t, "chapter 3", got.StoryProgress["kept"])
}

func TestSaveStorageErrorDropsCache(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	p, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	p.Gold = 100

	repo.UpsertErr = errors.New("connection reset")
	err = svc.Save(ctx, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrMsgDatabaseError)

	// The next Get must not serve the unsaved mutation.
	repo.UpsertErr = nil
	got, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Gold)
}

func TestWithLockExcludesConcurrentAction(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	lease, ok := svc.locks.TryAcquire(5)
	require.True(t, ok)

	shortCtx, cancel := context.WithTimeout(ctx, 60*time.Millisecond)
	defer cancel()
	err := svc.WithLock(shortCtx, 5, func(p *domain.Player) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPlayerBusy)

	svc.locks.Release(lease)
	require.NoError(t, svc.WithLock(ctx, 5, func(p *domain.Player) error { return nil }))
}

func TestWithLockErrorAbortsSave(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := svc.WithLock(ctx, 11, func(p *domain.Player) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Nil(t, repo.Row(11))
}

func TestPurgeRemovesRowAndCache(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	p, err := svc.Get(ctx, 8)
	require.NoError(t, err)
	p.Gold = 50
	require.NoError(t, svc.Save(ctx, p))
	require.NotNil(t, repo.Row(8))

	require.NoError(t, svc.Purge(ctx, 8))
	assert.Nil(t, repo.Row(8))

	got, err := svc.Get(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Gold)
}

func TestGetRepairsCorruptRow(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	p := domain.New(20)
	p.Level = 6
	rec, _, err := toRecord(p)
	require.NoError(t, err)
	rec.XP = playerdoc.XPMissing
	rec.Attack = -5
	rec.Gold = -100
	rec.SkillPoints = 300 // legacy formula drift, canonical is 30
	rec.Busy = true
	rec.Documents["quests"] = []byte(`not json at all`)
	repo.SetRow(rec)

	got, err := svc.Get(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(250), got.XP, "xp backfilled as (level-1)*50")
	assert.Equal(t, domain.BaseAttack, got.Attack)
	assert.Equal(t, int64(0), got.Gold)
	assert.Equal(t, int64(30), got.SkillPoints)
	assert.False(t, got.Busy, "stale busy flag cleared when unleased")
	assert.NotNil(t, got.Quests, "corrupt document falls back to default")
}

func TestGetKeepsBusyFlagWhileLeased(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	p := domain.New(21)
	rec, _, err := toRecord(p)
	require.NoError(t, err)
	rec.Busy = true
	repo.SetRow(rec)

	lease, ok := svc.locks.TryAcquire(21)
	require.True(t, ok)
	defer svc.locks.Release(lease)

	got, err := svc.Get(ctx, 21)
	require.NoError(t, err)
	assert.True(t, got.Busy)
}

func TestGetDecodesStringWrappedDocument(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	p := domain.New(22)
	rec, _, err := toRecord(p)
	require.NoError(t, err)
	// Legacy rows hold documents JSON-encoded inside a string.
	rec.Documents["shadows"] = []byte(`"{\"igris\":{\"level\":7,\"xp\":123}}"`)
	repo.SetRow(rec)

	got, err := svc.Get(ctx, 22)
	require.NoError(t, err)
	require.Contains(t, got.Shadows, "igris")
	assert.Equal(t, 7, got.Shadows["igris"].Level)
	assert.Equal(t, int64(123), got.Shadows["igris"].XP)
}
