package player

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monarchbot/arise/internal/domain"
)

func TestBossDefeats(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	defeated, err := svc.HasDefeatedBoss(ctx, 1, "kargalgan")
	require.NoError(t, err)
	assert.False(t, defeated)

	require.NoError(t, svc.AddBossDefeat(ctx, 1, "kargalgan"))
	require.NoError(t, svc.AddBossDefeat(ctx, 1, "kargalgan"))

	defeated, err = svc.HasDefeatedBoss(ctx, 1, "kargalgan")
	require.NoError(t, err)
	assert.True(t, defeated)

	p, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	r := p.DefeatedBosses["kargalgan"]
	require.NotNil(t, r)
	assert.Equal(t, int64(2), r.Count)
	assert.NotZero(t, r.FirstDefeat)
	assert.GreaterOrEqual(t, r.LastDefeat, r.FirstDefeat)
}

func TestBossDefeatUpgradesLegacyRecord(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	p := domain.New(2)
	rec, _, err := toRecord(p)
	require.NoError(t, err)
	// Old rows stored a bare truthy marker per boss.
	rec.Documents["defeated_bosses"] = []byte(`{"baran": true, "igris": "1", "cerberus": false}`)
	repo.SetRow(rec)

	defeated, err := svc.HasDefeatedBoss(ctx, 2, "baran")
	require.NoError(t, err)
	assert.True(t, defeated)

	defeated, err = svc.HasDefeatedBoss(ctx, 2, "igris")
	require.NoError(t, err)
	assert.True(t, defeated)

	defeated, err = svc.HasDefeatedBoss(ctx, 2, "cerberus")
	require.NoError(t, err)
	assert.False(t, defeated)

	require.NoError(t, svc.AddBossDefeat(ctx, 2, "baran"))
	got, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.DefeatedBosses["baran"].Count)
	assert.NotZero(t, got.DefeatedBosses["baran"].FirstDefeat, "legacy record gains timestamps on next defeat")
}

func TestUpdateQuest(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	completed, err := svc.UpdateQuest(ctx, 1, "daily_hunt", 40)
	require.NoError(t, err)
	assert.False(t, completed)

	completed, err = svc.UpdateQuest(ctx, 1, "daily_hunt", 60)
	require.NoError(t, err)
	assert.True(t, completed)

	p, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	q := p.Quests["daily_hunt"]
	require.NotNil(t, q)
	assert.Equal(t, int64(100), q.Current)
	assert.Equal(t, int64(domain.DefaultQuestRequired), q.Required)
	assert.True(t, q.Completed)
}

func TestUpdateQuestClampsNegativeProgress(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpdateQuest(ctx, 1, "daily_hunt", -50)
	require.NoError(t, err)

	p, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Quests["daily_hunt"].Current)
}

func TestAdvanceMission(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	times, err := svc.AdvanceMission(ctx, 1, "hunt")
	require.NoError(t, err)
	assert.Equal(t, int64(1), times)

	times, err = svc.AdvanceMission(ctx, 1, "hunt")
	require.NoError(t, err)
	assert.Equal(t, int64(2), times)

	// Switching commands resets the counter.
	times, err = svc.AdvanceMission(ctx, 1, "gate")
	require.NoError(t, err)
	assert.Equal(t, int64(1), times)

	p, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "gate", p.Mission.Cmd)
}
