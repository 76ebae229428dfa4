package player

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monarchbot/arise/internal/domain"
)

func TestAddItemFirstCopyThenShards(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dup, err := svc.AddItem(ctx, 1, "dagger", domain.GearEntry{})
	require.NoError(t, err)
	assert.False(t, dup)

	dup, err = svc.AddItem(ctx, 1, "dagger", domain.GearEntry{})
	require.NoError(t, err)
	assert.True(t, dup)

	dup, err = svc.AddItem(ctx, 1, "dagger", domain.GearEntry{})
	require.NoError(t, err)
	assert.True(t, dup)

	p, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Contains(t, p.Inventory.Entries, "dagger")
	assert.Equal(t, 1, p.Inventory.Entries["dagger"].Level)
	assert.Equal(t, int64(2), p.Inventory.Shards["dagger"])
}

func TestAddHunterDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dup, err := svc.AddHunter(ctx, 1, "tank", domain.GearEntry{})
	require.NoError(t, err)
	assert.False(t, dup)

	dup, err = svc.AddHunter(ctx, 1, "tank", domain.GearEntry{})
	require.NoError(t, err)
	assert.True(t, dup)

	p, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Inventory.Shards["tank"], "hunter shards belong to the inventory")
	assert.Empty(t, p.Hunters.Shards)
}

func TestAddInitialEntry(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dup, err := svc.AddItem(ctx, 1, "demon_blade", domain.GearEntry{Level: 15, Tier: 1, XP: 40})
	require.NoError(t, err)
	assert.False(t, dup)

	p, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Contains(t, p.Inventory.Entries, "demon_blade")
	assert.Equal(t, 15, p.Inventory.Entries["demon_blade"].Level)
	assert.Equal(t, 1, p.Inventory.Entries["demon_blade"].Tier)
	assert.Equal(t, int64(40), p.Inventory.Entries["demon_blade"].XP)

	t.Run("level clamped to tier cap", func(t *testing.T) {
		_, err := svc.AddHunter(ctx, 1, "beru", domain.GearEntry{Level: 50, Tier: 1})
		require.NoError(t, err)

		p, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 20, p.Hunters.Entries["beru"].Level)
	})

	t.Run("invalid tier rejected", func(t *testing.T) {
		_, err := svc.AddItem(ctx, 1, "cursed", domain.GearEntry{Tier: 9})
		assert.Error(t, err)
	})
}

func TestShardConventionSurvivesPersistence(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 2, "dagger", domain.GearEntry{})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 2, "dagger", domain.GearEntry{})
	require.NoError(t, err)
	_, err = svc.AddHunter(ctx, 2, "tank", domain.GearEntry{})
	require.NoError(t, err)
	_, err = svc.AddHunter(ctx, 2, "tank", domain.GearEntry{})
	require.NoError(t, err)

	rec := repo.Row(2)
	require.NotNil(t, rec)
	assert.Contains(t, string(rec.Documents["inventory"]), `"s_dagger":1`)
	assert.Contains(t, string(rec.Documents["inventory"]), `"s_tank":1`)
	assert.NotContains(t, string(rec.Documents["hunters"]), `"s_`)

	svc2 := NewService(repo, Options{}).(*service)
	p, err := svc2.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Inventory.Shards["dagger"])
}

func TestRemoveItemClearsEquipmentReferences(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, "dagger", domain.GearEntry{})
	require.NoError(t, err)
	require.NoError(t, svc.Equip(ctx, 1, "Weapon", "dagger"))

	require.NoError(t, svc.RemoveItem(ctx, 1, "dagger"))

	p, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.NotContains(t, p.Inventory.Entries, "dagger")
	assert.Equal(t, "", p.Equipped["Weapon"])
}

func TestRemoveItemNotOwned(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.RemoveItem(context.Background(), 1, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotOwned)
}

func TestEquip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddHunter(ctx, 1, "igris", domain.GearEntry{})
	require.NoError(t, err)

	t.Run("unknown slot", func(t *testing.T) {
		err := svc.Equip(ctx, 1, "Hat", "igris")
		assert.ErrorIs(t, err, domain.ErrSlotUnknown)
	})

	t.Run("not owned", func(t *testing.T) {
		err := svc.Equip(ctx, 1, "Party_1", "beru")
		assert.ErrorIs(t, err, domain.ErrNotOwned)
	})

	t.Run("equip and unequip", func(t *testing.T) {
		require.NoError(t, svc.Equip(ctx, 1, "Party_1", "igris"))
		p, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "igris", p.Equipped["Party_1"])

		require.NoError(t, svc.Unequip(ctx, 1, "Party_1"))
		p, err = svc.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "", p.Equipped["Party_1"])
	})
}

func TestAriseShadow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.WithLock(ctx, 1, func(p *domain.Player) error {
		p.TOS = 10
		return nil
	})
	require.NoError(t, err)

	t.Run("insufficient traces", func(t *testing.T) {
		arisen, err := svc.AriseShadow(ctx, 1, "igris", 20)
		require.NoError(t, err)
		assert.False(t, arisen)

		p, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(10), p.TOS, "failed arise must not spend")
	})

	t.Run("success", func(t *testing.T) {
		arisen, err := svc.AriseShadow(ctx, 1, "igris", 10)
		require.NoError(t, err)
		assert.True(t, arisen)

		p, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(0), p.TOS)
		require.Contains(t, p.Shadows, "igris")
		assert.Equal(t, 1, p.Shadows["igris"].Level)
	})

	t.Run("already arisen", func(t *testing.T) {
		arisen, err := svc.AriseShadow(ctx, 1, "igris", 0)
		require.NoError(t, err)
		assert.False(t, arisen)
	})
}
