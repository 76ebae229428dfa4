package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/monarchbot/arise/internal/database"
	"github.com/monarchbot/arise/internal/playerdoc"
	"github.com/monarchbot/arise/internal/repository"
)

func TestPlayerRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var pgContainer *tcpostgres.PostgresContainer
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = tcpostgres.Run(ctx,
			"postgres:15-alpine",
			tcpostgres.WithDatabase("testdb"),
			tcpostgres.WithUsername("testuser"),
			tcpostgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(5*time.Second)),
		)
	}()

	if pgContainer == nil {
		if err != nil {
			t.Fatalf("failed to start postgres container: %v", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %v", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(connStr, 5, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := applyMigrations(ctx, t, pool, "../../../migrations"); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	repo := NewPlayerRepository(pool)

	newRecord := func(id int64) *repository.PlayerRecord {
		rec := &repository.PlayerRecord{
			ID: id, Level: 1,
			Attack: 10, Defense: 10, HP: 100, MP: 10, Precision: 10,
			Documents: map[string][]byte{},
		}
		for _, col := range playerdoc.DocColumns {
			rec.Documents[col] = []byte(`{}`)
		}
		rec.Documents[playerdoc.DocMission] = []byte(`{"cmd":"","times":0}`)
		rec.Documents[playerdoc.DocLoot] = []byte(`{"won":0,"lose":0}`)
		return rec
	}

	t.Run("GetMissingReturnsNil", func(t *testing.T) {
		rec, err := repo.Get(ctx, 999)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if rec != nil {
			t.Errorf("expected nil for missing player, got %+v", rec)
		}
	})

	t.Run("UpsertAndGet", func(t *testing.T) {
		rec := newRecord(1)
		rec.Level = 5
		rec.XP = 120
		rec.Gold = 777
		rec.Documents[playerdoc.DocShadows] = []byte(`{"igris":{"level":2,"xp":100}}`)

		if err := repo.Upsert(ctx, rec); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		got, err := repo.Get(ctx, 1)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected record, got nil")
		}
		if got.Level != 5 || got.XP != 120 || got.Gold != 777 {
			t.Errorf("scalar mismatch: %+v", got)
		}
		if string(got.Documents[playerdoc.DocShadows]) != `{"igris": {"xp": 100, "level": 2}}` &&
			string(got.Documents[playerdoc.DocShadows]) != `{"igris":{"level":2,"xp":100}}` {
			t.Errorf("shadows document mismatch: %s", got.Documents[playerdoc.DocShadows])
		}

		// Upsert again with changed values replaces the row.
		rec.Gold = 1000
		if err := repo.Upsert(ctx, rec); err != nil {
			t.Fatalf("second Upsert failed: %v", err)
		}
		got, err = repo.Get(ctx, 1)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Gold != 1000 {
			t.Errorf("Gold = %d after upsert, want 1000", got.Gold)
		}
	})

	t.Run("NullColumnsScanAsSentinels", func(t *testing.T) {
		// Rows predating the xp and point columns hold NULLs there.
		_, err := pool.Exec(ctx, `
			INSERT INTO players (id, level, attack, defense, hp, mp, precision)
			VALUES (2, 4, 10, 10, 100, 10, 10)`)
		if err != nil {
			t.Fatalf("raw insert failed: %v", err)
		}
		_, err = pool.Exec(ctx, `UPDATE players SET xp = NULL, stat_points = NULL, skill_points = NULL WHERE id = 2`)
		if err != nil {
			t.Fatalf("null update failed: %v", err)
		}

		got, err := repo.Get(ctx, 2)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.XP != -1 || got.StatPoints != -1 || got.SkillPoints != -1 {
			t.Errorf("expected -1 sentinels, got xp=%d stat=%d skill=%d", got.XP, got.StatPoints, got.SkillPoints)
		}
		if got.LastStatReset != nil {
			t.Errorf("expected nil LastStatReset, got %v", *got.LastStatReset)
		}
	})

	t.Run("All", func(t *testing.T) {
		ids, err := repo.All(ctx)
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
			t.Errorf("All = %v, want [1 2]", ids)
		}
	})

	t.Run("DeleteToleratesMissingDependentTables", func(t *testing.T) {
		if err := repo.Delete(ctx, 2); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		rec, err := repo.Get(ctx, 2)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if rec != nil {
			t.Error("player 2 should be gone")
		}
	})

	t.Run("VacuumAndSize", func(t *testing.T) {
		if err := repo.Vacuum(ctx); err != nil {
			t.Fatalf("Vacuum failed: %v", err)
		}
		size, err := repo.Size(ctx)
		if err != nil {
			t.Fatalf("Size failed: %v", err)
		}
		if size <= 0 {
			t.Errorf("Size = %d, want > 0", size)
		}
	})
}
