package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/cosfat/kzone/internal/domain"
	"github.com/cosfat/kzone/internal/testutil"
)

func TestSettingsRepository_MissingRowIsNotFound(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := NewSettingsRepository(pool)
	if _, err := repo.Get(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSettingsRepository_SaveIsUpsert(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := NewSettingsRepository(pool)

	first := domain.Settings{HomepageSortOrder: domain.SortAscending, HideOldEvents: true}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != first {
		t.Fatalf("expected %+v, got %+v", first, got)
	}

	second := domain.Settings{HomepageSortOrder: domain.SortDescending, HideOldEvents: false}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("get after second save: %v", err)
	}
	if got != second {
		t.Fatalf("expected %+v, got %+v", second, got)
	}

	// Still a single row.
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM settings`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one settings row, got %d", count)
	}
}

func TestEventTypeRepository_SeedIgnoresExisting(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := NewEventTypeRepository(pool)

	if err := repo.Seed(ctx, domain.SeedEventTypes()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// Seeding again must not conflict or duplicate.
	if err := repo.Seed(ctx, domain.SeedEventTypes()); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	types, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(types) != 2 || types[0].ID != 1 || types[1].ID != 2 {
		t.Fatalf("unexpected registry: %+v", types)
	}
}
