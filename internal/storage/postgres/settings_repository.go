package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cosfat/kzone/internal/domain"
)

// SettingsRepository stores the single site-settings document as the row with
// id 1; the schema forbids any other id.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	const query = `SELECT homepage_sort_order, hide_old_events FROM settings WHERE id = 1`
	var (
		order string
		hide  bool
	)
	if err := r.pool.QueryRow(ctx, query).Scan(&order, &hide); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Settings{}, domain.ErrNotFound
		}
		return domain.Settings{}, mapError("get settings", err)
	}
	// Normalization happens at the service; the repository only reports what
	// is stored.
	return domain.Settings{
		HomepageSortOrder: domain.SortOrder(order),
		HideOldEvents:     hide,
	}, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	const stmt = `
INSERT INTO settings (id, homepage_sort_order, hide_old_events)
VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE
SET homepage_sort_order = EXCLUDED.homepage_sort_order,
    hide_old_events = EXCLUDED.hide_old_events,
    updated_at = NOW()`
	if _, err := r.pool.Exec(ctx, stmt, string(settings.HomepageSortOrder), settings.HideOldEvents); err != nil {
		return mapError("save settings", err)
	}
	return nil
}
