package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cosfat/kzone/internal/domain"
)

type EventTypeRepository struct {
	pool *pgxpool.Pool
}

func NewEventTypeRepository(pool *pgxpool.Pool) *EventTypeRepository {
	return &EventTypeRepository{pool: pool}
}

func (r *EventTypeRepository) List(ctx context.Context) ([]domain.EventType, error) {
	const query = `SELECT id, name FROM event_types ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapError("list event types", err)
	}
	defer rows.Close()

	var types []domain.EventType
	for rows.Next() {
		var t domain.EventType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan event type: %w", err)
		}
		types = append(types, t)
	}
	if rows.Err() != nil {
		return nil, mapError("iterate event types", rows.Err())
	}
	return types, nil
}

// Seed upserts the fixed set; ON CONFLICT DO NOTHING makes two processes
// seeding an empty registry at once harmless.
func (r *EventTypeRepository) Seed(ctx context.Context, types []domain.EventType) error {
	const stmt = `INSERT INTO event_types (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`
	for _, t := range types {
		if _, err := r.pool.Exec(ctx, stmt, t.ID, t.Name); err != nil {
			return mapError("seed event types", err)
		}
	}
	return nil
}
