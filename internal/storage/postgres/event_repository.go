package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cosfat/kzone/internal/domain"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, event_type, venue, city, date, ticket_status, ticket_link, is_visible)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, stmt,
		event.ID, event.EventType, event.Venue, event.City,
		event.Date, string(event.TicketStatus), event.TicketLink, event.Visible,
	)
	if err != nil {
		return mapError("create event", err)
	}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) error {
	const stmt = `
UPDATE events
SET event_type = $2, venue = $3, city = $4, date = $5,
    ticket_status = $6, ticket_link = $7, is_visible = $8, updated_at = NOW()
WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt,
		event.ID, event.EventType, event.Venue, event.City,
		event.Date, string(event.TicketStatus), event.TicketLink, event.Visible,
	)
	if err != nil {
		return mapError("update event", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	const stmt = `DELETE FROM events WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt, id)
	if err != nil {
		return mapError("delete event", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Get(ctx context.Context, id string) (domain.Event, error) {
	const query = `
SELECT id, event_type, venue, city, date, ticket_status, ticket_link, is_visible
FROM events
WHERE id = $1`
	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, mapError("get event", err)
	}
	return event, nil
}

// List returns the full raw event set ordered by date; the display rules
// re-sort per the configured direction.
func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	const query = `
SELECT id, event_type, venue, city, date, ticket_status, ticket_link, is_visible
FROM events
ORDER BY date ASC, created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapError("list events", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, mapError("iterate events", rows.Err())
	}
	return events, nil
}

func (r *EventRepository) SetVisibility(ctx context.Context, id string, visible bool) error {
	const stmt = `UPDATE events SET is_visible = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt, id, visible)
	if err != nil {
		return mapError("set visibility", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (domain.Event, error) {
	var (
		event  domain.Event
		status string
	)
	if err := row.Scan(
		&event.ID, &event.EventType, &event.Venue, &event.City,
		&event.Date, &status, &event.TicketLink, &event.Visible,
	); err != nil {
		return domain.Event{}, err
	}
	// Stored status values predating the enum degrade to the default rather
	// than failing the whole read.
	parsed, err := domain.ParseTicketStatus(status)
	if err != nil {
		parsed = domain.TicketOnSale
	}
	event.TicketStatus = parsed
	return event, nil
}

func mapError(op string, err error) error {
	switch {
	case isInvalidUUID(err):
		return domain.ErrInvalidID
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidArgument)
	case isConnectionError(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrUpstreamUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
