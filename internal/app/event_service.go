package app

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cosfat/kzone/internal/clock"
	"github.com/cosfat/kzone/internal/domain"
	"github.com/cosfat/kzone/internal/view"
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) error
	Update(ctx context.Context, event domain.Event) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	SetVisibility(ctx context.Context, id string, visible bool) error
}

// EventTypeLister resolves the category registry; the implementation seeds it
// lazily on first read.
type EventTypeLister interface {
	List(ctx context.Context) ([]domain.EventType, error)
}

// SettingsReader supplies the display settings with defaults applied.
type SettingsReader interface {
	Get(ctx context.Context) (domain.Settings, error)
}

type EventService struct {
	repo     EventRepository
	types    EventTypeLister
	settings SettingsReader
	clock    clock.Clock
	logger   *log.Logger
}

func NewEventService(repo EventRepository, types EventTypeLister, settings SettingsReader, clk clock.Clock, logger *log.Logger) *EventService {
	if logger == nil {
		logger = log.Default()
	}
	return &EventService{
		repo:     repo,
		types:    types,
		settings: settings,
		clock:    clk,
		logger:   logger,
	}
}

type CreateEventInput struct {
	EventType    int
	Venue        string
	City         string
	Date         string
	TicketStatus string
	TicketLink   string
	Visible      *bool
}

func (s *EventService) Create(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	venue := strings.TrimSpace(in.Venue)
	city := strings.TrimSpace(in.City)
	if venue == "" {
		return domain.Event{}, domain.ErrVenueRequired
	}
	if city == "" {
		return domain.Event{}, domain.ErrCityRequired
	}
	if in.Date == "" {
		return domain.Event{}, domain.ErrDateRequired
	}
	if _, err := time.Parse(view.DateLayout, in.Date); err != nil {
		return domain.Event{}, domain.ErrInvalidDate
	}

	status := domain.TicketOnSale
	if in.TicketStatus != "" {
		parsed, err := domain.ParseTicketStatus(in.TicketStatus)
		if err != nil {
			return domain.Event{}, err
		}
		status = parsed
	}

	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}

	event := domain.Event{
		ID:           uuid.NewString(),
		EventType:    in.EventType,
		Venue:        venue,
		City:         city,
		Date:         in.Date,
		TicketStatus: status,
		TicketLink:   in.TicketLink,
		Visible:      visible,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// UpdateEventInput carries the fields to change; nil fields keep their stored
// value. The event id itself is immutable.
type UpdateEventInput struct {
	EventType    *int
	Venue        *string
	City         *string
	Date         *string
	TicketStatus *string
	TicketLink   *string
	Visible      *bool
}

func (s *EventService) Update(ctx context.Context, id string, in UpdateEventInput) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}

	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	if in.EventType != nil {
		event.EventType = *in.EventType
	}
	if in.Venue != nil {
		venue := strings.TrimSpace(*in.Venue)
		if venue == "" {
			return domain.Event{}, domain.ErrVenueRequired
		}
		event.Venue = venue
	}
	if in.City != nil {
		city := strings.TrimSpace(*in.City)
		if city == "" {
			return domain.Event{}, domain.ErrCityRequired
		}
		event.City = city
	}
	if in.Date != nil {
		if _, err := time.Parse(view.DateLayout, *in.Date); err != nil {
			return domain.Event{}, domain.ErrInvalidDate
		}
		event.Date = *in.Date
	}
	if in.TicketStatus != nil {
		status, err := domain.ParseTicketStatus(*in.TicketStatus)
		if err != nil {
			return domain.Event{}, err
		}
		event.TicketStatus = status
	}
	if in.TicketLink != nil {
		event.TicketLink = *in.TicketLink
	}
	if in.Visible != nil {
		event.Visible = *in.Visible
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

func (s *EventService) Get(ctx context.Context, id string) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

// DisplayEvent is an event with its category label resolved for rendering.
type DisplayEvent struct {
	domain.Event
	EventTypeName string
}

// DisplayList reads the raw event set and the settings, applies the display
// rules for the audience, and resolves category labels. Events referencing a
// missing category get a default label rather than an error.
func (s *EventService) DisplayList(ctx context.Context, audience domain.Audience) ([]DisplayEvent, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, err
	}

	ordered, malformed := view.DisplayList(events, settings, audience, s.clock.Now())
	for _, id := range malformed {
		s.logger.Printf("WARN: event %s has an unparseable date, sorting it last", id)
	}

	names := make(map[int]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}

	out := make([]DisplayEvent, 0, len(ordered))
	for _, ev := range ordered {
		name, ok := names[ev.EventType]
		if !ok {
			name = domain.DefaultEventTypeLabel
		}
		out = append(out, DisplayEvent{Event: ev, EventTypeName: name})
	}
	return out, nil
}

// BulkResult is the complete per-id accounting of a bulk mutation. Partial
// failure is the normal case, not an abort.
type BulkResult struct {
	Succeeded []string
	Failed    map[string]error
}

const bulkConcurrency = 8

func (s *EventService) BulkSetVisibility(ctx context.Context, ids []string, visible bool) (BulkResult, error) {
	return s.bulk(ctx, ids, func(ctx context.Context, id string) error {
		return s.repo.SetVisibility(ctx, id, visible)
	})
}

func (s *EventService) BulkDelete(ctx context.Context, ids []string) (BulkResult, error) {
	return s.bulk(ctx, ids, func(ctx context.Context, id string) error {
		return s.repo.Delete(ctx, id)
	})
}

// bulk applies op to each distinct id independently. One id failing never
// rolls back or aborts the others; callers re-fetch the display list after
// the batch instead of trusting local state.
func (s *EventService) bulk(ctx context.Context, ids []string, op func(ctx context.Context, id string) error) (BulkResult, error) {
	distinct := dedupe(ids)
	if len(distinct) == 0 {
		return BulkResult{}, domain.ErrEmptyIDSet
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		sem    = make(chan struct{}, bulkConcurrency)
		result = BulkResult{Failed: make(map[string]error)}
	)

	for _, id := range distinct {
		wg.Add(1)
		sem <- struct{}{}
		go func(id string) {
			defer wg.Done()
			defer func() { <-sem }()

			err := op(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[id] = err
				return
			}
			result.Succeeded = append(result.Succeeded, id)
		}(id)
	}
	wg.Wait()

	sort.Strings(result.Succeeded)
	return result, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
