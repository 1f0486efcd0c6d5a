package app

import (
	"context"

	"github.com/cosfat/kzone/internal/domain"
)

type EventTypeRepository interface {
	List(ctx context.Context) ([]domain.EventType, error)
	// Seed inserts the given types, ignoring ones that already exist, so two
	// processes seeding at once cannot conflict.
	Seed(ctx context.Context, types []domain.EventType) error
}

type EventTypeService struct {
	repo EventTypeRepository
}

func NewEventTypeService(repo EventTypeRepository) *EventTypeService {
	return &EventTypeService{repo: repo}
}

// List returns the category registry, writing the fixed seed set first if the
// registry is empty on first read.
func (s *EventTypeService) List(ctx context.Context) ([]domain.EventType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(types) > 0 {
		return types, nil
	}

	if err := s.repo.Seed(ctx, domain.SeedEventTypes()); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}
