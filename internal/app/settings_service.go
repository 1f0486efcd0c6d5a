package app

import (
	"context"
	"errors"

	"github.com/cosfat/kzone/internal/domain"
)

type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}

type SettingsService struct {
	repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the singleton settings document. A missing document means
// defaults; a stored document with unknown field values is normalized field
// by field rather than rejected.
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, err
	}
	return settings.Normalize(), nil
}

type UpdateSettingsInput struct {
	HomepageSortOrder string
	HideOldEvents     bool
}

func (s *SettingsService) Update(ctx context.Context, in UpdateSettingsInput) (domain.Settings, error) {
	order, err := domain.ParseSortOrder(in.HomepageSortOrder)
	if err != nil {
		return domain.Settings{}, err
	}

	settings := domain.Settings{
		HomepageSortOrder: order,
		HideOldEvents:     in.HideOldEvents,
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}
