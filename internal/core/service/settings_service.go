package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
)

type SettingsService struct {
	repo   ports.SettingsRepository
	logger zerolog.Logger
}

func NewSettingsService(repo ports.SettingsRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// Get returns the saved settings, or the defaults when none were saved.
func (s *SettingsService) Get(ctx context.Context) (domain.StorefrontSettings, error) {
	settings, err := s.repo.Get(ctx)
	if errors.Is(err, domain.ErrSettingsNotSet) {
		return domain.DefaultStorefrontSettings(), nil
	}
	if err != nil {
		return domain.StorefrontSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return *settings, nil
}

// Update applies the patch to the stored settings in one write.
func (s *SettingsService) Update(ctx context.Context, p domain.SettingsPatch) (domain.StorefrontSettings, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return domain.StorefrontSettings{}, err
	}

	saved, err := s.repo.Patch(ctx, p, time.Now().UTC())
	if err != nil {
		return domain.StorefrontSettings{}, fmt.Errorf("update settings: %w", err)
	}

	s.logger.Info().
		Bool("maintenance_mode", saved.MaintenanceMode).
		Str("default_currency", saved.DefaultCurrency).
		Msg("storefront settings updated")
	return *saved, nil
}
