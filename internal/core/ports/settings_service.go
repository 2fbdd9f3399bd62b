package ports

import (
	"context"

	"github.com/docushop/storefront/internal/core/domain"
)

type SettingsService interface {
	Get(ctx context.Context) (domain.StorefrontSettings, error)
	Update(ctx context.Context, p domain.SettingsPatch) (domain.StorefrontSettings, error)
}

// DashboardService aggregates store-wide figures for administrators.
type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}
