package ports

import (
	"context"
	"time"

	"github.com/docushop/storefront/internal/core/domain"
)

// SettingsRepository stores the storefront settings singleton.
type SettingsRepository interface {
	// Get returns domain.ErrSettingsNotSet when settings were never saved.
	Get(ctx context.Context) (*domain.StorefrontSettings, error)
	// Patch writes only the fields set in p and returns the stored result.
	// Fields never saved before take their default values.
	Patch(ctx context.Context, p domain.SettingsPatch, at time.Time) (*domain.StorefrontSettings, error)
}
