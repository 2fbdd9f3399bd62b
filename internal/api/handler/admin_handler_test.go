package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docushop/storefront/internal/core/domain"
)

type stubSettingsService struct {
	gets  int
	patch domain.SettingsPatch
}

func (s *stubSettingsService) Get(ctx context.Context) (domain.StorefrontSettings, error) {
	s.gets++
	return domain.DefaultStorefrontSettings(), nil
}

func (s *stubSettingsService) Update(ctx context.Context, p domain.SettingsPatch) (domain.StorefrontSettings, error) {
	s.patch = p
	return p.Apply(domain.DefaultStorefrontSettings()), nil
}

func TestAdminHandler_UpdateSettings_SendsOnlySuppliedFields(t *testing.T) {
	settings := &stubSettingsService{}
	h := NewAdminHandler(nil, settings)

	c, rec := newTestContext(http.MethodPut, "/admin/settings", `{"heroTitle":"Autumn sale","maintenanceMode":false}`)
	require.NoError(t, h.UpdateSettings(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Zero(t, settings.gets, "update must not read the settings first")
	require.NotNil(t, settings.patch.HeroTitle)
	assert.Equal(t, "Autumn sale", *settings.patch.HeroTitle)
	require.NotNil(t, settings.patch.MaintenanceMode)
	assert.False(t, *settings.patch.MaintenanceMode)
	assert.Nil(t, settings.patch.SiteTitle)
	assert.Nil(t, settings.patch.DefaultCurrency)
	assert.Nil(t, settings.patch.AdminEmail)

	assert.Equal(t, "Autumn sale", decodeBody(t, rec)["heroTitle"])
}

func TestAdminHandler_UpdateSettings_BadPayload(t *testing.T) {
	h := NewAdminHandler(nil, &stubSettingsService{})

	c, _ := newTestContext(http.MethodPut, "/admin/settings", `{"defaultCurrency":"DOLLARS"}`)
	err := h.UpdateSettings(c)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
