package handler

import (
	"encoding/json"
	"time"

	"github.com/docushop/storefront/internal/core/domain"
)

type statsResponse struct {
	TotalAccounts int64       `json:"totalAccounts"`
	TotalProducts int64       `json:"totalProducts"`
	TotalOrders   int64       `json:"totalOrders"`
	Revenue       json.Number `json:"revenue" swaggertype:"number"`
}

type settingsResponse struct {
	SiteTitle       string    `json:"siteTitle"`
	SiteDescription string    `json:"siteDescription"`
	HeroTitle       string    `json:"heroTitle"`
	HeroDescription string    `json:"heroDescription"`
	HeroButton      string    `json:"heroButton"`
	MaintenanceMode bool      `json:"maintenanceMode"`
	DefaultCurrency string    `json:"defaultCurrency"`
	AdminEmail      string    `json:"adminEmail"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

func toSettingsResponse(s domain.StorefrontSettings) settingsResponse {
	return settingsResponse{
		SiteTitle:       s.SiteTitle,
		SiteDescription: s.SiteDescription,
		HeroTitle:       s.HeroTitle,
		HeroDescription: s.HeroDescription,
		HeroButton:      s.HeroButton,
		MaintenanceMode: s.MaintenanceMode,
		DefaultCurrency: s.DefaultCurrency,
		AdminEmail:      s.AdminEmail,
		UpdatedAt:       s.UpdatedAt,
	}
}

// updateSettingsRequest is a partial update; omitted fields keep their
// stored value.
type updateSettingsRequest struct {
	SiteTitle       *string `json:"siteTitle"`
	SiteDescription *string `json:"siteDescription"`
	HeroTitle       *string `json:"heroTitle"`
	HeroDescription *string `json:"heroDescription"`
	HeroButton      *string `json:"heroButton"`
	MaintenanceMode *bool   `json:"maintenanceMode"`
	DefaultCurrency *string `json:"defaultCurrency" validate:"omitempty,len=3"`
	AdminEmail      *string `json:"adminEmail"`
}

func (r updateSettingsRequest) patch() domain.SettingsPatch {
	return domain.SettingsPatch{
		SiteTitle:       r.SiteTitle,
		SiteDescription: r.SiteDescription,
		HeroTitle:       r.HeroTitle,
		HeroDescription: r.HeroDescription,
		HeroButton:      r.HeroButton,
		MaintenanceMode: r.MaintenanceMode,
		DefaultCurrency: r.DefaultCurrency,
		AdminEmail:      r.AdminEmail,
	}
}
