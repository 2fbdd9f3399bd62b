package domain

import (
	"net/mail"
	"strings"
	"time"

	"golang.org/x/text/currency"
)

// StorefrontSettings is the singleton holding site content and store-wide switches.
type StorefrontSettings struct {
	SiteTitle       string
	SiteDescription string
	HeroTitle       string
	HeroDescription string
	HeroButton      string
	MaintenanceMode bool
	DefaultCurrency string
	AdminEmail      string
	UpdatedAt       time.Time
}

// DefaultStorefrontSettings is returned when settings have never been saved.
func DefaultStorefrontSettings() StorefrontSettings {
	return StorefrontSettings{
		SiteTitle:       "DocuShop",
		SiteDescription: "Your trusted source for documents",
		HeroTitle:       "Welcome to DocuShop",
		HeroDescription: "Quality documents delivered discreetly",
		HeroButton:      "Shop Now",
		DefaultCurrency: currency.USD.String(),
	}
}

// Validate checks the currency is an ISO 4217 code and the admin email, if
// set, is a mailbox address.
func (s StorefrontSettings) Validate() error {
	if _, err := currency.ParseISO(s.DefaultCurrency); err != nil {
		return Invalidf("default currency %q is not an ISO 4217 code", s.DefaultCurrency)
	}
	if s.AdminEmail != "" {
		if _, err := mail.ParseAddress(s.AdminEmail); err != nil {
			return Invalidf("admin email %q is not a valid address", s.AdminEmail)
		}
	}
	return nil
}

// SettingsPatch carries the settings fields to change; nil fields are left
// as stored.
type SettingsPatch struct {
	SiteTitle       *string
	SiteDescription *string
	HeroTitle       *string
	HeroDescription *string
	HeroButton      *string
	MaintenanceMode *bool
	DefaultCurrency *string
	AdminEmail      *string
}

// Normalize upper-cases and trims the currency code.
func (p *SettingsPatch) Normalize() {
	if p.DefaultCurrency != nil {
		code := strings.ToUpper(strings.TrimSpace(*p.DefaultCurrency))
		p.DefaultCurrency = &code
	}
}

func (p SettingsPatch) Validate() error {
	if p.DefaultCurrency != nil {
		if _, err := currency.ParseISO(*p.DefaultCurrency); err != nil {
			return Invalidf("default currency %q is not an ISO 4217 code", *p.DefaultCurrency)
		}
	}
	if p.AdminEmail != nil && *p.AdminEmail != "" {
		if _, err := mail.ParseAddress(*p.AdminEmail); err != nil {
			return Invalidf("admin email %q is not a valid address", *p.AdminEmail)
		}
	}
	return nil
}

// Apply returns s with the patched fields overwritten.
func (p SettingsPatch) Apply(s StorefrontSettings) StorefrontSettings {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.SiteTitle, p.SiteTitle)
	set(&s.SiteDescription, p.SiteDescription)
	set(&s.HeroTitle, p.HeroTitle)
	set(&s.HeroDescription, p.HeroDescription)
	set(&s.HeroButton, p.HeroButton)
	set(&s.DefaultCurrency, p.DefaultCurrency)
	set(&s.AdminEmail, p.AdminEmail)
	if p.MaintenanceMode != nil {
		s.MaintenanceMode = *p.MaintenanceMode
	}
	return s
}
