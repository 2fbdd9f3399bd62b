package domain

import (
	"errors"
	"testing"
)

func TestStorefrontSettings_Validate(t *testing.T) {
	s := DefaultStorefrontSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}

	s.DefaultCurrency = "EUR"
	s.AdminEmail = "admin@docushop.com"
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := s
	bad.DefaultCurrency = "DOLLARS"
	if err := bad.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for currency, got %v", err)
	}

	bad = s
	bad.AdminEmail = "not-an-email"
	if err := bad.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for email, got %v", err)
	}
}

func TestSettingsPatch(t *testing.T) {
	title, code, blank := "Night Shop", " eur ", ""
	p := SettingsPatch{SiteTitle: &title, DefaultCurrency: &code, AdminEmail: &blank}
	p.Normalize()
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := p.Apply(DefaultStorefrontSettings())
	if got.SiteTitle != "Night Shop" || got.DefaultCurrency != "EUR" {
		t.Fatalf("patched fields not applied: %+v", got)
	}
	if got.HeroTitle != DefaultStorefrontSettings().HeroTitle {
		t.Fatalf("unpatched field changed: %q", got.HeroTitle)
	}

	bad := "ZZZZ"
	if err := (SettingsPatch{DefaultCurrency: &bad}).Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for currency, got %v", err)
	}
}

func TestAccount_Identity(t *testing.T) {
	a := Account{ID: "1", Email: "a@b.c", Username: "ann", PasswordHash: "hash", Role: RoleAdmin}
	id := a.Identity()
	if id.ID != "1" || id.Email != "a@b.c" || id.Username != "ann" || id.Role != RoleAdmin {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestRegistration_Validate(t *testing.T) {
	r := Registration{Username: "ann", Email: "a@b.c", Password: "pw", FirstName: "Ann", LastName: "Lee", Phone: "555"}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Phone = ""
	if err := r.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
