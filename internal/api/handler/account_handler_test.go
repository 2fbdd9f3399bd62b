package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
)

type stubAccountService struct {
	registerFn      func(ctx context.Context, reg domain.Registration) (*domain.Account, error)
	loginFn         func(ctx context.Context, email, password string) (string, *domain.Identity, error)
	updateProfileFn func(ctx context.Context, id string, billing domain.Billing) (*domain.Account, error)
	setStatusFn     func(ctx context.Context, id, status string) (*domain.Account, error)
	credentialsFn   func(ctx context.Context, email, password string) (*domain.Identity, error)
}

func (s *stubAccountService) Register(ctx context.Context, reg domain.Registration) (*domain.Account, error) {
	return s.registerFn(ctx, reg)
}

func (s *stubAccountService) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	_, id, err := s.loginFn(ctx, email, password)
	return id, err
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) UpdateAdminCredentials(ctx context.Context, email, password string) (*domain.Identity, error) {
	return s.credentialsFn(ctx, email, password)
}

func (s *stubAccountService) UpdateProfile(ctx context.Context, id string, billing domain.Billing) (*domain.Account, error) {
	return s.updateProfileFn(ctx, id, billing)
}

func (s *stubAccountService) SetStatus(ctx context.Context, id, status string) (*domain.Account, error) {
	return s.setStatusFn(ctx, id, status)
}

func (s *stubAccountService) List(ctx context.Context, page, limit int) (*ports.ListAccountsResult, error) {
	return &ports.ListAccountsResult{Page: page, Limit: limit}, nil
}

func (s *stubAccountService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	return false, nil
}

func TestAccountHandler_Register_Success(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, reg domain.Registration) (*domain.Account, error) {
			if reg.Username != "alice" || reg.FirstName != "Alice" || reg.Phone != "555-0100" {
				t.Fatalf("unexpected registration: %+v", reg)
			}
			return &domain.Account{ID: "acc-1", Username: reg.Username, Email: reg.Email, PasswordHash: "hash"}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/accounts/register",
		`{"username":"alice","email":"a@example.com","password":"secret","firstName":"Alice","lastName":"Smith","phone":"555-0100"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	if resp["id"] != "acc-1" || resp["username"] != "alice" || resp["email"] != "a@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["passwordHash"]; leaked {
		t.Fatalf("password hash leaked: %+v", resp)
	}
}

func TestAccountHandler_Register_Conflict(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, reg domain.Registration) (*domain.Account, error) {
			return nil, domain.ErrAccountExists
		},
	}
	h := NewAccountHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/accounts/register", `{"username":"bob"}`)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAccountHandler_Register_InvalidEmail(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{})

	c, _ := newTestContext(http.MethodPost, "/accounts/register", `{"username":"bob","email":"not-an-email"}`)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAccountHandler_Login_Success(t *testing.T) {
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Identity, error) {
			return "signed-token", &domain.Identity{ID: "acc-1", Email: email, Username: "alice", Role: domain.RoleUser}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/accounts/login", `{"email":"a@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	if resp["token"] != "signed-token" || resp["role"] != "user" || resp["id"] != "acc-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAccountHandler_Login_Failures(t *testing.T) {
	cases := map[string]error{
		"not_found":           domain.ErrAccountNotFound,
		"invalid_credentials": domain.ErrInvalidCredentials,
		"inactive":            domain.ErrAccountInactive,
	}
	for reason, want := range cases {
		t.Run(reason, func(t *testing.T) {
			stub := &stubAccountService{
				loginFn: func(ctx context.Context, email, password string) (string, *domain.Identity, error) {
					return "", nil, want
				},
			}
			h := NewAccountHandler(stub)

			c, _ := newTestContext(http.MethodPost, "/accounts/login", `{"email":"a@example.com","password":"x"}`)
			err := h.Login(c)
			if !errors.Is(err, want) {
				t.Fatalf("expected %v, got %v", want, err)
			}
			if got := loginFailureReason(err); got != reason {
				t.Fatalf("expected reason %q, got %q", reason, got)
			}
		})
	}
}

func TestAccountHandler_UpdateBilling_OwnerOnly(t *testing.T) {
	called := false
	stub := &stubAccountService{
		updateProfileFn: func(ctx context.Context, id string, billing domain.Billing) (*domain.Account, error) {
			called = true
			return &domain.Account{ID: id, Billing: &billing}, nil
		},
	}
	h := NewAccountHandler(stub)
	body := `{"name":"Alice","address":"1 Main St","city":"London","country":"UK","zip":"N1","email":"a@example.com"}`

	c, _ := newTestContext(http.MethodPut, "/accounts/acc-2/billing", body)
	c.SetParamNames("id")
	c.SetParamValues("acc-2")
	c.Set(ctxAccountID, "acc-1")
	c.Set(ctxRole, string(domain.RoleUser))
	if err := h.UpdateBilling(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if called {
		t.Fatalf("service must not be called for another account")
	}

	c, rec := newTestContext(http.MethodPut, "/accounts/acc-1/billing", body)
	c.SetParamNames("id")
	c.SetParamValues("acc-1")
	c.Set(ctxAccountID, "acc-1")
	c.Set(ctxRole, string(domain.RoleUser))
	if err := h.UpdateBilling(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	billing, ok := decodeBody(t, rec)["billing"].(map[string]any)
	if !ok || billing["city"] != "London" {
		t.Fatalf("unexpected billing payload: %s", rec.Body.String())
	}
}

func TestAccountHandler_UpdateBilling_AdminMayEditOthers(t *testing.T) {
	stub := &stubAccountService{
		updateProfileFn: func(ctx context.Context, id string, billing domain.Billing) (*domain.Account, error) {
			return &domain.Account{ID: id, Billing: &billing}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/accounts/acc-2/billing", `{"name":"Bob"}`)
	c.SetParamNames("id")
	c.SetParamValues("acc-2")
	c.Set(ctxAccountID, "admin-1")
	c.Set(ctxRole, string(domain.RoleAdmin))
	if err := h.UpdateBilling(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_SetStatus_RejectsUnknownStatus(t *testing.T) {
	h := NewAccountHandler(&stubAccountService{})

	c, _ := newTestContext(http.MethodPut, "/admin/accounts/acc-1/status", `{"status":"banned"}`)
	c.SetParamNames("id")
	c.SetParamValues("acc-1")
	if err := h.SetStatus(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
