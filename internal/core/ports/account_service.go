package ports

import (
	"context"

	"github.com/docushop/storefront/internal/core/domain"
)

// ListAccountsResult is returned by AccountService.List.
type ListAccountsResult struct {
	Items      []*domain.Account
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type AccountService interface {
	Register(ctx context.Context, reg domain.Registration) (*domain.Account, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Identity, error)
	// Login authenticates and issues a signed bearer token.
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)
	UpdateAdminCredentials(ctx context.Context, email, password string) (*domain.Identity, error)
	UpdateProfile(ctx context.Context, id string, billing domain.Billing) (*domain.Account, error)
	SetStatus(ctx context.Context, id, status string) (*domain.Account, error)
	List(ctx context.Context, page, limit int) (*ListAccountsResult, error)
	// EnsureAdmin creates the admin account when none exists and reports
	// whether it did.
	EnsureAdmin(ctx context.Context, username, email, password string) (bool, error)
}
