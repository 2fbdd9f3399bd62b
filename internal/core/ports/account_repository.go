package ports

import (
	"context"
	"time"

	"github.com/docushop/storefront/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
// Email and username uniqueness is enforced by the store itself.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// FindAdmin returns the oldest account with the admin role.
	FindAdmin(ctx context.Context) (*domain.Account, error)
	UpdateCredentials(ctx context.Context, id, email, passwordHash string, at time.Time) (*domain.Account, error)
	UpdateBilling(ctx context.Context, id string, billing domain.Billing, at time.Time) (*domain.Account, error)
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, at time.Time) (*domain.Account, error)
	// List returns a page of accounts ordered by creation and the total count.
	List(ctx context.Context, page, limit int) ([]*domain.Account, int64, error)
	Count(ctx context.Context) (int64, error)
}
