package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
)

// AccountOptions tunes credential handling.
type AccountOptions struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// AccountService implements registration, login and account administration.
type AccountService struct {
	repo   ports.AccountRepository
	opts   AccountOptions
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, opts AccountOptions, logger zerolog.Logger) *AccountService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{repo: repo, opts: opts, logger: logger}
}

// Register creates an active account with the user role.
func (s *AccountService) Register(ctx context.Context, reg domain.Registration) (*domain.Account, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:  reg.Username,
		Email:     reg.Email,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Phone:     reg.Phone,
		Role:      domain.RoleUser,
		Status:    domain.AccountActive,
	}
	if err := s.create(ctx, account, reg.Password); err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", account.ID).Str("username", account.Username).Msg("account registered")
	return account, nil
}

// create hashes password into account and inserts it; every stored
// credential goes through here or through hashPassword.
func (s *AccountService) create(ctx context.Context, account *domain.Account, password string) error {
	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	account.ID = uuid.NewString()
	account.PasswordHash = hash
	account.CreatedAt = now
	account.UpdatedAt = now

	if err := s.repo.Create(ctx, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (s *AccountService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Authenticate verifies email and password. Failed attempts are not counted.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domain.Invalidf("email and password are required")
	}

	account, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if account.Status != domain.AccountActive {
		return nil, domain.ErrAccountInactive
	}

	id := account.Identity()
	return &id, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	id, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(id)
	if err != nil {
		return "", nil, err
	}
	return token, id, nil
}

func (s *AccountService) generateToken(id *domain.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      id.ID,
		"username": id.Username,
		"role":     string(id.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.opts.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.opts.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// UpdateAdminCredentials replaces the admin account's email and password.
func (s *AccountService) UpdateAdminCredentials(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.Invalidf("email and password are required")
	}

	admin, err := s.repo.FindAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("update admin credentials: %w", err)
	}

	owner, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && owner.ID != admin.ID:
		return nil, domain.ErrAccountExists
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("update admin credentials: %w", err)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateCredentials(ctx, admin.ID, email, hash, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update admin credentials: %w", err)
	}

	s.logger.Info().Str("account_id", updated.ID).Msg("admin credentials updated")
	id := updated.Identity()
	return &id, nil
}

// UpdateProfile replaces the account's billing profile.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, billing domain.Billing) (*domain.Account, error) {
	if err := billing.Validate(); err != nil {
		return nil, err
	}
	account, err := s.repo.UpdateBilling(ctx, id, billing, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return account, nil
}

func (s *AccountService) SetStatus(ctx context.Context, id, status string) (*domain.Account, error) {
	parsed, err := domain.ParseAccountStatus(status)
	if err != nil {
		return nil, err
	}
	account, err := s.repo.UpdateStatus(ctx, id, parsed, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("set account status: %w", err)
	}

	s.logger.Info().Str("account_id", id).Str("status", status).Msg("account status changed")
	return account, nil
}

func (s *AccountService) List(ctx context.Context, page, limit int) (*ports.ListAccountsResult, error) {
	page, limit = normalizePage(page, limit)
	accounts, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return &ports.ListAccountsResult{
		Items:      accounts,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *AccountService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	_, err := s.repo.FindAdmin(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrAdminNotFound) {
		return false, fmt.Errorf("ensure admin: %w", err)
	}

	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return false, domain.Invalidf("admin username, email and password are required")
	}

	account := &domain.Account{
		Username:  username,
		Email:     email,
		FirstName: "Store",
		LastName:  "Admin",
		Role:      domain.RoleAdmin,
		Status:    domain.AccountActive,
	}
	if err := s.create(ctx, account, password); err != nil {
		return false, err
	}

	s.logger.Info().Str("account_id", account.ID).Str("username", username).Msg("admin account created")
	return true, nil
}
