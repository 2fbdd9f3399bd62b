package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. Each mirrors the single-document atomicity of
// the Mongo implementation by holding a mutex for the whole operation.
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newStubProductRepo(products ...domain.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		r.products[p.ID] = cloneProduct(&p)
	}
	return r
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	clone.Variants = append([]string(nil), p.Variants...)
	return &clone
}

func (r *stubProductRepo) List(_ context.Context, category string) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch domain.ProductPatch, at time.Time) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Variants != nil {
		p.Variants = append([]string(nil), (*patch.Variants)...)
	}
	if patch.Available != nil {
		p.Available = *patch.Available
	}
	p.UpdatedAt = at
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

type stubShippingRepo struct {
	mu    sync.Mutex
	rates *domain.ShippingRates
}

func (r *stubShippingRepo) Get(_ context.Context) (*domain.ShippingRates, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rates == nil {
		return nil, domain.ErrRatesNotSet
	}
	clone := *r.rates
	return &clone, nil
}

func (r *stubShippingRepo) Set(_ context.Context, rates domain.ShippingRates) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates = &rates
	return nil
}

type stubOrderRepo struct {
	mu        sync.Mutex
	orders    map[string]*domain.Order
	createErr error

	// beforeCreate and afterCreate run around the insert in Create.
	beforeCreate func()
	afterCreate  func()
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &clone
}

func (r *stubOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.orders[o.ID] = cloneOrder(o)
	if r.afterCreate != nil {
		r.afterCreate()
	}
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) TransitionStatus(_ context.Context, id string, from, to domain.OrderStatus, at time.Time) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if o.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	o.Status = to
	o.UpdatedAt = at
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Order
	for _, o := range r.orders {
		if f.Status == "" || o.Status == f.Status {
			matched = append(matched, cloneOrder(o))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.Order{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubOrderRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *stubOrderRepo) Revenue(_ context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, o := range r.orders {
		if o.Status == domain.OrderCompleted {
			sum = sum.Add(o.Total)
		}
	}
	return sum, nil
}

func (r *stubOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	clone := *a
	if a.Billing != nil {
		b := *a.Billing
		clone.Billing = &b
	}
	return &clone
}

// taken mirrors the unique indexes on email and username.
func (r *stubAccountRepo) taken(exceptID, email, username string) bool {
	for _, a := range r.accounts {
		if a.ID == exceptID {
			continue
		}
		if a.Email == email || (username != "" && a.Username == username) {
			return true
		}
	}
	return false
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken("", a.Email, a.Username) {
		return domain.ErrAccountExists
	}
	r.accounts[a.ID] = cloneAccount(a)
	return nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindAdmin(_ context.Context) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var admin *domain.Account
	for _, a := range r.accounts {
		if a.Role == domain.RoleAdmin && (admin == nil || a.CreatedAt.Before(admin.CreatedAt)) {
			admin = a
		}
	}
	if admin == nil {
		return nil, domain.ErrAdminNotFound
	}
	return cloneAccount(admin), nil
}

func (r *stubAccountRepo) update(id string, at time.Time, fn func(a *domain.Account) error) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if err := fn(a); err != nil {
		return nil, err
	}
	a.UpdatedAt = at
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) UpdateCredentials(_ context.Context, id, email, hash string, at time.Time) (*domain.Account, error) {
	return r.update(id, at, func(a *domain.Account) error {
		if r.taken(id, email, "") {
			return domain.ErrAccountExists
		}
		a.Email = email
		a.PasswordHash = hash
		return nil
	})
}

func (r *stubAccountRepo) UpdateBilling(_ context.Context, id string, billing domain.Billing, at time.Time) (*domain.Account, error) {
	return r.update(id, at, func(a *domain.Account) error {
		a.Billing = &billing
		return nil
	})
}

func (r *stubAccountRepo) UpdateStatus(_ context.Context, id string, status domain.AccountStatus, at time.Time) (*domain.Account, error) {
	return r.update(id, at, func(a *domain.Account) error {
		a.Status = status
		return nil
	})
}

func (r *stubAccountRepo) List(_ context.Context, page, limit int) ([]*domain.Account, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		all = append(all, cloneAccount(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	skip := (page - 1) * limit
	if skip > len(all) {
		return []*domain.Account{}, int64(len(all)), nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], int64(len(all)), nil
}

func (r *stubAccountRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.accounts)), nil
}

type stubSettingsRepo struct {
	mu       sync.Mutex
	settings *domain.StorefrontSettings
}

func (r *stubSettingsRepo) Get(_ context.Context) (*domain.StorefrontSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settings == nil {
		return nil, domain.ErrSettingsNotSet
	}
	clone := *r.settings
	return &clone, nil
}

func (r *stubSettingsRepo) Patch(_ context.Context, p domain.SettingsPatch, at time.Time) (*domain.StorefrontSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := domain.DefaultStorefrontSettings()
	if r.settings != nil {
		current = *r.settings
	}
	next := p.Apply(current)
	next.UpdatedAt = at
	r.settings = &next
	clone := next
	return &clone, nil
}

type idempotencyEntry struct {
	fingerprint string
	orderID     string
}

// stubIdempotencyStore honours ctx like a network store would.
type stubIdempotencyStore struct {
	mu       sync.Mutex
	keys     map[string]idempotencyEntry
	claimErr error
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{keys: make(map[string]idempotencyEntry)}
}

func (s *stubIdempotencyStore) Claim(ctx context.Context, key, fingerprint string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claimErr != nil {
		return "", false, s.claimErr
	}
	if e, ok := s.keys[key]; ok {
		if e.fingerprint != fingerprint {
			return "", false, domain.ErrIdempotencyKeyReused
		}
		return e.orderID, false, nil
	}
	s.keys[key] = idempotencyEntry{fingerprint: fingerprint}
	return "", true, nil
}

func (s *stubIdempotencyStore) Complete(ctx context.Context, key, fingerprint, orderID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = idempotencyEntry{fingerprint: fingerprint, orderID: orderID}
	return nil
}

func (s *stubIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}
