package mongo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	driver "go.mongodb.org/mongo-driver/mongo"

	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
	"github.com/docushop/storefront/internal/infrastructure/db/mongo"
)

type repositorySuite struct {
	suite.Suite

	container *mongodb.MongoDBContainer
	client    *driver.Client
	db        *driver.Database

	products *mongo.ProductRepository
	orders   *mongo.OrderRepository
	accounts *mongo.AccountRepository
	shipping *mongo.ShippingRepository
	settings *mongo.SettingsRepository
}

// entry point to run the tests in the suite
func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MongoDB container tests in short mode")
	}
	suite.Run(t, new(repositorySuite))
}

// before all tests in the suite
func (suite *repositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var err error
	suite.container, err = mongodb.Run(ctx, "mongo:7")
	suite.Require().NoError(err)

	uri, err := suite.container.ConnectionString(ctx)
	suite.Require().NoError(err)

	suite.client, suite.db, err = mongo.Connect(ctx, mongo.Config{URI: uri, Database: "storefront_test"})
	suite.Require().NoError(err)
	suite.Require().NoError(mongo.EnsureIndexes(ctx, suite.db))

	suite.products = mongo.NewProductRepository(suite.db)
	suite.orders = mongo.NewOrderRepository(suite.db)
	suite.accounts = mongo.NewAccountRepository(suite.db)
	suite.shipping = mongo.NewShippingRepository(suite.db)
	suite.settings = mongo.NewSettingsRepository(suite.db)
}

// after all tests in the suite
func (suite *repositorySuite) TearDownSuite() {
	ctx := context.Background()
	if suite.client != nil {
		_ = suite.client.Disconnect(ctx)
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *repositorySuite) TearDownTest() {
	ctx := context.Background()
	for _, coll := range []string{"products", "orders", "accounts", "shipping_rates", "settings"} {
		_, err := suite.db.Collection(coll).DeleteMany(ctx, map[string]any{})
		suite.NoError(err)
	}
}

func randomProduct() domain.Product {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return domain.Product{
		ID:          uuid.NewString(),
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2),
		Category:    gofakeit.ProductCategory(),
		Image:       gofakeit.URL(),
		Variants:    []string{"standard", "premium"},
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func randomOrder() domain.Order {
	now := time.Now().UTC().Truncate(time.Millisecond)
	price := decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2)
	qty := gofakeit.Number(1, 5)
	subtotal := price.Mul(decimal.NewFromInt(int64(qty)))
	shipping := decimal.RequireFromString("30.00")
	return domain.Order{
		ID: uuid.NewString(),
		Lines: []domain.OrderLine{{
			ProductID:   uuid.NewString(),
			ProductName: gofakeit.ProductName(),
			Quantity:    qty,
			UnitPrice:   price,
			Subtotal:    subtotal,
		}},
		Billing: domain.Billing{
			Name:    gofakeit.Name(),
			Address: gofakeit.Street(),
			City:    gofakeit.City(),
			Country: gofakeit.Country(),
			Zip:     gofakeit.Zip(),
			Email:   gofakeit.Email(),
		},
		ShippingTier: domain.TierDiscreet,
		Subtotal:     subtotal,
		Shipping:     shipping,
		Total:        subtotal.Add(shipping),
		Status:       domain.OrderPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

var decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) })

func (suite *repositorySuite) TestProducts() {
	t := suite.T()
	ctx := t.Context()

	p := randomProduct()
	require.NoError(t, suite.products.Create(ctx, &p))

	got, err := suite.products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(p, *got, decimalComparer, cmpopts.EquateEmpty()))

	price := decimal.RequireFromString("12.34")
	available := false
	updated, err := suite.products.Update(ctx, p.ID, domain.ProductPatch{Price: &price, Available: &available}, time.Now())
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
	assert.False(t, updated.Available)
	assert.Equal(t, p.Name, updated.Name)

	other := randomProduct()
	other.Category = p.Category + "-other"
	require.NoError(t, suite.products.Create(ctx, &other))

	byCategory, err := suite.products.List(ctx, p.Category)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, p.ID, byCategory[0].ID)

	n, err := suite.products.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, suite.products.Delete(ctx, p.ID))
	assert.ErrorIs(t, suite.products.Delete(ctx, p.ID), domain.ErrProductNotFound)
	_, err = suite.products.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	_, err = suite.products.Update(ctx, p.ID, domain.ProductPatch{Price: &price}, time.Now())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func (suite *repositorySuite) TestOrders() {
	t := suite.T()
	ctx := t.Context()

	o := randomOrder()
	require.NoError(t, suite.orders.Create(ctx, &o))

	got, err := suite.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(o, *got, decimalComparer, cmpopts.EquateEmpty()))

	completed, err := suite.orders.TransitionStatus(ctx, o.ID, domain.OrderPending, domain.OrderCompleted, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.OrderCompleted, completed.Status)

	_, err = suite.orders.TransitionStatus(ctx, o.ID, domain.OrderPending, domain.OrderCancelled, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = suite.orders.TransitionStatus(ctx, uuid.NewString(), domain.OrderPending, domain.OrderCancelled, time.Now())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	pending := randomOrder()
	pending.CreatedAt = o.CreatedAt.Add(time.Second)
	require.NoError(t, suite.orders.Create(ctx, &pending))

	revenue, err := suite.orders.Revenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(o.Total), "revenue %s, want %s", revenue, o.Total)

	page, total, err := suite.orders.List(ctx, ports.ListOrdersFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 2)
	assert.Equal(t, pending.ID, page[0].ID)

	onlyCompleted, total, err := suite.orders.List(ctx, ports.ListOrdersFilter{Status: domain.OrderCompleted, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, onlyCompleted, 1)
	assert.Equal(t, o.ID, onlyCompleted[0].ID)
}

func (suite *repositorySuite) TestOrders_ConcurrentTransition() {
	t := suite.T()
	ctx := t.Context()

	o := randomOrder()
	require.NoError(t, suite.orders.Create(ctx, &o))

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			to := domain.OrderCancelled
			if i%2 == 0 {
				to = domain.OrderCompleted
			}
			if _, err := suite.orders.TransitionStatus(ctx, o.ID, domain.OrderPending, to, time.Now()); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func (suite *repositorySuite) TestAccounts() {
	t := suite.T()
	ctx := t.Context()

	now := time.Now().UTC().Truncate(time.Millisecond)
	admin := domain.Account{
		ID: uuid.NewString(), Username: "admin", Email: "admin@docushop.com",
		PasswordHash: "hash", Role: domain.RoleAdmin, Status: domain.AccountActive,
		CreatedAt: now, UpdatedAt: now,
	}
	user := domain.Account{
		ID: uuid.NewString(), Username: gofakeit.Username(), Email: gofakeit.Email(),
		PasswordHash: "hash", Role: domain.RoleUser, Status: domain.AccountActive,
		CreatedAt: now.Add(time.Second), UpdatedAt: now,
	}
	_, err := suite.accounts.FindAdmin(ctx)
	assert.ErrorIs(t, err, domain.ErrAdminNotFound)

	require.NoError(t, suite.accounts.Create(ctx, &admin))
	require.NoError(t, suite.accounts.Create(ctx, &user))

	dupEmail := user
	dupEmail.ID, dupEmail.Username = uuid.NewString(), "someone-else"
	assert.ErrorIs(t, suite.accounts.Create(ctx, &dupEmail), domain.ErrAccountExists)

	dupName := user
	dupName.ID, dupName.Email = uuid.NewString(), "someone@else.com"
	assert.ErrorIs(t, suite.accounts.Create(ctx, &dupName), domain.ErrAccountExists)

	found, err := suite.accounts.FindAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, found.ID)

	_, err = suite.accounts.UpdateCredentials(ctx, admin.ID, user.Email, "new-hash", time.Now())
	assert.ErrorIs(t, err, domain.ErrAccountExists)

	updated, err := suite.accounts.UpdateCredentials(ctx, admin.ID, "root@docushop.com", "new-hash", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "root@docushop.com", updated.Email)

	billing := randomOrder().Billing
	withBilling, err := suite.accounts.UpdateBilling(ctx, user.ID, billing, time.Now())
	require.NoError(t, err)
	require.NotNil(t, withBilling.Billing)
	assert.Equal(t, billing, *withBilling.Billing)

	inactive, err := suite.accounts.UpdateStatus(ctx, user.ID, domain.AccountInactive, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.AccountInactive, inactive.Status)

	_, err = suite.accounts.UpdateStatus(ctx, uuid.NewString(), domain.AccountInactive, time.Now())
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	list, total, err := suite.accounts.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	for _, a := range list {
		assert.Empty(t, a.PasswordHash)
	}

	byEmail, err := suite.accounts.FindByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	_, err = suite.accounts.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func (suite *repositorySuite) TestSingletons() {
	t := suite.T()
	ctx := t.Context()

	_, err := suite.shipping.Get(ctx)
	assert.True(t, errors.Is(err, domain.ErrRatesNotSet))

	rates := domain.ShippingRates{
		Discreet:  decimal.RequireFromString("12.50"),
		Express:   decimal.RequireFromString("40"),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, suite.shipping.Set(ctx, rates))
	rates.Express = decimal.RequireFromString("45.75")
	require.NoError(t, suite.shipping.Set(ctx, rates))

	got, err := suite.shipping.Get(ctx)
	require.NoError(t, err)
	assert.True(t, got.Discreet.Equal(rates.Discreet))
	assert.True(t, got.Express.Equal(rates.Express))

	n, err := suite.db.Collection("shipping_rates").CountDocuments(ctx, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = suite.settings.Get(ctx)
	assert.True(t, errors.Is(err, domain.ErrSettingsNotSet))

	on, email := true, "admin@docushop.com"
	saved, err := suite.settings.Patch(ctx, domain.SettingsPatch{MaintenanceMode: &on, AdminEmail: &email}, time.Now())
	require.NoError(t, err)

	want := domain.DefaultStorefrontSettings()
	want.MaintenanceMode = true
	want.AdminEmail = email
	assert.Empty(t, cmp.Diff(want, *saved, cmpopts.IgnoreFields(domain.StorefrontSettings{}, "UpdatedAt")))

	gotSettings, err := suite.settings.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, *gotSettings, cmpopts.IgnoreFields(domain.StorefrontSettings{}, "UpdatedAt")))
}

func (suite *repositorySuite) TestSettings_ConcurrentPatchesKeepEachField() {
	t := suite.T()
	ctx := context.Background()

	title, currency := "Night Shop", "EUR"
	patches := []domain.SettingsPatch{{SiteTitle: &title}, {DefaultCurrency: &currency}}

	var wg sync.WaitGroup
	for _, p := range patches {
		wg.Add(1)
		go func(p domain.SettingsPatch) {
			defer wg.Done()
			_, err := suite.settings.Patch(ctx, p, time.Now())
			assert.NoError(t, err)
		}(p)
	}
	wg.Wait()

	got, err := suite.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Night Shop", got.SiteTitle)
	assert.Equal(t, "EUR", got.DefaultCurrency)
	assert.Equal(t, domain.DefaultStorefrontSettings().HeroTitle, got.HeroTitle)
}
