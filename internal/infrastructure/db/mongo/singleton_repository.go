package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docushop/storefront/internal/core/domain"
)

// Singletons live under a fixed _id and are written with one upsert.
const (
	shippingRatesID = "shipping_rates"
	settingsID      = "storefront"
)

func replaceSingleton(ctx context.Context, col *mongo.Collection, id string, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

func findSingleton(ctx context.Context, col *mongo.Collection, id string, out any, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notFound
		}
		return err
	}
	return nil
}

type ShippingRepository struct {
	col *mongo.Collection
}

func NewShippingRepository(db *mongo.Database) *ShippingRepository {
	return &ShippingRepository{col: db.Collection(collectionShipping)}
}

type shippingDoc struct {
	ID        string               `bson:"_id"`
	Discreet  primitive.Decimal128 `bson:"discreet"`
	Express   primitive.Decimal128 `bson:"express"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

func (r *ShippingRepository) Get(ctx context.Context) (*domain.ShippingRates, error) {
	var d shippingDoc
	if err := findSingleton(ctx, r.col, shippingRatesID, &d, domain.ErrRatesNotSet); err != nil {
		if errors.Is(err, domain.ErrRatesNotSet) {
			return nil, err
		}
		return nil, fmt.Errorf("find shipping rates: %w", err)
	}

	discreet, err := fromDecimal128(d.Discreet)
	if err != nil {
		return nil, err
	}
	express, err := fromDecimal128(d.Express)
	if err != nil {
		return nil, err
	}
	return &domain.ShippingRates{Discreet: discreet, Express: express, UpdatedAt: d.UpdatedAt}, nil
}

func (r *ShippingRepository) Set(ctx context.Context, rates domain.ShippingRates) error {
	discreet, err := toDecimal128(rates.Discreet)
	if err != nil {
		return err
	}
	express, err := toDecimal128(rates.Express)
	if err != nil {
		return err
	}

	doc := shippingDoc{ID: shippingRatesID, Discreet: discreet, Express: express, UpdatedAt: rates.UpdatedAt.UTC()}
	if err := replaceSingleton(ctx, r.col, shippingRatesID, doc); err != nil {
		return fmt.Errorf("replace shipping rates: %w", err)
	}
	return nil
}

type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(collectionSettings)}
}

type settingsDoc struct {
	ID              string    `bson:"_id"`
	SiteTitle       string    `bson:"site_title"`
	SiteDescription string    `bson:"site_description"`
	HeroTitle       string    `bson:"hero_title"`
	HeroDescription string    `bson:"hero_description"`
	HeroButton      string    `bson:"hero_button"`
	MaintenanceMode bool      `bson:"maintenance_mode"`
	DefaultCurrency string    `bson:"default_currency"`
	AdminEmail      string    `bson:"admin_email"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.StorefrontSettings, error) {
	var d settingsDoc
	if err := findSingleton(ctx, r.col, settingsID, &d, domain.ErrSettingsNotSet); err != nil {
		if errors.Is(err, domain.ErrSettingsNotSet) {
			return nil, err
		}
		return nil, fmt.Errorf("find settings: %w", err)
	}
	return d.toDomain(), nil
}

// Patch upserts the singleton with $set for the supplied fields and
// $setOnInsert defaults for the rest, so concurrent patches of different
// fields never overwrite each other.
func (r *SettingsRepository) Patch(ctx context.Context, p domain.SettingsPatch, at time.Time) (*domain.StorefrontSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	defaults := domain.DefaultStorefrontSettings()
	set := bson.M{"updated_at": at.UTC()}
	onInsert := bson.M{}
	field := func(name string, v *string, def string) {
		if v != nil {
			set[name] = *v
		} else {
			onInsert[name] = def
		}
	}
	field("site_title", p.SiteTitle, defaults.SiteTitle)
	field("site_description", p.SiteDescription, defaults.SiteDescription)
	field("hero_title", p.HeroTitle, defaults.HeroTitle)
	field("hero_description", p.HeroDescription, defaults.HeroDescription)
	field("hero_button", p.HeroButton, defaults.HeroButton)
	field("default_currency", p.DefaultCurrency, defaults.DefaultCurrency)
	field("admin_email", p.AdminEmail, defaults.AdminEmail)
	if p.MaintenanceMode != nil {
		set["maintenance_mode"] = *p.MaintenanceMode
	} else {
		onInsert["maintenance_mode"] = defaults.MaintenanceMode
	}

	update := bson.M{"$set": set}
	if len(onInsert) > 0 {
		update["$setOnInsert"] = onInsert
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var d settingsDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": settingsID}, update, opts).Decode(&d); err != nil {
		return nil, fmt.Errorf("patch settings: %w", err)
	}
	return d.toDomain(), nil
}

func (d settingsDoc) toDomain() *domain.StorefrontSettings {
	return &domain.StorefrontSettings{
		SiteTitle:       d.SiteTitle,
		SiteDescription: d.SiteDescription,
		HeroTitle:       d.HeroTitle,
		HeroDescription: d.HeroDescription,
		HeroButton:      d.HeroButton,
		MaintenanceMode: d.MaintenanceMode,
		DefaultCurrency: d.DefaultCurrency,
		AdminEmail:      d.AdminEmail,
		UpdatedAt:       d.UpdatedAt,
	}
}
