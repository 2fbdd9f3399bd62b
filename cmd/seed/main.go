// Command seed prepares a fresh DocuShop database: it creates the admin
// account when none exists and can load a sample catalog and shipping rates.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/service"
	"github.com/docushop/storefront/internal/infrastructure/db/mongo"
	"github.com/docushop/storefront/internal/pkg/config"
	"github.com/docushop/storefront/pkg/logger"
	"github.com/docushop/storefront/pkg/sigctx"
)

const seedTimeout = time.Minute

type options struct {
	adminUsername string
	adminEmail    string
	adminPassword string
	catalog       bool
	shipping      bool
}

func parseFlags() options {
	var o options
	fs := pflag.NewFlagSet("seed", pflag.ExitOnError)
	fs.StringVar(&o.adminUsername, "admin-username", "admin", "username of the admin account")
	fs.StringVar(&o.adminEmail, "admin-email", "admin@docushop.local", "email of the admin account")
	fs.StringVar(&o.adminPassword, "admin-password", os.Getenv("ADMIN_PASSWORD"), "password of the admin account (default $ADMIN_PASSWORD)")
	fs.BoolVar(&o.catalog, "catalog", false, "load the sample catalog when the products collection is empty")
	fs.BoolVar(&o.shipping, "shipping", false, "store the default shipping rates")
	_ = fs.Parse(os.Args[1:])
	return o
}

func main() {
	opts := parseFlags()
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "docushop-seed"})

	sigCtx, stop := sigctx.NotifyContext()
	defer stop()
	ctx, cancel := context.WithTimeout(sigCtx, seedTimeout)
	defer cancel()

	if err := run(ctx, cfg, opts, log); err != nil {
		log.Error().Err(err).Msg("seed failed")
		os.Exit(1)
	}
	log.Info().Msg("seed complete")
}

func run(ctx context.Context, cfg *config.Config, opts options, log zerolog.Logger) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	accounts := service.NewAccountService(mongo.NewAccountRepository(db), service.AccountOptions{
		JWTSecret:  cfg.Auth.JWTSecret,
		BcryptCost: cfg.Auth.BcryptCost,
	}, log)

	created, err := accounts.EnsureAdmin(ctx, opts.adminUsername, opts.adminEmail, opts.adminPassword)
	if err != nil {
		return err
	}
	if !created {
		log.Info().Msg("admin account already exists")
	}

	if opts.shipping {
		shipping := service.NewShippingService(mongo.NewShippingRepository(db), log)
		rates := domain.DefaultShippingRates()
		if _, err := shipping.SetRates(ctx, rates.Discreet, rates.Express); err != nil {
			return err
		}
	}

	if opts.catalog {
		products := mongo.NewProductRepository(db)
		return seedCatalog(ctx, products, service.NewCatalogService(products, log), log)
	}
	return nil
}

type productCounter interface {
	Count(ctx context.Context) (int64, error)
}

type productCreator interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
}

func seedCatalog(ctx context.Context, counter productCounter, catalog productCreator, log zerolog.Logger) error {
	n, err := counter.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info().Int64("products", n).Msg("skipping sample catalog")
		return nil
	}

	for _, p := range sampleCatalog() {
		if _, err := catalog.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func sampleCatalog() []domain.Product {
	return []domain.Product{
		{
			Name:        "Residential Lease Template",
			Description: "Editable twelve-month residential lease agreement.",
			Price:       decimal.RequireFromString("24.99"),
			Category:    "legal-templates",
			Variants:    []string{"PDF", "DOCX"},
			Available:   true,
		},
		{
			Name:        "Small Business Starter Pack",
			Description: "Invoice, quote and receipt templates with matching letterhead.",
			Price:       decimal.RequireFromString("39.00"),
			Category:    "business-forms",
			Variants:    []string{"A4", "Letter"},
			Available:   true,
		},
		{
			Name:        "Archival Certificate Paper",
			Description: "Pack of 50 acid-free sheets with a foil border.",
			Price:       decimal.RequireFromString("18.50"),
			Category:    "stationery",
			Variants:    []string{},
			Available:   true,
		},
	}
}
