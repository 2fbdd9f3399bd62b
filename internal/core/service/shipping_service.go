package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
)

type ShippingService struct {
	repo   ports.ShippingRepository
	logger zerolog.Logger
}

func NewShippingService(repo ports.ShippingRepository, logger zerolog.Logger) *ShippingService {
	return &ShippingService{repo: repo, logger: logger}
}

// Rates returns the stored rates, or the defaults when none were ever set.
func (s *ShippingService) Rates(ctx context.Context) (domain.ShippingRates, error) {
	rates, err := s.repo.Get(ctx)
	if errors.Is(err, domain.ErrRatesNotSet) {
		return domain.DefaultShippingRates(), nil
	}
	if err != nil {
		return domain.ShippingRates{}, fmt.Errorf("get shipping rates: %w", err)
	}
	return *rates, nil
}

func (s *ShippingService) SetRates(ctx context.Context, discreet, express decimal.Decimal) (domain.ShippingRates, error) {
	rates := domain.ShippingRates{
		Discreet:  discreet,
		Express:   express,
		UpdatedAt: time.Now().UTC(),
	}
	if err := rates.Validate(); err != nil {
		return domain.ShippingRates{}, err
	}
	if err := s.repo.Set(ctx, rates); err != nil {
		return domain.ShippingRates{}, fmt.Errorf("set shipping rates: %w", err)
	}

	s.logger.Info().
		Str("discreet", discreet.StringFixed(2)).
		Str("express", express.StringFixed(2)).
		Msg("shipping rates updated")
	return rates, nil
}
