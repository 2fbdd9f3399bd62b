package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	// settleTimeout bounds the idempotency bookkeeping after placement.
	settleTimeout = 5 * time.Second
)

// OrderService places orders and drives their lifecycle.
type OrderService struct {
	repo        ports.OrderRepository
	pricing     ports.PricingEngine
	settings    ports.SettingsService
	idempotency ports.IdempotencyStore
	logger      zerolog.Logger
}

// NewOrderService wires the order use cases. idempotency may be nil, in
// which case Idempotency-Key headers are ignored.
func NewOrderService(
	repo ports.OrderRepository,
	pricing ports.PricingEngine,
	settings ports.SettingsService,
	idempotency ports.IdempotencyStore,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		repo:        repo,
		pricing:     pricing,
		settings:    settings,
		idempotency: idempotency,
		logger:      logger,
	}
}

// Place prices the requested lines and records a pending order. When an
// idempotency key was already used, the earlier order is returned instead.
func (s *OrderService) Place(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	if err := s.checkMaintenance(ctx); err != nil {
		return nil, err
	}
	if err := in.Billing.Validate(); err != nil {
		return nil, err
	}

	claimed := false
	var fingerprint string
	if in.IdempotencyKey != "" && s.idempotency != nil {
		fingerprint = requestFingerprint(in)
		orderID, ok, err := s.idempotency.Claim(ctx, in.IdempotencyKey, fingerprint)
		switch {
		case errors.Is(err, domain.ErrIdempotencyKeyReused):
			return nil, err
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency claim failed, placing anyway")
		case !ok && orderID == "":
			return nil, domain.ErrRequestInProgress
		case !ok:
			return s.replay(ctx, in.IdempotencyKey, orderID)
		default:
			claimed = true
		}
	}

	result, err := s.place(ctx, in)
	if claimed {
		s.settleClaim(ctx, in.IdempotencyKey, fingerprint, result, err)
	}
	return result, err
}

func (s *OrderService) place(ctx context.Context, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	quote, err := s.pricing.ComputeTotal(ctx, in.Lines, in.ShippingTier)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:           uuid.NewString(),
		AccountID:    in.AccountID,
		Lines:        quote.Lines,
		Billing:      in.Billing,
		ShippingTier: quote.ShippingTier,
		Subtotal:     quote.Subtotal,
		Shipping:     quote.Shipping,
		Total:        quote.Total,
		Status:       domain.OrderPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("account_id", order.AccountID).
		Str("tier", string(order.ShippingTier)).
		Str("total", order.Total.StringFixed(2)).
		Msg("order placed")

	return &ports.PlaceOrderResult{OrderID: order.ID, Total: order.Total}, nil
}

func (s *OrderService) replay(ctx context.Context, key, orderID string) (*ports.PlaceOrderResult, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("idempotent replay: %w", err)
	}
	s.logger.Info().Str("idempotency_key", key).Str("order_id", orderID).Msg("idempotent replay")
	return &ports.PlaceOrderResult{OrderID: order.ID, Total: order.Total, Replayed: true}, nil
}

// settleClaim records the placed order under key, or frees key so the
// client can retry after a failure. It runs even when the caller has gone
// away, otherwise the claim would block retries until it expires.
func (s *OrderService) settleClaim(ctx context.Context, key, fingerprint string, result *ports.PlaceOrderResult, placeErr error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
	defer cancel()

	if placeErr != nil {
		if err := s.idempotency.Release(ctx, key); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
		}
		return
	}
	if err := s.idempotency.Complete(ctx, key, fingerprint, result.OrderID); err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to record idempotency key")
	}
}

// requestFingerprint hashes everything that defines the order so a reused
// key with a different body can be told apart from a retry.
func requestFingerprint(in ports.PlaceOrderInput) string {
	payload, _ := json.Marshal(struct {
		Lines        []domain.LineItem
		Billing      domain.Billing
		ShippingTier string
		AccountID    string
	}{in.Lines, in.Billing, in.ShippingTier, in.AccountID})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func (s *OrderService) checkMaintenance(ctx context.Context) error {
	if s.settings == nil {
		return nil
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}
	if settings.MaintenanceMode {
		return domain.ErrMaintenance
	}
	return nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// Cancel moves a pending order to cancelled.
func (s *OrderService) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	return s.transition(ctx, id, domain.OrderCancelled)
}

// Complete moves a pending order to completed.
func (s *OrderService) Complete(ctx context.Context, id string) (*domain.Order, error) {
	return s.transition(ctx, id, domain.OrderCompleted)
}

func (s *OrderService) transition(ctx context.Context, id string, to domain.OrderStatus) (*domain.Order, error) {
	from := domain.OrderPending
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, from, to)
	}

	order, err := s.repo.TransitionStatus(ctx, id, from, to, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, fmt.Errorf("order %s: %w (to %s)", id, err, to)
		}
		return nil, fmt.Errorf("transition order: %w", err)
	}

	s.logger.Info().Str("order_id", id).Str("status", string(to)).Msg("order status changed")
	return order, nil
}

// List returns a page of orders, newest first.
func (s *OrderService) List(ctx context.Context, in ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	var status domain.OrderStatus
	if in.Status != "" {
		parsed, err := domain.ParseOrderStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	page, limit := normalizePage(in.Page, in.Limit)
	orders, total, err := s.repo.List(ctx, ports.ListOrdersFilter{Status: status, Page: page, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return &ports.ListOrdersResult{
		Items:      orders,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
