package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/docushop/storefront/internal/core/domain"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	defaultPendingTTL     = time.Minute
	valueSeparator        = "|"
)

// IdempotencyStore maps Idempotency-Key headers to placed order ids.
// Key format: idempotency:order:<key>
// Value format: <fingerprint>|<order id>, with an empty order id while the
// claiming request is still placing.
type IdempotencyStore struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewIdempotencyStore wraps client. Completed keys expire after ttl (24h when
// not positive). Claims that are never settled expire after pendingTTL (1m
// when not positive) so a crashed request does not block retries for long.
func NewIdempotencyStore(client *redis.Client, ttl, pendingTTL time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	if pendingTTL <= 0 {
		pendingTTL = defaultPendingTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl, pendingTTL: pendingTTL}
}

// Claim reserves key with SET NX. When the key is already taken it reports
// the recorded order id, or "" while the first request is still placing.
func (s *IdempotencyStore) Claim(ctx context.Context, key, fingerprint string) (string, bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(key), encodeValue(fingerprint, ""), s.pendingTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency claim: %w", err)
	}
	if ok {
		return "", true, nil
	}

	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		// Expired or released between SETNX and GET; treat as in flight.
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}

	storedFingerprint, orderID := decodeValue(val)
	if storedFingerprint != fingerprint {
		return "", false, domain.ErrIdempotencyKeyReused
	}
	return orderID, false, nil
}

// Complete stores the order id under a key this process claimed.
func (s *IdempotencyStore) Complete(ctx context.Context, key, fingerprint, orderID string) error {
	if err := s.client.Set(ctx, s.key(key), encodeValue(fingerprint, orderID), s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release deletes the claim so the client may retry.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(k string) string {
	return "idempotency:order:" + k
}

func encodeValue(fingerprint, orderID string) string {
	return fingerprint + valueSeparator + orderID
}

func decodeValue(v string) (fingerprint, orderID string) {
	fingerprint, orderID, _ = strings.Cut(v, valueSeparator)
	return fingerprint, orderID
}
