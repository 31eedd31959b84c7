package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "revoked_token:"

// TokenRevocationRepository records access tokens invalidated before their expiry.
type TokenRevocationRepository interface {
	// Revoke marks tokenID revoked for ttl. Non-positive ttl is a no-op.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type tokenRevocationRepository struct {
	client *redis.Client
}

// NewTokenRevocationRepository constructs a Redis-backed repository.
func NewTokenRevocationRepository(client *redis.Client) TokenRevocationRepository {
	return &tokenRevocationRepository{client: client}
}

func (r *tokenRevocationRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id required")
	}
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedTokenKeyPrefix+tokenID, 1, ttl).Err()
}

func (r *tokenRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
