package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// SessionStore tracks which issued token IDs are still live. A token
// absent from the store is treated as revoked regardless of its JWT
// expiry, which lets logout take effect immediately.
type SessionStore interface {
	SaveAccessToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error
	AccessTokenExists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error)
	RevokeAccessToken(ctx context.Context, userID uuid.UUID, tokenID string) error
	RevokeRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

const (
	accessTokenKeyPrefix  = "access_token:"
	refreshTokenKeyPrefix = "refresh_token:"
)

type redisSessionStore struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisSessionStore(client *redis.Client, log *logrus.Logger) SessionStore {
	return &redisSessionStore{
		client: client,
		log:    log,
	}
}

func accessTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", accessTokenKeyPrefix, userID.String(), tokenID)
}

func refreshTokenKey(userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s%s:%s", refreshTokenKeyPrefix, userID.String(), tokenID)
}

func (s *redisSessionStore) SaveAccessToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, accessTokenKey(userID, tokenID), "valid", ttl).Err()
}

func (s *redisSessionStore) SaveRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshTokenKey(userID, tokenID), "valid", ttl).Err()
}

func (s *redisSessionStore) AccessTokenExists(ctx context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	exists, err := s.client.Exists(ctx, accessTokenKey(userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *redisSessionStore) RevokeAccessToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	return s.client.Del(ctx, accessTokenKey(userID, tokenID)).Err()
}

func (s *redisSessionStore) RevokeRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	return s.client.Del(ctx, refreshTokenKey(userID, tokenID)).Err()
}

// RevokeAllForUser drops every live token for a user. Used when the
// credential hash changes so stale sessions cannot outlive a reset.
func (s *redisSessionStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	patterns := []string{
		fmt.Sprintf("%s%s:*", accessTokenKeyPrefix, userID.String()),
		fmt.Sprintf("%s%s:*", refreshTokenKeyPrefix, userID.String()),
	}

	for _, pattern := range patterns {
		keys, err := s.client.Keys(ctx, pattern).Result()
		if err != nil {
			s.log.Warnf("Failed to list session keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				s.log.Warnf("Failed to delete session keys: %+v", err)
				return err
			}
		}
	}

	return nil
}
