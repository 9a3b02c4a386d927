package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/cache"
)

const revokedUserKeyPrefix = "revoked_user:"

// RevocationStore records archived users so that tokens issued to them before
// archival stop being accepted.
type RevocationStore interface {
	RevokeUser(ctx context.Context, userID uint64) error
	IsUserRevoked(ctx context.Context, userID uint64) (bool, error)
}

// RedisRevocationStore is a RevocationStore kept in redis.
type RedisRevocationStore struct {
	cache *cache.Client
	ttl   time.Duration
}

// Ensure RedisRevocationStore implements RevocationStore
var _ RevocationStore = (*RedisRevocationStore)(nil)

// NewRedisRevocationStore creates a store whose entries live for ttl. The ttl
// should match the token lifetime; zero keeps entries forever.
func NewRedisRevocationStore(cache *cache.Client, ttl time.Duration) *RedisRevocationStore {
	return &RedisRevocationStore{cache: cache, ttl: ttl}
}

// RevokeUser marks every token of userID as revoked.
func (s *RedisRevocationStore) RevokeUser(ctx context.Context, userID uint64) error {
	if err := s.cache.Set(ctx, revokedUserKey(userID), []byte("1"), s.ttl); err != nil {
		return fmt.Errorf("revoke user %d: %w", userID, err)
	}
	return nil
}

// IsUserRevoked reports whether userID has been revoked.
func (s *RedisRevocationStore) IsUserRevoked(ctx context.Context, userID uint64) (bool, error) {
	data, err := s.cache.Get(ctx, revokedUserKey(userID))
	if err != nil {
		return false, fmt.Errorf("check revocation for user %d: %w", userID, err)
	}
	return data != nil, nil
}

func revokedUserKey(userID uint64) string {
	return revokedUserKeyPrefix + strconv.FormatUint(userID, 10)
}
