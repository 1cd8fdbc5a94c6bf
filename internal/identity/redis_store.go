package identity

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	accountKeyPrefix = "account_sessions:"
)

// RedisSessionStore keeps live session ids in Redis. Sessions expire with the
// token TTL; the per-account set lets an administrative block revoke all of an
// account's sessions in one call.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore wraps an existing client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, sessionID, accountID string, ttl time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+sessionID, accountID, ttl)
	pipe.SAdd(ctx, accountKeyPrefix+accountID, sessionID)
	pipe.Expire(ctx, accountKeyPrefix+accountID, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	accountID, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+sessionID)
	if accountID != "" {
		pipe.SRem(ctx, accountKeyPrefix+accountID, sessionID)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisSessionStore) DeleteAccount(ctx context.Context, accountID string) error {
	ids, err := s.client.SMembers(ctx, accountKeyPrefix+accountID).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, sessionKeyPrefix+id)
	}
	pipe.Del(ctx, accountKeyPrefix+accountID)
	_, err = pipe.Exec(ctx)
	return err
}
