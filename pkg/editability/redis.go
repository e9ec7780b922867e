package editability

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "tailoring:lock"

// RedisLockStore keeps locks as Redis keys "<prefix>:<project>:<tailoring>".
type RedisLockStore struct {
	client redis.UniversalClient
	prefix string
}

var _ LockStore = (*RedisLockStore)(nil)

// NewRedisLockStore creates a store on client. An empty prefix defaults to
// "tailoring:lock".
func NewRedisLockStore(client redis.UniversalClient, prefix string) *RedisLockStore {
	prefix = strings.TrimSuffix(prefix, ":")
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisLockStore{client: client, prefix: prefix}
}

// Key returns the Redis key of a tailoring lock.
func (s *RedisLockStore) Key(project, tailoring string) string {
	return s.prefix + ":" + project + ":" + tailoring
}

// Locked reports whether the lock key exists.
func (s *RedisLockStore) Locked(ctx context.Context, project, tailoring string) (bool, error) {
	n, err := s.client.Exists(ctx, s.Key(project, tailoring)).Result()
	if err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

// Lock sets the lock key without expiry.
func (s *RedisLockStore) Lock(ctx context.Context, project, tailoring string) error {
	if err := validateKey(project, tailoring); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.Key(project, tailoring), "1", 0).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Unlock deletes the lock key.
func (s *RedisLockStore) Unlock(ctx context.Context, project, tailoring string) error {
	if err := validateKey(project, tailoring); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.Key(project, tailoring)).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
