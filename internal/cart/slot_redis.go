package cart

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "storefront:cart:"

// RedisSlot stores the cart under a per-client key, so a client recovers
// its cart from any host that can reach the same redis.
type RedisSlot struct {
	client   *redis.Client
	clientID string
}

func NewRedisSlot(client *redis.Client, clientID string) *RedisSlot {
	if clientID == "" {
		clientID = "default"
	}
	return &RedisSlot{client: client, clientID: clientID}
}

func (s *RedisSlot) key() string { return redisKeyPrefix + s.clientID }

func (s *RedisSlot) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisSlot) Save(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key(), data, 0).Err()
}
