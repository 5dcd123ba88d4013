package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/viniciustorricelli/pensell/internal/domain"
)

// AdCache keeps the boosted carousel per community in Redis so the home
// screen does not hit MongoDB on every load.
type AdCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAdCache(addr string, ttl time.Duration) (*AdCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr, // e.g., "localhost:6379"
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &AdCache{client: client, ttl: ttl}, nil
}

func boostedKey(communityID string) string {
	return fmt.Sprintf("boosted:%s", communityID)
}

// GetBoosted returns the cached carousel for a community, or nil on a miss.
func (c *AdCache) GetBoosted(ctx context.Context, communityID string) ([]*domain.Ad, error) {
	data, err := c.client.Get(ctx, boostedKey(communityID)).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}
	var ads []*domain.Ad
	if err := json.Unmarshal(data, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

// SetBoosted stores the carousel for a community.
func (c *AdCache) SetBoosted(ctx context.Context, communityID string, ads []*domain.Ad) error {
	data, err := json.Marshal(ads)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, boostedKey(communityID), data, c.ttl).Err()
}

// InvalidateBoosted drops the carousel for a community. Called after a boost
// activation so the new ad shows up without waiting for the TTL.
func (c *AdCache) InvalidateBoosted(ctx context.Context, communityID string) error {
	return c.client.Del(ctx, boostedKey(communityID)).Err()
}

// Close releases the Redis connection.
func (c *AdCache) Close() error {
	return c.client.Close()
}
