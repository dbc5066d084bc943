package item

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// SearchCache caches item search results by query text.
// Get returns (nil, nil) on a cache miss.
type SearchCache interface {
	Get(ctx context.Context, text string) ([]*Item, error)
	Set(ctx context.Context, text string, items []*Item) error
}

type redisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSearchCache creates a SearchCache backed by Redis. Entries expire
// after ttl; staleness within that window is acceptable for search results.
func NewRedisSearchCache(client *redis.Client, ttl time.Duration) SearchCache {
	return &redisSearchCache{client: client, ttl: ttl}
}

func (c *redisSearchCache) Get(ctx context.Context, text string) ([]*Item, error) {
	data, err := c.client.Get(ctx, searchKey(text)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var items []*Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *redisSearchCache) Set(ctx context.Context, text string, items []*Item) error {
	if items == nil {
		items = []*Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(text), payload, c.ttl).Err()
}

func searchKey(text string) string {
	return "item:search:" + strings.ToLower(strings.TrimSpace(text))
}
