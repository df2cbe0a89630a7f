package royalty

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores author directory payloads in Redis so repeated searches for
// the same book do not hit the upstream directory. A nil client disables
// caching entirely.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func authorKey(author, isbn string) string {
	return fmt.Sprintf("royalty:author:%s:%s", strings.ToLower(strings.TrimSpace(author)), strings.TrimSpace(isbn))
}

// GetAuthorDetails reports whether a cached payload existed for the book.
func (c *Cache) GetAuthorDetails(ctx context.Context, author, isbn string) (AuthorDetails, bool, error) {
	var details AuthorDetails
	if c == nil || c.client == nil {
		return details, false, nil
	}
	data, err := c.client.Get(ctx, authorKey(author, isbn)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return details, false, nil
		}
		return details, false, err
	}
	if err := json.Unmarshal(data, &details); err != nil {
		return details, false, err
	}
	return details, true, nil
}

// SetAuthorDetails stores a payload with the configured TTL.
func (c *Cache) SetAuthorDetails(ctx context.Context, author, isbn string, details AuthorDetails) error {
	if c == nil || c.client == nil || c.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(details)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, authorKey(author, isbn), data, c.ttl).Err()
}
