package royalty

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestCacheRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	cache := NewCache(client, time.Minute)
	ctx := context.Background()

	if _, found, err := cache.GetAuthorDetails(ctx, "Dr. Sarah Mitchell", "9780134685991"); err != nil || found {
		t.Fatalf("empty cache: found=%v err=%v", found, err)
	}

	details := AuthorDetails{Title: "Advanced Data Structures", ISBN: 9780134685991, Author: "Dr. Sarah Mitchell", RoyaltyUS: 12.5}
	if err := cache.SetAuthorDetails(ctx, "Dr. Sarah Mitchell", "9780134685991", details); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, found, err := cache.GetAuthorDetails(ctx, "dr. sarah mitchell", "9780134685991")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("cached payload not found, author key should be case-insensitive")
	}
	if got.RoyaltyUS != 12.5 || got.ISBN != 9780134685991 {
		t.Fatalf("cached payload mismatch: %+v", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	cache := NewCache(client, time.Second)
	ctx := context.Background()

	if err := cache.SetAuthorDetails(ctx, "a", "1", AuthorDetails{Title: "T"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Second)

	if _, found, err := cache.GetAuthorDetails(ctx, "a", "1"); err != nil || found {
		t.Fatalf("expired entry still served: found=%v err=%v", found, err)
	}
}

func TestCacheNilClientIsDisabled(t *testing.T) {
	var cache *Cache
	ctx := context.Background()
	if _, found, err := cache.GetAuthorDetails(ctx, "a", "1"); err != nil || found {
		t.Fatalf("nil cache: found=%v err=%v", found, err)
	}
	if err := cache.SetAuthorDetails(ctx, "a", "1", AuthorDetails{}); err != nil {
		t.Fatalf("nil cache set: %v", err)
	}
}
