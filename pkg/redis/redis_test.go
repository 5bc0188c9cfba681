package redis

import (
	"context"
	"testing"
	"time"

	"dealscout/pkg/config"
)

func TestDisabledClientIsNoOp(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{Enabled: false},
	}

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer client.Close()

	if client.Enabled() {
		t.Error("Expected client to be disabled")
	}

	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Expected disabled Ping to succeed, got %v", err)
	}
}

func TestCacheMissesWhenDisabled(t *testing.T) {
	client := &Client{enabled: false}
	cache := NewCache(client, "dealscout")
	ctx := context.Background()

	var dest map[string]string
	found, err := cache.Get(ctx, SearchKey("abc123"), &dest)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if found {
		t.Error("Expected cache miss on disabled client")
	}

	if err := cache.Set(ctx, SearchKey("abc123"), map[string]string{"k": "v"}, time.Minute); err != nil {
		t.Errorf("Expected disabled Set to succeed, got %v", err)
	}

	if err := cache.Delete(ctx, SearchKey("abc123")); err != nil {
		t.Errorf("Expected disabled Delete to succeed, got %v", err)
	}
}

func TestCacheKeys(t *testing.T) {
	if got := SearchKey("abc123"); got != "search:abc123" {
		t.Errorf("SearchKey() = %q, want %q", got, "search:abc123")
	}

	if got := ListingKey("id-1"); got != "listing:id-1" {
		t.Errorf("ListingKey() = %q, want %q", got, "listing:id-1")
	}
}
