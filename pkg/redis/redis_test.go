package redis

import (
	"context"
	"testing"

	"github.com/wonny/sectorpulse/pkg/config"
)

func TestNewClient_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.Enabled() {
		t.Error("Expected client to be disabled")
	}
}

func TestCache_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, _ := New(cfg)
	cache := NewCache(client, "test")

	// When Redis is disabled, cache operations should be no-ops
	var result string
	found, err := cache.Get(context.Background(), "key", &result)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Expected cache miss when Redis disabled")
	}

	if err := cache.Set(context.Background(), "key", "value", TTLShort); err != nil {
		t.Errorf("Set() error = %v", err)
	}
}

func TestCache_GetOrSet_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, _ := New(cfg)
	cache := NewCache(client, "test")

	// The loader still runs on cache miss even with Redis disabled
	var result string
	err := cache.GetOrSet(context.Background(), "key", &result, TTLShort, func() (interface{}, error) {
		return "loaded", nil
	})
	if err != nil {
		t.Fatalf("GetOrSet() error = %v", err)
	}
	if result != "loaded" {
		t.Errorf("result = %q, want %q", result, "loaded")
	}
}

func TestCacheKeys(t *testing.T) {
	tests := []struct {
		name     string
		fn       func() string
		expected string
	}{
		{
			name:     "HistoryKey",
			fn:       func() string { return HistoryKey("Banking", "20250101", "20250331") },
			expected: "history:Banking:20250101:20250331",
		},
		{
			name:     "SectorListKey",
			fn:       func() string { return SectorListKey("industry") },
			expected: "sectors:industry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
