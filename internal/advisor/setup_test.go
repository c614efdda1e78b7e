package advisor

import (
	"context"
	"testing"
	"time"

	"github.com/iwvelando/equity-unlock/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name          string
		advisor       config.AdvisorConfig
		cache         config.CacheConfig
		wantAvailable bool
		wantCache     string
		wantWarning   string
	}{
		{
			name:    "disabled",
			advisor: config.AdvisorConfig{Enabled: false, APIKey: "k"},
		},
		{
			name:    "enabled without key",
			advisor: config.AdvisorConfig{Enabled: true},
		},
		{
			name:          "memory cache",
			advisor:       config.AdvisorConfig{Enabled: true, APIKey: "k"},
			cache:         config.CacheConfig{TTL: time.Minute},
			wantAvailable: true,
			wantCache:     "memory",
		},
		{
			name:          "unreachable redis falls back to memory",
			advisor:       config.AdvisorConfig{Enabled: true, APIKey: "k"},
			cache:         config.CacheConfig{RedisAddr: "127.0.0.1:0", TTL: time.Minute},
			wantAvailable: true,
			wantCache:     "memory",
			wantWarning:   "redis unreachable, caching insights in memory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			adv, closer := FromConfig(context.Background(), zap.New(core), tt.advisor, tt.cache)
			defer func() { _ = closer() }()

			if got := adv.Available(); got != tt.wantAvailable {
				t.Fatalf("Available() = %v, want %v", got, tt.wantAvailable)
			}

			switch tt.wantCache {
			case "":
				if adv.cache != nil {
					t.Fatalf("expected no cache, got %T", adv.cache)
				}
			case "memory":
				if _, ok := adv.cache.(*MemoryCache); !ok {
					t.Fatalf("expected *MemoryCache, got %T", adv.cache)
				}
			}

			if tt.wantWarning != "" && logs.FilterMessage(tt.wantWarning).Len() != 1 {
				t.Fatalf("expected warning %q, got %v", tt.wantWarning, logs.All())
			}
		})
	}
}
