package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Endpoints: []EndpointConfig{
			{Path: "/predict", Method: "POST", Limit: 60, Window: time.Minute, Burst: 3},
			{Path: "/chat", Method: "POST", Limit: 30, Window: time.Minute, Burst: 2},
		},
	}
}

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("1.2.3.4", "/predict", "POST")
		assert.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 60, info.Limit)
	}
}

func TestLimiter_DeniesBeyondBurst(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/predict", "POST")
		require.True(t, allowed)
	}

	allowed, info := l.Allow("1.2.3.4", "/predict", "POST")
	assert.False(t, allowed)
	assert.False(t, info.Allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/predict", "POST")
		require.True(t, allowed)
	}

	allowed, _ := l.Allow("5.6.7.8", "/predict", "POST")
	assert.True(t, allowed, "a fresh client gets its own bucket")
}

func TestLimiter_EndpointsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/predict", "POST")
		require.True(t, allowed)
	}

	allowed, info := l.Allow("1.2.3.4", "/chat", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 30, info.Limit)
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 500; i++ {
		allowed, info := l.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
		require.Zero(t, info.Limit)
	}
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/predict", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_UnknownPathUsesDefault(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 2
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, info := l.Allow("1.2.3.4", "/something-else", "GET")
	require.True(t, allowed)
	assert.Equal(t, 2, info.Limit)

	_, _ = l.Allow("1.2.3.4", "/something-else", "GET")
	allowed, _ = l.Allow("1.2.3.4", "/something-else", "GET")
	assert.False(t, allowed)
}

func TestTokenBucket_Refills(t *testing.T) {
	tb := newTokenBucket(1, 1000) // 1000 tokens/sec refill

	require.True(t, tb.allow())
	require.False(t, tb.allow())

	time.Sleep(10 * time.Millisecond)
	assert.True(t, tb.allow(), "bucket should refill after waiting")
}

func TestMatchEndpoint_PrefixMatch(t *testing.T) {
	cfg := testConfig()
	cfg.Endpoints = append(cfg.Endpoints, EndpointConfig{
		Path: "/admin/", Method: "GET", Limit: 5, Window: time.Minute,
	})

	ep := matchEndpoint("/admin/metrics", "GET", cfg.Endpoints, cfg)
	assert.Equal(t, 5, ep.Limit)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	require.True(t, cfg.Enabled)
	assert.Equal(t, 300, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.Len(t, cfg.Endpoints, 2)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}
