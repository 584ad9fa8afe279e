package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*InsightCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewRedisClientFromAddr(mr.Addr())
	t.Cleanup(func() { client.Close() })
	return NewInsightCache(client, 30*time.Minute, time.Minute), mr
}

type fakeResult struct {
	Primary    string  `json:"primary"`
	Confidence float64 `json:"confidence"`
}

func TestAnalysisCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	stored := fakeResult{Primary: "Leader", Confidence: 0.82}
	hash := GenerateDataHash(map[string]int{"goals": 3})

	var missed fakeResult
	assert.False(t, cache.GetAnalysis(ctx, "u1", hash, &missed))

	require.NoError(t, cache.SetAnalysis(ctx, "u1", hash, stored))

	var loaded fakeResult
	require.True(t, cache.GetAnalysis(ctx, "u1", hash, &loaded))
	assert.Equal(t, stored, loaded)

	// A different behavior hash is a different cache entry
	var other fakeResult
	assert.False(t, cache.GetAnalysis(ctx, "u1", GenerateDataHash(map[string]int{"goals": 4}), &other))
}

func TestAnalysisCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	hash := GenerateDataHash("snapshot")
	require.NoError(t, cache.SetAnalysis(ctx, "u1", hash, fakeResult{Primary: "Anchor"}))

	mr.FastForward(31 * time.Minute)

	var loaded fakeResult
	assert.False(t, cache.GetAnalysis(ctx, "u1", hash, &loaded))
}

func TestCooldownWindow(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	assert.False(t, cache.IsInCooldown(ctx, "u1"))

	require.NoError(t, cache.SetCooldown(ctx, "u1"))
	assert.True(t, cache.IsInCooldown(ctx, "u1"))
	assert.False(t, cache.IsInCooldown(ctx, "u2"), "cooldown is per-user")

	mr.FastForward(2 * time.Minute)
	assert.False(t, cache.IsInCooldown(ctx, "u1"))
}

func TestGenerateDataHashStability(t *testing.T) {
	a := GenerateDataHash(map[string]int{"assessments": 2})
	b := GenerateDataHash(map[string]int{"assessments": 2})
	c := GenerateDataHash(map[string]int{"assessments": 3})

	assert.Equal(t, a, b, "identical data hashes identically")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestNilCacheIsDisabled(t *testing.T) {
	var cache *InsightCache
	ctx := context.Background()

	var dest fakeResult
	assert.False(t, cache.GetAnalysis(ctx, "u1", "hash", &dest))
	assert.False(t, cache.IsInCooldown(ctx, "u1"))
	assert.Error(t, cache.SetAnalysis(ctx, "u1", "hash", dest))
	assert.Error(t, cache.SetCooldown(ctx, "u1"))
}
