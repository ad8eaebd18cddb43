package embedding

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestCachedProvider_GenerateHitsCacheOnSecondCall(t *testing.T) {
	rdb, _ := setupTestRedis(t)
	inner := &stubProvider{vectors: map[string][]float32{"fractions": {0.25, 0.5, -1}}}
	p := NewCachedProvider(inner, rdb, "ollama:nomic", time.Hour)
	ctx := context.Background()

	first, err := p.Generate(ctx, "fractions", TaskRetrievalQuery)
	require.NoError(t, err)
	second, err := p.Generate(ctx, "fractions", TaskRetrievalQuery)
	require.NoError(t, err)

	assert.Equal(t, []float32{0.25, 0.5, -1}, first.Embedding.Values)
	assert.Equal(t, first.Embedding.Values, second.Embedding.Values)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedProvider_TaskTypeIsPartOfKey(t *testing.T) {
	rdb, _ := setupTestRedis(t)
	inner := &stubProvider{vectors: map[string][]float32{"x": {1}}}
	p := NewCachedProvider(inner, rdb, "ns", time.Hour)
	ctx := context.Background()

	_, err := p.Generate(ctx, "x", TaskRetrievalQuery)
	require.NoError(t, err)
	_, err = p.Generate(ctx, "x", TaskRetrievalDocument)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_ErrorsAreNotCached(t *testing.T) {
	rdb, mr := setupTestRedis(t)
	inner := &stubProvider{failText: "bad"}
	p := NewCachedProvider(inner, rdb, "ns", time.Hour)

	_, err := p.Generate(context.Background(), "bad", TaskRetrievalQuery)

	assert.Error(t, err)
	assert.Empty(t, mr.Keys())
}

func TestCachedProvider_EntriesExpire(t *testing.T) {
	rdb, mr := setupTestRedis(t)
	inner := &stubProvider{vectors: map[string][]float32{"x": {1}}}
	p := NewCachedProvider(inner, rdb, "ns", time.Minute)
	ctx := context.Background()

	_, err := p.Generate(ctx, "x", TaskRetrievalQuery)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = p.Generate(ctx, "x", TaskRetrievalQuery)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_GenerateBatchOnlyFetchesMisses(t *testing.T) {
	rdb, _ := setupTestRedis(t)
	inner := &stubBatchProvider{stubProvider: stubProvider{vectors: map[string][]float32{
		"a": {1, 0},
		"b": {0, 1},
		"c": {1, 1},
	}}}
	p := NewCachedProvider(inner, rdb, "ns", time.Hour)
	ctx := context.Background()

	_, err := p.Generate(ctx, "b", TaskRetrievalDocument)
	require.NoError(t, err)

	got, err := p.GenerateBatch(ctx, []string{"a", "b", "c"}, TaskRetrievalDocument)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, []float32{1, 0}, got[0].Embedding.Values)
	assert.Equal(t, []float32{0, 1}, got[1].Embedding.Values)
	assert.Equal(t, []float32{1, 1}, got[2].Embedding.Values)
	assert.Equal(t, 1, inner.batchCalls)

	again, err := p.GenerateBatch(ctx, []string{"c", "a"}, TaskRetrievalDocument)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1}, again[0].Embedding.Values)
	assert.Equal(t, 1, inner.batchCalls)
}

func TestCachedProvider_RedisDownFallsThrough(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	inner := &stubProvider{vectors: map[string][]float32{"x": {1, 2}}}
	p := NewCachedProvider(inner, rdb, "ns", time.Hour)

	res, err := p.Generate(context.Background(), "x", TaskRetrievalQuery)

	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, res.Embedding.Values)
}

func TestVectorCodecRoundTrip(t *testing.T) {
	values := []float32{0, -1.5, 3.25, 1e-7}

	decoded, ok := decodeVector(encodeVector(values))

	require.True(t, ok)
	assert.Equal(t, values, decoded)
	_, ok = decodeVector([]byte{1, 2, 3})
	assert.False(t, ok)
}
