package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedProvider memoizes embeddings in Redis, keyed by namespace, task type and a
// hash of the text. Redis failures fall through to the wrapped provider.
type CachedProvider struct {
	inner     EmbeddingProvider
	rdb       redis.Cmdable
	namespace string
	ttl       time.Duration
}

var (
	_ EmbeddingProvider = (*CachedProvider)(nil)
	_ BatchProvider     = (*CachedProvider)(nil)
)

// NewCachedProvider wraps inner. namespace should identify the backend and model so
// vectors from different providers never share keys.
func NewCachedProvider(inner EmbeddingProvider, rdb redis.Cmdable, namespace string, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner:     inner,
		rdb:       rdb,
		namespace: namespace,
		ttl:       ttl,
	}
}

func (c *CachedProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	key := c.key(text, taskType)
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		if values, ok := decodeVector(raw); ok {
			return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: values}}, nil
		}
	}

	res, err := c.inner.Generate(ctx, text, taskType)
	if err != nil {
		return nil, err
	}
	c.rdb.Set(ctx, key, encodeVector(res.Embedding.Values), c.ttl)
	return res, nil
}

func (c *CachedProvider) GenerateBatch(ctx context.Context, texts []string, taskType string) ([]*EmbeddingResponse, error) {
	out := make([]*EmbeddingResponse, len(texts))
	keys := make([]string, len(texts))
	for i, text := range texts {
		keys[i] = c.key(text, taskType)
	}

	cached, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		cached = nil
	}

	var missing []int
	for i := range texts {
		if i < len(cached) {
			if s, ok := cached[i].(string); ok {
				if values, ok := decodeVector([]byte(s)); ok {
					out[i] = &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: values}}
					continue
				}
			}
		}
		missing = append(missing, i)
	}

	if len(missing) == 0 {
		return out, nil
	}

	fresh, err := c.generateMissing(ctx, texts, missing, taskType)
	if err != nil {
		return nil, err
	}

	pipe := c.rdb.Pipeline()
	for j, idx := range missing {
		out[idx] = fresh[j]
		pipe.Set(ctx, keys[idx], encodeVector(fresh[j].Embedding.Values), c.ttl)
	}
	_, _ = pipe.Exec(ctx)

	return out, nil
}

func (c *CachedProvider) generateMissing(ctx context.Context, texts []string, missing []int, taskType string) ([]*EmbeddingResponse, error) {
	subset := make([]string, len(missing))
	for j, idx := range missing {
		subset[j] = texts[idx]
	}

	if bp, ok := c.inner.(BatchProvider); ok {
		res, err := bp.GenerateBatch(ctx, subset, taskType)
		if err != nil {
			return nil, err
		}
		if len(res) != len(subset) {
			return nil, fmt.Errorf("provider returned %d embeddings for %d inputs", len(res), len(subset))
		}
		return res, nil
	}

	res := make([]*EmbeddingResponse, len(subset))
	for j, text := range subset {
		r, err := c.inner.Generate(ctx, text, taskType)
		if err != nil {
			return nil, err
		}
		res[j] = r
	}
	return res, nil
}

func (c *CachedProvider) key(text, taskType string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("embedding:%s:%s:%s", c.namespace, taskType, hex.EncodeToString(sum[:]))
}

func encodeVector(values []float32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(raw []byte) ([]float32, bool) {
	if len(raw) == 0 || len(raw)%4 != 0 {
		return nil, false
	}
	values := make([]float32, len(raw)/4)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return values, true
}
