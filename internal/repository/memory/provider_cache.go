package memory

import (
	"time"

	"lessoncraft-be/pkg/llm"

	"github.com/patrickmn/go-cache"
)

// ProviderCache keeps per-user LLM providers so repeated chat calls reuse the
// same HTTP client. Entries are keyed by user id plus a key fingerprint, so a
// changed API key misses naturally.
type ProviderCache struct {
	cache *cache.Cache
}

func NewProviderCache(ttl time.Duration) *ProviderCache {
	return &ProviderCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *ProviderCache) Save(key string, provider llm.LLMProvider) {
	r.cache.Set(key, provider, cache.DefaultExpiration)
}

func (r *ProviderCache) Get(key string) (llm.LLMProvider, bool) {
	x, found := r.cache.Get(key)
	if !found {
		return nil, false
	}
	provider, ok := x.(llm.LLMProvider)
	return provider, ok
}

func (r *ProviderCache) Delete(key string) {
	r.cache.Delete(key)
}
