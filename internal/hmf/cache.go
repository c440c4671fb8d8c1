package hmf

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
)

// CachingProvider wraps a Provider with an LRU cache keyed by the full query.
// Tables are immutable, so cache hits hand out the shared pointer.
type CachingProvider struct {
	inner Provider
	cache *lru.Cache
}

// NewCachingProvider wraps inner with a cache of the given size.
func NewCachingProvider(inner Provider, cacheSize uint32) *CachingProvider {
	cache, err := lru.New(int(cacheSize))
	if err != nil {
		panic(err)
	}
	return &CachingProvider{inner: inner, cache: cache}
}

func (p *CachingProvider) NGreaterTable(ctx context.Context, query Query) (*Table, error) {
	key := query.cacheKey()
	if cached, ok := p.cache.Get(key); ok {
		return cached.(*Table), nil
	}
	table, err := p.inner.NGreaterTable(ctx, query)
	if err != nil {
		return nil, err
	}
	p.cache.Add(key, table)
	return table, nil
}
