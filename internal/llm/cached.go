package llm

import (
	"context"
	"encoding/json"
	"time"

	"appealgen/internal/cache"
)

// CachedProvider wraps a Provider with a completion cache. Identical
// (provider, model, system, prompt) requests are served from cache, so
// re-running a claim after editing the form does not re-bill the stages
// whose prompts did not change.
type CachedProvider struct {
	inner Provider
	store cache.Cache
	ttl   time.Duration
	model string
}

// NewCachedProvider wraps a provider with the given cache store. model is
// the configured default model; requests that do not name a model are keyed
// under it, so switching the configured model never serves another model's
// cached completions.
func NewCachedProvider(inner Provider, store cache.Cache, ttl time.Duration, model string) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		store: store,
		ttl:   ttl,
		model: model,
	}
}

// Name returns the wrapped provider's name
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable delegates to the wrapped provider
func (p *CachedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Complete serves from cache when possible, otherwise calls through and
// stores the response. Cache failures are ignored; the completion wins.
func (p *CachedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	keyModel := req.Model
	if keyModel == "" {
		keyModel = p.model
	}
	key := cache.CompletionKey(p.inner.Name(), keyModel, req.System, req.Prompt)

	if data, found := p.store.Get(key); found {
		var resp CompletionResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			return &resp, nil
		}
		// Corrupt entry: drop it and fall through to the provider
		_ = p.store.Delete(key)
	}

	resp, err := p.inner.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		_ = p.store.Set(key, data, p.ttl)
	}

	return resp, nil
}
