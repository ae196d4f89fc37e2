package narration

import (
	"context"

	"go.uber.org/zap"
)

// CachedNarrator serves repeated requests from a Cache and delegates the
// rest. Fresh requests skip the lookup but still refresh the entry. Cache
// failures are logged and never fail a turn.
type CachedNarrator struct {
	next   Narrator
	cache  Cache
	logger *zap.Logger
}

// NewCachedNarrator decorates next with cache. A nil logger discards logs.
func NewCachedNarrator(next Narrator, cache Cache, logger *zap.Logger) *CachedNarrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedNarrator{next: next, cache: cache, logger: logger}
}

// Narrate implements Narrator.
func (n *CachedNarrator) Narrate(ctx context.Context, req Request) (Response, error) {
	key := req.Key()
	if !req.Fresh {
		text, ok, err := n.cache.Get(ctx, key)
		if err != nil {
			n.logger.Warn("narration cache read failed", zap.Error(err))
		}
		if ok {
			n.logger.Debug("narration cache hit", zap.String("key", key))
			return Response{Text: text, Cached: true}, nil
		}
	}

	resp, err := n.next.Narrate(ctx, req)
	if err != nil {
		return Response{}, err
	}
	if err := n.cache.Set(ctx, key, resp.Text); err != nil {
		n.logger.Warn("narration cache write failed", zap.Error(err))
	}
	return resp, nil
}
