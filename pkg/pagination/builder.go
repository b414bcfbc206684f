package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// IndexStore persists one index document per query dimension. Load
// returns (nil, nil) when no index exists yet, and an error wrapping
// ErrIndexCorrupt when the stored document fails shape validation.
type IndexStore interface {
	Load(ctx context.Context, dimension string) (*Index, error)
	Save(ctx context.Context, dimension string, idx *Index) error
}

// DocumentSource queries the underlying puzzle store for documents in a
// dimension published after the given timestamp. Implementations skip
// individually unreadable documents rather than failing the query.
type DocumentSource interface {
	NewerThan(ctx context.Context, dimension string, since time.Time) ([]DocMeta, error)
}

// Builder serves paginated puzzle listings from a persisted index,
// refreshing it from the document store on every request.
//
// The load-query-save sequence for a dimension is a single logical
// critical section. Concurrent refreshes of the same dimension may race
// on the write; last write wins, and the index re-discovers anything a
// lost update missed on the next load.
type Builder struct {
	store  IndexStore
	source DocumentSource
	now    func() time.Time
	log    *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock injects the time source used for privacy-window decisions.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithLogger sets the builder's logger.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// NewBuilder creates a Builder over the given store and source.
func NewBuilder(store IndexStore, source DocumentSource, opts ...Option) *Builder {
	b := &Builder{
		store:  store,
		source: source,
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Page returns the ids on the requested page of a dimension's listing,
// newest first by effective publish time, plus the total count after
// privacy filtering. Re-running with no new documents returns identical
// results.
func (b *Builder) Page(ctx context.Context, dimension string, page, pageSize int) ([]string, int, error) {
	if page < 0 || pageSize < 1 {
		return nil, 0, fmt.Errorf("invalid page %d / page size %d", page, pageSize)
	}

	idx, err := b.store.Load(ctx, dimension)
	switch {
	case errors.Is(err, ErrIndexCorrupt):
		b.log.Warn("index corrupt, rebuilding from scratch",
			zap.String("dimension", dimension), zap.Error(err))
		idx = nil
	case err != nil:
		return nil, 0, fmt.Errorf("load index %q: %w", dimension, err)
	}
	if idx == nil {
		idx = &Index{}
	}

	docs, err := b.source.NewerThan(ctx, dimension, idx.Newest())
	if err != nil {
		return nil, 0, fmt.Errorf("query new documents for %q: %w", dimension, err)
	}

	if len(docs) > 0 {
		idx.Prepend(docs)
		if err := b.store.Save(ctx, dimension, idx); err != nil {
			// The refreshed page can still be served; the next request
			// redoes the discovery.
			b.log.Warn("failed to persist refreshed index",
				zap.String("dimension", dimension), zap.Error(err))
		} else {
			b.log.Info("index refreshed",
				zap.String("dimension", dimension), zap.Int("new_documents", len(docs)))
		}
	}

	ids, total := pageOf(idx.visible(b.now()), page, pageSize)
	return ids, total, nil
}
