package resolver

import (
	"context"
	"log/slog"

	"github.com/rishabhm/dealscope/internal/common"
	"github.com/rishabhm/dealscope/internal/fuzzy"
	"github.com/rishabhm/dealscope/internal/model"
	"github.com/rishabhm/dealscope/internal/pricing"
)

// Resolver resolves one retail price per inventory item by consulting the
// cache, then the UPC database, then the retail API, then the fuzzy
// estimator, short-circuiting on the first success.
type Resolver struct {
	cache   *Cache
	store   Store
	upcdb   pricing.Source
	retail  pricing.Source
	matcher *fuzzy.Matcher
	retry   pricing.RetryOptions
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithUPCLookup enables the exact-match UPC tier.
func WithUPCLookup(src pricing.Source) Option {
	return func(r *Resolver) { r.upcdb = src }
}

// WithRetailLookup enables the retail API tier.
func WithRetailLookup(src pricing.Source) Option {
	return func(r *Resolver) { r.retail = src }
}

// WithMatcher replaces the fuzzy estimator. Passing nil disables estimation
// entirely, in which case unresolvable items yield NOT_FOUND.
func WithMatcher(m *fuzzy.Matcher) Option {
	return func(r *Resolver) { r.matcher = m }
}

// WithStore attaches a persistent store; its entries seed the cache and
// every new resolution is written through.
func WithStore(ctx context.Context, store Store) Option {
	return func(r *Resolver) {
		r.store = store
		seed, err := store.LoadEntries(ctx)
		if err != nil {
			slog.Warn("Failed to load persisted price cache, starting cold", "error", err)
			return
		}
		r.cache = NewCache(seed)
		slog.Info("Loaded persisted price cache", "entries", len(seed))
	}
}

// WithRetryOptions configures provider call retries.
func WithRetryOptions(opts pricing.RetryOptions) Option {
	return func(r *Resolver) { r.retry = opts }
}

// New creates a resolver. With no options it degrades to pure fuzzy
// estimation, which still satisfies the never-fail contract.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		cache:   NewCache(nil),
		matcher: fuzzy.NewMatcher(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns exactly one price per item. It is a total function:
// transport, auth, and malformed-response failures at any tier fall through
// to the next, and the multiplier fallback guarantees a result whenever the
// estimator is enabled.
func (r *Resolver) Resolve(ctx context.Context, item model.InventoryItem) model.ResolvedPrice {
	key := item.CacheKey()

	if e, ok := r.cache.Get(key); ok {
		if e.Miss {
			return model.NotFoundPrice()
		}
		return e.Price
	}

	query := pricing.Query{UPC: item.UPC, Description: item.Description}

	if item.UPC != "" && r.upcdb != nil {
		if quote, ok := r.lookup(ctx, r.upcdb, query); ok {
			return r.remember(ctx, key, model.ResolvedPrice{
				Value:     quote.Price,
				Source:    model.SourceUPCExact,
				SourceURL: quote.SourceURL,
			})
		}
	}

	if r.retail != nil {
		if quote, ok := r.lookup(ctx, r.retail, query); ok {
			return r.remember(ctx, key, model.ResolvedPrice{
				Value:     quote.Price,
				Source:    model.SourceRetailAPI,
				SourceURL: quote.SourceURL,
			})
		}
	}

	if r.matcher == nil {
		r.rememberMiss(ctx, key)
		return model.NotFoundPrice()
	}

	estimate := r.matcher.Estimate(item.Description, item.SupplierPrice)
	slog.Debug("Resolved price by estimation",
		"item", item.ID,
		"source", estimate.Source,
		"price", estimate.Value)
	return r.remember(ctx, key, estimate)
}

// CacheStats exposes cache activity for the run summary.
func (r *Resolver) CacheStats() CacheStats {
	return r.cache.Stats()
}

// lookup performs one provider call with retries, normalizing every failure
// into a fall-through.
func (r *Resolver) lookup(ctx context.Context, src pricing.Source, q pricing.Query) (pricing.Quote, bool) {
	var quote pricing.Quote
	err := common.WithRetry(ctx, func() error {
		var lookupErr error
		quote, lookupErr = src.Lookup(ctx, q)
		return lookupErr
	}, r.retry)

	switch {
	case err == nil:
		slog.Info("Price lookup hit",
			"provider", src.Name(),
			"upc", q.UPC,
			"price", quote.Price)
		return quote, true
	case common.IsMiss(err):
		slog.Debug("Price lookup miss",
			"provider", src.Name(),
			"upc", q.UPC,
			"reason", err)
	default:
		slog.Warn("Price lookup failed, falling through",
			"provider", src.Name(),
			"upc", q.UPC,
			"error", err)
	}
	return pricing.Quote{}, false
}

func (r *Resolver) remember(ctx context.Context, key string, price model.ResolvedPrice) model.ResolvedPrice {
	e := Entry{Price: price}
	r.cache.Set(key, e)
	r.persist(ctx, key, e)
	return price
}

func (r *Resolver) rememberMiss(ctx context.Context, key string) {
	e := Entry{Miss: true}
	r.cache.Set(key, e)
	r.persist(ctx, key, e)
}

func (r *Resolver) persist(ctx context.Context, key string, e Entry) {
	if r.store == nil {
		return
	}
	if err := r.store.SaveEntry(ctx, key, e); err != nil {
		slog.Warn("Failed to persist cache entry", "key", key, "error", err)
	}
}
