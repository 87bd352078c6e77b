package tracking

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/wa-widget/internal/page"
)

// Resolver merges provider output in fixed priority order: a later provider
// overwrites keys set by an earlier one. Nothing is cached between calls.
type Resolver struct {
	providers  []Provider
	concurrent bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConcurrency evaluates providers in parallel. Results are still merged
// by provider position, never by completion order.
func WithConcurrency() Option {
	return func(r *Resolver) { r.concurrent = true }
}

// NewResolver creates a Resolver over providers ordered lowest priority first.
func NewResolver(providers []Provider, opts ...Option) *Resolver {
	r := &Resolver{providers: providers}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultResolver creates a Resolver over DefaultProviders.
func NewDefaultResolver(opts ...Option) *Resolver {
	return NewResolver(DefaultProviders(), opts...)
}

// Providers returns the provider names in priority order.
func (r *Resolver) Providers() []string {
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return names
}

// Resolve reads the current document from env and returns the merged
// attribution. It never fails: a broken source contributes nothing.
func (r *Resolver) Resolve(env page.Environment) Map {
	doc := env.Document()
	results := make([]Map, len(r.providers))

	if r.concurrent {
		var g errgroup.Group
		for i, p := range r.providers {
			i, p := i, p
			g.Go(func() error {
				results[i] = collect(p, doc)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, p := range r.providers {
			results[i] = collect(p, doc)
		}
	}

	merged := NewMap()
	for _, res := range results {
		merged.Merge(res)
	}
	return merged
}

// EnrichedURL resolves attribution for env and appends it to the page URL.
func (r *Resolver) EnrichedURL(env page.Environment) string {
	doc := env.Document()
	return Enrich(doc.Location(), r.Resolve(page.Static(doc)))
}

// collect runs one provider, turning errors and panics into an empty result.
func collect(p Provider, doc page.Document) (out Map) {
	defer func() {
		if rec := recover(); rec != nil {
			logProviderFailure(p, eris.New(fmt.Sprint(rec)))
			out = NewMap()
		}
	}()

	m, err := p.Provide(doc)
	if err != nil {
		logProviderFailure(p, err)
		return NewMap()
	}
	return m
}

func logProviderFailure(p Provider, err error) {
	zap.L().Warn("tracking: provider failed, skipping",
		zap.String("provider", p.Name()),
		zap.Error(err),
	)
}
