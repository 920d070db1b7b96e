package favicon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrInvalidStrategy is returned by New when the strategy list
	// contains a nil element.
	ErrInvalidStrategy = errors.New("favicon: strategy must not be nil")

	// ErrInvalidFallback is returned by New when the fallback is
	// neither a constant URL nor a computed provider.
	ErrInvalidFallback = errors.New("favicon: fallback must be a constant URL or a computed provider")
)

// Resolver runs the strategy chain. It holds no mutable state and is
// safe for concurrent use; each Resolve call is independent.
type Resolver struct {
	strategies []Strategy
	fallback   Fallback
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrategies sets the ordered strategy chain. Strategies are tried
// left to right; the first non-empty result wins. An empty chain means
// every input resolves to the fallback directly.
func WithStrategies(strategies ...Strategy) Option {
	return func(r *Resolver) {
		r.strategies = strategies
	}
}

// WithFallback sets the last-resort provider. The default is DuckDuckGo.
func WithFallback(f Fallback) Option {
	return func(r *Resolver) {
		r.fallback = f
	}
}

// WithLogger sets the logger for strategy fault diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver. Arguments are validated here, before any
// I/O: a nil strategy element or an invalid fallback fails
// immediately. These are the only errors the package ever surfaces to
// a caller; resolution itself degrades to fallback URLs instead of
// failing.
func New(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		fallback: DuckDuckGo(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, s := range r.strategies {
		if s == nil {
			return nil, fmt.Errorf("%w (position %d)", ErrInvalidStrategy, i)
		}
	}
	if !r.fallback.valid() {
		return nil, ErrInvalidFallback
	}
	if r.logger == nil {
		return nil, errors.New("favicon: logger must not be nil")
	}

	return r, nil
}

// Resolve returns one favicon URL per input link, in input order.
// Inputs are processed sequentially and independently: a failing or
// slow strategy on one input never affects another, and the worst case
// for any single input is its fallback URL. The output always has
// exactly len(links) elements.
func (r *Resolver) Resolve(ctx context.Context, links []string) []string {
	results := make([]string, len(links))
	for i, link := range links {
		results[i] = r.resolveOne(ctx, link)
	}
	return results
}

func (r *Resolver) resolveOne(ctx context.Context, link string) string {
	page := ParsePage(link)

	for _, s := range r.strategies {
		found, err := r.locate(ctx, s, page)
		if err != nil {
			r.logger.Warn("favicon: strategy failed, trying next",
				"strategy", fmt.Sprintf("%T", s), "page", link, "error", err)
			continue
		}
		if found != "" {
			return found
		}
	}

	return r.fallback.resolve(page.Server)
}

// locate invokes a single strategy. A panicking strategy is recovered
// and reported as an error so it cannot abort the current or
// subsequent inputs.
func (r *Resolver) locate(ctx context.Context, s Strategy, page Page) (result string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = ""
			err = fmt.Errorf("favicon: strategy panicked: %v", rec)
		}
	}()
	return s.Locate(ctx, page)
}
