// Package setup assembles the resolver and its collaborators from a
// loaded configuration. It is shared by the iconfind binaries.
package setup

import (
	"fmt"
	"log/slog"
	"os"

	phuslog "github.com/phuslu/log"
	"golang.org/x/time/rate"

	"github.com/caasmo/iconfind/config"
	"github.com/caasmo/iconfind/favicon"
	"github.com/caasmo/iconfind/favicon/icoprobe"
	"github.com/caasmo/iconfind/favicon/linktag"
	"github.com/caasmo/iconfind/fetch/client"
)

// DefaultLoggerOptions provides default settings for slog handlers.
var DefaultLoggerOptions = &slog.HandlerOptions{
	Level: slog.LevelInfo,
}

// NewLogger configures slog with phuslu/log's JSON handler. Uses
// DefaultLoggerOptions if opts is nil.
func NewLogger(opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	return slog.New(phuslog.SlogNewJSONHandler(os.Stderr, opts))
}

// NewResolver builds the strategy chain and fallback named by the
// configuration on top of a shared fetch client.
func NewResolver(cfg *config.Config, logger *slog.Logger) (*favicon.Resolver, error) {
	cl, err := client.New(client.Options{
		Timeout:         cfg.Client.Timeout.Duration,
		UserAgent:       cfg.Client.UserAgent,
		RateLimit:       rate.Limit(cfg.Client.RatePerSecond),
		RateBurst:       cfg.Client.RateBurst,
		ProbeMaxRetries: uint64(cfg.Client.ProbeMaxRetries),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("setup: failed to create fetch client: %w", err)
	}

	strategies := make([]favicon.Strategy, 0, len(cfg.Resolver.Strategies))
	for _, name := range cfg.Resolver.Strategies {
		switch name {
		case config.StrategyLinkTag:
			strategies = append(strategies, linktag.New(cl, logger))
		case config.StrategyIcoProbe:
			strategies = append(strategies, icoprobe.New(cl))
		default:
			return nil, fmt.Errorf("setup: unknown strategy %q", name)
		}
	}

	fallback, err := newFallback(cfg.Resolver)
	if err != nil {
		return nil, err
	}

	return favicon.New(
		favicon.WithStrategies(strategies...),
		favicon.WithFallback(fallback),
		favicon.WithLogger(logger),
	)
}

func newFallback(cfg config.Resolver) (favicon.Fallback, error) {
	switch cfg.Fallback {
	case config.FallbackDuckDuckGo:
		return favicon.DuckDuckGo(), nil
	case config.FallbackGoogle:
		return favicon.GoogleS2(), nil
	case "":
		return favicon.Constant(cfg.FallbackURL), nil
	default:
		return favicon.Fallback{}, fmt.Errorf("setup: unknown fallback provider %q", cfg.Fallback)
	}
}
