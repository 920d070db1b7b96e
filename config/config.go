// Package config holds the TOML configuration consumed by the
// iconfind binaries. Library callers configure the resolver directly
// through options and never touch this package.
package config

import (
	"fmt"
	"time"
)

// Strategy names accepted in [resolver] strategies.
const (
	StrategyLinkTag  = "linktag"
	StrategyIcoProbe = "icoprobe"
)

// Fallback provider names accepted in [resolver] fallback.
const (
	FallbackDuckDuckGo = "duckduckgo"
	FallbackGoogle     = "google"
)

type Config struct {
	Server   Server   `toml:"server"`
	Client   Client   `toml:"client"`
	Resolver Resolver `toml:"resolver"`
}

// Server configures the iconfindd HTTP listener.
type Server struct {
	Addr                    string   `toml:"addr"`
	ReadTimeout             Duration `toml:"read_timeout"`
	ReadHeaderTimeout       Duration `toml:"read_header_timeout"`
	WriteTimeout            Duration `toml:"write_timeout"`
	IdleTimeout             Duration `toml:"idle_timeout"`
	ShutdownGracefulTimeout Duration `toml:"shutdown_graceful_timeout"`
}

// Client configures the outbound fetch client shared by all strategies.
type Client struct {
	Timeout         Duration `toml:"timeout"`
	UserAgent       string   `toml:"user_agent"`
	RatePerSecond   float64  `toml:"rate_per_second"`
	RateBurst       int      `toml:"rate_burst"`
	ProbeMaxRetries int      `toml:"probe_max_retries"`
}

// Resolver selects the strategy chain and the fallback provider.
// Strategies are tried in the listed order. Fallback is one of the
// provider names above, or empty when FallbackURL supplies a constant.
type Resolver struct {
	Strategies  []string `toml:"strategies"`
	Fallback    string   `toml:"fallback"`
	FallbackURL string   `toml:"fallback_url"`
}

// Duration wraps time.Duration so TOML values can be written in the
// "10s" / "5m" form.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
