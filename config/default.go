package config

import "time"

// NewDefaultConfig creates a Config with sensible defaults: both
// strategies enabled in discovery order, DuckDuckGo fallback.
func NewDefaultConfig() *Config {
	return &Config{
		Server: Server{
			Addr:                    ":8080",
			ReadTimeout:             Duration{Duration: 2 * time.Second},
			ReadHeaderTimeout:       Duration{Duration: 2 * time.Second},
			WriteTimeout:            Duration{Duration: 30 * time.Second},
			IdleTimeout:             Duration{Duration: 1 * time.Minute},
			ShutdownGracefulTimeout: Duration{Duration: 15 * time.Second},
		},
		Client: Client{
			Timeout:         Duration{Duration: 10 * time.Second},
			UserAgent:       "iconfind/1.0",
			RatePerSecond:   10,
			RateBurst:       10,
			ProbeMaxRetries: 2,
		},
		Resolver: Resolver{
			Strategies: []string{StrategyLinkTag, StrategyIcoProbe},
			Fallback:   FallbackDuckDuckGo,
		},
	}
}
