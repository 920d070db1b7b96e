package config

import (
	"fmt"
	"net"
	"strings"
)

func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("config: server section: %w", err)
	}
	if err := validateClient(&cfg.Client); err != nil {
		return fmt.Errorf("config: client section: %w", err)
	}
	if err := validateResolver(&cfg.Resolver); err != nil {
		return fmt.Errorf("config: resolver section: %w", err)
	}
	return nil
}

// validateServer checks the listener address. A bare ":port" gets its
// host defaulted to localhost; the port is mandatory.
func validateServer(server *Server) error {
	if server.Addr == "" {
		return fmt.Errorf("addr cannot be empty")
	}

	host, port, err := net.SplitHostPort(server.Addr)
	if err != nil {
		if strings.HasPrefix(server.Addr, ":") {
			port = strings.TrimPrefix(server.Addr, ":")
			host = "localhost"
		} else {
			return fmt.Errorf("invalid addr %q: %w", server.Addr, err)
		}
	}
	if port == "" {
		return fmt.Errorf("addr %q must include a port", server.Addr)
	}

	server.Addr = net.JoinHostPort(host, port)
	return nil
}

func validateClient(client *Client) error {
	if client.Timeout.Duration <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if client.RatePerSecond <= 0 {
		return fmt.Errorf("rate_per_second must be positive")
	}
	if client.ProbeMaxRetries < 0 {
		return fmt.Errorf("probe_max_retries cannot be negative")
	}
	return nil
}

func validateResolver(resolver *Resolver) error {
	for _, name := range resolver.Strategies {
		switch name {
		case StrategyLinkTag, StrategyIcoProbe:
		default:
			return fmt.Errorf("unknown strategy %q", name)
		}
	}

	switch resolver.Fallback {
	case FallbackDuckDuckGo, FallbackGoogle:
	case "":
		if resolver.FallbackURL == "" {
			return fmt.Errorf("either fallback or fallback_url must be set")
		}
	default:
		return fmt.Errorf("unknown fallback provider %q", resolver.Fallback)
	}
	return nil
}
