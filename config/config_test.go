package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDuration_UnmarshalText(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		want      time.Duration
		expectErr bool
	}{
		{"valid seconds", "10s", 10 * time.Second, false},
		{"valid minutes", "5m", 5 * time.Minute, false},
		{"invalid format", "bad", 0, true},
		{"empty input", "", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tc.input))

			if (err != nil) != tc.expectErr {
				t.Fatalf("UnmarshalText() error = %v, expectErr %v", err, tc.expectErr)
			}
			if !tc.expectErr && d.Duration != tc.want {
				t.Errorf("UnmarshalText() got = %v, want %v", d.Duration, tc.want)
			}
		})
	}
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if len(cfg.Resolver.Strategies) != 2 {
		t.Errorf("default strategies = %v, want both enabled", cfg.Resolver.Strategies)
	}
	if cfg.Resolver.Strategies[0] != StrategyLinkTag {
		t.Errorf("first default strategy = %q, want %q", cfg.Resolver.Strategies[0], StrategyLinkTag)
	}
	if cfg.Resolver.Fallback != FallbackDuckDuckGo {
		t.Errorf("default fallback = %q, want %q", cfg.Resolver.Fallback, FallbackDuckDuckGo)
	}
}

func TestLoad(t *testing.T) {
	content := `
[server]
addr = ":9090"
write_timeout = "45s"

[client]
timeout = "3s"
user_agent = "test-agent"

[resolver]
strategies = ["icoprobe"]
fallback = "google"
`
	path := filepath.Join(t.TempDir(), "iconfind.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != "localhost:9090" {
		t.Errorf("Addr = %q, want defaulted host", cfg.Server.Addr)
	}
	if cfg.Server.WriteTimeout.Duration != 45*time.Second {
		t.Errorf("WriteTimeout = %v, want 45s", cfg.Server.WriteTimeout.Duration)
	}
	if cfg.Client.Timeout.Duration != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Client.Timeout.Duration)
	}
	if cfg.Client.UserAgent != "test-agent" {
		t.Errorf("UserAgent = %q", cfg.Client.UserAgent)
	}
	// Unset fields keep their defaults.
	if cfg.Server.ReadTimeout.Duration != 2*time.Second {
		t.Errorf("ReadTimeout = %v, want default 2s", cfg.Server.ReadTimeout.Duration)
	}
	if len(cfg.Resolver.Strategies) != 1 || cfg.Resolver.Strategies[0] != StrategyIcoProbe {
		t.Errorf("Strategies = %v", cfg.Resolver.Strategies)
	}
	if cfg.Resolver.Fallback != FallbackGoogle {
		t.Errorf("Fallback = %q", cfg.Resolver.Fallback)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(cfg *Config) {},
			wantErr: "",
		},
		{
			name:    "empty addr",
			mutate:  func(cfg *Config) { cfg.Server.Addr = "" },
			wantErr: "addr",
		},
		{
			name:    "addr without port",
			mutate:  func(cfg *Config) { cfg.Server.Addr = "localhost" },
			wantErr: "addr",
		},
		{
			name:    "zero client timeout",
			mutate:  func(cfg *Config) { cfg.Client.Timeout = Duration{} },
			wantErr: "timeout",
		},
		{
			name:    "unknown strategy",
			mutate:  func(cfg *Config) { cfg.Resolver.Strategies = []string{"dns-txt"} },
			wantErr: "unknown strategy",
		},
		{
			name:    "unknown fallback",
			mutate:  func(cfg *Config) { cfg.Resolver.Fallback = "bing" },
			wantErr: "unknown fallback",
		},
		{
			name: "empty fallback without url",
			mutate: func(cfg *Config) {
				cfg.Resolver.Fallback = ""
				cfg.Resolver.FallbackURL = ""
			},
			wantErr: "fallback",
		},
		{
			name: "empty fallback with constant url",
			mutate: func(cfg *Config) {
				cfg.Resolver.Fallback = ""
				cfg.Resolver.FallbackURL = "https://cdn.example.com/i.png"
			},
			wantErr: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)

			err := Validate(cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tc.wantErr)
			}
		})
	}
}
