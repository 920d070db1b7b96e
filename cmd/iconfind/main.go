// Command iconfind resolves favicon URLs for the page URLs given as
// arguments (or on stdin, one per line) and prints one favicon URL per
// input, in input order.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/caasmo/iconfind/config"
	"github.com/caasmo/iconfind/setup"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file (optional)")
	fallbackURL := flag.String("fallback-url", "", "constant fallback URL overriding the configured provider")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	loggerOpts := setup.DefaultLoggerOptions
	if *verbose {
		loggerOpts = &slog.HandlerOptions{Level: slog.LevelDebug}
	}
	logger := setup.NewLogger(loggerOpts)

	cfg := config.NewDefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config", "path", *configPath, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *fallbackURL != "" {
		cfg.Resolver.Fallback = ""
		cfg.Resolver.FallbackURL = *fallbackURL
	}

	resolver, err := setup.NewResolver(cfg, logger)
	if err != nil {
		logger.Error("failed to create resolver", "err", err)
		os.Exit(1)
	}

	links := flag.Args()
	if len(links) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				links = append(links, line)
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Error("failed to read stdin", "err", err)
			os.Exit(1)
		}
	}

	for _, result := range resolver.Resolve(context.Background(), links) {
		fmt.Println(result)
	}
}
