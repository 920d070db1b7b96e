// Command iconfindd serves favicon resolution over HTTP.
package main

import (
	"flag"
	"os"

	"github.com/caasmo/iconfind/config"
	"github.com/caasmo/iconfind/server"
	"github.com/caasmo/iconfind/setup"
	"github.com/caasmo/iconfind/topk"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file (optional)")
	flag.Parse()

	logger := setup.NewLogger(nil)

	cfg := config.NewDefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config", "path", *configPath, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	resolver, err := setup.NewResolver(cfg, logger)
	if err != nil {
		logger.Error("failed to create resolver", "err", err)
		os.Exit(1)
	}

	// Top 20 hosts over a 60-tick window, one tick per 100 requests.
	sketch := topk.New(20, 60, 100)

	server.New(cfg.Server, resolver, sketch, logger).Run()
}
