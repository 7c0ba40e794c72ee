package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/df07/go-sah-raytracer/pkg/config"
	"github.com/df07/go-sah-raytracer/pkg/log"
	"github.com/df07/go-sah-raytracer/web/server"
)

var logger = log.New("web")

func main() {
	// Parse command line flags
	addr := flag.String("addr", "", "Address to serve on (defaults to SERVER_ADDRESS or :8080)")
	envFile := flag.String("env", ".env", "Optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.Errorf("configuration: %v", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ServerAddress = *addr
	}

	webServer, err := server.New(cfg)
	if err != nil {
		logger.Errorf("creating server: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := webServer.Run(ctx); err != nil {
		logger.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}
