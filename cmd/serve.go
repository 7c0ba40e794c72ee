package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/df07/go-sah-raytracer/web/server"
	"github.com/urfave/cli"
)

// Serve renders over HTTP until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if addr := ctx.String("addr"); addr != "" {
		cfg.ServerAddress = addr
	}

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return srv.Run(runCtx)
}
