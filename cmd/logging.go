package cmd

import (
	"github.com/df07/go-sah-raytracer/pkg/config"
	"github.com/df07/go-sah-raytracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("raytracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// loadConfig reads the .env file named by the global --env flag
func loadConfig(ctx *cli.Context) (config.Config, error) {
	if env := ctx.GlobalString("env"); env != "" {
		return config.Load(env)
	}
	return config.Load()
}
