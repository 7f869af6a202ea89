package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/solrkit/internal/config"
	"github.com/kailas-cloud/solrkit/internal/version"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := &cli.Command{
		Name:    "solrkit",
		Usage:   "Typed select queries against a search engine",
		Version: version.String(),

		// Filter queries routinely contain commas.
		DisableSliceFlagSeparator: true,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "Environment name, selects config/<env>.yaml",
				Value: config.GetEnv(),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path (overrides --env lookup)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			selectCommand(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "solrkit:", err)
		os.Exit(1)
	}
}
