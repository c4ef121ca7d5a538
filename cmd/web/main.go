// Package main starts the festival web service.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	webcmd "github.com/louisbranch/festival/internal/cmd/web"
	"github.com/louisbranch/festival/internal/platform/config"
)

func main() {
	cfg, err := webcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: parse flags: %v", err)
	}
	slog.SetDefault(webcmd.NewLogger(os.Stderr, cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := webcmd.Run(ctx, cfg); err != nil {
		stop()
		config.Exitf("Error: %v", err)
	}
}
