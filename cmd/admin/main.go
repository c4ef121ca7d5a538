// Package main runs festival maintenance commands.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	admincmd "github.com/louisbranch/festival/internal/cmd/admin"
	"github.com/louisbranch/festival/internal/platform/config"
)

func main() {
	flag.Usage = func() {
		_, _ = os.Stderr.WriteString(admincmd.Usage + "\n")
	}
	cfg, args, err := admincmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := admincmd.Run(ctx, cfg, args, os.Stdin, os.Stdout); err != nil {
		stop()
		config.Exitf("Error: %v", err)
	}
}
