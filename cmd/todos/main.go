// Package main is the entry point for the todos CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todos/internal/backend/rest"
	"todos/internal/cli"
	"todos/internal/commands"
	"todos/internal/config"
	"todos/internal/logging"
	"todos/internal/service"
)

func main() {
	// Cancel on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		log := logging.New(os.Stderr, cfg.LogFormat, cfg.Debug)
		return rest.New(ctx, cfg, log)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
