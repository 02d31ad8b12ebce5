// Package main is the entry point for the tasks CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tasks/internal/auth"
	"tasks/internal/backend/restapi"
	"tasks/internal/cli"
	"tasks/internal/commands"
	"tasks/internal/config"
	"tasks/internal/logging"
	"tasks/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create service factory
	factory := func(ctx context.Context, cfg *config.Config, who auth.Provider, log *logging.Logger) (service.Service, error) {
		return restapi.New(ctx, cfg, who, log)
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
