// Package main is the bismuth command line entry point.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/custodia-labs/bismuth/internal/adapters/driving/cli"
	"github.com/custodia-labs/bismuth/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	root := cli.RootCommand()
	root.SetOut(os.Stdout)

	err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
	if shutdownErr := cli.Shutdown(); shutdownErr != nil {
		logger.Warn("closing store: %v", shutdownErr)
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}
