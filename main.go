package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tarekm/adsift/internal/app"
	"github.com/tarekm/adsift/internal/cli"
	"github.com/tarekm/adsift/internal/logging"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "adsift: %v\n", err)
		os.Exit(2)
	}

	logger := logging.NewStdoutLogger("adsift")

	application, err := app.NewApplication(args, logger)
	if err != nil {
		// Bad rules or an unusable decision store must stop the process;
		// the service never starts in an approve-everything state.
		logger.Error("startup failed", logging.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = application.Shutdown(context.Background())
	}()

	if err := application.Start(); err != nil {
		logger.Error("server error", logging.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}
}
