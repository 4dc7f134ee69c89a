package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/tomz197/circles/internal/config"
	"github.com/tomz197/circles/internal/loop"
	"golang.org/x/term"
)

func main() {
	// Raw mode owns stdout, so logs go to stderr
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "circles",
	})

	settings, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	logger.SetLevel(settings.LogLevel)

	seeder, err := loop.SeederFor(settings)
	if err != nil {
		logger.Fatal("failed to prepare population", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	reader := bufio.NewReader(os.Stdin)
	runErr := loop.Run(ctx, reader, os.Stdout, loop.Options{
		Profile:  termenv.EnvColorProfile(),
		Logger:   logger,
		Settings: settings,
		Seeder:   seeder,
	})

	stop()
	_ = term.Restore(fd, oldState)

	if runErr != nil {
		logger.Error("simulation error", "err", runErr)
		os.Exit(1)
	}
}
