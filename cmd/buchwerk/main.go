package main

import (
	"log/slog"
	"os"

	"github.com/buchwerk/buchwerk/internal/commands"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := commands.NewRootCommand().Execute(); err != nil {
		logger.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
