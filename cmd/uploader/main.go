package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jgivc/uploader/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	root := flag.String("C", "", "Project root (default: current directory)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	dir := *root
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot determine current directory: %s\n", err)
			os.Exit(1)
		}
	}

	lo := &slog.HandlerOptions{Level: slog.LevelInfo}
	if *verbose {
		lo.Level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, lo))

	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			log.Warn("Cannot load .env file", slog.String("path", envFile), slog.Any("error", err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(dir, log).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
