package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hellsoft/simplenotes/internal/client/api"
	"github.com/hellsoft/simplenotes/internal/client/cli"
	"github.com/hellsoft/simplenotes/internal/client/jobs"
	"github.com/hellsoft/simplenotes/internal/client/notes"
	"github.com/hellsoft/simplenotes/internal/client/storage/sqlite"
	"github.com/hellsoft/simplenotes/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "simplenotes.db", "Path to local notes database")
	queuePath := flag.String("queue", "simplenotes-jobs.db", "Path to local job queue")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	command := args[0]

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	queue, err := jobs.OpenQueue(*queuePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open job queue: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Error("failed to close job queue", "error", err)
		}
	}()

	apiClient := api.NewClient(*serverURL)
	reconciler := sync.NewService(apiClient, store, logger)
	scheduler := jobs.NewScheduler(queue, logger)
	jobs.NewWorker(store, apiClient, reconciler, logger).Register(scheduler)
	noteService := notes.NewService(store, scheduler, logger)

	c := cli.New(noteService, reconciler, scheduler, os.Stdout)

	switch command {
	case "list":
		if err := c.RunList(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "get":
		if err := c.RunGet(ctx, args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "save":
		if err := c.RunSave(ctx, args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "delete":
		if err := c.RunDelete(ctx, args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "sync":
		if err := c.RunSync(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "run":
		if err := c.RunLoop(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		cli.PrintUsage(os.Stderr)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("SimpleNotes Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
