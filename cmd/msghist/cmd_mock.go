package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sadopc/msghist/internal/core/history"
	"github.com/sadopc/msghist/internal/logging"
	"github.com/sadopc/msghist/internal/mock"
)

func mockCmd() {
	fs := flag.NewFlagSet("mock", flag.ExitOnError)
	dbFlag := fs.String("db", ":memory:", "SQLite database path")
	seedFlag := fs.Int("seed", 0, "Insert N synthetic records before serving")
	portFlag := fs.Int("port", 8888, "Port to listen on")
	latencyFlag := fs.Duration("latency", 0, "Artificial response latency (e.g., 200ms, 1s)")
	errorRateFlag := fs.Float64("error-rate", 0, "Random error rate (0.0-1.0)")
	corsOriginFlag := fs.String("cors-origin", "*", "Access-Control-Allow-Origin header value")
	logLevelFlag := fs.String("log-level", "info", "Log level: debug, info, warn, error")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: msghist mock [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Start a mock history server backed by SQLite.\n\n")
		fmt.Fprintf(os.Stderr, "The server answers GET /v1/histories with the same paging, filter and\n")
		fmt.Fprintf(os.Stderr, "sort parameters as the real service. CORS headers are included by\n")
		fmt.Fprintf(os.Stderr, "default for frontend development use.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  msghist mock --seed 200\n")
		fmt.Fprintf(os.Stderr, "  msghist mock --db history.db --port 3000\n")
		fmt.Fprintf(os.Stderr, "  msghist mock --seed 50 --latency 300ms --error-rate 0.1\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	if *errorRateFlag < 0 || *errorRateFlag > 1 {
		fmt.Fprintf(os.Stderr, "Error: error-rate must be between 0.0 and 1.0\n")
		os.Exit(2)
	}
	if *portFlag < 0 || *portFlag > 65535 {
		fmt.Fprintf(os.Stderr, "Error: port must be between 0 and 65535\n")
		os.Exit(2)
	}
	if *seedFlag < 0 {
		fmt.Fprintf(os.Stderr, "Error: seed must not be negative\n")
		os.Exit(2)
	}

	logger := logging.New(os.Stderr, *logLevelFlag)

	store, err := history.NewStore(*dbFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(2)
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *seedFlag > 0 {
		if err := mock.Seed(ctx, store, *seedFlag, time.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("seeded store", "records", *seedFlag)
	}

	opts := []mock.Option{
		mock.WithPort(*portFlag),
		mock.WithLogger(logger),
	}
	if *latencyFlag > 0 {
		opts = append(opts, mock.WithLatency(*latencyFlag))
	}
	if *errorRateFlag > 0 {
		opts = append(opts, mock.WithErrorRate(*errorRateFlag))
	}
	if *corsOriginFlag != "*" {
		opts = append(opts, mock.WithCORSOrigin(*corsOriginFlag))
	}

	if *latencyFlag > 0 {
		logger.Info("artificial latency", "latency", latencyFlag.String())
	}
	if *errorRateFlag > 0 {
		logger.Info("random errors", "rate", fmt.Sprintf("%.0f%%", *errorRateFlag*100))
	}

	if err := mock.New(store, opts...).Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
