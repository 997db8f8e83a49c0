// Command print-agent monitors the local CUPS scheduler and reports
// completed print jobs to the ingestion API.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kmurdhar/PrinterManagementSystem/internal/agent"
)

func main() {
	apiURL := flag.String("api", "http://localhost:3000", "base URL of the ingestion API")
	pollInterval := flag.Duration("poll", 5*time.Second, "interval between CUPS scans")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := agent.DefaultConfig()
	cfg.PollInterval = *pollInterval

	a := agent.New(
		agent.NewCUPSSource(log),
		agent.NewClient(*apiURL, log),
		cfg,
		log,
	)

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("agent exited", zap.Error(err))
		os.Exit(1)
	}
}
