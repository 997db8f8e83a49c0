package agent

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kmurdhar/PrinterManagementSystem/internal/cache"
)

// Config controls the polling loop.
type Config struct {
	// PollInterval is the gap between lpstat scans.
	PollInterval time.Duration
	// ErrorBackoff is the extra wait after a scan failure.
	ErrorBackoff time.Duration
	// DedupLimit caps the in-memory dedup set; past it the set is cleared.
	// Clearing may resend old jobs, which the server tolerates.
	DedupLimit int
}

// DefaultConfig mirrors the historical agent cadence.
func DefaultConfig() Config {
	return Config{
		PollInterval: 5 * time.Second,
		ErrorBackoff: 10 * time.Second,
		DedupLimit:   1000,
	}
}

// Agent ties the CUPS source to the reporting client.
type Agent struct {
	source *CUPSSource
	client *Client
	cfg    Config
	log    *zap.Logger

	seen *cache.TTLCache[string, struct{}]
}

// New builds an agent.
func New(source *CUPSSource, client *Client, cfg Config, log *zap.Logger) *Agent {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultConfig().PollInterval
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = DefaultConfig().ErrorBackoff
	}
	if cfg.DedupLimit <= 0 {
		cfg.DedupLimit = DefaultConfig().DedupLimit
	}
	return &Agent{
		source: source,
		client: client,
		cfg:    cfg,
		log:    log.Named("agent"),
		seen:   cache.NewTTLCache[string, struct{}](),
	}
}

// Run polls until the context is canceled. The agent owns retry and backoff;
// the server is a passive receiver.
func (a *Agent) Run(ctx context.Context) error {
	if !a.source.Available(ctx) {
		return errors.New("cups scheduler is not running")
	}

	if err := a.client.Health(ctx); err != nil {
		a.log.Warn("api not reachable, continuing to monitor", zap.Error(err))
	}

	a.log.Info("print monitor started", zap.Duration("poll_interval", a.cfg.PollInterval))

	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := a.scan(ctx); err != nil {
			a.log.Error("scan failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(a.cfg.ErrorBackoff):
			}
		}

		select {
		case <-ctx.Done():
			a.log.Info("print monitor stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (a *Agent) scan(ctx context.Context) error {
	reports, err := a.source.CompletedJobs(ctx)
	if err != nil {
		return err
	}

	for _, report := range reports {
		key := report.Key()
		if _, ok := a.seen.Get(key); ok {
			continue
		}
		// Mark before sending: a failed send is dropped, not retried in a
		// tight loop. The dedup set is a best-effort hint, never a
		// correctness dependency.
		a.seen.Set(key, struct{}{}, 0)

		if err := a.client.Send(ctx, report); err != nil {
			a.log.Error("report failed", zap.String("job", report.JobID), zap.Error(err))
		}
	}

	if a.seen.Len() > a.cfg.DedupLimit {
		a.seen.Clear()
		a.log.Info("cleared dedup cache", zap.Int("limit", a.cfg.DedupLimit))
	}
	return nil
}
