package cleaner

import (
	"context"
	"log/slog"
	"time"

	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
)

const defaultInterval = time.Minute

type Config struct {
	Interval time.Duration
}

// Cleaner purges continuation sessions that expired without being finished,
// and spent ones that are only audit noise.
type Cleaner struct {
	sessions core.SessionStore
	logger   *slog.Logger
	cfg      Config
}

func New(sessions core.SessionStore, logger *slog.Logger, cfg Config) *Cleaner {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}

	return &Cleaner{
		sessions: sessions,
		logger:   logger.With("worker", "cleaner"),
		cfg:      cfg,
	}
}

func (w *Cleaner) Run(ctx context.Context) error {
	w.logger.Info("cleaner start")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.cfg.Interval):
			_ = w.run(ctx)
		}
	}
}

func (w *Cleaner) run(ctx context.Context) error {
	n, err := w.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		w.logger.Error("sessions.DeleteExpired", "err", err)
		return err
	}

	if n > 0 {
		w.logger.Debug("sessions purged", "count", n)
	}

	return nil
}
