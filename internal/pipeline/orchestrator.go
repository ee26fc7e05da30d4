package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Runner is a long-lived loop that exits when its context is cancelled. The
// WebSocket hub satisfies this.
type Runner interface {
	Run(ctx context.Context) error
}

// Orchestrator manages the background goroutines: the market refresh loop
// and any auxiliary runners such as the WebSocket hub.
type Orchestrator struct {
	refresher       *Refresher
	runners         []Runner
	refreshInterval time.Duration
	logger          *slog.Logger
}

func NewOrchestrator(refresher *Refresher, refreshInterval time.Duration, logger *slog.Logger, runners ...Runner) *Orchestrator {
	return &Orchestrator{
		refresher:       refresher,
		runners:         runners,
		refreshInterval: refreshInterval,
		logger:          logger.With(slog.String("component", "orchestrator")),
	}
}

// Run starts all loops as concurrent goroutines using an errgroup. Each
// goroutine respects ctx cancellation. If any goroutine returns a
// non-context error, the errgroup cancels the shared context and Run
// returns that error.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.logger.Info("pipeline starting",
		slog.Duration("refresh_interval", o.refreshInterval),
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := o.refresher.RunLoop(ctx, o.refreshInterval)
		if ctx.Err() != nil {
			return nil // clean shutdown
		}
		return fmt.Errorf("refresh loop: %w", err)
	})

	for _, r := range o.runners {
		r := r
		g.Go(func() error {
			err := r.Run(ctx)
			if ctx.Err() != nil {
				return nil // clean shutdown
			}
			return fmt.Errorf("runner: %w", err)
		})
	}

	err := g.Wait()
	if err != nil {
		o.logger.Error("pipeline stopped with error", slog.String("error", err.Error()))
		return err
	}

	o.logger.Info("pipeline stopped cleanly")
	return nil
}
