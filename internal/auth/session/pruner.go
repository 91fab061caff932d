package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Pruner periodically removes expired sessions from the store.
type Pruner struct {
	store    Store
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPruner(store Store, interval time.Duration, logger *slog.Logger) *Pruner {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Pruner{store: store, interval: interval, logger: logger}
}

// Start launches the background loop. Calling Start twice is a no-op.
func (p *Pruner) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
	p.logger.Info("session pruner started", "interval", p.interval)
}

// Stop cancels the loop and waits for it to exit.
func (p *Pruner) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.logger.Info("session pruner stopped")
}

func (p *Pruner) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PruneOnce(ctx)
		}
	}
}

// PruneOnce runs a single sweep and returns the number of removed sessions.
func (p *Pruner) PruneOnce(ctx context.Context) int64 {
	n, err := p.store.DeleteExpired(ctx)
	if err != nil {
		p.logger.Error("failed to prune sessions", "error", err)
		return 0
	}
	if n > 0 {
		p.logger.Info("expired sessions pruned", "count", n)
	}
	return n
}
