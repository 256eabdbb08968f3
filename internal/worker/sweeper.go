package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ShopFacade exposes the subset of application functionality required by the
// sweeper.
type ShopFacade interface {
	ExpireStaleOrders(ctx context.Context, ttl time.Duration) (int64, error)
}

// ExpirySweeper periodically expires pending orders nobody paid for. It runs
// entirely outside the reconciliation path: an expired order simply stops
// matching webhook lookups.
type ExpirySweeper struct {
	facade   ShopFacade
	interval time.Duration
	ttl      time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewExpirySweeper constructs the background sweeper.
func NewExpirySweeper(facade ShopFacade, interval, ttl time.Duration, logger *slog.Logger) *ExpirySweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ExpirySweeper{
		facade:   facade,
		interval: interval,
		ttl:      ttl,
		logger:   logger,
	}
}

// Start launches background sweeping.
func (s *ExpirySweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop waits for the sweeper to finish.
func (s *ExpirySweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *ExpirySweeper) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	expired, err := s.facade.ExpireStaleOrders(ctx, s.ttl)
	if err != nil {
		s.logger.Error("expiry sweep failed", slog.String("error", err.Error()))
		return
	}
	if expired > 0 {
		s.logger.Info("expired stale orders", slog.Int64("count", expired))
	}
}
