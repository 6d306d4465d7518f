package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionEvictor drops sessions that have been idle for longer than ttl.
type SessionEvictor interface {
	EvictIdle(ttl time.Duration) int
}

// SessionSweeper periodically evicts idle recruiter sessions.
type SessionSweeper interface {
	Start(ctx context.Context)
	Stop()
}

type sessionSweeper struct {
	sessions SessionEvictor
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewSessionSweeper(sessions SessionEvictor, ttl, interval time.Duration, logger *zap.Logger) SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sessionSweeper{
		sessions: sessions,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start implements SessionSweeper.
func (s *sessionSweeper) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("session sweeper started",
		zap.Duration("ttl", s.ttl),
		zap.Duration("interval", s.interval),
	)
}

// Stop implements SessionSweeper.
func (s *sessionSweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	s.logger.Info("session sweeper stopped")
}

func (s *sessionSweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := s.sessions.EvictIdle(s.ttl); evicted > 0 {
				s.logger.Info("idle sessions evicted", zap.Int("count", evicted))
			}
		}
	}
}
