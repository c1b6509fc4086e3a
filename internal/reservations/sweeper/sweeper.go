// Package sweeper periodically reclaims lapsed leases. It is plain
// bookkeeping: expiry itself is a predicate checked inline by the registry,
// so a lease is already invalid the instant it lapses, swept or not.
package sweeper

import (
	"context"
	"sync"
	"time"

	"stockhold/internal/reservations/service"
	"stockhold/pkg/clock"
	"stockhold/pkg/logger"
)

type Sweeper struct {
	service  service.ReservationService
	clock    clock.Clock
	interval time.Duration
	log      *logger.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func New(svc service.ReservationService, clk clock.Clock, interval time.Duration, log *logger.Logger) *Sweeper {
	return &Sweeper{
		service:  svc,
		clock:    clk,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine.
func (s *Sweeper) Start() {
	go s.run()
	s.log.Info("Expiry sweeper started", "interval", s.interval)
}

func (s *Sweeper) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep runs a single reclamation pass and returns the number of leases
// processed.
func (s *Sweeper) Sweep(ctx context.Context) int {
	count := s.service.SweepExpired(ctx, s.clock.Now())
	if count > 0 {
		s.log.Debug("Sweep pass completed", "reclaimed", count)
	}
	return count
}

// Stop halts the loop and waits for an in-flight pass to finish.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		<-s.doneCh
	})
}
