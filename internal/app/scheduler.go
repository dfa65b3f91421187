package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Prefetcher прогревает кэш недель
type Prefetcher interface {
	Prefetch(ctx context.Context) (int, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	prefetcher Prefetcher
	interval   time.Duration
	logger     *zap.Logger
	stopChan   chan struct{}
	stopOnce   sync.Once
	done       chan struct{}
}

// NewScheduler создаёт новый планировщик. interval <= 0 отключает прогрев.
func NewScheduler(prefetcher Prefetcher, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		prefetcher: prefetcher,
		interval:   interval,
		logger:     logger,
		stopChan:   make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Week prefetch disabled")
		close(s.done)
		return
	}

	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))
	go s.runPrefetchTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт завершения текущего прогрева
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

func (s *Scheduler) runPrefetchTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.prefetch(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.prefetch(ctx)
		case <-s.stopChan:
			s.logger.Info("Prefetch task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Prefetch task cancelled")
			return
		}
	}
}

func (s *Scheduler) prefetch(ctx context.Context) {
	started := time.Now()

	warmed, err := s.prefetcher.Prefetch(ctx)
	if err != nil {
		s.logger.Error("Failed to prefetch weeks", zap.Int("warmed", warmed), zap.Error(err))
		return
	}

	s.logger.Info("Week prefetch completed",
		zap.Int("warmed", warmed),
		zap.Duration("took", time.Since(started)),
	)
}
