package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

type HealthChecker interface {
	Health(ctx context.Context) (*models.HealthResponse, error)
}

// ReadinessService tracks whether the analysis backend can take requests.
// It is the only writer of the readiness flag.
type ReadinessService interface {
	Start(ctx context.Context)
	Stop()
	IsReady() bool
	// Subscribe registers fn for readiness changes. fn is called once with
	// the current value on registration. Callbacks run in order, one at a
	// time, and must not call back into the service.
	Subscribe(fn func(ready bool))
	// MarkUnavailable clears readiness after a failed backend call; polling
	// resumes until a probe succeeds.
	MarkUnavailable()
}

type readinessService struct {
	checker  HealthChecker
	interval time.Duration
	logger   *zap.Logger

	ready atomic.Bool

	// mu orders flag changes and subscriber notifications.
	mu          sync.Mutex
	subscribers []func(bool)

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewReadinessService(checker HealthChecker, interval time.Duration, log *zap.Logger) ReadinessService {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &readinessService{
		checker:  checker,
		interval: interval,
		logger:   logger.OrNop(log),
		stopChan: make(chan struct{}),
	}
}

// Start implements ReadinessService.
func (r *readinessService) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.poll(ctx)
}

// Stop implements ReadinessService.
func (r *readinessService) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
	r.wg.Wait()
	r.logger.Info("readiness poller stopped")
}

// IsReady implements ReadinessService.
func (r *readinessService) IsReady() bool {
	return r.ready.Load()
}

// Subscribe implements ReadinessService.
func (r *readinessService) Subscribe(fn func(ready bool)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
	fn(r.ready.Load())
}

// MarkUnavailable implements ReadinessService.
func (r *readinessService) MarkUnavailable() {
	if r.set(false) {
		r.logger.Warn("backend marked unavailable after a failed request")
	}
}

func (r *readinessService) poll(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("starting backend readiness poller", zap.Duration("interval", r.interval))
	r.probe(ctx)

	for {
		select {
		case <-r.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !r.IsReady() {
				r.probe(ctx)
			}
		}
	}
}

func (r *readinessService) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	health, err := r.checker.Health(probeCtx)
	if err != nil {
		r.logger.Warn("backend unavailable", zap.Error(err))
		r.set(false)
		return
	}

	if r.set(true) {
		r.logger.Info("backend ready", zap.String("provider", health.Provider))
	}
}

// set stores the flag and notifies subscribers when it changed.
func (r *readinessService) set(ready bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ready.Swap(ready) == ready {
		return false
	}
	for _, fn := range r.subscribers {
		fn(ready)
	}
	return true
}
