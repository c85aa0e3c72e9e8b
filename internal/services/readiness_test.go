package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type fakeHealthChecker struct {
	healthy atomic.Bool
	calls   atomic.Int32
}

func (f *fakeHealthChecker) Health(ctx context.Context) (*models.HealthResponse, error) {
	f.calls.Add(1)
	if !f.healthy.Load() {
		return nil, &BackendUnavailableError{Cause: errors.New("connection refused")}
	}
	return &models.HealthResponse{Status: "ok", Provider: "test"}, nil
}

type readinessRecorder struct {
	mu     sync.Mutex
	values []bool
}

func (r *readinessRecorder) record(ready bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, ready)
}

func (r *readinessRecorder) snapshot() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.values...)
}

func TestReadinessService_BecomesReady(t *testing.T) {
	checker := &fakeHealthChecker{}
	svc := NewReadinessService(checker, 10*time.Millisecond, nil)

	rec := &readinessRecorder{}
	svc.Subscribe(rec.record)
	assert.Equal(t, []bool{false}, rec.snapshot())

	svc.Start(context.Background())
	defer svc.Stop()

	require.Eventually(t, func() bool { return checker.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	assert.False(t, svc.IsReady())

	checker.healthy.Store(true)
	require.Eventually(t, svc.IsReady, time.Second, 5*time.Millisecond)
	assert.Equal(t, []bool{false, true}, rec.snapshot())
}

func TestReadinessService_StopsProbingOnceReady(t *testing.T) {
	checker := &fakeHealthChecker{}
	checker.healthy.Store(true)
	svc := NewReadinessService(checker, 5*time.Millisecond, nil)

	svc.Start(context.Background())
	require.Eventually(t, svc.IsReady, time.Second, time.Millisecond)

	calls := checker.calls.Load()
	time.Sleep(50 * time.Millisecond)
	svc.Stop()

	assert.Equal(t, calls, checker.calls.Load())
}

func TestReadinessService_SubscribeAfterReady(t *testing.T) {
	checker := &fakeHealthChecker{}
	checker.healthy.Store(true)
	svc := NewReadinessService(checker, 5*time.Millisecond, nil)

	svc.Start(context.Background())
	defer svc.Stop()
	require.Eventually(t, svc.IsReady, time.Second, time.Millisecond)

	rec := &readinessRecorder{}
	svc.Subscribe(rec.record)
	assert.Equal(t, []bool{true}, rec.snapshot())
}

func TestReadinessService_StopIsIdempotent(t *testing.T) {
	svc := NewReadinessService(&fakeHealthChecker{}, 0, nil)
	svc.Start(context.Background())

	svc.Stop()
	svc.Stop()
}

func TestReadinessService_ContextCancelStopsPolling(t *testing.T) {
	checker := &fakeHealthChecker{}
	svc := NewReadinessService(checker, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	require.Eventually(t, func() bool { return checker.calls.Load() >= 1 }, time.Second, time.Millisecond)
	cancel()
	svc.Stop()

	calls := checker.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, checker.calls.Load())
}

func TestReadinessService_MarkUnavailableResumesProbing(t *testing.T) {
	checker := &fakeHealthChecker{}
	checker.healthy.Store(true)
	svc := NewReadinessService(checker, 5*time.Millisecond, nil)

	rec := &readinessRecorder{}
	svc.Subscribe(rec.record)
	svc.Start(context.Background())
	defer svc.Stop()
	require.Eventually(t, svc.IsReady, time.Second, time.Millisecond)

	checker.healthy.Store(false)
	svc.MarkUnavailable()
	assert.False(t, svc.IsReady())

	calls := checker.calls.Load()
	require.Eventually(t, func() bool { return checker.calls.Load() > calls }, time.Second, time.Millisecond)
	assert.False(t, svc.IsReady())

	checker.healthy.Store(true)
	require.Eventually(t, svc.IsReady, time.Second, time.Millisecond)
	assert.Equal(t, []bool{false, true, false, true}, rec.snapshot())
}

func TestReadinessService_SubscriberEndsOnCurrentValue(t *testing.T) {
	svc := NewReadinessService(&fakeHealthChecker{}, time.Second, nil).(*readinessService)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			svc.set(i%2 == 0)
		}
	}()

	recorders := make([]*readinessRecorder, 20)
	for i := range recorders {
		recorders[i] = &readinessRecorder{}
		svc.Subscribe(recorders[i].record)
	}
	wg.Wait()

	for _, rec := range recorders {
		values := rec.snapshot()
		require.NotEmpty(t, values)
		assert.Equal(t, svc.IsReady(), values[len(values)-1])
		for i := 1; i < len(values); i++ {
			assert.NotEqual(t, values[i-1], values[i], "notifications must alternate")
		}
	}
}
