package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingSyncer struct {
	calls atomic.Int64
}

func (s *countingSyncer) SyncCurrent(context.Context) {
	s.calls.Add(1)
}

func waitForCalls(t *testing.T, syncer *countingSyncer, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if syncer.calls.Load() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected at least %d sync calls, got %d", want, syncer.calls.Load())
}

func TestRegisterSyncScheduler_SyncsImmediatelyOnStart(t *testing.T) {
	syncer := &countingSyncer{}
	s := NewRegisterSyncScheduler(syncer, time.Hour, zap.NewNop())

	s.Start(context.Background())
	defer s.Stop()

	waitForCalls(t, syncer, 1)
}

func TestRegisterSyncScheduler_PollsOnInterval(t *testing.T) {
	syncer := &countingSyncer{}
	s := NewRegisterSyncScheduler(syncer, 20*time.Millisecond, zap.NewNop())

	s.Start(context.Background())
	defer s.Stop()

	waitForCalls(t, syncer, 3)
}

func TestRegisterSyncScheduler_Trigger(t *testing.T) {
	syncer := &countingSyncer{}
	s := NewRegisterSyncScheduler(syncer, time.Hour, zap.NewNop())

	s.Start(context.Background())
	defer s.Stop()

	waitForCalls(t, syncer, 1)
	s.Trigger()
	waitForCalls(t, syncer, 2)
}

func TestRegisterSyncScheduler_StopIsIdempotent(t *testing.T) {
	syncer := &countingSyncer{}
	s := NewRegisterSyncScheduler(syncer, time.Hour, zap.NewNop())

	s.Start(context.Background())
	s.Stop()
	s.Stop()

	count := syncer.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, count, syncer.calls.Load(), "no syncs after stop")
}

func TestRegisterSyncScheduler_TriggerBeforeStartDoesNotBlock(t *testing.T) {
	s := NewRegisterSyncScheduler(&countingSyncer{}, time.Hour, zap.NewNop())

	done := make(chan struct{})
	go func() {
		s.Trigger()
		s.Trigger()
		s.Trigger()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Trigger blocked")
	}
}
