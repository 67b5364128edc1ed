package draft

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/erp/posterminal/internal/domain/shared"
	"github.com/erp/posterminal/internal/infrastructure/localstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type formData struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

func newTestStore(t *testing.T, store shared.LocalStore, opts ...Option) *Store[formData] {
	t.Helper()
	return NewStore[formData](context.Background(), store, "test_draft", zap.NewNop(), opts...)
}

// waitForDraft polls until a write lands or the deadline passes
func waitForDraft(t *testing.T, kv shared.LocalStore) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if has, _ := kv.Has(context.Background(), "test_draft"); has {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("draft write did not arrive before deadline")
}

func TestStore_DebounceCoalescesBurst(t *testing.T) {
	kv := localstore.NewMemoryStore()
	s := newTestStore(t, kv, WithDebounce(30*time.Millisecond))

	// A typing burst: every change reschedules the write
	s.Update(formData{Name: "a"})
	s.Update(formData{Name: "ab"})
	s.Update(formData{Name: "abc"})

	has, err := kv.Has(context.Background(), "test_draft")
	require.NoError(t, err)
	assert.False(t, has, "no write before the debounce elapses")

	waitForDraft(t, kv)

	snap, ok := s.Load(context.Background())
	require.True(t, ok)
	assert.Equal(t, "abc", snap.Data.Name, "only the last value reaches storage")
	assert.False(t, snap.Timestamp.IsZero())
}

func TestStore_SaveNowFlushesImmediately(t *testing.T) {
	kv := localstore.NewMemoryStore()
	s := newTestStore(t, kv, WithDebounce(time.Hour))

	s.Update(formData{Name: "draft"})
	s.SaveNow()

	snap, ok := s.Load(context.Background())
	require.True(t, ok)
	assert.Equal(t, "draft", snap.Data.Name)
	assert.True(t, s.HasDraft())
}

func TestStore_SaveNowWithoutPendingIsNoOp(t *testing.T) {
	kv := localstore.NewMemoryStore()
	s := newTestStore(t, kv)

	s.SaveNow()

	has, err := kv.Has(context.Background(), "test_draft")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStore_DisabledIgnoresUpdates(t *testing.T) {
	kv := localstore.NewMemoryStore()
	s := newTestStore(t, kv, WithEnabled(false), WithDebounce(10*time.Millisecond))

	s.Update(formData{Name: "ignored"})
	s.SaveNow()
	time.Sleep(50 * time.Millisecond)

	has, err := kv.Has(context.Background(), "test_draft")
	require.NoError(t, err)
	assert.False(t, has)
	assert.False(t, s.HasDraft())
}

func TestStore_DisableCancelsScheduledWrite(t *testing.T) {
	kv := localstore.NewMemoryStore()
	s := newTestStore(t, kv, WithDebounce(30*time.Millisecond))

	s.Update(formData{Name: "pending"})
	s.SetEnabled(false)
	time.Sleep(80 * time.Millisecond)

	has, err := kv.Has(context.Background(), "test_draft")
	require.NoError(t, err)
	assert.False(t, has, "disabling drops the pending write")
}

func TestStore_HasDraftAtMount(t *testing.T) {
	kv := localstore.NewMemoryStore()

	first := newTestStore(t, kv)
	first.Update(formData{Name: "left behind"})
	first.SaveNow()

	remounted := newTestStore(t, kv)
	assert.True(t, remounted.HasDraft())

	disabled := newTestStore(t, kv, WithEnabled(false))
	assert.False(t, disabled.HasDraft(), "a disabled store never offers recovery")
}

func TestStore_LoadMissingDraft(t *testing.T) {
	kv := localstore.NewMemoryStore()
	s := newTestStore(t, kv)

	_, ok := s.Load(context.Background())
	assert.False(t, ok)
	assert.False(t, s.HasDraft())
}

func TestStore_LoadCorruptDraft(t *testing.T) {
	kv := localstore.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), "test_draft", []byte("{not json")))

	s := newTestStore(t, kv)
	_, ok := s.Load(context.Background())
	assert.False(t, ok)
	assert.False(t, s.HasDraft())
}

func TestStore_Clear(t *testing.T) {
	kv := localstore.NewMemoryStore()
	s := newTestStore(t, kv)

	s.Update(formData{Name: "to be cleared"})
	s.SaveNow()
	require.True(t, s.HasDraft())

	s.Clear(context.Background())

	assert.False(t, s.HasDraft())
	has, err := kv.Has(context.Background(), "test_draft")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestManager_OneStorePerKey(t *testing.T) {
	kv := localstore.NewMemoryStore()
	m := NewManager(kv, 10*time.Millisecond, zap.NewNop())
	defer m.Close()

	ctx := context.Background()
	a := m.Get(ctx, "sale_form")
	b := m.Get(ctx, "sale_form")
	c := m.Get(ctx, "settings_form")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestManager_RoundTrip(t *testing.T) {
	kv := localstore.NewMemoryStore()
	m := NewManager(kv, time.Hour, zap.NewNop())
	defer m.Close()

	ctx := context.Background()
	payload := json.RawMessage(`{"field":"value"}`)
	m.Get(ctx, "wizard").Update(payload)
	m.Get(ctx, "wizard").SaveNow()

	snap, ok := m.Get(ctx, "wizard").Load(ctx)
	require.True(t, ok)
	assert.JSONEq(t, `{"field":"value"}`, string(snap.Data))
}
