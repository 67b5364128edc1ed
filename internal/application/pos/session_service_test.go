package pos

import (
	"context"
	"testing"

	"github.com/erp/posterminal/internal/domain/pos"
	"github.com/erp/posterminal/internal/domain/shared"
	"github.com/erp/posterminal/internal/infrastructure/localstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSessionService() (*SessionService, shared.LocalStore) {
	store := localstore.NewMemoryStore()
	return NewSessionService(store, zap.NewNop()), store
}

func TestSessionService_PersistsAcrossRestart(t *testing.T) {
	svc, store := newSessionService()
	ctx := context.Background()

	w := svc.AddWindow(ctx)
	require.NoError(t, svc.AddItem(ctx, w.ID, pos.LineItem{
		ProductRef: "P-1",
		UnitPrice:  decimal.NewFromInt(5),
		Quantity:   decimal.NewFromInt(2),
	}))

	// A new service over the same store is the terminal restarting
	restarted := NewSessionService(store, zap.NewNop())
	restarted.InitializeFromStorage(ctx)

	require.Len(t, restarted.Windows(), 2)
	restored, ok := restarted.Window(w.ID)
	require.True(t, ok)
	assert.Len(t, restored.Items, 1)
	assert.Equal(t, w.ID, restarted.ActiveID())
}

func TestSessionService_InitializeFromStorage_MissingSnapshot(t *testing.T) {
	svc, _ := newSessionService()
	svc.InitializeFromStorage(context.Background())

	assert.Len(t, svc.Windows(), 1, "default session survives an empty store")
}

func TestSessionService_InitializeFromStorage_CorruptSnapshot(t *testing.T) {
	store := localstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), shared.KeySaleWindows, []byte("{broken")))

	svc := NewSessionService(store, zap.NewNop())
	svc.InitializeFromStorage(context.Background())

	assert.Len(t, svc.Windows(), 1, "corrupt snapshot is discarded")
}

func TestSessionService_UpdateWindow_UnknownIDSilent(t *testing.T) {
	svc, _ := newSessionService()
	before := svc.Windows()

	name := "ghost"
	svc.UpdateWindow(context.Background(), "missing", pos.WindowPatch{Name: &name})

	assert.Equal(t, before, svc.Windows())
}

func TestSessionService_ItemOperations(t *testing.T) {
	svc, _ := newSessionService()
	ctx := context.Background()
	id := svc.ActiveID()

	require.NoError(t, svc.AddItem(ctx, id, pos.LineItem{
		ProductRef: "P-1",
		UnitPrice:  decimal.NewFromInt(3),
		Quantity:   decimal.NewFromInt(1),
	}))
	require.NoError(t, svc.UpdateItemQuantity(ctx, id, "P-1", decimal.NewFromInt(4)))

	w, ok := svc.Window(id)
	require.True(t, ok)
	require.Len(t, w.Items, 1)
	assert.True(t, w.Items[0].Quantity.Equal(decimal.NewFromInt(4)))

	require.NoError(t, svc.RemoveItem(ctx, id, "P-1"))
	w, _ = svc.Window(id)
	assert.Empty(t, w.Items)
}

func TestSessionService_ItemOperations_UnknownWindow(t *testing.T) {
	svc, _ := newSessionService()
	ctx := context.Background()

	item := pos.LineItem{ProductRef: "P-1", UnitPrice: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)}
	assert.ErrorIs(t, svc.AddItem(ctx, "missing", item), shared.ErrWindowNotFound)
	assert.ErrorIs(t, svc.UpdateItemQuantity(ctx, "missing", "P-1", decimal.NewFromInt(1)), shared.ErrWindowNotFound)
	assert.ErrorIs(t, svc.RemoveItem(ctx, "missing", "P-1"), shared.ErrWindowNotFound)
	assert.ErrorIs(t, svc.SetWindowStatus(ctx, "missing", pos.WindowStatusPaid), shared.ErrWindowNotFound)
}

func TestSessionService_WindowReturnsCopy(t *testing.T) {
	svc, _ := newSessionService()
	ctx := context.Background()
	id := svc.ActiveID()

	require.NoError(t, svc.AddItem(ctx, id, pos.LineItem{
		ProductRef: "P-1",
		UnitPrice:  decimal.NewFromInt(1),
		Quantity:   decimal.NewFromInt(1),
	}))

	w, _ := svc.Window(id)
	w.Items[0].ProductRef = "mutated"
	w.Name = "mutated"

	fresh, _ := svc.Window(id)
	assert.Equal(t, "P-1", fresh.Items[0].ProductRef)
	assert.NotEqual(t, "mutated", fresh.Name)
}

func TestSessionService_Reset(t *testing.T) {
	svc, store := newSessionService()
	ctx := context.Background()

	svc.AddWindow(ctx)
	svc.Reset(ctx)

	assert.Len(t, svc.Windows(), 1)
	_, err := store.Get(ctx, shared.KeySaleWindows)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSessionService_CloseWindow_NeverEmpty(t *testing.T) {
	svc, _ := newSessionService()
	ctx := context.Background()

	require.NoError(t, svc.CloseWindow(ctx, svc.ActiveID()))
	assert.Len(t, svc.Windows(), 1)
}
