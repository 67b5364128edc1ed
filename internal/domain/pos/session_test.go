package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_HasDefaultWindow(t *testing.T) {
	s := NewSession()

	require.Len(t, s.Windows(), 1)
	w := s.Windows()[0]
	assert.Equal(t, "Sale 1", w.Name)
	assert.Equal(t, WindowStatusOpen, w.Status)
	assert.Equal(t, w.ID, s.ActiveID())
	assert.NotNil(t, w.Items)
}

func TestSession_AddWindow(t *testing.T) {
	s := NewSession()

	w2 := s.AddWindow()
	w3 := s.AddWindow()

	assert.Len(t, s.Windows(), 3)
	assert.Equal(t, w3.ID, s.ActiveID(), "new window becomes active")
	assert.Equal(t, "Sale 2", w2.Name)
	assert.Equal(t, "Sale 3", w3.Name)
}

func TestSession_AddWindow_UniqueMonotonicIDs(t *testing.T) {
	s := NewSession()

	seen := map[string]bool{s.Windows()[0].ID: true}
	prev := s.Windows()[0].ID
	for i := 0; i < 50; i++ {
		w := s.AddWindow()
		assert.False(t, seen[w.ID], "duplicate id %s", w.ID)
		assert.Greater(t, w.ID, prev)
		seen[w.ID] = true
		prev = w.ID
	}
}

func TestSession_AddWindow_NameNeverCollides(t *testing.T) {
	s := NewSession()
	s.AddWindow() // Sale 2
	s.AddWindow() // Sale 3

	// Removing a middle window must not make the next name collide
	require.NoError(t, s.CloseWindow(s.Windows()[1].ID))
	w := s.AddWindow()

	names := map[string]int{}
	for _, win := range s.Windows() {
		names[win.Name]++
	}
	assert.Equal(t, 1, names[w.Name])
}

func TestSession_Activate(t *testing.T) {
	s := NewSession()
	first := s.Windows()[0]
	s.AddWindow()

	require.NoError(t, s.Activate(first.ID))
	assert.Equal(t, first.ID, s.ActiveID())

	assert.Error(t, s.Activate("missing"))
	assert.Equal(t, first.ID, s.ActiveID(), "failed activation keeps previous active id")
}

func TestSession_UpdateWindow(t *testing.T) {
	s := NewSession()
	w := s.Windows()[0]

	name := "Table 4"
	customer := "C-9"
	status := WindowStatusPendingPayment
	s.UpdateWindow(w.ID, WindowPatch{Name: &name, CustomerRef: &customer, Status: &status})

	assert.Equal(t, "Table 4", w.Name)
	assert.Equal(t, "C-9", w.CustomerRef)
	assert.Equal(t, WindowStatusPendingPayment, w.Status)
}

func TestSession_UpdateWindow_PartialPatch(t *testing.T) {
	s := NewSession()
	w := s.Windows()[0]
	original := w.Name

	customer := "C-1"
	s.UpdateWindow(w.ID, WindowPatch{CustomerRef: &customer})

	assert.Equal(t, original, w.Name, "nil fields stay untouched")
	assert.Equal(t, "C-1", w.CustomerRef)
}

func TestSession_UpdateWindow_UnknownIDIsSilentNoOp(t *testing.T) {
	s := NewSession()
	before := *s.Windows()[0]

	name := "ghost"
	s.UpdateWindow("does-not-exist", WindowPatch{Name: &name})

	assert.Equal(t, before.Name, s.Windows()[0].Name)
	assert.Len(t, s.Windows(), 1)
}

func TestSession_CloseWindow_ActivatesAdjacent(t *testing.T) {
	s := NewSession()
	w1 := s.Windows()[0]
	w2 := s.AddWindow()
	w3 := s.AddWindow()

	// Closing the active middle window activates the window now at its index
	require.NoError(t, s.Activate(w2.ID))
	require.NoError(t, s.CloseWindow(w2.ID))
	assert.Equal(t, w3.ID, s.ActiveID())

	// Closing the active last window falls back to the previous index
	require.NoError(t, s.CloseWindow(w3.ID))
	assert.Equal(t, w1.ID, s.ActiveID())
}

func TestSession_CloseWindow_InactiveKeepsActive(t *testing.T) {
	s := NewSession()
	w1 := s.Windows()[0]
	w2 := s.AddWindow()

	require.NoError(t, s.CloseWindow(w1.ID))
	assert.Equal(t, w2.ID, s.ActiveID())
}

func TestSession_CloseWindow_LastWindowRecreatesDefault(t *testing.T) {
	s := NewSession()
	old := s.Windows()[0]

	require.NoError(t, s.CloseWindow(old.ID))

	require.Len(t, s.Windows(), 1)
	fresh := s.Windows()[0]
	assert.NotEqual(t, old.ID, fresh.ID)
	assert.Empty(t, fresh.Items)
	assert.Equal(t, fresh.ID, s.ActiveID())
}

func TestSession_CloseWindow_UnknownID(t *testing.T) {
	s := NewSession()
	assert.Error(t, s.CloseWindow("missing"))
	assert.Len(t, s.Windows(), 1)
}

func TestSession_SnapshotRestore_RoundTrip(t *testing.T) {
	s := NewSession()
	w2 := s.AddWindow()
	require.NoError(t, s.Window(w2.ID).AddItem(testItem("P-1", 5, 2)))
	require.NoError(t, s.Activate(w2.ID))

	snap := s.Snapshot()

	restored := NewSession()
	restored.Restore(snap)

	require.Len(t, restored.Windows(), 2)
	assert.Equal(t, w2.ID, restored.ActiveID())
	assert.Len(t, restored.Window(w2.ID).Items, 1)
}

func TestSession_Restore_EmptySnapshot(t *testing.T) {
	s := NewSession()
	s.AddWindow()

	s.Restore(Snapshot{})

	require.Len(t, s.Windows(), 1)
	assert.Equal(t, s.Windows()[0].ID, s.ActiveID())
}

func TestSession_Restore_DanglingActiveID(t *testing.T) {
	s := NewSession()
	snap := s.Snapshot()
	snap.ActiveID = "gone"

	s.Restore(snap)

	assert.Equal(t, s.Windows()[0].ID, s.ActiveID())
}

func TestSession_Restore_KeepsIDsMonotonic(t *testing.T) {
	s := NewSession()
	snap := s.Snapshot()
	snap.LastID = 0 // older snapshot without last_id tracking

	s.Restore(snap)
	w := s.AddWindow()

	assert.Greater(t, w.ID, snap.Windows[0].ID)
}
