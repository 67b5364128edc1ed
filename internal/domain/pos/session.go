package pos

import (
	"fmt"
	"strconv"
	"time"

	"github.com/erp/posterminal/internal/domain/shared"
)

// Session holds the set of open sale windows for one terminal. It is the only
// owner of SaleWindow state; all mutation goes through named operations so the
// invariants hold: at least one window always exists, ids are unique, and the
// active id always refers to an existing window.
type Session struct {
	windows  []*SaleWindow
	activeID string
	lastID   int64 // last issued window id, for monotonic generation
}

// WindowPatch carries the partial fields merged by UpdateWindow.
// Nil fields are left untouched.
type WindowPatch struct {
	Name        *string
	CustomerRef *string
	Status      *WindowStatus
}

// NewSession creates a session with a single default window
func NewSession() *Session {
	s := &Session{}
	s.AddWindow()
	return s
}

// nextID issues a fresh window id. Ids are timestamp based and strictly
// monotonic so a burst of AddWindow calls within one millisecond still
// yields unique ids.
func (s *Session) nextID() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return fmt.Sprintf("%d", id)
}

// nextName picks a display name distinct from every existing window name
func (s *Session) nextName() string {
	for n := len(s.windows) + 1; ; n++ {
		name := fmt.Sprintf("Sale %d", n)
		if s.findByName(name) == nil {
			return name
		}
	}
}

func (s *Session) findByName(name string) *SaleWindow {
	for _, w := range s.windows {
		if w.Name == name {
			return w
		}
	}
	return nil
}

func (s *Session) indexOf(id string) int {
	for i, w := range s.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// AddWindow appends a new sale window and makes it the active one.
// It always succeeds.
func (s *Session) AddWindow() *SaleWindow {
	w := &SaleWindow{
		ID:        s.nextID(),
		Name:      s.nextName(),
		Items:     []LineItem{},
		Status:    WindowStatusOpen,
		CreatedAt: time.Now(),
	}
	s.windows = append(s.windows, w)
	s.activeID = w.ID
	return w
}

// Window returns the window matching id, or nil
func (s *Session) Window(id string) *SaleWindow {
	if i := s.indexOf(id); i >= 0 {
		return s.windows[i]
	}
	return nil
}

// Windows returns the windows in insertion order
func (s *Session) Windows() []*SaleWindow {
	return s.windows
}

// ActiveID returns the id of the active window
func (s *Session) ActiveID() string {
	return s.activeID
}

// Activate makes the window matching id the active one
func (s *Session) Activate(id string) error {
	if s.indexOf(id) < 0 {
		return shared.ErrWindowNotFound
	}
	s.activeID = id
	return nil
}

// UpdateWindow merges partial fields into the window matching id.
// An unknown id is a silent no-op, not an error; callers check existence
// through Window first when they care.
func (s *Session) UpdateWindow(id string, patch WindowPatch) {
	w := s.Window(id)
	if w == nil {
		return
	}
	if patch.Name != nil {
		w.Name = *patch.Name
	}
	if patch.CustomerRef != nil {
		w.CustomerRef = *patch.CustomerRef
	}
	if patch.Status != nil && w.Status.CanTransitionTo(*patch.Status) {
		w.Status = *patch.Status
	}
}

// CloseWindow removes the window matching id. If it was the active window,
// activation falls to the adjacent window by index. Closing the last window
// yields exactly one fresh default window: the session never reaches an
// empty window set.
func (s *Session) CloseWindow(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return shared.ErrWindowNotFound
	}

	wasActive := s.windows[i].ID == s.activeID
	s.windows = append(s.windows[:i], s.windows[i+1:]...)

	if len(s.windows) == 0 {
		s.AddWindow()
		return nil
	}
	if wasActive {
		if i >= len(s.windows) {
			i = len(s.windows) - 1
		}
		s.activeID = s.windows[i].ID
	}
	return nil
}

// Snapshot is the serializable mirror of a session, written to the local
// store so a restart restores in-progress sales.
type Snapshot struct {
	Windows  []*SaleWindow `json:"windows"`
	ActiveID string        `json:"active_id"`
	LastID   int64         `json:"last_id"`
}

// Snapshot captures the full session state
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Windows:  s.windows,
		ActiveID: s.activeID,
		LastID:   s.lastID,
	}
}

// Restore replaces the entire collection atomically with the snapshot
// contents. A snapshot without windows restores to a single default window.
func (s *Session) Restore(snap Snapshot) {
	s.windows = snap.Windows
	s.activeID = snap.ActiveID
	s.lastID = snap.LastID

	if len(s.windows) == 0 {
		s.windows = nil
		s.AddWindow()
		return
	}
	if s.indexOf(s.activeID) < 0 {
		s.activeID = s.windows[0].ID
	}
	for _, w := range s.windows {
		if w.Items == nil {
			w.Items = []LineItem{}
		}
		// Snapshots from older terminals may predate last_id tracking;
		// keep id generation monotonic past every restored id.
		if id, err := strconv.ParseInt(w.ID, 10, 64); err == nil && id > s.lastID {
			s.lastID = id
		}
	}
}
