// Package store holds the process-wide traceability state: crops, users,
// the provenance ledger and the active session. All mutations go through
// the Store, run to completion under one lock, and produce an immutable
// snapshot for subscribers.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/farmchainx/trace-engine/internal/model"
	"github.com/farmchainx/trace-engine/internal/snapshot"
)

// Notification is a transient user-facing message queued by mutations.
type Notification struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// State is one committed snapshot of the engine. Subscribers and callers
// always receive deep copies; the store never hands out its own slices.
type State struct {
	Session       *model.User              `json:"user"`
	Crops         []model.Crop             `json:"crops"`
	Users         []model.User             `json:"users"`
	Ledger        []model.TransactionEvent `json:"transactions"`
	DarkMode      bool                     `json:"darkMode"`
	Notifications []Notification           `json:"notifications"`
	Loading       bool                     `json:"-"`
}

func (s State) clone() State {
	cp := s
	if s.Session != nil {
		u := *s.Session
		cp.Session = &u
	}
	cp.Crops = make([]model.Crop, len(s.Crops))
	for i, c := range s.Crops {
		cp.Crops[i] = c.Clone()
	}
	cp.Users = append([]model.User(nil), s.Users...)
	cp.Ledger = append([]model.TransactionEvent(nil), s.Ledger...)
	cp.Notifications = append([]Notification(nil), s.Notifications...)
	return cp
}

// Store is the single source of truth. Construct with New, inject by
// reference into every consumer; there are no package-level globals.
type Store struct {
	mu        sync.Mutex
	state     State
	snapshots snapshot.Store
	logger    *zap.Logger
	subs      map[int]func(State)
	nextSub   int
	nowFn     func() time.Time
	idFn      func() string
}

// New constructs an empty store. snapshots may be nil (no persistence).
func New(snapshots snapshot.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		snapshots: snapshots,
		logger:    logger,
		subs:      map[int]func(State){},
		nowFn:     func() time.Time { return time.Now().UTC() },
		idFn:      model.NewID,
	}
	return s
}

// Load restores the persisted snapshot, or seeds demo users and ledger
// entries on first run. Call once at startup, before any mutation.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshots == nil {
		s.state = seedState()
		return nil
	}

	data, ok, err := s.snapshots.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		s.state = seedState()
		return nil
	}

	var restored State
	if err := json.Unmarshal(data, &restored); err != nil {
		s.logger.Warn("discarding unreadable snapshot", zap.Error(err))
		s.state = seedState()
		return nil
	}
	s.state = restored
	return nil
}

// Subscribe registers fn to be called with every committed snapshot. The
// returned func removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// mutate applies fn under the store lock, then persists and notifies
// outside the lock so subscribers may read the store.
func (s *Store) mutate(fn func(*State)) State {
	s.mu.Lock()
	fn(&s.state)
	committed := s.state.clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	s.persist(committed)
	for _, sub := range subs {
		sub(committed.clone())
	}
	return committed
}

// persist serializes the whole snapshot after every mutation. Writes are
// synchronous and unbatched; errors are logged and never fail the mutation.
func (s *Store) persist(committed State) {
	if s.snapshots == nil {
		return
	}
	data, err := json.Marshal(committed)
	if err != nil {
		s.logger.Error("failed to serialize state snapshot", zap.Error(err))
		return
	}
	if err := s.snapshots.Save(context.Background(), data); err != nil {
		s.logger.Error("failed to persist state snapshot", zap.Error(err))
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Crops returns a copy of the crop collection.
func (s *Store) Crops() []model.Crop {
	return s.Snapshot().Crops
}

// Ledger returns a copy of the full transaction ledger.
func (s *Store) Ledger() []model.TransactionEvent {
	return s.Snapshot().Ledger
}

// Users returns a copy of the user accounts.
func (s *Store) Users() []model.User {
	return s.Snapshot().Users
}

// Session returns the active user, if any.
func (s *Store) Session() *model.User {
	return s.Snapshot().Session
}

// FindCrop locates a crop by id in the committed state.
func (s *Store) FindCrop(id string) (model.Crop, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.state.Crops {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return model.Crop{}, false
}

// SetSession replaces the active user. Credential and role checks belong to
// the auth collaborator; none happen here.
func (s *Store) SetSession(user model.User) {
	s.mutate(func(st *State) { st.Session = &user })
}

// ClearSession logs the active user out.
func (s *Store) ClearSession() {
	s.mutate(func(st *State) { st.Session = nil })
}

// SetLoading flips the transient loading flag; it is never persisted.
func (s *Store) SetLoading(loading bool) {
	s.mutate(func(st *State) { st.Loading = loading })
}

// ToggleDarkMode flips the persisted display preference.
func (s *Store) ToggleDarkMode() bool {
	return s.mutate(func(st *State) { st.DarkMode = !st.DarkMode }).DarkMode
}

// RecordCropUpload appends a new crop record, assigning a fresh id when the
// draft has none. Existing records are never touched.
func (s *Store) RecordCropUpload(draft model.Crop) model.Crop {
	var finalized model.Crop
	s.mutate(func(st *State) {
		if draft.ID == "" {
			draft.ID = s.idFn()
		}
		finalized = draft.Clone()
		st.Crops = append(st.Crops, draft.Clone())
	})
	return finalized
}

// UpdateCrop applies a shallow field merge to the crop with patch.ID.
// Unset patch fields retain previous values. An unknown id is a no-op: the
// update is dropped, false is returned and the miss is logged so lost
// updates stay observable.
func (s *Store) UpdateCrop(patch CropPatch) (model.Crop, bool) {
	var (
		updated model.Crop
		found   bool
	)
	s.mutate(func(st *State) {
		for i := range st.Crops {
			if st.Crops[i].ID == patch.ID {
				st.Crops[i] = patch.apply(st.Crops[i])
				updated = st.Crops[i].Clone()
				found = true
				return
			}
		}
	})
	if !found {
		s.logger.Warn("update for unknown crop id dropped", zap.String("crop_id", patch.ID))
	}
	return updated, found
}

// ReplaceCropCollection swaps in a freshly reconciled crop list. Only the
// reconciliation refresher should call this.
func (s *Store) ReplaceCropCollection(crops []model.Crop) {
	s.mutate(func(st *State) {
		st.Crops = make([]model.Crop, len(crops))
		for i, c := range crops {
			st.Crops[i] = c.Clone()
		}
	})
}

// AppendLedgerEntry appends a provenance event, assigning its id and
// timestamp when empty. Prior entries are never reordered or removed.
func (s *Store) AppendLedgerEntry(event model.TransactionEvent) model.TransactionEvent {
	var finalized model.TransactionEvent
	s.mutate(func(st *State) {
		if event.ID == "" {
			event.ID = s.idFn()
		}
		if event.Timestamp == "" {
			event.Timestamp = s.nowFn().Format(time.RFC3339)
		}
		finalized = event
		st.Ledger = append(st.Ledger, event)
	})
	return finalized
}

// LedgerFor returns the ledger entries referencing one crop, in append order.
func (s *Store) LedgerFor(cropID string) []model.TransactionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.TransactionEvent
	for _, e := range s.state.Ledger {
		if e.CropID == cropID {
			out = append(out, e)
		}
	}
	return out
}

// AddUser registers an account, assigning an id when absent.
func (s *Store) AddUser(user model.User) model.User {
	var finalized model.User
	s.mutate(func(st *State) {
		if user.ID == "" {
			user.ID = s.idFn()
		}
		finalized = user
		st.Users = append(st.Users, user)
	})
	return finalized
}

// UpdateUser merges a patch into the account with patch.ID; unknown ids are
// a logged no-op, matching UpdateCrop.
func (s *Store) UpdateUser(patch UserPatch) (model.User, bool) {
	var (
		updated model.User
		found   bool
	)
	s.mutate(func(st *State) {
		for i := range st.Users {
			if st.Users[i].ID == patch.ID {
				st.Users[i] = patch.apply(st.Users[i])
				updated = st.Users[i]
				found = true
				return
			}
		}
	})
	if !found {
		s.logger.Warn("update for unknown user id dropped", zap.String("user_id", patch.ID))
	}
	return updated, found
}

// RemoveUser deletes an account by id.
func (s *Store) RemoveUser(id string) bool {
	var removed bool
	s.mutate(func(st *State) {
		for i := range st.Users {
			if st.Users[i].ID == id {
				st.Users = append(st.Users[:i], st.Users[i+1:]...)
				removed = true
				return
			}
		}
	})
	return removed
}

// SetUsers replaces the account collection with a fetched list; nil input
// keeps the current accounts.
func (s *Store) SetUsers(users []model.User) {
	if users == nil {
		return
	}
	s.mutate(func(st *State) {
		st.Users = append([]model.User(nil), users...)
	})
}

// PushNotification queues a transient message for the UI.
func (s *Store) PushNotification(n Notification) Notification {
	var finalized Notification
	s.mutate(func(st *State) {
		if n.ID == "" {
			n.ID = s.idFn()
		}
		if n.CreatedAt == "" {
			n.CreatedAt = s.nowFn().Format(time.RFC3339)
		}
		finalized = n
		st.Notifications = append(st.Notifications, n)
	})
	return finalized
}

// DismissNotification drops a queued message by id.
func (s *Store) DismissNotification(id string) {
	s.mutate(func(st *State) {
		kept := st.Notifications[:0]
		for _, n := range st.Notifications {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		st.Notifications = kept
	})
}

func seedState() State {
	return State{
		Users: []model.User{
			{ID: "1", Name: "John Farmer", Role: model.RoleFarmer, Email: "john@farm.com", IsActive: true},
			{ID: "2", Name: "Sarah Distributor", Role: model.RoleDistributor, Email: "sarah@dist.com", IsActive: true},
			{ID: "3", Name: "Mike Retailer", Role: model.RoleRetailer, Email: "mike@retail.com", IsActive: true},
			{ID: "4", Name: "Lisa Consumer", Role: model.RoleConsumer, Email: "lisa@consumer.com", IsActive: true},
			{ID: "5", Name: "Admin User", Role: model.RoleAdmin, Email: "admin@example.com", IsActive: true},
		},
		Ledger: []model.TransactionEvent{
			{
				ID:        "1",
				Type:      model.EventCropUpload,
				CropID:    "1",
				UserID:    "1",
				UserName:  "John Farmer",
				Timestamp: "2024-01-15T10:00:00Z",
				Details:   "Uploaded Organic Tomatoes",
			},
			{
				ID:        "2",
				Type:      model.EventForwardToRetailer,
				CropID:    "2",
				UserID:    "2",
				UserName:  "Sarah Distributor",
				Timestamp: "2024-01-16T14:30:00Z",
				Details:   "Forwarded Fresh Lettuce to retailer",
			},
		},
	}
}
