package usage

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ctxmeter/ctxmeter/platform"
)

// Store owns one Tracker per live conversation context, keyed by the
// caller's context id (a tab or conversation identifier). It replaces
// ambient per-tab globals with an explicit keyed lifecycle:
// create on platform detection, reset on navigation, destroy on close.
type Store struct {
	mu       sync.Mutex
	trackers map[string]*Tracker
	opts     Options
}

// NewStore creates a store. All trackers it creates share the options.
func NewStore(opts Options) *Store {
	return &Store{
		trackers: make(map[string]*Tracker),
		opts:     opts,
	}
}

// Create returns the tracker for id, creating it if needed. An empty id
// gets a generated one (readable from Tracker.ID). The platform is fixed
// at creation and ignored on subsequent calls for the same id.
func (s *Store) Create(id string, p platform.Platform) *Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	if t, ok := s.trackers[id]; ok {
		return t
	}
	t := NewTracker(id, p, s.opts)
	s.trackers[id] = t
	return t
}

// Get returns the tracker for id, if it exists.
func (s *Store) Get(id string) (*Tracker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trackers[id]
	return t, ok
}

// Reset resets the tracker for id, returning false if it does not exist.
func (s *Store) Reset(id string) bool {
	s.mu.Lock()
	t, ok := s.trackers[id]
	s.mu.Unlock()
	if !ok {
		return false
	}
	t.Reset()
	return true
}

// Destroy removes the tracker for a closed browsing context.
func (s *Store) Destroy(id string) {
	s.mu.Lock()
	_, ok := s.trackers[id]
	delete(s.trackers, id)
	s.mu.Unlock()

	if ok && s.opts.Metrics != nil {
		s.opts.Metrics.ForgetConversation(id)
	}
}

// Len returns the number of live conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trackers)
}

// Snapshots returns the current state of every live conversation.
func (s *Store) Snapshots() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots := make([]Snapshot, 0, len(s.trackers))
	for _, t := range s.trackers {
		snapshots = append(snapshots, t.Snapshot())
	}
	return snapshots
}
