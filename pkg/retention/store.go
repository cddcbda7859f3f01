package retention

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rzbill/logtap/pkg/attribution"
	"github.com/rzbill/logtap/pkg/console"
	"github.com/rzbill/logtap/pkg/id"
)

// Policy bounds the store. Replacing a policy does not re-evaluate stored
// entries immediately; the new bounds apply on the next append.
type Policy struct {
	// MaxEntries is the upper bound on live entries. Must be positive.
	MaxEntries int
	// MaxAgeDays expires entries older than now minus this many days.
	// Zero means entries survive only until the next append.
	MaxAgeDays int
}

// Validate checks the policy bounds.
func (p Policy) Validate() error {
	if p.MaxEntries <= 0 {
		return fmt.Errorf("retention: MaxEntries must be > 0, got %d", p.MaxEntries)
	}
	if p.MaxAgeDays < 0 {
		return fmt.Errorf("retention: MaxAgeDays must be >= 0, got %d", p.MaxAgeDays)
	}
	return nil
}

var ErrNotFound = errors.New("retention: entry not found")

// Store is an ordered, bounded collection of captured entries. Insertion
// order is temporal order since entries are appended in call order. All
// methods are safe for concurrent use; rotation-then-insert is a
// read-modify-write sequence, so Append holds the lock for its duration.
type Store struct {
	mu       sync.Mutex
	policy   Policy
	entries  []Entry
	gen      *id.Generator
	now      func() time.Time
	notifyCh chan struct{}
}

// NewStore creates a Store with the given policy.
func NewStore(policy Policy) (*Store, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		policy:   policy,
		gen:      id.NewGenerator(),
		now:      time.Now,
		notifyCh: make(chan struct{}),
	}, nil
}

// Append applies expiry then rotation, inserts a new entry for the call and
// returns it. Eviction is silent; callers needing eviction notification must
// poll. After Append the live count never exceeds MaxEntries and every live
// entry is younger than MaxAgeDays.
func (s *Store) Append(channel console.Channel, source attribution.Source, data []any) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	// Expiry first: drop everything older than the age threshold. Entries
	// are time-ordered, so expired ones form a prefix.
	cutoff := now.AddDate(0, 0, -s.policy.MaxAgeDays)
	drop := 0
	for drop < len(s.entries) && s.entries[drop].Time.Before(cutoff) {
		drop++
	}
	if drop > 0 {
		s.entries = append(s.entries[:0], s.entries[drop:]...)
	}

	// Rotation: make room so the count stays bounded after insertion.
	if excess := len(s.entries) - s.policy.MaxEntries + 1; excess > 0 {
		s.entries = append(s.entries[:0], s.entries[excess:]...)
	}

	e := Entry{
		ID:      s.gen.Next(),
		Channel: channel,
		Time:    now,
		Source:  source,
		Data:    data,
	}
	s.entries = append(s.entries, e)

	// wake blocked readers
	close(s.notifyCh)
	s.notifyCh = make(chan struct{})
	return e
}

// List returns the live entries in insertion order without mutation.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

// ListSince returns entries strictly after the given ID. A zero ID returns
// everything.
func (s *Store) ListSince(after id.ID) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if after.IsZero() {
		return append([]Entry(nil), s.entries...)
	}
	// Entries are ID-ordered; find the first one past the cursor.
	i := 0
	for i < len(s.entries) && s.entries[i].ID.Compare(after) <= 0 {
		i++
	}
	return append([]Entry(nil), s.entries[i:]...)
}

// Get returns the entry with the given ID.
func (s *Store) Get(eid id.ID) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == eid {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// GroupBySource projects live entries into a map keyed by source name,
// preserving insertion order within each group. Entries with an absent
// source are omitted.
func (s *Store) GroupBySource() map[string][]Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]Entry)
	for _, e := range s.entries {
		if e.Source.Name == "" {
			continue
		}
		out[e.Source.Name] = append(out[e.Source.Name], e)
	}
	return out
}

// Len returns the live entry count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Policy returns the current policy.
func (s *Store) Policy() Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy
}

// SetPolicy replaces the policy. Already-stored entries are re-evaluated on
// the next append, not immediately.
func (s *Store) SetPolicy(policy Policy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.policy = policy
	s.mu.Unlock()
	return nil
}
