// Package watchlist maintains the user's persisted movie list. The
// in-memory list is the source of truth; every mutation is followed
// synchronously by a full write of the encoded list to the state store.
package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"filmera/internal/database"
	"filmera/models"
)

// StateKey is the single state-store key holding the encoded watchlist.
const StateKey = "watchlist"

var (
	// ErrDuplicate indicates the key is already in the watchlist.
	ErrDuplicate = errors.New("movie already in watchlist")
	// ErrInvalidRating indicates a rating outside 1..5 (0 clears).
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type stateStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

type recordClient interface {
	ByID(ctx context.Context, key string) (*models.RecordMovie, error)
}

// Service owns the watchlist. All operations are safe for concurrent
// use; mutations hold the lock across the read-modify-persist sequence
// so a second mutation can never interleave mid-write.
type Service struct {
	mu      sync.Mutex
	entries []models.WatchlistEntry
	store   stateStore
	records recordClient
	now     func() time.Time
}

// NewService loads the persisted watchlist and returns the service.
// Absent or corrupt persisted state yields an empty list, never an
// initialization failure.
func NewService(store stateStore, records recordClient) *Service {
	s := &Service{
		store:   store,
		records: records,
		now:     time.Now,
	}
	s.load()
	return s
}

func (s *Service) load() {
	data, err := s.store.Get(StateKey)
	if err != nil {
		if !errors.Is(err, database.ErrStateNotFound) {
			log.Printf("[watchlist] load state: %v", err)
		}
		return
	}
	var entries []models.WatchlistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("[watchlist] corrupt state, starting empty: %v", err)
		return
	}
	s.entries = entries
}

// persist writes the whole list. Callers must hold the lock.
func (s *Service) persist() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if err := s.store.Put(StateKey, data); err != nil {
		return fmt.Errorf("persist watchlist: %w", err)
	}
	return nil
}

func (s *Service) indexOf(key string) int {
	for i, entry := range s.entries {
		if entry.Key() == key {
			return i
		}
	}
	return -1
}

// List returns a snapshot copy in insertion order, newest first.
func (s *Service) List() []models.WatchlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WatchlistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Contains reports membership without side effects.
func (s *Service) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(key) >= 0
}

// Add fetches the full record for key and prepends a new entry with
// default user fields. A provider lookup miss or a duplicate key leaves
// the list untouched.
func (s *Service) Add(ctx context.Context, key string) (*models.WatchlistEntry, error) {
	s.mu.Lock()
	dup := s.indexOf(key) >= 0
	s.mu.Unlock()
	if dup {
		return nil, ErrDuplicate
	}

	movie, err := s.records.ByID(ctx, key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the lock; a concurrent Add may have won the race
	// while the record fetch was in flight.
	if s.indexOf(key) >= 0 {
		return nil, ErrDuplicate
	}

	entry := models.WatchlistEntry{
		RecordMovie: *movie,
		IsWatched:   false,
		Notes:       "",
		AddedAt:     s.now(),
	}
	s.entries = append([]models.WatchlistEntry{entry}, s.entries...)
	if err := s.persist(); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Remove deletes the matching entry. Removing an absent key is a
// silent no-op.
func (s *Service) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return nil
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return s.persist()
}

// ToggleWatched flips the watched flag on the matching entry. Absent
// keys are a no-op.
func (s *Service) ToggleWatched(key string) (*models.WatchlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return nil, nil
	}
	s.entries[i].IsWatched = !s.entries[i].IsWatched
	if err := s.persist(); err != nil {
		return nil, err
	}
	entry := s.entries[i]
	return &entry, nil
}

// UpdateDetails sets the rating and notes on the matching entry. A
// rating of 0 clears it; anything outside 1..5 is rejected. Absent keys
// are a no-op.
func (s *Service) UpdateDetails(key string, rating int, notes string) (*models.WatchlistEntry, error) {
	if rating < 0 || rating > 5 {
		return nil, ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return nil, nil
	}
	s.entries[i].Rating = rating
	s.entries[i].Notes = notes
	if err := s.persist(); err != nil {
		return nil, err
	}
	entry := s.entries[i]
	return &entry, nil
}
