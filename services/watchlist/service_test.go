package watchlist

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"filmera/internal/database"
	"filmera/models"
	"filmera/services/records"
)

type memoryStore struct {
	values map[string][]byte
	puts   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}}
}

func (m *memoryStore) Get(key string) ([]byte, error) {
	value, ok := m.values[key]
	if !ok {
		return nil, database.ErrStateNotFound
	}
	return value, nil
}

func (m *memoryStore) Put(key string, value []byte) error {
	m.puts++
	m.values[key] = append([]byte(nil), value...)
	return nil
}

type fakeRecords struct {
	movies map[string]models.RecordMovie
}

func (f *fakeRecords) ByID(ctx context.Context, key string) (*models.RecordMovie, error) {
	movie, ok := f.movies[key]
	if !ok {
		return nil, fmt.Errorf("record %q: %w", key, records.ErrNotFound)
	}
	return &movie, nil
}

func testRecords() *fakeRecords {
	return &fakeRecords{movies: map[string]models.RecordMovie{
		"tt0113277": {ImdbID: "tt0113277", Title: "Heat", Year: "1995", Poster: "N/A", Response: "True"},
		"tt0133093": {ImdbID: "tt0133093", Title: "The Matrix", Year: "1999", Response: "True"},
	}}
}

func TestAddThenContains(t *testing.T) {
	svc := NewService(newMemoryStore(), testRecords())

	if svc.Contains("tt0113277") {
		t.Fatalf("expected empty watchlist")
	}

	entry, err := svc.Add(context.Background(), "tt0113277")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if entry.Title != "Heat" {
		t.Fatalf("expected full record on entry, got %+v", entry)
	}
	if entry.IsWatched || entry.Rating != 0 || entry.Notes != "" {
		t.Fatalf("expected default user fields, got %+v", entry)
	}
	if !svc.Contains("tt0113277") {
		t.Fatalf("expected membership after add")
	}

	if err := svc.Remove("tt0113277"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if svc.Contains("tt0113277") {
		t.Fatalf("expected no membership after remove")
	}
}

func TestAddDuplicateKeepsOneEntry(t *testing.T) {
	svc := NewService(newMemoryStore(), testRecords())

	if _, err := svc.Add(context.Background(), "tt0113277"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.Add(context.Background(), "tt0113277"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if got := len(svc.List()); got != 1 {
		t.Fatalf("expected exactly one entry, got %d", got)
	}
}

func TestAddLookupMissLeavesListUntouched(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, testRecords())

	_, err := svc.Add(context.Background(), "tt9999999")
	if !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected lookup miss, got %v", err)
	}
	if len(svc.List()) != 0 {
		t.Fatalf("expected no mutation on lookup miss")
	}
	if store.puts != 0 {
		t.Fatalf("expected no persistence write on lookup miss")
	}
}

func TestNewestFirstOrder(t *testing.T) {
	svc := NewService(newMemoryStore(), testRecords())

	svc.Add(context.Background(), "tt0113277")
	svc.Add(context.Background(), "tt0133093")

	list := svc.List()
	if len(list) != 2 {
		t.Fatalf("expected two entries, got %d", len(list))
	}
	if list[0].ImdbID != "tt0133093" || list[1].ImdbID != "tt0113277" {
		t.Fatalf("expected newest-first order, got %q then %q", list[0].ImdbID, list[1].ImdbID)
	}
}

func TestRemoveAbsentIsSilentNoOp(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, testRecords())

	if err := svc.Remove("tt0000000"); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if store.puts != 0 {
		t.Fatalf("expected no persistence write for absent key")
	}
}

func TestToggleWatchedTwiceRestoresOriginal(t *testing.T) {
	svc := NewService(newMemoryStore(), testRecords())
	svc.Add(context.Background(), "tt0113277")

	entry, err := svc.ToggleWatched("tt0113277")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !entry.IsWatched {
		t.Fatalf("expected watched after first toggle")
	}

	entry, err = svc.ToggleWatched("tt0113277")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if entry.IsWatched {
		t.Fatalf("expected unwatched after second toggle")
	}

	if entry, _ := svc.ToggleWatched("tt0000000"); entry != nil {
		t.Fatalf("expected nil entry for absent key")
	}
}

func TestUpdateDetailsValidation(t *testing.T) {
	svc := NewService(newMemoryStore(), testRecords())
	svc.Add(context.Background(), "tt0113277")

	if _, err := svc.UpdateDetails("tt0113277", 6, ""); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for 6, got %v", err)
	}
	if _, err := svc.UpdateDetails("tt0113277", -1, ""); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for -1, got %v", err)
	}

	entry, err := svc.UpdateDetails("tt0113277", 4, "great")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if entry.Rating != 4 || entry.Notes != "great" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestPersistReloadRoundTrip(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, testRecords())

	svc.Add(context.Background(), "tt0113277")
	svc.ToggleWatched("tt0113277")
	svc.UpdateDetails("tt0113277", 4, "great")

	reloaded := NewService(store, testRecords())
	list := reloaded.List()
	if len(list) != 1 {
		t.Fatalf("expected one entry after reload, got %d", len(list))
	}
	entry := list[0]
	if entry.ImdbID != "tt0113277" || entry.Title != "Heat" {
		t.Fatalf("record fields lost in round trip: %+v", entry)
	}
	if !entry.IsWatched || entry.Rating != 4 || entry.Notes != "great" {
		t.Fatalf("user fields lost in round trip: %+v", entry)
	}
}

func TestCorruptStateYieldsEmptyList(t *testing.T) {
	store := newMemoryStore()
	store.values[StateKey] = []byte("{definitely not json")

	svc := NewService(store, testRecords())
	if len(svc.List()) != 0 {
		t.Fatalf("expected empty list for corrupt state")
	}

	// The service must still be usable afterwards.
	if _, err := svc.Add(context.Background(), "tt0113277"); err != nil {
		t.Fatalf("add after corrupt load: %v", err)
	}
}

func TestMissingOptionalFieldsTolerated(t *testing.T) {
	store := newMemoryStore()
	// A persisted form written before the user fields existed.
	store.values[StateKey] = []byte(`[{"imdbID":"tt0113277","Title":"Heat","Year":"1995"}]`)

	svc := NewService(store, testRecords())
	list := svc.List()
	if len(list) != 1 {
		t.Fatalf("expected one entry, got %d", len(list))
	}
	entry := list[0]
	if entry.IsWatched || entry.Rating != 0 || entry.Notes != "" {
		t.Fatalf("expected defaults for missing optional fields, got %+v", entry)
	}
}

func TestEveryMutationPersists(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, testRecords())

	svc.Add(context.Background(), "tt0113277")
	svc.ToggleWatched("tt0113277")
	svc.UpdateDetails("tt0113277", 3, "ok")
	svc.Remove("tt0113277")

	if store.puts != 4 {
		t.Fatalf("expected a persistence write per mutation, got %d", store.puts)
	}
}
