package database

import (
	"errors"
	"path/filepath"
	"testing"
)

func setupDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(Config{DatabasePath: filepath.Join(t.TempDir(), "state.db")})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestStateGetMissingKey(t *testing.T) {
	db := setupDB(t)

	_, err := db.State.Get("watchlist")
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestStatePutGetRoundTrip(t *testing.T) {
	db := setupDB(t)

	value := []byte(`[{"imdbID":"tt0113277","isWatched":true,"rating":4,"notes":"great"}]`)
	if err := db.State.Put("watchlist", value); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := db.State.Get("watchlist")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(value) {
		t.Fatalf("round trip mismatch: %s", got)
	}
}

func TestStatePutReplacesValue(t *testing.T) {
	db := setupDB(t)

	if err := db.State.Put("watchlist", []byte(`["old"]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := db.State.Put("watchlist", []byte(`["new"]`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := db.State.Get("watchlist")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `["new"]` {
		t.Fatalf("expected replacement, got %s", got)
	}
}

func TestStateDelete(t *testing.T) {
	db := setupDB(t)

	if err := db.State.Put("watchlist", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := db.State.Delete("watchlist"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.State.Get("watchlist"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound after delete, got %v", err)
	}

	// Deleting an absent key is fine.
	if err := db.State.Delete("watchlist"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}
