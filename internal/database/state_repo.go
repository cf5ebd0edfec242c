package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// ErrStateNotFound indicates no value is stored under the requested key.
var ErrStateNotFound = errors.New("state key not found")

// StateRepository stores opaque JSON blobs under string keys. Each key
// holds exactly one value; writes replace the whole value.
type StateRepository struct {
	conn *sql.DB
}

// NewStateRepository creates a repository over an open connection.
func NewStateRepository(conn *sql.DB) *StateRepository {
	return &StateRepository{conn: conn}
}

// Get returns the raw value stored under key.
func (r *StateRepository) Get(key string) ([]byte, error) {
	var value string
	err := r.conn.QueryRow("SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query state %q: %w", key, err)
	}
	return []byte(value), nil
}

// Put replaces the value stored under key. Concurrent writers can hit a
// locked database under WAL checkpointing, so busy errors are retried
// briefly before giving up.
func (r *StateRepository) Put(key string, value []byte) error {
	err := retry.Do(
		func() error {
			_, err := r.conn.Exec(
				`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
				 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
				key, string(value),
			)
			return err
		},
		retry.RetryIf(isBusy),
		retry.Attempts(3),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("store state %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key, if any.
func (r *StateRepository) Delete(key string) error {
	if _, err := r.conn.Exec("DELETE FROM app_state WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}
