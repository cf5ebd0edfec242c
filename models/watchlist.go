package models

import "time"

// WatchlistEntry is a record-provider movie saved by the user, extended
// with the user-owned fields. Identity is the record key; a key appears
// at most once in the watchlist.
type WatchlistEntry struct {
	RecordMovie
	IsWatched bool      `json:"isWatched"`
	Rating    int       `json:"rating,omitempty"` // 1..5 when set, 0 means unset
	Notes     string    `json:"notes,omitempty"`
	AddedAt   time.Time `json:"addedAt,omitempty"`
}

// Key returns the entry's stable identifier within the watchlist.
func (e WatchlistEntry) Key() string {
	return e.ImdbID
}

// DetailsUpdate captures a rating/notes change for a single entry.
type DetailsUpdate struct {
	Rating int    `json:"rating"`
	Notes  string `json:"notes"`
}
