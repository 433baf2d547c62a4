package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSongNotFound signals the song id does not resolve.
	ErrSongNotFound = errors.New("song not found")
	// ErrPlaylistNotFound signals the playlist id does not resolve.
	ErrPlaylistNotFound = errors.New("playlist not found")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db      *sql.DB
	baseURL string
}

// New sets up a Store using the provided database handle. baseURL is the
// prefix for the self links written into new records.
func New(db *sql.DB, baseURL string) *Store {
	return &Store{db: db, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *Store) selfLink(collection string, id int64) string {
	return fmt.Sprintf("%s/%s/%d", s.baseURL, collection, id)
}
