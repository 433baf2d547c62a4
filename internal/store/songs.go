package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Song represents a catalog track. Duration is in milliseconds; Order is the
// track's position within its album. Source and Artwork are the public URLs
// of the uploaded files.
type Song struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Order    int    `json:"order"`
	Duration int    `json:"duration"`
	Source   string `json:"source"`
	Artwork  string `json:"artwork"`
	Self     string `json:"self"`
}

// SongFilter selects songs by exact attribute match. Zero-value fields
// match everything.
type SongFilter struct {
	Artist string
	Album  string
}

// CreateSong persists a new song. The row is written twice: once to obtain
// the generated id, once more with the self link computed from it.
func (s *Store) CreateSong(ctx context.Context, song Song) (Song, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO songs (name, artist, album, track_order, duration, source, artwork)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, song.Name, song.Artist, song.Album, song.Order, song.Duration, song.Source, song.Artwork).Scan(&song.ID)
	if err != nil {
		return Song{}, fmt.Errorf("insert song: %w", err)
	}

	song.Self = s.selfLink("songs", song.ID)
	if _, err := s.db.ExecContext(ctx, `
		UPDATE songs SET self = $1 WHERE id = $2
	`, song.Self, song.ID); err != nil {
		return Song{}, fmt.Errorf("save song self link: %w", err)
	}

	return song, nil
}

// GetSong returns a single song by id.
func (s *Store) GetSong(ctx context.Context, id int64) (Song, error) {
	var song Song
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, artist, album, track_order, duration, source, artwork, COALESCE(self, '')
		FROM songs
		WHERE id = $1
	`, id).Scan(&song.ID, &song.Name, &song.Artist, &song.Album, &song.Order,
		&song.Duration, &song.Source, &song.Artwork, &song.Self)
	if errors.Is(err, sql.ErrNoRows) {
		return Song{}, ErrSongNotFound
	}
	if err != nil {
		return Song{}, fmt.Errorf("get song: %w", err)
	}
	return song, nil
}

// ListSongs returns songs matching the filter.
func (s *Store) ListSongs(ctx context.Context, filter SongFilter) ([]Song, error) {
	query := `
		SELECT id, name, artist, album, track_order, duration, source, artwork, COALESCE(self, '')
		FROM songs
		WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Artist != "" {
		query += fmt.Sprintf(" AND artist = $%d", argIdx)
		args = append(args, filter.Artist)
		argIdx++
	}

	if filter.Album != "" {
		query += fmt.Sprintf(" AND album = $%d", argIdx)
		args = append(args, filter.Album)
		argIdx++
	}

	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	songs := make([]Song, 0)
	for rows.Next() {
		var song Song
		if err := rows.Scan(&song.ID, &song.Name, &song.Artist, &song.Album, &song.Order,
			&song.Duration, &song.Source, &song.Artwork, &song.Self); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}

	return songs, nil
}
