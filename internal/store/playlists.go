package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PlaylistEntry is one membership record in a playlist: a song reference,
// the caller-supplied order value, and a snapshot of the song taken when it
// was added. The snapshot cannot go stale because songs are never updated.
type PlaylistEntry struct {
	SongID   int64 `json:"songId"`
	Order    int   `json:"order"`
	SongInfo Song  `json:"songInfo"`
}

// Playlist is a named, ordered collection of song memberships.
type Playlist struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Self  string          `json:"self"`
	Songs []PlaylistEntry `json:"songs"`
}

// CreatePlaylist persists a new playlist with an empty song list, writing
// the row twice to fill in the self link from the generated id.
func (s *Store) CreatePlaylist(ctx context.Context, name string) (Playlist, error) {
	playlist := Playlist{Name: name, Songs: []PlaylistEntry{}}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlists (name)
		VALUES ($1)
		RETURNING id
	`, name).Scan(&playlist.ID)
	if err != nil {
		return Playlist{}, fmt.Errorf("insert playlist: %w", err)
	}

	playlist.Self = s.selfLink("playlists", playlist.ID)
	if _, err := s.db.ExecContext(ctx, `
		UPDATE playlists SET self = $1 WHERE id = $2
	`, playlist.Self, playlist.ID); err != nil {
		return Playlist{}, fmt.Errorf("save playlist self link: %w", err)
	}

	return playlist, nil
}

// GetPlaylist returns a single playlist by id.
func (s *Store) GetPlaylist(ctx context.Context, id int64) (Playlist, error) {
	var (
		playlist Playlist
		songsRaw []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(self, ''), songs
		FROM playlists
		WHERE id = $1
	`, id).Scan(&playlist.ID, &playlist.Name, &playlist.Self, &songsRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return Playlist{}, ErrPlaylistNotFound
	}
	if err != nil {
		return Playlist{}, fmt.Errorf("get playlist: %w", err)
	}

	if err := json.Unmarshal(songsRaw, &playlist.Songs); err != nil {
		return Playlist{}, fmt.Errorf("decode playlist songs: %w", err)
	}
	if playlist.Songs == nil {
		playlist.Songs = []PlaylistEntry{}
	}

	return playlist, nil
}

// ListPlaylists returns every playlist.
func (s *Store) ListPlaylists(ctx context.Context) ([]Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(self, ''), songs
		FROM playlists
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]Playlist, 0)
	for rows.Next() {
		var (
			playlist Playlist
			songsRaw []byte
		)
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.Self, &songsRaw); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		if err := json.Unmarshal(songsRaw, &playlist.Songs); err != nil {
			return nil, fmt.Errorf("decode playlist songs: %w", err)
		}
		if playlist.Songs == nil {
			playlist.Songs = []PlaylistEntry{}
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}

	return playlists, nil
}

// DeletePlaylist removes a playlist outright.
func (s *Store) DeletePlaylist(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// UpdatePlaylistSongs replaces the membership list of a playlist. The write
// carries no concurrency token; concurrent updates are last-write-wins.
func (s *Store) UpdatePlaylistSongs(ctx context.Context, id int64, entries []PlaylistEntry) error {
	if entries == nil {
		entries = []PlaylistEntry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode playlist songs: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE playlists SET songs = $1::jsonb WHERE id = $2
	`, string(payload), id)
	if err != nil {
		return fmt.Errorf("update playlist songs: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}
