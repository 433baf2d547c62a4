package playlists

import (
	"context"
	"errors"

	"nunki/internal/store"
)

var (
	// ErrSongInPlaylist signals the song is already a member of the playlist.
	ErrSongInPlaylist = errors.New("song already in playlist")
	// ErrSongNotInPlaylist signals the song is not a member of the playlist.
	ErrSongNotInPlaylist = errors.New("song not in playlist")
)

// Store captures the persistence needs for playlist workflows.
type Store interface {
	CreatePlaylist(ctx context.Context, name string) (store.Playlist, error)
	GetPlaylist(ctx context.Context, id int64) (store.Playlist, error)
	ListPlaylists(ctx context.Context) ([]store.Playlist, error)
	DeletePlaylist(ctx context.Context, id int64) error
	UpdatePlaylistSongs(ctx context.Context, id int64, entries []store.PlaylistEntry) error
	GetSong(ctx context.Context, id int64) (store.Song, error)
}

// Service coordinates playlist operations.
type Service interface {
	Create(ctx context.Context, name string) (store.Playlist, error)
	Get(ctx context.Context, id int64) (store.Playlist, error)
	List(ctx context.Context) ([]store.Playlist, error)
	Delete(ctx context.Context, id int64) error
	AddSong(ctx context.Context, playlistID, songID int64, order int) error
	RemoveSong(ctx context.Context, playlistID, songID int64) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, name string) (store.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return store.Playlist{}, err
	}
	return s.store.CreatePlaylist(ctx, name)
}

func (s *service) Get(ctx context.Context, id int64) (store.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return store.Playlist{}, err
	}
	return s.store.GetPlaylist(ctx, id)
}

func (s *service) List(ctx context.Context) ([]store.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylists(ctx)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, id)
}

// AddSong appends a membership record for songID to the playlist. The song
// and playlist must exist and the song must not already be a member. The
// record embeds a snapshot of the song as stored at insertion time; the
// order value is caller-supplied metadata and does not place the entry.
// The membership list is read and rewritten whole, with no concurrency
// token, so concurrent mutations of one playlist are last-write-wins.
func (s *service) AddSong(ctx context.Context, playlistID, songID int64, order int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	song, err := s.store.GetSong(ctx, songID)
	if err != nil {
		return err
	}

	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}

	if hasSong(playlist.Songs, songID) {
		return ErrSongInPlaylist
	}

	entries := append(playlist.Songs, store.PlaylistEntry{
		SongID:   songID,
		Order:    order,
		SongInfo: song,
	})
	return s.store.UpdatePlaylistSongs(ctx, playlistID, entries)
}

// RemoveSong drops every membership record referencing songID. The song and
// playlist must exist and the song must currently be a member.
func (s *service) RemoveSong(ctx context.Context, playlistID, songID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.store.GetSong(ctx, songID); err != nil {
		return err
	}

	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}

	if !hasSong(playlist.Songs, songID) {
		return ErrSongNotInPlaylist
	}

	kept := make([]store.PlaylistEntry, 0, len(playlist.Songs))
	for _, entry := range playlist.Songs {
		if entry.SongID != songID {
			kept = append(kept, entry)
		}
	}
	return s.store.UpdatePlaylistSongs(ctx, playlistID, kept)
}

func hasSong(entries []store.PlaylistEntry, songID int64) bool {
	for _, entry := range entries {
		if entry.SongID == songID {
			return true
		}
	}
	return false
}
