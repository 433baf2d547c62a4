package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"nunki/internal/app/songs"
	"nunki/internal/store"
)

// SongService coordinates song catalog operations.
type SongService interface {
	Upload(ctx context.Context, up songs.Upload) (store.Song, error)
	Get(ctx context.Context, id int64) (store.Song, error)
	List(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
}

// PlaylistService coordinates playlist operations.
type PlaylistService interface {
	Create(ctx context.Context, name string) (store.Playlist, error)
	Get(ctx context.Context, id int64) (store.Playlist, error)
	List(ctx context.Context) ([]store.Playlist, error)
	Delete(ctx context.Context, id int64) error
	AddSong(ctx context.Context, playlistID, songID int64, order int) error
	RemoveSong(ctx context.Context, playlistID, songID int64) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	songs     SongService
	playlists PlaylistService
}

// New configures a Server with the given services.
func New(songs SongService, playlists PlaylistService) *Server {
	return &Server{songs: songs, playlists: playlists}
}

// Routes exposes the HTTP handlers for the catalog API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Nunki Music Server is up"))
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /songs", s.handleUploadSong)
	mux.HandleFunc("GET /songs", s.handleListSongs)
	mux.HandleFunc("GET /songs/{id}", s.handleGetSong)
	mux.HandleFunc("GET /songs/artists/{artist}", s.handleSongsByArtist)
	mux.HandleFunc("GET /songs/albums/{album}", s.handleSongsByAlbum)

	mux.HandleFunc("POST /playlists", s.handleCreatePlaylist)
	mux.HandleFunc("GET /playlists", s.handleListPlaylists)
	mux.HandleFunc("GET /playlists/{id}", s.handleGetPlaylist)
	mux.HandleFunc("DELETE /playlists/{id}", s.handleDeletePlaylist)
	mux.HandleFunc("PUT /playlists/{playlistID}/songs/{songID}", s.handleAddPlaylistSong)
	mux.HandleFunc("DELETE /playlists/{playlistID}/songs/{songID}", s.handleRemovePlaylistSong)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// listResponse is the envelope every listing endpoint returns.
type listResponse struct {
	Items              interface{} `json:"items"`
	TotalSearchResults int         `json:"totalSearchResults"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// pathID parses a base-10 entity id from the named path segment. A value
// that does not parse is indistinguishable from an unknown id.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
