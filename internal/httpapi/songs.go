package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"nunki/internal/app/songs"
	"nunki/internal/store"
)

// maxUploadBytes caps a song upload (both files plus metadata) at 20 MiB.
const maxUploadBytes = 20 << 20

func (s *Server) handleUploadSong(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart payload"})
		return
	}

	source, err := readUploadFile(r, "source")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "source file is required"})
		return
	}
	artwork, err := readUploadFile(r, "artwork")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "artwork file is required"})
		return
	}

	// Order is unvalidated free-form metadata; a missing or bad value is 0.
	order, _ := strconv.Atoi(r.FormValue("order"))

	song, err := s.songs.Upload(r.Context(), songs.Upload{
		Name:    r.FormValue("name"),
		Artist:  r.FormValue("artist"),
		Album:   r.FormValue("album"),
		Order:   order,
		Source:  source,
		Artwork: artwork,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unknown post song error"})
		return
	}

	writeJSON(w, http.StatusCreated, song)
}

func readUploadFile(r *http.Request, field string) (songs.File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return songs.File{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return songs.File{}, err
	}

	return songs.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no song found with this id"})
		return
	}

	song, err := s.songs.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no song found with this id"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unknown get song error"})
		return
	}

	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	s.listSongs(w, r, store.SongFilter{})
}

func (s *Server) handleSongsByArtist(w http.ResponseWriter, r *http.Request) {
	s.listSongs(w, r, store.SongFilter{Artist: r.PathValue("artist")})
}

func (s *Server) handleSongsByAlbum(w http.ResponseWriter, r *http.Request) {
	s.listSongs(w, r, store.SongFilter{Album: r.PathValue("album")})
}

func (s *Server) listSongs(w http.ResponseWriter, r *http.Request, filter store.SongFilter) {
	list, err := s.songs.List(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unknown get songs error"})
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: list, TotalSearchResults: len(list)})
}
