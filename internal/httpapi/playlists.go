package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"nunki/internal/app/playlists"
	"nunki/internal/store"
)

type createPlaylistRequest struct {
	Name string `json:"name"`
}

type addSongRequest struct {
	Order int `json:"order"`
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var name string
	if isJSON(r) {
		var req createPlaylistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
			return
		}
		name = req.Name
	} else {
		name = r.FormValue("name")
	}

	playlist, err := s.playlists.Create(r.Context(), name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unknown post playlist error"})
		return
	}

	writeJSON(w, http.StatusCreated, playlist)
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no playlist found with this id"})
		return
	}

	playlist, err := s.playlists.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrPlaylistNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no playlist found with this id"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unknown get playlist error"})
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	list, err := s.playlists.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unknown get playlists error"})
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: list, TotalSearchResults: len(list)})
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no playlist found with this id"})
		return
	}

	if err := s.playlists.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrPlaylistNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no playlist found with this id"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unknown delete playlist error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	playlistID, songID, ok := membershipIDs(w, r)
	if !ok {
		return
	}

	var order int
	if isJSON(r) {
		var req addSongRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
			return
		}
		order = req.Order
	} else {
		order, _ = strconv.Atoi(r.FormValue("order"))
	}

	if err := s.playlists.AddSong(r.Context(), playlistID, songID, order); err != nil {
		s.writeMembershipError(w, err, "unknown add song to playlist error")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "song added to playlist"})
}

func (s *Server) handleRemovePlaylistSong(w http.ResponseWriter, r *http.Request) {
	playlistID, songID, ok := membershipIDs(w, r)
	if !ok {
		return
	}

	if err := s.playlists.RemoveSong(r.Context(), playlistID, songID); err != nil {
		s.writeMembershipError(w, err, "unknown delete song from playlist error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func membershipIDs(w http.ResponseWriter, r *http.Request) (playlistID, songID int64, ok bool) {
	playlistID, ok = pathID(r, "playlistID")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no playlist found with this id"})
		return 0, 0, false
	}
	songID, ok = pathID(r, "songID")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no song found with this id"})
		return 0, 0, false
	}
	return playlistID, songID, true
}

func (s *Server) writeMembershipError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrSongNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no song found with this id"})
	case errors.Is(err, store.ErrPlaylistNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no playlist found with this id"})
	case errors.Is(err, playlists.ErrSongInPlaylist):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "song already in playlist"})
	case errors.Is(err, playlists.ErrSongNotInPlaylist):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "song not in playlist"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fallback})
	}
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
