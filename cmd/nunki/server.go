package main

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"nunki/internal/app/playlists"
	"nunki/internal/app/songs"
	"nunki/internal/audio"
	"nunki/internal/httpapi"
	"nunki/internal/middleware"
	"nunki/internal/objstore"
	"nunki/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store, objects *objstore.Client, logger zerolog.Logger) http.Handler {
	songSvc := songs.New(dataStore, objects, audio.Duration, cfg.SongBucket, cfg.ImageBucket, logger)
	playlistSvc := playlists.New(dataStore)

	handler := httpapi.New(songSvc, playlistSvc).Routes()
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)
	return withCORS(cfg.AllowedOrigins, handler)
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
