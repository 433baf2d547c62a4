package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreatePlaylistWritesSelfLink(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, "https://nunki-music.appspot.com")

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO playlists (name)
		VALUES ($1)
		RETURNING id
	`)).
		WithArgs("Road Trip").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE playlists SET self = $1 WHERE id = $2
	`)).
		WithArgs("https://nunki-music.appspot.com/playlists/3", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := s.CreatePlaylist(context.Background(), "Road Trip")
	if err != nil {
		t.Fatalf("CreatePlaylist error: %v", err)
	}

	if got.ID != 3 || got.Name != "Road Trip" {
		t.Fatalf("unexpected playlist: %+v", got)
	}
	if got.Songs == nil || len(got.Songs) != 0 {
		t.Fatalf("expected empty song list, got %#v", got.Songs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetPlaylistDecodesSongs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, "http://localhost:8080")

	songsJSON := []byte(`[{"songId":4,"order":2,"songInfo":{"id":4,"name":"Roygbiv","artist":"Boards of Canada","album":"MHTRTC","order":8,"duration":150000,"source":"https://h/a/roygbiv.mp3","artwork":"https://h/i/m.jpg","self":"http://localhost:8080/songs/4"}}]`)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, COALESCE(self, ''), songs
		FROM playlists
		WHERE id = $1
	`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "self", "songs"}).
			AddRow(int64(5), "Chill", "http://localhost:8080/playlists/5", songsJSON))

	got, err := s.GetPlaylist(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetPlaylist error: %v", err)
	}

	if len(got.Songs) != 1 {
		t.Fatalf("expected 1 membership record, got %d", len(got.Songs))
	}
	entry := got.Songs[0]
	if entry.SongID != 4 || entry.Order != 2 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.SongInfo.Name != "Roygbiv" || entry.SongInfo.Duration != 150000 {
		t.Fatalf("unexpected song snapshot: %+v", entry.SongInfo)
	}
}

func TestGetPlaylistNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, "http://localhost:8080")

	mock.ExpectQuery("SELECT id, name, COALESCE").
		WithArgs(int64(12)).
		WillReturnError(sql.ErrNoRows)

	if _, err := s.GetPlaylist(context.Background(), 12); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestDeletePlaylistNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, "http://localhost:8080")

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM playlists WHERE id = $1`)).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.DeletePlaylist(context.Background(), 8); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestUpdatePlaylistSongs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, "http://localhost:8080")

	entries := []PlaylistEntry{{
		SongID: 9,
		Order:  1,
		SongInfo: Song{
			ID:     9,
			Name:   "Kerala",
			Artist: "Bonobo",
		},
	}}
	payload, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("marshal entries: %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE playlists SET songs = $1::jsonb WHERE id = $2
	`)).
		WithArgs(string(payload), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.UpdatePlaylistSongs(context.Background(), 5, entries); err != nil {
		t.Fatalf("UpdatePlaylistSongs error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdatePlaylistSongsMissingPlaylist(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, "http://localhost:8080")

	mock.ExpectExec("UPDATE playlists SET songs").
		WithArgs("[]", int64(77)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.UpdatePlaylistSongs(context.Background(), 77, nil); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}
