package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateSongWritesSelfLink(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, "https://nunki-music.appspot.com/")

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO songs (name, artist, album, track_order, duration, source, artwork)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`)).
		WithArgs("Test", "A", "B", 1, 992, "https://files.test/audio/test.mp3", "https://files.test/images/test.jpg").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE songs SET self = $1 WHERE id = $2
	`)).
		WithArgs("https://nunki-music.appspot.com/songs/7", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := s.CreateSong(context.Background(), Song{
		Name:     "Test",
		Artist:   "A",
		Album:    "B",
		Order:    1,
		Duration: 992,
		Source:   "https://files.test/audio/test.mp3",
		Artwork:  "https://files.test/images/test.jpg",
	})
	if err != nil {
		t.Fatalf("CreateSong error: %v", err)
	}

	if got.ID != 7 {
		t.Fatalf("expected song ID 7, got %d", got.ID)
	}
	if got.Self != "https://nunki-music.appspot.com/songs/7" {
		t.Fatalf("unexpected self link %q", got.Self)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetSongNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, "http://localhost:8080")

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, artist, album, track_order, duration, source, artwork, COALESCE(self, '')
		FROM songs
		WHERE id = $1
	`)).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	if _, err := s.GetSong(context.Background(), 99); !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("expected ErrSongNotFound, got %v", err)
	}
}

func TestListSongsByArtist(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, "http://localhost:8080")

	rows := sqlmock.NewRows([]string{"id", "name", "artist", "album", "track_order", "duration", "source", "artwork", "self"}).
		AddRow(int64(1), "Angel", "Massive Attack", "Mezzanine", 1, 379000, "https://h/a/angel.mp3", "https://h/i/mezz.jpg", "http://localhost:8080/songs/1").
		AddRow(int64(2), "Teardrop", "Massive Attack", "Mezzanine", 3, 331000, "https://h/a/teardrop.mp3", "https://h/i/mezz.jpg", "http://localhost:8080/songs/2")

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, artist, album, track_order, duration, source, artwork, COALESCE(self, '')
		FROM songs
		WHERE 1=1 AND artist = $1 ORDER BY id ASC`)).
		WithArgs("Massive Attack").
		WillReturnRows(rows)

	songs, err := s.ListSongs(context.Background(), SongFilter{Artist: "Massive Attack"})
	if err != nil {
		t.Fatalf("ListSongs error: %v", err)
	}

	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}
	if songs[1].Name != "Teardrop" || songs[1].Order != 3 {
		t.Fatalf("unexpected second song: %+v", songs[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListSongsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, "http://localhost:8080")

	mock.ExpectQuery("SELECT id, name, artist").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "artist", "album", "track_order", "duration", "source", "artwork", "self"}))

	songs, err := s.ListSongs(context.Background(), SongFilter{})
	if err != nil {
		t.Fatalf("ListSongs error: %v", err)
	}
	if songs == nil || len(songs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", songs)
	}
}
