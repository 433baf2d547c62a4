package songs

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"nunki/internal/store"
)

// Store captures the persistence needs for song workflows.
type Store interface {
	CreateSong(ctx context.Context, song store.Song) (store.Song, error)
	GetSong(ctx context.Context, id int64) (store.Song, error)
	ListSongs(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
}

// ObjectStore captures the blob operations the upload pipeline performs.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
	MakePublic(ctx context.Context, bucket, key string) error
}

// DurationFunc computes the playing time in milliseconds of an audio payload.
type DurationFunc func(data []byte) (int, error)

// File is an uploaded payload with its client-supplied filename. The
// filename doubles as the storage key, so a re-upload with the same name
// overwrites the earlier object.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Upload carries the fields and payloads of a song creation request.
type Upload struct {
	Name   string
	Artist string
	Album  string
	Order  int

	Source  File
	Artwork File
}

// Service exposes song catalog operations.
type Service interface {
	Upload(ctx context.Context, up Upload) (store.Song, error)
	Get(ctx context.Context, id int64) (store.Song, error)
	List(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
}

type service struct {
	store       Store
	objects     ObjectStore
	duration    DurationFunc
	songBucket  string
	imageBucket string
	log         zerolog.Logger
}

// New constructs a song Service backed by the provided store and buckets.
func New(st Store, objects ObjectStore, duration DurationFunc, songBucket, imageBucket string, log zerolog.Logger) Service {
	return &service{
		store:       st,
		objects:     objects,
		duration:    duration,
		songBucket:  songBucket,
		imageBucket: imageBucket,
		log:         log,
	}
}

// Upload runs the song creation pipeline: compute the audio duration, store
// the source, publish it, store the artwork, publish it, then persist the
// record. Steps run strictly in order and the pipeline stops at the first
// failure; earlier writes are not rolled back, so a failed run can leave
// objects in a bucket with no catalog record pointing at them.
func (s *service) Upload(ctx context.Context, up Upload) (store.Song, error) {
	if err := ctx.Err(); err != nil {
		return store.Song{}, err
	}

	duration, err := s.duration(up.Source.Data)
	if err != nil {
		return store.Song{}, fmt.Errorf("compute duration: %w", err)
	}

	sourceURL, err := s.objects.Upload(ctx, s.songBucket, up.Source.Name, up.Source.Data, up.Source.ContentType)
	if err != nil {
		return store.Song{}, s.abort("upload source", up, err)
	}
	if err := s.objects.MakePublic(ctx, s.songBucket, up.Source.Name); err != nil {
		return store.Song{}, s.abort("publish source", up, err)
	}

	artworkURL, err := s.objects.Upload(ctx, s.imageBucket, up.Artwork.Name, up.Artwork.Data, up.Artwork.ContentType)
	if err != nil {
		return store.Song{}, s.abort("upload artwork", up, err)
	}
	if err := s.objects.MakePublic(ctx, s.imageBucket, up.Artwork.Name); err != nil {
		return store.Song{}, s.abort("publish artwork", up, err)
	}

	song, err := s.store.CreateSong(ctx, store.Song{
		Name:     up.Name,
		Artist:   up.Artist,
		Album:    up.Album,
		Order:    up.Order,
		Duration: duration,
		Source:   sourceURL,
		Artwork:  artworkURL,
	})
	if err != nil {
		return store.Song{}, s.abort("persist song", up, err)
	}

	s.log.Info().
		Int64("song_id", song.ID).
		Str("source_key", up.Source.Name).
		Str("artwork_key", up.Artwork.Name).
		Int("duration_ms", duration).
		Msg("song uploaded")

	return song, nil
}

func (s *service) abort(step string, up Upload, err error) error {
	s.log.Warn().
		Str("step", step).
		Str("source_key", up.Source.Name).
		Str("artwork_key", up.Artwork.Name).
		Err(err).
		Msg("upload pipeline aborted; earlier writes were kept")
	return fmt.Errorf("%s: %w", step, err)
}

func (s *service) Get(ctx context.Context, id int64) (store.Song, error) {
	if err := ctx.Err(); err != nil {
		return store.Song{}, err
	}
	return s.store.GetSong(ctx, id)
}

func (s *service) List(ctx context.Context, filter store.SongFilter) ([]store.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongs(ctx, filter)
}
