package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/repertorio/core/internal/adapters/repository"
	"github.com/repertorio/core/internal/domain/entities"
	"github.com/repertorio/core/internal/infrastructure/logger"
	"github.com/repertorio/core/internal/ports"
)

type recordingPublisher struct {
	events []entities.SongEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e entities.SongEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func strPtr(s string) *string { return &s }

// newTestService returns a service over a JSON file holding content
func newTestService(t *testing.T, content string) (*SongService, *recordingPublisher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "canciones.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	pub := &recordingPublisher{}
	svc := NewSongService(repository.NewFileSongRepository(path), pub, logger.NewNop())
	return svc, pub, path
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	svc, pub, _ := newTestService(t, `[]`)
	ctx := context.Background()

	created, err := svc.CreateSong(ctx, ports.CreateSongRequest{
		Cancion: "  Gracias a la vida ",
		Artista: "Violeta Parra",
		Tono:    "\tAm\n",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Gracias a la vida", created.Cancion)
	assert.Equal(t, "Am", created.Tono)

	fetched, err := svc.GetSong(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	require.Len(t, pub.events, 1)
	assert.Equal(t, entities.SongEventCreated, pub.events[0].Type)
	assert.Equal(t, *created, pub.events[0].Song)
}

func TestListSongs_Idempotent(t *testing.T) {
	svc, _, _ := newTestService(t, `[{"id":"a","cancion":"A","artista":"B","tono":"C"},{"id":"b","cancion":"D","artista":"E","tono":"F"}]`)
	ctx := context.Background()

	first, err := svc.ListSongs(ctx)
	require.NoError(t, err)
	second, err := svc.ListSongs(ctx)
	require.NoError(t, err)

	assert.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestCreateSong_UniqueIDs(t *testing.T) {
	svc, _, _ := newTestService(t, `[]`)
	ctx := context.Background()

	const n = 50
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		song, err := svc.CreateSong(ctx, ports.CreateSongRequest{Cancion: "C", Artista: "A", Tono: "G"})
		require.NoError(t, err)
		seen[song.ID] = struct{}{}
	}
	assert.Len(t, seen, n)

	songs, err := svc.ListSongs(ctx)
	require.NoError(t, err)
	assert.Len(t, songs, n)
}

func TestCreateSong_Validation(t *testing.T) {
	tests := []struct {
		name   string
		req    ports.CreateSongRequest
		fields []string
	}{
		{"empty title", ports.CreateSongRequest{Cancion: "", Artista: "Artist", Tono: "C"}, []string{"cancion"}},
		{"whitespace title", ports.CreateSongRequest{Cancion: "  ", Artista: "Artist", Tono: "C"}, []string{"cancion"}},
		{"missing key", ports.CreateSongRequest{Cancion: "Song", Artista: "Artist"}, []string{"tono"}},
		{"all empty", ports.CreateSongRequest{}, []string{"cancion", "artista", "tono"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pub, path := newTestService(t, `[]`)

			_, err := svc.CreateSong(context.Background(), tt.req)
			require.Error(t, err)

			var verr *entities.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.fields, verr.Fields)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(data))
			assert.Empty(t, pub.events)
		})
	}
}

func TestUpdateSong_PartialUpdate(t *testing.T) {
	svc, pub, _ := newTestService(t, `[{"id":"a1","cancion":"Song1","artista":"Art1","tono":"C"}]`)
	ctx := context.Background()

	updated, err := svc.UpdateSong(ctx, "a1", ports.UpdateSongRequest{Tono: strPtr("Dm")})
	require.NoError(t, err)
	assert.Equal(t, &entities.Song{ID: "a1", Cancion: "Song1", Artista: "Art1", Tono: "Dm"}, updated)

	stored, err := svc.GetSong(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, updated, stored)

	require.Len(t, pub.events, 1)
	assert.Equal(t, entities.SongEventUpdated, pub.events[0].Type)
}

func TestUpdateSong_TrimsSuppliedFields(t *testing.T) {
	svc, _, _ := newTestService(t, `[{"id":"a1","cancion":"Song1","artista":"Art1","tono":"C"}]`)

	updated, err := svc.UpdateSong(context.Background(), "a1", ports.UpdateSongRequest{
		Cancion: strPtr(" Nueva "),
		Artista: strPtr(" Otro "),
	})
	require.NoError(t, err)
	assert.Equal(t, &entities.Song{ID: "a1", Cancion: "Nueva", Artista: "Otro", Tono: "C"}, updated)
}

func TestUpdateSong_ValidatesBeforeMutating(t *testing.T) {
	content := `[{"id":"a1","cancion":"Song1","artista":"Art1","tono":"C"}]`
	svc, pub, path := newTestService(t, content)

	_, err := svc.UpdateSong(context.Background(), "a1", ports.UpdateSongRequest{
		Cancion: strPtr("Valid"),
		Tono:    strPtr("   "),
	})
	require.Error(t, err)

	var verr *entities.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"tono"}, verr.Fields)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
	assert.Empty(t, pub.events)
}

func TestUpdateSong_ValidationWinsOverNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, `[]`)

	_, err := svc.UpdateSong(context.Background(), "nonexistent", ports.UpdateSongRequest{Artista: strPtr("")})
	assert.True(t, entities.IsValidationError(err))
}

func TestUpdateSong_NoFields(t *testing.T) {
	svc, pub, _ := newTestService(t, `[{"id":"a1","cancion":"Song1","artista":"Art1","tono":"C"}]`)
	ctx := context.Background()

	song, err := svc.UpdateSong(ctx, "a1", ports.UpdateSongRequest{})
	require.NoError(t, err)
	assert.Equal(t, "C", song.Tono)
	assert.Empty(t, pub.events)

	_, err = svc.UpdateSong(ctx, "nonexistent", ports.UpdateSongRequest{})
	assert.ErrorIs(t, err, entities.ErrSongNotFound)
}

func TestNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, `[{"id":"a1","cancion":"Song1","artista":"Art1","tono":"C"}]`)
	ctx := context.Background()

	_, err := svc.GetSong(ctx, "nonexistent")
	assert.ErrorIs(t, err, entities.ErrSongNotFound)

	_, err = svc.UpdateSong(ctx, "nonexistent", ports.UpdateSongRequest{Tono: strPtr("E")})
	assert.ErrorIs(t, err, entities.ErrSongNotFound)

	_, err = svc.DeleteSong(ctx, "nonexistent")
	assert.ErrorIs(t, err, entities.ErrSongNotFound)
}

func TestDeleteSong(t *testing.T) {
	svc, pub, _ := newTestService(t, `[{"id":"a","cancion":"A","artista":"B","tono":"C"},{"id":"b","cancion":"D","artista":"E","tono":"F"}]`)
	ctx := context.Background()

	before, err := svc.ListSongs(ctx)
	require.NoError(t, err)

	removed, err := svc.DeleteSong(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", removed.Cancion)

	after, err := svc.ListSongs(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)-1)
	assert.Equal(t, "b", after[0].ID)

	_, err = svc.GetSong(ctx, "a")
	assert.ErrorIs(t, err, entities.ErrSongNotFound)

	require.Len(t, pub.events, 1)
	assert.Equal(t, entities.SongEventDeleted, pub.events[0].Type)
}

func TestStorageErrorsSurface(t *testing.T) {
	svc, _, _ := newTestService(t, `not json`)
	ctx := context.Background()

	_, err := svc.ListSongs(ctx)
	assert.True(t, entities.IsStorageError(err))

	_, err = svc.CreateSong(ctx, ports.CreateSongRequest{Cancion: "A", Artista: "B", Tono: "C"})
	assert.True(t, entities.IsStorageError(err))
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	svc, pub, _ := newTestService(t, `[]`)
	pub.err = errors.New("broker down")

	song, err := svc.CreateSong(context.Background(), ports.CreateSongRequest{Cancion: "A", Artista: "B", Tono: "C"})
	require.NoError(t, err)
	assert.NotEmpty(t, song.ID)
	assert.Len(t, pub.events, 1)
}

func TestPublishFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	pub := &recordingPublisher{err: errors.New("broker down")}
	path := filepath.Join(t.TempDir(), "canciones.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	svc := NewSongService(repository.NewFileSongRepository(path), pub, logger.FromZap(zap.New(core)))

	_, err := svc.CreateSong(context.Background(), ports.CreateSongRequest{Cancion: "A", Artista: "B", Tono: "C"})
	require.NoError(t, err)

	entries := logs.FilterMessage("Failed to publish song event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "broker down", entries[0].ContextMap()["error"])
	assert.Equal(t, entities.SongEventCreated, entries[0].ContextMap()["event_type"])
}

func TestCreateSong_UsesGeneratedID(t *testing.T) {
	svc, _, _ := newTestService(t, `[]`)
	svc.newID = func() string { return "fixed-id" }

	song, err := svc.CreateSong(context.Background(), ports.CreateSongRequest{Cancion: "A", Artista: "B", Tono: "C"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", song.ID)
}
