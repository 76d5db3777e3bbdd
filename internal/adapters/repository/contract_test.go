package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repertorio/core/internal/domain/entities"
	"github.com/repertorio/core/internal/ports"
)

func strPtr(s string) *string { return &s }

func seed(t *testing.T, repo ports.SongRepository, songs ...entities.Song) {
	t.Helper()
	for i := range songs {
		require.NoError(t, repo.Create(context.Background(), &songs[i]))
	}
}

// runRepositoryContract exercises the behaviour every storage engine must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) ports.SongRepository) {
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		repo := newRepo(t)
		songs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, songs)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo,
			entities.Song{ID: "c", Cancion: "Tres", Artista: "A", Tono: "C"},
			entities.Song{ID: "a", Cancion: "Uno", Artista: "B", Tono: "D"},
			entities.Song{ID: "b", Cancion: "Dos", Artista: "C", Tono: "E"},
		)

		songs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, songs, 3)
		assert.Equal(t, "c", songs[0].ID)
		assert.Equal(t, "a", songs[1].ID)
		assert.Equal(t, "b", songs[2].ID)

		again, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, songs, again)
	})

	t.Run("get by id", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo, entities.Song{ID: "a1", Cancion: "Song1", Artista: "Art1", Tono: "C"})

		song, err := repo.GetByID(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, &entities.Song{ID: "a1", Cancion: "Song1", Artista: "Art1", Tono: "C"}, song)

		_, err = repo.GetByID(ctx, "nonexistent")
		assert.ErrorIs(t, err, entities.ErrSongNotFound)
	})

	t.Run("update applies present fields only", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo, entities.Song{ID: "a1", Cancion: "Song1", Artista: "Art1", Tono: "C"})

		song, err := repo.Update(ctx, "a1", entities.SongPatch{Tono: strPtr("Dm")})
		require.NoError(t, err)
		assert.Equal(t, &entities.Song{ID: "a1", Cancion: "Song1", Artista: "Art1", Tono: "Dm"}, song)

		stored, err := repo.GetByID(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, song, stored)

		_, err = repo.Update(ctx, "nonexistent", entities.SongPatch{Tono: strPtr("E")})
		assert.ErrorIs(t, err, entities.ErrSongNotFound)
	})

	t.Run("delete removes exactly one", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo,
			entities.Song{ID: "a", Cancion: "Uno", Artista: "A", Tono: "C"},
			entities.Song{ID: "b", Cancion: "Dos", Artista: "B", Tono: "D"},
			entities.Song{ID: "c", Cancion: "Tres", Artista: "C", Tono: "E"},
		)

		removed, err := repo.Delete(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "Dos", removed.Cancion)

		songs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, songs, 2)
		assert.Equal(t, "a", songs[0].ID)
		assert.Equal(t, "c", songs[1].ID)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		_, err = repo.GetByID(ctx, "b")
		assert.ErrorIs(t, err, entities.ErrSongNotFound)

		_, err = repo.Delete(ctx, "b")
		assert.ErrorIs(t, err, entities.ErrSongNotFound)
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo, entities.Song{ID: "a1", Cancion: "Song1", Artista: "Art1", Tono: "C"})

		err := repo.Create(ctx, &entities.Song{ID: "a1", Cancion: "Otra", Artista: "X", Tono: "G"})
		require.Error(t, err)
		assert.True(t, entities.IsStorageError(err))
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newRepo(t).Ping(ctx))
	})
}
