package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repertorio/core/internal/domain/entities"
	"github.com/repertorio/core/internal/infrastructure/config"
	"github.com/repertorio/core/internal/infrastructure/logger"
)

func TestNew_FileDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canciones.json")

	repo, err := New(config.StorageConfig{Driver: config.DriverFile, Path: path, CreateIfMissing: true}, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileSongRepository{}, repo)
	assert.FileExists(t, path)
}

func TestNew_FileDriverWithoutCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canciones.json")

	repo, err := New(config.StorageConfig{Driver: config.DriverFile, Path: path}, nil)
	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	assert.Error(t, repo.Ping(context.Background()))
}

func TestNew_SQLDrivers(t *testing.T) {
	_, err := New(config.StorageConfig{Driver: config.DriverPostgres}, nil)
	assert.Error(t, err)

	db := newSQLiteDB(t)
	_, err = New(config.StorageConfig{Driver: config.DriverPostgres}, db)
	assert.Error(t, err)

	repo, err := New(config.StorageConfig{Driver: config.DriverSQLite}, db)
	require.NoError(t, err)
	assert.IsType(t, &SQLSongRepository{}, repo)

	_, err = New(config.StorageConfig{Driver: "mongo"}, nil)
	assert.Error(t, err)
}

func TestInstrumentedSongRepository(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	repo := NewInstrumentedSongRepository(newFileRepo(t), metrics, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.Song{ID: "a1", Cancion: "Song1", Artista: "Art1", Tono: "C"}))
	_, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, entities.ErrSongNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("get", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("get", "not_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.duration))
}
