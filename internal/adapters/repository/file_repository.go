package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/repertorio/core/internal/domain/entities"
	"github.com/repertorio/core/internal/ports"
)

// FileSongRepository keeps the whole song collection in one JSON array on disk.
// Every call re-reads the file; every mutation rewrites it completely.
type FileSongRepository struct {
	path string
	mode os.FileMode
	mu   sync.Mutex
}

// NewFileSongRepository creates a new JSON file backed repository
func NewFileSongRepository(path string) *FileSongRepository {
	return &FileSongRepository{path: path, mode: 0o644}
}

var _ ports.SongRepository = (*FileSongRepository)(nil)

// Path returns the backing file location
func (r *FileSongRepository) Path() string {
	return r.path
}

// EnsureFile creates the backing file holding an empty collection if it does not exist.
func (r *FileSongRepository) EnsureFile() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return entities.NewStorageError("stat", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return entities.NewStorageError("mkdir", err)
		}
	}

	return r.save([]*entities.Song{})
}

func (r *FileSongRepository) List(ctx context.Context) ([]*entities.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

func (r *FileSongRepository) GetByID(ctx context.Context, id string) (*entities.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	songs, err := r.load()
	if err != nil {
		return nil, err
	}

	i := indexOf(songs, id)
	if i < 0 {
		return nil, entities.ErrSongNotFound
	}

	return songs[i], nil
}

func (r *FileSongRepository) Create(ctx context.Context, song *entities.Song) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	songs, err := r.load()
	if err != nil {
		return err
	}

	if indexOf(songs, song.ID) >= 0 {
		return entities.NewStorageError("create", fmt.Errorf("duplicate song id %q", song.ID))
	}

	stored := *song
	songs = append(songs, &stored)

	return r.save(songs)
}

func (r *FileSongRepository) Update(ctx context.Context, id string, patch entities.SongPatch) (*entities.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	songs, err := r.load()
	if err != nil {
		return nil, err
	}

	i := indexOf(songs, id)
	if i < 0 {
		return nil, entities.ErrSongNotFound
	}

	patch.Apply(songs[i])

	if err := r.save(songs); err != nil {
		return nil, err
	}

	return songs[i], nil
}

func (r *FileSongRepository) Delete(ctx context.Context, id string) (*entities.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	songs, err := r.load()
	if err != nil {
		return nil, err
	}

	i := indexOf(songs, id)
	if i < 0 {
		return nil, entities.ErrSongNotFound
	}

	removed := songs[i]
	songs = append(songs[:i], songs[i+1:]...)

	if err := r.save(songs); err != nil {
		return nil, err
	}

	return removed, nil
}

func (r *FileSongRepository) Count(ctx context.Context) (int, error) {
	songs, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(songs), nil
}

// Ping checks that the backing file is present and parses
func (r *FileSongRepository) Ping(ctx context.Context) error {
	_, err := r.List(ctx)
	return err
}

// load reads and decodes the whole collection. Callers hold r.mu.
func (r *FileSongRepository) load() ([]*entities.Song, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, entities.NewStorageError("read", err)
	}

	var songs []*entities.Song
	if err := json.Unmarshal(data, &songs); err != nil {
		return nil, entities.NewStorageError("decode", fmt.Errorf("%s: %w", r.path, err))
	}
	if songs == nil {
		songs = []*entities.Song{}
	}
	for i, s := range songs {
		if s == nil {
			return nil, entities.NewStorageError("decode", fmt.Errorf("%s: element %d is null", r.path, i))
		}
	}

	return songs, nil
}

// save rewrites the whole collection via a temp file and rename. Callers hold r.mu.
func (r *FileSongRepository) save(songs []*entities.Song) error {
	data, err := json.MarshalIndent(songs, "", "  ")
	if err != nil {
		return entities.NewStorageError("encode", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return entities.NewStorageError("write", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return entities.NewStorageError("write", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return entities.NewStorageError("write", err)
	}
	if err := os.Chmod(tmpName, r.mode); err != nil {
		os.Remove(tmpName)
		return entities.NewStorageError("write", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return entities.NewStorageError("write", err)
	}

	return nil
}

func indexOf(songs []*entities.Song, id string) int {
	for i, s := range songs {
		if s.ID == id {
			return i
		}
	}
	return -1
}
