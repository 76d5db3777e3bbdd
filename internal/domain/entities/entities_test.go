package entities

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestSongPatch_Apply(t *testing.T) {
	song := Song{ID: "a1", Cancion: "Song1", Artista: "Art1", Tono: "C"}

	SongPatch{Tono: strPtr("Dm")}.Apply(&song)

	assert.Equal(t, Song{ID: "a1", Cancion: "Song1", Artista: "Art1", Tono: "Dm"}, song)
}

func TestSongPatch_IsEmpty(t *testing.T) {
	assert.True(t, SongPatch{}.IsEmpty())
	assert.False(t, SongPatch{Artista: strPtr("x")}.IsEmpty())
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []string{"cancion", "tono"}}
	assert.Equal(t, "validation failed: cancion, tono must not be empty", err.Error())
	assert.True(t, IsValidationError(fmt.Errorf("create: %w", err)))
}

func TestNewStorageError(t *testing.T) {
	assert.Nil(t, NewStorageError("read", nil))

	err := NewStorageError("read", os.ErrNotExist)
	assert.True(t, IsStorageError(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	// not-found and already-wrapped errors pass through unchanged
	assert.Same(t, ErrSongNotFound, NewStorageError("read", ErrSongNotFound))
	assert.Equal(t, err, NewStorageError("write", err))
}
