package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrSongNotFound = errors.New("song not found")
)

// Song represents one repertoire entry.
// The JSON tags are the on-disk and wire contract and must not change.
type Song struct {
	ID      string `json:"id" db:"id"`
	Cancion string `json:"cancion" db:"cancion"`
	Artista string `json:"artista" db:"artista"`
	Tono    string `json:"tono" db:"tono"`
}

// SongPatch is a partial song; nil fields are left untouched on update.
type SongPatch struct {
	Cancion *string
	Artista *string
	Tono    *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p SongPatch) IsEmpty() bool {
	return p.Cancion == nil && p.Artista == nil && p.Tono == nil
}

// Apply copies the present fields of the patch onto the song.
func (p SongPatch) Apply(song *Song) {
	if p.Cancion != nil {
		song.Cancion = *p.Cancion
	}
	if p.Artista != nil {
		song.Artista = *p.Artista
	}
	if p.Tono != nil {
		song.Tono = *p.Tono
	}
}

// SongEventType identifies a mutation on the song collection
type SongEventType string

const (
	SongEventCreated SongEventType = "song.created"
	SongEventUpdated SongEventType = "song.updated"
	SongEventDeleted SongEventType = "song.deleted"
)

// SongEvent is emitted after a successful mutation
type SongEvent struct {
	ID         string        `json:"id"`
	Type       SongEventType `json:"type"`
	Song       Song          `json:"song"`
	OccurredAt int64         `json:"occurred_at"`
}

// NewSongEvent builds an event for a song mutation
func NewSongEvent(eventType SongEventType, song Song) SongEvent {
	return SongEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Song:       song,
		OccurredAt: time.Now().UTC().UnixMilli(),
	}
}

// ValidationError reports the fields that failed the non-empty-after-trim rule.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s must not be empty", strings.Join(e.Fields, ", "))
}

// StorageError wraps a failure of the backing store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err unless it already is a StorageError or a domain error.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) || errors.Is(err, ErrSongNotFound) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorageError reports whether err is a StorageError
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
