package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/repertorio/core/internal/domain/entities"
	"github.com/repertorio/core/internal/infrastructure/logger"
	"github.com/repertorio/core/internal/ports"
)

// songFields is the validation view of a song after trimming
type songFields struct {
	Cancion string `json:"cancion" validate:"required"`
	Artista string `json:"artista" validate:"required"`
	Tono    string `json:"tono" validate:"required"`
}

// SongService handles repertoire operations on top of a SongRepository
type SongService struct {
	songRepo  ports.SongRepository
	publisher ports.EventPublisher
	validate  *validator.Validate
	newID     func() string
	logger    *logger.Logger
}

// NewSongService creates a new song service
func NewSongService(songRepo ports.SongRepository, publisher ports.EventPublisher, logger *logger.Logger) *SongService {
	return &SongService{
		songRepo:  songRepo,
		publisher: publisher,
		validate:  newValidator(),
		newID:     uuid.NewString,
		logger:    logger.WithComponent("song_service"),
	}
}

var _ ports.SongService = (*SongService)(nil)

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ListSongs returns the whole collection in insertion order
func (s *SongService) ListSongs(ctx context.Context) ([]*entities.Song, error) {
	songs, err := s.songRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	return songs, nil
}

// GetSong retrieves a song by ID
func (s *SongService) GetSong(ctx context.Context, id string) (*entities.Song, error) {
	song, err := s.songRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get song %s: %w", id, err)
	}

	return song, nil
}

// CreateSong validates, trims and appends a new song
func (s *SongService) CreateSong(ctx context.Context, req ports.CreateSongRequest) (*entities.Song, error) {
	fields := songFields{
		Cancion: strings.TrimSpace(req.Cancion),
		Artista: strings.TrimSpace(req.Artista),
		Tono:    strings.TrimSpace(req.Tono),
	}

	if err := s.validate.Struct(fields); err != nil {
		return nil, toValidationError(err)
	}

	song := &entities.Song{
		ID:      s.newID(),
		Cancion: fields.Cancion,
		Artista: fields.Artista,
		Tono:    fields.Tono,
	}

	if err := s.songRepo.Create(ctx, song); err != nil {
		return nil, fmt.Errorf("failed to create song: %w", err)
	}

	s.logger.Infow("Song created", "song_id", song.ID, "cancion", song.Cancion)
	s.publish(ctx, entities.SongEventCreated, song)

	return song, nil
}

// UpdateSong applies the supplied fields to an existing song.
// All supplied fields are validated before anything is written.
func (s *SongService) UpdateSong(ctx context.Context, id string, req ports.UpdateSongRequest) (*entities.Song, error) {
	var (
		fields  songFields
		present []string
		patch   entities.SongPatch
	)

	if req.Cancion != nil {
		fields.Cancion = strings.TrimSpace(*req.Cancion)
		patch.Cancion = &fields.Cancion
		present = append(present, "Cancion")
	}
	if req.Artista != nil {
		fields.Artista = strings.TrimSpace(*req.Artista)
		patch.Artista = &fields.Artista
		present = append(present, "Artista")
	}
	if req.Tono != nil {
		fields.Tono = strings.TrimSpace(*req.Tono)
		patch.Tono = &fields.Tono
		present = append(present, "Tono")
	}

	// Nothing to change; still honour not-found
	if patch.IsEmpty() {
		return s.GetSong(ctx, id)
	}

	if err := s.validate.StructPartial(fields, present...); err != nil {
		return nil, toValidationError(err)
	}

	song, err := s.songRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update song %s: %w", id, err)
	}

	s.logger.Infow("Song updated", "song_id", song.ID, "fields", present)
	s.publish(ctx, entities.SongEventUpdated, song)

	return song, nil
}

// DeleteSong removes a song and returns it
func (s *SongService) DeleteSong(ctx context.Context, id string) (*entities.Song, error) {
	song, err := s.songRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete song %s: %w", id, err)
	}

	s.logger.Infow("Song deleted", "song_id", song.ID)
	s.publish(ctx, entities.SongEventDeleted, song)

	return song, nil
}

// publish never fails the mutation that triggered it
func (s *SongService) publish(ctx context.Context, eventType entities.SongEventType, song *entities.Song) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, entities.NewSongEvent(eventType, *song)); err != nil {
		s.logger.WithError(err).Warnw("Failed to publish song event", "event_type", eventType, "song_id", song.ID)
	}
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate song: %w", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}

	return &entities.ValidationError{Fields: fields}
}
