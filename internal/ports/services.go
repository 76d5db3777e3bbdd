package ports

import (
	"context"

	"github.com/repertorio/core/internal/domain/entities"
)

// SongService interface for repertoire operations
type SongService interface {
	ListSongs(ctx context.Context) ([]*entities.Song, error)
	GetSong(ctx context.Context, id string) (*entities.Song, error)
	CreateSong(ctx context.Context, req CreateSongRequest) (*entities.Song, error)
	UpdateSong(ctx context.Context, id string, req UpdateSongRequest) (*entities.Song, error)
	DeleteSong(ctx context.Context, id string) (*entities.Song, error)
}

// Request types

type CreateSongRequest struct {
	Cancion string `json:"cancion" example:"Gracias a la vida"`
	Artista string `json:"artista" example:"Violeta Parra"`
	Tono    string `json:"tono" example:"Am"`
}

// UpdateSongRequest carries only the fields to change; absent fields keep their value.
type UpdateSongRequest struct {
	Cancion *string `json:"cancion,omitempty" example:"Gracias a la vida"`
	Artista *string `json:"artista,omitempty" example:"Mercedes Sosa"`
	Tono    *string `json:"tono,omitempty" example:"Dm"`
}
