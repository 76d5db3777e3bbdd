package ports

import (
	"context"

	"github.com/repertorio/core/internal/domain/entities"
)

// SongRepository defines the interface for song persistence.
// Every mutation is a single read-modify-write against the backing store.
type SongRepository interface {
	List(ctx context.Context) ([]*entities.Song, error)
	GetByID(ctx context.Context, id string) (*entities.Song, error)
	Create(ctx context.Context, song *entities.Song) error
	Update(ctx context.Context, id string, patch entities.SongPatch) (*entities.Song, error)
	Delete(ctx context.Context, id string) (*entities.Song, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// EventPublisher defines the interface for publishing song events
type EventPublisher interface {
	Publish(ctx context.Context, event entities.SongEvent) error
	Close() error
}
