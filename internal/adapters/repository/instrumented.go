package repository

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/repertorio/core/internal/domain/entities"
	"github.com/repertorio/core/internal/infrastructure/logger"
	"github.com/repertorio/core/internal/ports"
)

// Metrics holds the Prometheus collectors for store operations
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates store collectors and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "repertorio_store_operations_total",
				Help: "Total number of song store operations",
			},
			[]string{"operation", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "repertorio_store_operation_duration_seconds",
				Help:    "Song store operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.operations, m.duration)
	}

	return m
}

// InstrumentedSongRepository decorates a SongRepository with metrics and logs
type InstrumentedSongRepository struct {
	next    ports.SongRepository
	metrics *Metrics
	logger  *logger.Logger
}

// NewInstrumentedSongRepository wraps next
func NewInstrumentedSongRepository(next ports.SongRepository, metrics *Metrics, log *logger.Logger) *InstrumentedSongRepository {
	return &InstrumentedSongRepository{
		next:    next,
		metrics: metrics,
		logger:  log.WithComponent("store"),
	}
}

var _ ports.SongRepository = (*InstrumentedSongRepository)(nil)

func (r *InstrumentedSongRepository) observe(operation, songID string, start time.Time, err error) {
	elapsed := time.Since(start)

	result := "ok"
	switch {
	case errors.Is(err, entities.ErrSongNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}

	r.metrics.operations.WithLabelValues(operation, result).Inc()
	r.metrics.duration.WithLabelValues(operation).Observe(elapsed.Seconds())

	// not-found is an expected outcome, not a store failure
	if result == "not_found" {
		err = nil
	}
	r.logger.LogStoreOperation(operation, songID, float64(elapsed.Nanoseconds())/1e6, err)
}

func (r *InstrumentedSongRepository) List(ctx context.Context) ([]*entities.Song, error) {
	start := time.Now()
	songs, err := r.next.List(ctx)
	r.observe("list", "", start, err)
	return songs, err
}

func (r *InstrumentedSongRepository) GetByID(ctx context.Context, id string) (*entities.Song, error) {
	start := time.Now()
	song, err := r.next.GetByID(ctx, id)
	r.observe("get", id, start, err)
	return song, err
}

func (r *InstrumentedSongRepository) Create(ctx context.Context, song *entities.Song) error {
	start := time.Now()
	err := r.next.Create(ctx, song)
	r.observe("create", song.ID, start, err)
	return err
}

func (r *InstrumentedSongRepository) Update(ctx context.Context, id string, patch entities.SongPatch) (*entities.Song, error) {
	start := time.Now()
	song, err := r.next.Update(ctx, id, patch)
	r.observe("update", id, start, err)
	return song, err
}

func (r *InstrumentedSongRepository) Delete(ctx context.Context, id string) (*entities.Song, error) {
	start := time.Now()
	song, err := r.next.Delete(ctx, id)
	r.observe("delete", id, start, err)
	return song, err
}

func (r *InstrumentedSongRepository) Count(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := r.next.Count(ctx)
	r.observe("count", "", start, err)
	return n, err
}

func (r *InstrumentedSongRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}
