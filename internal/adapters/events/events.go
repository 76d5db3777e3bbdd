package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	sdk "github.com/segmentio/kafka-go"

	"github.com/repertorio/core/internal/domain/entities"
	"github.com/repertorio/core/internal/infrastructure/config"
	"github.com/repertorio/core/internal/ports"
)

// New returns the publisher selected by cfg
func New(cfg config.EventsConfig) (ports.EventPublisher, error) {
	if !cfg.Enabled {
		return NopPublisher{}, nil
	}

	params := KafkaParams{
		Brokers:      cfg.BrokerList(),
		Topic:        cfg.Topic,
		WriteTimeout: cfg.WriteTimeout,
	}
	if err := ValidateKafkaParams(params); err != nil {
		return nil, err
	}

	return NewKafkaPublisher(params), nil
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, entities.SongEvent) error { return nil }
func (NopPublisher) Close() error                                      { return nil }

// KafkaParams configures KafkaPublisher
type KafkaParams struct {
	// Required
	Brokers []string
	Topic   string

	// Optional
	WriteTimeout time.Duration
}

// ValidateKafkaParams ensures required params are set.
func ValidateKafkaParams(p KafkaParams) error {
	if len(p.Brokers) == 0 {
		return errors.New("kafka brokers are required")
	}
	if p.Topic == "" {
		return errors.New("kafka topic is required")
	}
	return nil
}

// messageWriter is the subset of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...sdk.Message) error
	Close() error
}

// KafkaPublisher writes song events to a Kafka topic keyed by song id
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaPublisher creates a publisher backed by a kafka-go writer
func NewKafkaPublisher(p KafkaParams) *KafkaPublisher {
	if p.WriteTimeout <= 0 {
		p.WriteTimeout = 5 * time.Second
	}

	writer := &sdk.Writer{
		Addr:         sdk.TCP(p.Brokers...),
		Topic:        p.Topic,
		RequiredAcks: sdk.RequireAll,
		Balancer:     &sdk.Hash{},
		WriteTimeout: p.WriteTimeout,
	}

	return &KafkaPublisher{writer: writer, timeout: p.WriteTimeout}
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)
var _ ports.EventPublisher = NopPublisher{}

func (p *KafkaPublisher) Publish(ctx context.Context, event entities.SongEvent) error {
	serialized, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, sdk.Message{
		Key:   []byte(event.Song.ID),
		Value: serialized,
		Headers: []sdk.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
