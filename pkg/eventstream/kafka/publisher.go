// Package kafka publishes progress events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/vdk888/knowledge/pkg/eventstream"
)

const (
	headerEventType     = "event_type"
	headerSchemaVersion = "schema_version"
)

// writer is the subset of *kafkago.Writer the publisher uses.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Config configures the Kafka publisher.
type Config struct {
	Brokers []string
	Topic   string

	// WriteTimeout bounds each publish. Zero uses the writer default.
	WriteTimeout time.Duration
}

// Publisher writes each event as one message keyed by user id, so the events
// of a user stay ordered within a partition.
type Publisher struct {
	w     writer
	topic string
}

// NewPublisher creates a Kafka publisher. The connection is established
// lazily on the first publish.
func NewPublisher(c Config) (*Publisher, error) {
	if len(c.Brokers) == 0 {
		return nil, errors.New("kafka publisher needs at least one broker")
	}
	if c.Topic == "" {
		return nil, errors.New("kafka publisher needs a topic")
	}

	return newPublisher(&kafkago.Writer{
		Addr:                   kafkago.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		WriteTimeout:           c.WriteTimeout,
		AllowAutoTopicCreation: true,
	}, c.Topic), nil
}

func newPublisher(w writer, topic string) *Publisher {
	return &Publisher{w: w, topic: topic}
}

// PublishProgress encodes event as JSON and writes it.
func (p *Publisher) PublishProgress(ctx context.Context, event *eventstream.ProgressEvent) error {
	if event == nil {
		return eventstream.ErrNilProgressEvent
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding progress event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(strconv.FormatInt(event.Progress.UserID, 10)),
		Value: payload,
		Time:  event.EmittedAt,
		Headers: []kafkago.Header{
			{Key: headerEventType, Value: []byte(event.EventType)},
			{Key: headerSchemaVersion, Value: []byte(strconv.Itoa(event.SchemaVersion))},
		},
	}

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing progress event to %s: %w", p.topic, err)
	}

	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	return p.w.Close()
}

var _ eventstream.Publisher = (*Publisher)(nil)
