package nop

import (
	"context"

	"github.com/vdk888/knowledge/pkg/eventstream"
)

// Publisher is a no-op eventstream publisher used for tests and disabled mode.
type Publisher struct{}

// NewPublisher creates a new no-op eventstream publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishProgress validates input and otherwise does nothing.
func (p *Publisher) PublishProgress(_ context.Context, event *eventstream.ProgressEvent) error {
	if event == nil {
		return eventstream.ErrNilProgressEvent
	}

	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
