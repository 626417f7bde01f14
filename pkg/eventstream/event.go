package eventstream

import (
	"time"

	"github.com/google/uuid"

	"github.com/vdk888/knowledge/pkg/knowledge"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeProgressUpdated is emitted after a progress row is created or updated.
	EventTypeProgressUpdated = "knowledge.progress.updated"

	// SourceService names this service in emitted events.
	SourceService = "knowledge"
)

// ProgressAction tells whether the row was written by an upsert or a partial update.
type ProgressAction string

const (
	ProgressUpserted ProgressAction = "upserted"
	ProgressPatched  ProgressAction = "patched"
)

// ProgressEvent is a transport-neutral event payload for a progress change.
type ProgressEvent struct {
	SchemaVersion int                    `json:"schema_version"`
	EventType     string                 `json:"event_type"`
	EventID       string                 `json:"event_id"`
	EmittedAt     time.Time              `json:"emitted_at"`
	Source        EventSource            `json:"source"`
	Action        ProgressAction         `json:"action"`
	Progress      knowledge.UserProgress `json:"progress"`
}

// EventSource identifies where the change originated.
type EventSource struct {
	Service   string `json:"service"`
	RequestID string `json:"request_id,omitempty"`
}

// NewProgressEvent wraps p in a new event with a fresh id.
func NewProgressEvent(p knowledge.UserProgress, action ProgressAction, requestID string, now time.Time) *ProgressEvent {
	return &ProgressEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypeProgressUpdated,
		EventID:       uuid.NewString(),
		EmittedAt:     now.UTC(),
		Source: EventSource{
			Service:   SourceService,
			RequestID: requestID,
		},
		Action:   action,
		Progress: p,
	}
}
