// Package notify announces generated presets on a NATS subject.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/book-expert/events"
	"github.com/bretbouchard/choral-v2/internal/core"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// DefaultFlushTimeout bounds Flush when the caller's context has no deadline.
const DefaultFlushTimeout = 5 * time.Second

var (
	// ErrNilConnection indicates that no NATS connection was supplied.
	ErrNilConnection = errors.New("nats connection cannot be nil")
	// ErrEmptySubject indicates that no subject was configured.
	ErrEmptySubject = errors.New("subject cannot be empty")
)

// PresetGeneratedEvent is published once per stored artifact. The header's
// WorkflowID carries the generation run ID.
type PresetGeneratedEvent struct {
	Header      events.EventHeader `json:"header"`
	PresetName  string             `json:"preset_name"`
	Category    string             `json:"category"`
	ArtifactKey string             `json:"artifact_key"`
	Bucket      string             `json:"bucket,omitempty"`
}

// Publisher implements core.EventPublisher over a NATS connection.
type Publisher struct {
	natsConnection *nats.Conn
	subject        string
	bucket         string
	now            func() time.Time
}

// NewPublisher creates a Publisher for subject. bucket names the object
// store the artifacts live in and may be empty.
func NewPublisher(natsConnection *nats.Conn, subject, bucket string) (*Publisher, error) {
	if natsConnection == nil {
		return nil, ErrNilConnection
	}

	if subject == "" {
		return nil, ErrEmptySubject
	}

	return &Publisher{
		natsConnection: natsConnection,
		subject:        subject,
		bucket:         bucket,
		now:            time.Now,
	}, nil
}

// PublishPresetWritten marshals and publishes a PresetGeneratedEvent.
func (p *Publisher) PublishPresetWritten(_ context.Context, written core.PresetWritten) error {
	event := PresetGeneratedEvent{
		Header: events.EventHeader{
			Timestamp:  p.now(),
			WorkflowID: written.RunID,
			EventID:    uuid.NewString(),
			UserID:     "",
			TenantID:   "",
		},
		PresetName:  written.Name,
		Category:    written.Category,
		ArtifactKey: written.ArtifactKey,
		Bucket:      p.bucket,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal preset event: %w", err)
	}

	err = p.natsConnection.Publish(p.subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish preset event on %s: %w", p.subject, err)
	}

	return nil
}

// Flush waits until every published event has reached the server. A context
// without a deadline is bounded by DefaultFlushTimeout.
func (p *Publisher) Flush(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, DefaultFlushTimeout)
		defer cancel()
	}

	err := p.natsConnection.FlushWithContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to flush preset events: %w", err)
	}

	return nil
}
