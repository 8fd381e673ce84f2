// Package notify_test tests preset announcements over NATS.
package notify_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bretbouchard/choral-v2/internal/core"
	"github.com/bretbouchard/choral-v2/internal/notify"
	"github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestNatsClient(t *testing.T) *nats.Conn {
	t.Helper()

	opts := test.DefaultTestOptions
	opts.Port = -1 // Use a random port
	server := test.RunServer(&opts)

	natsConnection, err := nats.Connect(server.ClientURL())
	if err != nil {
		t.Fatalf("Failed to connect to test NATS server: %v", err)
	}

	t.Cleanup(func() {
		natsConnection.Close()
		server.Shutdown()
	})

	return natsConnection
}

func TestPublisher_PublishPresetWritten(t *testing.T) {
	t.Parallel()

	natsConnection := createTestNatsClient(t)

	sub, err := natsConnection.SubscribeSync("presets.generated")
	require.NoError(t, err)

	publisher, err := notify.NewPublisher(natsConnection, "presets.generated", "CHOIR_PRESETS")
	require.NoError(t, err)

	ctx := context.Background()

	err = publisher.PublishPresetWritten(ctx, core.PresetWritten{
		RunID:       "run-42",
		Name:        "Male 1: Bass",
		Category:    "Gender",
		ArtifactKey: "Male_1:_Bass.choirv2",
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Flush(ctx))

	msg, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)

	var event notify.PresetGeneratedEvent

	err = json.Unmarshal(msg.Data, &event)
	require.NoError(t, err)

	assert.Equal(t, "run-42", event.Header.WorkflowID)
	assert.NotEmpty(t, event.Header.EventID)
	assert.False(t, event.Header.Timestamp.IsZero())
	assert.Equal(t, "Male 1: Bass", event.PresetName)
	assert.Equal(t, "Gender", event.Category)
	assert.Equal(t, "Male_1:_Bass.choirv2", event.ArtifactKey)
	assert.Equal(t, "CHOIR_PRESETS", event.Bucket)
}

func TestNewPublisher_Validation(t *testing.T) {
	t.Parallel()

	_, err := notify.NewPublisher(nil, "presets.generated", "")
	require.ErrorIs(t, err, notify.ErrNilConnection)

	_, err = notify.NewPublisher(createTestNatsClient(t), "", "")
	require.ErrorIs(t, err, notify.ErrEmptySubject)
}
