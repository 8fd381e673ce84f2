// Package objectstore provides the content stores preset artifacts are written to.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bretbouchard/choral-v2/internal/preset"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Object headers and metadata attached to every stored preset.
const (
	PresetContentType = "application/json"
	PresetFormat      = "choirv2"

	HeaderContentType = "Content-Type"
	HeaderPresetFile  = "Choir-Preset-File"
	HeaderPresetName  = "Choir-Preset-Name"
)

// NatsObjectStore keeps preset artifacts in a JetStream object bucket, one
// object per artifact file name.
type NatsObjectStore struct {
	bucket string
	store  nats.ObjectStore
}

// NewNats creates the preset bucket, or binds to it when it already exists.
func NewNats(jetstreamContext nats.JetStreamContext, bucketName string) (*NatsObjectStore, error) {
	store, err := jetstreamContext.CreateObjectStore(presetBucketConfig(bucketName))
	if err != nil {
		if !errors.Is(err, jetstream.ErrBucketExists) && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
			return nil, fmt.Errorf("failed to create preset bucket '%s': %w", bucketName, err)
		}

		store, err = jetstreamContext.ObjectStore(bucketName)
		if err != nil {
			return nil, fmt.Errorf("failed to bind to preset bucket '%s': %w", bucketName, err)
		}
	}

	return &NatsObjectStore{
		bucket: bucketName,
		store:  store,
	}, nil
}

func presetBucketConfig(bucketName string) *nats.ObjectStoreConfig {
	return &nats.ObjectStoreConfig{
		Bucket:      bucketName,
		Description: fmt.Sprintf("Choir V2 factory presets (%s files)", preset.FileExtension),
		TTL:         0,
		MaxBytes:    0,
		Storage:     nats.FileStorage,
		Replicas:    1,
		Placement:   nil,
		Metadata:    map[string]string{"format": PresetFormat},
		Compression: false,
	}
}

// presetMeta describes the artifact stored under key.
func presetMeta(key string) *nats.ObjectMeta {
	presetName := strings.TrimSuffix(key, preset.FileExtension)

	return &nats.ObjectMeta{
		Name:        key,
		Description: "Choir V2 preset " + presetName,
		Headers: nats.Header{
			HeaderContentType: []string{PresetContentType},
			HeaderPresetFile:  []string{key},
			HeaderPresetName:  []string{presetName},
		},
		Metadata: map[string]string{"format": PresetFormat},
		Opts:     nil,
	}
}

// Bucket returns the name of the backing bucket.
func (n *NatsObjectStore) Bucket() string {
	return n.bucket
}

// Download reads the preset artifact stored under key.
func (n *NatsObjectStore) Download(_ context.Context, key string) ([]byte, error) {
	data, err := n.store.GetBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get preset '%s' from bucket '%s': %w", key, n.bucket, err)
	}

	return data, nil
}

// Upload stores a preset artifact under key, replacing any previous version.
func (n *NatsObjectStore) Upload(_ context.Context, key string, data []byte) error {
	_, err := n.store.Put(presetMeta(key), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to put preset '%s' to bucket '%s': %w", key, n.bucket, err)
	}

	return nil
}
