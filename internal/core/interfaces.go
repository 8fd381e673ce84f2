// Package core defines the collaborator interfaces of the preset generator.
package core

import (
	"context"
	"time"
)

// ObjectStore defines the interface for interacting with a key-value blob store.
// Upload replaces any existing object stored under the same key.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte) error
}

// Clock supplies the wall-clock time used to stamp generated records.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the process wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// PresetWritten describes one artifact that has just been persisted.
type PresetWritten struct {
	RunID       string
	Name        string
	Category    string
	ArtifactKey string
}

// EventPublisher announces persisted artifacts to downstream consumers.
type EventPublisher interface {
	PublishPresetWritten(ctx context.Context, written PresetWritten) error
}
