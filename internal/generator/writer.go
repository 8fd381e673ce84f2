package generator

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/book-expert/logger"
	"github.com/bretbouchard/choral-v2/internal/core"
	"github.com/bretbouchard/choral-v2/internal/preset"
)

const confirmationLine = "✓ Created: %s\n"

// Writer persists records into a content store, one artifact per record.
type Writer struct {
	store core.ObjectStore
	out   io.Writer
	log   *logger.Logger
}

// NewWriter creates a Writer. Confirmation lines go to out, or to standard
// output when out is nil.
func NewWriter(store core.ObjectStore, out io.Writer, log *logger.Logger) (*Writer, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	if log == nil {
		return nil, ErrNilLogger
	}

	if out == nil {
		out = os.Stdout
	}

	return &Writer{
		store: store,
		out:   out,
		log:   log,
	}, nil
}

// Write encodes r and uploads it under its artifact name, replacing any
// existing artifact with that name. It returns the key written. Once the
// upload succeeds the artifact counts as written, even if the confirmation
// line cannot be printed.
func (w *Writer) Write(ctx context.Context, r preset.Record) (string, error) {
	key := r.ArtifactName()

	data, err := preset.Encode(r)
	if err != nil {
		return "", err
	}

	err = w.store.Upload(ctx, key, data)
	if err != nil {
		return "", fmt.Errorf("failed to store preset %q as '%s': %w", r.Metadata.Name, key, err)
	}

	w.log.Info("Stored preset %q as %s (%d bytes)", r.Metadata.Name, key, len(data))

	_, err = fmt.Fprintf(w.out, confirmationLine, r.Metadata.Name)
	if err != nil {
		w.log.Warn("Stored %s but failed to print confirmation: %v", key, err)
	}

	return key, nil
}
