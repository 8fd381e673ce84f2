package generator_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bretbouchard/choral-v2/internal/catalog"
	"github.com/bretbouchard/choral-v2/internal/generator"
	"github.com/bretbouchard/choral-v2/internal/preset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errClosedOutput = errors.New("output closed")

// brokenOutput rejects every confirmation line.
type brokenOutput struct{}

func (brokenOutput) Write(_ []byte) (int, error) {
	return 0, errClosedOutput
}

func TestNewWriter_RejectsMissingCollaborators(t *testing.T) {
	t.Parallel()

	store, _ := newDirStore(t)

	_, err := generator.NewWriter(nil, nil, newTestLogger(t))
	require.ErrorIs(t, err, generator.ErrNilStore)

	_, err = generator.NewWriter(store, nil, nil)
	require.ErrorIs(t, err, generator.ErrNilLogger)
}

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	store, dir := newDirStore(t)

	var out bytes.Buffer

	writer, err := generator.NewWriter(store, &out, newTestLogger(t))
	require.NoError(t, err)

	record, err := newTestBuilder().Build(simpleDefinition("Male 1: Bass", "deep"))
	require.NoError(t, err)

	key, err := writer.Write(context.Background(), record)
	require.NoError(t, err)

	assert.Equal(t, "Male_1:_Bass.choirv2", key)
	assert.FileExists(t, filepath.Join(dir, key))
	assert.Equal(t, "✓ Created: Male 1: Bass\n", out.String())
}

func TestWriter_ConfirmationFailureKeepsArtifact(t *testing.T) {
	t.Parallel()

	store, dir := newDirStore(t)
	testLogger := newTestLogger(t)

	writer, err := generator.NewWriter(store, brokenOutput{}, testLogger)
	require.NoError(t, err)

	record, err := newTestBuilder().Build(simpleDefinition("Quiet", "no console"))
	require.NoError(t, err)

	key, err := writer.Write(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, "Quiet.choirv2", key)
	assert.FileExists(t, filepath.Join(dir, key))

	gen, err := generator.New(newTestBuilder(), writer, nil, generator.CollisionFail, testLogger)
	require.NoError(t, err)

	entries := catalog.Assemble(catalog.Theme{Name: "quiet", Category: "Factory", Definitions: []preset.Definition{
		simpleDefinition("Quiet 1", "1"),
		simpleDefinition("Quiet 2", "2"),
	}})

	summary, err := gen.Run(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Written)
	assert.Equal(t, []string{"Quiet.choirv2", "Quiet_1.choirv2", "Quiet_2.choirv2"}, listDir(t, dir))
}
