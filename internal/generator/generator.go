// Package generator runs a preset generation batch: it builds every catalog
// entry, checks that artifact identifiers are unique, and writes the records
// one after another into a content store.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/book-expert/logger"
	"github.com/bretbouchard/choral-v2/internal/catalog"
	"github.com/bretbouchard/choral-v2/internal/core"
	"github.com/bretbouchard/choral-v2/internal/preset"
	"github.com/google/uuid"
)

var (
	// ErrNilBuilder indicates that no preset builder was supplied.
	ErrNilBuilder = errors.New("preset builder cannot be nil")
	// ErrNilWriter indicates that no artifact writer was supplied.
	ErrNilWriter = errors.New("artifact writer cannot be nil")
	// ErrNilStore indicates that no content store was supplied.
	ErrNilStore = errors.New("content store cannot be nil")
	// ErrNilLogger indicates that no logger was supplied.
	ErrNilLogger = errors.New("logger cannot be nil")
)

// Generator turns an assembled catalog batch into stored artifacts.
type Generator struct {
	builder   *preset.Builder
	writer    *Writer
	publisher core.EventPublisher
	policy    CollisionPolicy
	log       *logger.Logger
	newRunID  func() string
}

// New creates a Generator. publisher may be nil.
func New(
	builder *preset.Builder,
	writer *Writer,
	publisher core.EventPublisher,
	policy CollisionPolicy,
	log *logger.Logger,
) (*Generator, error) {
	if builder == nil {
		return nil, ErrNilBuilder
	}

	if writer == nil {
		return nil, ErrNilWriter
	}

	if log == nil {
		return nil, ErrNilLogger
	}

	policy, err := ParseCollisionPolicy(string(policy))
	if err != nil {
		return nil, err
	}

	return &Generator{
		builder:   builder,
		writer:    writer,
		publisher: publisher,
		policy:    policy,
		log:       log,
		newRunID:  uuid.NewString,
	}, nil
}

// ThemeCount is the number of artifacts written for one theme.
type ThemeCount struct {
	Theme string
	Count int
}

// Summary describes a completed run.
type Summary struct {
	RunID string
	// Written counts store writes, one per entry.
	Written int
	// Keys lists the distinct artifact keys in first-written order.
	Keys    []string
	ByTheme []ThemeCount
}

// Print writes the closing report of a run.
func (s Summary) Print(out io.Writer) error {
	_, err := fmt.Fprintf(out, "\n✓ Generated %d presets!\n", s.Written)
	if err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}

	for _, count := range s.ByTheme {
		_, err = fmt.Fprintf(out, "  - %s: %d\n", count.Theme, count.Count)
		if err != nil {
			return fmt.Errorf("failed to print summary: %w", err)
		}
	}

	return nil
}

// Run builds, checks and writes every entry in order. Any error aborts the
// run; artifacts written before the failure stay in the store.
func (g *Generator) Run(ctx context.Context, entries []catalog.Entry) (Summary, error) {
	runID := g.newRunID()
	g.log.Info("Run %s: generating %d presets", runID, len(entries))

	built, err := g.buildAll(entries)
	if err != nil {
		g.log.Error("Run %s: %v", runID, err)

		return Summary{RunID: runID}, err
	}

	err = g.checkConflicts(runID, built)
	if err != nil {
		return Summary{RunID: runID}, err
	}

	summary := Summary{RunID: runID}
	seenKeys := make(map[string]struct{}, len(built))

	for _, entry := range built {
		ctxErr := ctx.Err()
		if ctxErr != nil {
			g.log.Error("Run %s: interrupted after %d of %d presets: %v", runID, summary.Written, len(built), ctxErr)

			return summary, fmt.Errorf("generation interrupted: %w", ctxErr)
		}

		key, writeErr := g.writer.Write(ctx, entry.record)
		if writeErr != nil {
			g.log.Error("Run %s: failed to write %s: %v", runID, entry.ref, writeErr)

			return summary, writeErr
		}

		summary.Written++
		summary.ByTheme = addThemeCount(summary.ByTheme, entry.ref.Theme)

		if _, seen := seenKeys[key]; !seen {
			seenKeys[key] = struct{}{}
			summary.Keys = append(summary.Keys, key)
		}

		publishErr := g.publish(ctx, runID, entry, key)
		if publishErr != nil {
			g.log.Error("Run %s: failed to announce %s: %v", runID, key, publishErr)

			return summary, publishErr
		}
	}

	g.log.Info("Run %s: wrote %d presets into %d artifacts", runID, summary.Written, len(summary.Keys))

	return summary, nil
}

// buildAll builds every entry before anything is written, so a bad
// definition aborts the run with the store untouched.
func (g *Generator) buildAll(entries []catalog.Entry) ([]builtEntry, error) {
	built := make([]builtEntry, 0, len(entries))

	for _, entry := range entries {
		ref := refFor(entry)

		record, err := g.builder.Build(entry.Definition)
		if err != nil {
			return nil, &DefinitionError{Entry: ref, Err: err}
		}

		built = append(built, builtEntry{
			ref:    ref,
			record: record,
			key:    record.ArtifactName(),
		})
	}

	return built, nil
}

func (g *Generator) checkConflicts(runID string, built []builtEntry) error {
	conflicts := findConflicts(built)
	if len(conflicts) == 0 {
		return nil
	}

	if g.policy == CollisionOverwrite {
		for _, conflict := range conflicts {
			g.log.Warn("Run %s: %s will be overwritten by %s", runID, conflict.First, conflict.Second)
		}

		return nil
	}

	errs := make([]error, 0, len(conflicts))
	for _, conflict := range conflicts {
		g.log.Error("Run %s: %v", runID, conflict)
		errs = append(errs, conflict)
	}

	return errors.Join(errs...)
}

func (g *Generator) publish(ctx context.Context, runID string, entry builtEntry, key string) error {
	if g.publisher == nil {
		return nil
	}

	err := g.publisher.PublishPresetWritten(ctx, core.PresetWritten{
		RunID:       runID,
		Name:        entry.record.Metadata.Name,
		Category:    entry.record.Metadata.Category,
		ArtifactKey: key,
	})
	if err != nil {
		return fmt.Errorf("failed to publish preset %q: %w", entry.record.Metadata.Name, err)
	}

	return nil
}

func addThemeCount(counts []ThemeCount, theme string) []ThemeCount {
	for i := range counts {
		if counts[i].Theme == theme {
			counts[i].Count++

			return counts
		}
	}

	return append(counts, ThemeCount{Theme: theme, Count: 1})
}
