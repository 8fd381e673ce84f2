package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bretbouchard/choral-v2/internal/catalog"
	"github.com/bretbouchard/choral-v2/internal/preset"
)

// CollisionPolicy decides what happens when two entries of one batch derive
// the same artifact identifier.
type CollisionPolicy string

const (
	// CollisionFail rejects the whole batch before anything is written.
	CollisionFail CollisionPolicy = "fail"
	// CollisionOverwrite writes both; the later entry replaces the earlier one.
	CollisionOverwrite CollisionPolicy = "overwrite"
)

var (
	// ErrArtifactConflict matches every *ConflictError.
	ErrArtifactConflict = errors.New("artifact identifier conflict")
	// ErrUnknownCollisionPolicy indicates a policy name other than fail or overwrite.
	ErrUnknownCollisionPolicy = errors.New("unknown collision policy")
)

// ParseCollisionPolicy returns the policy named by s. An empty string selects CollisionFail.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(s) {
	case "", CollisionFail:
		return CollisionFail, nil
	case CollisionOverwrite:
		return CollisionOverwrite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCollisionPolicy, s)
	}
}

// EntryRef identifies an entry of the assembled batch.
type EntryRef struct {
	Position int
	Theme    string
	Name     string
}

func (r EntryRef) String() string {
	return fmt.Sprintf("%q (entry %d, theme %s)", r.Name, r.Position, r.Theme)
}

// ConflictError reports two entries that would be stored under the same key.
type ConflictError struct {
	Key    string
	First  EntryRef
	Second EntryRef
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %s derived from both %s and %s", ErrArtifactConflict, e.Key, e.First, e.Second)
}

// Is reports whether target is ErrArtifactConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrArtifactConflict
}

// DefinitionError reports a catalog entry the builder rejected.
type DefinitionError struct {
	Entry EntryRef
	Err   error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid definition %s: %v", e.Entry, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// builtEntry pairs a record with the catalog entry it came from.
type builtEntry struct {
	ref    EntryRef
	record preset.Record
	key    string
}

func refFor(entry catalog.Entry) EntryRef {
	return EntryRef{
		Position: entry.Position,
		Theme:    entry.Theme,
		Name:     entry.Definition.Name,
	}
}

// findConflicts returns every pair of entries sharing a key, in batch order.
// Keys are compared case-insensitively, as on the default macOS and Windows
// filesystems. Each later entry is paired with the entry it would overwrite.
func findConflicts(built []builtEntry) []*ConflictError {
	var conflicts []*ConflictError

	latest := make(map[string]EntryRef, len(built))

	for _, entry := range built {
		folded := strings.ToLower(entry.key)

		if previous, ok := latest[folded]; ok {
			conflicts = append(conflicts, &ConflictError{
				Key:    entry.key,
				First:  previous,
				Second: entry.ref,
			})
		}

		latest[folded] = entry.ref
	}

	return conflicts
}
