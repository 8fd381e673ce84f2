package preset

import "strings"

const invalidCharReplacement = "_"

// artifactReplacer escapes the characters that would split an artifact
// identifier into path segments.
var artifactReplacer = strings.NewReplacer(
	" ", invalidCharReplacement,
	"/", invalidCharReplacement,
	"\\", invalidCharReplacement,
)

// ArtifactName derives the artifact identifier for a preset display name:
// spaces and path separators become underscores and FileExtension is
// appended. Other characters, ':' included, are kept as they are.
func ArtifactName(name string) string {
	return artifactReplacer.Replace(name) + FileExtension
}
