// Package catalog holds the literal preset definitions shipped with the
// engine and assembles themed groups of them into one generation batch.
package catalog

import (
	"embed"
	"fmt"
	"path"

	"github.com/bretbouchard/choral-v2/internal/preset"
)

//go:embed themes/*.toml
var factoryThemes embed.FS

// FactoryThemeNames lists the embedded themes in generation order.
var FactoryThemeNames = []string{"male", "female", "child", "mixed", "nonbinary", "languages"}

// Theme is an ordered group of definitions authored around one subject.
type Theme struct {
	Name string `toml:"name" yaml:"name"`
	// Category is stamped on entries that do not set their own.
	Category    string              `toml:"category" yaml:"category"`
	Definitions []preset.Definition `toml:"preset"   yaml:"preset"`
}

// Entry is one definition positioned in an assembled batch.
type Entry struct {
	Theme      string
	Position   int
	Definition preset.Definition
}

// Assemble concatenates the themes into one batch, keeping the order of the
// themes and of the definitions inside each theme. Duplicates pass through.
func Assemble(themes ...Theme) []Entry {
	size := 0
	for _, theme := range themes {
		size += len(theme.Definitions)
	}

	entries := make([]Entry, 0, size)

	for _, theme := range themes {
		for _, def := range theme.Definitions {
			if def.Category == "" {
				def.Category = theme.Category
			}

			entries = append(entries, Entry{
				Theme:      theme.Name,
				Position:   len(entries),
				Definition: def,
			})
		}
	}

	return entries
}

// Factory decodes the embedded factory themes in FactoryThemeNames order.
func Factory() ([]Theme, error) {
	themes := make([]Theme, 0, len(FactoryThemeNames))

	for _, name := range FactoryThemeNames {
		theme, err := FactoryTheme(name)
		if err != nil {
			return nil, err
		}

		themes = append(themes, theme)
	}

	return themes, nil
}

// FactoryTheme decodes one embedded factory theme by name.
func FactoryTheme(name string) (Theme, error) {
	file, err := factoryThemes.Open(path.Join("themes", name+".toml"))
	if err != nil {
		return Theme{}, fmt.Errorf("catalog: open factory theme %q: %w", name, err)
	}
	defer file.Close()

	theme, err := LoadTheme(file, FormatTOML)
	if err != nil {
		return Theme{}, fmt.Errorf("catalog: factory theme %q: %w", name, err)
	}

	if theme.Name == "" {
		theme.Name = name
	}

	return theme, nil
}
