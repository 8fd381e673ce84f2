package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a theme document.
type Format int

const (
	// FormatUnknown marks files that are not theme documents.
	FormatUnknown Format = iota
	// FormatTOML is a TOML theme document.
	FormatTOML
	// FormatYAML is a YAML theme document.
	FormatYAML
)

// ErrEmptyTheme is returned for a theme document without content.
var ErrEmptyTheme = errors.New("theme document is empty")

// FormatForPath picks the format from a file extension.
func FormatForPath(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// LoadTheme decodes one theme document. Unknown keys are rejected so that a
// misspelled parameter fails loudly instead of silently taking its default.
func LoadTheme(r io.Reader, format Format) (Theme, error) {
	var theme Theme

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r).DisallowUnknownFields()

		err := dec.Decode(&theme)
		if err != nil {
			return Theme{}, fmt.Errorf("catalog: decode toml theme: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)

		err := dec.Decode(&theme)
		if errors.Is(err, io.EOF) {
			return Theme{}, ErrEmptyTheme
		}

		if err != nil {
			return Theme{}, fmt.Errorf("catalog: decode yaml theme: %w", err)
		}
	default:
		return Theme{}, fmt.Errorf("catalog: unsupported theme format %d", format)
	}

	if theme.Name == "" && theme.Category == "" && len(theme.Definitions) == 0 {
		return Theme{}, ErrEmptyTheme
	}

	return theme, nil
}

// LoadThemeFile reads a theme document from disk. A theme without a name is
// named after its file.
func LoadThemeFile(path string) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, fmt.Errorf("catalog: open theme file %q: %w", path, err)
	}
	defer f.Close()

	theme, err := LoadTheme(f, FormatForPath(path))
	if err != nil {
		return Theme{}, fmt.Errorf("catalog: theme file %q: %w", path, err)
	}

	if theme.Name == "" {
		theme.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return theme, nil
}

// LoadDir loads every TOML and YAML theme in dir, in file name order.
// Subdirectories and other files are ignored.
func LoadDir(dir string) ([]Theme, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: read theme directory %q: %w", dir, err)
	}

	var themes []Theme

	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || FormatForPath(dirEntry.Name()) == FormatUnknown {
			continue
		}

		theme, err := LoadThemeFile(filepath.Join(dir, dirEntry.Name()))
		if err != nil {
			return nil, err
		}

		themes = append(themes, theme)
	}

	return themes, nil
}
