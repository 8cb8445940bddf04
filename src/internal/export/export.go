package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"zotkit/src/internal/dates"
	"zotkit/src/internal/schema"
)

// ErrUnsupportedFormat reports an unrecognized export format string.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists the supported export formats.
func Formats() []string { return []string{"bibtex", "json", "markdown", "ris"} }

// Valid reports whether format names a supported export format. Callers use
// it to reject bad formats before any fetch happens.
func Valid(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "bibtex", "json", "markdown", "ris":
		return nil
	}
	return fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, format, strings.Join(Formats(), ", "))
}

// Render converts items into the requested textual format.
func Render(items []schema.Item, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "bibtex":
		return renderBibTeX(items), nil
	case "json":
		return renderCSLJSON(items)
	case "markdown":
		return []byte(renderMarkdown(items)), nil
	case "ris":
		return []byte(renderRIS(items)), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, format, strings.Join(Formats(), ", "))
	}
}

// Ext returns the file extension for a supported format.
func Ext(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "bibtex":
		return "bib"
	case "json":
		return "json"
	case "markdown":
		return "md"
	case "ris":
		return "ris"
	}
	return "txt"
}

// Filename builds the default export filename: library[-<collection>]-<yyyymmdd>.<ext>.
func Filename(format, collection string) string {
	suffix := ""
	if s := strings.TrimSpace(collection); s != "" {
		suffix = "-" + strings.ReplaceAll(s, " ", "-")
	}
	return fmt.Sprintf("library%s-%s.%s", suffix, dates.Stamp(), Ext(format))
}

// WriteFile writes data via a temp file and rename so a failure never leaves
// a half-written export behind. The target directory is created on demand.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
