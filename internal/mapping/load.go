package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source tells where a loaded mapping came from.
type Source string

const (
	SourceFile    Source = "file"
	SourceCreated Source = "created"
	SourceDefault Source = "default"
)

// LoadError reports a mapping file that exists but could not be used.
// The built-in default is returned alongside it.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load mapping %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the mapping file at path. A missing file is created from
// Default. A file that cannot be read, parsed or validated yields Default
// together with a *LoadError so callers can warn and carry on.
func Load(path string) (Mapping, Source, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		def := Default()
		if werr := Write(path, def); werr != nil {
			return def, SourceDefault, &LoadError{Path: path, Err: fmt.Errorf("create default: %w", werr)}
		}
		return def, SourceCreated, nil
	}
	if err != nil {
		return Default(), SourceDefault, &LoadError{Path: path, Err: err}
	}

	m, err := Parse(raw)
	if err != nil {
		return Default(), SourceDefault, &LoadError{Path: path, Err: err}
	}
	return m, SourceFile, nil
}

// Parse validates raw JSON against the mapping schema and decodes it.
func Parse(raw []byte) (Mapping, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var m Mapping
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode mapping: %w", err)
	}
	return m, nil
}

// Write stores m as indented UTF-8 JSON, creating parent directories.
func Write(path string, m Mapping) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create mapping dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
