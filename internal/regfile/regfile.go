// Package regfile decodes the YAML/JSON registry files (jobs, publishers).
package regfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type decoder struct {
	name string
	ext  string
	fn   func([]byte, any) error
}

var decoders = []decoder{
	{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
	{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
	{name: "json", ext: ".json", fn: json.Unmarshal},
}

// Load reads the kind file at path and decodes it into T.
func Load[T any](path, kind string) (T, error) {
	var zero T
	path = strings.TrimSpace(path)
	if path == "" {
		return zero, fmt.Errorf("%s file path is empty", kind)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("read %s file: %w", kind, err)
	}
	return Decode[T](raw, filepath.Ext(path), kind)
}

// Decode picks the decoder from ext; an unknown or empty ext tries every format in turn.
func Decode[T any](data []byte, ext, kind string) (T, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	known := false
	for _, d := range decoders {
		if d.ext == ext {
			known = true
			break
		}
	}

	var errs []error
	for _, d := range decoders {
		if known && d.ext != ext {
			continue
		}
		var out T
		if err := d.fn(data, &out); err != nil {
			errs = append(errs, fmt.Errorf("decode %s %s: %w", d.name, kind, err))
			continue
		}
		return out, nil
	}

	var zero T
	return zero, fmt.Errorf("%s file format not recognized (expected YAML or JSON): %w", kind, errors.Join(errs...))
}
