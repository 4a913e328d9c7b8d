package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Codec converts a document to and from its on-disk text form.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(b []byte, v any) error
}

var (
	YAML Codec = yamlCodec{}
	JSON Codec = jsonCodec{}
)

type yamlCodec struct{}

func (yamlCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) Unmarshal(b []byte, v any) error {
	return yaml.Unmarshal(b, v)
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (jsonCodec) Unmarshal(b []byte, v any) error {
	return json.Unmarshal(b, v)
}

// Error is returned for any load or save failure other than a missing file.
type Error struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Load decodes the document at path.
//
// A missing file is the normal first-run state and yields (nil, nil); every
// other I/O or decode failure is returned as an *Error.
func Load[T any](path string, codec Codec) (*T, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &Error{Op: "load", Path: path, Err: err}
	}
	v := new(T)
	if err := codec.Unmarshal(b, v); err != nil {
		return nil, &Error{Op: "load", Path: path, Err: err}
	}
	return v, nil
}

// Save encodes v and replaces the document at path, creating parent
// directories as needed. The file is written to a temp file and renamed so a
// reader never sees a partial document.
func Save(path string, v any, codec Codec) error {
	b, err := codec.Marshal(v)
	if err != nil {
		return &Error{Op: "save", Path: path, Err: err}
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{Op: "save", Path: path, Err: err}
	}
	if err := atomicWriteFile(dir, filepath.Base(path)+".*.tmp", path, b, 0o644); err != nil {
		return &Error{Op: "save", Path: path, Err: err}
	}
	return nil
}
