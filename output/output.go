// Package output encodes, validates and writes generated data files.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	diffpatch "github.com/sourcegraph/go-diff-patch"
	"github.com/xeipuuv/gojsonschema"
)

// ErrChanged is returned in check mode when a generated file differs from
// the file on disk.
var ErrChanged = errors.New("generated output is out of date")

// File is a generated file and its full contents.
type File struct {
	Path string
	Data []byte
}

// Options controls Write.
type Options struct {
	// Check compares instead of writing.
	Check bool
	// Diff, if set, receives a unified diff for every file that changes.
	Diff io.Writer
}

// JSON encodes v with two-space indentation, UTF-8 text as is, and a
// trailing newline.
func JSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks an encoded document against a JSON schema.
func Validate(schema, doc []byte) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !res.Valid() {
		errs := make([]string, len(res.Errors()))
		for i, desc := range res.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("data validation failed: %v", errs)
	}
	return nil
}

// Write stores files, creating parent directories as needed, and returns
// the paths whose contents changed. Nothing is written in check mode; if
// any file would change, the changed paths are returned with ErrChanged.
func Write(files []File, opts Options) ([]string, error) {
	var changed []string
	for _, f := range files {
		old, err := os.ReadFile(f.Path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		if err == nil && bytes.Equal(old, f.Data) {
			continue
		}
		changed = append(changed, f.Path)
		if opts.Diff != nil {
			fmt.Fprint(opts.Diff, diffpatch.GeneratePatch(f.Path, string(old), string(f.Data)))
		}
	}

	if opts.Check {
		if len(changed) > 0 {
			return changed, ErrChanged
		}
		return nil, nil
	}

	for _, f := range files {
		if dir := filepath.Dir(f.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		if err := os.WriteFile(f.Path, f.Data, 0o644); err != nil {
			return nil, err
		}
	}
	return changed, nil
}
