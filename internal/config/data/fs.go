package data

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	dirPerm  fs.FileMode = 0o700
	filePerm fs.FileMode = 0o600
)

// SafeName turns a profile or resource name into a single path segment.
func SafeName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '/' || r == '\\' || r == ':'
	})
	return strings.Join(parts, "-")
}

// EnsureParent creates the directory holding path.
func EnsureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create directory for %q: %w", path, err)
	}
	return nil
}

// ReadYAML decodes path into out. A missing file is not an error and
// reports false.
func ReadYAML(path string, out any) (bool, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("decode %q: %w", path, err)
	}

	return true, nil
}

// WriteYAML encodes v next to path and renames it into place, so readers
// never see a half written file.
func WriteYAML(path string, v any) error {
	if err := EnsureParent(path); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("stage %q: %w", path, err)
	}
	defer os.Remove(f.Name())

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := f.Chmod(filePerm); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), path)
}
