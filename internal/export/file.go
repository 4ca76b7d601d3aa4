package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppanel/ppadmin/internal/config/data"
)

const stampFormat = "20060102-150405"

// FileName names an export of a resource taken at the given time.
func FileName(resource string, f Format, at time.Time) string {
	return data.SafeName(resource) + "-" + at.Format(stampFormat) + f.Ext()
}

// SaveFile writes the table under dir and returns the file path.
func SaveFile(dir, resource string, t Table, f Format, at time.Time) (string, error) {
	raw, err := Encode(t, f)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(resource, f, at))
	if err := data.EnsureParent(path); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return "", fmt.Errorf("write export %q: %w", path, err)
	}

	return path, nil
}
