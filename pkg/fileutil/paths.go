package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportPath builds a timestamped export file path:
// <dir>/<name>_<YYYY-MM-DD>_<HH-MM>.<ext>
func ExportPath(dir, name string, t time.Time, ext string) string {
	stamp := fmt.Sprintf("%s_%s", t.Format("2006-01-02"), strings.ReplaceAll(t.Format("15:04"), ":", "-"))
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", name, stamp, ext))
}

// EnsureDir creates dir (and parents) if it does not exist yet.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating export directory %s: %w", dir, err)
	}
	return nil
}
