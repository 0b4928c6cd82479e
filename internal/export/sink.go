package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/memoro/internal/interfaces"
)

// FileSink writes rendered exports to files under a base directory, creating
// the directory tree on first write. File naming and location are the
// caller's choice; the exporter itself never touches the filesystem.
type FileSink struct {
	Dir string
}

// NewFileSink creates a sink rooted at dir
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// compile-time interface check
var _ interfaces.ExportSink = (*FileSink)(nil)

// Write stores data at <dir>/<name>
func (s *FileSink) Write(name string, data []byte) error {
	path := filepath.Join(s.Dir, filepath.Base(name))
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
