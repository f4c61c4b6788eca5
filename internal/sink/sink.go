// Package sink persists rendered artifacts only when their content changes.
package sink

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/inovacc/envsync/internal/encoding"
)

// FilePerm is the permission used for report and state files.
const FilePerm os.FileMode = 0644

// Writer writes artifacts to disk, skipping writes that would not change anything.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a Writer. A nil logger disables logging.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Writer{logger: logger}
}

// WriteIfChanged replaces the file at path with content unless the file already
// holds exactly those bytes. A missing file counts as different. It reports
// whether the file was written.
func (w *Writer) WriteIfChanged(path string, content []byte) (bool, error) {
	existing, err := encoding.ReadFile(path)
	if err != nil {
		return false, err
	}

	if existing != nil && bytes.Equal(existing, content) {
		w.logger.Debug("sink unchanged", slog.String("path", path))
		return false, nil
	}

	if err := encoding.WriteFileAtomic(path, content, FilePerm); err != nil {
		return false, err
	}

	w.logger.Debug("sink written",
		slog.String("path", path),
		slog.Int("bytes", len(content)),
	)

	return true, nil
}
