// Package jsonfile persists crop profiles as a pretty-printed JSON document.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/crop-profile-etl/internal/domain"
	"github.com/spf13/afero"
)

// Writer replaces a JSON file with the full profile collection.
// It implements pipeline.Loader.
type Writer struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer targeting path on fs. The parent directory must
// already exist.
func NewWriter(fs afero.Fs, path string, logger *slog.Logger) *Writer {
	return &Writer{fs: fs, path: path, logger: logger}
}

// Name identifies the sink in logs and reports.
func (w *Writer) Name() string { return w.path }

// Load encodes profiles as a single JSON array and atomically replaces the
// target file. On failure the target is left untouched and a
// *domain.SinkWriteError is returned.
func (w *Writer) Load(ctx context.Context, profiles []domain.CropProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(profiles)
	if err != nil {
		return &domain.SinkWriteError{Destination: w.path, Err: err}
	}
	if err := writeAtomic(w.fs, w.path, data); err != nil {
		return &domain.SinkWriteError{Destination: w.path, Err: err}
	}

	w.logger.Info("crop profiles saved", "path", w.path, "profiles", len(profiles), "bytes", len(data))
	return nil
}

// Encode renders profiles as a JSON array with two-space indentation and a
// trailing newline. A nil slice encodes as an empty array.
func Encode(profiles []domain.CropProfile) ([]byte, error) {
	if profiles == nil {
		profiles = []domain.CropProfile{}
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode crop profiles: %w", err)
	}
	return append(data, '\n'), nil
}

// outputMode is applied to a newly created output file.
const outputMode os.FileMode = 0o644

// writeAtomic writes data to a temp file beside path and renames it into place,
// so readers never observe a partial document. An existing target keeps its
// permissions; a new one gets outputMode.
func writeAtomic(fs afero.Fs, path string, data []byte) (err error) {
	mode := outputMode
	if st, statErr := fs.Stat(path); statErr == nil {
		mode = st.Mode().Perm()
	}

	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = fs.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = fs.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
