// Package csvfile loads crop parameter tables from delimited text files.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/couchcryptid/crop-profile-etl/internal/domain"
	"github.com/spf13/afero"
)

const utf8BOM = "\ufeff"

// Reader loads the whole crop table into memory.
// It implements pipeline.Extractor.
type Reader struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for the table at path on fs.
func NewReader(fs afero.Fs, path string, logger *slog.Logger) *Reader {
	return &Reader{fs: fs, path: path, logger: logger}
}

// Extract reads every row of the table in source order. Any open or parse
// failure is returned as a *domain.SourceReadError.
func (r *Reader) Extract(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, err
	}

	f, err := r.fs.Open(r.path)
	if err != nil {
		return domain.Dataset{}, &domain.SourceReadError{Path: r.path, Err: err}
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return domain.Dataset{}, &domain.SourceReadError{Path: r.path, Err: err}
	}

	r.logger.Info("crop source loaded", "path", r.path, "records", len(ds.Records), "columns", len(ds.Header))
	return ds, nil
}

// Parse decodes a header row followed by data rows. Rows shorter than the
// header leave the trailing fields absent; cells past the header are ignored.
// Stray quotes inside unquoted cells are kept as literal text.
func Parse(src io.Reader) (domain.Dataset, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.Dataset{}, errors.New("missing header row")
	}
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("parse header: %w", err)
	}
	header := normalizeHeader(first)

	var records []domain.CropRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("parse csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, domain.CropRecord{Line: line, Fields: rowFields(header, row)})
	}

	return domain.Dataset{Header: header, Records: records}, nil
}

func normalizeHeader(row []string) []string {
	header := make([]string, len(row))
	for i, h := range row {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}
	return header
}

func rowFields(header, row []string) map[string]string {
	fields := make(map[string]string, len(header))
	for i, h := range header {
		if h == "" || i >= len(row) {
			continue
		}
		fields[h] = row[i]
	}
	return fields
}
