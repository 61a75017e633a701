package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"absa_dashboard/internal/domain"
)

// SourceOpener returns a RecordSource reading the file at path.
type SourceOpener func(path string) domain.RecordSource

// ImportService copies spreadsheet files into a RecordWriter (MySQL).
type ImportService struct {
	open   SourceOpener
	writer domain.RecordWriter
}

func NewImportService(open SourceOpener, w domain.RecordWriter) *ImportService {
	return &ImportService{open: open, writer: w}
}

// ImportFile loads path with the same normalization the dashboard uses and
// upserts its rows under the file's base name. It returns the row count.
func (s *ImportService) ImportFile(ctx context.Context, path string) (int, error) {
	t, err := s.open(path).Load(ctx)
	if err != nil {
		return 0, err
	}
	name := filepath.Base(path)
	if err := s.writer.UpsertRecords(ctx, name, t.Records); err != nil {
		return 0, fmt.Errorf("import %s: %w", name, err)
	}
	log.Debug().Str("file", name).Int("rows", len(t.Records)).Msg("records upserted")
	return len(t.Records), nil
}
