package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bft-labs/sasport/internal/domain"
)

const reportFileName = "conversion_report.json"

// ReportFileRepository implements ports.ReportWriter using a JSON file in
// the output directory.
type ReportFileRepository struct {
	dir string
}

// NewReportFileRepository creates a new ReportFileRepository for the given directory.
func NewReportFileRepository(dir string) *ReportFileRepository {
	return &ReportFileRepository{dir: dir}
}

// Write persists the batch report atomically.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func (r *ReportFileRepository) Write(ctx context.Context, report *domain.BatchReport) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(r.dir, reportFileName)
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmp, path)
}

// Path returns the full path to the report file.
func (r *ReportFileRepository) Path() string {
	return filepath.Join(r.dir, reportFileName)
}
