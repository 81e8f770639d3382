package ports

import (
	"context"

	"github.com/bft-labs/sasport/internal/domain"
)

// ReportWriter persists a machine-readable summary of a finished batch.
// Implementations should write atomically (e.g. write to a temp file, then
// rename) so a crash never leaves a truncated report behind.
type ReportWriter interface {
	Write(ctx context.Context, report *domain.BatchReport) error
}
