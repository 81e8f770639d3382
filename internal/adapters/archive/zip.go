// Package archive bundles converted datasets for delivery.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/bft-labs/sasport/internal/domain"
)

// fixedModTime is stamped on every archive member so that packaging the
// same report twice yields byte-identical output.
var fixedModTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// ZipPackager implements ports.Packager with a deterministic zip archive.
type ZipPackager struct{}

// NewZipPackager creates a new ZipPackager.
func NewZipPackager() *ZipPackager {
	return &ZipPackager{}
}

// Artifacts returns one artifact per successful conversion, in report order.
func (p *ZipPackager) Artifacts(report *domain.BatchReport) []domain.OutputArtifact {
	artifacts := make([]domain.OutputArtifact, 0, len(report.Succeeded))
	for _, r := range report.Succeeded {
		artifacts = append(artifacts, domain.OutputArtifact{
			Name: r.OutputName,
			Data: r.Output,
		})
	}
	return artifacts
}

// Archive bundles all successes into a single zip. Member order matches the
// report's success order and failed items are never included.
func (p *ZipPackager) Archive(report *domain.BatchReport) (domain.OutputArtifact, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	for _, r := range report.Succeeded {
		hdr := &zip.FileHeader{
			Name:     r.OutputName,
			Method:   zip.Deflate,
			Modified: fixedModTime,
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return domain.OutputArtifact{}, fmt.Errorf("archive %s: %w", r.OutputName, err)
		}
		if _, err := w.Write(r.Output); err != nil {
			return domain.OutputArtifact{}, fmt.Errorf("archive %s: %w", r.OutputName, err)
		}
	}

	if err := zw.Close(); err != nil {
		return domain.OutputArtifact{}, fmt.Errorf("finalize archive: %w", err)
	}

	return domain.OutputArtifact{Name: domain.ArchiveName, Data: buf.Bytes()}, nil
}
