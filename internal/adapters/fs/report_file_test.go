package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bft-labs/sasport/internal/domain"
)

func TestReportFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewReportFileRepository(dir)

	report := domain.NewBatchReport(2)
	report.Record(domain.ConversionResult{ItemName: "ae.xpt", OutputName: "ae.sas7bdat", Output: []byte("x")})
	report.Record(domain.ConversionResult{ItemName: "dm.xpt", Err: "corrupt header"})

	if err := repo.Write(context.Background(), report); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if repo.Path() != filepath.Join(dir, "conversion_report.json") {
		t.Fatalf("unexpected report path %s", repo.Path())
	}

	data, err := os.ReadFile(repo.Path())
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var got domain.BatchReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if got.Total != 2 || len(got.Succeeded) != 1 || len(got.Failed) != 1 {
		t.Fatalf("unexpected report content: %+v", got)
	}
	if got.Failed[0].Err != "corrupt header" {
		t.Errorf("failure message lost: %+v", got.Failed[0])
	}

	// No temp file left behind after the atomic rename.
	if _, err := os.Stat(repo.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file was not cleaned up")
	}
}

func TestReportFileCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "deep")
	repo := NewReportFileRepository(dir)

	if err := repo.Write(context.Background(), domain.NewBatchReport(0)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(repo.Path()); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}
