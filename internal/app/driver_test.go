package app

import (
	"context"
	"os"
	"testing"

	"github.com/bft-labs/sasport/internal/domain"
)

// stubCodec converts without touching any real backend. Items listed in
// fail produce a CodecError; everything else succeeds with marker bytes.
type stubCodec struct {
	calls     int
	fail      map[string]bool
	seenPaths []string
}

func (s *stubCodec) Convert(ctx context.Context, item domain.InputItem) ([]byte, error) {
	s.calls++
	s.seenPaths = append(s.seenPaths, item.Path)
	if s.fail[item.Name] {
		return nil, &domain.CodecError{Backend: "stub", Message: "corrupt header"}
	}
	return []byte("sas7bdat:" + item.Name), nil
}

func (s *stubCodec) Available() error { return nil }

// progressRecorder captures the notification stream for assertions.
type progressRecorder struct {
	started []string
	done    []string
	errs    []error
}

func (p *progressRecorder) OnItemStart(index, total int, name string) {
	p.started = append(p.started, name)
}

func (p *progressRecorder) OnItemDone(index, total int, name string, err error) {
	p.done = append(p.done, name)
	p.errs = append(p.errs, err)
}

func pathItems(names ...string) []domain.InputItem {
	items := make([]domain.InputItem, len(names))
	for i, n := range names {
		items[i] = domain.InputItem{Name: n, Path: "/in/" + n}
	}
	return items
}

func TestDriverPartitionsPreserveOrder(t *testing.T) {
	codec := &stubCodec{fail: map[string]bool{"b.xpt": true, "d.xpt": true}}
	driver := NewDriver(codec, nil, nil)

	report, err := driver.Run(context.Background(), pathItems("a.xpt", "b.xpt", "c.xpt", "d.xpt"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !report.Complete() {
		t.Fatalf("len(succeeded)+len(failed) != total: %d+%d != %d",
			len(report.Succeeded), len(report.Failed), report.Total)
	}
	if report.Total != 4 {
		t.Fatalf("expected total 4, got %d", report.Total)
	}

	wantOK := []string{"a.xpt", "c.xpt"}
	for i, r := range report.Succeeded {
		if r.ItemName != wantOK[i] {
			t.Errorf("succeeded[%d] = %s, want %s", i, r.ItemName, wantOK[i])
		}
	}
	wantFail := []string{"b.xpt", "d.xpt"}
	for i, r := range report.Failed {
		if r.ItemName != wantFail[i] {
			t.Errorf("failed[%d] = %s, want %s", i, r.ItemName, wantFail[i])
		}
		if r.Err == "" {
			t.Errorf("failed[%d] has no message", i)
		}
	}
}

func TestDriverIsolatesFailures(t *testing.T) {
	// A corrupt item must not affect the well-formed one, in either order.
	for _, order := range [][]string{
		{"good.xpt", "corrupt.xpt"},
		{"corrupt.xpt", "good.xpt"},
	} {
		codec := &stubCodec{fail: map[string]bool{"corrupt.xpt": true}}
		driver := NewDriver(codec, nil, nil)

		report, err := driver.Run(context.Background(), pathItems(order...))
		if err != nil {
			t.Fatalf("Run(%v): %v", order, err)
		}
		if codec.calls != 2 {
			t.Fatalf("Run(%v): expected 2 codec calls, got %d", order, codec.calls)
		}
		if len(report.Succeeded) != 1 || len(report.Failed) != 1 {
			t.Fatalf("Run(%v): expected 1/1 split, got %d/%d",
				order, len(report.Succeeded), len(report.Failed))
		}
		if report.Succeeded[0].ItemName != "good.xpt" {
			t.Errorf("Run(%v): wrong success: %s", order, report.Succeeded[0].ItemName)
		}
		if report.Succeeded[0].OutputName != "good.sas7bdat" {
			t.Errorf("Run(%v): wrong output name: %s", order, report.Succeeded[0].OutputName)
		}
	}
}

func TestDriverMaterializesInMemoryItems(t *testing.T) {
	codec := &stubCodec{}
	driver := NewDriver(codec, nil, nil)

	items := []domain.InputItem{{Name: "upload.xpt", Data: []byte("xport bytes"), Size: 11}}
	report, err := driver.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Succeeded) != 1 {
		t.Fatalf("expected success, got %+v", report)
	}

	if len(codec.seenPaths) != 1 || codec.seenPaths[0] == "" {
		t.Fatal("codec did not receive a materialized path")
	}
	// Temp file is gone once the item's processing finished.
	if _, err := os.Stat(codec.seenPaths[0]); !os.IsNotExist(err) {
		t.Errorf("temp file %s was not removed", codec.seenPaths[0])
	}
}

func TestDriverEmptyBatch(t *testing.T) {
	driver := NewDriver(&stubCodec{}, nil, nil)

	report, err := driver.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Total != 0 || len(report.Succeeded) != 0 || len(report.Failed) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
	if !report.Complete() {
		t.Error("empty report must be complete")
	}
}

func TestDriverNilCodec(t *testing.T) {
	driver := NewDriver(nil, nil, nil)
	if _, err := driver.Run(context.Background(), pathItems("a.xpt")); err == nil {
		t.Fatal("expected contract violation error")
	}
}

func TestDriverProgressNotifications(t *testing.T) {
	codec := &stubCodec{fail: map[string]bool{"b.xpt": true}}
	progress := &progressRecorder{}
	driver := NewDriver(codec, nil, progress)

	if _, err := driver.Run(context.Background(), pathItems("a.xpt", "b.xpt")); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(progress.started) != 2 || len(progress.done) != 2 {
		t.Fatalf("expected 2 start/done notifications, got %d/%d",
			len(progress.started), len(progress.done))
	}
	if progress.errs[0] != nil {
		t.Error("a.xpt should have succeeded")
	}
	if progress.errs[1] == nil {
		t.Error("b.xpt should have failed")
	}
}

func TestDriverStopsBetweenItems(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	codec := &stubCodec{}
	driver := NewDriver(codec, nil, nil)

	report, err := driver.Run(ctx, pathItems("a.xpt", "b.xpt"))
	if err == nil {
		t.Fatal("expected context error")
	}
	if codec.calls != 0 {
		t.Fatalf("no item should start after cancellation, got %d calls", codec.calls)
	}
	if len(report.Succeeded)+len(report.Failed) != 0 {
		t.Fatalf("unexpected results after cancellation: %+v", report)
	}
}
