package domain

import "testing"

func TestOutputName(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		expected string
	}{
		{"lowercase extension", "ae.xpt", "ae.sas7bdat"},
		{"uppercase extension", "DM.XPT", "DM.sas7bdat"},
		{"mixed case", "Lb.Xpt", "Lb.sas7bdat"},
		{"no extension", "suppae", "suppae.sas7bdat"},
		{"path is flattened", "some/dir/vs.xpt", "vs.sas7bdat"},
		{"dots in stem", "ae.v2.xpt", "ae.v2.sas7bdat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := InputItem{Name: tt.item}
			if got := it.OutputName(); got != tt.expected {
				t.Errorf("OutputName(%q) = %q, want %q", tt.item, got, tt.expected)
			}
		})
	}
}

func TestHasSourceExtension(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"ae.xpt", true},
		{"ae.XPT", true},
		{"ae.Xpt", true},
		{"ae.xpt.bak", false},
		{"ae.sas7bdat", false},
		{"xpt", false},
	}

	for _, tt := range tests {
		if got := HasSourceExtension(tt.name); got != tt.expected {
			t.Errorf("HasSourceExtension(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestBatchReportRecord(t *testing.T) {
	report := NewBatchReport(3)

	report.Record(ConversionResult{ItemName: "a.xpt", OutputName: "a.sas7bdat", Output: []byte("x")})
	report.Record(ConversionResult{ItemName: "b.xpt", Err: "corrupt header"})

	if report.Complete() {
		t.Error("report should not be complete with one item outstanding")
	}

	report.Record(ConversionResult{ItemName: "c.xpt", OutputName: "c.sas7bdat", Output: []byte("y")})

	if !report.Complete() {
		t.Error("report should be complete")
	}
	if len(report.Succeeded) != 2 || len(report.Failed) != 1 {
		t.Fatalf("expected 2 succeeded / 1 failed, got %d / %d",
			len(report.Succeeded), len(report.Failed))
	}
	if report.Failed[0].OK() {
		t.Error("failed result must not report OK")
	}
}
