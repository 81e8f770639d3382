package codec

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/sasport/internal/domain"
)

func writeInput(t *testing.T, content string) domain.InputItem {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ae.xpt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return domain.InputItem{Name: "ae.xpt", Path: path, Size: int64(len(content))}
}

func TestExecCodecConvert(t *testing.T) {
	// A converter that simply copies input to output stands in for the
	// real format translation.
	c, err := NewExecCodec(`/bin/sh -c 'cp -- "$0" "$1"'`, 0, nil)
	if err != nil {
		t.Fatalf("NewExecCodec: %v", err)
	}

	data, err := c.Convert(context.Background(), writeInput(t, "xport payload"))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if string(data) != "xport payload" {
		t.Fatalf("unexpected output %q", data)
	}
}

func TestExecCodecFailureCarriesStderr(t *testing.T) {
	c, err := NewExecCodec(`/bin/sh -c 'echo "invalid XPORT header" >&2; exit 3'`, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Convert(context.Background(), writeInput(t, "junk"))
	var cerr *domain.CodecError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CodecError, got %v", err)
	}
	if cerr.Message != "invalid XPORT header" {
		t.Errorf("expected stderr in message, got %q", cerr.Message)
	}
}

func TestExecCodecEmptyOutput(t *testing.T) {
	// Exit 0 without writing the destination is still a codec failure.
	c, err := NewExecCodec(`/bin/sh -c 'true'`, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Convert(context.Background(), writeInput(t, "junk"))
	var cerr *domain.CodecError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CodecError, got %v", err)
	}
}

func TestExecCodecTimeout(t *testing.T) {
	c, err := NewExecCodec(`/bin/sh -c 'sleep 10'`, 100*time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	_, err = c.Convert(context.Background(), writeInput(t, "junk"))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("timeout was not enforced")
	}
	var cerr *domain.CodecError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CodecError, got %v", err)
	}
}

func TestExecCodecInMemoryItemRejected(t *testing.T) {
	c, err := NewExecCodec(`/bin/sh -c 'true'`, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Convert(context.Background(), domain.InputItem{Name: "up.xpt", Data: []byte("x")})
	var cerr *domain.CodecError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CodecError for unmaterialized item, got %v", err)
	}
}

func TestExecCodecAvailable(t *testing.T) {
	c, err := NewExecCodec("/bin/sh", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Available(); err != nil {
		t.Fatalf("sh should be available: %v", err)
	}

	c, err = NewExecCodec("definitely-not-a-real-converter-binary", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Available(); !errors.Is(err, domain.ErrCodecUnavailable) {
		t.Fatalf("expected ErrCodecUnavailable, got %v", err)
	}
}

func TestNewExecCodecParsing(t *testing.T) {
	tests := []struct {
		name        string
		command     string
		expectError bool
	}{
		{"default when empty", "", false},
		{"quoted path", `"python3" /opt/sasport/xpt2sas.py`, false},
		{"unterminated quote", `python3 "broken`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExecCodec(tt.command, 0, nil)
			if tt.expectError && err == nil {
				t.Error("expected parse error")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
