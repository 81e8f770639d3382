// Package codec provides conversion backend adapters.
//
// The only concrete backend shipped here is ExecCodec, which shells out to
// an external converter (typically a small pyreadstat wrapper script). An
// in-process library backend can be supplied by implementing ports.Codec
// and injecting it with sasport.WithCodec.
package codec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/bft-labs/sasport/internal/domain"
	"github.com/bft-labs/sasport/internal/ports"
)

// DefaultCommand is the converter invoked when none is configured.
// The contract is positional: <command> <input.xpt> <output.sas7bdat>,
// exit 0 on success, diagnostics on stderr.
const DefaultCommand = "xpt2sas"

// ExecCodec implements ports.Codec by invoking an external converter
// process per item.
type ExecCodec struct {
	argv    []string
	timeout time.Duration
	logger  ports.Logger
}

// NewExecCodec creates a codec for the given converter command line.
// The command is split shell-style, so quoting works as expected:
//
//	python3 /opt/sasport/xpt2sas.py
//	"C:\Program Files\R\Rscript.exe" convert.R
//
// timeout bounds a single conversion; zero means no limit.
func NewExecCodec(command string, timeout time.Duration, logger ports.Logger) (*ExecCodec, error) {
	if command == "" {
		command = DefaultCommand
	}
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse converter command: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("converter command is empty")
	}
	return &ExecCodec{argv: argv, timeout: timeout, logger: logger}, nil
}

// Available checks that the converter binary can be found in PATH.
// Call it at startup to fail fast instead of per item.
func (c *ExecCodec) Available() error {
	if _, err := exec.LookPath(c.argv[0]); err != nil {
		return fmt.Errorf("%w: %s not found in PATH", domain.ErrCodecUnavailable, c.argv[0])
	}
	return nil
}

// Backend returns the short name of the converter binary.
func (c *ExecCodec) Backend() string {
	return filepath.Base(c.argv[0])
}

// Convert writes the dataset for one transport file by running the external
// converter with the item's path and a temporary destination path. A
// non-zero exit becomes a *domain.CodecError carrying the process's stderr.
func (c *ExecCodec) Convert(ctx context.Context, item domain.InputItem) ([]byte, error) {
	if item.InMemory() {
		// Materializing uploads is the driver's job; reaching here with
		// bytes only is a wiring bug, not a user input problem.
		return nil, &domain.CodecError{
			Backend: c.Backend(),
			Message: fmt.Sprintf("item %s has no filesystem path", item.Name),
		}
	}

	out, err := os.CreateTemp("", "sasport-*"+domain.TargetExtension)
	if err != nil {
		return nil, fmt.Errorf("create temp output: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := append(append([]string{}, c.argv[1:]...), item.Path, outPath)
	cmd := exec.CommandContext(runCtx, c.argv[0], args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	if c.logger != nil {
		c.logger.Debug("converter finished",
			ports.String("item", item.Name),
			ports.Duration("duration", time.Since(start)),
			ports.Bool("ok", runErr == nil),
		)
	}

	if runErr != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = runErr.Error()
		}
		if runCtx.Err() != nil {
			msg = fmt.Sprintf("%s (converter canceled: %v)", msg, runCtx.Err())
		}
		return nil, &domain.CodecError{Backend: c.Backend(), Message: msg, Cause: runErr}
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, &domain.CodecError{
			Backend: c.Backend(),
			Message: fmt.Sprintf("converter exited 0 but produced no output for %s", item.Name),
			Cause:   err,
		}
	}
	if len(data) == 0 {
		return nil, &domain.CodecError{
			Backend: c.Backend(),
			Message: fmt.Sprintf("converter produced an empty dataset for %s", item.Name),
		}
	}
	return data, nil
}
