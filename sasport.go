// Package sasport converts SAS XPORT transport files (.xpt) into SAS7BDAT
// dataset files in batches, with per-item failure isolation.
//
// Example usage:
//
//	report, err := sasport.ConvertDir(ctx, "/data/xpt",
//	    sasport.WithConverterCommand("python3 /opt/sasport/xpt2sas.py"),
//	)
//	if err != nil {
//	    log.Fatal(err) // resolver error: nothing was converted
//	}
//	fmt.Printf("%d converted, %d failed\n", len(report.Succeeded), len(report.Failed))
//
// The actual binary format translation is delegated to a conversion backend
// behind the Codec interface; sasport itself only resolves inputs, drives
// the batch, and packages results.
package sasport

import (
	"context"

	"github.com/bft-labs/sasport/internal/adapters/archive"
	"github.com/bft-labs/sasport/internal/adapters/codec"
	"github.com/bft-labs/sasport/internal/adapters/fs"
	"github.com/bft-labs/sasport/internal/app"
	"github.com/bft-labs/sasport/internal/domain"
	"github.com/bft-labs/sasport/internal/ports"
)

// Re-exported domain types. The internal packages own the definitions; this
// package is the supported import surface for embedders.
type (
	// InputItem is one transport file awaiting conversion.
	InputItem = domain.InputItem

	// ConversionResult is the per-item outcome of a conversion attempt.
	ConversionResult = domain.ConversionResult

	// BatchReport is the ordered success/failure partition of one batch run.
	BatchReport = domain.BatchReport

	// OutputArtifact is a named byte blob ready for delivery.
	OutputArtifact = domain.OutputArtifact

	// CodecError reports a failed conversion of a single item.
	CodecError = domain.CodecError

	// Blob is a named in-memory input, typically an HTTP upload.
	Blob = fs.Blob

	// Codec converts one transport file into a dataset.
	Codec = ports.Codec

	// ProgressSink receives per-item progress notifications.
	ProgressSink = ports.ProgressSink

	// Packager bundles successful outputs for delivery.
	Packager = ports.Packager

	// Logger is the structured logging abstraction used by the library.
	Logger = ports.Logger
)

// Sentinel errors, checkable with errors.Is.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidConfig    = domain.ErrInvalidConfig
	ErrBusy             = domain.ErrBusy
	ErrCodecUnavailable = domain.ErrCodecUnavailable
)

// ConvertDir converts every transport file in dir and returns the report.
// A missing or non-directory path returns ErrNotFound before any conversion
// starts; an existing but empty directory returns an empty report.
func ConvertDir(ctx context.Context, dir string, opts ...Option) (*BatchReport, error) {
	items, err := fs.ResolveDir(dir)
	if err != nil {
		return nil, err
	}
	return run(ctx, items, opts)
}

// ConvertFiles converts an explicit list of transport file paths.
func ConvertFiles(ctx context.Context, paths []string, opts ...Option) (*BatchReport, error) {
	items, err := fs.ResolveFiles(paths)
	if err != nil {
		return nil, err
	}
	return run(ctx, items, opts)
}

// ConvertBlobs converts in-memory transport files, e.g. HTTP uploads.
// Each blob is materialized to a temp file for the duration of its own
// conversion only.
func ConvertBlobs(ctx context.Context, blobs []Blob, opts ...Option) (*BatchReport, error) {
	return run(ctx, fs.ResolveBlobs(blobs), opts)
}

// NewPackager returns the default deterministic zip packager.
func NewPackager() Packager {
	return archive.NewZipPackager()
}

func run(ctx context.Context, items []InputItem, opts []Option) (*BatchReport, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := o.codec
	if c == nil {
		ec, err := codec.NewExecCodec(o.converterCmd, o.convertTimeout, o.logger)
		if err != nil {
			return nil, err
		}
		c = ec
	}

	driver := app.NewDriver(c, o.logger, o.progress)
	return driver.Run(ctx, items)
}
