// Package app contains the application layer: the batch conversion driver
// that orchestrates resolver output, codec calls, and result accounting.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bft-labs/sasport/internal/domain"
	"github.com/bft-labs/sasport/internal/ports"
)

// Driver runs one batch of conversions, sequentially and run-to-completion.
// A Driver is stateless between runs and must not be used by two batches
// concurrently; the returned report is owned by the caller.
type Driver struct {
	codec    ports.Codec
	logger   ports.Logger
	progress ports.ProgressSink
}

// NewDriver creates a driver for the given codec.
// logger and progress may be nil.
func NewDriver(codec ports.Codec, logger ports.Logger, progress ports.ProgressSink) *Driver {
	return &Driver{codec: codec, logger: logger, progress: progress}
}

// Run converts every item in resolver order and returns the batch report.
//
// A failing item never prevents processing of subsequent items: codec and
// IO errors are recorded as failures on the report and do not escape Run.
// The only errors Run returns are contract violations (nil codec) and
// context cancellation, and cancellation takes effect between items, never
// mid-item. The report's partitions preserve input order.
func (d *Driver) Run(ctx context.Context, items []domain.InputItem) (*domain.BatchReport, error) {
	if d.codec == nil {
		return nil, errors.New("driver: codec is nil")
	}

	report := domain.NewBatchReport(len(items))
	total := len(items)

	for i, item := range items {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		if d.progress != nil {
			d.progress.OnItemStart(i, total, item.Name)
		}

		start := time.Now()
		data, err := d.convertOne(ctx, item)
		duration := time.Since(start)

		if err != nil {
			report.Record(domain.ConversionResult{
				ItemName: item.Name,
				Err:      err.Error(),
			})
			if d.logger != nil {
				d.logger.Error("conversion failed",
					ports.String("item", item.Name),
					ports.Err(err),
				)
			}
		} else {
			report.Record(domain.ConversionResult{
				ItemName:   item.Name,
				OutputName: item.OutputName(),
				Output:     data,
			})
			if d.logger != nil {
				d.logger.Info("converted",
					ports.String("item", item.Name),
					ports.String("output", item.OutputName()),
					ports.Int("bytes", len(data)),
					ports.Duration("duration", duration),
				)
			}
		}

		if d.progress != nil {
			d.progress.OnItemDone(i, total, item.Name, err)
		}
	}

	return report, nil
}

// convertOne invokes the codec for a single item. In-memory items are
// materialized to a temp file immediately before the call and the temp file
// is removed on every exit path, so a crash mid-batch leaves at most one
// item's temp file behind.
func (d *Driver) convertOne(ctx context.Context, item domain.InputItem) ([]byte, error) {
	work := item
	if item.InMemory() {
		tmp, err := os.CreateTemp("", "sasport-*"+domain.SourceExtension)
		if err != nil {
			return nil, fmt.Errorf("materialize %s: %w", item.Name, err)
		}
		path := tmp.Name()
		defer os.Remove(path)

		if _, err := tmp.Write(item.Data); err != nil {
			tmp.Close()
			return nil, fmt.Errorf("materialize %s: %w", item.Name, err)
		}
		if err := tmp.Close(); err != nil {
			return nil, fmt.Errorf("materialize %s: %w", item.Name, err)
		}

		work.Path = path
		work.Data = nil
	}

	return d.codec.Convert(ctx, work)
}
