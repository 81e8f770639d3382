package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/sasport/internal/adapters/archive"
	"github.com/bft-labs/sasport/internal/adapters/codec"
	"github.com/bft-labs/sasport/internal/adapters/fs"
	logAdapter "github.com/bft-labs/sasport/internal/adapters/log"
	"github.com/bft-labs/sasport/internal/app"
	"github.com/bft-labs/sasport/internal/cliconfig"
	"github.com/bft-labs/sasport/internal/domain"
	"github.com/bft-labs/sasport/internal/ports"
	"github.com/bft-labs/sasport/internal/server"
	"github.com/bft-labs/sasport/plugins/dirwatcher"
)

const helpDescription = `
Convert SAS XPORT transport files (.xpt) into SAS7BDAT dataset files.

The binary format translation is delegated to an external converter
(see --converter); sasport resolves the input set, drives the batch with
per-file failure isolation, and writes the converted datasets plus a
machine-readable report to the output directory.

Modes:
  - One-shot: convert a directory or an explicit file list, then exit.
  - Watch:    keep converting .xpt files as they arrive (--watch).
  - Serve:    web form with uploads and zip download (sasport serve).
`

var exampleUsage = strings.TrimSpace(`
  sasport --input-dir /data/xpt --output-dir /data/sas7bdat
  sasport ae.xpt dm.xpt --output-dir out/
  sasport --input-dir /data/xpt --watch
  sasport serve --port 8080
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "sasport [files...]",
		Short:   "Convert SAS XPORT transport files to SAS7BDAT datasets",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}
			return runConvert(cmd.Context(), cfg, args)
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the web form for uploading and converting transport files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	root.AddCommand(serve)

	// Flags
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.sasport/config.toml)")
	root.PersistentFlags().StringVar(&cfg.ConverterCmd, "converter", cfg.ConverterCmd, "external converter command (invoked as: <cmd> <input.xpt> <output.sas7bdat>)")
	root.PersistentFlags().DurationVar(&cfg.ConvertTimeout, "convert-timeout", cfg.ConvertTimeout, "time limit for converting a single file (0 = no limit)")

	root.Flags().StringVar(&cfg.InputDir, "input-dir", cfg.InputDir, "directory to scan for .xpt files")
	root.Flags().StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for converted datasets (defaults to input dir)")
	root.Flags().BoolVar(&cfg.Archive, "archive", cfg.Archive, "also write a combined converted.zip")
	root.Flags().BoolVar(&cfg.Report, "report", cfg.Report, "write conversion_report.json to the output dir")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "keep watching the input dir and convert files as they arrive")
	root.Flags().DurationVar(&cfg.WatchDebounce, "watch-debounce", cfg.WatchDebounce, "settle time before converting a newly arrived file")

	serve.Flags().IntVar(&cfg.Port, "port", cfg.Port, "port to listen on")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("sasport")
		os.Exit(1)
	}
}

// loadConfig merges file config (default $HOME/.sasport/config.toml), then
// environment (SASPORT_*), then flag overrides, and validates the result.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	// Build set of changed flags
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	// Environment overrides file config but is overridden by flags
	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	return cfg.Validate()
}

func runConvert(ctx context.Context, cfg cliconfig.Config, args []string) error {
	log := cliconfig.Logger()
	logger := logAdapter.NewZerologAdapterWithLogger(log)

	ec, err := codec.NewExecCodec(cfg.ConverterCmd, cfg.ConvertTimeout, logger)
	if err != nil {
		return err
	}
	if err := ec.Available(); err != nil {
		return err
	}

	if cfg.Watch {
		if cfg.InputDir == "" {
			return fmt.Errorf("--watch requires --input-dir")
		}
		return runWatch(ctx, cfg, ec, logger)
	}

	var items []domain.InputItem
	switch {
	case len(args) > 0:
		items, err = fs.ResolveFiles(args)
	case cfg.InputDir != "":
		items, err = fs.ResolveDir(cfg.InputDir)
	default:
		return fmt.Errorf("provide .xpt files as arguments or set --input-dir")
	}
	if err != nil {
		return err
	}

	if len(items) == 0 {
		log.Warn().Str("dir", cfg.InputDir).Msg("no .xpt files found")
		return nil
	}

	report, err := convertBatch(ctx, cfg, ec, logger, items)
	if err != nil {
		return err
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(report.Failed), report.Total)
	}
	return nil
}

// convertBatch runs one batch and writes datasets, optional archive, and
// optional report into the output directory.
func convertBatch(ctx context.Context, cfg cliconfig.Config, c ports.Codec, logger ports.Logger, items []domain.InputItem) (*domain.BatchReport, error) {
	driver := app.NewDriver(c, logger, newCLIProgress(logger))
	report, err := driver.Run(ctx, items)
	if err != nil {
		return nil, err
	}

	packager := archive.NewZipPackager()
	if err := fs.WriteArtifacts(cfg.OutputDir, packager.Artifacts(report)); err != nil {
		return nil, fmt.Errorf("write outputs: %w", err)
	}

	if cfg.Archive && len(report.Succeeded) > 0 {
		bundle, err := packager.Archive(report)
		if err != nil {
			return nil, fmt.Errorf("write archive: %w", err)
		}
		if err := fs.WriteArtifacts(cfg.OutputDir, []domain.OutputArtifact{bundle}); err != nil {
			return nil, fmt.Errorf("write archive: %w", err)
		}
	}

	if cfg.Report {
		var writer ports.ReportWriter = fs.NewReportFileRepository(cfg.OutputDir)
		if err := writer.Write(ctx, report); err != nil {
			logger.Error("failed to write report", ports.Err(err))
		}
	}

	logger.Info("batch finished",
		ports.Int("total", report.Total),
		ports.Int("succeeded", len(report.Succeeded)),
		ports.Int("failed", len(report.Failed)),
		ports.String("output_dir", cfg.OutputDir),
	)
	return report, nil
}

func runWatch(ctx context.Context, cfg cliconfig.Config, c ports.Codec, logger ports.Logger) error {
	// Convert what is already there before watching for arrivals.
	items, err := fs.ResolveDir(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		if _, err := convertBatch(ctx, cfg, c, logger, items); err != nil {
			return err
		}
	}

	w := dirwatcher.New(cfg.InputDir, dirwatcher.Config{Debounce: cfg.WatchDebounce},
		func(ctx context.Context, paths []string) {
			items, err := fs.ResolveFiles(paths)
			if err != nil {
				logger.Error("resolve arrivals", ports.Err(err))
				return
			}
			if _, err := convertBatch(ctx, cfg, c, logger, items); err != nil {
				logger.Error("convert arrivals", ports.Err(err))
			}
		}, logger)

	return w.Run(ctx)
}

func runServe(ctx context.Context, cfg cliconfig.Config) error {
	log := cliconfig.Logger()
	logger := logAdapter.NewZerologAdapterWithLogger(log)

	ec, err := codec.NewExecCodec(cfg.ConverterCmd, cfg.ConvertTimeout, logger)
	if err != nil {
		return err
	}
	if err := ec.Available(); err != nil {
		// The form still loads; every conversion will fail with a clear
		// message. Warn instead of refusing to start.
		logger.Warn("converter not available", ports.Err(err))
	}

	srv := server.New(ec, archive.NewZipPackager(), logger)
	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port))
}

// cliProgress logs per-item progress, mirroring what the web form shows.
type cliProgress struct {
	logger ports.Logger
}

func newCLIProgress(logger ports.Logger) *cliProgress {
	return &cliProgress{logger: logger}
}

func (p *cliProgress) OnItemStart(index, total int, name string) {
	p.logger.Info("processing",
		ports.String("item", name),
		ports.String("progress", fmt.Sprintf("%d/%d", index+1, total)),
	)
}

func (p *cliProgress) OnItemDone(index, total int, name string, err error) {
	if err != nil {
		p.logger.Warn("failed",
			ports.String("item", name),
			ports.String("progress", fmt.Sprintf("%d/%d", index+1, total)),
			ports.Err(err),
		)
	}
}
