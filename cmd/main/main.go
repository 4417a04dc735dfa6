package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/UnknownOlympus/charon/internal/config"
	"github.com/UnknownOlympus/charon/internal/lib/logger/sl"
	"github.com/UnknownOlympus/charon/internal/metrics"
	"github.com/UnknownOlympus/charon/internal/parser"
	"github.com/UnknownOlympus/charon/internal/repository"
	"github.com/UnknownOlympus/charon/internal/services/importer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application. The import is one linear,
// blocking pass; there is no cancellation to wire up.
func main() {
	ctx := context.Background()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	importRepo := repository.NewImportRepository(dtb, appMetrics)
	workbook := parser.NewWorkbookParser(cfg.Source.Workbook, cfg.Source.Sheet, appMetrics)
	service := importer.New(logger, workbook, importRepo, appMetrics)

	logger.InfoContext(ctx, "Starting import",
		slog.String("workbook", cfg.Source.Workbook),
		slog.String("sheet", cfg.Source.Sheet),
	)

	result, err := service.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Import failed", sl.Err(err))
		dtb.Close()
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Import finished",
		slog.Int("rows", result.RowsImported),
		slog.String("run_id", result.RunID.String()),
	)
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{Key: "", Value: slog.Value{}}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{Key: "", Value: slog.Value{}}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}
