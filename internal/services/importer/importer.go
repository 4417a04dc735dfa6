package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/UnknownOlympus/charon/internal/lib/logger/sl"
	"github.com/UnknownOlympus/charon/internal/metrics"
	"github.com/UnknownOlympus/charon/internal/models"
	"github.com/UnknownOlympus/charon/internal/parser"
	"github.com/UnknownOlympus/charon/internal/repository"
)

// Importer carries one workbook of employee records into the HR tables.
type Importer struct {
	log     *slog.Logger
	parser  parser.EmployeeParserIface
	repo    repository.ImportRepoIface
	metrics *metrics.Metrics
}

// Result describes one finished import run.
type Result struct {
	RunID        uuid.UUID
	RowsImported int
}

func New(
	log *slog.Logger,
	parser parser.EmployeeParserIface,
	repo repository.ImportRepoIface,
	metrics *metrics.Metrics,
) *Importer {
	return &Importer{log: log, parser: parser, repo: repo, metrics: metrics}
}

func (im *Importer) initLogger(opn string) *slog.Logger {
	return im.log.With(
		sl.Op(opn),
		slog.String("division", "importer"),
	)
}

// Run loads every record from the source workbook and inserts all of them
// inside one transaction: per record one employees row plus its four
// dependent rows, linked by the identifier generated on the employees
// insert. A failure on any row aborts the whole load; nothing is committed
// partially, there is no retry. Rows are never updated or deleted.
func (im *Importer) Run(ctx context.Context) (Result, error) {
	const opn = "Importer.Run"

	runID := uuid.New()
	log := im.initLogger(opn).With(slog.String("run_id", runID.String()))

	startTime := time.Now()
	defer func() {
		im.metrics.RunDuration.Observe(time.Since(startTime).Seconds())
	}()

	records, err := im.parser.ParseEmployees()
	if err != nil {
		im.metrics.Runs.WithLabelValues("failure").Inc()
		return Result{RunID: runID}, fmt.Errorf("failed to parse employees from workbook: %w", err)
	}

	log.InfoContext(ctx, "workbook loaded", slog.Int("rows", len(records)))

	err = im.repo.WithTransaction(ctx, func(tx pgx.Tx) error {
		for idx, record := range records {
			employeeID, rowErr := im.importRow(ctx, tx, record)
			if rowErr != nil {
				return fmt.Errorf("failed to import row %d '%s': %w", idx+1, record.FullName, rowErr)
			}

			log.InfoContext(ctx, "row inserted",
				slog.Int("row", idx+1),
				slog.Int64("employee_id", employeeID),
				slog.String("employee", record.FullName),
			)
		}

		return nil
	})
	if err != nil {
		im.metrics.Runs.WithLabelValues("failure").Inc()
		log.ErrorContext(ctx, "import aborted, nothing committed", sl.Err(err))

		return Result{RunID: runID}, fmt.Errorf("failed to import records: %w", err)
	}

	im.metrics.Runs.WithLabelValues("success").Inc()

	log.InfoContext(ctx, "all rows have been inserted successfully",
		slog.Int("rows", len(records)),
		slog.String("elapsed", time.Since(startTime).String()),
	)

	return Result{RunID: runID, RowsImported: len(records)}, nil
}

// importRow fans one record out into the five tables, reusing the identifier
// generated by the employees insert for the dependent rows.
func (im *Importer) importRow(ctx context.Context, tx pgx.Tx, record models.EmployeeRecord) (int64, error) {
	employeeID, err := im.repo.InsertEmployee(ctx, tx, record)
	if err != nil {
		return 0, err
	}

	if err = im.repo.InsertContact(ctx, tx, employeeID, record); err != nil {
		return 0, err
	}

	if err = im.repo.InsertAdministration(ctx, tx, employeeID, record.NationalID, record.BankAccount); err != nil {
		return 0, err
	}

	if err = im.repo.InsertCompensation(ctx, tx, employeeID, record.Contract); err != nil {
		return 0, err
	}

	if err = im.repo.InsertWorkDetails(ctx, tx, employeeID, record.JoinDate); err != nil {
		return 0, err
	}

	return employeeID, nil
}
