package importer_test

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/charon/internal/metrics"
	"github.com/UnknownOlympus/charon/internal/models"
	"github.com/UnknownOlympus/charon/internal/repository"
	"github.com/UnknownOlympus/charon/internal/services/importer"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertEmployeeQuery = `
		INSERT INTO employees (full_name, date_of_birth, gender, pin_code, photo)
		VALUES ($1, $2, $3, '', NULL)
		RETURNING employee_id;
	`

const insertContactQuery = `
		INSERT INTO contact (employee_id, address, phone_number, email_personal, email_corporate, emergency_contact_name)
		VALUES ($1, $2, $3, $4, '', '');
	`

const insertAdministrationQuery = `
		INSERT INTO administration (employee_id, dni_nie_document, bank_account_document, social_security_document, employment_status)
		VALUES ($1, NULL, NULL, NULL, $2);
	`

const insertCompensationQuery = `
		INSERT INTO compensation (employee_id, annual_salary, contract_type, work_hours)
		VALUES ($1, NULL, $2, NULL);
	`

const insertWorkDetailsQuery = `
		INSERT INTO workdetails (employee_id, supervisor_name, job_id, date_joined, contract_start_date, contract_end_date)
		VALUES ($1, '', NULL, $2, '', '');
	`

var anaRuiz = models.EmployeeRecord{
	FullName:    "Ana Ruiz",
	BirthDate:   "1990-05-02",
	Gender:      "Female",
	JoinDate:    "2015-03-01",
	Contract:    "Indefinido",
	NationalID:  "12345678A",
	Address:     "Calle Mayor 1",
	Phone:       "600111222",
	Email:       "ana@example.com",
	BankAccount: "ES7620770024003102575766",
}

var juanPons = models.EmployeeRecord{
	FullName:    "Juan Pons",
	BirthDate:   "1985-01-20",
	Gender:      "Male",
	JoinDate:    "2020-11-15",
	Contract:    "Temporal",
	NationalID:  "87654321B",
	Address:     "Av. del Sol 3",
	Phone:       "600333444",
	Email:       "juan@example.com",
	BankAccount: "ES9121000418450200051332",
}

type stubParser struct {
	records []models.EmployeeRecord
	err     error
}

func (s *stubParser) ParseEmployees() ([]models.EmployeeRecord, error) {
	return s.records, s.err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newTestImporter(
	mock pgxmock.PgxPoolIface, src *stubParser,
) (*importer.Importer, *metrics.Metrics) {
	testMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	repo := repository.NewImportRepository(mock, testMetrics)

	return importer.New(newTestLogger(), src, repo, testMetrics), testMetrics
}

// expectRowInserts queues the five statements one imported record produces.
func expectRowInserts(mock pgxmock.PgxPoolIface, employeeID int64, record models.EmployeeRecord) {
	mock.ExpectQuery(regexp.QuoteMeta(insertEmployeeQuery)).
		WithArgs(record.FullName, record.BirthDate, record.Gender).
		WillReturnRows(pgxmock.NewRows([]string{"employee_id"}).AddRow(employeeID))
	mock.ExpectExec(regexp.QuoteMeta(insertContactQuery)).
		WithArgs(employeeID, record.Address, record.Phone, record.Email).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertAdministrationQuery)).
		WithArgs(employeeID, "DNI:"+record.NationalID+", Bank:"+record.BankAccount).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertCompensationQuery)).
		WithArgs(employeeID, record.Contract).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertWorkDetailsQuery)).
		WithArgs(employeeID, record.JoinDate).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	expectRowInserts(mock, 1, anaRuiz)
	expectRowInserts(mock, 2, juanPons)
	mock.ExpectCommit()

	imp, testMetrics := newTestImporter(mock, &stubParser{records: []models.EmployeeRecord{anaRuiz, juanPons}})
	result, err := imp.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.RowsImported)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.RunID.String())
	assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.Runs.WithLabelValues("success")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(testMetrics.RowsInserted.WithLabelValues("employees")), 0)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_EmptyWorkbook(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	imp, _ := newTestImporter(mock, &stubParser{})
	result, err := imp.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, result.RowsImported)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_ParserError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	imp, testMetrics := newTestImporter(mock, &stubParser{err: assert.AnError})
	_, err = imp.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse employees from workbook")
	assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.Runs.WithLabelValues("failure")), 0)
	require.NoError(t, mock.ExpectationsWereMet(), "the database must not be touched when parsing fails")
}

func TestRun_RowFailureRollsBackWholeLoad(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	expectRowInserts(mock, 1, anaRuiz)
	mock.ExpectQuery(regexp.QuoteMeta(insertEmployeeQuery)).
		WithArgs(juanPons.FullName, juanPons.BirthDate, juanPons.Gender).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	imp, testMetrics := newTestImporter(mock, &stubParser{records: []models.EmployeeRecord{anaRuiz, juanPons}})
	result, err := imp.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to import row 2 'Juan Pons'")
	assert.Contains(t, err.Error(), "failed to insert employee")
	assert.Zero(t, result.RowsImported)
	assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.Runs.WithLabelValues("failure")), 0)
	require.NoError(t, mock.ExpectationsWereMet(), "row 1 must be rolled back together with row 2")
}

func TestRun_DependentInsertFailureRollsBack(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertEmployeeQuery)).
		WithArgs(anaRuiz.FullName, anaRuiz.BirthDate, anaRuiz.Gender).
		WillReturnRows(pgxmock.NewRows([]string{"employee_id"}).AddRow(int64(1)))
	mock.ExpectExec(regexp.QuoteMeta(insertContactQuery)).
		WithArgs(int64(1), anaRuiz.Address, anaRuiz.Phone, anaRuiz.Email).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	imp, _ := newTestImporter(mock, &stubParser{records: []models.EmployeeRecord{anaRuiz}})
	_, err = imp.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to import row 1 'Ana Ruiz'")
	assert.Contains(t, err.Error(), "failed to insert contact")
	require.NoError(t, mock.ExpectationsWereMet())
}
