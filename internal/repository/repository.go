package repository

import (
	"context"

	"github.com/UnknownOlympus/charon/internal/metrics"
	"github.com/UnknownOlympus/charon/internal/models"
	"github.com/jackc/pgx/v5"
)

type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// ImportRepoIface represents the interface for writing one employee record
// into the five HR tables. The insert methods take the Querier they must run
// on so the whole load can share one transaction.
type ImportRepoIface interface {
	WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
	InsertEmployee(ctx context.Context, q Querier, record models.EmployeeRecord) (int64, error)
	InsertContact(ctx context.Context, q Querier, employeeID int64, record models.EmployeeRecord) error
	InsertAdministration(ctx context.Context, q Querier, employeeID int64, nationalID, bankAccount string) error
	InsertCompensation(ctx context.Context, q Querier, employeeID int64, contract string) error
	InsertWorkDetails(ctx context.Context, q Querier, employeeID int64, joinDate string) error
}

func NewImportRepository(db Database, metrics *metrics.Metrics) ImportRepoIface {
	return &Repository{db: db, metrics: metrics}
}
