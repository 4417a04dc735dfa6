package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/charon/internal/models"
)

// InsertEmployee inserts the core employee row and returns the generated
// identifier. The pin_code and photo columns exist in the target schema but
// have no source column, so they are loaded with their placeholder values.
func (r *Repository) InsertEmployee(
	ctx context.Context,
	q Querier,
	record models.EmployeeRecord,
) (int64, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("insert_employee").Observe(duration)
	}()
	query := `
		INSERT INTO employees (full_name, date_of_birth, gender, pin_code, photo)
		VALUES ($1, $2, $3, '', NULL)
		RETURNING employee_id;
	`

	var employeeID int64

	err := q.QueryRow(ctx, query, record.FullName, record.BirthDate, record.Gender).Scan(&employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert employee: %w", err)
	}

	r.metrics.RowsInserted.WithLabelValues("employees").Inc()

	return employeeID, nil
}

// InsertContact inserts the contact row tied to the given employee. The
// corporate email and the emergency contact have no source column and are
// loaded empty.
func (r *Repository) InsertContact(
	ctx context.Context,
	q Querier,
	employeeID int64,
	record models.EmployeeRecord,
) error {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("insert_contact").Observe(duration)
	}()
	query := `
		INSERT INTO contact (employee_id, address, phone_number, email_personal, email_corporate, emergency_contact_name)
		VALUES ($1, $2, $3, $4, '', '');
	`

	_, err := q.Exec(ctx, query, employeeID, record.Address, record.Phone, record.Email)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}

	r.metrics.RowsInserted.WithLabelValues("contact").Inc()

	return nil
}

// InsertAdministration inserts the administrative row tied to the given
// employee. The source sheet carries no document scans, so the three document
// columns stay NULL and the national ID and bank account land together in the
// employment_status free-text column. That shape is what the consuming system
// reads today; keep the format string stable.
func (r *Repository) InsertAdministration(
	ctx context.Context,
	q Querier,
	employeeID int64,
	nationalID, bankAccount string,
) error {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("insert_administration").Observe(duration)
	}()
	query := `
		INSERT INTO administration (employee_id, dni_nie_document, bank_account_document, social_security_document, employment_status)
		VALUES ($1, NULL, NULL, NULL, $2);
	`

	status := fmt.Sprintf("DNI:%s, Bank:%s", nationalID, bankAccount)

	_, err := q.Exec(ctx, query, employeeID, status)
	if err != nil {
		return fmt.Errorf("failed to insert administration: %w", err)
	}

	r.metrics.RowsInserted.WithLabelValues("administration").Inc()

	return nil
}

// InsertCompensation inserts the compensation row tied to the given employee.
// Salary and hours are unknown to the source sheet and stay NULL.
func (r *Repository) InsertCompensation(
	ctx context.Context,
	q Querier,
	employeeID int64,
	contract string,
) error {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("insert_compensation").Observe(duration)
	}()
	query := `
		INSERT INTO compensation (employee_id, annual_salary, contract_type, work_hours)
		VALUES ($1, NULL, $2, NULL);
	`

	_, err := q.Exec(ctx, query, employeeID, contract)
	if err != nil {
		return fmt.Errorf("failed to insert compensation: %w", err)
	}

	r.metrics.RowsInserted.WithLabelValues("compensation").Inc()

	return nil
}

// InsertWorkDetails inserts the work-details row tied to the given employee.
func (r *Repository) InsertWorkDetails(
	ctx context.Context,
	q Querier,
	employeeID int64,
	joinDate string,
) error {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("insert_workdetails").Observe(duration)
	}()
	query := `
		INSERT INTO workdetails (employee_id, supervisor_name, job_id, date_joined, contract_start_date, contract_end_date)
		VALUES ($1, '', NULL, $2, '', '');
	`

	_, err := q.Exec(ctx, query, employeeID, joinDate)
	if err != nil {
		return fmt.Errorf("failed to insert work details: %w", err)
	}

	r.metrics.RowsInserted.WithLabelValues("workdetails").Inc()

	return nil
}
