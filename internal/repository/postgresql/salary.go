package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/staffhold/hr-backoffice-go/internal/domain/payroll"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) payroll.Repository {
	return &salaryRepository{db: db}
}

const salaryColumns = `id, employee_id, tenant_id, period_month, period_year, base_salary,
	worked_days, total_days, worked_minutes, bonus, deduction, total_amount, note, calculated_by,
	created_at, updated_at`

func (r *salaryRepository) GetByID(ctx context.Context, id string) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM salary_records WHERE id = $1`

	rec, err := scanSalaryRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return rec, nil
}

func (r *salaryRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + `
		FROM salary_records
		WHERE employee_id = $1 AND period_month = $2 AND period_year = $3`

	rec, err := scanSalaryRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get salary record: %w", err)
	}

	return &rec, nil
}

// Upsert writes the derived portion of one record. Bonus, deduction and
// note are only written on first insert; on conflict they keep their stored
// values so recalculation cannot wipe manual entries.
func (r *salaryRepository) Upsert(ctx context.Context, rec payroll.SalaryRecord) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now()

	query := `
		INSERT INTO salary_records (id, employee_id, tenant_id, period_month, period_year, base_salary,
			worked_days, total_days, worked_minutes, bonus, deduction, total_amount, note, calculated_by,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		ON CONFLICT (employee_id, period_month, period_year) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			worked_days = EXCLUDED.worked_days,
			total_days = EXCLUDED.total_days,
			worked_minutes = EXCLUDED.worked_minutes,
			total_amount = EXCLUDED.total_amount,
			calculated_by = EXCLUDED.calculated_by,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + salaryColumns

	saved, err := scanSalaryRecord(q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.TenantID,
		rec.PeriodMonth,
		rec.PeriodYear,
		rec.BaseSalary,
		rec.WorkedDays,
		rec.TotalDays,
		rec.WorkedMinutes,
		rec.Bonus,
		rec.Deduction,
		rec.TotalAmount,
		rec.Note,
		rec.CalculatedBy,
		now,
	))
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to upsert salary record: %w", err)
	}

	return saved, nil
}

func (r *salaryRepository) UpdateLine(ctx context.Context, id string, bonus, deduction, total decimal.Decimal, note *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET bonus = $2, deduction = $3, total_amount = $4, note = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, bonus, deduction, total, note, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update salary record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSalaryRecordNotFound
	}

	return nil
}

func (r *salaryRepository) ListByTenantPeriod(ctx context.Context, tenantID *string, month, year int) ([]payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sr.id, sr.employee_id, sr.tenant_id, sr.period_month, sr.period_year, sr.base_salary,
			sr.worked_days, sr.total_days, sr.worked_minutes, sr.bonus, sr.deduction, sr.total_amount,
			sr.note, sr.calculated_by, sr.created_at, sr.updated_at, e.full_name
		FROM salary_records sr
		JOIN employees e ON e.id = sr.employee_id
		WHERE sr.period_month = $1 AND sr.period_year = $2
	`
	args := []interface{}{month, year}

	if tenantID != nil {
		query += ` AND sr.tenant_id = $3`
		args = append(args, *tenantID)
	}
	query += ` ORDER BY e.full_name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	records := []payroll.SalaryRecord{}
	for rows.Next() {
		var rec payroll.SalaryRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.TenantID, &rec.PeriodMonth, &rec.PeriodYear, &rec.BaseSalary,
			&rec.WorkedDays, &rec.TotalDays, &rec.WorkedMinutes, &rec.Bonus, &rec.Deduction, &rec.TotalAmount,
			&rec.Note, &rec.CalculatedBy, &rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *salaryRepository) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + `
		FROM salary_records
		WHERE employee_id = $1 AND period_year = $2
		ORDER BY period_month ASC`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	records := []payroll.SalaryRecord{}
	for rows.Next() {
		var rec payroll.SalaryRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.TenantID, &rec.PeriodMonth, &rec.PeriodYear, &rec.BaseSalary,
			&rec.WorkedDays, &rec.TotalDays, &rec.WorkedMinutes, &rec.Bonus, &rec.Deduction, &rec.TotalAmount,
			&rec.Note, &rec.CalculatedBy, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func scanSalaryRecord(row pgx.Row) (payroll.SalaryRecord, error) {
	var rec payroll.SalaryRecord
	if err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.TenantID, &rec.PeriodMonth, &rec.PeriodYear, &rec.BaseSalary,
		&rec.WorkedDays, &rec.TotalDays, &rec.WorkedMinutes, &rec.Bonus, &rec.Deduction, &rec.TotalAmount,
		&rec.Note, &rec.CalculatedBy, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return payroll.SalaryRecord{}, err
	}
	return rec, nil
}
