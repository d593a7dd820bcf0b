package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffhold/hr-backoffice-go/internal/domain/summary"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/database"
)

type summaryRepository struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) summary.Repository {
	return &summaryRepository{db: db}
}

const summaryColumns = `id, employee_id, tenant_id, date, first_entry, last_exit, status,
	total_minutes, correction_minutes, corrected_by, correction_note, office_label, created_at, updated_at`

func (r *summaryRepository) GetByID(ctx context.Context, id string) (summary.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + summaryColumns + ` FROM daily_summaries WHERE id = $1`

	sum, err := scanSummary(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary.DailySummary{}, summary.ErrSummaryNotFound
		}
		return summary.DailySummary{}, fmt.Errorf("failed to get daily summary: %w", err)
	}

	return sum, nil
}

func (r *summaryRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*summary.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + summaryColumns + ` FROM daily_summaries WHERE employee_id = $1 AND date = $2`

	sum, err := scanSummary(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily summary: %w", err)
	}

	return &sum, nil
}

// Upsert writes the derived fields of one summary row. On conflict the
// correction overlay columns are deliberately absent from the SET list so a
// recompute can never erase a manual adjustment.
func (r *summaryRepository) Upsert(ctx context.Context, s summary.DailySummary) (summary.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now()

	query := `
		INSERT INTO daily_summaries (id, employee_id, tenant_id, date, first_entry, last_exit, status,
			total_minutes, correction_minutes, office_label, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			first_entry = EXCLUDED.first_entry,
			last_exit = EXCLUDED.last_exit,
			status = EXCLUDED.status,
			total_minutes = EXCLUDED.total_minutes,
			office_label = EXCLUDED.office_label,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + summaryColumns

	sum, err := scanSummary(q.QueryRow(ctx, query,
		s.ID,
		s.EmployeeID,
		s.TenantID,
		s.Date,
		s.FirstEntry,
		s.LastExit,
		string(s.Status),
		s.TotalMinutes,
		s.CorrectionMinutes,
		s.OfficeLabel,
		now,
	))
	if err != nil {
		return summary.DailySummary{}, fmt.Errorf("failed to upsert daily summary: %w", err)
	}

	return sum, nil
}

func (r *summaryRepository) UpdateCorrection(ctx context.Context, id string, correctionMinutes, totalMinutes int, correctedBy string, note *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE daily_summaries
		SET correction_minutes = $2, total_minutes = $3, corrected_by = $4, correction_note = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, correctionMinutes, totalMinutes, correctedBy, note, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update correction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return summary.ErrSummaryNotFound
	}

	return nil
}

func (r *summaryRepository) ListByDate(ctx context.Context, date time.Time, tenantID *string) ([]summary.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ds.id, ds.employee_id, ds.tenant_id, ds.date, ds.first_entry, ds.last_exit, ds.status,
			ds.total_minutes, ds.correction_minutes, ds.corrected_by, ds.correction_note, ds.office_label,
			ds.created_at, ds.updated_at, e.full_name
		FROM daily_summaries ds
		JOIN employees e ON e.id = ds.employee_id
		WHERE ds.date = $1
	`
	args := []interface{}{date}

	if tenantID != nil {
		query += ` AND ds.tenant_id = $2`
		args = append(args, *tenantID)
	}
	query += ` ORDER BY e.full_name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily summaries: %w", err)
	}
	defer rows.Close()

	summaries := []summary.DailySummary{}
	for rows.Next() {
		var sum summary.DailySummary
		var status string
		if err := rows.Scan(
			&sum.ID, &sum.EmployeeID, &sum.TenantID, &sum.Date, &sum.FirstEntry, &sum.LastExit, &status,
			&sum.TotalMinutes, &sum.CorrectionMinutes, &sum.CorrectedBy, &sum.CorrectionNote, &sum.OfficeLabel,
			&sum.CreatedAt, &sum.UpdatedAt, &sum.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily summary: %w", err)
		}
		sum.Status = summary.Status(status)
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

func (r *summaryRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]summary.DailySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + summaryColumns + `
		FROM daily_summaries
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily summaries: %w", err)
	}
	defer rows.Close()

	summaries := []summary.DailySummary{}
	for rows.Next() {
		var sum summary.DailySummary
		var status string
		if err := rows.Scan(
			&sum.ID, &sum.EmployeeID, &sum.TenantID, &sum.Date, &sum.FirstEntry, &sum.LastExit, &status,
			&sum.TotalMinutes, &sum.CorrectionMinutes, &sum.CorrectedBy, &sum.CorrectionNote, &sum.OfficeLabel,
			&sum.CreatedAt, &sum.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily summary: %w", err)
		}
		sum.Status = summary.Status(status)
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// MonthlyTotals feeds the payroll engine: only present and left days count
// as worked.
func (r *summaryRepository) MonthlyTotals(ctx context.Context, employeeID string, from, to time.Time) (int, int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*), COALESCE(SUM(total_minutes), 0)
		FROM daily_summaries
		WHERE employee_id = $1 AND date >= $2 AND date <= $3 AND status IN ('present', 'left')
	`

	var days, minutes int
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&days, &minutes); err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate monthly totals: %w", err)
	}

	return days, minutes, nil
}

func scanSummary(row pgx.Row) (summary.DailySummary, error) {
	var sum summary.DailySummary
	var status string
	if err := row.Scan(
		&sum.ID, &sum.EmployeeID, &sum.TenantID, &sum.Date, &sum.FirstEntry, &sum.LastExit, &status,
		&sum.TotalMinutes, &sum.CorrectionMinutes, &sum.CorrectedBy, &sum.CorrectionNote, &sum.OfficeLabel,
		&sum.CreatedAt, &sum.UpdatedAt,
	); err != nil {
		return summary.DailySummary{}, err
	}
	sum.Status = summary.Status(status)
	return sum, nil
}
