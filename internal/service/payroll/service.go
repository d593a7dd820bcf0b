package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffhold/hr-backoffice-go/internal/domain/employee"
	"github.com/staffhold/hr-backoffice-go/internal/domain/payroll"
	"github.com/staffhold/hr-backoffice-go/internal/domain/scope"
	"github.com/staffhold/hr-backoffice-go/internal/domain/summary"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/database"
	"github.com/staffhold/hr-backoffice-go/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	db           *database.DB
	salaryRepo   payroll.Repository
	employeeRepo employee.Repository
	summaryRepo  summary.Repository
	loc          *time.Location
}

func NewPayrollService(
	db *database.DB,
	salaryRepo payroll.Repository,
	employeeRepo employee.Repository,
	summaryRepo summary.Repository,
) payroll.Service {
	return &PayrollServiceImpl{
		db:           db,
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
		summaryRepo:  summaryRepo,
		loc:          time.Local,
	}
}

// inTransaction runs fn inside a single database transaction when a pool is
// attached, so nested repository calls join it through the context.
func (s *PayrollServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// CalculateMonth implements payroll.Service.
//
// The derived portion is base_salary / total_working_days * worked_days,
// rounded to 2 decimal places. Re-running the calculation rewrites the
// derived portion from current attendance and keeps whatever bonus and
// deduction were entered on the existing record.
func (s *PayrollServiceImpl) CalculateMonth(ctx context.Context, caller scope.Caller, req payroll.CalculateMonthRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	sc, err := scope.Resolve(caller, req.TenantID)
	if err != nil {
		return 0, err
	}
	// Payroll runs per tenant; an unscoped holding caller has to name one.
	tenantID := sc.TenantID()
	if tenantID == nil {
		return 0, scope.ErrAccessDenied
	}

	employees, err := s.employeeRepo.GetActiveByTenant(ctx, *tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	totalDays := workingDays(req.Year, time.Month(req.Month))
	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0).Add(-time.Millisecond)

	// The run is all or nothing. A failure partway through rolls back
	// every record already written for the month.
	processed := 0
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		for _, emp := range employees {
			workedDays, workedMinutes, err := s.summaryRepo.MonthlyTotals(ctx, emp.ID, from, to)
			if err != nil {
				return fmt.Errorf("failed to aggregate attendance for employee %s: %w", emp.ID, err)
			}

			base := decimal.Zero
			if totalDays > 0 {
				base = emp.BaseSalary.
					Mul(decimal.NewFromInt(int64(workedDays))).
					Div(decimal.NewFromInt(int64(totalDays))).
					Round(2)
			}

			bonus, deduction := decimal.Zero, decimal.Zero
			var note *string
			existing, err := s.salaryRepo.GetByEmployeePeriod(ctx, emp.ID, req.Month, req.Year)
			if err != nil {
				return fmt.Errorf("failed to load existing record for employee %s: %w", emp.ID, err)
			}
			if existing != nil {
				bonus = existing.Bonus
				deduction = existing.Deduction
				note = existing.Note
			}

			_, err = s.salaryRepo.Upsert(ctx, payroll.SalaryRecord{
				EmployeeID:    emp.ID,
				TenantID:      emp.TenantID,
				PeriodMonth:   req.Month,
				PeriodYear:    req.Year,
				BaseSalary:    emp.BaseSalary,
				WorkedDays:    workedDays,
				TotalDays:     totalDays,
				WorkedMinutes: workedMinutes,
				Bonus:         bonus,
				Deduction:     deduction,
				TotalAmount:   base.Add(bonus).Sub(deduction),
				Note:          note,
				CalculatedBy:  caller.UserID,
			})
			if err != nil {
				return fmt.Errorf("failed to save record for employee %s: %w", emp.ID, err)
			}
			processed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return processed, nil
}

// UpdateLine implements payroll.Service.
func (s *PayrollServiceImpl) UpdateLine(ctx context.Context, caller scope.Caller, req payroll.UpdateLineRequest) (payroll.SalaryRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	sc, err := scope.Resolve(caller, nil)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	rec, err := s.salaryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}
	if !sc.Allows(rec.TenantID) {
		return payroll.SalaryRecordResponse{}, scope.ErrAccessDenied
	}

	if req.Bonus != nil {
		rec.Bonus = *req.Bonus
	}
	if req.Deduction != nil {
		rec.Deduction = *req.Deduction
	}
	if req.Note != nil {
		rec.Note = req.Note
	}
	rec.TotalAmount = rec.BaseAmount().Add(rec.Bonus).Sub(rec.Deduction)

	if err := s.salaryRepo.UpdateLine(ctx, rec.ID, rec.Bonus, rec.Deduction, rec.TotalAmount, rec.Note); err != nil {
		return payroll.SalaryRecordResponse{}, fmt.Errorf("failed to update salary record: %w", err)
	}

	return toSalaryRecordResponse(rec), nil
}

// ListForPeriod implements payroll.Service.
func (s *PayrollServiceImpl) ListForPeriod(ctx context.Context, caller scope.Caller, req payroll.ListForPeriodRequest) ([]payroll.SalaryRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sc, err := scope.Resolve(caller, req.TenantID)
	if err != nil {
		return nil, err
	}

	records, err := s.salaryRepo.ListByTenantPeriod(ctx, sc.TenantID(), req.Month, req.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}

	return toSalaryRecordResponses(records), nil
}

// ListForEmployeeYear implements payroll.Service.
func (s *PayrollServiceImpl) ListForEmployeeYear(ctx context.Context, caller scope.Caller, employeeID string, year int) ([]payroll.SalaryRecordResponse, error) {
	sc, err := scope.Resolve(caller, nil)
	if err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !sc.Allows(emp.TenantID) {
		return nil, scope.ErrAccessDenied
	}

	records, err := s.salaryRepo.ListByEmployeeYear(ctx, emp.ID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}

	return toSalaryRecordResponses(records), nil
}

// workingDays counts the Monday through Friday days of one month. Public
// holidays are out of scope; excused days are handled through summaries,
// not the calendar.
func workingDays(year int, month time.Month) int {
	days := 0
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

func toSalaryRecordResponse(rec payroll.SalaryRecord) payroll.SalaryRecordResponse {
	return payroll.SalaryRecordResponse{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		EmployeeName:  rec.EmployeeName,
		TenantID:      rec.TenantID,
		PeriodMonth:   rec.PeriodMonth,
		PeriodYear:    rec.PeriodYear,
		BaseSalary:    rec.BaseSalary,
		WorkedDays:    rec.WorkedDays,
		TotalDays:     rec.TotalDays,
		WorkedMinutes: rec.WorkedMinutes,
		Bonus:         rec.Bonus,
		Deduction:     rec.Deduction,
		TotalAmount:   rec.TotalAmount,
		Note:          rec.Note,
		CalculatedBy:  rec.CalculatedBy,
	}
}

func toSalaryRecordResponses(records []payroll.SalaryRecord) []payroll.SalaryRecordResponse {
	out := make([]payroll.SalaryRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toSalaryRecordResponse(rec))
	}
	return out
}
