package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhold/hr-backoffice-go/internal/domain/employee"
	"github.com/staffhold/hr-backoffice-go/internal/domain/payroll"
	"github.com/staffhold/hr-backoffice-go/internal/domain/scope"
	"github.com/staffhold/hr-backoffice-go/internal/domain/summary"
)

type fakeSalaryRepo struct {
	records       map[string]*payroll.SalaryRecord
	sequence      int
	failUpsertFor string
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{records: make(map[string]*payroll.SalaryRecord)}
}

func (r *fakeSalaryRepo) key(employeeID string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", employeeID, month, year)
}

func (r *fakeSalaryRepo) GetByID(_ context.Context, id string) (payroll.SalaryRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return *rec, nil
		}
	}
	return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
}

func (r *fakeSalaryRepo) GetByEmployeePeriod(_ context.Context, employeeID string, month, year int) (*payroll.SalaryRecord, error) {
	rec, ok := r.records[r.key(employeeID, month, year)]
	if !ok {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (r *fakeSalaryRepo) Upsert(_ context.Context, rec payroll.SalaryRecord) (payroll.SalaryRecord, error) {
	if r.failUpsertFor == rec.EmployeeID {
		return payroll.SalaryRecord{}, fmt.Errorf("connection reset")
	}
	k := r.key(rec.EmployeeID, rec.PeriodMonth, rec.PeriodYear)
	if existing, ok := r.records[k]; ok {
		existing.BaseSalary = rec.BaseSalary
		existing.WorkedDays = rec.WorkedDays
		existing.TotalDays = rec.TotalDays
		existing.WorkedMinutes = rec.WorkedMinutes
		existing.TotalAmount = rec.TotalAmount
		existing.CalculatedBy = rec.CalculatedBy
		return *existing, nil
	}
	r.sequence++
	rec.ID = fmt.Sprintf("sal-%d", r.sequence)
	r.records[k] = &rec
	return rec, nil
}

func (r *fakeSalaryRepo) UpdateLine(_ context.Context, id string, bonus, deduction, total decimal.Decimal, note *string) error {
	for _, rec := range r.records {
		if rec.ID == id {
			rec.Bonus = bonus
			rec.Deduction = deduction
			rec.TotalAmount = total
			rec.Note = note
			return nil
		}
	}
	return payroll.ErrSalaryRecordNotFound
}

func (r *fakeSalaryRepo) ListByTenantPeriod(_ context.Context, tenantID *string, month, year int) ([]payroll.SalaryRecord, error) {
	var out []payroll.SalaryRecord
	for _, rec := range r.records {
		if rec.PeriodMonth != month || rec.PeriodYear != year {
			continue
		}
		if tenantID != nil && rec.TenantID != *tenantID {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (r *fakeSalaryRepo) ListByEmployeeYear(_ context.Context, employeeID string, year int) ([]payroll.SalaryRecord, error) {
	var out []payroll.SalaryRecord
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.PeriodYear == year {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByBadgeID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetActiveByTenant(_ context.Context, tenantID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		if emp.TenantID == tenantID && emp.Status == employee.StatusActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

// stubSummaryRepo only serves MonthlyTotals; the payroll engine never
// touches the rest of the summary store.
type stubSummaryRepo struct {
	workedDays    map[string]int
	workedMinutes map[string]int
}

func (r *stubSummaryRepo) GetByID(context.Context, string) (summary.DailySummary, error) {
	return summary.DailySummary{}, summary.ErrSummaryNotFound
}

func (r *stubSummaryRepo) GetByEmployeeAndDate(context.Context, string, time.Time) (*summary.DailySummary, error) {
	return nil, nil
}

func (r *stubSummaryRepo) Upsert(_ context.Context, s summary.DailySummary) (summary.DailySummary, error) {
	return s, nil
}

func (r *stubSummaryRepo) UpdateCorrection(context.Context, string, int, int, string, *string) error {
	return nil
}

func (r *stubSummaryRepo) ListByDate(context.Context, time.Time, *string) ([]summary.DailySummary, error) {
	return nil, nil
}

func (r *stubSummaryRepo) ListByEmployeeAndRange(context.Context, string, time.Time, time.Time) ([]summary.DailySummary, error) {
	return nil, nil
}

func (r *stubSummaryRepo) MonthlyTotals(_ context.Context, employeeID string, _, _ time.Time) (int, int, error) {
	return r.workedDays[employeeID], r.workedMinutes[employeeID], nil
}

func strptr(s string) *string { return &s }

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newTestService(workedDays map[string]int) (*PayrollServiceImpl, *fakeSalaryRepo) {
	salaries := newFakeSalaryRepo()
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", TenantID: "tenant-1", FullName: "Dewi Lestari", BaseSalary: dec("4200"), Status: employee.StatusActive},
		"emp-2": {ID: "emp-2", TenantID: "tenant-1", FullName: "Rina Wijaya", BaseSalary: dec("5000"), Status: employee.StatusInactive},
		"emp-3": {ID: "emp-3", TenantID: "tenant-2", FullName: "Budi Santoso", BaseSalary: dec("3000"), Status: employee.StatusActive},
	}}
	summaries := &stubSummaryRepo{workedDays: workedDays, workedMinutes: map[string]int{}}

	svc := &PayrollServiceImpl{
		salaryRepo:   salaries,
		employeeRepo: employees,
		summaryRepo:  summaries,
		loc:          time.UTC,
	}
	return svc, salaries
}

func TestWorkingDays(t *testing.T) {
	t.Parallel()

	// March 2026 has 22 weekdays, February 2026 has 20.
	assert.Equal(t, 22, workingDays(2026, time.March))
	assert.Equal(t, 20, workingDays(2026, time.February))
	assert.Equal(t, 23, workingDays(2026, time.July))
}

func TestCalculateMonth_ProportionalBase(t *testing.T) {
	t.Parallel()

	// May 2026 has 21 weekdays, so 19 worked days of a 4200 base salary
	// comes out to a hand-checked 4200 / 21 * 19 = 3800.00.
	require.Equal(t, 21, workingDays(2026, time.May))

	svc, salaries := newTestService(map[string]int{"emp-1": 19})
	caller := scope.Caller{UserID: "payroll-admin", TenantID: strptr("tenant-1")}

	n, err := svc.CalculateMonth(context.Background(), caller, payroll.CalculateMonthRequest{Month: 5, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := salaries.GetByEmployeePeriod(context.Background(), "emp-1", 5, 2026)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.True(t, rec.TotalAmount.Equal(dec("3800.00")), "total = %s", rec.TotalAmount)
	assert.Equal(t, 19, rec.WorkedDays)
	assert.Equal(t, 21, rec.TotalDays)
	assert.True(t, rec.BaseSalary.Equal(dec("4200")))
	assert.Equal(t, "payroll-admin", rec.CalculatedBy)
}

func TestCalculateMonth_PreservesBonusAndDeduction(t *testing.T) {
	t.Parallel()

	svc, salaries := newTestService(map[string]int{"emp-1": 19})
	ctx := context.Background()
	caller := scope.Caller{UserID: "payroll-admin", TenantID: strptr("tenant-1")}

	_, err := svc.CalculateMonth(ctx, caller, payroll.CalculateMonthRequest{Month: 5, Year: 2026})
	require.NoError(t, err)

	rec, _ := salaries.GetByEmployeePeriod(ctx, "emp-1", 5, 2026)
	bonus, deduction := dec("100"), dec("50")
	_, err = svc.UpdateLine(ctx, caller, payroll.UpdateLineRequest{ID: rec.ID, Bonus: &bonus, Deduction: &deduction})
	require.NoError(t, err)

	// Recalculation refreshes the derived part and keeps the overlay.
	_, err = svc.CalculateMonth(ctx, caller, payroll.CalculateMonthRequest{Month: 5, Year: 2026})
	require.NoError(t, err)

	rec, _ = salaries.GetByEmployeePeriod(ctx, "emp-1", 5, 2026)
	assert.True(t, rec.Bonus.Equal(dec("100")))
	assert.True(t, rec.Deduction.Equal(dec("50")))
	assert.True(t, rec.TotalAmount.Equal(dec("3850.00")), "total = %s", rec.TotalAmount)
}

func TestCalculateMonth_SkipsInactiveAndOtherTenants(t *testing.T) {
	t.Parallel()

	svc, salaries := newTestService(map[string]int{"emp-1": 10, "emp-2": 10, "emp-3": 10})
	caller := scope.Caller{UserID: "payroll-admin", TenantID: strptr("tenant-1")}

	n, err := svc.CalculateMonth(context.Background(), caller, payroll.CalculateMonthRequest{Month: 5, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, salaries.records, 1)
}

func TestCalculateMonth_ZeroWorkedDays(t *testing.T) {
	t.Parallel()

	svc, salaries := newTestService(map[string]int{})
	ctx := context.Background()
	caller := scope.Caller{UserID: "payroll-admin", TenantID: strptr("tenant-1")}

	_, err := svc.CalculateMonth(ctx, caller, payroll.CalculateMonthRequest{Month: 5, Year: 2026})
	require.NoError(t, err)

	rec, _ := salaries.GetByEmployeePeriod(ctx, "emp-1", 5, 2026)
	require.NotNil(t, rec)
	assert.True(t, rec.TotalAmount.IsZero())
	assert.Equal(t, 0, rec.WorkedDays)
}

func TestCalculateMonth_FailedRunReportsNothingProcessed(t *testing.T) {
	t.Parallel()

	salaries := newFakeSalaryRepo()
	salaries.failUpsertFor = "emp-4"
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", TenantID: "tenant-1", FullName: "Dewi Lestari", BaseSalary: dec("4200"), Status: employee.StatusActive},
		"emp-4": {ID: "emp-4", TenantID: "tenant-1", FullName: "Agus Prasetyo", BaseSalary: dec("3600"), Status: employee.StatusActive},
	}}
	svc := &PayrollServiceImpl{
		salaryRepo:   salaries,
		employeeRepo: employees,
		summaryRepo:  &stubSummaryRepo{workedDays: map[string]int{"emp-1": 10, "emp-4": 10}, workedMinutes: map[string]int{}},
		loc:          time.UTC,
	}
	caller := scope.Caller{UserID: "payroll-admin", TenantID: strptr("tenant-1")}

	n, err := svc.CalculateMonth(context.Background(), caller, payroll.CalculateMonthRequest{Month: 5, Year: 2026})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emp-4")
	assert.Zero(t, n)
}

func TestCalculateMonth_HoldingMustNameTenant(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(map[string]int{})
	holding := scope.Caller{UserID: "hq", Holding: true}

	_, err := svc.CalculateMonth(context.Background(), holding, payroll.CalculateMonthRequest{Month: 5, Year: 2026})
	require.ErrorIs(t, err, scope.ErrAccessDenied)

	n, err := svc.CalculateMonth(context.Background(), holding, payroll.CalculateMonthRequest{Month: 5, Year: 2026, TenantID: strptr("tenant-2")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCalculateMonth_TenantRequestOverriddenForRegularCaller(t *testing.T) {
	t.Parallel()

	svc, salaries := newTestService(map[string]int{"emp-1": 5, "emp-3": 5})
	caller := scope.Caller{UserID: "payroll-admin", TenantID: strptr("tenant-1")}

	// Asking for another tenant silently resolves to the caller's own.
	n, err := svc.CalculateMonth(context.Background(), caller, payroll.CalculateMonthRequest{Month: 5, Year: 2026, TenantID: strptr("tenant-2")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, _ := salaries.GetByEmployeePeriod(context.Background(), "emp-1", 5, 2026)
	assert.NotNil(t, rec)
	rec, _ = salaries.GetByEmployeePeriod(context.Background(), "emp-3", 5, 2026)
	assert.Nil(t, rec)
}

func TestUpdateLine_RecomputesTotalFromSnapshot(t *testing.T) {
	t.Parallel()

	svc, salaries := newTestService(map[string]int{"emp-1": 19})
	ctx := context.Background()
	caller := scope.Caller{UserID: "payroll-admin", TenantID: strptr("tenant-1")}

	_, err := svc.CalculateMonth(ctx, caller, payroll.CalculateMonthRequest{Month: 5, Year: 2026})
	require.NoError(t, err)
	rec, _ := salaries.GetByEmployeePeriod(ctx, "emp-1", 5, 2026)

	bonus := dec("250.50")
	resp, err := svc.UpdateLine(ctx, caller, payroll.UpdateLineRequest{ID: rec.ID, Bonus: &bonus, Note: strptr("quarter award")})
	require.NoError(t, err)

	assert.True(t, resp.TotalAmount.Equal(dec("4050.50")), "total = %s", resp.TotalAmount)
	require.NotNil(t, resp.Note)
	assert.Equal(t, "quarter award", *resp.Note)
}

func TestUpdateLine_CrossTenantDenied(t *testing.T) {
	t.Parallel()

	svc, salaries := newTestService(map[string]int{"emp-3": 5})
	ctx := context.Background()

	holding := scope.Caller{UserID: "hq", Holding: true}
	_, err := svc.CalculateMonth(ctx, holding, payroll.CalculateMonthRequest{Month: 5, Year: 2026, TenantID: strptr("tenant-2")})
	require.NoError(t, err)
	rec, _ := salaries.GetByEmployeePeriod(ctx, "emp-3", 5, 2026)

	caller := scope.Caller{UserID: "payroll-admin", TenantID: strptr("tenant-1")}
	bonus := dec("10")
	_, err = svc.UpdateLine(ctx, caller, payroll.UpdateLineRequest{ID: rec.ID, Bonus: &bonus})
	require.ErrorIs(t, err, scope.ErrAccessDenied)
}

func TestUpdateLine_UnknownRecord(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(map[string]int{})
	caller := scope.Caller{UserID: "payroll-admin", TenantID: strptr("tenant-1")}

	bonus := dec("10")
	_, err := svc.UpdateLine(context.Background(), caller, payroll.UpdateLineRequest{ID: "sal-404", Bonus: &bonus})
	require.ErrorIs(t, err, payroll.ErrSalaryRecordNotFound)
}

func TestListForPeriod_HoldingSeesAllTenants(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(map[string]int{"emp-1": 5, "emp-3": 5})
	ctx := context.Background()
	holding := scope.Caller{UserID: "hq", Holding: true}

	_, err := svc.CalculateMonth(ctx, holding, payroll.CalculateMonthRequest{Month: 5, Year: 2026, TenantID: strptr("tenant-1")})
	require.NoError(t, err)
	_, err = svc.CalculateMonth(ctx, holding, payroll.CalculateMonthRequest{Month: 5, Year: 2026, TenantID: strptr("tenant-2")})
	require.NoError(t, err)

	records, err := svc.ListForPeriod(ctx, holding, payroll.ListForPeriodRequest{Month: 5, Year: 2026})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	scoped := scope.Caller{UserID: "payroll-admin", TenantID: strptr("tenant-1")}
	records, err = svc.ListForPeriod(ctx, scoped, payroll.ListForPeriodRequest{Month: 5, Year: 2026})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "tenant-1", records[0].TenantID)
}
