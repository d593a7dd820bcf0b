package payroll

import "errors"

var (
	ErrSalaryRecordNotFound = errors.New("salary record not found")
)
