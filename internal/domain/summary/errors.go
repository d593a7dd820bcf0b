package summary

import "errors"

var (
	ErrSummaryNotFound = errors.New("daily attendance summary not found")
)
