package office

import (
	"context"
	"errors"
)

var ErrOfficeNotFound = errors.New("office not found")

// Repository is a read-only lookup over the office directory.
type Repository interface {
	GetByID(ctx context.Context, id string) (Office, error)
	GetByTenantAndLabel(ctx context.Context, tenantID, label string) (Office, error)
}
