package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/staffhold/hr-backoffice-go/internal/domain/office"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/database"
)

type officeRepository struct {
	db *database.DB
}

func NewOfficeRepository(db *database.DB) office.Repository {
	return &officeRepository{db: db}
}

func (r *officeRepository) GetByID(ctx context.Context, id string) (office.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, tenant_id, label, created_at FROM offices WHERE id = $1`

	var off office.Office
	if err := q.QueryRow(ctx, query, id).Scan(&off.ID, &off.TenantID, &off.Label, &off.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Office{}, office.ErrOfficeNotFound
		}
		return office.Office{}, fmt.Errorf("failed to get office: %w", err)
	}

	return off, nil
}

func (r *officeRepository) GetByTenantAndLabel(ctx context.Context, tenantID, label string) (office.Office, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, tenant_id, label, created_at FROM offices WHERE tenant_id = $1 AND label = $2`

	var off office.Office
	if err := q.QueryRow(ctx, query, tenantID, label).Scan(&off.ID, &off.TenantID, &off.Label, &off.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Office{}, office.ErrOfficeNotFound
		}
		return office.Office{}, fmt.Errorf("failed to get office: %w", err)
	}

	return off, nil
}
