package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// CompanyRepository persists employer companies, keyed one-to-one by owner.
type CompanyRepository interface {
	GetByOwner(ctx context.Context, ownerID string) (*domain.Company, error)
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	// CreateForOwner inserts the owner's company; returns false without
	// mutating anything when the owner already has one.
	CreateForOwner(ctx context.Context, company *domain.Company) (bool, error)
	UpdateStatus(ctx context.Context, id string, status domain.VerificationStatus) error
	DeleteByOwner(ctx context.Context, ownerID string) error
	List(ctx context.Context, limit int) ([]domain.Company, error)
}

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository returns a Postgres-backed implementation.
func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &companyRepository{pool: pool}
}

const companyColumns = `id, owner_id, name, website, description, verification_status, created_at, updated_at`

func (r *companyRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies WHERE owner_id=$1`
	return scanCompany(r.pool.QueryRow(ctx, query, ownerID))
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies WHERE id=$1`
	return scanCompany(r.pool.QueryRow(ctx, query, id))
}

func (r *companyRepository) CreateForOwner(ctx context.Context, company *domain.Company) (bool, error) {
	// Single write keyed on owner_id; the DO NOTHING arm makes a concurrent
	// double-submit lose cleanly instead of duplicating the row.
	const query = `
        INSERT INTO companies (owner_id, name, website, description, verification_status)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (owner_id) DO NOTHING
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		company.OwnerID,
		company.Name,
		company.Website,
		company.Description,
		company.Status,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *companyRepository) UpdateStatus(ctx context.Context, id string, status domain.VerificationStatus) error {
	const query = `UPDATE companies SET verification_status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *companyRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	const query = `DELETE FROM companies WHERE owner_id=$1`
	_, err := r.pool.Exec(ctx, query, ownerID)
	return err
}

func (r *companyRepository) List(ctx context.Context, limit int) ([]domain.Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *company)
	}
	return companies, rows.Err()
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var company domain.Company
	if err := row.Scan(
		&company.ID,
		&company.OwnerID,
		&company.Name,
		&company.Website,
		&company.Description,
		&company.Status,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &company, nil
}
