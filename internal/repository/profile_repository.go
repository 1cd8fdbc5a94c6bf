package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// ProfileRepository is the profile-store surface the core consumes. Upsert is
// a single create-or-update on the account id, so a double-submitted form
// cannot race itself into duplicate rows.
type ProfileRepository interface {
	Get(ctx context.Context, accountID string) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
	SetBlocked(ctx context.Context, accountID string, blocked bool) error
	List(ctx context.Context, limit int) ([]domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

const profileColumns = `account_id, email, role, full_name, title, phone, telegram, location,
        job_search_status, onboarded, blocked, created_at, updated_at`

func (r *profileRepository) Get(ctx context.Context, accountID string) (*domain.Profile, error) {
	const query = `
        SELECT ` + profileColumns + `
        FROM profiles WHERE account_id=$1`

	return scanProfile(r.pool.QueryRow(ctx, query, accountID))
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO profiles (account_id, email, role, full_name, title, phone, telegram, location,
            job_search_status, onboarded, blocked)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (account_id) DO UPDATE SET
            email=EXCLUDED.email,
            role=EXCLUDED.role,
            full_name=EXCLUDED.full_name,
            title=EXCLUDED.title,
            phone=EXCLUDED.phone,
            telegram=EXCLUDED.telegram,
            location=EXCLUDED.location,
            job_search_status=EXCLUDED.job_search_status,
            onboarded=EXCLUDED.onboarded,
            updated_at=NOW()
        RETURNING blocked, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.AccountID,
		profile.Email,
		profile.Role,
		profile.FullName,
		profile.Title,
		profile.Phone,
		profile.Telegram,
		profile.Location,
		profile.JobSearchStatus,
		profile.Onboarded,
		profile.Blocked,
	).Scan(&profile.Blocked, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) SetBlocked(ctx context.Context, accountID string, blocked bool) error {
	const query = `UPDATE profiles SET blocked=$1, updated_at=NOW() WHERE account_id=$2`

	cmd, err := r.pool.Exec(ctx, query, blocked, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context, limit int) ([]domain.Profile, error) {
	const query = `
        SELECT ` + profileColumns + `
        FROM profiles ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var profile domain.Profile
	if err := row.Scan(
		&profile.AccountID,
		&profile.Email,
		&profile.Role,
		&profile.FullName,
		&profile.Title,
		&profile.Phone,
		&profile.Telegram,
		&profile.Location,
		&profile.JobSearchStatus,
		&profile.Onboarded,
		&profile.Blocked,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}
