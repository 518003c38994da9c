package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// JobRepository encapsulates job posting persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	ListPublic(ctx context.Context) ([]domain.Job, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Job, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, description, category, type, company_name, country, city, salary, expired, posted_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		job.Title,
		job.Description,
		job.Category,
		job.Type,
		job.CompanyName,
		job.Country,
		job.City,
		job.Salary,
		job.Expired,
		job.PostedBy,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, description=$2, category=$3, type=$4, company_name=$5,
            country=$6, city=$7, salary=$8, expired=$9, posted_by=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		job.Title,
		job.Description,
		job.Category,
		job.Type,
		job.CompanyName,
		job.Country,
		job.City,
		job.Salary,
		job.Expired,
		job.PostedBy,
		job.ID,
	)
	if err != nil {
		return normalizeLookupErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	const query = jobSelect + ` WHERE id=$1`
	var job domain.Job
	if err := r.pool.QueryRow(ctx, query, id).Scan(jobScanTargets(&job)...); err != nil {
		return nil, normalizeLookupErr(err)
	}
	return &job, nil
}

func (r *jobRepository) ListPublic(ctx context.Context) ([]domain.Job, error) {
	// Deterministic order; the public listing is also the cached payload.
	const query = jobSelect + ` WHERE expired=false ORDER BY created_at DESC, id`
	return r.list(ctx, query)
}

func (r *jobRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Job, error) {
	const query = jobSelect + ` WHERE posted_by=$1 ORDER BY created_at DESC, id`
	return r.list(ctx, query, ownerID)
}

const jobSelect = `
        SELECT id, title, description, category, type, company_name, country, city,
               salary, expired, posted_by, created_at, updated_at
        FROM jobs`

func jobScanTargets(job *domain.Job) []any {
	return []any{
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Category,
		&job.Type,
		&job.CompanyName,
		&job.Country,
		&job.City,
		&job.Salary,
		&job.Expired,
		&job.PostedBy,
		&job.CreatedAt,
		&job.UpdatedAt,
	}
}

func (r *jobRepository) list(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(jobScanTargets(&job)...); err != nil {
			return nil, err
		}
		result = append(result, job)
	}
	return result, rows.Err()
}
