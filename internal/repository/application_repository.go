package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// ApplicationRepository encapsulates application persistence. The applicant
// and employer references are stored as user id plus role tag columns; the
// role columns are constrained to their fixed values in the schema.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	Delete(ctx context.Context, id string) error
	ListByApplicant(ctx context.Context, userID string) ([]domain.Application, error)
	ListByEmployer(ctx context.Context, userID string) ([]domain.Application, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (name, email, phone, cover_letter, resume_public_id, resume_url,
            applicant_user_id, applicant_role, employer_user_id, employer_role)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`

	var resumePublicID, resumeURL *string
	if app.Resume != nil {
		resumePublicID = &app.Resume.PublicID
		resumeURL = &app.Resume.URL
	}

	return r.pool.QueryRow(ctx, query,
		app.Name,
		app.Email,
		app.Phone,
		app.CoverLetter,
		resumePublicID,
		resumeURL,
		app.Applicant.User,
		app.Applicant.Role,
		app.Employer.User,
		app.Employer.Role,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	const query = applicationSelect + ` WHERE id=$1`
	var app domain.Application
	var resumePublicID, resumeURL *string
	if err := r.pool.QueryRow(ctx, query, id).Scan(applicationScanTargets(&app, &resumePublicID, &resumeURL)...); err != nil {
		return nil, normalizeLookupErr(err)
	}
	attachResume(&app, resumePublicID, resumeURL)
	return &app, nil
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM applications WHERE id=$1`, id)
	if err != nil {
		return normalizeLookupErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, userID string) ([]domain.Application, error) {
	const query = applicationSelect + ` WHERE applicant_user_id=$1 ORDER BY created_at DESC, id`
	return r.list(ctx, query, userID)
}

func (r *applicationRepository) ListByEmployer(ctx context.Context, userID string) ([]domain.Application, error) {
	const query = applicationSelect + ` WHERE employer_user_id=$1 ORDER BY created_at DESC, id`
	return r.list(ctx, query, userID)
}

const applicationSelect = `
        SELECT id, name, email, phone, cover_letter, resume_public_id, resume_url,
               applicant_user_id, applicant_role, employer_user_id, employer_role,
               created_at, updated_at
        FROM applications`

func applicationScanTargets(app *domain.Application, resumePublicID, resumeURL **string) []any {
	return []any{
		&app.ID,
		&app.Name,
		&app.Email,
		&app.Phone,
		&app.CoverLetter,
		resumePublicID,
		resumeURL,
		&app.Applicant.User,
		&app.Applicant.Role,
		&app.Employer.User,
		&app.Employer.Role,
		&app.CreatedAt,
		&app.UpdatedAt,
	}
}

func attachResume(app *domain.Application, publicID, url *string) {
	if publicID == nil && url == nil {
		return
	}
	resume := &domain.ResumeRef{}
	if publicID != nil {
		resume.PublicID = *publicID
	}
	if url != nil {
		resume.URL = *url
	}
	app.Resume = resume
}

func (r *applicationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Application
	for rows.Next() {
		var app domain.Application
		var resumePublicID, resumeURL *string
		if err := rows.Scan(applicationScanTargets(&app, &resumePublicID, &resumeURL)...); err != nil {
			return nil, err
		}
		attachResume(&app, resumePublicID, resumeURL)
		result = append(result, app)
	}
	return result, rows.Err()
}
