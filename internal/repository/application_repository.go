package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campaign-service/internal/domain"
)

// ApplicationDetail joins an application with its candidate and job labels.
type ApplicationDetail struct {
	domain.JobApplication
	CandidateName  string
	CandidateEmail string
	CandidatePhone string
	JobTitle       string
	TotalRounds    int
}

// ApplicationRepository persists job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.JobApplication) error
	GetByID(ctx context.Context, id string) (*domain.JobApplication, error)
	GetByCandidateAndJob(ctx context.Context, candidateID, jobID string) (*domain.JobApplication, error)
	ListByJob(ctx context.Context, jobID string) ([]ApplicationDetail, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]ApplicationDetail, error)
	Update(ctx context.Context, app *domain.JobApplication) error
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository constructs repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, candidate_id, job_id, status, current_round, applied_at, updated_at`

func (r *applicationRepository) Create(ctx context.Context, app *domain.JobApplication) error {
	const query = `
        INSERT INTO job_applications (candidate_id, job_id, status, current_round)
        VALUES ($1,$2,$3,$4)
        RETURNING id, applied_at, updated_at`
	return conn(ctx, r.pool).QueryRow(ctx, query, app.CandidateID, app.JobID, app.Status, app.CurrentRound).
		Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.JobApplication, error) {
	return scanApplication(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE id=$1`, id))
}

func (r *applicationRepository) GetByCandidateAndJob(ctx context.Context, candidateID, jobID string) (*domain.JobApplication, error) {
	return scanApplication(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE candidate_id=$1 AND job_id=$2`, candidateID, jobID))
}

func (r *applicationRepository) Update(ctx context.Context, app *domain.JobApplication) error {
	const query = `
        UPDATE job_applications SET status=$1, current_round=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	return conn(ctx, r.pool).QueryRow(ctx, query, app.Status, app.CurrentRound, app.ID).Scan(&app.UpdatedAt)
}

const applicationDetailQuery = `
        SELECT a.id, a.candidate_id, a.job_id, a.status, a.current_round, a.applied_at, a.updated_at,
            c.full_name, c.email, c.phone, j.title, j.total_rounds
        FROM job_applications a
        JOIN career_applicants c ON c.id = a.candidate_id
        JOIN jobs j ON j.id = a.job_id`

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string) ([]ApplicationDetail, error) {
	return r.listDetails(ctx, applicationDetailQuery+` WHERE a.job_id=$1 ORDER BY a.applied_at DESC`, jobID)
}

func (r *applicationRepository) ListByCandidate(ctx context.Context, candidateID string) ([]ApplicationDetail, error) {
	return r.listDetails(ctx, applicationDetailQuery+` WHERE a.candidate_id=$1 ORDER BY a.applied_at DESC`, candidateID)
}

func (r *applicationRepository) listDetails(ctx context.Context, query string, arg any) ([]ApplicationDetail, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ApplicationDetail
	for rows.Next() {
		var d ApplicationDetail
		if err := rows.Scan(
			&d.ID,
			&d.CandidateID,
			&d.JobID,
			&d.Status,
			&d.CurrentRound,
			&d.AppliedAt,
			&d.UpdatedAt,
			&d.CandidateName,
			&d.CandidateEmail,
			&d.CandidatePhone,
			&d.JobTitle,
			&d.TotalRounds,
		); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func scanApplication(row pgx.Row) (*domain.JobApplication, error) {
	var a domain.JobApplication
	if err := row.Scan(&a.ID, &a.CandidateID, &a.JobID, &a.Status, &a.CurrentRound, &a.AppliedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
