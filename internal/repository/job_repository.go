package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campaign-service/internal/domain"
)

// JobRepository persists job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository constructs repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, title, description, location, salary_range, experience_required, employment_type,
        total_rounds, is_active, created_by, created_at, updated_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, description, location, salary_range, experience_required, employment_type,
            total_rounds, is_active, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return conn(ctx, r.pool).QueryRow(ctx, query,
		job.Title,
		job.Description,
		job.Location,
		job.SalaryRange,
		job.ExperienceRequired,
		job.EmploymentType,
		job.TotalRounds,
		job.IsActive,
		job.CreatedBy,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	return scanJob(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id=$1`, id))
}

func (r *jobRepository) List(ctx context.Context, activeOnly bool) ([]domain.Job, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE ($1 = FALSE OR is_active) ORDER BY created_at DESC`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, description=$2, location=$3, salary_range=$4, experience_required=$5,
            employment_type=$6, total_rounds=$7, is_active=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	return conn(ctx, r.pool).QueryRow(ctx, query,
		job.Title,
		job.Description,
		job.Location,
		job.SalaryRange,
		job.ExperienceRequired,
		job.EmploymentType,
		job.TotalRounds,
		job.IsActive,
		job.ID,
	).Scan(&job.UpdatedAt)
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	if err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Description,
		&j.Location,
		&j.SalaryRange,
		&j.ExperienceRequired,
		&j.EmploymentType,
		&j.TotalRounds,
		&j.IsActive,
		&j.CreatedBy,
		&j.CreatedAt,
		&j.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &j, nil
}
