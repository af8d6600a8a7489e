package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campaign-service/internal/domain"
)

// CandidateRepository persists career applicants.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.CareerApplicant) error
	GetByID(ctx context.Context, id string) (*domain.CareerApplicant, error)
	GetByEmail(ctx context.Context, email string) (*domain.CareerApplicant, error)
}

type candidateRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateRepository constructs repository.
func NewCandidateRepository(pool *pgxpool.Pool) CandidateRepository {
	return &candidateRepository{pool: pool}
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.CareerApplicant) error {
	const query = `
        INSERT INTO career_applicants (full_name, email, phone, password_hash)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return conn(ctx, r.pool).QueryRow(ctx, query, c.FullName, c.Email, c.Phone, c.PasswordHash).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.CareerApplicant, error) {
	return r.scanOne(ctx, `WHERE id=$1`, id)
}

func (r *candidateRepository) GetByEmail(ctx context.Context, email string) (*domain.CareerApplicant, error) {
	return r.scanOne(ctx, `WHERE lower(email)=lower($1)`, email)
}

func (r *candidateRepository) scanOne(ctx context.Context, where string, arg any) (*domain.CareerApplicant, error) {
	query := `SELECT id, full_name, email, phone, password_hash, created_at, updated_at FROM career_applicants ` + where
	var c domain.CareerApplicant
	if err := conn(ctx, r.pool).QueryRow(ctx, query, arg).Scan(
		&c.ID,
		&c.FullName,
		&c.Email,
		&c.Phone,
		&c.PasswordHash,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
