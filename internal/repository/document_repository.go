package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campaign-service/internal/domain"
)

// DocumentRepository stores identity uploads (photos, resumes, forms).
type DocumentRepository interface {
	Upsert(ctx context.Context, doc *domain.Document) error
	Get(ctx context.Context, ownerID string, kind domain.DocumentKind) (*domain.Document, error)
	ListKinds(ctx context.Context, ownerID string) ([]domain.DocumentKind, error)
}

type documentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository constructs repository.
func NewDocumentRepository(pool *pgxpool.Pool) DocumentRepository {
	return &documentRepository{pool: pool}
}

// Upsert replaces any earlier upload for the same owner and kind.
func (r *documentRepository) Upsert(ctx context.Context, doc *domain.Document) error {
	const query = `
        INSERT INTO identity_documents (owner_id, kind, file_name, content_type, data)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (owner_id, kind) DO UPDATE
            SET file_name=EXCLUDED.file_name, content_type=EXCLUDED.content_type,
                data=EXCLUDED.data, created_at=NOW()
        RETURNING id, created_at`
	return conn(ctx, r.pool).QueryRow(ctx, query,
		doc.OwnerID,
		doc.Kind,
		doc.FileName,
		doc.ContentType,
		doc.Data,
	).Scan(&doc.ID, &doc.CreatedAt)
}

func (r *documentRepository) Get(ctx context.Context, ownerID string, kind domain.DocumentKind) (*domain.Document, error) {
	const query = `
        SELECT id, owner_id, kind, file_name, content_type, data, created_at
        FROM identity_documents WHERE owner_id=$1 AND kind=$2`
	var doc domain.Document
	if err := conn(ctx, r.pool).QueryRow(ctx, query, ownerID, kind).Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.Kind,
		&doc.FileName,
		&doc.ContentType,
		&doc.Data,
		&doc.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListKinds(ctx context.Context, ownerID string) ([]domain.DocumentKind, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT kind FROM identity_documents WHERE owner_id=$1 ORDER BY kind`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kinds []domain.DocumentKind
	for rows.Next() {
		var k domain.DocumentKind
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, rows.Err()
}
