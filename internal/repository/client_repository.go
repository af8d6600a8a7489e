package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campaign-service/internal/domain"
)

// ClientRepository persists client admins and their users.
type ClientRepository interface {
	CreateAdmin(ctx context.Context, admin *domain.ClientAdmin) error
	GetAdminByID(ctx context.Context, id string) (*domain.ClientAdmin, error)
	GetAdminByEmail(ctx context.Context, email string) (*domain.ClientAdmin, error)
	CreateUser(ctx context.Context, user *domain.ClientUser) error
	GetUserByEmail(ctx context.Context, email string) (*domain.ClientUser, error)
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository constructs repository.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

const clientAdminColumns = `id, name, email, contact_no, password_hash, organization_name, registration_username, created_at, updated_at`

func (r *clientRepository) CreateAdmin(ctx context.Context, admin *domain.ClientAdmin) error {
	const query = `
        INSERT INTO client_admins (name, email, contact_no, password_hash, organization_name, registration_username)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return conn(ctx, r.pool).QueryRow(ctx, query,
		admin.Name,
		admin.Email,
		admin.ContactNo,
		admin.PasswordHash,
		admin.OrganizationName,
		admin.RegistrationUsername,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
}

func (r *clientRepository) GetAdminByID(ctx context.Context, id string) (*domain.ClientAdmin, error) {
	return r.scanAdmin(ctx, `SELECT `+clientAdminColumns+` FROM client_admins WHERE id=$1`, id)
}

func (r *clientRepository) GetAdminByEmail(ctx context.Context, email string) (*domain.ClientAdmin, error) {
	return r.scanAdmin(ctx, `SELECT `+clientAdminColumns+` FROM client_admins WHERE lower(email)=lower($1)`, email)
}

func (r *clientRepository) scanAdmin(ctx context.Context, query string, arg any) (*domain.ClientAdmin, error) {
	var a domain.ClientAdmin
	if err := conn(ctx, r.pool).QueryRow(ctx, query, arg).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.ContactNo,
		&a.PasswordHash,
		&a.OrganizationName,
		&a.RegistrationUsername,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *clientRepository) CreateUser(ctx context.Context, user *domain.ClientUser) error {
	const query = `
        INSERT INTO client_users (name, email, contact_no, password_hash, role_profile, parent_client_admin_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return conn(ctx, r.pool).QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.ContactNo,
		user.PasswordHash,
		user.RoleProfile,
		user.ParentClientAdminID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *clientRepository) GetUserByEmail(ctx context.Context, email string) (*domain.ClientUser, error) {
	const query = `
        SELECT id, name, email, contact_no, password_hash, role_profile, parent_client_admin_id, created_at, updated_at
        FROM client_users WHERE lower(email)=lower($1)`
	var u domain.ClientUser
	if err := conn(ctx, r.pool).QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.ContactNo,
		&u.PasswordHash,
		&u.RoleProfile,
		&u.ParentClientAdminID,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
