package testutil

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/repository"
)

// AdminRepo is an in-memory repository.AdminRepository.
type AdminRepo struct{ s *Store }

var _ repository.AdminRepository = (*AdminRepo)(nil)

// Admins returns the admin repository view of the store.
func (s *Store) Admins() *AdminRepo { return &AdminRepo{s} }

func (r *AdminRepo) Create(_ context.Context, a *domain.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.admins {
		if sameEmail(existing.Email, a.Email) {
			return uniqueViolation("admins_email_key")
		}
	}
	a.ID, a.CreatedAt, a.UpdatedAt = newID(), now(), now()
	r.s.admins[a.ID] = *a
	return nil
}

func (r *AdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &a, nil
}

func (r *AdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if sameEmail(a.Email, email) {
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *AdminRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return pgx.ErrNoRows
	}
	a.PasswordHash, a.UpdatedAt = hash, now()
	r.s.admins[id] = a
	return nil
}

// ClientRepo is an in-memory repository.ClientRepository.
type ClientRepo struct{ s *Store }

var _ repository.ClientRepository = (*ClientRepo)(nil)

// Clients returns the client repository view of the store.
func (s *Store) Clients() *ClientRepo { return &ClientRepo{s} }

func (r *ClientRepo) CreateAdmin(_ context.Context, a *domain.ClientAdmin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.clientAdmins {
		if sameEmail(existing.Email, a.Email) {
			return uniqueViolation("client_admins_email_key")
		}
	}
	a.ID, a.CreatedAt, a.UpdatedAt = newID(), now(), now()
	r.s.clientAdmins[a.ID] = *a
	return nil
}

func (r *ClientRepo) GetAdminByID(_ context.Context, id string) (*domain.ClientAdmin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.clientAdmins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &a, nil
}

func (r *ClientRepo) GetAdminByEmail(_ context.Context, email string) (*domain.ClientAdmin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.clientAdmins {
		if sameEmail(a.Email, email) {
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *ClientRepo) CreateUser(_ context.Context, u *domain.ClientUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clientAdmins[u.ParentClientAdminID]; !ok {
		return foreignKeyViolation("client_users_parent_client_admin_id_fkey")
	}
	for _, existing := range r.s.clientUsers {
		if sameEmail(existing.Email, u.Email) {
			return uniqueViolation("client_users_email_key")
		}
	}
	u.ID, u.CreatedAt, u.UpdatedAt = newID(), now(), now()
	r.s.clientUsers[u.ID] = *u
	return nil
}

func (r *ClientRepo) GetUserByEmail(_ context.Context, email string) (*domain.ClientUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.clientUsers {
		if sameEmail(u.Email, email) {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// EmployeeRepo is an in-memory repository.EmployeeRepository.
type EmployeeRepo struct{ s *Store }

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// Employees returns the employee repository view of the store.
func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{s} }

func (r *EmployeeRepo) Create(_ context.Context, e *domain.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.employees {
		if sameEmail(existing.Email, e.Email) {
			return uniqueViolation("employees_email_key")
		}
	}
	e.ID, e.CreatedAt, e.UpdatedAt = newID(), now(), now()
	r.s.employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepo) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &e, nil
}

func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.GetByEmailOrPhone(ctx, email, "")
}

func (r *EmployeeRepo) GetByEmailOrPhone(_ context.Context, email, phone string) (*domain.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if sameEmail(e.Email, email) || (phone != "" && e.Phone == phone) {
			return &e, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *EmployeeRepo) Update(_ context.Context, e *domain.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.employees[e.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	e.Email, e.EmployeeType, e.CreatedAt = existing.Email, existing.EmployeeType, existing.CreatedAt
	e.UpdatedAt = now()
	r.s.employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		out = append(out, e)
	}
	return out, nil
}

// RetailerRepo is an in-memory repository.RetailerRepository.
type RetailerRepo struct{ s *Store }

var _ repository.RetailerRepository = (*RetailerRepo)(nil)

// Retailers returns the retailer repository view of the store.
func (s *Store) Retailers() *RetailerRepo { return &RetailerRepo{s} }

func (r *RetailerRepo) Create(_ context.Context, rt *domain.Retailer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.retailers {
		if sameEmail(existing.Email, rt.Email) {
			return uniqueViolation("retailers_email_key")
		}
		if existing.ContactNo == rt.ContactNo {
			return uniqueViolation("retailers_contact_no_key")
		}
	}
	rt.ID, rt.CreatedAt, rt.UpdatedAt = newID(), now(), now()
	r.s.retailers[rt.ID] = *rt
	return nil
}

func (r *RetailerRepo) GetByID(_ context.Context, id string) (*domain.Retailer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rt, ok := r.s.retailers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &rt, nil
}

func (r *RetailerRepo) GetByEmailOrPhone(_ context.Context, email, phone string) (*domain.Retailer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rt := range r.s.retailers {
		if sameEmail(rt.Email, email) || (phone != "" && rt.ContactNo == phone) {
			return &rt, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *RetailerRepo) List(_ context.Context) ([]domain.Retailer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Retailer, 0, len(r.s.retailers))
	for _, rt := range r.s.retailers {
		out = append(out, rt)
	}
	return out, nil
}

// CandidateRepo is an in-memory repository.CandidateRepository.
type CandidateRepo struct{ s *Store }

var _ repository.CandidateRepository = (*CandidateRepo)(nil)

// Candidates returns the candidate repository view of the store.
func (s *Store) Candidates() *CandidateRepo { return &CandidateRepo{s} }

func (r *CandidateRepo) Create(_ context.Context, c *domain.CareerApplicant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.candidates {
		if sameEmail(existing.Email, c.Email) {
			return uniqueViolation("career_applicants_email_key")
		}
	}
	c.ID, c.CreatedAt, c.UpdatedAt = newID(), now(), now()
	r.s.candidates[c.ID] = *c
	return nil
}

func (r *CandidateRepo) GetByID(_ context.Context, id string) (*domain.CareerApplicant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (r *CandidateRepo) GetByEmail(_ context.Context, email string) (*domain.CareerApplicant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.candidates {
		if sameEmail(c.Email, email) {
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// DocumentRepo is an in-memory repository.DocumentRepository.
type DocumentRepo struct{ s *Store }

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// Documents returns the document repository view of the store.
func (s *Store) Documents() *DocumentRepo { return &DocumentRepo{s} }

func docKey(ownerID string, kind domain.DocumentKind) string {
	return ownerID + "/" + string(kind)
}

func (r *DocumentRepo) Upsert(_ context.Context, d *domain.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := docKey(d.OwnerID, d.Kind)
	if existing, ok := r.s.documents[key]; ok {
		d.ID = existing.ID
	} else {
		d.ID = newID()
	}
	d.CreatedAt = now()
	r.s.documents[key] = *d
	return nil
}

func (r *DocumentRepo) Get(_ context.Context, ownerID string, kind domain.DocumentKind) (*domain.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.documents[docKey(ownerID, kind)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &d, nil
}

func (r *DocumentRepo) ListKinds(_ context.Context, ownerID string) ([]domain.DocumentKind, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var kinds []domain.DocumentKind
	for _, d := range r.s.documents {
		if d.OwnerID == ownerID {
			kinds = append(kinds, d.Kind)
		}
	}
	return kinds, nil
}
