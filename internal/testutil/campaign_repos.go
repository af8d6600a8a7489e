package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/repository"
)

// CampaignRepo is an in-memory repository.CampaignRepository.
type CampaignRepo struct{ s *Store }

var _ repository.CampaignRepository = (*CampaignRepo)(nil)

// Campaigns returns the campaign repository view of the store.
func (s *Store) Campaigns() *CampaignRepo { return &CampaignRepo{s} }

func (r *CampaignRepo) Create(_ context.Context, c *domain.Campaign) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID, c.CreatedAt, c.UpdatedAt = newID(), now(), now()
	stored := *c
	stored.AssignedEmployees, stored.AssignedRetailers = nil, nil
	r.s.campaigns[c.ID] = stored
	r.s.orderedCampaignIDs = append(r.s.orderedCampaignIDs, c.ID)
	return nil
}

// withAssignments must be called with the lock held.
func (r *CampaignRepo) withAssignments(c domain.Campaign) domain.Campaign {
	c.AssignedEmployees = collect(r.s.employeeAssign, c.ID)
	c.AssignedRetailers = collect(r.s.retailerAssign, c.ID)
	return c
}

func collect(rows map[assignmentKey]domain.Assignment, campaignID string) []domain.Assignment {
	var out []domain.Assignment
	for k, a := range rows {
		if k.campaignID == campaignID {
			if a.Status == "" {
				a.Status = domain.AssignmentPending
			}
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AssignedAt.Equal(out[j].AssignedAt) {
			return out[i].SubjectID < out[j].SubjectID
		}
		return out[i].AssignedAt.Before(out[j].AssignedAt)
	})
	return out
}

func (r *CampaignRepo) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.campaigns[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c = r.withAssignments(c)
	return &c, nil
}

func (r *CampaignRepo) list(match func(domain.Campaign) bool) []domain.Campaign {
	var out []domain.Campaign
	for i := len(r.s.orderedCampaignIDs) - 1; i >= 0; i-- {
		c, ok := r.s.campaigns[r.s.orderedCampaignIDs[i]]
		if !ok {
			continue
		}
		c = r.withAssignments(c)
		if match(c) {
			out = append(out, c)
		}
	}
	return out
}

func (r *CampaignRepo) List(_ context.Context) ([]domain.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(domain.Campaign) bool { return true }), nil
}

func (r *CampaignRepo) ListForEmployee(_ context.Context, employeeID string) ([]domain.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(c domain.Campaign) bool {
		_, ok := r.s.employeeAssign[assignmentKey{c.ID, employeeID}]
		return ok
	}), nil
}

func (r *CampaignRepo) ListForRetailer(_ context.Context, retailerID string) ([]domain.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(c domain.Campaign) bool {
		_, ok := r.s.retailerAssign[assignmentKey{c.ID, retailerID}]
		return ok
	}), nil
}

func (r *CampaignRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.campaigns[id]
	if !ok {
		return pgx.ErrNoRows
	}
	c.IsActive, c.UpdatedAt = active, now()
	r.s.campaigns[id] = c
	return nil
}

// Delete cascades to assignment and payment rows like the schema does.
func (r *CampaignRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.campaigns[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.campaigns, id)
	for k := range r.s.employeeAssign {
		if k.campaignID == id {
			delete(r.s.employeeAssign, k)
		}
	}
	for k := range r.s.retailerAssign {
		if k.campaignID == id {
			delete(r.s.retailerAssign, k)
		}
	}
	for pid, p := range r.s.payments {
		if p.CampaignID == id {
			delete(r.s.payments, pid)
		}
	}
	return nil
}

// SeedLegacyEmployeeAssignment inserts an assignment row without a status,
// as left behind by old data.
func (s *Store) SeedLegacyEmployeeAssignment(campaignID, employeeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employeeAssign[assignmentKey{campaignID, employeeID}] = domain.Assignment{
		CampaignID: campaignID, SubjectID: employeeID, AssignedAt: now(), UpdatedAt: now(),
	}
}

func upsert(rows map[assignmentKey]domain.Assignment, campaignID, subjectID string, at time.Time) bool {
	key := assignmentKey{campaignID, subjectID}
	existing, ok := rows[key]
	if !ok {
		rows[key] = domain.Assignment{
			CampaignID: campaignID, SubjectID: subjectID, Status: domain.AssignmentPending, AssignedAt: at, UpdatedAt: at,
		}
		return true
	}
	if existing.Status == "" {
		existing.Status, existing.UpdatedAt = domain.AssignmentPending, at
		rows[key] = existing
	}
	return false
}

func (r *CampaignRepo) UpsertEmployeeAssignment(_ context.Context, campaignID, employeeID string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.campaigns[campaignID]; !ok {
		return false, foreignKeyViolation("campaign_employees_campaign_id_fkey")
	}
	if _, ok := r.s.employees[employeeID]; !ok {
		return false, foreignKeyViolation("campaign_employees_employee_id_fkey")
	}
	return upsert(r.s.employeeAssign, campaignID, employeeID, at), nil
}

func (r *CampaignRepo) UpsertRetailerAssignment(_ context.Context, campaignID, retailerID string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.campaigns[campaignID]; !ok {
		return false, foreignKeyViolation("campaign_retailers_campaign_id_fkey")
	}
	if _, ok := r.s.retailers[retailerID]; !ok {
		return false, foreignKeyViolation("campaign_retailers_retailer_id_fkey")
	}
	return upsert(r.s.retailerAssign, campaignID, retailerID, at), nil
}

func setStatus(rows map[assignmentKey]domain.Assignment, campaignID, subjectID string, status domain.AssignmentStatus, at time.Time) error {
	key := assignmentKey{campaignID, subjectID}
	a, ok := rows[key]
	if !ok {
		return pgx.ErrNoRows
	}
	a.Status, a.UpdatedAt = status, at
	rows[key] = a
	return nil
}

func (r *CampaignRepo) UpdateEmployeeStatus(_ context.Context, campaignID, employeeID string, status domain.AssignmentStatus, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return setStatus(r.s.employeeAssign, campaignID, employeeID, status, at)
}

func (r *CampaignRepo) UpdateRetailerStatus(_ context.Context, campaignID, retailerID string, status domain.AssignmentStatus, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return setStatus(r.s.retailerAssign, campaignID, retailerID, status, at)
}

func (r *CampaignRepo) GetRetailerAssignment(_ context.Context, campaignID, retailerID string) (*domain.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.retailerAssign[assignmentKey{campaignID, retailerID}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if a.Status == "" {
		a.Status = domain.AssignmentPending
	}
	return &a, nil
}

// PaymentRepo is an in-memory repository.PaymentRepository.
type PaymentRepo struct{ s *Store }

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// Payments returns the payment repository view of the store.
func (s *Store) Payments() *PaymentRepo { return &PaymentRepo{s} }

func (r *PaymentRepo) find(campaignID, retailerID string) (domain.Payment, bool) {
	for _, p := range r.s.payments {
		if p.CampaignID == campaignID && p.RetailerID == retailerID {
			return p, true
		}
	}
	return domain.Payment{}, false
}

func clonePayment(p domain.Payment) *domain.Payment {
	p.UTRs = append([]domain.UTREntry(nil), p.UTRs...)
	return &p
}

func (r *PaymentRepo) CreateIfAbsent(_ context.Context, p *domain.Payment) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.find(p.CampaignID, p.RetailerID); ok {
		return false, nil
	}
	p.ID, p.CreatedAt, p.UpdatedAt = newID(), now(), now()
	r.s.payments[p.ID] = *clonePayment(*p)
	return true, nil
}

func (r *PaymentRepo) Get(_ context.Context, campaignID, retailerID string) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.find(campaignID, retailerID)
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return clonePayment(p), nil
}

func (r *PaymentRepo) GetForUpdate(ctx context.Context, campaignID, retailerID string) (*domain.Payment, error) {
	return r.Get(ctx, campaignID, retailerID)
}

// Update derives remaining amount and status the way the SQL statement does.
func (r *PaymentRepo) Update(_ context.Context, p *domain.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.payments[p.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	p.Recompute()
	p.UpdatedAt = now()
	stored := *p
	stored.UTRs = existing.UTRs
	r.s.payments[p.ID] = stored
	return nil
}

func (r *PaymentRepo) AddUTR(_ context.Context, paymentID string, entry domain.UTREntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[paymentID]
	if !ok {
		return foreignKeyViolation("payment_utrs_payment_id_fkey")
	}
	p.UTRs = append(append([]domain.UTREntry(nil), p.UTRs...), entry)
	r.s.payments[paymentID] = p
	return nil
}

func (r *PaymentRepo) ListByCampaign(_ context.Context, campaignID string) ([]domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Payment
	for _, p := range r.s.payments {
		if p.CampaignID == campaignID {
			out = append(out, *clonePayment(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RetailerID < out[j].RetailerID })
	return out, nil
}
