package testutil

import (
	"context"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/repository"
)

// JobRepo is an in-memory repository.JobRepository.
type JobRepo struct{ s *Store }

var _ repository.JobRepository = (*JobRepo)(nil)

// Jobs returns the job repository view of the store.
func (s *Store) Jobs() *JobRepo { return &JobRepo{s} }

func (r *JobRepo) Create(_ context.Context, j *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j.ID, j.CreatedAt, j.UpdatedAt = newID(), now(), now()
	r.s.jobs[j.ID] = *j
	return nil
}

func (r *JobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &j, nil
}

func (r *JobRepo) List(_ context.Context, activeOnly bool) ([]domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Job
	for _, j := range r.s.jobs {
		if activeOnly && !j.IsActive {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (r *JobRepo) Update(_ context.Context, j *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[j.ID]; !ok {
		return pgx.ErrNoRows
	}
	j.UpdatedAt = now()
	r.s.jobs[j.ID] = *j
	return nil
}

// ApplicationRepo is an in-memory repository.ApplicationRepository.
type ApplicationRepo struct{ s *Store }

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

// Applications returns the application repository view of the store.
func (s *Store) Applications() *ApplicationRepo { return &ApplicationRepo{s} }

func (r *ApplicationRepo) Create(_ context.Context, a *domain.JobApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.applications {
		if existing.CandidateID == a.CandidateID && existing.JobID == a.JobID {
			return uniqueViolation("job_applications_candidate_job_key")
		}
	}
	a.ID, a.AppliedAt, a.UpdatedAt = newID(), now(), now()
	r.s.applications[a.ID] = *a
	return nil
}

func (r *ApplicationRepo) GetByID(_ context.Context, id string) (*domain.JobApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &a, nil
}

func (r *ApplicationRepo) GetByCandidateAndJob(_ context.Context, candidateID, jobID string) (*domain.JobApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.applications {
		if a.CandidateID == candidateID && a.JobID == jobID {
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *ApplicationRepo) Update(_ context.Context, a *domain.JobApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.applications[a.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.s.applications[a.ID] = *a
	return nil
}

func (r *ApplicationRepo) details(match func(domain.JobApplication) bool) []repository.ApplicationDetail {
	var out []repository.ApplicationDetail
	for _, a := range r.s.applications {
		if !match(a) {
			continue
		}
		c := r.s.candidates[a.CandidateID]
		j := r.s.jobs[a.JobID]
		out = append(out, repository.ApplicationDetail{
			JobApplication: a,
			CandidateName:  c.FullName,
			CandidateEmail: c.Email,
			CandidatePhone: c.Phone,
			JobTitle:       j.Title,
			TotalRounds:    j.TotalRounds,
		})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].AppliedAt.After(out[k].AppliedAt) })
	return out
}

func (r *ApplicationRepo) ListByJob(_ context.Context, jobID string) ([]repository.ApplicationDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.details(func(a domain.JobApplication) bool { return a.JobID == jobID }), nil
}

func (r *ApplicationRepo) ListByCandidate(_ context.Context, candidateID string) ([]repository.ApplicationDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.details(func(a domain.JobApplication) bool { return a.CandidateID == candidateID }), nil
}

// ReportRepo is an in-memory repository.ReportRepository.
type ReportRepo struct{ s *Store }

var _ repository.ReportRepository = (*ReportRepo)(nil)

// Reports returns the report repository view of the store.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{s} }

func (r *ReportRepo) Create(_ context.Context, rep *domain.EmployeeReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rep.ID, rep.CreatedAt = newID(), now()
	for i := range rep.Images {
		rep.Images[i].ID, rep.Images[i].ReportID = newID(), rep.ID
	}
	if rep.BillCopy != nil {
		rep.BillCopy.ID, rep.BillCopy.ReportID = newID(), rep.ID
	}
	r.s.reports[rep.ID] = *rep
	r.s.orderedReportIDs = append(r.s.orderedReportIDs, rep.ID)
	return nil
}

func (r *ReportRepo) GetByID(_ context.Context, id string) (*domain.EmployeeReport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rep, ok := r.s.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &rep, nil
}

func (r *ReportRepo) List(_ context.Context, filter repository.ReportFilter) ([]repository.ReportSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.ReportSummary
	for i := len(r.s.orderedReportIDs) - 1; i >= 0; i-- {
		rep := r.s.reports[r.s.orderedReportIDs[i]]
		if filter.EmployeeID != "" && rep.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.CampaignID != "" && rep.CampaignID != filter.CampaignID {
			continue
		}
		summary := repository.ReportSummary{ImageCount: len(rep.Images), HasBillCopy: rep.BillCopy != nil}
		rep.Images, rep.BillCopy = nil, nil
		summary.EmployeeReport = rep
		out = append(out, summary)
	}
	return out, nil
}
