package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/config"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/events"
	"github.com/spec-kit/campaign-service/internal/persistence"
	"github.com/spec-kit/campaign-service/internal/repository"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

// RecruitmentService runs job postings, candidate accounts and applications.
type RecruitmentService struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	candidates   repository.CandidateRepository
	documents    repository.DocumentRepository
	tx           persistence.Transactor
	dispatcher   events.Dispatcher
	bcryptCost   int
	now          func() time.Time
}

// RecruitmentDependencies bundles collaborators for recruitment service.
type RecruitmentDependencies struct {
	JobRepo         repository.JobRepository
	ApplicationRepo repository.ApplicationRepository
	CandidateRepo   repository.CandidateRepository
	DocumentRepo    repository.DocumentRepository
	Transactor      persistence.Transactor
	Dispatcher      events.Dispatcher
}

// NewRecruitmentService constructs the service.
func NewRecruitmentService(cfg config.AuthConfig, deps RecruitmentDependencies) *RecruitmentService {
	return &RecruitmentService{
		jobs:         deps.JobRepo,
		applications: deps.ApplicationRepo,
		candidates:   deps.CandidateRepo,
		documents:    deps.DocumentRepo,
		tx:           deps.Transactor,
		dispatcher:   deps.Dispatcher,
		bcryptCost:   cfg.BcryptCost,
		now:          time.Now,
	}
}

// RegisterCandidateInput is the career sign-up form.
type RegisterCandidateInput struct {
	FullName string
	Phone    string
	Email    string
	Password string
	Resume   *FileUpload
}

// RegisterCandidate creates a candidate account with an optional resume.
func (s *RecruitmentService) RegisterCandidate(ctx context.Context, in RegisterCandidateInput) (*domain.CareerApplicant, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Phone) == "" || email == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("all fields are required", nil)
	}
	if _, err := s.candidates.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("email already registered", nil)
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	candidate := &domain.CareerApplicant{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.candidates.Create(ctx, candidate); err != nil {
			return err
		}
		if in.Resume == nil {
			return nil
		}
		return storeDocuments(ctx, s.documents, candidate.ID, map[domain.DocumentKind]FileUpload{
			domain.DocumentResume: *in.Resume,
		})
	})
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewValidationError("email already registered", nil)
		}
		return nil, err
	}
	return candidate, nil
}

// JobInput carries job fields. Nil pointers are left unchanged on update.
type JobInput struct {
	Title              *string
	Description        *string
	Location           *string
	SalaryRange        *string
	ExperienceRequired *string
	EmploymentType     *string
	TotalRounds        *int
	IsActive           *bool
}

// CreateJob publishes a new active job. totalRounds defaults to 1.
func (s *RecruitmentService) CreateJob(ctx context.Context, actor auth.Principal, in JobInput) (*domain.Job, error) {
	if blank(in.Title) || blank(in.Description) || blank(in.Location) {
		return nil, apperrors.NewValidationError("title, description and location are required", nil)
	}
	job := &domain.Job{TotalRounds: 1, IsActive: true, CreatedBy: actor.ID}
	if err := applyJobInput(job, in); err != nil {
		return nil, err
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// UpdateJob applies a partial update.
func (s *RecruitmentService) UpdateJob(ctx context.Context, id string, in JobInput) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "job")
	}
	for _, v := range []*string{in.Title, in.Description, in.Location} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return nil, apperrors.NewValidationError("title, description and location cannot be empty", nil)
		}
	}
	if err := applyJobInput(job, in); err != nil {
		return nil, err
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func applyJobInput(job *domain.Job, in JobInput) error {
	if in.TotalRounds != nil {
		if *in.TotalRounds < 1 {
			return apperrors.NewValidationError("totalRounds must be at least 1", nil)
		}
		job.TotalRounds = *in.TotalRounds
	}
	setString(&job.Title, in.Title)
	setString(&job.Description, in.Description)
	setString(&job.Location, in.Location)
	setString(&job.SalaryRange, in.SalaryRange)
	setString(&job.ExperienceRequired, in.ExperienceRequired)
	setString(&job.EmploymentType, in.EmploymentType)
	if in.IsActive != nil {
		job.IsActive = *in.IsActive
	}
	return nil
}

func blank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}

// ListJobs returns all jobs, or only active ones for candidates.
func (s *RecruitmentService) ListJobs(ctx context.Context, activeOnly bool) ([]domain.Job, error) {
	return s.jobs.List(ctx, activeOnly)
}

// GetJob loads one job.
func (s *RecruitmentService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "job")
	}
	return job, nil
}

// Apply submits the candidate's application to an active job.
func (s *RecruitmentService) Apply(ctx context.Context, candidateID, jobID string) (*domain.JobApplication, error) {
	if jobID == "" {
		return nil, apperrors.NewValidationError("jobId is required", nil)
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	if err != nil || !job.IsActive {
		return nil, apperrors.NewNotFound("job", map[string]any{"reason": "job not found or inactive"})
	}
	if _, err := s.applications.GetByCandidateAndJob(ctx, candidateID, jobID); err == nil {
		return nil, apperrors.NewValidationError("you have already applied for this job", nil)
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}
	app := &domain.JobApplication{
		CandidateID: candidateID,
		JobID:       jobID,
		Status:      domain.ApplicationPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewValidationError("you have already applied for this job", nil)
		}
		return nil, err
	}
	return app, nil
}

// CandidateApplications lists the candidate's own applications.
func (s *RecruitmentService) CandidateApplications(ctx context.Context, candidateID string) ([]repository.ApplicationDetail, error) {
	return s.applications.ListByCandidate(ctx, candidateID)
}

// JobApplications lists applications received for a job.
func (s *RecruitmentService) JobApplications(ctx context.Context, jobID string) ([]repository.ApplicationDetail, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, notFoundOr(err, "job")
	}
	return s.applications.ListByJob(ctx, jobID)
}

// UpdateApplicationInput changes status and/or round.
type UpdateApplicationInput struct {
	Status       *string
	CurrentRound *int
}

// UpdateApplicationStatus moves an application through the hiring workflow and
// emails the candidate. Rounds are bounded by the job's total rounds.
func (s *RecruitmentService) UpdateApplicationStatus(ctx context.Context, actor auth.Principal, id string, in UpdateApplicationInput) (*domain.JobApplication, error) {
	if in.Status == nil && in.CurrentRound == nil {
		return nil, apperrors.NewValidationError("status or currentRound is required", nil)
	}
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "application")
	}
	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, notFoundOr(err, "job")
	}

	next := app.Status
	if in.Status != nil {
		next = domain.ApplicationStatus(strings.TrimSpace(*in.Status))
		if !next.Valid() {
			return nil, apperrors.NewValidationError("invalid application status", map[string]any{"status": *in.Status})
		}
	}
	if app.Status.Terminal() {
		return nil, apperrors.NewConflict("application is already closed", map[string]any{"status": string(app.Status)})
	}
	if !domain.CanTransition(app.Status, next) {
		return nil, apperrors.NewValidationError("status transition not allowed",
			map[string]any{"from": string(app.Status), "to": string(next)})
	}

	roundChanged := false
	if in.CurrentRound != nil {
		round := *in.CurrentRound
		if round < 0 || round > job.TotalRounds {
			return nil, apperrors.NewValidationError("current round exceeds total rounds",
				map[string]any{"currentRound": round, "totalRounds": job.TotalRounds})
		}
		roundChanged = round != app.CurrentRound
		app.CurrentRound = round
	}
	app.Status = next
	app.UpdatedAt = s.now().UTC()
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, err
	}

	candidate, err := s.candidates.GetByID(ctx, app.CandidateID)
	if err == nil && s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventApplicationStatusChanged, actorOf(actor),
			events.ApplicationStatusChangedPayload{
				ApplicationID:  app.ID,
				CandidateName:  candidate.FullName,
				CandidateEmail: candidate.Email,
				JobTitle:       job.Title,
				Status:         app.Status,
				CurrentRound:   app.CurrentRound,
				TotalRounds:    job.TotalRounds,
				RoundChanged:   roundChanged,
			}))
	}
	return app, nil
}

// Resume returns the resume of the candidate behind an application.
func (s *RecruitmentService) Resume(ctx context.Context, applicationID string) (*domain.CareerApplicant, *domain.Document, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, notFoundOr(err, "application")
	}
	candidate, err := s.candidates.GetByID(ctx, app.CandidateID)
	if err != nil {
		return nil, nil, notFoundOr(err, "candidate")
	}
	doc, err := s.documents.Get(ctx, candidate.ID, domain.DocumentResume)
	if err != nil {
		return nil, nil, notFoundOr(err, "resume")
	}
	return candidate, doc, nil
}
