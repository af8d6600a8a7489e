package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campaign-service/internal/domain"
)

type recruitmentSetup struct {
	f         *fixture
	svc       *RecruitmentService
	job       *domain.Job
	candidate *domain.CareerApplicant
	app       *domain.JobApplication
}

func newRecruitmentSetup(t *testing.T, rounds int) recruitmentSetup {
	t.Helper()
	f := newFixture(t)
	svc := f.recruitmentService()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, adminActor, JobInput{
		Title: ptr("Field Executive"), Description: ptr("Visit outlets"), Location: ptr("Pune"), TotalRounds: ptr(rounds),
	})
	require.NoError(t, err)
	candidate, err := svc.RegisterCandidate(ctx, RegisterCandidateInput{
		FullName: "Asha Rao", Phone: "9000000003", Email: "Asha@Example.com", Password: "secret1",
		Resume: &FileUpload{FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	})
	require.NoError(t, err)
	app, err := svc.Apply(ctx, candidate.ID, job.ID)
	require.NoError(t, err)
	return recruitmentSetup{f: f, svc: svc, job: job, candidate: candidate, app: app}
}

func TestCreateJobDefaults(t *testing.T) {
	f := newFixture(t)
	svc := f.recruitmentService()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, adminActor, JobInput{Title: ptr("Promoter"), Description: ptr("d"), Location: ptr("Goa")})
	require.NoError(t, err)
	assert.Equal(t, 1, job.TotalRounds)
	assert.True(t, job.IsActive)

	_, err = svc.CreateJob(ctx, adminActor, JobInput{Title: ptr("Promoter")})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.CreateJob(ctx, adminActor, JobInput{Title: ptr("x"), Description: ptr("d"), Location: ptr("l"), TotalRounds: ptr(0)})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestApply(t *testing.T) {
	s := newRecruitmentSetup(t, 2)
	ctx := context.Background()
	assert.Equal(t, domain.ApplicationPending, s.app.Status)
	assert.Equal(t, "asha@example.com", s.candidate.Email)

	_, err := s.svc.Apply(ctx, s.candidate.ID, s.job.ID)
	requireStatus(t, err, http.StatusBadRequest)

	_, err = s.svc.UpdateJob(ctx, s.job.ID, JobInput{IsActive: ptr(false)})
	require.NoError(t, err)
	other, err := s.svc.RegisterCandidate(ctx, RegisterCandidateInput{FullName: "B", Phone: "1", Email: "b@example.com", Password: "p"})
	require.NoError(t, err)
	_, err = s.svc.Apply(ctx, other.ID, s.job.ID)
	requireStatus(t, err, http.StatusNotFound)

	active, err := s.svc.ListJobs(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	mine, err := s.svc.CandidateApplications(ctx, s.candidate.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Field Executive", mine[0].JobTitle)
}

func TestRegisterCandidateDuplicate(t *testing.T) {
	s := newRecruitmentSetup(t, 1)
	_, err := s.svc.RegisterCandidate(context.Background(), RegisterCandidateInput{
		FullName: "Again", Phone: "2", Email: "asha@example.com", Password: "x",
	})
	requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, 1, s.f.store.Counts()["candidates"])
}

func TestUpdateApplicationStatus(t *testing.T) {
	t.Run("requires a change", func(t *testing.T) {
		s := newRecruitmentSetup(t, 3)
		_, err := s.svc.UpdateApplicationStatus(context.Background(), adminActor, s.app.ID, UpdateApplicationInput{})
		requireStatus(t, err, http.StatusBadRequest)
	})
	t.Run("unknown status", func(t *testing.T) {
		s := newRecruitmentSetup(t, 3)
		_, err := s.svc.UpdateApplicationStatus(context.Background(), adminActor, s.app.ID, UpdateApplicationInput{Status: ptr("Hired")})
		requireStatus(t, err, http.StatusBadRequest)
	})
	t.Run("round above total", func(t *testing.T) {
		s := newRecruitmentSetup(t, 3)
		_, err := s.svc.UpdateApplicationStatus(context.Background(), adminActor, s.app.ID, UpdateApplicationInput{CurrentRound: ptr(4)})
		requireStatus(t, err, http.StatusBadRequest)
		stored, err := s.f.store.Applications().GetByID(context.Background(), s.app.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, stored.CurrentRound)
	})
	t.Run("backwards move", func(t *testing.T) {
		s := newRecruitmentSetup(t, 3)
		ctx := context.Background()
		_, err := s.svc.UpdateApplicationStatus(ctx, adminActor, s.app.ID, UpdateApplicationInput{Status: ptr("Shortlisted")})
		require.NoError(t, err)
		_, err = s.svc.UpdateApplicationStatus(ctx, adminActor, s.app.ID, UpdateApplicationInput{Status: ptr("Under Review")})
		requireStatus(t, err, http.StatusBadRequest)
	})
	t.Run("terminal", func(t *testing.T) {
		s := newRecruitmentSetup(t, 3)
		ctx := context.Background()
		_, err := s.svc.UpdateApplicationStatus(ctx, adminActor, s.app.ID, UpdateApplicationInput{Status: ptr("Selected")})
		require.NoError(t, err)
		_, err = s.svc.UpdateApplicationStatus(ctx, adminActor, s.app.ID, UpdateApplicationInput{Status: ptr("Rejected")})
		requireStatus(t, err, http.StatusConflict)
	})
	t.Run("emails the candidate", func(t *testing.T) {
		s := newRecruitmentSetup(t, 3)
		got, err := s.svc.UpdateApplicationStatus(context.Background(), adminActor, s.app.ID, UpdateApplicationInput{
			Status: ptr("Under Review"), CurrentRound: ptr(2),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationUnderReview, got.Status)
		assert.Equal(t, 2, got.CurrentRound)

		require.Len(t, s.f.enqueuer.Emails, 1)
		email := s.f.enqueuer.Emails[0]
		assert.Equal(t, "asha@example.com", email.To)
		assert.Equal(t, "Application Update for Field Executive", email.Subject)
		assert.Contains(t, email.HTML, "Under Review")
	})
	t.Run("queue failure does not fail the update", func(t *testing.T) {
		s := newRecruitmentSetup(t, 3)
		s.f.enqueuer.Err = errors.New("redis down")
		got, err := s.svc.UpdateApplicationStatus(context.Background(), adminActor, s.app.ID, UpdateApplicationInput{Status: ptr("Rejected")})
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationRejected, got.Status)
	})
}

func TestResume(t *testing.T) {
	s := newRecruitmentSetup(t, 1)
	candidate, doc, err := s.svc.Resume(context.Background(), s.app.ID)
	require.NoError(t, err)
	assert.Equal(t, s.candidate.ID, candidate.ID)
	assert.Equal(t, "cv.pdf", doc.FileName)

	_, _, err = s.svc.Resume(context.Background(), "missing")
	requireStatus(t, err, http.StatusNotFound)
}
