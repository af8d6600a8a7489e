package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/domain"
)

type reportSetup struct {
	f        *fixture
	svc      *ReportService
	employee auth.Principal
	campaign *domain.Campaign
	retailer *domain.Retailer
}

func newReportSetup(t *testing.T) reportSetup {
	t.Helper()
	f := newFixture(t)
	emp := f.seedEmployee(t, "rep@example.com", "9000000001", "")
	return reportSetup{
		f:        f,
		svc:      f.reportService(),
		employee: auth.Principal{ID: emp.ID, Role: domain.RoleEmployee},
		campaign: f.seedCampaign(t, "Audit"),
		retailer: f.seedRetailer(t, "shop@example.com", "9000000002"),
	}
}

func (s reportSetup) input() SubmitReportInput {
	date := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return SubmitReportInput{
		CampaignID:       s.campaign.ID,
		RetailerID:       s.retailer.ID,
		ReportType:       "Stock",
		DateOfSubmission: &date,
		Attended:         true,
		Quantity:         ptr(4),
		Images: []FileUpload{
			{FileName: "shelf.png", ContentType: "image/png", Data: []byte("not really a png")},
		},
		BillCopy: &FileUpload{FileName: "bill.jpg", ContentType: "image/jpeg", Data: []byte{0xff}},
	}
}

func TestSubmitReport(t *testing.T) {
	s := newReportSetup(t)
	ctx := context.Background()

	rep, err := s.svc.Submit(ctx, s.employee, s.input())
	require.NoError(t, err)
	assert.Equal(t, s.employee.ID, rep.EmployeeID)
	require.Len(t, rep.Images, 1)
	require.NotNil(t, rep.BillCopy)

	list, err := s.svc.List(ctx, s.employee, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ImageCount)
	assert.True(t, list[0].HasBillCopy)
}

func TestSubmitReportValidation(t *testing.T) {
	s := newReportSetup(t)
	ctx := context.Background()

	in := s.input()
	in.ReportType = ""
	_, err := s.svc.Submit(ctx, s.employee, in)
	requireStatus(t, err, http.StatusBadRequest)

	in = s.input()
	in.Images = make([]FileUpload, 4)
	_, err = s.svc.Submit(ctx, s.employee, in)
	requireStatus(t, err, http.StatusBadRequest)

	in = s.input()
	in.RetailerID = "missing"
	_, err = s.svc.Submit(ctx, s.employee, in)
	requireStatus(t, err, http.StatusNotFound)
	assert.Zero(t, s.f.store.Counts()["reports"])
}

func TestReportVisibility(t *testing.T) {
	s := newReportSetup(t)
	ctx := context.Background()
	rep, err := s.svc.Submit(ctx, s.employee, s.input())
	require.NoError(t, err)

	other := auth.Principal{ID: "other-employee", Role: domain.RoleEmployee}
	_, err = s.svc.Get(ctx, other, rep.ID)
	requireStatus(t, err, http.StatusForbidden)

	list, err := s.svc.List(ctx, other, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	all, err := s.svc.List(ctx, adminActor, s.campaign.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = s.svc.Get(ctx, adminActor, "missing")
	requireStatus(t, err, http.StatusNotFound)
}

func TestRenderReportPDF(t *testing.T) {
	s := newReportSetup(t)
	ctx := context.Background()
	rep, err := s.svc.Submit(ctx, s.employee, s.input())
	require.NoError(t, err)

	out, err := s.svc.RenderPDF(ctx, adminActor, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, "field-rep-report-2024-06-01.pdf", out.FileName)
	assert.True(t, bytes.HasPrefix(out.Content, []byte("%PDF")))
	assert.ElementsMatch(t, []string{"shelf.png", "bill.jpg"}, out.Skipped)
}

func TestRenderReportWithDeletedCampaign(t *testing.T) {
	s := newReportSetup(t)
	ctx := context.Background()
	rep, err := s.svc.Submit(ctx, s.employee, s.input())
	require.NoError(t, err)
	require.NoError(t, s.f.store.Campaigns().Delete(ctx, s.campaign.ID))

	out, err := s.svc.RenderPDF(ctx, s.employee, rep.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Content)
}
