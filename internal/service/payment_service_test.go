package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/domain"
)

type paymentSetup struct {
	f        *fixture
	svc      *PaymentService
	campaign *domain.Campaign
	retailer *domain.Retailer
}

func newPaymentSetup(t *testing.T, accept bool) paymentSetup {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()
	campaign := f.seedCampaign(t, "Festive")
	ret := f.seedRetailer(t, "shop@example.com", "9000000002")
	assign := f.assignmentService()
	_, err := assign.Assign(ctx, adminActor, campaign.ID, nil, []string{ret.ID})
	require.NoError(t, err)
	if accept {
		_, err = assign.UpdateStatus(ctx, auth.Principal{ID: ret.ID, Role: domain.RoleRetailer}, campaign.ID, "accepted")
		require.NoError(t, err)
	}
	return paymentSetup{f: f, svc: f.paymentService(), campaign: campaign, retailer: ret}
}

var clientActor = auth.Principal{ID: "client-1", Role: domain.RoleClientAdmin}

func TestPaymentLedger(t *testing.T) {
	s := newPaymentSetup(t, true)
	ctx := context.Background()

	plan, err := s.svc.SetPlan(ctx, clientActor, SetPlanInput{CampaignID: s.campaign.ID, RetailerID: s.retailer.ID, TotalAmount: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, plan.Status)
	assert.Equal(t, 1000.0, plan.RemainingAmount)

	first, err := s.svc.RecordPayment(ctx, adminActor, RecordPaymentInput{
		CampaignID: s.campaign.ID, RetailerID: s.retailer.ID, AmountPaid: ptr(500.0), UTRNumber: "UTR-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPartiallyPaid, first.Status)
	assert.Equal(t, 500.0, first.RemainingAmount)

	second, err := s.svc.RecordPayment(ctx, adminActor, RecordPaymentInput{
		CampaignID: s.campaign.ID, RetailerID: s.retailer.ID, AmountPaid: ptr(500.0), UTRNumber: "UTR-2",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, second.Status)
	assert.Equal(t, 0.0, second.RemainingAmount)

	stored, err := s.f.store.Payments().Get(ctx, s.campaign.ID, s.retailer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, stored.AmountPaid)
	assert.Equal(t, stored.TotalAmount-stored.AmountPaid, stored.RemainingAmount)
	require.Len(t, stored.UTRs, 2)
	assert.Equal(t, "UTR-2", stored.UTRs[1].UTRNumber)
	assert.Equal(t, adminActor.ID, stored.UTRs[1].UpdatedBy)
}

func TestRecordPaymentWithoutUTRAddsNoEntry(t *testing.T) {
	s := newPaymentSetup(t, true)
	ctx := context.Background()
	_, err := s.svc.SetPlan(ctx, clientActor, SetPlanInput{CampaignID: s.campaign.ID, RetailerID: s.retailer.ID, TotalAmount: 200})
	require.NoError(t, err)

	got, err := s.svc.RecordPayment(ctx, adminActor, RecordPaymentInput{CampaignID: s.campaign.ID, RetailerID: s.retailer.ID, AmountPaid: ptr(50.0)})
	require.NoError(t, err)
	assert.Empty(t, got.UTRs)
	assert.Equal(t, 150.0, got.RemainingAmount)
}

func TestRecordPaymentRequiresAcceptance(t *testing.T) {
	s := newPaymentSetup(t, false)
	ctx := context.Background()
	before, err := s.f.store.Payments().Get(ctx, s.campaign.ID, s.retailer.ID)
	require.NoError(t, err)

	_, err = s.svc.RecordPayment(ctx, adminActor, RecordPaymentInput{
		CampaignID: s.campaign.ID, RetailerID: s.retailer.ID, AmountPaid: ptr(100.0), UTRNumber: "UTR-X",
	})
	requireStatus(t, err, http.StatusBadRequest)

	after, err := s.f.store.Payments().Get(ctx, s.campaign.ID, s.retailer.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRecordPaymentValidation(t *testing.T) {
	s := newPaymentSetup(t, true)
	ctx := context.Background()

	_, err := s.svc.RecordPayment(ctx, adminActor, RecordPaymentInput{CampaignID: s.campaign.ID, RetailerID: s.retailer.ID, AmountPaid: ptr(-1.0)})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = s.svc.RecordPayment(ctx, adminActor, RecordPaymentInput{CampaignID: "nope", RetailerID: s.retailer.ID})
	requireStatus(t, err, http.StatusNotFound)
}

func TestSetPlan(t *testing.T) {
	t.Run("rejects non-positive total", func(t *testing.T) {
		s := newPaymentSetup(t, true)
		_, err := s.svc.SetPlan(context.Background(), clientActor, SetPlanInput{CampaignID: s.campaign.ID, RetailerID: s.retailer.ID})
		requireStatus(t, err, http.StatusBadRequest)
	})
	t.Run("requires acceptance", func(t *testing.T) {
		s := newPaymentSetup(t, false)
		_, err := s.svc.SetPlan(context.Background(), clientActor, SetPlanInput{CampaignID: s.campaign.ID, RetailerID: s.retailer.ID, TotalAmount: 10})
		requireStatus(t, err, http.StatusBadRequest)
	})
	t.Run("never overwrites a plan", func(t *testing.T) {
		s := newPaymentSetup(t, true)
		ctx := context.Background()
		_, err := s.svc.SetPlan(ctx, clientActor, SetPlanInput{CampaignID: s.campaign.ID, RetailerID: s.retailer.ID, TotalAmount: 300, Notes: "first"})
		require.NoError(t, err)
		_, err = s.svc.SetPlan(ctx, clientActor, SetPlanInput{CampaignID: s.campaign.ID, RetailerID: s.retailer.ID, TotalAmount: 900})
		requireStatus(t, err, http.StatusConflict)

		stored, err := s.f.store.Payments().Get(ctx, s.campaign.ID, s.retailer.ID)
		require.NoError(t, err)
		assert.Equal(t, 300.0, stored.TotalAmount)
		assert.Equal(t, "first", stored.Notes)
		assert.Equal(t, 1, s.f.store.Counts()["payments"])
	})
	t.Run("accepts a plan after an earlier payout", func(t *testing.T) {
		s := newPaymentSetup(t, true)
		ctx := context.Background()
		paid, err := s.svc.RecordPayment(ctx, adminActor, RecordPaymentInput{
			CampaignID: s.campaign.ID, RetailerID: s.retailer.ID, AmountPaid: ptr(500.0), UTRNumber: "U1",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentCompleted, paid.Status)
		assert.Equal(t, -500.0, paid.RemainingAmount)

		plan, err := s.svc.SetPlan(ctx, clientActor, SetPlanInput{CampaignID: s.campaign.ID, RetailerID: s.retailer.ID, TotalAmount: 1000})
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentPartiallyPaid, plan.Status)
		assert.Equal(t, 500.0, plan.RemainingAmount)

		stored, err := s.f.store.Payments().Get(ctx, s.campaign.ID, s.retailer.ID)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, stored.TotalAmount)
		assert.Equal(t, 500.0, stored.AmountPaid)
		require.Len(t, stored.UTRs, 1)
		assert.Equal(t, 1, s.f.store.Counts()["payments"])
	})
}

func TestListPaymentsByCampaign(t *testing.T) {
	s := newPaymentSetup(t, true)
	got, err := s.svc.ListByCampaign(context.Background(), s.campaign.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, s.retailer.ID, got[0].RetailerID)

	_, err = s.svc.ListByCampaign(context.Background(), "missing")
	requireStatus(t, err, http.StatusNotFound)
}
