package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campaign-service/internal/auth"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/events"
)

func TestAssignIsIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := f.assignmentService()
	ctx := context.Background()
	campaign := f.seedCampaign(t, "Diwali Push")
	emp := f.seedEmployee(t, "rep@example.com", "9000000001", domain.EmployeeTypePermanent)
	ret := f.seedRetailer(t, "shop@example.com", "9000000002")

	var assigned []events.CampaignAssignedPayload
	f.dispatcher.Subscribe(events.EventCampaignAssigned, func(_ context.Context, e events.Event) error {
		assigned = append(assigned, e.Payload.(events.CampaignAssignedPayload))
		return nil
	})

	got, err := svc.Assign(ctx, adminActor, campaign.ID, []string{emp.ID, emp.ID}, []string{ret.ID})
	require.NoError(t, err)
	require.Len(t, got.AssignedEmployees, 1)
	require.Len(t, got.AssignedRetailers, 1)
	assert.Equal(t, domain.AssignmentPending, got.AssignedEmployees[0].Status)
	assert.Equal(t, domain.AssignmentPending, got.AssignedRetailers[0].Status)

	payment, err := f.store.Payments().Get(ctx, campaign.ID, ret.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, payment.Status)
	assert.False(t, payment.HasPlan())

	again, err := svc.Assign(ctx, adminActor, campaign.ID, []string{emp.ID}, []string{ret.ID})
	require.NoError(t, err)
	assert.Len(t, again.AssignedEmployees, 1)
	assert.Len(t, again.AssignedRetailers, 1)
	assert.Equal(t, 1, f.store.Counts()["payments"])
	require.Len(t, assigned, 1)
	assert.Equal(t, []string{emp.ID}, assigned[0].EmployeeIDs)
}

func TestAssignKeepsExistingDecision(t *testing.T) {
	f := newFixture(t)
	svc := f.assignmentService()
	ctx := context.Background()
	campaign := f.seedCampaign(t, "Summer")
	ret := f.seedRetailer(t, "shop@example.com", "9000000002")

	_, err := svc.Assign(ctx, adminActor, campaign.ID, nil, []string{ret.ID})
	require.NoError(t, err)
	retailer := auth.Principal{ID: ret.ID, Role: domain.RoleRetailer}
	_, err = svc.UpdateStatus(ctx, retailer, campaign.ID, "accepted")
	require.NoError(t, err)

	got, err := svc.Assign(ctx, adminActor, campaign.ID, nil, []string{ret.ID})
	require.NoError(t, err)
	status, ok := got.RetailerStatus(ret.ID)
	require.True(t, ok)
	assert.Equal(t, domain.AssignmentAccepted, status)
}

func TestAssignNormalizesLegacyStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	campaign := f.seedCampaign(t, "Legacy")
	emp := f.seedEmployee(t, "rep@example.com", "9000000001", "")
	f.store.SeedLegacyEmployeeAssignment(campaign.ID, emp.ID)

	got, err := f.assignmentService().Assign(ctx, adminActor, campaign.ID, []string{emp.ID}, nil)
	require.NoError(t, err)
	require.Len(t, got.AssignedEmployees, 1)
	assert.Equal(t, domain.AssignmentPending, got.AssignedEmployees[0].Status)
}

func TestAssignUnknownCampaign(t *testing.T) {
	f := newFixture(t)
	_, err := f.assignmentService().Assign(context.Background(), adminActor, "missing", nil, nil)
	requireStatus(t, err, http.StatusNotFound)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	svc := f.assignmentService()
	ctx := context.Background()
	campaign := f.seedCampaign(t, "Monsoon")
	emp := f.seedEmployee(t, "rep@example.com", "9000000001", "")
	_, err := svc.Assign(ctx, adminActor, campaign.ID, []string{emp.ID}, nil)
	require.NoError(t, err)
	employee := auth.Principal{ID: emp.ID, Role: domain.RoleEmployee}

	t.Run("invalid value", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, employee, campaign.ID, "maybe")
		requireStatus(t, err, http.StatusBadRequest)
	})
	t.Run("pending is not a decision", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, employee, campaign.ID, "pending")
		requireStatus(t, err, http.StatusBadRequest)
	})
	t.Run("not assigned", func(t *testing.T) {
		other := auth.Principal{ID: "someone-else", Role: domain.RoleEmployee}
		_, err := svc.UpdateStatus(ctx, other, campaign.ID, "accepted")
		requireStatus(t, err, http.StatusNotFound)
	})
	t.Run("wrong role", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, adminActor, campaign.ID, "accepted")
		requireStatus(t, err, http.StatusForbidden)
	})
	t.Run("reject", func(t *testing.T) {
		status, err := svc.UpdateStatus(ctx, employee, campaign.ID, "rejected")
		require.NoError(t, err)
		assert.Equal(t, domain.AssignmentRejected, status)
		got, err := f.store.Campaigns().GetByID(ctx, campaign.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AssignmentRejected, got.AssignedEmployees[0].Status)
	})
}
