package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/events"
)

func validRetailerInput() RegisterRetailerInput {
	return RegisterRetailerInput{
		Name:         "Ravi Kumar",
		ContactNo:    "9876543210",
		Email:        "Ravi@Shop.in",
		Password:     "secret",
		ShopName:     "Ravi Stores",
		BusinessType: "Kirana",
		State:        "Maharashtra",
		City:         "Pune",
		PartOfIndia:  "west",
		Documents: map[domain.DocumentKind]FileUpload{
			domain.DocumentOutletPhoto: {FileName: "outlet.jpg", ContentType: "image/jpeg", Data: []byte{1, 2, 3}},
		},
	}
}

func TestRegisterRetailer(t *testing.T) {
	f := newFixture(t)
	svc := f.retailerService(t)
	ctx := context.Background()

	r, err := svc.Register(ctx, validRetailerInput())
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.NotEmpty(t, r.UniqueID)
	assert.NotEmpty(t, r.RetailerCode)
	assert.Equal(t, "ravi@shop.in", r.Email)
	assert.Equal(t, domain.RetailerCreatedBySelf, r.CreatedBy)
	assert.Equal(t, 1, f.tx.Calls)

	_, kinds, err := svc.Profile(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.DocumentKind{domain.DocumentOutletPhoto}, kinds)
}

func TestRegisterRetailerDuplicateWritesNothing(t *testing.T) {
	f := newFixture(t)
	svc := f.retailerService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, validRetailerInput())
	require.NoError(t, err)
	before := f.store.Counts()

	dup := validRetailerInput()
	dup.ContactNo = "1111111111"
	_, err = svc.Register(ctx, dup)
	requireStatus(t, err, http.StatusBadRequest)

	dup = validRetailerInput()
	dup.Email = "other@shop.in"
	_, err = svc.Register(ctx, dup)
	requireStatus(t, err, http.StatusBadRequest)

	assert.Equal(t, before, f.store.Counts())
}

func TestRegisterRetailerValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.retailerService(t)

	in := validRetailerInput()
	in.ShopName = ""
	_, err := svc.Register(context.Background(), in)
	requireStatus(t, err, http.StatusBadRequest)

	in = validRetailerInput()
	in.Documents = map[domain.DocumentKind]FileUpload{domain.DocumentCV: {Data: []byte{1}}}
	_, err = svc.Register(context.Background(), in)
	requireStatus(t, err, http.StatusBadRequest)
	assert.Zero(t, f.store.Counts()["retailers"])
}

func TestRetailerOTP(t *testing.T) {
	f := newFixture(t)
	svc := f.retailerService(t)
	ctx := context.Background()

	var code string
	f.dispatcher.Subscribe(events.EventRetailerOTPRequested, func(_ context.Context, e events.Event) error {
		code = e.Payload.(events.RetailerOTPRequestedPayload).Code
		return nil
	})

	require.NoError(t, svc.SendOTP(ctx, "9876543210"))
	require.Len(t, code, 6)
	require.Len(t, f.enqueuer.SMS, 1)
	assert.Equal(t, "9876543210", f.enqueuer.SMS[0].To)
	assert.Contains(t, f.enqueuer.SMS[0].Body, code)

	requireStatus(t, svc.VerifyOTP(ctx, "9876543210", "000000x"), http.StatusBadRequest)
	require.NoError(t, svc.VerifyOTP(ctx, "9876543210", code))
	requireStatus(t, svc.VerifyOTP(ctx, "9876543210", code), http.StatusBadRequest)
}

func TestRetailerOTPExpires(t *testing.T) {
	f := newFixture(t)
	svc := f.retailerService(t)
	ctx := context.Background()

	var code string
	f.dispatcher.Subscribe(events.EventRetailerOTPRequested, func(_ context.Context, e events.Event) error {
		code = e.Payload.(events.RetailerOTPRequestedPayload).Code
		return nil
	})
	require.NoError(t, svc.SendOTP(ctx, "9876543210"))

	f.otps.Now = func() time.Time { return time.Now().Add(11 * time.Minute) }
	requireStatus(t, svc.VerifyOTP(ctx, "9876543210", code), http.StatusBadRequest)
}

func TestRetailerCampaigns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ret := f.seedRetailer(t, "shop@example.com", "9000000002")
	c := f.seedCampaign(t, "Winter")
	f.seedCampaign(t, "Unrelated")
	_, err := f.assignmentService().Assign(ctx, adminActor, c.ID, nil, []string{ret.ID})
	require.NoError(t, err)

	got, err := f.retailerService(t).Campaigns(ctx, ret.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Winter", got[0].Name)

	_, err = f.retailerService(t).Campaigns(ctx, "missing")
	requireStatus(t, err, http.StatusNotFound)
}
