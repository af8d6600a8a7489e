package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/events"
)

func TestAdminLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.identityService().AddAdmin(ctx, AddAdminInput{Name: "Ops", Email: "ops@example.com", Password: "hunter22"})
	require.NoError(t, err)
	svc := f.authService()

	admin, session, err := svc.AdminLogin(ctx, "OPS@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", admin.Email)
	claims, err := f.tokens.ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	_, _, err = svc.AdminLogin(ctx, "ops@example.com", "wrong")
	requireStatus(t, err, http.StatusUnauthorized)
	_, _, err = svc.AdminLogin(ctx, "nobody@example.com", "x")
	requireStatus(t, err, http.StatusNotFound)
	_, _, err = svc.AdminLogin(ctx, "", "x")
	requireStatus(t, err, http.StatusBadRequest)
}

func TestEmployeeLoginWithPhoneAsPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp, err := f.employeeService().Create(ctx, adminActor, CreateEmployeeInput{
		Name: "Rep", Email: "rep@example.com", ContactNo: "9000000001", EmployeeType: "Permanent",
	})
	require.NoError(t, err)
	assert.True(t, emp.IsFirstLogin)

	svc := f.authService()
	byPhone, _, err := svc.EmployeeLogin(ctx, "", "9000000001", "9000000001")
	require.NoError(t, err)
	assert.Equal(t, emp.ID, byPhone.ID)

	_, _, err = svc.EmployeeLogin(ctx, "rep@example.com", "", "nope")
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestRetailerLoginHidesUnknownAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ret := f.seedRetailer(t, "shop@example.com", "9000000002")
	svc := f.authService()

	got, session, err := svc.RetailerLogin(ctx, "9000000002", "secret")
	require.NoError(t, err)
	assert.Equal(t, ret.ID, got.ID)
	assert.NotEmpty(t, session.Token)

	_, _, err = svc.RetailerLogin(ctx, "unknown@example.com", "secret")
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestClientLogins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.identityService()
	ca, err := ids.AddClientAdmin(ctx, AddClientAdminInput{Name: "Brand", Email: "brand@acme.com", ContactNo: "9111111111", OrganizationName: "Acme"})
	require.NoError(t, err)
	_, err = ids.AddClientUser(ctx, AddClientUserInput{
		Name: "Regional", Email: "north@acme.com", RoleProfile: "Regional", ParentClientAdminID: ca.ID, Password: "pw1234",
	})
	require.NoError(t, err)

	svc := f.authService()
	_, session, err := svc.ClientAdminLogin(ctx, "brand@acme.com", "9111111111")
	require.NoError(t, err)
	claims, err := f.tokens.ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClientAdmin, claims.Role)

	_, session, err = svc.ClientUserLogin(ctx, "north@acme.com", "pw1234")
	require.NoError(t, err)
	claims, err = f.tokens.ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClientUser, claims.Role)
}

func TestAdminPasswordReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.identityService().AddAdmin(ctx, AddAdminInput{Name: "Ops", Email: "ops@example.com", Password: "old-pass"})
	require.NoError(t, err)
	svc := f.authService()

	var code string
	f.dispatcher.Subscribe(events.EventAdminPasswordReset, func(_ context.Context, e events.Event) error {
		code = e.Payload.(events.AdminPasswordResetPayload).Code
		return nil
	})

	require.NoError(t, svc.RequestAdminPasswordReset(ctx, "ops@example.com"))
	require.Len(t, f.enqueuer.Emails, 1)
	assert.Equal(t, "Your OTP for Password Reset", f.enqueuer.Emails[0].Subject)
	assert.Contains(t, f.enqueuer.Emails[0].HTML, code)

	requireStatus(t, svc.ResetAdminPassword(ctx, "ops@example.com", "bad", "new-pass"), http.StatusBadRequest)
	require.NoError(t, svc.ResetAdminPassword(ctx, "ops@example.com", code, "new-pass"))

	_, _, err = svc.AdminLogin(ctx, "ops@example.com", "new-pass")
	require.NoError(t, err)
	requireStatus(t, svc.ResetAdminPassword(ctx, "ops@example.com", code, "again"), http.StatusBadRequest)
	requireStatus(t, svc.RequestAdminPasswordReset(ctx, "ghost@example.com"), http.StatusNotFound)
}

func TestSessionCarriesEmail(t *testing.T) {
	f := newFixture(t)
	session, err := issueSession(f.tokens, "id-1", domain.RoleCandidate, "c@example.com")
	require.NoError(t, err)
	claims, err := f.tokens.ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "c@example.com", claims.Email)
	assert.Equal(t, "id-1", claims.Subject)
	assert.Equal(t, session.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
}
