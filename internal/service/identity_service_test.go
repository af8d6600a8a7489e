package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAdminRejectsEmailUsedElsewhere(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.identityService()
	f.seedRetailer(t, "shop@example.com", "9000000002")

	_, err := svc.AddAdmin(ctx, AddAdminInput{Name: "X", Email: "Shop@example.com", Password: "pw"})
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.AddAdmin(ctx, AddAdminInput{Name: "X", Email: "x@example.com"})
	requireStatus(t, err, http.StatusBadRequest)
	assert.Zero(t, f.store.Counts()["admins"])
}

func TestAddClientAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.identityService()

	ca, err := svc.AddClientAdmin(ctx, AddClientAdminInput{Name: "Brand", Email: "brand@acme.com", ContactNo: "9111111111", OrganizationName: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "brand@acme.com", ca.RegistrationUsername)

	_, err = svc.AddClientAdmin(ctx, AddClientAdminInput{Name: "Brand", Email: "BRAND@acme.com", ContactNo: "1", OrganizationName: "Acme"})
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.AddClientUser(ctx, AddClientUserInput{Name: "U", Email: "u@acme.com", ParentClientAdminID: "missing", Password: "pw"})
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.AddClientUser(ctx, AddClientUserInput{Name: "U", Email: "u@acme.com", RoleProfile: "Global", ParentClientAdminID: ca.ID, Password: "pw"})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.AddClientUser(ctx, AddClientUserInput{Name: "U", Email: "u@acme.com", RoleProfile: "State", ParentClientAdminID: ca.ID, Password: "pw"})
	require.NoError(t, err)
	_, err = svc.AddClientUser(ctx, AddClientUserInput{Name: "U", Email: "u@acme.com", ParentClientAdminID: ca.ID, Password: "pw"})
	requireStatus(t, err, http.StatusConflict)
}
