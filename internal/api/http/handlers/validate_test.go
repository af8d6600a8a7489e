package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campaign-service/internal/api/dto"
	"github.com/spec-kit/campaign-service/internal/domain"
	"github.com/spec-kit/campaign-service/internal/service"
	apperrors "github.com/spec-kit/campaign-service/pkg/util/errorutil"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("dob", "1990-04-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), *got)

	got, err = parseDate("dob", "2024-06-01T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	got, err = parseDate("dob", "  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseDate("dob", "12/04/1990")
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeValidation, de.Code)
	assert.Equal(t, "12/04/1990", de.Details["dob"])
}

func TestSubmitInputParsesOptionalFields(t *testing.T) {
	in, err := submitInput(dto.SubmitReportRequest{
		CampaignID: "c1", RetailerID: "r1", ReportType: "Stock",
		Quantity: "7", Latitude: "28.61", IsAttended: "no",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, *in.Quantity)
	assert.InDelta(t, 28.61, *in.Latitude, 1e-9)
	assert.Nil(t, in.Longitude)
	assert.False(t, in.Attended)

	in, err = submitInput(dto.SubmitReportRequest{CampaignID: "c1"})
	require.NoError(t, err)
	assert.True(t, in.Attended)

	_, err = submitInput(dto.SubmitReportRequest{Quantity: "a dozen"})
	require.Error(t, err)
}

func TestDocumentUploadsKeepsFirstFile(t *testing.T) {
	docs := documentUploads(map[string][]service.FileUpload{
		"panCard": {{FileName: "a.jpg"}, {FileName: "b.jpg"}},
		"cv":      {},
	})
	require.Len(t, docs, 1)
	assert.Equal(t, "a.jpg", docs[domain.DocumentPANCard].FileName)
	assert.Nil(t, documentUploads(nil))
}

func TestValidateStructReportsFieldNames(t *testing.T) {
	err := validateStruct(&dto.PaymentPlanRequest{CampaignID: "c1", TotalAmount: -5})
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, "required", de.Details["retailerId"])
	assert.Equal(t, "gt", de.Details["totalAmount"])
}
