package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campaign-service/internal/domain"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 10, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRenderReportSkipsUndecodableImages(t *testing.T) {
	lat, lng := 18.52, 73.85
	qty := 12
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	doc := ReportDocument{
		Report: domain.EmployeeReport{
			ID:               "r1",
			ReportType:       "Stock",
			DateOfSubmission: &now,
			Attended:         true,
			Brand:            "Acme",
			Quantity:         &qty,
			Latitude:         &lat,
			Longitude:        &lng,
			Images: []domain.ReportAttachment{
				{FileName: "shelf.png", Data: pngBytes(t)},
				{FileName: "broken.jpg", Data: []byte("not an image")},
			},
			BillCopy: &domain.ReportAttachment{FileName: "bill.png", Data: pngBytes(t)},
		},
		Employee: &domain.Employee{Name: "Ravi Kumar", Email: "ravi@example.com"},
		Campaign: &domain.Campaign{Name: "Diwali Push", Type: domain.CampaignTypeRetail},
		Retailer: &domain.Retailer{Name: "Sharma Stores", UniqueID: "WKMHPUN0001"},
	}

	res, err := RenderReport(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(res.Bytes, []byte("%PDF")))
	assert.Equal(t, 2, res.ImagePages)
	assert.Equal(t, []string{"broken.jpg"}, res.Skipped)
	assert.GreaterOrEqual(t, res.Pages, 3)
}

func TestRenderReportWithoutReferences(t *testing.T) {
	res, err := RenderReport(ReportDocument{Report: domain.EmployeeReport{ID: "r2"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pages)
	assert.Empty(t, res.Skipped)
}

func TestFitInto(t *testing.T) {
	w, h := fitInto(400, 200, 180, 250)
	assert.InDelta(t, 180, w, 0.001)
	assert.InDelta(t, 90, h, 0.001)

	w, h = fitInto(100, 1000, 180, 250)
	assert.InDelta(t, 25, w, 0.001)
	assert.InDelta(t, 250, h, 0.001)
}
