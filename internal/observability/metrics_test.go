package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/admin/login", "POST", 200, 10*time.Millisecond)
	m.RecordRequest("/api/admin/login", "POST", 200, 30*time.Millisecond)
	m.RecordError("/api/admin/login", "POST", "UNAUTHORIZED")
	m.RecordTask("email:send", true)
	m.RecordTask("email:send", false)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/api/admin/login|POST|200"])
	assert.Equal(t, int64(1), snap.Errors["/api/admin/login|POST|UNAUTHORIZED"])
	assert.Equal(t, int64(1), snap.Tasks["email:send|ok"])
	assert.Equal(t, int64(1), snap.Tasks["email:send|failed"])
	assert.InDelta(t, 20.0, snap.AverageLatencyMS, 0.001)

	// snapshot is a copy
	snap.Requests["/api/admin/login|POST|200"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Requests["/api/admin/login|POST|200"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordTask("t", true)
	assert.Empty(t, m.Snapshot().Requests)
}
