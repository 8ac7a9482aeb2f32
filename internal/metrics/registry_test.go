package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	r := NewRegistry()

	r.RecordSimulationStarted()
	r.RecordSimulationStarted()
	r.RecordSimulationStopped()
	r.RecordTick(time.Millisecond)
	r.RecordDraw("drawn")
	r.RecordDraw("empty")
	r.RecordDraw("drawn")
	r.RecordCache("hit")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.SimulationsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SimulationsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.TicksTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.DrawsTotal.WithLabelValues("drawn")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CacheResults.WithLabelValues("hit")))
}

func TestNilRegistryIsSafe(t *testing.T) {
	var r *Registry
	r.RecordSimulationStarted()
	r.RecordTick(time.Second)
	r.RecordFetch("graph", "ok", time.Second)
	r.RecordSessionEvent("wheel")
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordSessionOpened()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "assetmap_sessions_active 1"))
}
