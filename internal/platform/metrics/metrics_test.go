package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsAndExposes(t *testing.T) {
	m := New("clinic")
	m.RegistrationWrite("create", "ok")
	m.RegistrationWrite("create", "ok")
	m.RegistrationWrite("create", "duplicate")
	m.RealtimeNotification("UPDATE", "dropped")

	require.Equal(t, 2.0, testutil.ToFloat64(m.registrationWrites.WithLabelValues("create", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.realtimeNotification.WithLabelValues("UPDATE", "dropped")))

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `clinic_registration_writes_total{op="create",result="duplicate"} 1`)
}
