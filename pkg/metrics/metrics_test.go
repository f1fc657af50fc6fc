package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("test-service", prometheus.NewRegistry())

	m.RecordHTTPRequest("GET", "/api/v1/reservations", 200, 15*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/v1/reservations", 200, 5*time.Millisecond)
	m.IncPollCycle(PollResultOK)
	m.IncPollCycle(PollResultFailed)
	m.IncPollCycle(PollResultFailed)
	m.IncPaymentConfirmation("confirmed")
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))
	m.SetActivePollers(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/reservations", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pollCycles.WithLabelValues(PollResultOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.pollCycles.WithLabelValues(PollResultFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentConfirmation.WithLabelValues("confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("exec")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.activePollers))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/api/v1/notifications", 200, time.Millisecond)
		m.ObserveDBQuery("claim", time.Millisecond, nil)
		m.SetDBPoolStats(1, 1, 0)
		m.IncPollCycle(PollResultOK)
		m.SetActivePollers(2)
		m.IncPaymentConfirmation("confirmed")
		m.IncReservationCreated("created")
	})
}
