package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.ObserveAdmission("scanner", "admitted")
	m.ObserveAdmission("scanner", "admitted")
	m.ObserveAdmission("harvester", "rejected_capacity")
	m.ObserveCancellation("cancelled", 375)
	m.ObserveCancellation("not_found", 0)
	m.ObserveRuleUpdate("week_refund")
	m.ObserveDBQuery("query", errors.New("boom"), time.Millisecond)
	m.ObservePool(sql.DBStats{OpenConnections: 3, InUse: 1, Idle: 2})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationAdmissions.WithLabelValues("scanner", "admitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationAdmissions.WithLabelValues("harvester", "rejected_capacity")))
	assert.Equal(t, 375.0, testutil.ToFloat64(m.RefundAmountTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationCancels.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RuleUpdatesTotal.WithLabelValues("week_refund")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DBOpenConnections))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DBIdleConnections))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAdmission("scanner", "admitted")
		m.ObserveCancellation("cancelled", 10)
		m.ObserveHTTPRequest("GET", "/x", "200", time.Second)
		m.ObservePool(sql.DBStats{})
	})
}
