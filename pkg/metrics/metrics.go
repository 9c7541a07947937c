package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	ReservationAdmissions *prometheus.CounterVec
	ReservationCancels    *prometheus.CounterVec
	RefundAmountTotal     prometheus.Counter
	RuleUpdatesTotal      *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		ReservationAdmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_admissions_total",
			Help:        "Reservation admission attempts by machine and outcome",
			ConstLabels: constLabels,
		}, []string{"machine", "outcome"}),
		ReservationCancels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_cancellations_total",
			Help:        "Reservation cancellations by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		RefundAmountTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reservation_refund_amount_total",
			Help:        "Sum of refunds paid out on cancellation",
			ConstLabels: constLabels,
		}),
		RuleUpdatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "business_rule_updates_total",
			Help:        "Business rule updates by rule name",
			ConstLabels: constLabels,
		}, []string{"rule"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.ReservationAdmissions,
		m.ReservationCancels,
		m.RefundAmountTotal,
		m.RuleUpdatesTotal,
	)

	return m
}

// Методы ниже безопасно вызывать на nil *Metrics (метрики выключены)

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// ObserveAdmission считает попытку бронирования (outcome: admitted, rejected_*, error)
func (m *Metrics) ObserveAdmission(machine, outcome string) {
	if m == nil {
		return
	}
	m.ReservationAdmissions.WithLabelValues(machine, outcome).Inc()
}

// ObserveCancellation считает отмену и сумму возврата
func (m *Metrics) ObserveCancellation(outcome string, refund float64) {
	if m == nil {
		return
	}
	m.ReservationCancels.WithLabelValues(outcome).Inc()
	if refund > 0 {
		m.RefundAmountTotal.Add(refund)
	}
}

// ObserveRuleUpdate считает изменение бизнес-правила
func (m *Metrics) ObserveRuleUpdate(rule string) {
	if m == nil {
		return
	}
	m.RuleUpdatesTotal.WithLabelValues(rule).Inc()
}

// ObservePool обновляет метрики пула соединений
func (m *Metrics) ObservePool(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBOpenConnections.Set(float64(stats.OpenConnections))
	m.DBInUseConnections.Set(float64(stats.InUse))
	m.DBIdleConnections.Set(float64(stats.Idle))
	m.DBWaitCount.Set(float64(stats.WaitCount))
}
