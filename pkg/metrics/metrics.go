package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты цикла опроса уведомлений
const (
	PollResultOK        = "ok"
	PollResultFailed    = "failed"
	PollResultDiscarded = "discarded"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	dbQueryDuration     *prometheus.HistogramVec
	dbQueryErrors       *prometheus.CounterVec
	dbOpenConnections   prometheus.Gauge
	dbInUseConnections  prometheus.Gauge
	dbIdleConnections   prometheus.Gauge
	pollCycles          *prometheus.CounterVec
	activePollers       prometheus.Gauge
	paymentConfirmation *prometheus.CounterVec
	reservationsCreated *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database queries finished with an error.",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool.",
			ConstLabels: labels,
		}),
		dbInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use.",
			ConstLabels: labels,
		}),
		dbIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool.",
			ConstLabels: labels,
		}),
		pollCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notification_poll_cycles_total",
			Help:        "Notification poll cycles by result.",
			ConstLabels: labels,
		}, []string{"result"}),
		activePollers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "notification_active_pollers",
			Help:        "Sessions with a running notification poller.",
			ConstLabels: labels,
		}),
		paymentConfirmation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_confirmations_total",
			Help:        "Payment confirmation bridge invocations by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		reservationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Reservation submissions by result.",
			ConstLabels: labels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbOpenConnections,
		m.dbInUseConnections,
		m.dbIdleConnections,
		m.pollCycles,
		m.activePollers,
		m.paymentConfirmation,
		m.reservationsCreated,
	)

	return m
}

// RecordHTTPRequest фиксирует обработанный HTTP запрос.
// Все методы безопасны для nil: при выключенных метриках вызовы ничего не делают.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет состояние пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbOpenConnections.Set(float64(open))
	m.dbInUseConnections.Set(float64(inUse))
	m.dbIdleConnections.Set(float64(idle))
}

// IncPollCycle фиксирует завершенный цикл опроса уведомлений
func (m *Metrics) IncPollCycle(result string) {
	if m == nil {
		return
	}
	m.pollCycles.WithLabelValues(result).Inc()
}

// SetActivePollers обновляет число активных опросчиков
func (m *Metrics) SetActivePollers(n int) {
	if m == nil {
		return
	}
	m.activePollers.Set(float64(n))
}

// IncPaymentConfirmation фиксирует результат подтверждения оплаты
func (m *Metrics) IncPaymentConfirmation(outcome string) {
	if m == nil {
		return
	}
	m.paymentConfirmation.WithLabelValues(outcome).Inc()
}

// IncReservationCreated фиксирует результат создания бронирования
func (m *Metrics) IncReservationCreated(result string) {
	if m == nil {
		return
	}
	m.reservationsCreated.WithLabelValues(result).Inc()
}
