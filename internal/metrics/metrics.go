// Package metrics - счётчики записи и обращений к календарю для Prometheus
package metrics

import (
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	registry *prometheus.Registry

	reservations     *prometheus.CounterVec
	calendarErrors   *prometheus.CounterVec
	calendarDuration *prometheus.HistogramVec
	submissions      prometheus.Counter
	reviews          prometheus.Counter
	droppedUpdates   prometheus.Counter
}

// New регистрирует метрики в собственном реестре
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_reservations_total",
			Help: "Reservation attempts by result.",
		}, []string{"result"}),
		calendarErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_calendar_errors_total",
			Help: "Calendar requests that failed after retries.",
		}, []string{"op"}),
		calendarDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "booking_calendar_request_seconds",
			Help:    "Calendar request duration including retries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booking_submissions_total",
			Help: "Completed booking submissions.",
		}),
		reviews: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booking_reviews_total",
			Help: "Saved reviews.",
		}),
		droppedUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "booking_dropped_updates_total",
			Help: "Telegram updates dropped by the flood limiter.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.reservations,
		m.calendarErrors,
		m.calendarDuration,
		m.submissions,
		m.reviews,
		m.droppedUpdates,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// CalendarRequest учитывает одно обращение к календарю
func (m *Metrics) CalendarRequest(op string, elapsed time.Duration, err error) {
	m.calendarDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		m.calendarErrors.WithLabelValues(op).Inc()
	}
}

func (m *Metrics) Reservation(status model.ReservationStatus) {
	m.reservations.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) Submission() {
	m.submissions.Inc()
}

func (m *Metrics) Review() {
	m.reviews.Inc()
}

func (m *Metrics) DroppedUpdate() {
	m.droppedUpdates.Inc()
}
