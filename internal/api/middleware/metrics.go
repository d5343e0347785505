package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bookflow/bookflow-api/pkg/metrics"
)

// Metrics middleware собирает HTTP-метрики по шаблону маршрута,
// а не по фактическому URL, чтобы не раздувать кардинальность.
type Metrics struct {
	metrics *metrics.Metrics
}

// NewMetrics создает middleware сбора HTTP-метрик
func NewMetrics(m *metrics.Metrics) *Metrics {
	return &Metrics{metrics: m}
}

// Middleware записывает счетчик и длительность каждого запроса
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		path := routeTemplate(r)
		m.metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(recorder.status)).Inc()
		m.metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())

		// Бизнес-счетчики создания бронирований снимаются с результата запроса
		if r.Method == http.MethodPost && path == "/api/v1/bookings" {
			switch recorder.status {
			case http.StatusCreated:
				m.metrics.BookingsCreatedTotal.Inc()
			case http.StatusConflict:
				m.metrics.BookingConflictsTotal.Inc()
			}
		}
	})
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return r.URL.Path
	}
	if tpl, err := route.GetPathTemplate(); err == nil {
		return tpl
	}
	return r.URL.Path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
