package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa los contadores e histogramas Prometheus de la aplicación.
// Se crean una sola vez en el arranque con el prefijo configurado.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	StockOperationsTotal    *prometheus.CounterVec
	InsufficientStockTotal  *prometheus.CounterVec
	ActiveReservationsTotal *prometheus.CounterVec
	AuditEventsDroppedTotal prometheus.Counter
}

// New registra las métricas en el registry por defecto.
func New(prefix string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total de peticiones HTTP",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duración de peticiones HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		StockOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_stock_operations_total",
				Help: "Total de operaciones de stock confirmadas, por tipo",
			},
			[]string{"operation"}, // adjust, movement, reserve, release, fulfil
		),
		InsufficientStockTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_insufficient_stock_total",
				Help: "Operaciones rechazadas por stock insuficiente, por tipo",
			},
			[]string{"operation"},
		),
		ActiveReservationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_reservations_total",
				Help: "Reservas creadas/liberadas/cumplidas",
			},
			[]string{"event"}, // created, released, fulfilled
		),
		AuditEventsDroppedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_audit_events_dropped_total",
				Help: "Eventos de auditoría descartados por buffer lleno",
			},
		),
	}
}

// RecordStockOperation incrementa el contador de operaciones de stock confirmadas.
func (m *Metrics) RecordStockOperation(operation string) {
	if m == nil {
		return
	}
	m.StockOperationsTotal.WithLabelValues(operation).Inc()
}

// RecordInsufficientStock incrementa el contador de rechazos por stock insuficiente.
func (m *Metrics) RecordInsufficientStock(operation string) {
	if m == nil {
		return
	}
	m.InsufficientStockTotal.WithLabelValues(operation).Inc()
}

// RecordReservationEvent incrementa el contador de eventos de reserva.
func (m *Metrics) RecordReservationEvent(event string) {
	if m == nil {
		return
	}
	m.ActiveReservationsTotal.WithLabelValues(event).Inc()
}

// ObserveHTTP registra una petición HTTP terminada.
func (m *Metrics) ObserveHTTP(method, path, status string, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
}
