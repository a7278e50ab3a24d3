package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pulsebot"

// NewRegistry crea un registry de Prometheus con collectors de runtime y proceso.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler devuelve el http.Handler que sirve las métricas.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// FeedbackMetrics agrupa los contadores del flujo de feedback.
type FeedbackMetrics struct {
	SelectionsTotal   *prometheus.CounterVec
	ResponsesTotal    *prometheus.CounterVec
	StateUpdatesTotal *prometheus.CounterVec
}

// NewFeedbackMetrics crea y registra los contadores en el registry recibido.
func NewFeedbackMetrics(reg prometheus.Registerer) *FeedbackMetrics {
	m := &FeedbackMetrics{
		SelectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_selections_total",
			Help:      "Total de selecciones de pregunta, por tipo y resultado.",
		}, []string{"type", "result"}),
		ResponsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_total",
			Help:      "Total de respuestas registradas, por sentimiento.",
		}, []string{"sentiment"}),
		StateUpdatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_updates_total",
			Help:      "Total de actualizaciones defer/skip, por acción.",
		}, []string{"action"}),
	}

	reg.MustRegister(m.SelectionsTotal, m.ResponsesTotal, m.StateUpdatesTotal)
	return m
}
