package telemetry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	hub "github.com/goliatone/go-contact-hub/components/hub"
)

// Prometheus counts hub and command telemetry events. It satisfies both the
// service and the command Telemetry interfaces.
type Prometheus struct {
	registry    *prometheus.Registry
	events      *prometheus.CounterVec
	submissions *prometheus.CounterVec
	imports     *prometheus.CounterVec
}

// NewPrometheus registers the hub collectors on a fresh registry.
func NewPrometheus(namespace string) *Prometheus {
	if namespace == "" {
		namespace = "contact_hub"
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Prometheus{
		registry: reg,
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total number of hub telemetry events",
		}, []string{"event"}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Visitor submissions relayed by the server",
		}, []string{"channel", "outcome"}),
		imports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "project_imports_total",
			Help:      "Project file imports by outcome",
		}, []string{"outcome"}),
	}
}

// Record implements the Telemetry interfaces.
func (p *Prometheus) Record(_ context.Context, event string, payload map[string]any) {
	p.events.WithLabelValues(event).Inc()
	switch event {
	case hub.EventSubmissionSent, hub.EventSubmissionFailed:
		outcome := label(payload, "outcome")
		if outcome == "unknown" {
			outcome = hub.OutcomeError
			if event == hub.EventSubmissionSent {
				outcome = hub.OutcomeSent
			}
		}
		p.submissions.WithLabelValues(label(payload, "channel"), outcome).Inc()
	case hub.EventProjectImport:
		p.imports.WithLabelValues("accepted").Inc()
	case hub.EventProjectImportRejected:
		p.imports.WithLabelValues("rejected").Inc()
	}
}

// Registry exposes the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the collected metrics.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func label(payload map[string]any, key string) string {
	if v, ok := payload[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return "unknown"
}
