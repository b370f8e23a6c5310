package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service-level Prometheus collectors. Construct one
// per process and inject it where needed.
type Metrics struct {
	TurnsRouted          *prometheus.CounterVec
	CollaboratorFailures *prometheus.CounterVec
	TurnDuration         prometheus.Histogram
	ContactRequestsSaved prometheus.Counter
	ActiveSessions       prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		TurnsRouted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "support_chat_turns_routed_total",
			Help: "Turns handled, labelled by the component that answered",
		}, []string{"route"}),
		CollaboratorFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "support_chat_collaborator_failures_total",
			Help: "External collaborator failures swallowed and converted to apologies",
		}, []string{"collaborator"}),
		TurnDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "support_chat_turn_duration_seconds",
			Help:    "Wall time to handle one user turn",
			Buckets: prometheus.DefBuckets,
		}),
		ContactRequestsSaved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "support_chat_contact_requests_saved_total",
			Help: "Human-handoff contact requests persisted",
		}),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "support_chat_active_sessions",
			Help: "Conversations currently held in the session store",
		}),
	}
}

// Nop returns a Metrics backed by unregistered collectors, for tests.
func Nop() *Metrics {
	return &Metrics{
		TurnsRouted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nop_turns_routed_total",
		}, []string{"route"}),
		CollaboratorFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nop_collaborator_failures_total",
		}, []string{"collaborator"}),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "nop_turn_duration_seconds",
		}),
		ContactRequestsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nop_contact_requests_saved_total",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nop_active_sessions",
		}),
	}
}
