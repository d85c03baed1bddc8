package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tapestry"

// Metrics holds the collectors fed by lifecycle hooks.
type Metrics struct {
	NodeVisits     *prometheus.CounterVec
	Choices        *prometheus.CounterVec
	Restarts       prometheus.Counter
	Reveals        *prometheus.CounterVec
	RevealDuration prometheus.Histogram

	mu      sync.Mutex
	entered map[string]time.Time // session id -> when the unrevealed screen was entered
	now     func() time.Time
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NodeVisits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_visits_total",
			Help:      "Total number of screens entered, by node.",
		}, []string{"node_id", "node_type"}),
		Choices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "choices_total",
			Help:      "Total number of choices selected.",
		}, []string{"node_id", "label"}),
		Restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restarts_total",
			Help:      "Total number of automatic restarts after the terminal node.",
		}),
		Reveals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reveals_total",
			Help:      "Total number of screens fully revealed.",
		}, []string{"node_id"}),
		RevealDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reveal_duration_seconds",
			Help:      "Time from entering a screen to its reveal-complete notification.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}),
		entered: make(map[string]time.Time),
		now:     time.Now,
	}
	if reg != nil {
		reg.MustRegister(m.NodeVisits, m.Choices, m.Restarts, m.Reveals, m.RevealDuration)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(e.NodeID, string(e.NodeType)).Inc()
			m.mu.Lock()
			m.entered[e.SessionID] = m.now()
			m.mu.Unlock()
		},
		OnChoice: func(_ context.Context, e *domain.ChoiceEvent) {
			m.Choices.WithLabelValues(e.NodeID, e.Label).Inc()
		},
		OnRestart: func(context.Context, *domain.RestartEvent) {
			m.Restarts.Inc()
		},
		OnRevealComplete: func(_ context.Context, e *domain.RevealEvent) {
			m.Reveals.WithLabelValues(e.NodeID).Inc()
			m.mu.Lock()
			start, ok := m.entered[e.SessionID]
			delete(m.entered, e.SessionID)
			m.mu.Unlock()
			if ok {
				m.RevealDuration.Observe(m.now().Sub(start).Seconds())
			}
		},
	}
}
