package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transition metrics
	Transitions        *prometheus.CounterVec
	TransitionErrors   *prometheus.CounterVec
	TransitionDuration *prometheus.HistogramVec
	StepDuration       *prometheus.HistogramVec

	// Move metrics
	ProcessingMovesCreated prometheus.Counter
	ClearingMovesCreated   prometheus.Counter
	CancellingMovesPosted  prometheus.Counter
	DraftMovesDeleted      prometheus.Counter
	StatementMovesCreated  prometheus.Counter

	// Reconciliation metrics
	ReconciliationsCreated *prometheus.CounterVec
	ReconciliationsRemoved prometheus.Counter
	GroupsSkipped          *prometheus.CounterVec

	// Currency metrics
	RateCacheHits   prometheus.Counter
	RateCacheMisses prometheus.Counter

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
	PublishErrors   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on reg.
// A nil reg registers on the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Transition metrics
		Transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payproc_transitions_total",
				Help: "Total payments moved through a workflow transition",
			},
			[]string{"transition"},
		),
		TransitionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payproc_transition_errors_total",
				Help: "Total aborted transitions by failing step",
			},
			[]string{"transition", "step"},
		),
		TransitionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payproc_transition_duration_seconds",
				Help:    "Duration of workflow transitions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"transition"},
		),
		StepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payproc_step_duration_seconds",
				Help:    "Duration of individual transition steps",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"transition", "step"},
		),

		// Move metrics
		ProcessingMovesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "payproc_processing_moves_created_total",
			Help: "Total processing moves created and posted",
		}),
		ClearingMovesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "payproc_clearing_moves_created_total",
			Help: "Total clearing moves created and posted",
		}),
		CancellingMovesPosted: factory.NewCounter(prometheus.CounterOpts{
			Name: "payproc_cancelling_moves_posted_total",
			Help: "Total cancelling moves posted for failed payments",
		}),
		DraftMovesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "payproc_draft_moves_deleted_total",
			Help: "Total draft processing moves deleted for failed payments",
		}),
		StatementMovesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "payproc_statement_moves_created_total",
			Help: "Total statement moves created",
		}),

		// Reconciliation metrics
		ReconciliationsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payproc_reconciliations_created_total",
				Help: "Total reconciliations created by context",
			},
			[]string{"context"},
		),
		ReconciliationsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "payproc_reconciliations_removed_total",
			Help: "Total reconciliations removed while failing payments",
		}),
		GroupsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payproc_reconciliation_groups_skipped_total",
				Help: "Total candidate groups left unreconciled by context",
			},
			[]string{"context"},
		),

		// Currency metrics
		RateCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "payproc_rate_cache_hits_total",
			Help: "Total currency rate cache hits",
		}),
		RateCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "payproc_rate_cache_misses_total",
			Help: "Total currency rate cache misses",
		}),

		// Outbox metrics
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payproc_events_published_total",
				Help: "Total outbox events published by type",
			},
			[]string{"event_type"},
		),
		PublishErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payproc_event_publish_errors_total",
				Help: "Total outbox publish failures by type",
			},
			[]string{"event_type"},
		),
	}
}
