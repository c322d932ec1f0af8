package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transition outcomes
const (
	OutcomeApplied = "applied"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Message outcomes
const (
	MessageDeleted      = "deleted"
	MessageDeadLettered = "dead_lettered"
	MessageDeferred     = "deferred"
	MessageRetained     = "retained"
	MessageRerouted     = "rerouted"
	MessageBackfilled   = "backfilled"
)

var (
	// Applicator metrics
	transitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "darkpool_indexer_transitions_total",
			Help: "Total number of state transitions by name and outcome",
		},
		[]string{"transition", "outcome"},
	)

	transitionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "darkpool_indexer_transition_duration_seconds",
			Help:    "Duration of state transitions including serialization retries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"transition"},
	)

	// Consumer metrics
	messagesPolled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "darkpool_indexer_messages_polled_total",
			Help: "Total number of messages received from the queue",
		},
	)

	messages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "darkpool_indexer_messages_total",
			Help: "Total number of handled messages by outcome",
		},
		[]string{"outcome"},
	)

	groupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "darkpool_indexer_consumer_group_duration_seconds",
			Help:    "Time taken to process one message group of a poll",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Listener metrics
	listenerBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "darkpool_indexer_listener_block",
			Help: "The last block scanned by the chain listener",
		},
	)

	listenerMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "darkpool_indexer_listener_messages_total",
			Help: "Total number of messages sent by the chain listener by event kind",
		},
		[]string{"kind"},
	)

	// Backfill metrics
	backfills = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "darkpool_indexer_backfills_total",
			Help: "Total number of account backfills by outcome",
		},
		[]string{"outcome"},
	)

	backfillDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "darkpool_indexer_backfill_duration_seconds",
			Help:    "Duration of account backfills",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		},
	)
)

func TransitionObserve(name, outcome string, duration time.Duration) {
	transitions.WithLabelValues(name, outcome).Inc()
	transitionDuration.WithLabelValues(name).Observe(duration.Seconds())
}

func MessagesPolledAdd(count int) {
	messagesPolled.Add(float64(count))
}

func MessageInc(outcome string) {
	messages.WithLabelValues(outcome).Inc()
}

func GroupDuration(duration time.Duration) {
	groupDuration.Observe(duration.Seconds())
}

func ListenerBlockSet(block uint64) {
	listenerBlock.Set(float64(block))
}

func ListenerMessageInc(kind string) {
	listenerMessages.WithLabelValues(kind).Inc()
}

func BackfillObserve(outcome string, duration time.Duration) {
	backfills.WithLabelValues(outcome).Inc()
	backfillDuration.Observe(duration.Seconds())
}
