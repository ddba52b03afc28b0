package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kafkabridge"

// Потребление.
var (
	RecordsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_received_total",
			Help:      "Number of records received from the broker",
		},
		[]string{"topic"},
	)
	DuplicatesSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_redelivered_skipped_total",
			Help:      "Records skipped because their offset was already delivered in the session",
		},
		[]string{"topic"},
	)
	ReceiveErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receive_errors_total",
			Help:      "Non-fatal transport errors returned by receive",
		},
	)
	Rebalances = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rebalances_total",
			Help:      "Partition assignment changes observed by the consumer",
		},
		[]string{"kind"}, // assigned|revoked|lost
	)
	Commits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offset_commits_total",
			Help:      "Offset commit attempts",
		},
		[]string{"result"}, // ok|error
	)
)

// Мост и подписчики.
var (
	EventsDelivered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_delivered_total",
			Help:      "Events accepted by the subscriber",
		},
		[]string{"topic"},
	)
	EventsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Events dropped because the subscriber did not accept them in time",
		},
		[]string{"topic", "policy"},
	)
	DecodeFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_fallbacks_total",
			Help:      "Keys or payloads replaced with an empty string because they were not valid UTF-8",
		},
		[]string{"field"}, // key|payload
	)
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of running receive loops",
		},
	)
	BackpressurePolicy = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backpressure_policy",
			Help:      "Backpressure policy applied to slow subscribers (value is always 1)",
		},
		[]string{"policy"},
	)
	SSEClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sse_clients",
			Help:      "Connected SSE clients",
		},
	)
)

// Производитель.
var ProducerRecords = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "producer_records_total",
		Help:      "Records handed to the producer",
	},
	[]string{"topic", "result"}, // enqueued|delivered|failed
)

// Буфер последних событий.
var (
	ReplayOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replay_buffer_operations_total",
			Help:      "Replay buffer operations",
		},
		[]string{"op"}, // added|updated|evicted|expired|snapshot
	)
	ReplaySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "replay_buffer_size",
			Help:      "Number of events currently kept for replay",
		},
	)
)

var registerOnce sync.Once

// MustRegister регистрирует коллекторы в глобальном реестре; повторные вызовы игнорируются.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RecordsReceived, DuplicatesSkipped, ReceiveErrors, Rebalances, Commits,
			EventsDelivered, EventsDropped, DecodeFallbacks, SessionsActive, BackpressurePolicy, SSEClients,
			ProducerRecords,
			ReplayOps, ReplaySize,
		)
	})
}
