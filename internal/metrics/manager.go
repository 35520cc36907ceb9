package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterDocumentPersists   *prometheus.CounterVec
	CounterDayLogSaves        prometheus.Counter
	CounterImports            prometheus.Counter
	CounterMigrations         prometheus.Counter
	CounterHandleRequestPanic prometheus.Counter

	// gauges
	GaugeLifeSignal        prometheus.Gauge
	GaugeDurableStoreAlive prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("trainlog", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("trainlog", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterDocumentPersists := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "document_persists",
		Help:      "The total number of user data document persists, per backend and outcome",
	}, []string{"backend", "outcome"})
	counterDayLogSaves := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "day_log_saves",
		Help:      "The total number of saved day logs",
	})
	counterImports := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "document_imports",
		Help:      "The total number of successful document imports",
	})
	counterMigrations := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "document_migrations",
		Help:      "The total number of applied document migration steps",
	})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})

	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})
	gaugeDurableStoreAlive := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "durable_store_alive",
		Help:      "Shows whether the durable (badger) store is usable this session",
	})

	histReqDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0001, 0.001, 0.01, 0.1, 1, 10, 60,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of requests in seconds",
		},
	)

	return &Manager{
		CounterRequests:           counterRequests,
		CounterDocumentPersists:   counterDocumentPersists,
		CounterDayLogSaves:        counterDayLogSaves,
		CounterImports:            counterImports,
		CounterMigrations:         counterMigrations,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		GaugeLifeSignal:           gaugeLifeSignal,
		GaugeDurableStoreAlive:    gaugeDurableStoreAlive,
		HistRequestDuration:       histReqDuration,
	}
}
