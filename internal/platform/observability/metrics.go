package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesRouted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_messages_routed_total",
		Help: "The total number of inbound messages by classified source",
	}, []string{"source"})

	MessagesIgnored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_messages_ignored_total",
		Help: "The total number of inbound messages ignored by reason",
	}, []string{"reason"})

	DeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_deliveries_total",
		Help: "The total number of per-recipient deliveries by status",
	}, []string{"status"})

	SendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bridge_send_duration_seconds",
		Help:    "Duration of destination-platform sends by recipient kind",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	UrgentReports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_urgent_reports_total",
		Help: "Total number of reports classified as urgent",
	})

	GroupLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_group_lookups_total",
		Help: "Total number of group membership lookups by cache status",
	}, []string{"status"})

	EggCacheAge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bridge_egg_cache_age_seconds",
		Help: "Age in seconds of the cached egg report",
	})

	SourceReconnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridge_source_reconnects_total",
		Help: "Total number of source-platform reconnect attempts",
	})
)
