package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Player Metrics
var (
	PlayerSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlayerSaves,
			Help: HelpTextPlayerSaves,
		},
		[]string{LabelResult},
	)

	PlayerSaveBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePlayerSaveBytes,
			Help:    HelpTextPlayerSaveBytes,
			Buckets: SaveBytesBuckets,
		},
	)

	PlayerLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlayerLoads,
			Help: HelpTextPlayerLoads,
		},
		[]string{LabelResult},
	)

	EmergencyShrinks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEmergencyShrinks,
			Help: HelpTextEmergencyShrinks,
		},
	)

	RepairsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRepairsApplied,
			Help: HelpTextRepairsApplied,
		},
		[]string{LabelRepair},
	)

	LevelsGained = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelsGained,
			Help: HelpTextLevelsGained,
		},
	)

	PlayerCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlayerCacheHits,
			Help: HelpTextPlayerCacheHits,
		},
	)

	PlayerCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlayerCacheMisses,
			Help: HelpTextPlayerCacheMisses,
		},
	)

	LockWaitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameLockWaitDuration,
			Help:    HelpTextLockWaitDuration,
			Buckets: LockWaitBuckets,
		},
	)
)

// Maintenance Metrics
var (
	MaintenanceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMaintenanceRuns,
			Help: HelpTextMaintenanceRuns,
		},
		[]string{LabelTask, LabelResult},
	)

	PlayersTableBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePlayersTableBytes,
			Help: HelpTextPlayersTableBytes,
		},
	)
)

// Result label values
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultMiss  = "miss"
)
