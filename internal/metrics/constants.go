package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Player metric names
const (
	MetricNamePlayerSaves       = "player_saves_total"
	MetricNamePlayerSaveBytes   = "player_save_bytes"
	MetricNamePlayerLoads       = "player_loads_total"
	MetricNameEmergencyShrinks  = "player_emergency_shrinks_total"
	MetricNameRepairsApplied    = "player_repairs_applied_total"
	MetricNameLevelsGained      = "player_levels_gained_total"
	MetricNamePlayerCacheHits   = "player_cache_hits_total"
	MetricNamePlayerCacheMisses = "player_cache_misses_total"
	MetricNameLockWaitDuration  = "player_lock_wait_seconds"
	MetricNameMaintenanceRuns   = "maintenance_runs_total"
	MetricNamePlayersTableBytes = "players_table_bytes"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Player metric help text
const (
	HelpTextPlayerSaves       = "Total number of player saves"
	HelpTextPlayerSaveBytes   = "Serialized player document size in bytes"
	HelpTextPlayerLoads       = "Total number of player loads"
	HelpTextEmergencyShrinks  = "Total number of emergency shrinks of oversized players"
	HelpTextRepairsApplied    = "Total number of repairs applied to loaded players"
	HelpTextLevelsGained      = "Total number of player levels gained"
	HelpTextPlayerCacheHits   = "Total number of player cache hits"
	HelpTextPlayerCacheMisses = "Total number of player cache misses"
	HelpTextLockWaitDuration  = "Time spent waiting for a player lock in seconds"
	HelpTextMaintenanceRuns   = "Total number of maintenance runs"
	HelpTextPlayersTableBytes = "Total size of the players table in bytes"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelResult = "result"
	LabelRepair = "repair"
	LabelTask   = "task"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, ranging from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SaveBytesBuckets covers payload sizes from tiny rows up past the 5 MiB
// hard limit where the emergency shrink kicks in
var SaveBytesBuckets = []float64{1 << 10, 4 << 10, 16 << 10, 64 << 10, 256 << 10, 1 << 20, 2 << 20, 5 << 20, 10 << 20}

// LockWaitBuckets covers lock waits from uncontended to full lease TTL
var LockWaitBuckets = []float64{.001, .01, .05, .1, .5, 1, 5, 30, 120}
