package worker

// Log Messages - Worker Pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
)

// Log Messages - Maintenance Worker
const (
	LogMsgMaintenanceStarting  = "Maintenance run starting"
	LogMsgMaintenanceCompleted = "Maintenance run completed"
	LogMsgVacuumFailed         = "Vacuum failed"
	LogMsgSizeCheckFailed      = "Table size check failed"
	LogMsgTableSizeReport      = "Players table size"
	LogMsgLeasesSwept          = "Expired leases swept"
	LogMsgMaintenanceScheduled = "Maintenance worker scheduled"
	LogMsgMaintenanceStopped   = "Maintenance worker stopped"
)

// Maintenance task names used as metric labels
const (
	TaskVacuum     = "vacuum"
	TaskSizeReport = "size_report"
	TaskLeaseSweep = "lease_sweep"
)
