package worker

import (
	"context"
	"sync"
	"time"

	"github.com/monarchbot/arise/internal/concurrency"
	"github.com/monarchbot/arise/internal/logger"
	"github.com/monarchbot/arise/internal/metrics"
	"github.com/monarchbot/arise/internal/repository"
)

// MaintenanceWorker periodically vacuums the players table, reports its
// on-disk size and sweeps expired lock leases. Scheduled passes execute as
// jobs on a single-worker pool, so a slow vacuum backs up the queue instead
// of piling up concurrent passes.
type MaintenanceWorker struct {
	repo     repository.Player
	leases   *concurrency.LeaseManager
	interval time.Duration
	pool     *Pool

	shutdown chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewMaintenanceWorker creates a maintenance worker.
func NewMaintenanceWorker(repo repository.Player, leases *concurrency.LeaseManager, interval time.Duration) *MaintenanceWorker {
	return &MaintenanceWorker{
		repo:     repo,
		leases:   leases,
		interval: interval,
		pool:     NewPool(1, 2),
		shutdown: make(chan struct{}),
	}
}

// maintenanceJob adapts one maintenance pass to the pool's Job interface.
type maintenanceJob struct {
	worker *MaintenanceWorker
}

func (j maintenanceJob) Process(ctx context.Context) error {
	j.worker.Run(ctx)
	return nil
}

// Start schedules the periodic runs. The first run happens after one full
// interval, not at startup.
func (w *MaintenanceWorker) Start(ctx context.Context) {
	logger.FromContext(ctx).Info(LogMsgMaintenanceScheduled, "interval", w.interval)

	w.pool.Start()
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.pool.Enqueue(maintenanceJob{worker: w})
			case <-w.shutdown:
				return
			}
		}
	}()
}

// Run executes one maintenance pass. Failures are logged and counted, never
// fatal; the next tick tries again.
func (w *MaintenanceWorker) Run(ctx context.Context) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgMaintenanceStarting)

	if err := w.repo.Vacuum(ctx); err != nil {
		metrics.MaintenanceRuns.WithLabelValues(TaskVacuum, metrics.ResultError).Inc()
		log.Error(LogMsgVacuumFailed, "error", err)
	} else {
		metrics.MaintenanceRuns.WithLabelValues(TaskVacuum, metrics.ResultOK).Inc()
	}

	size, err := w.repo.Size(ctx)
	if err != nil {
		metrics.MaintenanceRuns.WithLabelValues(TaskSizeReport, metrics.ResultError).Inc()
		log.Error(LogMsgSizeCheckFailed, "error", err)
	} else {
		metrics.MaintenanceRuns.WithLabelValues(TaskSizeReport, metrics.ResultOK).Inc()
		metrics.PlayersTableBytes.Set(float64(size))
		log.Info(LogMsgTableSizeReport, "bytes", size)
	}

	if w.leases != nil {
		if swept := w.leases.SweepExpired(); swept > 0 {
			log.Info(LogMsgLeasesSwept, "count", swept)
		}
		metrics.MaintenanceRuns.WithLabelValues(TaskLeaseSweep, metrics.ResultOK).Inc()
	}

	log.Info(LogMsgMaintenanceCompleted)
}

// Stop halts the schedule, drains the pool and waits for an in-flight run to
// finish.
func (w *MaintenanceWorker) Stop(ctx context.Context) {
	w.once.Do(func() { close(w.shutdown) })

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		w.pool.Stop()
		close(done)
	}()
	select {
	case <-done:
		logger.FromContext(ctx).Info(LogMsgMaintenanceStopped)
	case <-ctx.Done():
	}
}
