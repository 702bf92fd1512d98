// Package monitor runs the scrape-diff-notify-persist poll loop.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/aptwatch/internal/config"
	"github.com/aleister1102/aptwatch/internal/differ"
	"github.com/aleister1102/aptwatch/internal/models"
	"github.com/aleister1102/aptwatch/internal/notifier"
)

// SnapshotFetcher produces the current availability snapshot from the
// listing page.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (models.Snapshot, error)
}

// SnapshotPersister loads and stores the last-known snapshot.
type SnapshotPersister interface {
	Load() (models.Snapshot, error)
	Save(snapshot models.Snapshot, now time.Time) error
}

// NotificationSender fans formatted notifications out to the configured
// channels.
type NotificationSender interface {
	HasChannels() bool
	Dispatch(ctx context.Context, title, body string) notifier.DispatchSummary
}

// MonitorService owns the poll loop. Exactly one cycle runs at a time; the
// loop ends only when its context is cancelled. The previous snapshot is the
// loop's single-writer state: it is updated only after a successful scrape.
type MonitorService struct {
	cfg        config.MonitorConfig
	fetcher    SnapshotFetcher
	store      SnapshotPersister
	differ     *differ.SnapshotDiffer
	dispatcher NotificationSender
	history    *HistoryDB
	filter     models.PlanFilter
	logger     zerolog.Logger

	previous models.Snapshot
	now      func() time.Time
}

// NewMonitorService creates a new MonitorService.
func NewMonitorService(
	cfg config.MonitorConfig,
	fetcher SnapshotFetcher,
	store SnapshotPersister,
	dispatcher NotificationSender,
	history *HistoryDB,
	logger zerolog.Logger,
) *MonitorService {
	return &MonitorService{
		cfg:        cfg,
		fetcher:    fetcher,
		store:      store,
		differ:     differ.NewSnapshotDiffer(logger),
		dispatcher: dispatcher,
		history:    history,
		filter:     models.NewPlanFilter(cfg.NotifyFloorPlans),
		logger:     logger.With().Str("component", "MonitorService").Logger(),
		now:        time.Now,
	}
}

// Run executes the startup cycle and then polls until the context is
// cancelled. Only a startup failure is returned as an error; steady-state
// cycle failures are logged and retried on the next tick.
func (ms *MonitorService) Run(ctx context.Context) error {
	if err := ms.start(ctx); err != nil {
		return err
	}

	interval := ms.cfg.CheckInterval()
	ms.logger.Info().Dur("interval", interval).Msg("Entering poll loop")

	for {
		select {
		case <-ctx.Done():
			ms.logger.Info().Msg("Poll loop stopped")
			return nil
		case <-time.After(interval):
			ms.runCycle(ctx)
		}
	}
}

// start performs the one-time STARTING phase: load the persisted snapshot,
// scrape once (fatal on failure), announce the monitor with the full unit
// list, and persist.
func (ms *MonitorService) start(ctx context.Context) error {
	previous, err := ms.store.Load()
	if err != nil {
		// A truncated state file must not be mistaken for "all units
		// removed"; degrade to a fresh start instead.
		ms.logger.Error().Err(err).Msg("Could not load previous snapshot, treating this as a first run")
		previous = nil
	} else if previous != nil {
		ms.logger.Info().Int("total_units", previous.TotalUnits()).Msg("Loaded snapshot from previous run")
	}
	ms.previous = previous

	cycleStart := ms.now()
	current, err := ms.fetcher.FetchSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("initial scrape failed: %w", err)
	}

	ms.logger.Info().Int("total_units", current.TotalUnits()).Msg("Initial availability scraped")

	notified := false
	if ms.dispatcher.HasChannels() {
		title, body := notifier.FormatStartup(current, ms.now())
		summary := ms.dispatcher.Dispatch(ctx, title, body)
		notified = summary.Delivered()
		if notified {
			ms.logger.Info().Strs("channels", summary.DeliveredChannels()).Msg("Startup notification sent")
		} else if len(summary.Results) > 0 {
			ms.logger.Warn().Msg("Startup notification failed on every channel")
		}
	}

	ms.persist(current)
	ms.previous = current

	ms.recordCycle(CycleRecord{
		CycleStart: cycleStart,
		CycleEnd:   ms.now(),
		Status:     CycleStatusStarted,
		TotalUnits: current.TotalUnits(),
		Notified:   notified,
	})
	return nil
}

// runCycle performs one POLLING phase. A scrape failure preserves all state
// so the next successful poll diffs against the pre-failure snapshot.
func (ms *MonitorService) runCycle(ctx context.Context) {
	cycleStart := ms.now()

	current, err := ms.fetcher.FetchSnapshot(ctx)
	if err != nil {
		ms.logger.Warn().Err(err).Msg("Scrape failed, keeping previous state until next cycle")
		ms.recordCycle(CycleRecord{
			CycleStart:   cycleStart,
			CycleEnd:     ms.now(),
			Status:       CycleStatusScrapeFailed,
			ErrorSummary: err.Error(),
		})
		return
	}

	diff := ms.differ.Diff(ms.previous, current)

	notified := false
	if diff.IsEmpty() {
		ms.logger.Debug().Int("total_units", current.TotalUnits()).Msg("No changes")
	} else {
		ms.logger.Info().
			Int("added", diff.Added.TotalUnits()).
			Int("removed", diff.Removed.TotalUnits()).
			Msg("Changes detected")
		notified = ms.notify(ctx, diff, current)
	}

	// The state file always reflects the latest successful read, even when
	// nothing changed.
	ms.persist(current)
	ms.previous = current

	ms.recordCycle(CycleRecord{
		CycleStart:   cycleStart,
		CycleEnd:     ms.now(),
		Status:       CycleStatusOK,
		TotalUnits:   current.TotalUnits(),
		AddedUnits:   diff.Added.TotalUnits(),
		RemovedUnits: diff.Removed.TotalUnits(),
		Notified:     notified,
	})
}

// notify formats and dispatches an update notification, honoring the floor
// plan filter. Returns whether at least one channel delivered.
func (ms *MonitorService) notify(ctx context.Context, diff models.SnapshotDiff, current models.Snapshot) bool {
	title, body, ok := notifier.FormatUpdate(diff, current, ms.filter, ms.now())
	if !ok {
		ms.logger.Info().Msg("Changes detected but none match the notification filter")
		return false
	}
	if !ms.dispatcher.HasChannels() {
		ms.logger.Debug().Msg("No notification channels configured")
		return false
	}

	summary := ms.dispatcher.Dispatch(ctx, title, body)
	if summary.Delivered() {
		ms.logger.Info().Strs("channels", summary.DeliveredChannels()).Msg("Update notification sent")
	} else {
		ms.logger.Warn().Msg("Update notification failed on every channel")
	}
	return summary.Delivered()
}

func (ms *MonitorService) persist(current models.Snapshot) {
	if err := ms.store.Save(current, ms.now()); err != nil {
		// Loud: a stale state file risks re-notifying after a restart.
		ms.logger.Error().Err(err).Msg("Failed to persist snapshot; a restart may re-send notifications")
	}
}

func (ms *MonitorService) recordCycle(rec CycleRecord) {
	if err := ms.history.RecordCycle(rec); err != nil {
		ms.logger.Warn().Err(err).Msg("Failed to record poll cycle history")
	}
}
