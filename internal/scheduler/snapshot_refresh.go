package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vtbalaji/tradeidea-go/internal/domain"
	"github.com/vtbalaji/tradeidea-go/internal/indicators"
	"github.com/vtbalaji/tradeidea-go/internal/modules/universe"
)

// snapshotHistoryDays is how much history the refresh pulls per symbol.
// Supertrend and the 200-day average need the most; one calendar year of
// trading days on top of that keeps the annualized series stable.
const snapshotHistoryDays = 500

// SnapshotSink consumes one refreshed snapshot per symbol.
type SnapshotSink func(symbol string, snapshot *domain.TechnicalData) error

// SnapshotRefreshJob recomputes the end-of-day technical snapshot for every
// symbol in the universe. Symbols with too little history are skipped, not
// failed: a partial universe is still useful.
type SnapshotRefreshJob struct {
	history *universe.HistoryDB
	sink    SnapshotSink
	log     zerolog.Logger
}

// NewSnapshotRefreshJob creates the daily snapshot refresh job.
func NewSnapshotRefreshJob(history *universe.HistoryDB, sink SnapshotSink, log zerolog.Logger) *SnapshotRefreshJob {
	return &SnapshotRefreshJob{
		history: history,
		sink:    sink,
		log:     log.With().Str("job", "snapshot_refresh").Logger(),
	}
}

// Name implements Job.
func (j *SnapshotRefreshJob) Name() string { return "snapshot_refresh" }

// Run implements Job.
func (j *SnapshotRefreshJob) Run() error {
	symbols, err := j.history.Symbols()
	if err != nil {
		return fmt.Errorf("failed to list symbols: %w", err)
	}

	var refreshed, skipped int
	for _, symbol := range symbols {
		prices, err := j.history.GetDailyPrices(symbol, snapshotHistoryDays)
		if err != nil {
			return fmt.Errorf("failed to load prices for %s: %w", symbol, err)
		}

		snapshot, err := indicators.BuildSnapshot(symbol, prices)
		if err != nil {
			j.log.Warn().Err(err).Str("symbol", symbol).Msg("Skipping snapshot")
			skipped++
			continue
		}

		if j.sink != nil {
			if err := j.sink(symbol, snapshot); err != nil {
				return fmt.Errorf("failed to store snapshot for %s: %w", symbol, err)
			}
		}
		refreshed++
	}

	j.log.Info().
		Int("refreshed", refreshed).
		Int("skipped", skipped).
		Msg("Snapshot refresh finished")
	return nil
}
