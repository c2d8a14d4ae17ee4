// TradeIdea quantitative core: strategy rule engine and portfolio risk
// analytics over a local symbol universe.
//
// Startup order:
//  1. Load configuration (environment, optional .env)
//  2. Initialize structured logging
//  3. Open the universe and portfolio databases and run migrations
//  4. Wire repositories, the rule engine and the risk analyzer
//  5. Register the daily snapshot refresh job
//  6. Serve HTTP until SIGINT/SIGTERM, then shut down gracefully
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/vtbalaji/tradeidea-go/internal/config"
	"github.com/vtbalaji/tradeidea-go/internal/database"
	"github.com/vtbalaji/tradeidea-go/internal/domain"
	"github.com/vtbalaji/tradeidea-go/internal/modules/portfolio"
	"github.com/vtbalaji/tradeidea-go/internal/modules/risk"
	riskhandlers "github.com/vtbalaji/tradeidea-go/internal/modules/risk/handlers"
	"github.com/vtbalaji/tradeidea-go/internal/modules/screener"
	screenerhandlers "github.com/vtbalaji/tradeidea-go/internal/modules/screener/handlers"
	"github.com/vtbalaji/tradeidea-go/internal/modules/universe"
	"github.com/vtbalaji/tradeidea-go/internal/scheduler"
	"github.com/vtbalaji/tradeidea-go/internal/server"
	"github.com/vtbalaji/tradeidea-go/pkg/logger"
)

// snapshotRefreshSchedule runs after the NSE close, weekdays at 18:30 IST.
const snapshotRefreshSchedule = "0 30 18 * * MON-FRI"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting TradeIdea")

	// Universe holds price history, metadata and snapshots; portfolio holds
	// the user's positions. Separate files keep write contention apart.
	universeDB, err := database.New(database.Config{
		Path: filepath.Join(cfg.DataDir, "universe.db"),
		Name: "universe",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open universe database")
	}
	defer universeDB.Close()

	portfolioDB, err := database.New(database.Config{
		Path: filepath.Join(cfg.DataDir, "portfolio.db"),
		Name: "portfolio",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open portfolio database")
	}
	defer portfolioDB.Close()

	// Repositories
	historyDB := universe.NewHistoryDB(universeDB, log)
	metadataRepo := universe.NewMetadataRepository(universeDB, log)
	snapshotRepo := universe.NewSnapshotRepository(universeDB, log)
	positionRepo := portfolio.NewRepository(portfolioDB, log)

	for name, migrate := range map[string]func() error{
		"history":   historyDB.Migrate,
		"metadata":  metadataRepo.Migrate,
		"snapshots": snapshotRepo.Migrate,
		"positions": positionRepo.Migrate,
	} {
		if err := migrate(); err != nil {
			log.Fatal().Err(err).Str("schema", name).Msg("Migration failed")
		}
	}

	// Services
	engine := screener.NewEngine(cfg.Screener)
	analyzer := risk.NewAnalyzer(cfg.Risk, log)
	portfolioSvc := portfolio.NewService(positionRepo, snapshotRepo, historyDB, log)

	// Scheduler: refresh technical snapshots daily after market close
	sched := scheduler.New(log)
	refreshJob := scheduler.NewSnapshotRefreshJob(historyDB, func(symbol string, snapshot *domain.TechnicalData) error {
		return snapshotRepo.SaveTechnical(*snapshot)
	}, log)
	if err := sched.AddJob(snapshotRefreshSchedule, refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register snapshot refresh job")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Log:         log,
		Config:      cfg,
		UniverseDB:  universeDB,
		PortfolioDB: portfolioDB,
		ScreenerHandlers: screenerhandlers.NewHandler(
			engine, snapshotRepo, log,
		),
		RiskHandlers: riskhandlers.NewHandler(
			portfolioSvc, analyzer, metadataRepo, cfg.Risk, log,
		),
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
