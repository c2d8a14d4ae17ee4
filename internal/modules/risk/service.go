package risk

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vtbalaji/tradeidea-go/internal/config"
	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

// Analyzer assembles the full portfolio analysis from holdings, metadata and
// return series. It owns no state beyond its configuration; every call
// computes a fresh result.
type Analyzer struct {
	calc *Calculator
	log  zerolog.Logger
}

// NewAnalyzer creates a portfolio analyzer.
func NewAnalyzer(cfg config.RiskConfig, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		calc: NewCalculator(cfg),
		log:  log.With().Str("service", "risk_analyzer").Logger(),
	}
}

// Calculator exposes the underlying metrics calculator.
func (a *Analyzer) Calculator() *Calculator {
	return a.calc
}

// Analyze aggregates the holdings into the top-level PortfolioAnalysis.
// benchmarkReturns may be empty. The result is a pure function of the inputs
// (plus a fresh ID and timestamp) and is never mutated after construction.
func (a *Analyzer) Analyze(
	positions []domain.Position,
	meta map[string]domain.SymbolMetadata,
	portfolioReturns []float64,
	benchmarkReturns []float64,
) PortfolioAnalysis {
	sectors := SectorDistribution(positions, meta)
	caps := MarketCapDistribution(positions, meta)
	metrics := a.calc.Metrics(positions, meta, portfolioReturns, benchmarkReturns)

	analysis := PortfolioAnalysis{
		ID:                    uuid.New().String(),
		TotalValue:            round2(totalValue(positions)),
		PositionCount:         len(positions),
		SectorDistribution:    sectors,
		MarketCapDistribution: caps,
		RiskMetrics:           metrics,
		DiversificationScore:  DiversificationScore(len(positions), sectors, caps),
		Warnings:              GenerateWarnings(len(positions), sectors, caps, metrics),
		Attribution:           Attribution(positions, meta),
		Scorecard:             BuildScorecard(positions),
		GeneratedAt:           time.Now(),
	}

	a.log.Debug().
		Int("positions", analysis.PositionCount).
		Float64("total_value", analysis.TotalValue).
		Float64("diversification", analysis.DiversificationScore).
		Int("warnings", len(analysis.Warnings)).
		Msg("Portfolio analysis computed")

	return analysis
}
