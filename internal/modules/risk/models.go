// Package risk aggregates a set of holdings into distribution, volatility,
// risk-adjusted-return and diversification metrics, and renders them into
// human-readable warnings. Every calculator is a pure function of its inputs.
package risk

import "time"

// Market-cap tiers.
const (
	CapLarge = "Large Cap"
	CapMid   = "Mid Cap"
	CapSmall = "Small Cap"
)

// SectorUnknown is the bucket for positions whose symbol has no metadata.
const SectorUnknown = "Unknown"

// SectorAllocation is one sector bucket of the portfolio.
type SectorAllocation struct {
	Sector     string  `json:"sector"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Positions  int     `json:"positions"`
}

// MarketCapAllocation is one market-cap tier bucket of the portfolio.
type MarketCapAllocation struct {
	Tier       string  `json:"tier"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Positions  int     `json:"positions"`
}

// ValueAtRisk reports the two VaR methods side by side, in currency and as a
// percentage of portfolio value.
type ValueAtRisk struct {
	Historical95 float64 `json:"historical_95"`
	Historical99 float64 `json:"historical_99"`
	Parametric95 float64 `json:"parametric_95"`
	Parametric99 float64 `json:"parametric_99"`

	Historical95Pct float64 `json:"historical_95_pct"`
	Historical99Pct float64 `json:"historical_99_pct"`
	Parametric95Pct float64 `json:"parametric_95_pct"`
	Parametric99Pct float64 `json:"parametric_99_pct"`

	PortfolioValue  float64 `json:"portfolio_value"`
	TimeHorizonDays int     `json:"time_horizon_days"`
	Explanation     string  `json:"explanation"`
}

// RiskMetrics is the volatility / risk-adjusted-return block of the analysis.
type RiskMetrics struct {
	PortfolioBeta    float64      `json:"portfolio_beta"`
	AnnualizedStdDev float64      `json:"annualized_std_dev"` // percent
	AnnualizedReturn float64      `json:"annualized_return"`  // percent
	SharpeRatio      float64      `json:"sharpe_ratio"`
	BenchmarkBeta    float64      `json:"benchmark_beta"`     // 1.0 by definition
	BenchmarkStdDev  float64      `json:"benchmark_std_dev"`  // percent
	ValueAtRisk      *ValueAtRisk `json:"value_at_risk,omitempty"`
}

// PortfolioAnalysis is the top-level aggregate. Computed fresh on every
// request and never mutated after construction.
type PortfolioAnalysis struct {
	ID            string `json:"id"`
	TotalValue    float64 `json:"total_value"`
	PositionCount int     `json:"position_count"`

	SectorDistribution    []SectorAllocation    `json:"sector_distribution"`
	MarketCapDistribution []MarketCapAllocation `json:"market_cap_distribution"`

	RiskMetrics          RiskMetrics `json:"risk_metrics"`
	DiversificationScore float64     `json:"diversification_score"` // 0-100
	Warnings             []string    `json:"warnings"`

	Attribution *AttributionReport `json:"attribution,omitempty"`
	Scorecard   *Scorecard         `json:"scorecard,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// AttributionReport groups P&L by sector and cap tier and ranks positions.
type AttributionReport struct {
	BySector  map[string]PnLBucket `json:"by_sector"`
	ByCapTier map[string]PnLBucket `json:"by_cap_tier"`
	Winners   []PositionPnL        `json:"winners"`
	Losers    []PositionPnL        `json:"losers"`
}

// PnLBucket is aggregated unrealized P&L for one group.
type PnLBucket struct {
	Invested   float64 `json:"invested"`
	Current    float64 `json:"current"`
	PnL        float64 `json:"pnl"`
	PnLPercent float64 `json:"pnl_percent"`
	Positions  int     `json:"positions"`
}

// PositionPnL is one ranked position in the winners/losers lists.
type PositionPnL struct {
	Symbol     string  `json:"symbol"`
	Value      float64 `json:"value"`
	PnL        float64 `json:"pnl"`
	PnLPercent float64 `json:"pnl_percent"`
}

// Scorecard grades every position.
type Scorecard struct {
	Entries []ScorecardEntry `json:"entries"`
}

// ScorecardEntry is one graded position.
type ScorecardEntry struct {
	Symbol     string  `json:"symbol"`
	Grade      string  `json:"grade"` // A..F
	Verdict    string  `json:"verdict"`
	PnLPercent float64 `json:"pnl_percent"`
	Notes      string  `json:"notes,omitempty"`
}
