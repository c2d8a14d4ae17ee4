package risk

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vtbalaji/tradeidea-go/internal/config"
	"github.com/vtbalaji/tradeidea-go/internal/domain"
	"github.com/vtbalaji/tradeidea-go/pkg/formulas"
)

// Calculator computes the volatility and risk-adjusted-return metrics. Its
// tunables (risk-free rate, VaR fallbacks) come from explicit configuration
// rather than ambient constants so tests can pin them.
type Calculator struct {
	cfg config.RiskConfig
}

// NewCalculator creates a risk metrics calculator.
func NewCalculator(cfg config.RiskConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// PortfolioBeta calculates the value-weighted average beta of the holdings.
// Symbols without metadata (or without a beta) default to 1.0 — moving with
// the market is the neutral assumption.
func (c *Calculator) PortfolioBeta(positions []domain.Position, meta map[string]domain.SymbolMetadata) float64 {
	total := totalValue(positions)
	if total == 0 {
		return 1.0
	}

	weighted := 0.0
	for _, pos := range positions {
		beta := 1.0
		if m, ok := meta[pos.Symbol]; ok && m.Beta != nil {
			beta = *m.Beta
		}
		weighted += beta * pos.TotalValue() / total
	}

	return weighted
}

// AnnualizedStdDev calculates the annualized sample standard deviation of a
// daily return series, as a percentage. Returns 0 for fewer than 2 points.
func (c *Calculator) AnnualizedStdDev(dailyReturns []float64) float64 {
	return formulas.AnnualizedVolatility(dailyReturns)
}

// AnnualizedReturn compounds daily returns geometrically to a yearly rate, as
// a percentage.
func (c *Calculator) AnnualizedReturn(dailyReturns []float64) float64 {
	return formulas.AnnualizedReturn(dailyReturns)
}

// SharpeRatio calculates (annualized return − risk-free rate) / annualized
// standard deviation, all in percent. Returns 0 when the standard deviation
// is 0 — a division guard, not an error.
func (c *Calculator) SharpeRatio(annualReturnPct, riskFreeRatePct, stdDevPct float64) float64 {
	if stdDevPct == 0 {
		return 0
	}
	return (annualReturnPct - riskFreeRatePct) / stdDevPct
}

// Metrics assembles the full RiskMetrics block. benchmarkReturns may be empty,
// in which case the configured fallback benchmark volatility is reported.
func (c *Calculator) Metrics(
	positions []domain.Position,
	meta map[string]domain.SymbolMetadata,
	portfolioReturns []float64,
	benchmarkReturns []float64,
) RiskMetrics {
	stdDev := c.AnnualizedStdDev(portfolioReturns)
	annualReturn := c.AnnualizedReturn(portfolioReturns)

	benchmarkStdDev := c.cfg.BenchmarkStdDevFallback
	if len(benchmarkReturns) >= 2 {
		benchmarkStdDev = formulas.AnnualizedVolatility(benchmarkReturns)
	}

	vaR := c.ValueAtRisk(portfolioReturns, totalValue(positions))

	return RiskMetrics{
		PortfolioBeta:    c.PortfolioBeta(positions, meta),
		AnnualizedStdDev: stdDev,
		AnnualizedReturn: annualReturn,
		SharpeRatio:      c.SharpeRatio(annualReturn, c.cfg.RiskFreeRate, stdDev),
		BenchmarkBeta:    1.0,
		BenchmarkStdDev:  benchmarkStdDev,
		ValueAtRisk:      &vaR,
	}
}

// ValueAtRisk computes historical-percentile and parametric-normal VaR side
// by side at 95% and 99% confidence, scaled to the configured time horizon by
// sqrt(t). With fewer observations than the configured minimum, both methods
// fall back to conservative fixed fractions of portfolio value instead of
// computing from insufficient data.
func (c *Calculator) ValueAtRisk(dailyReturns []float64, portfolioValue float64) ValueAtRisk {
	horizon := c.cfg.VaRTimeHorizonDays
	if horizon < 1 {
		horizon = 1
	}

	if len(dailyReturns) < c.cfg.VaRMinObservations {
		return c.fallbackVaR(len(dailyReturns), portfolioValue, horizon)
	}

	scale := math.Sqrt(float64(horizon))

	// Historical: take the percentile values of the observed distribution
	// directly, no distributional assumption.
	sorted := make([]float64, len(dailyReturns))
	copy(sorted, dailyReturns)
	sort.Float64s(sorted)

	hist95 := math.Abs(percentileValue(sorted, 0.05)) * scale
	hist99 := math.Abs(percentileValue(sorted, 0.01)) * scale

	// Parametric: assume normality; VaR = |mean − z·σ| scaled to horizon.
	mean := formulas.Mean(dailyReturns)
	sigma := formulas.StdDev(dailyReturns)
	normal := distuv.Normal{Mu: 0, Sigma: 1}
	z95 := normal.Quantile(0.95) // 1.645
	z99 := normal.Quantile(0.99) // 2.326

	para95 := math.Abs(mean-z95*sigma) * scale
	para99 := math.Abs(mean-z99*sigma) * scale

	v := ValueAtRisk{
		Historical95:    round2(hist95 * portfolioValue),
		Historical99:    round2(hist99 * portfolioValue),
		Parametric95:    round2(para95 * portfolioValue),
		Parametric99:    round2(para99 * portfolioValue),
		Historical95Pct: round2(hist95 * 100),
		Historical99Pct: round2(hist99 * 100),
		Parametric95Pct: round2(para95 * 100),
		Parametric99Pct: round2(para99 * 100),
		PortfolioValue:  portfolioValue,
		TimeHorizonDays: horizon,
	}
	v.Explanation = fmt.Sprintf(
		"Based on %d days of history, there is a 5%% chance of losing more than ₹%.2f (%.2f%%) and a 1%% chance of losing more than ₹%.2f (%.2f%%) over %d day(s).",
		len(dailyReturns), v.Historical95, v.Historical95Pct, v.Historical99, v.Historical99Pct, horizon,
	)
	return v
}

// fallbackVaR returns the fixed conservative estimates used when history is
// too short. The observation threshold and the 5%/10% fractions are a
// deliberate safety margin.
func (c *Calculator) fallbackVaR(observations int, portfolioValue float64, horizon int) ValueAtRisk {
	pct95 := c.cfg.VaRFallback95Pct
	pct99 := c.cfg.VaRFallback99Pct

	return ValueAtRisk{
		Historical95:    round2(portfolioValue * pct95 / 100),
		Historical99:    round2(portfolioValue * pct99 / 100),
		Parametric95:    round2(portfolioValue * pct95 / 100),
		Parametric99:    round2(portfolioValue * pct99 / 100),
		Historical95Pct: pct95,
		Historical99Pct: pct99,
		Parametric95Pct: pct95,
		Parametric99Pct: pct99,
		PortfolioValue:  portfolioValue,
		TimeHorizonDays: horizon,
		Explanation: fmt.Sprintf(
			"Insufficient history (%d observations, need %d): conservative fixed estimates of %.0f%%/%.0f%% of portfolio value applied.",
			observations, c.cfg.VaRMinObservations, pct95, pct99,
		),
	}
}

// percentileValue returns the value at percentile p (0..1) of an ascending
// sorted series, by direct index without interpolation.
func percentileValue(sortedAsc []float64, p float64) float64 {
	if len(sortedAsc) == 0 {
		return 0
	}
	idx := int(p * float64(len(sortedAsc)))
	if idx >= len(sortedAsc) {
		idx = len(sortedAsc) - 1
	}
	return sortedAsc[idx]
}
