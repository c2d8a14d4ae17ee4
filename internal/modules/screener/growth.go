package screener

import "github.com/vtbalaji/tradeidea-go/internal/domain"

// Thresholds of the growth strategy. Entry wants accelerating earnings in a
// confirmed uptrend endorsed by the indicator pipeline; exit protects gains
// with a trailing stop from the peak and reacts to momentum loss.
const (
	growthEarningsGrowthMin  = 0.15
	growthQuarterlyGrowthMin = 0.12
	growthRevenueGrowthMin   = 0.08
	growthScoreMin           = 3 // of 4
	growthMomentumScoreMin   = 4 // of 6
	growthAdequateVolumePct  = 0.8

	growthTrailingStopPct     = 0.85 // exit 15% below the peak since entry
	growthDecelerationFloor   = 0.10
	growthMomentumLossMin     = 3 // of 5
	growthRSIOverheated       = 75.0
	growthStopLossPct         = -20.0
)

// growthScore counts the fundamental growth sub-signals: annual earnings,
// quarterly earnings, revenue, and a positive price day.
func growthScore(ctx *Context) int {
	return countTrue(
		knownAtLeast(ctx.Fundamental.EarningsGrowth, growthEarningsGrowthMin),
		knownAtLeast(ctx.Fundamental.QuarterlyEarningsGrowth, growthQuarterlyGrowthMin),
		knownAtLeast(ctx.Fundamental.RevenueGrowth, growthRevenueGrowthMin),
		ctx.Signals.PositiveChange,
	)
}

// growthMomentumScore counts the technical momentum sub-signals backing the
// growth entry.
func growthMomentumScore(ctx *Context) int {
	return countTrue(
		ctx.Signals.EMA9AboveEMA21,
		ctx.Signals.MACDBullish,
		ctx.Signals.MACDHistogramPositive,
		ctx.Signals.RSIBullish,
		ctx.Signals.AboveSMA50,
		ctx.Signals.VolumeAboveAverage,
	)
}

// growthMomentumLossScore counts the momentum-loss sub-signals on the exit
// side.
func growthMomentumLossScore(ctx *Context) int {
	return countTrue(
		!ctx.Signals.AboveEMA21,
		!ctx.Signals.MACDBullish,
		!ctx.Signals.MACDHistogramPositive,
		ctx.Technical.RSI14 < 45,
		!ctx.Signals.AboveSMA50,
	)
}

func growthStrategy() Strategy {
	return Strategy{
		Name: StrategyGrowth,
		EntryConditions: []EntryCondition{
			{"growthScoreMet", func(ctx *Context) bool {
				return growthScore(ctx) >= growthScoreMin
			}},
			{"momentumScoreMet", func(ctx *Context) bool {
				return growthMomentumScore(ctx) >= growthMomentumScoreMin
			}},
			{"priceAboveEMA50", func(ctx *Context) bool {
				return ctx.Signals.AboveEMA50
			}},
			{"priceAboveSMA200", func(ctx *Context) bool {
				return ctx.Signals.AboveSMA200
			}},
			{"adequateVolume", func(ctx *Context) bool {
				return ctx.Technical.AvgVolume20 > 0 &&
					float64(ctx.Technical.Volume) >= growthAdequateVolumePct*float64(ctx.Technical.AvgVolume20)
			}},
			{"overallSignalBullish", func(ctx *Context) bool {
				sig := ctx.Technical.OverallSignal
				return sig != nil && (*sig == domain.SignalStrongBuy || *sig == domain.SignalBuy)
			}},
		},
		EntryScores: []ScoreFunc{
			{Name: "growthScore", Max: 4, Fn: growthScore},
			{Name: "momentumScore", Max: 6, Fn: growthMomentumScore},
		},
		ExitConditions: []ExitCondition{
			{"trailingStopFromPeak", func(ctx *Context, pos domain.Position) bool {
				return pos.HighestPrice != nil && *pos.HighestPrice > 0 &&
					pos.CurrentPrice <= *pos.HighestPrice*growthTrailingStopPct
			}},
			{"growthDeceleration", func(ctx *Context, pos domain.Position) bool {
				return knownBelow(ctx.Fundamental.EarningsGrowth, growthDecelerationFloor)
			}},
			{"momentumLost", func(ctx *Context, pos domain.Position) bool {
				return growthMomentumLossScore(ctx) >= growthMomentumLossMin
			}},
			{"rsiOverheated", func(ctx *Context, pos domain.Position) bool {
				return ctx.Technical.RSI14 > growthRSIOverheated
			}},
			{"stopLossHit", func(ctx *Context, pos domain.Position) bool {
				return pos.ProfitPercent() <= growthStopLossPct
			}},
			{"belowSMA100", func(ctx *Context, pos domain.Position) bool {
				// SMA100 may be absent; an unknown level never triggers.
				return !trueIfKnown(ctx.Signals.AboveSMA100, true)
			}},
		},
		ExitScores: []ScoreFunc{
			{Name: "momentumLossScore", Max: 5, Fn: growthMomentumLossScore},
		},
	}
}
