package screener

import "github.com/vtbalaji/tradeidea-go/internal/domain"

// Thresholds of the momentum strategy — the shortest-horizon table of the
// five. Entries chase confirmed strength; exits are quick: tiered profit
// taking, a tight stop, a 60-day clock and a volume-collapse check.
const (
	momentumScoreMin          = 5 // of 7
	momentumBandTolerance     = 1.02 // within 2% above the upper Bollinger Band
	momentumRSIOverbought     = 70.0

	momentumQuickProfitPct    = 10.0
	momentumEarlyProfitPct    = 5.0
	momentumTrailingStopPct   = 0.95 // exit 5% below the peak since entry
	momentumReversalScoreMin  = 3 // of 6
	momentumTightStopPct      = -3.0
	momentumMaxHoldingDays    = 60
	momentumVolumeCollapsePct = 0.30
)

// momentumScore counts the momentum sub-signals backing an entry.
func momentumScore(ctx *Context) int {
	return countTrue(
		ctx.Signals.EMA9AboveEMA21,
		ctx.Signals.AboveEMA9,
		ctx.Signals.MACDBullish,
		ctx.Signals.MACDHistogramPositive,
		ctx.Technical.RSI14 > 50 && ctx.Technical.RSI14 <= 70,
		ctx.Signals.VolumeSpike,
		ctx.Signals.PositiveChange,
	)
}

// momentumReversalScore counts the reversal sub-signals on the exit side.
func momentumReversalScore(ctx *Context) int {
	return countTrue(
		!ctx.Signals.EMA9AboveEMA21,
		!ctx.Signals.MACDBullish,
		!ctx.Signals.MACDHistogramPositive,
		ctx.Technical.RSI14 < 45,
		!ctx.Signals.AboveSMA20,
		!ctx.Signals.VolumeAboveAverage,
	)
}

func momentumStrategy() Strategy {
	return Strategy{
		Name: StrategyMomentum,
		EntryConditions: []EntryCondition{
			{"momentumScoreMet", func(ctx *Context) bool {
				return momentumScore(ctx) >= momentumScoreMin
			}},
			{"priceAboveSMA20", func(ctx *Context) bool {
				return ctx.Signals.AboveSMA20
			}},
			{"priceAboveSMA50", func(ctx *Context) bool {
				return ctx.Signals.AboveSMA50
			}},
			{"rsiNotOverbought", func(ctx *Context) bool {
				return ctx.Technical.RSI14 < momentumRSIOverbought
			}},
			{"withinBollingerRange", func(ctx *Context) bool {
				return ctx.Technical.LastPrice <= ctx.Technical.BBUpper*momentumBandTolerance
			}},
			{"volumeConfirmation", func(ctx *Context) bool {
				return ctx.Signals.VolumeAboveAverage
			}},
			{"aboveSupertrend", func(ctx *Context) bool {
				// Supertrend is optional; an unknown level does not block entry.
				return trueIfKnown(ctx.Signals.AboveSupertrend, true)
			}},
		},
		EntryScores: []ScoreFunc{
			{Name: "momentumScore", Max: 7, Fn: momentumScore},
		},
		ExitConditions: []ExitCondition{
			{"quickProfitTier", func(ctx *Context, pos domain.Position) bool {
				profit := pos.ProfitPercent()
				if profit >= momentumQuickProfitPct {
					return true
				}
				// Early tier: lock in 5% once RSI runs hot.
				return profit >= momentumEarlyProfitPct && ctx.Technical.RSI14 > momentumRSIOverbought
			}},
			{"trailingStopFromPeak", func(ctx *Context, pos domain.Position) bool {
				return pos.HighestPrice != nil && *pos.HighestPrice > 0 &&
					pos.CurrentPrice <= *pos.HighestPrice*momentumTrailingStopPct
			}},
			{"momentumReversal", func(ctx *Context, pos domain.Position) bool {
				return momentumReversalScore(ctx) >= momentumReversalScoreMin
			}},
			{"belowSMA20", func(ctx *Context, pos domain.Position) bool {
				return !ctx.Signals.AboveSMA20
			}},
			{"belowSupertrend", func(ctx *Context, pos domain.Position) bool {
				return !trueIfKnown(ctx.Signals.AboveSupertrend, true)
			}},
			{"tightStopLossHit", func(ctx *Context, pos domain.Position) bool {
				return pos.ProfitPercent() <= momentumTightStopPct
			}},
			{"maxHoldingPeriod", func(ctx *Context, pos domain.Position) bool {
				return pos.HoldingDays(ctx.Now) >= momentumMaxHoldingDays
			}},
			{"volumeCollapse", func(ctx *Context, pos domain.Position) bool {
				return ctx.Technical.AvgVolume20 > 0 &&
					float64(ctx.Technical.Volume) < momentumVolumeCollapsePct*float64(ctx.Technical.AvgVolume20)
			}},
		},
		ExitScores: []ScoreFunc{
			{Name: "reversalScore", Max: 6, Fn: momentumReversalScore},
		},
	}
}
