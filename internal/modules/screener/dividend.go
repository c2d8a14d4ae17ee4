package screener

import "github.com/vtbalaji/tradeidea-go/internal/domain"

// Thresholds of the dividend strategy: sustainable income first, price
// second. It tolerates the deepest drawdown of the five tables (-30%) and
// reviews only every five years, but reacts immediately to yield compression
// or payout stress.
const (
	dividendYieldFloor        = 0.025
	dividendPayoutCeiling     = 0.70
	dividendStabilityMin      = 4 // of 5
	dividendLeverageMax       = 1.0
	dividendBetaMax           = 1.2
	dividendNetMarginMin      = 0.08
	dividendScoreFloor        = 60.0
	dividendCurrentRatioMin   = 1.2
	dividendTrailingPECeiling = 30.0
	dividendPriceToBookMax    = 8.0
	dividendTechConfirmMin    = 2 // of 3

	dividendYieldExitFloor    = 0.015
	dividendPayoutExitCeiling = 0.90
	dividendDistressMin       = 2 // of 3
	dividendStopLossPct       = -30.0
	dividendReviewAfterDays   = 1825 // 5-year holding review
)

// dividendStabilityScore counts the stability sub-signals backing the payout.
func dividendStabilityScore(ctx *Context) int {
	f := ctx.Fundamental
	return countTrue(
		knownBelow(f.DebtToEquity, dividendLeverageMax),
		knownBetween(f.Beta, 0, dividendBetaMax),
		knownAbove(f.NetMargin, dividendNetMarginMin),
		knownAtLeast(f.FundamentalScore, dividendScoreFloor),
		knownAtLeast(f.CurrentRatio, dividendCurrentRatioMin),
	)
}

// dividendTechConfirmations counts the technical confirmations of a dividend
// entry.
func dividendTechConfirmations(ctx *Context) int {
	return countTrue(
		ctx.Signals.AboveSMA200,
		ctx.Technical.RSI14 >= 30 && ctx.Technical.RSI14 <= 70,
		!ctx.Signals.BelowLowerBand,
	)
}

// dividendDistressScore counts the financial-distress sub-signals on the exit
// side.
func dividendDistressScore(ctx *Context) int {
	f := ctx.Fundamental
	return countTrue(
		knownAbove(f.DebtToEquity, 2.0),
		knownBelow(f.CurrentRatio, 1.0),
		knownBelow(f.NetMargin, 0),
	)
}

func dividendStrategy() Strategy {
	return Strategy{
		Name: StrategyDividend,
		EntryConditions: []EntryCondition{
			{"dividendYieldFloor", func(ctx *Context) bool {
				return knownAtLeast(ctx.Fundamental.DividendYield, dividendYieldFloor)
			}},
			{"payoutRatioSustainable", func(ctx *Context) bool {
				p := ctx.Fundamental.PayoutRatio
				return p != nil && *p > 0 && *p <= dividendPayoutCeiling
			}},
			{"stabilityScoreMet", func(ctx *Context) bool {
				return dividendStabilityScore(ctx) >= dividendStabilityMin
			}},
			{"earningsNotDeclining", func(ctx *Context) bool {
				return knownAtLeast(ctx.Fundamental.EarningsGrowth, 0)
			}},
			{"boundedValuation", func(ctx *Context) bool {
				max := ctx.Config.MaxPlausiblePE
				return ratioBelowFiltered(ctx.Fundamental.TrailingPE, dividendTrailingPECeiling, max) &&
					ratioBelowFiltered(ctx.Fundamental.PriceToBook, dividendPriceToBookMax, max)
			}},
			{"technicalConfirmation", func(ctx *Context) bool {
				return dividendTechConfirmations(ctx) >= dividendTechConfirmMin
			}},
		},
		EntryScores: []ScoreFunc{
			{Name: "stabilityScore", Max: 5, Fn: dividendStabilityScore},
		},
		ExitConditions: []ExitCondition{
			{"yieldCompressed", func(ctx *Context, pos domain.Position) bool {
				return knownBelow(ctx.Fundamental.DividendYield, dividendYieldExitFloor)
			}},
			{"payoutUnsustainable", func(ctx *Context, pos domain.Position) bool {
				return knownAbove(ctx.Fundamental.PayoutRatio, dividendPayoutExitCeiling)
			}},
			{"financialDistress", func(ctx *Context, pos domain.Position) bool {
				return dividendDistressScore(ctx) >= dividendDistressMin
			}},
			{"stopLossHit", func(ctx *Context, pos domain.Position) bool {
				return pos.ProfitPercent() <= dividendStopLossPct
			}},
			{"severeBreakdown", func(ctx *Context, pos domain.Position) bool {
				return ctx.Signals.DeathCross && ctx.Signals.RSIOversold
			}},
			{"holdingPeriodReview", func(ctx *Context, pos domain.Position) bool {
				return pos.HoldingDays(ctx.Now) >= dividendReviewAfterDays
			}},
		},
		ExitScores: []ScoreFunc{
			{Name: "distressScore", Max: 3, Fn: dividendDistressScore},
		},
	}
}
