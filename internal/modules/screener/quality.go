package screener

import "github.com/vtbalaji/tradeidea-go/internal/domain"

// Thresholds of the quality strategy: durable, low-beta compounders bought at
// a sane price and held for years. The widest profit target (100%) and the
// longest review clock after momentum's.
const (
	qualityNetMarginMin       = 0.10
	qualityOperatingMarginMin = 0.15
	qualityScoreFloor         = 70.0
	qualityDebtToEquityMax    = 1.0
	qualityScoreMin           = 5 // of 7
	qualityGrowthMin          = 0.10
	qualityTechConfirmMin     = 3 // of 5
	qualityTrailingPECeiling  = 40.0
	qualityPEGCeiling         = 3.0
	qualityPriceToBookCeiling = 10.0

	qualityProfitTargetPct    = 100.0
	qualityDeteriorationMin   = 2 // of 4
	qualityScoreExitFloor     = 60.0
	qualityMarginExitFloor    = 0.05
	qualityROEExitFloor       = 0.10
	qualityLeverageExitMax    = 2.0
	qualityOvervaluedPE       = 60.0
	qualityStopLossPct        = -25.0
	qualityReviewAfterDays    = 1095 // 3-year holding review
)

// qualityScore counts the fundamental quality sub-signals.
func qualityScore(ctx *Context) int {
	f := ctx.Fundamental
	goodRating := f.FundamentalRating != nil &&
		(*f.FundamentalRating == domain.RatingExcellent || *f.FundamentalRating == domain.RatingGood)
	return countTrue(
		knownAbove(f.NetMargin, qualityNetMarginMin),
		knownAbove(f.OperatingMargin, qualityOperatingMarginMin),
		goodRating,
		knownAtLeast(f.FundamentalScore, qualityScoreFloor),
		knownBelow(f.DebtToEquity, qualityDebtToEquityMax),
		knownAbove(f.EarningsGrowth, 0),
		knownAbove(f.DividendYield, 0),
	)
}

// qualityTechConfirmations counts the technical confirmations of a quality
// entry.
func qualityTechConfirmations(ctx *Context) int {
	return countTrue(
		ctx.Signals.AboveSMA200,
		ctx.Signals.AboveSMA50,
		ctx.Technical.RSI14 >= 40 && ctx.Technical.RSI14 <= 70,
		ctx.Signals.MACDBullish,
		ctx.Signals.AboveEMA50,
	)
}

// qualityDeteriorationScore counts the deterioration sub-signals on the exit
// side.
func qualityDeteriorationScore(ctx *Context) int {
	f := ctx.Fundamental
	return countTrue(
		knownBelow(f.FundamentalScore, qualityScoreExitFloor),
		knownBelow(f.NetMargin, qualityMarginExitFloor),
		knownBelow(f.ReturnOnEquity, qualityROEExitFloor),
		knownAbove(f.DebtToEquity, qualityLeverageExitMax),
	)
}

func qualityStrategy() Strategy {
	return Strategy{
		Name: StrategyQuality,
		EntryConditions: []EntryCondition{
			{"qualityScoreMet", func(ctx *Context) bool {
				return qualityScore(ctx) >= qualityScoreMin
			}},
			{"lowBeta", func(ctx *Context) bool {
				return knownBetween(ctx.Fundamental.Beta, 0, 1)
			}},
			{"doubleDigitGrowth", func(ctx *Context) bool {
				return knownAtLeast(ctx.Fundamental.EarningsGrowth, qualityGrowthMin) &&
					knownAtLeast(ctx.Fundamental.QuarterlyEarningsGrowth, qualityGrowthMin)
			}},
			{"technicalConfirmation", func(ctx *Context) bool {
				return qualityTechConfirmations(ctx) >= qualityTechConfirmMin
			}},
			{"boundedValuation", func(ctx *Context) bool {
				max := ctx.Config.MaxPlausiblePE
				return ratioBelowFiltered(ctx.Fundamental.TrailingPE, qualityTrailingPECeiling, max) &&
					ratioBelowFiltered(ctx.Fundamental.PEGRatio, qualityPEGCeiling, max) &&
					ratioBelowFiltered(ctx.Fundamental.PriceToBook, qualityPriceToBookCeiling, max)
			}},
		},
		EntryScores: []ScoreFunc{
			{Name: "qualityScore", Max: 7, Fn: qualityScore},
			{Name: "technicalConfirmations", Max: 5, Fn: qualityTechConfirmations},
		},
		ExitConditions: []ExitCondition{
			{"profitTargetReached", func(ctx *Context, pos domain.Position) bool {
				return pos.ProfitPercent() >= qualityProfitTargetPct
			}},
			{"qualityDeterioration", func(ctx *Context, pos domain.Position) bool {
				return qualityDeteriorationScore(ctx) >= qualityDeteriorationMin
			}},
			{"growthTurnedNegative", func(ctx *Context, pos domain.Position) bool {
				return knownBelow(ctx.Fundamental.EarningsGrowth, 0) ||
					knownBelow(ctx.Fundamental.RevenueGrowth, 0)
			}},
			{"overvalued", func(ctx *Context, pos domain.Position) bool {
				return ratioAboveFiltered(ctx.Fundamental.TrailingPE, qualityOvervaluedPE, ctx.Config.MaxPlausiblePE)
			}},
			{"technicalBreakdown", func(ctx *Context, pos domain.Position) bool {
				return ctx.Signals.DeathCross && !ctx.Signals.AboveSMA200
			}},
			{"stopLossHit", func(ctx *Context, pos domain.Position) bool {
				return pos.ProfitPercent() <= qualityStopLossPct
			}},
			{"ratingDowngraded", func(ctx *Context, pos domain.Position) bool {
				r := ctx.Fundamental.FundamentalRating
				return r != nil && (*r == domain.RatingWeak || *r == domain.RatingPoor)
			}},
			{"holdingPeriodReview", func(ctx *Context, pos domain.Position) bool {
				return pos.HoldingDays(ctx.Now) >= qualityReviewAfterDays
			}},
		},
		ExitScores: []ScoreFunc{
			{Name: "deteriorationScore", Max: 4, Fn: qualityDeteriorationScore},
		},
	}
}
