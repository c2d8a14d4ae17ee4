package screener

import "github.com/vtbalaji/tradeidea-go/internal/domain"

// Thresholds of the value strategy. The entry side hunts for cheap,
// profitable, conservatively financed companies that the market has not
// stretched; the exit side takes profit at +50% or bails on deteriorating
// fundamentals.
const (
	valueTrailingPECeiling   = 25.0
	valueForwardPECeiling    = 20.0
	valuePriceToBookCeiling  = 5.0
	valuePriceToSalesCeiling = 5.0
	valueROEFloor            = 0.10
	valueDebtToEquityCeiling = 1.0
	valueMaxExtensionOverSMA = 1.10 // price at most 10% above SMA200
	valueTechConfirmMin      = 2    // of 3

	valueProfitTargetPct      = 50.0
	valueOvervaluedPE         = 40.0
	valueFundamentalScoreExit = 50.0
	valueStopLossPct          = -15.0
	valueReviewAfterDays      = 730 // 2-year holding review
)

// valueTechConfirmations counts the technical confirmations of the value
// entry: long-term uptrend, RSI in the accumulation zone, price not pressing
// the upper Bollinger Band.
func valueTechConfirmations(ctx *Context) int {
	return countTrue(
		ctx.Signals.AboveSMA200,
		ctx.Technical.RSI14 >= 30 && ctx.Technical.RSI14 <= 60,
		!ctx.Signals.AboveUpperBand,
	)
}

func valueStrategy() Strategy {
	return Strategy{
		Name: StrategyValue,
		EntryConditions: []EntryCondition{
			{"trailingPEBelowCeiling", func(ctx *Context) bool {
				return ratioBelowFiltered(ctx.Fundamental.TrailingPE, valueTrailingPECeiling, ctx.Config.MaxPlausiblePE)
			}},
			{"forwardPEBelowCeiling", func(ctx *Context) bool {
				// Unreliable forward estimates are ignored rather than failed.
				return ratioBelowFiltered(ctx.Fundamental.ForwardPE, valueForwardPECeiling, ctx.Config.MaxPlausiblePE)
			}},
			{"priceToBookBelowCeiling", func(ctx *Context) bool {
				return ratioBelowFiltered(ctx.Fundamental.PriceToBook, valuePriceToBookCeiling, ctx.Config.MaxPlausiblePE)
			}},
			{"priceToSalesBelowCeiling", func(ctx *Context) bool {
				return ratioBelowFiltered(ctx.Fundamental.PriceToSales, valuePriceToSalesCeiling, ctx.Config.MaxPlausiblePE)
			}},
			{"profitabilityFloor", func(ctx *Context) bool {
				return knownAbove(ctx.Fundamental.ReturnOnEquity, valueROEFloor)
			}},
			{"lowLeverage", func(ctx *Context) bool {
				return knownBelow(ctx.Fundamental.DebtToEquity, valueDebtToEquityCeiling)
			}},
			{"priceNotExtended", func(ctx *Context) bool {
				return ctx.Technical.LastPrice <= ctx.Technical.SMA200*valueMaxExtensionOverSMA
			}},
			{"technicalConfirmation", func(ctx *Context) bool {
				return valueTechConfirmations(ctx) >= valueTechConfirmMin
			}},
		},
		EntryScores: []ScoreFunc{
			{Name: "technicalConfirmations", Max: 3, Fn: valueTechConfirmations},
		},
		ExitConditions: []ExitCondition{
			{"profitTargetReached", func(ctx *Context, pos domain.Position) bool {
				return pos.ProfitPercent() >= valueProfitTargetPct
			}},
			{"overvalued", func(ctx *Context, pos domain.Position) bool {
				return ratioAboveFiltered(ctx.Fundamental.TrailingPE, valueOvervaluedPE, ctx.Config.MaxPlausiblePE)
			}},
			{"fundamentalScoreDropped", func(ctx *Context, pos domain.Position) bool {
				return knownBelow(ctx.Fundamental.FundamentalScore, valueFundamentalScoreExit)
			}},
			{"stopLossHit", func(ctx *Context, pos domain.Position) bool {
				return pos.ProfitPercent() <= valueStopLossPct
			}},
			{"deathCross", func(ctx *Context, pos domain.Position) bool {
				return ctx.Signals.DeathCross
			}},
			{"holdingPeriodReview", func(ctx *Context, pos domain.Position) bool {
				return pos.HoldingDays(ctx.Now) >= valueReviewAfterDays
			}},
		},
	}
}
