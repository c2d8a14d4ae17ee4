package exits

import "github.com/vtbalaji/tradeidea-go/internal/domain"

// Verdict tiers, strongest sell first.
const (
	VerdictStrongSell = "STRONG SELL"
	VerdictSell       = "SELL"
	VerdictHold       = "HOLD"
	VerdictBuy        = "BUY"
	VerdictStrongBuy  = "STRONG BUY"
)

// bollingerBlowoffLevel: last three daily closes pinned this high in the
// bands reads as an exhaustion move.
const bollingerBlowoffLevel = 0.95

// OverallVerdict derives a single tiered verdict for a position's symbol from
// its technical snapshot. It is a decision tree, not a weighted score:
// branches are evaluated top-down and the first match wins.
//
// Branch order: broken trend structure first (STRONG SELL, SELL), then
// full-confirmation strength (STRONG BUY), then partial strength (BUY),
// then HOLD.
func OverallVerdict(tech domain.TechnicalData) string {
	price := tech.LastPrice
	histogramNegative := tech.MACDHistogram < 0
	volumeAboveAverage := tech.AvgVolume20 > 0 && tech.Volume >= tech.AvgVolume20

	// Trend structure broken on every horizon with momentum confirming down.
	if price < tech.SMA200 && price < tech.SMA50 && histogramNegative && tech.RSI14 < 40 {
		return VerdictStrongSell
	}

	// Medium-term trend lost with momentum fading.
	if price < tech.SMA50 && (histogramNegative || tech.RSI14 < 45) {
		return VerdictSell
	}

	// Blow-off: overbought RSI while price pinned to the upper band for the
	// last three sessions.
	if tech.RSI14 > 75 && bollingerPinned(tech.BollingerPositionHistory) {
		return VerdictSell
	}

	// Full confirmation: stacked above every moving average, positive
	// momentum, healthy (not overheated) RSI, volume participation, and the
	// Supertrend — when known — agreeing.
	if price > tech.SMA200 && price > tech.SMA50 && price > tech.SMA20 &&
		!histogramNegative && tech.RSI14 >= 50 && tech.RSI14 <= 70 &&
		volumeAboveAverage && supertrendAgrees(tech) {
		return VerdictStrongBuy
	}

	// Long-term uptrend with positive momentum.
	if price > tech.SMA200 && !histogramNegative && tech.RSI14 >= 45 && tech.RSI14 <= 70 {
		return VerdictBuy
	}

	return VerdictHold
}

// bollingerPinned reports whether the last three Bollinger positions are all
// at the exhaustion level. Fewer than three observations never pins.
func bollingerPinned(history []float64) bool {
	if len(history) < 3 {
		return false
	}
	for _, pos := range history[len(history)-3:] {
		if pos < bollingerBlowoffLevel {
			return false
		}
	}
	return true
}

// supertrendAgrees reports whether the Supertrend supports a strong-buy read.
// An unknown Supertrend does not veto.
func supertrendAgrees(tech domain.TechnicalData) bool {
	if tech.SupertrendDirection == nil {
		return true
	}
	return *tech.SupertrendDirection == domain.SupertrendBullish
}
