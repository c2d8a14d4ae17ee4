// Package screener implements the multi-strategy rule engine that decides,
// per stock, whether it qualifies for entry or exit under five investing
// philosophies: value, growth, momentum, quality and dividend.
//
// All evaluation is pure and stateless: signals are derived once from the
// technical snapshot and shared across strategies, every strategy is a data
// table of named predicates, and a missing input degrades the predicate to
// false instead of raising an error.
package screener

import (
	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

// TechnicalSignals is the normalized set of boolean signals derived from a
// TechnicalData snapshot. Signals over optional indicators (SMA100,
// Supertrend) are pointers: nil means "unknown", which downstream conditions
// must treat as unknown rather than false.
type TechnicalSignals struct {
	AboveSMA20  bool  `json:"above_sma20"`
	AboveSMA50  bool  `json:"above_sma50"`
	AboveSMA100 *bool `json:"above_sma100,omitempty"`
	AboveSMA200 bool  `json:"above_sma200"`

	AboveEMA9  bool `json:"above_ema9"`
	AboveEMA21 bool `json:"above_ema21"`
	AboveEMA50 bool `json:"above_ema50"`

	// EMA9AboveEMA21 is the short-term crossover state used as the fast
	// trend signal by the growth and momentum tables.
	EMA9AboveEMA21 bool `json:"ema9_above_ema21"`

	GoldenCross bool `json:"golden_cross"` // SMA50 above SMA200
	DeathCross  bool `json:"death_cross"`  // SMA50 below SMA200

	MACDBullish           bool `json:"macd_bullish"` // MACD above its signal line
	MACDHistogramPositive bool `json:"macd_histogram_positive"`

	RSIOverbought bool `json:"rsi_overbought"` // RSI > 70
	RSIOversold   bool `json:"rsi_oversold"`   // RSI < 30
	RSIBullish    bool `json:"rsi_bullish"`    // RSI > 50

	VolumeSpike        bool `json:"volume_spike"`         // volume ≥ 1.5× 20-day average
	VolumeAboveAverage bool `json:"volume_above_average"` // volume ≥ 20-day average

	AboveUpperBand bool `json:"above_upper_band"`
	BelowLowerBand bool `json:"below_lower_band"`

	PositiveChange bool `json:"positive_change"` // day-over-day close change > 0

	AboveSupertrend   *bool `json:"above_supertrend,omitempty"`
	SupertrendBullish *bool `json:"supertrend_bullish,omitempty"`
}

// BuildSignals derives the normalized signal set from one technical snapshot.
// Pure, total function: it never fails, and optional indicators propagate as
// nil signals.
func BuildSignals(t domain.TechnicalData) TechnicalSignals {
	s := TechnicalSignals{
		AboveSMA20:  t.LastPrice > t.SMA20,
		AboveSMA50:  t.LastPrice > t.SMA50,
		AboveSMA200: t.LastPrice > t.SMA200,

		AboveEMA9:  t.LastPrice > t.EMA9,
		AboveEMA21: t.LastPrice > t.EMA21,
		AboveEMA50: t.LastPrice > t.EMA50,

		EMA9AboveEMA21: t.EMA9 > t.EMA21,

		GoldenCross: t.SMA50 > t.SMA200,
		DeathCross:  t.SMA50 < t.SMA200,

		MACDBullish:           t.MACD > t.MACDSignal,
		MACDHistogramPositive: t.MACDHistogram > 0,

		RSIOverbought: t.RSI14 > 70,
		RSIOversold:   t.RSI14 < 30,
		RSIBullish:    t.RSI14 > 50,

		AboveUpperBand: t.LastPrice > t.BBUpper,
		BelowLowerBand: t.LastPrice < t.BBLower,

		PositiveChange: t.ChangePercent > 0,
	}

	if t.AvgVolume20 > 0 {
		s.VolumeSpike = float64(t.Volume) >= 1.5*float64(t.AvgVolume20)
		s.VolumeAboveAverage = t.Volume >= t.AvgVolume20
	}

	if t.SMA100 != nil {
		above := t.LastPrice > *t.SMA100
		s.AboveSMA100 = &above
	}

	if t.Supertrend != nil {
		above := t.LastPrice > *t.Supertrend
		s.AboveSupertrend = &above
	}
	if t.SupertrendDirection != nil {
		bullish := *t.SupertrendDirection == domain.SupertrendBullish
		s.SupertrendBullish = &bullish
	}

	return s
}
