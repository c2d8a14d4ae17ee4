// Package indicators rebuilds the end-of-day technical snapshot for a symbol
// from its daily price history. It is the in-process stand-in for the
// external indicator pipeline: the scheduler runs it once per trading day and
// everything downstream consumes the resulting TechnicalData record.
package indicators

import (
	"fmt"

	"github.com/vtbalaji/tradeidea-go/internal/domain"
	"github.com/vtbalaji/tradeidea-go/pkg/formulas"
)

// Minimum history needed for the mandatory indicators (SMA200 dominates).
const minHistory = 200

const (
	supertrendPeriod     = 10
	supertrendMultiplier = 3.0
	bollingerPeriod      = 20
	bollingerStdDev      = 2.0
	bollingerHistoryDays = 3
)

// BuildSnapshot computes a TechnicalData record from daily prices, oldest
// first. Mandatory indicators require at least 200 closes; optional ones
// (Supertrend) degrade to nil with shorter history.
func BuildSnapshot(symbol string, prices []domain.DailyPrice) (*domain.TechnicalData, error) {
	if len(prices) < minHistory {
		return nil, fmt.Errorf("insufficient history for %s: %d closes, need %d", symbol, len(prices), minHistory)
	}

	closes := make([]float64, len(prices))
	highs := make([]float64, len(prices))
	lows := make([]float64, len(prices))
	for i, p := range prices {
		closes[i] = p.Close
		highs[i] = p.High
		lows[i] = p.Low
	}
	last := prices[len(prices)-1]

	sma20 := formulas.LastSMA(closes, 20)
	sma50 := formulas.LastSMA(closes, 50)
	sma200 := formulas.LastSMA(closes, 200)
	ema9 := formulas.LastEMA(closes, 9)
	ema21 := formulas.LastEMA(closes, 21)
	ema50 := formulas.LastEMA(closes, 50)
	rsi := formulas.LastRSI(closes, 14)
	macd := formulas.CalculateMACD(closes)
	bands := formulas.CalculateBollingerBands(closes, bollingerPeriod, bollingerStdDev)
	if sma20 == nil || sma50 == nil || sma200 == nil || ema9 == nil || ema21 == nil ||
		ema50 == nil || rsi == nil || macd == nil || bands == nil {
		return nil, fmt.Errorf("indicator computation failed for %s", symbol)
	}

	t := &domain.TechnicalData{
		Symbol:        symbol,
		LastPrice:     last.Close,
		ChangePercent: changePercent(closes),
		SMA20:         *sma20,
		SMA50:         *sma50,
		SMA100:        formulas.LastSMA(closes, 100),
		SMA200:        *sma200,
		EMA9:          *ema9,
		EMA21:         *ema21,
		EMA50:         *ema50,
		RSI14:         *rsi,
		BBUpper:       bands.Upper,
		BBMiddle:      bands.Middle,
		BBLower:       bands.Lower,
		MACD:          macd.MACD,
		MACDSignal:    macd.Signal,
		MACDHistogram: macd.Histogram,
		Date:          last.Date,
	}

	if last.Volume != nil {
		t.Volume = *last.Volume
	}
	t.AvgVolume20 = averageVolume(prices, 20)

	if st := formulas.CalculateSupertrend(highs, lows, closes, supertrendPeriod, supertrendMultiplier); st != nil {
		t.Supertrend = &st.Value
		dir := domain.SupertrendBearish
		if st.Bullish {
			dir = domain.SupertrendBullish
		}
		t.SupertrendDirection = &dir
	}

	t.BollingerPositionHistory = bollingerHistory(closes)

	return t, nil
}

// changePercent is the day-over-day close change in percent.
func changePercent(closes []float64) float64 {
	n := len(closes)
	if n < 2 || closes[n-2] == 0 {
		return 0
	}
	return (closes[n-1] - closes[n-2]) / closes[n-2] * 100
}

// averageVolume is the mean volume over the trailing window; days without a
// reported volume are skipped.
func averageVolume(prices []domain.DailyPrice, window int) int64 {
	start := len(prices) - window
	if start < 0 {
		start = 0
	}

	var sum, count int64
	for _, p := range prices[start:] {
		if p.Volume != nil {
			sum += *p.Volume
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / count
}

// bollingerHistory computes the close's position within the bands for the
// trailing few sessions, oldest first.
func bollingerHistory(closes []float64) []float64 {
	if len(closes) < bollingerPeriod+bollingerHistoryDays {
		return nil
	}

	history := make([]float64, 0, bollingerHistoryDays)
	for i := bollingerHistoryDays - 1; i >= 0; i-- {
		window := closes[:len(closes)-i]
		bands := formulas.CalculateBollingerBands(window, bollingerPeriod, bollingerStdDev)
		if bands == nil {
			return nil
		}
		history = append(history, formulas.BollingerPosition(window[len(window)-1], *bands))
	}
	return history
}
