package formulas

import (
	"math"

	"github.com/markcheno/go-talib"
)

// BollingerBands represents Bollinger Bands values at a point in time.
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// MACDResult holds the MACD line, signal line and histogram values.
type MACDResult struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// SupertrendResult holds the Supertrend level and direction flag.
type SupertrendResult struct {
	Value   float64 `json:"value"`
	Bullish bool    `json:"bullish"`
}

// LastSMA returns the latest simple moving average over the given period,
// or nil with insufficient data.
func LastSMA(closes []float64, period int) *float64 {
	if len(closes) < period {
		return nil
	}
	out := talib.Sma(closes, period)
	return lastValid(out)
}

// LastEMA returns the latest exponential moving average over the given period,
// or nil with insufficient data.
func LastEMA(closes []float64, period int) *float64 {
	if len(closes) < period {
		return nil
	}
	out := talib.Ema(closes, period)
	return lastValid(out)
}

// LastRSI returns the latest Relative Strength Index (0-100) over the given
// period, or nil with insufficient data.
func LastRSI(closes []float64, period int) *float64 {
	if len(closes) < period+1 {
		return nil
	}
	out := talib.Rsi(closes, period)
	return lastValid(out)
}

// CalculateMACD returns the latest MACD values using the standard 12/26/9
// configuration, or nil with insufficient data.
func CalculateMACD(closes []float64) *MACDResult {
	if len(closes) < 35 {
		return nil
	}
	macd, signal, hist := talib.Macd(closes, 12, 26, 9)
	m, s, h := lastValid(macd), lastValid(signal), lastValid(hist)
	if m == nil || s == nil || h == nil {
		return nil
	}
	return &MACDResult{MACD: *m, Signal: *s, Histogram: *h}
}

// CalculateBollingerBands returns the latest Bollinger Bands (SMA basis),
// or nil with insufficient data.
func CalculateBollingerBands(closes []float64, period int, stdDevMultiplier float64) *BollingerBands {
	if len(closes) < period {
		return nil
	}
	upper, middle, lower := talib.BBands(closes, period, stdDevMultiplier, stdDevMultiplier, talib.SMA)
	u, m, l := lastValid(upper), lastValid(middle), lastValid(lower)
	if u == nil || m == nil || l == nil {
		return nil
	}
	return &BollingerBands{Upper: *u, Middle: *m, Lower: *l}
}

// BollingerPosition returns where price sits within the bands:
// 0.0 at the lower band, 1.0 at the upper band, clamped to [0, 1].
func BollingerPosition(price float64, bands BollingerBands) float64 {
	width := bands.Upper - bands.Lower
	if width == 0 {
		return 0.5
	}
	pos := (price - bands.Lower) / width
	return math.Max(0, math.Min(1, pos))
}

// CalculateSupertrend computes the Supertrend level from OHLC data using the
// common 10-period ATR with a multiplier of 3. Returns nil with insufficient
// data.
//
// Supertrend bands:
//
//	basic upper = (high + low)/2 + multiplier × ATR
//	basic lower = (high + low)/2 − multiplier × ATR
//
// The active band flips when the close crosses it; price above the active
// band is bullish, below is bearish.
func CalculateSupertrend(highs, lows, closes []float64, period int, multiplier float64) *SupertrendResult {
	n := len(closes)
	if n < period+1 || len(highs) != n || len(lows) != n {
		return nil
	}

	atr := talib.Atr(highs, lows, closes, period)

	finalUpper := make([]float64, n)
	finalLower := make([]float64, n)
	supertrend := make([]float64, n)
	bullish := make([]bool, n)

	for i := period; i < n; i++ {
		mid := (highs[i] + lows[i]) / 2
		basicUpper := mid + multiplier*atr[i]
		basicLower := mid - multiplier*atr[i]

		if i == period {
			finalUpper[i] = basicUpper
			finalLower[i] = basicLower
			supertrend[i] = basicUpper
			bullish[i] = closes[i] > basicUpper
			continue
		}

		// Bands only ratchet in the trend direction.
		if basicUpper < finalUpper[i-1] || closes[i-1] > finalUpper[i-1] {
			finalUpper[i] = basicUpper
		} else {
			finalUpper[i] = finalUpper[i-1]
		}
		if basicLower > finalLower[i-1] || closes[i-1] < finalLower[i-1] {
			finalLower[i] = basicLower
		} else {
			finalLower[i] = finalLower[i-1]
		}

		if bullish[i-1] {
			if closes[i] < finalLower[i] {
				bullish[i] = false
				supertrend[i] = finalUpper[i]
			} else {
				bullish[i] = true
				supertrend[i] = finalLower[i]
			}
		} else {
			if closes[i] > finalUpper[i] {
				bullish[i] = true
				supertrend[i] = finalLower[i]
			} else {
				bullish[i] = false
				supertrend[i] = finalUpper[i]
			}
		}
	}

	return &SupertrendResult{Value: supertrend[n-1], Bullish: bullish[n-1]}
}

// lastValid returns a pointer to the final value of a talib output series,
// or nil when the series is empty or the value is NaN.
func lastValid(series []float64) *float64 {
	if len(series) == 0 {
		return nil
	}
	v := series[len(series)-1]
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
