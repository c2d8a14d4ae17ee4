// Package formulas provides the shared quantitative building blocks used by
// the screener and risk modules: descriptive statistics over return series and
// thin wrappers around go-talib for the common technical indicators.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the annualization base for daily return series.
const TradingDaysPerYear = 252

// Mean calculates the arithmetic mean of a slice of float64 values.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64 values.
// Returns 0 for fewer than two data points.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Variance calculates the sample variance of a slice of float64 values.
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}

// AnnualizedVolatility calculates annualized volatility from daily returns,
// expressed as a percentage.
//
// Formula: StdDev(daily returns) × sqrt(252) × 100
func AnnualizedVolatility(dailyReturns []float64) float64 {
	if len(dailyReturns) < 2 {
		return 0
	}
	return StdDev(dailyReturns) * math.Sqrt(TradingDaysPerYear) * 100
}

// AnnualizedReturn compounds a daily return series geometrically and scales it
// to a full trading year, expressed as a percentage.
//
// Formula: (∏(1 + r))^(252/N) − 1, × 100
func AnnualizedReturn(dailyReturns []float64) float64 {
	if len(dailyReturns) == 0 {
		return 0
	}

	compound := 1.0
	for _, r := range dailyReturns {
		compound *= 1 + r
	}
	if compound <= 0 {
		// Total wipe-out; annualizing a non-positive compound is undefined.
		return -100
	}

	annualized := math.Pow(compound, TradingDaysPerYear/float64(len(dailyReturns))) - 1
	return annualized * 100
}

// CalculateReturns converts a price series to simple periodic returns.
// Returns[i] = (Price[i+1] - Price[i]) / Price[i]
func CalculateReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
		}
	}

	return returns
}

// Correlation calculates the Pearson correlation coefficient between two
// equally sized datasets. Returns 0 on mismatched or empty input.
func Correlation(x, y []float64) float64 {
	if len(x) == 0 || len(x) != len(y) {
		return 0
	}
	return stat.Correlation(x, y, nil)
}
