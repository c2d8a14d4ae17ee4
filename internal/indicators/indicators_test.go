package indicators

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

// syntheticHistory builds count days of prices trending by step per day, with
// a fixed 1-point intraday range and constant volume.
func syntheticHistory(start, step float64, count int) []domain.DailyPrice {
	prices := make([]domain.DailyPrice, count)
	volume := int64(1_000_000)
	for i := range prices {
		c := start + float64(i)*step
		prices[i] = domain.DailyPrice{
			Date:   fmt.Sprintf("2026-%02d-%02d", 1+i/28, 1+i%28),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: &volume,
		}
	}
	return prices
}

func TestBuildSnapshot_InsufficientHistory(t *testing.T) {
	_, err := BuildSnapshot("RELIANCE", syntheticHistory(100, 1, 199))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient history")
}

func TestBuildSnapshot_Uptrend(t *testing.T) {
	prices := syntheticHistory(100, 1, 250)

	snap, err := BuildSnapshot("RELIANCE", prices)
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE", snap.Symbol)
	assert.Equal(t, 349.0, snap.LastPrice)
	assert.Equal(t, prices[len(prices)-1].Date, snap.Date)

	// In a steady uptrend every average sits below the last close, shorter
	// windows above longer ones.
	assert.Less(t, snap.SMA20, snap.LastPrice)
	assert.Greater(t, snap.SMA20, snap.SMA50)
	assert.Greater(t, snap.SMA50, snap.SMA200)
	require.NotNil(t, snap.SMA100)
	assert.Greater(t, *snap.SMA100, snap.SMA200)
	assert.Greater(t, snap.EMA9, snap.EMA21)

	// Close 348 → 349 is a +0.287% day.
	assert.InDelta(t, 100.0/348.0, snap.ChangePercent, 1e-6)

	assert.Greater(t, snap.MACD, 0.0)
	assert.Greater(t, snap.RSI14, 70.0, "an unbroken uptrend pins RSI high")
	assert.True(t, snap.BBLower < snap.BBMiddle && snap.BBMiddle < snap.BBUpper)

	assert.Equal(t, int64(1_000_000), snap.Volume)
	assert.Equal(t, int64(1_000_000), snap.AvgVolume20)

	require.NotNil(t, snap.Supertrend)
	require.NotNil(t, snap.SupertrendDirection)
	assert.Equal(t, domain.SupertrendBullish, *snap.SupertrendDirection)
	assert.Less(t, *snap.Supertrend, snap.LastPrice)

	require.Len(t, snap.BollingerPositionHistory, 3)
	for _, pos := range snap.BollingerPositionHistory {
		assert.GreaterOrEqual(t, pos, 0.0)
		assert.LessOrEqual(t, pos, 1.0)
	}
}

func TestBuildSnapshot_Downtrend(t *testing.T) {
	snap, err := BuildSnapshot("WEAKCO", syntheticHistory(600, -1, 250))
	require.NoError(t, err)

	assert.Less(t, snap.LastPrice, snap.SMA200)
	assert.Less(t, snap.MACD, 0.0)
	assert.Less(t, snap.RSI14, 30.0)
	require.NotNil(t, snap.SupertrendDirection)
	assert.Equal(t, domain.SupertrendBearish, *snap.SupertrendDirection)
	assert.Greater(t, *snap.Supertrend, snap.LastPrice)
}

func TestBuildSnapshot_MissingVolume(t *testing.T) {
	prices := syntheticHistory(100, 1, 250)
	for i := range prices {
		prices[i].Volume = nil
	}

	snap, err := BuildSnapshot("NOVOL", prices)
	require.NoError(t, err)

	assert.Equal(t, int64(0), snap.Volume)
	assert.Equal(t, int64(0), snap.AvgVolume20)
}

func TestBuildSnapshot_FlatSeries(t *testing.T) {
	snap, err := BuildSnapshot("FLAT", syntheticHistory(100, 0, 250))
	require.NoError(t, err)

	assert.Equal(t, 100.0, snap.LastPrice)
	assert.InDelta(t, 100.0, snap.SMA200, 1e-9)
	assert.InDelta(t, 0.0, snap.ChangePercent, 1e-9)
	assert.InDelta(t, 0.0, snap.MACD, 1e-6)
	assert.InDelta(t, snap.BBUpper, snap.BBLower, 1e-6, "no variance collapses the bands")
}
