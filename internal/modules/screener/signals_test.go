package screener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

// bullishSnapshot is a stock in a confirmed uptrend with volume backing.
func bullishSnapshot() domain.TechnicalData {
	return domain.TechnicalData{
		Symbol:        "RELIANCE",
		LastPrice:     2300,
		ChangePercent: 1.5,
		SMA20:         2250,
		SMA50:         2280,
		SMA100:        domain.Float64Ptr(2150),
		SMA200:        2100,
		EMA9:          2290,
		EMA21:         2270,
		EMA50:         2240,
		RSI14:         58,
		BBUpper:       2350,
		BBMiddle:      2250,
		BBLower:       2150,
		MACD:          10,
		MACDSignal:    6,
		MACDHistogram: 4,
		Volume:        1_600_000,
		AvgVolume20:   1_000_000,
		Supertrend:          domain.Float64Ptr(2180),
		SupertrendDirection: domain.StringPtr(domain.SupertrendBullish),
		OverallSignal:       domain.StringPtr(domain.SignalBuy),
		Date:                "2026-08-28",
	}
}

// bearishSnapshot is a stock in a broken downtrend on collapsing volume.
func bearishSnapshot() domain.TechnicalData {
	return domain.TechnicalData{
		Symbol:        "WEAKCO",
		LastPrice:     900,
		ChangePercent: -2.5,
		SMA20:         950,
		SMA50:         980,
		SMA100:        domain.Float64Ptr(990),
		SMA200:        1000,
		EMA9:          920,
		EMA21:         940,
		EMA50:         960,
		RSI14:         28,
		BBUpper:       1000,
		BBMiddle:      955,
		BBLower:       910,
		MACD:          -5,
		MACDSignal:    -2,
		MACDHistogram: -3,
		Volume:        200_000,
		AvgVolume20:   1_000_000,
		Supertrend:          domain.Float64Ptr(950),
		SupertrendDirection: domain.StringPtr(domain.SupertrendBearish),
		Date:                "2026-08-28",
	}
}

func TestBuildSignals_Bullish(t *testing.T) {
	s := BuildSignals(bullishSnapshot())

	assert.True(t, s.AboveSMA20)
	assert.True(t, s.AboveSMA50)
	assert.True(t, s.AboveSMA200)
	require.NotNil(t, s.AboveSMA100)
	assert.True(t, *s.AboveSMA100)

	assert.True(t, s.AboveEMA9)
	assert.True(t, s.AboveEMA21)
	assert.True(t, s.AboveEMA50)
	assert.True(t, s.EMA9AboveEMA21)

	assert.True(t, s.GoldenCross)
	assert.False(t, s.DeathCross)

	assert.True(t, s.MACDBullish)
	assert.True(t, s.MACDHistogramPositive)

	assert.False(t, s.RSIOverbought)
	assert.False(t, s.RSIOversold)
	assert.True(t, s.RSIBullish)

	assert.True(t, s.VolumeSpike, "1.6x average volume should register as a spike")
	assert.True(t, s.VolumeAboveAverage)

	assert.False(t, s.AboveUpperBand)
	assert.False(t, s.BelowLowerBand)
	assert.True(t, s.PositiveChange)

	require.NotNil(t, s.AboveSupertrend)
	assert.True(t, *s.AboveSupertrend)
	require.NotNil(t, s.SupertrendBullish)
	assert.True(t, *s.SupertrendBullish)
}

func TestBuildSignals_Bearish(t *testing.T) {
	s := BuildSignals(bearishSnapshot())

	assert.False(t, s.AboveSMA20)
	assert.False(t, s.AboveSMA50)
	assert.False(t, s.AboveSMA200)

	assert.False(t, s.GoldenCross)
	assert.True(t, s.DeathCross)

	assert.False(t, s.MACDBullish)
	assert.False(t, s.MACDHistogramPositive)

	assert.True(t, s.RSIOversold)
	assert.False(t, s.RSIBullish)

	assert.False(t, s.VolumeSpike)
	assert.False(t, s.VolumeAboveAverage)

	assert.True(t, s.BelowLowerBand)
	assert.False(t, s.PositiveChange)

	require.NotNil(t, s.AboveSupertrend)
	assert.False(t, *s.AboveSupertrend)
	require.NotNil(t, s.SupertrendBullish)
	assert.False(t, *s.SupertrendBullish)
}

func TestBuildSignals_OptionalIndicatorsAbsent(t *testing.T) {
	tech := bullishSnapshot()
	tech.SMA100 = nil
	tech.Supertrend = nil
	tech.SupertrendDirection = nil

	s := BuildSignals(tech)

	assert.Nil(t, s.AboveSMA100, "missing SMA100 must propagate as unknown, not false")
	assert.Nil(t, s.AboveSupertrend)
	assert.Nil(t, s.SupertrendBullish)
}

func TestBuildSignals_ZeroAverageVolume(t *testing.T) {
	tech := bullishSnapshot()
	tech.AvgVolume20 = 0

	s := BuildSignals(tech)

	assert.False(t, s.VolumeSpike, "no volume baseline means no spike signal")
	assert.False(t, s.VolumeAboveAverage)
}

func TestBuildSignals_ExactBoundaries(t *testing.T) {
	tech := bullishSnapshot()
	tech.RSI14 = 70
	tech.LastPrice = tech.SMA20 // exactly at the average

	s := BuildSignals(tech)

	assert.False(t, s.RSIOverbought, "RSI exactly 70 is not overbought")
	assert.False(t, s.AboveSMA20, "price exactly at the average is not above it")
}
