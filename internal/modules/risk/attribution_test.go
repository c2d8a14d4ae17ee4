package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtbalaji/tradeidea-go/internal/domain"
	"github.com/vtbalaji/tradeidea-go/internal/modules/exits"
)

func TestAttribution_BucketsBySector(t *testing.T) {
	report := Attribution(threePositions(), threeMetadata())

	energy, ok := report.BySector["Energy"]
	require.True(t, ok)
	assert.InDelta(t, 25_000, energy.Invested, 1e-9)
	assert.InDelta(t, 28_000, energy.Current, 1e-9)
	assert.InDelta(t, 3_000, energy.PnL, 1e-9)
	assert.InDelta(t, 12.0, energy.PnLPercent, 0.01)
	assert.Equal(t, 1, energy.Positions)

	it, ok := report.BySector["IT"]
	require.True(t, ok)
	assert.InDelta(t, 42_400, it.Invested, 1e-9)
	assert.InDelta(t, 43_000, it.Current, 1e-9)
	assert.InDelta(t, 600, it.PnL, 1e-9)
	assert.InDelta(t, 1.42, it.PnLPercent, 0.01)
	assert.Equal(t, 2, it.Positions)
}

func TestAttribution_BucketsByCapTier(t *testing.T) {
	report := Attribution(threePositions(), threeMetadata())

	large, ok := report.ByCapTier[CapLarge]
	require.True(t, ok)
	assert.Equal(t, 3, large.Positions, "all three symbols are large caps")
	assert.InDelta(t, 3_600, large.PnL, 1e-9)
}

func TestAttribution_WinnersAndLosers(t *testing.T) {
	report := Attribution(threePositions(), threeMetadata())

	require.Len(t, report.Winners, 2)
	assert.Equal(t, "RELIANCE", report.Winners[0].Symbol, "best return first")
	assert.InDelta(t, 12.0, report.Winners[0].PnLPercent, 0.01)
	assert.Equal(t, "INFY", report.Winners[1].Symbol)

	require.Len(t, report.Losers, 1)
	assert.Equal(t, "TCS", report.Losers[0].Symbol)
	assert.InDelta(t, -1_000, report.Losers[0].PnL, 1e-9)
}

func TestAttribution_RankingCapsAtFive(t *testing.T) {
	positions := make([]domain.Position, 8)
	for i := range positions {
		positions[i] = domain.Position{
			Symbol:       "W" + string(rune('A'+i)),
			Quantity:     1,
			EntryPrice:   100,
			CurrentPrice: 110 + float64(i), // all winners, strictly ranked
		}
	}

	report := Attribution(positions, nil)

	require.Len(t, report.Winners, 5)
	assert.Equal(t, "WH", report.Winners[0].Symbol, "largest gain leads")
	assert.Empty(t, report.Losers)
}

func TestAttribution_MissingMetadataLandsUnknown(t *testing.T) {
	report := Attribution(threePositions(), nil)

	unknown, ok := report.BySector[SectorUnknown]
	require.True(t, ok)
	assert.Equal(t, 3, unknown.Positions)

	small, ok := report.ByCapTier[CapSmall]
	require.True(t, ok)
	assert.Equal(t, 3, small.Positions)
}

// strongBuySnapshot reads as a full-confirmation uptrend.
func strongBuySnapshot() *domain.TechnicalData {
	return &domain.TechnicalData{
		LastPrice:           2300,
		SMA20:               2250,
		SMA50:               2200,
		SMA200:              2100,
		RSI14:               58,
		MACDHistogram:       4,
		Volume:              1_200_000,
		AvgVolume20:         1_000_000,
		SupertrendDirection: domain.StringPtr(domain.SupertrendBullish),
	}
}

// strongSellSnapshot reads as a broken trend on every horizon.
func strongSellSnapshot() *domain.TechnicalData {
	return &domain.TechnicalData{
		LastPrice:     900,
		SMA50:         980,
		SMA200:        1000,
		RSI14:         32,
		MACDHistogram: -3,
	}
}

func TestBuildScorecard_Grades(t *testing.T) {
	positions := []domain.Position{
		{Symbol: "STAR", EntryPrice: 100, CurrentPrice: 125, Quantity: 1, Technical: strongBuySnapshot()},
		{Symbol: "DRIFT", EntryPrice: 100, CurrentPrice: 105, Quantity: 1},
		{Symbol: "WRECK", EntryPrice: 100, CurrentPrice: 80, Quantity: 1, Technical: strongSellSnapshot()},
	}

	card := BuildScorecard(positions)
	require.Len(t, card.Entries, 3)

	star := card.Entries[0]
	assert.Equal(t, "A", star.Grade, "+25%% with a STRONG BUY verdict")
	assert.Equal(t, exits.VerdictStrongBuy, star.Verdict)
	assert.Empty(t, star.Notes)

	drift := card.Entries[1]
	assert.Equal(t, "C", drift.Grade)
	assert.Equal(t, exits.VerdictHold, drift.Verdict)
	assert.Contains(t, drift.Notes, "technical data not available")

	wreck := card.Entries[2]
	assert.Equal(t, "F", wreck.Grade, "-20%% with a STRONG SELL verdict")
	assert.Equal(t, exits.VerdictStrongSell, wreck.Verdict)
	assert.Contains(t, wreck.Notes, "review:")
}

func TestBuildScorecard_MidTierNotes(t *testing.T) {
	// -10% with no technical read: score -1, grade D, review note.
	positions := []domain.Position{
		{Symbol: "SLIP", EntryPrice: 100, CurrentPrice: 90, Quantity: 1, Technical: &domain.TechnicalData{
			LastPrice: 90, SMA50: 85, SMA200: 95, RSI14: 50, MACDHistogram: 1,
		}},
	}

	card := BuildScorecard(positions)
	require.Len(t, card.Entries, 1)

	entry := card.Entries[0]
	assert.Equal(t, exits.VerdictHold, entry.Verdict)
	assert.Equal(t, "D", entry.Grade)
	assert.Contains(t, entry.Notes, "review:")
}
