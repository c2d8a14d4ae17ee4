package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

// threePositions is a small worked portfolio: ₹28,000 in Energy and ₹43,000
// split across two IT holdings, ₹71,000 in total.
func threePositions() []domain.Position {
	return []domain.Position{
		{Symbol: "RELIANCE", Quantity: 10, EntryPrice: 2500, CurrentPrice: 2800},
		{Symbol: "TCS", Quantity: 5, EntryPrice: 4000, CurrentPrice: 3800},
		{Symbol: "INFY", Quantity: 16, EntryPrice: 1400, CurrentPrice: 1500},
	}
}

func threeMetadata() map[string]domain.SymbolMetadata {
	return map[string]domain.SymbolMetadata{
		"RELIANCE": {Symbol: "RELIANCE", Sector: "Energy", MarketCap: domain.Float64Ptr(19e12), Beta: domain.Float64Ptr(1.2)},
		"TCS":      {Symbol: "TCS", Sector: "IT", MarketCap: domain.Float64Ptr(14e12), Beta: domain.Float64Ptr(0.8)},
		"INFY":     {Symbol: "INFY", Sector: "IT", MarketCap: domain.Float64Ptr(6e12), Beta: domain.Float64Ptr(0.9)},
	}
}

func TestSectorDistribution(t *testing.T) {
	sectors := SectorDistribution(threePositions(), threeMetadata())

	require.Len(t, sectors, 2)

	// Sorted descending by value: IT ₹43,000 before Energy ₹28,000.
	assert.Equal(t, "IT", sectors[0].Sector)
	assert.InDelta(t, 43000, sectors[0].Value, 1e-9)
	assert.InDelta(t, 60.56, sectors[0].Percentage, 0.01)
	assert.Equal(t, 2, sectors[0].Positions)

	assert.Equal(t, "Energy", sectors[1].Sector)
	assert.InDelta(t, 28000, sectors[1].Value, 1e-9)
	assert.InDelta(t, 39.44, sectors[1].Percentage, 0.01)
	assert.Equal(t, 1, sectors[1].Positions)

	total := sectors[0].Percentage + sectors[1].Percentage
	assert.InDelta(t, 100, total, 0.02, "percentages sum to 100 up to rounding")
}

func TestSectorDistribution_MissingMetadata(t *testing.T) {
	positions := []domain.Position{
		{Symbol: "MYSTERY", Quantity: 1, CurrentPrice: 1000},
	}

	sectors := SectorDistribution(positions, map[string]domain.SymbolMetadata{})

	require.Len(t, sectors, 1)
	assert.Equal(t, SectorUnknown, sectors[0].Sector)
	assert.InDelta(t, 100, sectors[0].Percentage, 1e-9)
}

func TestSectorDistribution_EmptyPortfolio(t *testing.T) {
	assert.Empty(t, SectorDistribution(nil, nil))
}

func TestCapTierFor(t *testing.T) {
	tests := []struct {
		name      string
		marketCap *float64
		expected  string
	}{
		{name: "unknown cap is small", marketCap: nil, expected: CapSmall},
		{name: "just above large boundary", marketCap: domain.Float64Ptr(50_001 * 1e7), expected: CapLarge},
		{name: "exactly at large boundary stays mid", marketCap: domain.Float64Ptr(50_000 * 1e7), expected: CapMid},
		{name: "just above mid boundary", marketCap: domain.Float64Ptr(10_001 * 1e7), expected: CapMid},
		{name: "exactly at mid boundary stays small", marketCap: domain.Float64Ptr(10_000 * 1e7), expected: CapSmall},
		{name: "small cap", marketCap: domain.Float64Ptr(2_000 * 1e7), expected: CapSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CapTierFor(tt.marketCap))
		})
	}
}

func TestMarketCapDistribution(t *testing.T) {
	positions := threePositions()
	meta := threeMetadata()
	// Push INFY down to a mid cap so two tiers appear.
	infy := meta["INFY"]
	infy.MarketCap = domain.Float64Ptr(30_000 * 1e7)
	meta["INFY"] = infy

	caps := MarketCapDistribution(positions, meta)

	require.Len(t, caps, 2)
	assert.Equal(t, CapLarge, caps[0].Tier, "fixed tier order, Large first")
	assert.Equal(t, 2, caps[0].Positions)
	assert.InDelta(t, 47000, caps[0].Value, 1e-9)
	assert.Equal(t, CapMid, caps[1].Tier)
	assert.InDelta(t, 24000, caps[1].Value, 1e-9)
}

func TestMarketCapDistribution_AllUnknownLandSmall(t *testing.T) {
	caps := MarketCapDistribution(threePositions(), map[string]domain.SymbolMetadata{})

	require.Len(t, caps, 1)
	assert.Equal(t, CapSmall, caps[0].Tier)
	assert.Equal(t, 3, caps[0].Positions)
	assert.InDelta(t, 100, caps[0].Percentage, 1e-9)
}
