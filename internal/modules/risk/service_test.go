package risk

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_Analyze(t *testing.T) {
	a := NewAnalyzer(testRiskConfig(), zerolog.Nop())

	analysis := a.Analyze(threePositions(), threeMetadata(), centeredReturns(), nil)

	assert.NotEmpty(t, analysis.ID)
	assert.Equal(t, 71_000.0, analysis.TotalValue)
	assert.Equal(t, 3, analysis.PositionCount)
	assert.False(t, analysis.GeneratedAt.IsZero())

	require.Len(t, analysis.SectorDistribution, 2)
	assert.Equal(t, "IT", analysis.SectorDistribution[0].Sector)

	require.Len(t, analysis.MarketCapDistribution, 1)
	assert.Equal(t, CapLarge, analysis.MarketCapDistribution[0].Tier)

	assert.InDelta(t, 0.9915, analysis.RiskMetrics.PortfolioBeta, 0.001)
	require.NotNil(t, analysis.RiskMetrics.ValueAtRisk)

	// 3 positions, 60.56% in one sector, a single tier: 8 + 10 + 12.
	assert.Equal(t, 30.0, analysis.DiversificationScore)

	require.NotNil(t, analysis.Attribution)
	require.NotNil(t, analysis.Scorecard)
	assert.Len(t, analysis.Scorecard.Entries, 3)
}

func TestAnalyzer_AnalyzeEmptyPortfolio(t *testing.T) {
	a := NewAnalyzer(testRiskConfig(), zerolog.Nop())

	analysis := a.Analyze(nil, nil, nil, nil)

	assert.Equal(t, 0.0, analysis.TotalValue)
	assert.Equal(t, 0, analysis.PositionCount)
	assert.Empty(t, analysis.SectorDistribution)
	assert.Empty(t, analysis.MarketCapDistribution)
	assert.Equal(t, 0.0, analysis.DiversificationScore)
	assert.Equal(t, 1.0, analysis.RiskMetrics.PortfolioBeta)
}
