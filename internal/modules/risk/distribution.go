package risk

import (
	"math"
	"sort"

	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

// Market-cap tier boundaries in ₹ crores (1 crore = 10^7).
const (
	croreRupees      = 1e7
	largeCapMinCrore = 50_000
	midCapMinCrore   = 10_000
)

// CapTierFor classifies a market cap (₹) into a tier. An unknown market cap
// lands in the smallest tier, the conservative reading for risk purposes.
func CapTierFor(marketCap *float64) string {
	if marketCap == nil {
		return CapSmall
	}
	crores := *marketCap / croreRupees
	switch {
	case crores > largeCapMinCrore:
		return CapLarge
	case crores > midCapMinCrore:
		return CapMid
	default:
		return CapSmall
	}
}

// SectorDistribution buckets positions by sector using the metadata lookup.
// Positions without metadata land in the "Unknown" sector. The result is
// sorted descending by value and its percentages sum to 100 (± rounding) for
// any non-empty position list.
func SectorDistribution(positions []domain.Position, meta map[string]domain.SymbolMetadata) []SectorAllocation {
	total := totalValue(positions)
	if total == 0 {
		return []SectorAllocation{}
	}

	buckets := make(map[string]*SectorAllocation)
	for _, pos := range positions {
		sector := SectorUnknown
		if m, ok := meta[pos.Symbol]; ok && m.Sector != "" {
			sector = m.Sector
		}
		b, ok := buckets[sector]
		if !ok {
			b = &SectorAllocation{Sector: sector}
			buckets[sector] = b
		}
		b.Value += pos.TotalValue()
		b.Positions++
	}

	result := make([]SectorAllocation, 0, len(buckets))
	for _, b := range buckets {
		b.Percentage = round2(b.Value / total * 100)
		result = append(result, *b)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Value != result[j].Value {
			return result[i].Value > result[j].Value
		}
		return result[i].Sector < result[j].Sector
	})

	return result
}

// MarketCapDistribution buckets positions by market-cap tier using the
// metadata lookup. Tiers are reported in fixed order Large, Mid, Small;
// empty tiers are omitted.
func MarketCapDistribution(positions []domain.Position, meta map[string]domain.SymbolMetadata) []MarketCapAllocation {
	total := totalValue(positions)
	if total == 0 {
		return []MarketCapAllocation{}
	}

	buckets := make(map[string]*MarketCapAllocation)
	for _, pos := range positions {
		var marketCap *float64
		if m, ok := meta[pos.Symbol]; ok {
			marketCap = m.MarketCap
		}
		tier := CapTierFor(marketCap)
		b, ok := buckets[tier]
		if !ok {
			b = &MarketCapAllocation{Tier: tier}
			buckets[tier] = b
		}
		b.Value += pos.TotalValue()
		b.Positions++
	}

	result := make([]MarketCapAllocation, 0, len(buckets))
	for _, tier := range []string{CapLarge, CapMid, CapSmall} {
		if b, ok := buckets[tier]; ok {
			b.Percentage = round2(b.Value / total * 100)
			result = append(result, *b)
		}
	}

	return result
}

func totalValue(positions []domain.Position) float64 {
	total := 0.0
	for _, pos := range positions {
		total += pos.TotalValue()
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
