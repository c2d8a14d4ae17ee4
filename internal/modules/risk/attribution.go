package risk

import (
	"fmt"
	"sort"

	"github.com/vtbalaji/tradeidea-go/internal/domain"
	"github.com/vtbalaji/tradeidea-go/internal/modules/exits"
)

// maxRanked caps the winners/losers lists.
const maxRanked = 5

// Attribution groups unrealized P&L by sector and market-cap tier and ranks
// the best and worst positions by return.
func Attribution(positions []domain.Position, meta map[string]domain.SymbolMetadata) *AttributionReport {
	report := &AttributionReport{
		BySector:  make(map[string]PnLBucket),
		ByCapTier: make(map[string]PnLBucket),
		Winners:   []PositionPnL{},
		Losers:    []PositionPnL{},
	}

	ranked := make([]PositionPnL, 0, len(positions))

	for _, pos := range positions {
		invested := pos.Quantity * pos.EntryPrice
		current := pos.TotalValue()

		sector := SectorUnknown
		var marketCap *float64
		if m, ok := meta[pos.Symbol]; ok {
			if m.Sector != "" {
				sector = m.Sector
			}
			marketCap = m.MarketCap
		}

		accumulate(report.BySector, sector, invested, current)
		accumulate(report.ByCapTier, CapTierFor(marketCap), invested, current)

		ranked = append(ranked, PositionPnL{
			Symbol:     pos.Symbol,
			Value:      current,
			PnL:        round2(current - invested),
			PnLPercent: round2(pos.ProfitPercent()),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].PnLPercent != ranked[j].PnLPercent {
			return ranked[i].PnLPercent > ranked[j].PnLPercent
		}
		return ranked[i].Symbol < ranked[j].Symbol
	})

	for _, r := range ranked {
		if r.PnL > 0 && len(report.Winners) < maxRanked {
			report.Winners = append(report.Winners, r)
		}
	}
	for i := len(ranked) - 1; i >= 0; i-- {
		if ranked[i].PnL < 0 && len(report.Losers) < maxRanked {
			report.Losers = append(report.Losers, ranked[i])
		}
	}

	return report
}

func accumulate(buckets map[string]PnLBucket, key string, invested, current float64) {
	b := buckets[key]
	b.Invested += invested
	b.Current += current
	b.PnL = round2(b.Current - b.Invested)
	if b.Invested != 0 {
		b.PnLPercent = round2((b.Current - b.Invested) / b.Invested * 100)
	}
	b.Positions++
	buckets[key] = b
}

// BuildScorecard grades every position from its unrealized return and the
// overall technical verdict of its attached snapshot. A position without a
// technical snapshot is graded on P&L alone and annotated.
func BuildScorecard(positions []domain.Position) *Scorecard {
	card := &Scorecard{Entries: make([]ScorecardEntry, 0, len(positions))}

	for _, pos := range positions {
		entry := ScorecardEntry{
			Symbol:     pos.Symbol,
			PnLPercent: round2(pos.ProfitPercent()),
		}

		score := pnlScore(entry.PnLPercent)

		if pos.Technical != nil {
			entry.Verdict = exits.OverallVerdict(*pos.Technical)
			score += verdictScore(entry.Verdict)
		} else {
			entry.Verdict = exits.VerdictHold
			entry.Notes = "technical data not available; graded on P&L only"
		}

		entry.Grade = gradeFor(score)
		if entry.Notes == "" && entry.Grade >= "D" {
			entry.Notes = fmt.Sprintf("review: %s verdict at %.2f%% return", entry.Verdict, entry.PnLPercent)
		}

		card.Entries = append(card.Entries, entry)
	}

	return card
}

func pnlScore(pnlPct float64) int {
	switch {
	case pnlPct >= 20:
		return 2
	case pnlPct >= 0:
		return 1
	case pnlPct <= -15:
		return -2
	default:
		return -1
	}
}

func verdictScore(verdict string) int {
	switch verdict {
	case exits.VerdictStrongBuy:
		return 2
	case exits.VerdictBuy:
		return 1
	case exits.VerdictSell:
		return -1
	case exits.VerdictStrongSell:
		return -2
	default:
		return 0
	}
}

func gradeFor(score int) string {
	switch {
	case score >= 4:
		return "A"
	case score >= 2:
		return "B"
	case score >= 0:
		return "C"
	case score == -1:
		return "D"
	default:
		return "F"
	}
}
