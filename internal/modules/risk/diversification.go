package risk

import "fmt"

// Diversification score components: position count contributes up to 25
// points, sector spread up to 40, cap-tier balance up to 35.
const (
	idealPositionsMin = 10
	idealPositionsMax = 20

	// meaningfulTierPct: a cap tier counts toward balance once it holds at
	// least this share of the portfolio.
	meaningfulTierPct = 10.0
)

// Warning thresholds, checked in fixed order by GenerateWarnings.
const (
	warnSectorConcentrationPct = 40.0
	warnMinPositions           = 5
	warnMaxPositions           = 30
	warnHighBeta               = 1.5
	warnHighStdDevPct          = 40.0
	warnSmallCapPct            = 50.0
)

// DiversificationScore computes the heuristic 0-100 score from position
// count, sector concentration and cap-tier balance. Deterministic and
// additive; each component is a simple tier table.
func DiversificationScore(positionCount int, sectors []SectorAllocation, caps []MarketCapAllocation) float64 {
	return positionCountPoints(positionCount) + sectorSpreadPoints(sectors) + capBalancePoints(caps)
}

// positionCountPoints: 10-20 holdings is the sweet spot. Fewer concentrates
// idiosyncratic risk; more dilutes attention.
func positionCountPoints(count int) float64 {
	switch {
	case count == 0:
		return 0
	case count >= idealPositionsMin && count <= idealPositionsMax:
		return 25
	case count >= 5 && count <= 30:
		return 15
	case count > 30:
		return 10
	default: // 1-4
		return 8
	}
}

// sectorSpreadPoints: highest marks for no sector above 30% across at least
// five sectors, tiered down to a minimum of 10.
func sectorSpreadPoints(sectors []SectorAllocation) float64 {
	if len(sectors) == 0 {
		return 0
	}

	maxPct := 0.0
	for _, s := range sectors {
		if s.Percentage > maxPct {
			maxPct = s.Percentage
		}
	}

	switch {
	case maxPct < 30 && len(sectors) >= 5:
		return 40
	case maxPct < 35 && len(sectors) >= 4:
		return 32
	case maxPct < 45 && len(sectors) >= 3:
		return 25
	case maxPct < 60 && len(sectors) >= 2:
		return 18
	default:
		return 10
	}
}

// capBalancePoints: count the tiers holding a meaningful share.
func capBalancePoints(caps []MarketCapAllocation) float64 {
	meaningful := 0
	for _, c := range caps {
		if c.Percentage >= meaningfulTierPct {
			meaningful++
		}
	}

	switch meaningful {
	case 3:
		return 35
	case 2:
		return 22
	case 1:
		return 12
	default:
		return 0
	}
}

// GenerateWarnings translates metrics into natural-language warnings. Every
// check runs unconditionally; emission order matches check order.
func GenerateWarnings(
	positionCount int,
	sectors []SectorAllocation,
	caps []MarketCapAllocation,
	metrics RiskMetrics,
) []string {
	warnings := []string{}

	for _, s := range sectors {
		if s.Percentage > warnSectorConcentrationPct {
			warnings = append(warnings, fmt.Sprintf(
				"High sector concentration: %.2f%% of the portfolio is in %s. Consider diversifying across more sectors.",
				s.Percentage, s.Sector))
		}
	}

	if positionCount > 0 && positionCount < warnMinPositions {
		warnings = append(warnings, fmt.Sprintf(
			"Only %d position(s) held. A portfolio this small carries high single-stock risk.", positionCount))
	}

	if positionCount > warnMaxPositions {
		warnings = append(warnings, fmt.Sprintf(
			"%d positions held. Portfolios beyond %d holdings become hard to monitor and tend toward index-like returns.",
			positionCount, warnMaxPositions))
	}

	if metrics.PortfolioBeta > warnHighBeta {
		warnings = append(warnings, fmt.Sprintf(
			"Portfolio beta %.2f is above %.1f: expect swings meaningfully larger than the market's.",
			metrics.PortfolioBeta, warnHighBeta))
	}

	if metrics.AnnualizedStdDev > warnHighStdDevPct {
		warnings = append(warnings, fmt.Sprintf(
			"Annualized volatility %.1f%% is above %.0f%%: the portfolio is highly volatile.",
			metrics.AnnualizedStdDev, warnHighStdDevPct))
	}

	if metrics.SharpeRatio < 0 {
		warnings = append(warnings,
			"Negative Sharpe ratio: the portfolio has returned less than the risk-free rate for the risk taken.")
	}

	for _, c := range caps {
		if c.Tier == CapSmall && c.Percentage > warnSmallCapPct {
			warnings = append(warnings, fmt.Sprintf(
				"Small-cap exposure %.2f%% exceeds %.0f%%: small caps amplify drawdowns in corrections.",
				c.Percentage, warnSmallCapPct))
		}
	}

	return warnings
}
