// Package exits implements per-position exit alerting, independent of the
// screener's strategy tables: protective-level checks with severity-tagged
// alerts, plus a single overall verdict derived from trend structure.
package exits

import (
	"fmt"

	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

// Alert severities.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Exit criterion identifiers.
const (
	CriterionStopLoss         = "stop_loss"
	CriterionBelow50EMA       = "below_50ema"
	CriterionBelow100MA       = "below_100ma"
	CriterionBelow200MA       = "below_200ma"
	CriterionWeeklySupertrend = "weekly_supertrend"
)

// warningProximity: price within 5% above a protective level raises a warning.
const warningProximity = 1.05

// ExitAlert is one severity-tagged alert for an enabled exit criterion.
type ExitAlert struct {
	Criterion string `json:"criterion"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
}

// EffectiveStopLoss computes the protective floor for a position: the maximum
// of the user-set stop-loss, the current Supertrend level and the 100-day
// moving average. Trailing levels only ever raise the floor, never lower it.
// Returns nil when none of the three levels is known.
func EffectiveStopLoss(pos domain.Position, tech domain.TechnicalData) *float64 {
	var level *float64

	raise := func(candidate float64) {
		if level == nil || candidate > *level {
			level = &candidate
		}
	}

	if pos.StopLoss != nil {
		raise(*pos.StopLoss)
	}
	if tech.Supertrend != nil {
		raise(*tech.Supertrend)
	}
	if tech.SMA100 != nil {
		raise(*tech.SMA100)
	}

	return level
}

// Evaluate produces one alert per enabled exit-criterion flag on the
// position. A breached threshold is critical, price within 5% above it is a
// warning, safely above is info; a missing indicator yields an explicit
// "data not available" warning instead of a silent pass.
func Evaluate(pos domain.Position, tech domain.TechnicalData) []ExitAlert {
	var alerts []ExitAlert
	price := pos.CurrentPrice
	ec := pos.ExitCriteria

	if ec.ExitAtStopLoss {
		if stop := EffectiveStopLoss(pos, tech); stop != nil {
			alerts = append(alerts, levelAlert(CriterionStopLoss, price, *stop,
				fmt.Sprintf("STOP LOSS HIT: price ₹%.2f at or below effective stop ₹%.2f", price, *stop),
				fmt.Sprintf("SL Near: price ₹%.2f within 5%% of effective stop ₹%.2f", price, *stop),
				fmt.Sprintf("SL Safe: price ₹%.2f above effective stop ₹%.2f", price, *stop),
			))
		} else {
			alerts = append(alerts, ExitAlert{
				Criterion: CriterionStopLoss,
				Severity:  SeverityWarning,
				Message:   "Stop loss check: data not available (no stop level set and no Supertrend/100-day MA)",
			})
		}
	}

	if ec.ExitBelow50EMA {
		alerts = append(alerts, movingAverageAlert(CriterionBelow50EMA, "50 EMA", price, &tech.EMA50))
	}

	if ec.ExitBelow100MA {
		alerts = append(alerts, movingAverageAlert(CriterionBelow100MA, "100 MA", price, tech.SMA100))
	}

	if ec.ExitBelow200MA {
		alerts = append(alerts, movingAverageAlert(CriterionBelow200MA, "200 MA", price, &tech.SMA200))
	}

	if ec.ExitOnWeeklySupertrend {
		switch {
		case tech.WeeklySupertrendDir == nil:
			alerts = append(alerts, ExitAlert{
				Criterion: CriterionWeeklySupertrend,
				Severity:  SeverityWarning,
				Message:   "Weekly Supertrend check: data not available",
			})
		case *tech.WeeklySupertrendDir == domain.SupertrendBearish:
			alerts = append(alerts, ExitAlert{
				Criterion: CriterionWeeklySupertrend,
				Severity:  SeverityCritical,
				Message:   "Weekly Supertrend turned bearish",
			})
		default:
			alerts = append(alerts, ExitAlert{
				Criterion: CriterionWeeklySupertrend,
				Severity:  SeverityInfo,
				Message:   "Weekly Supertrend bullish",
			})
		}
	}

	return alerts
}

// levelAlert grades price against a protective level with the standard
// critical / warning / info tiers.
func levelAlert(criterion string, price, level float64, hitMsg, nearMsg, safeMsg string) ExitAlert {
	switch {
	case price <= level:
		return ExitAlert{Criterion: criterion, Severity: SeverityCritical, Message: hitMsg}
	case price <= level*warningProximity:
		return ExitAlert{Criterion: criterion, Severity: SeverityWarning, Message: nearMsg}
	default:
		return ExitAlert{Criterion: criterion, Severity: SeverityInfo, Message: safeMsg}
	}
}

// movingAverageAlert grades price against a moving-average level, reporting
// a "data not available" warning when the indicator is missing.
func movingAverageAlert(criterion, label string, price float64, level *float64) ExitAlert {
	if level == nil {
		return ExitAlert{
			Criterion: criterion,
			Severity:  SeverityWarning,
			Message:   fmt.Sprintf("%s check: data not available", label),
		}
	}
	return levelAlert(criterion, price, *level,
		fmt.Sprintf("Price ₹%.2f broke below %s ₹%.2f", price, label, *level),
		fmt.Sprintf("Price ₹%.2f within 5%% of %s ₹%.2f", price, label, *level),
		fmt.Sprintf("Price ₹%.2f safely above %s ₹%.2f", price, label, *level),
	)
}
