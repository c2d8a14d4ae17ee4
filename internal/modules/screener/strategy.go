package screener

import (
	"time"

	"github.com/vtbalaji/tradeidea-go/internal/config"
	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

// Strategy names, in fixed priority order. The order decides which strategy
// wins the "best match" slot of a recommendation.
const (
	StrategyValue    = "value"
	StrategyGrowth   = "growth"
	StrategyMomentum = "momentum"
	StrategyQuality  = "quality"
	StrategyDividend = "dividend"
)

// Context carries everything an entry or exit predicate may consult. Built
// once per evaluation so signals are derived a single time and shared by all
// five strategies.
type Context struct {
	Signals     TechnicalSignals
	Technical   domain.TechnicalData
	Fundamental domain.FundamentalData
	Config      config.ScreenerConfig
	Now         time.Time
}

// EntryCondition is one named predicate in a strategy's entry table.
// All of a strategy's entry conditions must hold for the stock to qualify.
type EntryCondition struct {
	Name  string
	Check func(*Context) bool
}

// ExitCondition is one named predicate in a strategy's exit table.
// Any triggered exit condition is sufficient to recommend an exit.
type ExitCondition struct {
	Name  string
	Check func(*Context, domain.Position) bool
}

// ScoreFunc computes an intermediate numeric sub-score (e.g. "4 of 6
// momentum sub-signals") that a threshold condition gates on. Reported on the
// analysis for transparency.
type ScoreFunc struct {
	Name string
	Max  int
	Fn   func(*Context) int
}

// Strategy is a data-driven rule table: named predicates over the shared
// context. The engine is a single evaluator over these tables; the five
// investor philosophies differ only in their tables.
type Strategy struct {
	Name            string
	EntryConditions []EntryCondition
	ExitConditions  []ExitCondition
	EntryScores     []ScoreFunc
	ExitScores      []ScoreFunc
}

// EntryAnalysis is the result of evaluating one strategy's entry table.
type EntryAnalysis struct {
	Strategy         string          `json:"strategy"`
	CanEnter         bool            `json:"can_enter"`
	Conditions       map[string]bool `json:"conditions"`
	ConditionOrder   []string        `json:"condition_order"`
	ConditionsMet    int             `json:"conditions_met"`
	TotalConditions  int             `json:"total_conditions"`
	FailedConditions []string        `json:"failed_conditions"`
	Scores           map[string]int  `json:"scores,omitempty"`
}

// ExitAnalysis is the result of evaluating one strategy's exit table against
// an open position.
type ExitAnalysis struct {
	Strategy       string          `json:"strategy"`
	ShouldExit     bool            `json:"should_exit"`
	Conditions     map[string]bool `json:"conditions"`
	ConditionOrder []string        `json:"condition_order"`
	TriggerReasons []string        `json:"trigger_reasons"`
	Scores         map[string]int  `json:"scores,omitempty"`
}

// InvestorRecommendation aggregates the entry analyses of all five strategies.
type InvestorRecommendation struct {
	ID             string                   `json:"id"`
	Symbol         string                   `json:"symbol"`
	SuitableFor    []string                 `json:"suitable_for"`
	NotSuitableFor []string                 `json:"not_suitable_for"`
	Details        map[string]EntryAnalysis `json:"details"`
	// BestMatch is the first endorsing strategy in declaration order
	// (value, growth, momentum, quality, dividend), nil when none endorse.
	BestMatch   *string   `json:"best_match,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ---- nullable-value predicates ----
//
// Two deliberate robustness rules, reproduced from the original decision
// tables:
//
//  1. An unknown (nil) non-ratio input degrades its condition to false —
//     an unevaluable condition simply does not count toward "met".
//  2. A valuation ratio that is unknown or unreliable (negative, or beyond
//     the configured plausibility ceiling) is excluded from failing a gate:
//     noisy provider data must not produce false negatives.

// knownBelow reports v < ceiling, false when unknown.
func knownBelow(v *float64, ceiling float64) bool {
	return v != nil && *v < ceiling
}

// knownAbove reports v > floor, false when unknown.
func knownAbove(v *float64, floor float64) bool {
	return v != nil && *v > floor
}

// knownAtLeast reports v >= floor, false when unknown.
func knownAtLeast(v *float64, floor float64) bool {
	return v != nil && *v >= floor
}

// knownBetween reports lo < v < hi, false when unknown.
func knownBetween(v *float64, lo, hi float64) bool {
	return v != nil && *v > lo && *v < hi
}

// ratioReliable reports whether a valuation ratio is plausible enough to
// participate in a gate. Negative ratios and ratios beyond maxPlausible are
// provider noise.
func ratioReliable(v *float64, maxPlausible float64) bool {
	return v != nil && *v >= 0 && *v <= maxPlausible
}

// ratioBelowFiltered applies the unreliable-value filter to a ceiling gate:
// unknown and unreliable ratios pass (are excluded from failing), reliable
// ratios must be below the ceiling.
func ratioBelowFiltered(v *float64, ceiling, maxPlausible float64) bool {
	if !ratioReliable(v, maxPlausible) {
		return true
	}
	return *v < ceiling
}

// ratioAboveFiltered is the exit-side counterpart: it only triggers on a
// reliable ratio above the floor. Unknown or unreliable never triggers.
func ratioAboveFiltered(v *float64, floor, maxPlausible float64) bool {
	return ratioReliable(v, maxPlausible) && *v > floor
}

// trueIfKnown unwraps an optional signal: nil (unknown) yields the given
// default.
func trueIfKnown(v *bool, unknownDefault bool) bool {
	if v == nil {
		return unknownDefault
	}
	return *v
}

// countTrue counts satisfied sub-signals.
func countTrue(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
