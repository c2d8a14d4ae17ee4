package screener

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vtbalaji/tradeidea-go/internal/config"
	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

// Engine evaluates the five strategy tables. It is stateless and safe for
// concurrent use; evaluating many symbols in parallel needs no coordination.
type Engine struct {
	cfg        config.ScreenerConfig
	strategies []Strategy
	byName     map[string]Strategy
	now        func() time.Time
}

// NewEngine creates a rule engine with the five strategies in their fixed
// priority order: value, growth, momentum, quality, dividend.
func NewEngine(cfg config.ScreenerConfig) *Engine {
	strategies := []Strategy{
		valueStrategy(),
		growthStrategy(),
		momentumStrategy(),
		qualityStrategy(),
		dividendStrategy(),
	}

	byName := make(map[string]Strategy, len(strategies))
	for _, s := range strategies {
		byName[s.Name] = s
	}

	return &Engine{
		cfg:        cfg,
		strategies: strategies,
		byName:     byName,
		now:        time.Now,
	}
}

// StrategyNames returns the strategy names in priority order.
func (e *Engine) StrategyNames() []string {
	names := make([]string, len(e.strategies))
	for i, s := range e.strategies {
		names[i] = s.Name
	}
	return names
}

// context builds the shared evaluation context, deriving signals once.
func (e *Engine) context(tech domain.TechnicalData, fund domain.FundamentalData) *Context {
	return &Context{
		Signals:     BuildSignals(tech),
		Technical:   tech,
		Fundamental: fund,
		Config:      e.cfg,
		Now:         e.now(),
	}
}

// EvaluateEntry evaluates one strategy's entry table for a stock.
func (e *Engine) EvaluateEntry(strategy string, tech domain.TechnicalData, fund domain.FundamentalData) (EntryAnalysis, error) {
	s, ok := e.byName[strategy]
	if !ok {
		return EntryAnalysis{}, fmt.Errorf("unknown strategy %q", strategy)
	}
	return evaluateEntry(s, e.context(tech, fund)), nil
}

// EvaluateAll evaluates every strategy's entry table, deriving signals once.
func (e *Engine) EvaluateAll(tech domain.TechnicalData, fund domain.FundamentalData) map[string]EntryAnalysis {
	ctx := e.context(tech, fund)
	results := make(map[string]EntryAnalysis, len(e.strategies))
	for _, s := range e.strategies {
		results[s.Name] = evaluateEntry(s, ctx)
	}
	return results
}

// EvaluateExit evaluates one strategy's exit table against an open position.
func (e *Engine) EvaluateExit(strategy string, tech domain.TechnicalData, fund domain.FundamentalData, pos domain.Position) (ExitAnalysis, error) {
	s, ok := e.byName[strategy]
	if !ok {
		return ExitAnalysis{}, fmt.Errorf("unknown strategy %q", strategy)
	}
	return evaluateExit(s, e.context(tech, fund), pos), nil
}

// Recommendation aggregates all five entry analyses for a stock. BestMatch is
// the first endorsing strategy in priority order, nil when none endorse.
func (e *Engine) Recommendation(symbol string, tech domain.TechnicalData, fund domain.FundamentalData) InvestorRecommendation {
	ctx := e.context(tech, fund)

	rec := InvestorRecommendation{
		ID:             uuid.New().String(),
		Symbol:         symbol,
		SuitableFor:    []string{},
		NotSuitableFor: []string{},
		Details:        make(map[string]EntryAnalysis, len(e.strategies)),
		GeneratedAt:    ctx.Now,
	}

	for _, s := range e.strategies {
		analysis := evaluateEntry(s, ctx)
		rec.Details[s.Name] = analysis
		if analysis.CanEnter {
			rec.SuitableFor = append(rec.SuitableFor, s.Name)
			if rec.BestMatch == nil {
				name := s.Name
				rec.BestMatch = &name
			}
		} else {
			rec.NotSuitableFor = append(rec.NotSuitableFor, s.Name)
		}
	}

	return rec
}

// evaluateEntry runs a strategy's entry table: AND semantics, every condition
// reported by name in declaration order.
func evaluateEntry(s Strategy, ctx *Context) EntryAnalysis {
	analysis := EntryAnalysis{
		Strategy:         s.Name,
		Conditions:       make(map[string]bool, len(s.EntryConditions)),
		ConditionOrder:   make([]string, 0, len(s.EntryConditions)),
		FailedConditions: []string{},
		TotalConditions:  len(s.EntryConditions),
	}

	for _, c := range s.EntryConditions {
		ok := c.Check(ctx)
		analysis.Conditions[c.Name] = ok
		analysis.ConditionOrder = append(analysis.ConditionOrder, c.Name)
		if ok {
			analysis.ConditionsMet++
		} else {
			analysis.FailedConditions = append(analysis.FailedConditions, c.Name)
		}
	}

	analysis.CanEnter = len(analysis.FailedConditions) == 0
	analysis.Scores = evaluateScores(s.EntryScores, ctx)
	return analysis
}

// evaluateExit runs a strategy's exit table: OR semantics, triggered
// conditions become the reasons.
func evaluateExit(s Strategy, ctx *Context, pos domain.Position) ExitAnalysis {
	analysis := ExitAnalysis{
		Strategy:       s.Name,
		Conditions:     make(map[string]bool, len(s.ExitConditions)),
		ConditionOrder: make([]string, 0, len(s.ExitConditions)),
		TriggerReasons: []string{},
	}

	for _, c := range s.ExitConditions {
		triggered := c.Check(ctx, pos)
		analysis.Conditions[c.Name] = triggered
		analysis.ConditionOrder = append(analysis.ConditionOrder, c.Name)
		if triggered {
			analysis.TriggerReasons = append(analysis.TriggerReasons, c.Name)
		}
	}

	analysis.ShouldExit = len(analysis.TriggerReasons) > 0
	analysis.Scores = evaluateScores(s.ExitScores, ctx)
	return analysis
}

func evaluateScores(funcs []ScoreFunc, ctx *Context) map[string]int {
	if len(funcs) == 0 {
		return nil
	}
	scores := make(map[string]int, len(funcs))
	for _, f := range funcs {
		scores[f.Name] = f.Fn(ctx)
	}
	return scores
}
