package portfolio

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vtbalaji/tradeidea-go/internal/domain"
	"github.com/vtbalaji/tradeidea-go/internal/modules/universe"
)

// returnLookbackDays is how many daily returns feed the portfolio-level
// volatility, Sharpe and VaR calculations: one trading year.
const returnLookbackDays = 252

// Service assembles portfolio positions with their latest snapshots attached
// and derives the portfolio-level return series the risk layer consumes.
type Service struct {
	repo      *Repository
	snapshots *universe.SnapshotRepository
	history   *universe.HistoryDB
	log       zerolog.Logger
}

// NewService creates a portfolio service.
func NewService(repo *Repository, snapshots *universe.SnapshotRepository, history *universe.HistoryDB, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		snapshots: snapshots,
		history:   history,
		log:       log.With().Str("service", "portfolio").Logger(),
	}
}

// Positions returns every open position with its technical and fundamental
// snapshot attached when one exists. Missing snapshots leave the pointers nil;
// downstream layers treat that as unknown, not as an error.
func (s *Service) Positions() ([]domain.Position, error) {
	positions, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	for i := range positions {
		tech, err := s.snapshots.GetTechnical(positions[i].Symbol)
		if err != nil {
			return nil, fmt.Errorf("failed to attach technical snapshot: %w", err)
		}
		positions[i].Technical = tech

		fund, err := s.snapshots.GetFundamental(positions[i].Symbol)
		if err != nil {
			return nil, fmt.Errorf("failed to attach fundamental snapshot: %w", err)
		}
		positions[i].Fundamental = fund
	}

	return positions, nil
}

// PortfolioReturns derives a daily return series for the whole portfolio as
// the value-weighted sum of each holding's daily returns, aligned on the most
// recent trading days. Symbols without history contribute nothing; when no
// holding has history the series is empty and the risk layer falls back to
// its conservative estimates.
func (s *Service) PortfolioReturns(positions []domain.Position) ([]float64, error) {
	total := 0.0
	for _, p := range positions {
		total += p.TotalValue()
	}
	if total == 0 {
		return nil, nil
	}

	type weighted struct {
		returns []float64
		weight  float64
	}

	var series []weighted
	minLen := -1
	for _, p := range positions {
		returns, err := s.history.GetDailyReturns(p.Symbol, returnLookbackDays)
		if err != nil {
			return nil, fmt.Errorf("failed to load returns for %s: %w", p.Symbol, err)
		}
		if len(returns) == 0 {
			continue
		}
		series = append(series, weighted{returns: returns, weight: p.TotalValue() / total})
		if minLen < 0 || len(returns) < minLen {
			minLen = len(returns)
		}
	}
	if len(series) == 0 || minLen <= 0 {
		return nil, nil
	}

	portfolio := make([]float64, minLen)
	for _, w := range series {
		// Align on the most recent minLen observations.
		tail := w.returns[len(w.returns)-minLen:]
		for i, r := range tail {
			portfolio[i] += r * w.weight
		}
	}
	return portfolio, nil
}

// BenchmarkReturns loads the benchmark index's daily return series, empty when
// the index has no stored history.
func (s *Service) BenchmarkReturns(symbol string) ([]float64, error) {
	if symbol == "" {
		return nil, nil
	}
	return s.history.GetDailyReturns(symbol, returnLookbackDays)
}
