// Package universe provides access to the symbol universe: historical price
// data and per-symbol classification metadata, both backed by sqlite.
package universe

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vtbalaji/tradeidea-go/internal/database"
	"github.com/vtbalaji/tradeidea-go/internal/domain"
	"github.com/vtbalaji/tradeidea-go/pkg/formulas"
)

// HistoryDB provides access to historical daily price data.
type HistoryDB struct {
	db  *database.DB
	log zerolog.Logger
}

// NewHistoryDB creates a new history database accessor.
func NewHistoryDB(db *database.DB, log zerolog.Logger) *HistoryDB {
	return &HistoryDB{
		db:  db,
		log: log.With().Str("component", "history_db").Logger(),
	}
}

// Migrate creates the price history schema.
func (h *HistoryDB) Migrate() error {
	_, err := h.db.Conn().Exec(`
		CREATE TABLE IF NOT EXISTS daily_prices (
			symbol      TEXT NOT NULL,
			date        TEXT NOT NULL,
			open_price  REAL NOT NULL,
			high_price  REAL NOT NULL,
			low_price   REAL NOT NULL,
			close_price REAL NOT NULL,
			volume      INTEGER,
			PRIMARY KEY (symbol, date)
		);
		CREATE INDEX IF NOT EXISTS idx_daily_prices_symbol ON daily_prices(symbol, date);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate history db: %w", err)
	}
	return nil
}

// SaveDailyPrices upserts a batch of daily prices for a symbol.
func (h *HistoryDB) SaveDailyPrices(symbol string, prices []domain.DailyPrice) error {
	tx, err := h.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO daily_prices (symbol, date, open_price, high_price, low_price, close_price, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol, date) DO UPDATE SET
			open_price = excluded.open_price,
			high_price = excluded.high_price,
			low_price = excluded.low_price,
			close_price = excluded.close_price,
			volume = excluded.volume
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range prices {
		var volume interface{}
		if p.Volume != nil {
			volume = *p.Volume
		}
		if _, err := stmt.Exec(symbol, p.Date, p.Open, p.High, p.Low, p.Close, volume); err != nil {
			return fmt.Errorf("failed to upsert daily price %s %s: %w", symbol, p.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit daily prices: %w", err)
	}
	return nil
}

// GetDailyPrices fetches up to limit daily prices for a symbol, oldest first.
func (h *HistoryDB) GetDailyPrices(symbol string, limit int) ([]domain.DailyPrice, error) {
	rows, err := h.db.Conn().Query(`
		SELECT date, open_price, high_price, low_price, close_price, volume
		FROM (
			SELECT * FROM daily_prices WHERE symbol = ? ORDER BY date DESC LIMIT ?
		)
		ORDER BY date ASC
	`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily prices: %w", err)
	}
	defer rows.Close()

	var prices []domain.DailyPrice
	for rows.Next() {
		var p domain.DailyPrice
		var volume sql.NullInt64

		if err := rows.Scan(&p.Date, &p.Open, &p.High, &p.Low, &p.Close, &volume); err != nil {
			return nil, fmt.Errorf("failed to scan daily price: %w", err)
		}
		if volume.Valid {
			p.Volume = &volume.Int64
		}
		prices = append(prices, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily prices: %w", err)
	}
	return prices, nil
}

// GetCloses fetches up to limit closing prices for a symbol, oldest first.
func (h *HistoryDB) GetCloses(symbol string, limit int) ([]float64, error) {
	prices, err := h.GetDailyPrices(symbol, limit)
	if err != nil {
		return nil, err
	}
	closes := make([]float64, len(prices))
	for i, p := range prices {
		closes[i] = p.Close
	}
	return closes, nil
}

// GetDailyReturns fetches the daily simple returns for a symbol, oldest
// first, derived from up to limit+1 closing prices.
func (h *HistoryDB) GetDailyReturns(symbol string, limit int) ([]float64, error) {
	closes, err := h.GetCloses(symbol, limit+1)
	if err != nil {
		return nil, err
	}
	return formulas.CalculateReturns(closes), nil
}

// Symbols lists every symbol with price history.
func (h *HistoryDB) Symbols() ([]string, error) {
	rows, err := h.db.Conn().Query(`SELECT DISTINCT symbol FROM daily_prices ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}
