// Package portfolio stores the user's holdings and serves them to the
// analytics layers with technical and fundamental snapshots attached.
package portfolio

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vtbalaji/tradeidea-go/internal/database"
	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

// ErrPositionNotFound is returned when a symbol has no open position.
var ErrPositionNotFound = errors.New("position not found")

// Repository provides access to portfolio positions.
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new position repository.
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "positions").Logger(),
	}
}

// Migrate creates the positions schema.
func (r *Repository) Migrate() error {
	_, err := r.db.Conn().Exec(`
		CREATE TABLE IF NOT EXISTS positions (
			symbol        TEXT PRIMARY KEY,
			quantity      REAL NOT NULL,
			entry_price   REAL NOT NULL,
			current_price REAL NOT NULL DEFAULT 0,
			stop_loss     REAL,
			target        REAL,
			entry_date    TEXT,
			highest_price REAL,
			exit_at_stop_loss         INTEGER NOT NULL DEFAULT 0,
			exit_below_50ema          INTEGER NOT NULL DEFAULT 0,
			exit_below_100ma          INTEGER NOT NULL DEFAULT 0,
			exit_below_200ma          INTEGER NOT NULL DEFAULT 0,
			exit_on_weekly_supertrend INTEGER NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate positions: %w", err)
	}
	return nil
}

// Upsert inserts or replaces one position.
func (r *Repository) Upsert(p domain.Position) error {
	var entryDate interface{}
	if p.EntryDate != nil {
		entryDate = p.EntryDate.Format("2006-01-02")
	}

	_, err := r.db.Conn().Exec(`
		INSERT INTO positions (
			symbol, quantity, entry_price, current_price, stop_loss, target,
			entry_date, highest_price,
			exit_at_stop_loss, exit_below_50ema, exit_below_100ma,
			exit_below_200ma, exit_on_weekly_supertrend
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			quantity = excluded.quantity,
			entry_price = excluded.entry_price,
			current_price = excluded.current_price,
			stop_loss = excluded.stop_loss,
			target = excluded.target,
			entry_date = excluded.entry_date,
			highest_price = excluded.highest_price,
			exit_at_stop_loss = excluded.exit_at_stop_loss,
			exit_below_50ema = excluded.exit_below_50ema,
			exit_below_100ma = excluded.exit_below_100ma,
			exit_below_200ma = excluded.exit_below_200ma,
			exit_on_weekly_supertrend = excluded.exit_on_weekly_supertrend
	`,
		p.Symbol, p.Quantity, p.EntryPrice, p.CurrentPrice,
		nullableFloat(p.StopLoss), nullableFloat(p.Target),
		entryDate, nullableFloat(p.HighestPrice),
		boolToInt(p.ExitCriteria.ExitAtStopLoss),
		boolToInt(p.ExitCriteria.ExitBelow50EMA),
		boolToInt(p.ExitCriteria.ExitBelow100MA),
		boolToInt(p.ExitCriteria.ExitBelow200MA),
		boolToInt(p.ExitCriteria.ExitOnWeeklySupertrend),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert position %s: %w", p.Symbol, err)
	}
	return nil
}

// UpdatePrice refreshes the current price of a position and ratchets the
// highest observed price when the new price exceeds it.
func (r *Repository) UpdatePrice(symbol string, price float64) error {
	res, err := r.db.Conn().Exec(`
		UPDATE positions SET
			current_price = ?,
			highest_price = MAX(COALESCE(highest_price, 0), ?)
		WHERE symbol = ?
	`, price, price, symbol)
	if err != nil {
		return fmt.Errorf("failed to update price for %s: %w", symbol, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPositionNotFound
	}
	return nil
}

// Get fetches one position by symbol.
func (r *Repository) Get(symbol string) (domain.Position, error) {
	row := r.db.Conn().QueryRow(selectColumns+` WHERE symbol = ?`, symbol)

	p, err := scanPosition(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Position{}, ErrPositionNotFound
	}
	if err != nil {
		return domain.Position{}, fmt.Errorf("failed to get position %s: %w", symbol, err)
	}
	return p, nil
}

// GetAll fetches every open position, ordered by symbol.
func (r *Repository) GetAll() ([]domain.Position, error) {
	rows, err := r.db.Conn().Query(selectColumns + ` ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []domain.Position
	for rows.Next() {
		p, err := scanPosition(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// Delete removes a position. Deleting an absent symbol is not an error.
func (r *Repository) Delete(symbol string) error {
	_, err := r.db.Conn().Exec(`DELETE FROM positions WHERE symbol = ?`, symbol)
	if err != nil {
		return fmt.Errorf("failed to delete position %s: %w", symbol, err)
	}
	return nil
}

const selectColumns = `
	SELECT symbol, quantity, entry_price, current_price, stop_loss, target,
	       entry_date, highest_price,
	       exit_at_stop_loss, exit_below_50ema, exit_below_100ma,
	       exit_below_200ma, exit_on_weekly_supertrend
	FROM positions`

func scanPosition(scan func(dest ...any) error) (domain.Position, error) {
	var p domain.Position
	var stopLoss, target, highest sql.NullFloat64
	var entryDate sql.NullString
	var atStop, below50, below100, below200, weeklySt int

	err := scan(
		&p.Symbol, &p.Quantity, &p.EntryPrice, &p.CurrentPrice,
		&stopLoss, &target, &entryDate, &highest,
		&atStop, &below50, &below100, &below200, &weeklySt,
	)
	if err != nil {
		return domain.Position{}, err
	}

	if stopLoss.Valid {
		p.StopLoss = &stopLoss.Float64
	}
	if target.Valid {
		p.Target = &target.Float64
	}
	if highest.Valid {
		p.HighestPrice = &highest.Float64
	}
	if entryDate.Valid {
		if t, err := time.Parse("2006-01-02", entryDate.String); err == nil {
			p.EntryDate = &t
		}
	}

	p.ExitCriteria = domain.ExitCriteria{
		ExitAtStopLoss:         atStop != 0,
		ExitBelow50EMA:         below50 != 0,
		ExitBelow100MA:         below100 != 0,
		ExitBelow200MA:         below200 != 0,
		ExitOnWeeklySupertrend: weeklySt != 0,
	}
	return p, nil
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
