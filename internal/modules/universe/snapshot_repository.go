package universe

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vtbalaji/tradeidea-go/internal/database"
	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

// SnapshotRepository stores the latest technical and fundamental snapshot per
// symbol as JSON documents. Snapshots are replaced wholesale on every refresh,
// so a flexible document column beats a migration for every new indicator.
type SnapshotRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewSnapshotRepository creates a new snapshot repository.
func NewSnapshotRepository(db *database.DB, log zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		db:  db,
		log: log.With().Str("repository", "snapshots").Logger(),
	}
}

// Migrate creates the snapshot schema.
func (r *SnapshotRepository) Migrate() error {
	_, err := r.db.Conn().Exec(`
		CREATE TABLE IF NOT EXISTS technical_snapshots (
			symbol TEXT PRIMARY KEY,
			data   TEXT NOT NULL,
			date   TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS fundamental_snapshots (
			symbol TEXT PRIMARY KEY,
			data   TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate snapshots: %w", err)
	}
	return nil
}

// SaveTechnical replaces the technical snapshot for a symbol.
func (r *SnapshotRepository) SaveTechnical(t domain.TechnicalData) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal technical snapshot for %s: %w", t.Symbol, err)
	}

	_, err = r.db.Conn().Exec(`
		INSERT INTO technical_snapshots (symbol, data, date)
		VALUES (?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET data = excluded.data, date = excluded.date
	`, t.Symbol, string(data), t.Date)
	if err != nil {
		return fmt.Errorf("failed to save technical snapshot for %s: %w", t.Symbol, err)
	}
	return nil
}

// GetTechnical fetches the technical snapshot for a symbol. Returns (nil, nil)
// when no snapshot exists.
func (r *SnapshotRepository) GetTechnical(symbol string) (*domain.TechnicalData, error) {
	var data string
	err := r.db.Conn().QueryRow(`
		SELECT data FROM technical_snapshots WHERE symbol = ?
	`, symbol).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get technical snapshot for %s: %w", symbol, err)
	}

	var t domain.TechnicalData
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal technical snapshot for %s: %w", symbol, err)
	}
	return &t, nil
}

// SaveFundamental replaces the fundamental snapshot for a symbol.
func (r *SnapshotRepository) SaveFundamental(f domain.FundamentalData) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal fundamental snapshot for %s: %w", f.Symbol, err)
	}

	_, err = r.db.Conn().Exec(`
		INSERT INTO fundamental_snapshots (symbol, data)
		VALUES (?, ?)
		ON CONFLICT(symbol) DO UPDATE SET data = excluded.data
	`, f.Symbol, string(data))
	if err != nil {
		return fmt.Errorf("failed to save fundamental snapshot for %s: %w", f.Symbol, err)
	}
	return nil
}

// GetFundamental fetches the fundamental snapshot for a symbol. Returns
// (nil, nil) when no snapshot exists.
func (r *SnapshotRepository) GetFundamental(symbol string) (*domain.FundamentalData, error) {
	var data string
	err := r.db.Conn().QueryRow(`
		SELECT data FROM fundamental_snapshots WHERE symbol = ?
	`, symbol).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fundamental snapshot for %s: %w", symbol, err)
	}

	var f domain.FundamentalData
	if err := json.Unmarshal([]byte(data), &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fundamental snapshot for %s: %w", symbol, err)
	}
	return &f, nil
}
