package universe

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vtbalaji/tradeidea-go/internal/database"
	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

// MetadataRepository stores per-symbol classification metadata (sector,
// industry, market cap, beta). The risk layer tolerates missing rows — they
// default to the Unknown sector and beta 1.0 at the point of use — so reads
// here never invent values.
type MetadataRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewMetadataRepository creates a new metadata repository.
func NewMetadataRepository(db *database.DB, log zerolog.Logger) *MetadataRepository {
	return &MetadataRepository{
		db:  db,
		log: log.With().Str("repository", "symbol_metadata").Logger(),
	}
}

// Migrate creates the metadata schema.
func (r *MetadataRepository) Migrate() error {
	_, err := r.db.Conn().Exec(`
		CREATE TABLE IF NOT EXISTS symbol_metadata (
			symbol     TEXT PRIMARY KEY,
			sector     TEXT NOT NULL DEFAULT '',
			industry   TEXT NOT NULL DEFAULT '',
			market_cap REAL,
			beta       REAL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate symbol metadata: %w", err)
	}
	return nil
}

// Upsert inserts or updates one symbol's metadata.
func (r *MetadataRepository) Upsert(m domain.SymbolMetadata) error {
	_, err := r.db.Conn().Exec(`
		INSERT INTO symbol_metadata (symbol, sector, industry, market_cap, beta)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			sector = excluded.sector,
			industry = excluded.industry,
			market_cap = excluded.market_cap,
			beta = excluded.beta
	`, m.Symbol, m.Sector, m.Industry, nullableFloat(m.MarketCap), nullableFloat(m.Beta))
	if err != nil {
		return fmt.Errorf("failed to upsert metadata for %s: %w", m.Symbol, err)
	}
	return nil
}

// Get fetches one symbol's metadata. Returns (nil, nil) when absent.
func (r *MetadataRepository) Get(symbol string) (*domain.SymbolMetadata, error) {
	row := r.db.Conn().QueryRow(`
		SELECT symbol, sector, industry, market_cap, beta
		FROM symbol_metadata WHERE symbol = ?
	`, symbol)

	m, err := scanMetadata(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata for %s: %w", symbol, err)
	}
	return &m, nil
}

// GetAll fetches metadata for the whole universe, keyed by symbol.
func (r *MetadataRepository) GetAll() (map[string]domain.SymbolMetadata, error) {
	rows, err := r.db.Conn().Query(`
		SELECT symbol, sector, industry, market_cap, beta FROM symbol_metadata
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	result := make(map[string]domain.SymbolMetadata)
	for rows.Next() {
		m, err := scanMetadata(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		result[m.Symbol] = m
	}
	return result, rows.Err()
}

func scanMetadata(scan func(dest ...any) error) (domain.SymbolMetadata, error) {
	var m domain.SymbolMetadata
	var marketCap, beta sql.NullFloat64

	if err := scan(&m.Symbol, &m.Sector, &m.Industry, &marketCap, &beta); err != nil {
		return domain.SymbolMetadata{}, err
	}
	if marketCap.Valid {
		m.MarketCap = &marketCap.Float64
	}
	if beta.Valid {
		m.Beta = &beta.Float64
	}
	return m, nil
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
