package universe

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtbalaji/tradeidea-go/internal/database"
	"github.com/vtbalaji/tradeidea-go/internal/domain"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(database.Config{
		Path:    "file::memory:",
		Profile: database.ProfileCache,
		Name:    "test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testHistoryDB(t *testing.T) *HistoryDB {
	t.Helper()
	h := NewHistoryDB(testDB(t), zerolog.Nop())
	require.NoError(t, h.Migrate())
	return h
}

func int64Ptr(v int64) *int64 { return &v }

func TestHistoryDB_RoundTrip(t *testing.T) {
	h := testHistoryDB(t)

	prices := []domain.DailyPrice{
		{Date: "2026-08-26", Open: 100, High: 104, Low: 99, Close: 102, Volume: int64Ptr(1_000_000)},
		{Date: "2026-08-27", Open: 102, High: 106, Low: 101, Close: 105},
		{Date: "2026-08-28", Open: 105, High: 107, Low: 103, Close: 104, Volume: int64Ptr(900_000)},
	}
	require.NoError(t, h.SaveDailyPrices("RELIANCE", prices))

	got, err := h.GetDailyPrices("RELIANCE", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "2026-08-26", got[0].Date, "oldest first")
	assert.Equal(t, "2026-08-28", got[2].Date)
	assert.Equal(t, 102.0, got[0].Close)
	require.NotNil(t, got[0].Volume)
	assert.Equal(t, int64(1_000_000), *got[0].Volume)
	assert.Nil(t, got[1].Volume, "missing volume stays missing")
}

func TestHistoryDB_LimitKeepsMostRecent(t *testing.T) {
	h := testHistoryDB(t)

	prices := []domain.DailyPrice{
		{Date: "2026-08-25", Open: 1, High: 1, Low: 1, Close: 1},
		{Date: "2026-08-26", Open: 2, High: 2, Low: 2, Close: 2},
		{Date: "2026-08-27", Open: 3, High: 3, Low: 3, Close: 3},
	}
	require.NoError(t, h.SaveDailyPrices("TCS", prices))

	got, err := h.GetDailyPrices("TCS", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2026-08-26", got[0].Date, "the limit drops the oldest rows, not the newest")
	assert.Equal(t, "2026-08-27", got[1].Date)
}

func TestHistoryDB_UpsertReplaces(t *testing.T) {
	h := testHistoryDB(t)

	require.NoError(t, h.SaveDailyPrices("INFY", []domain.DailyPrice{
		{Date: "2026-08-28", Open: 100, High: 101, Low: 99, Close: 100},
	}))
	require.NoError(t, h.SaveDailyPrices("INFY", []domain.DailyPrice{
		{Date: "2026-08-28", Open: 100, High: 103, Low: 99, Close: 102},
	}))

	got, err := h.GetDailyPrices("INFY", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 102.0, got[0].Close)
}

func TestHistoryDB_GetDailyReturns(t *testing.T) {
	h := testHistoryDB(t)

	require.NoError(t, h.SaveDailyPrices("HDFC", []domain.DailyPrice{
		{Date: "2026-08-26", Open: 100, High: 100, Low: 100, Close: 100},
		{Date: "2026-08-27", Open: 110, High: 110, Low: 110, Close: 110},
		{Date: "2026-08-28", Open: 121, High: 121, Low: 121, Close: 121},
	}))

	returns, err := h.GetDailyReturns("HDFC", 2)
	require.NoError(t, err)
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, 0.10, returns[1], 1e-9)
}

func TestHistoryDB_Symbols(t *testing.T) {
	h := testHistoryDB(t)

	require.NoError(t, h.SaveDailyPrices("TCS", []domain.DailyPrice{{Date: "2026-08-28", Close: 1}}))
	require.NoError(t, h.SaveDailyPrices("INFY", []domain.DailyPrice{{Date: "2026-08-28", Close: 1}}))

	symbols, err := h.Symbols()
	require.NoError(t, err)
	assert.Equal(t, []string{"INFY", "TCS"}, symbols)
}

func TestMetadataRepository(t *testing.T) {
	r := NewMetadataRepository(testDB(t), zerolog.Nop())
	require.NoError(t, r.Migrate())

	t.Run("missing symbol returns nil without error", func(t *testing.T) {
		m, err := r.Get("GHOST")
		require.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("round trip with optional fields", func(t *testing.T) {
		require.NoError(t, r.Upsert(domain.SymbolMetadata{
			Symbol:    "RELIANCE",
			Sector:    "Energy",
			Industry:  "Oil & Gas",
			MarketCap: domain.Float64Ptr(19e12),
			Beta:      domain.Float64Ptr(1.2),
		}))
		require.NoError(t, r.Upsert(domain.SymbolMetadata{Symbol: "NEWCO", Sector: "IT"}))

		m, err := r.Get("RELIANCE")
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "Energy", m.Sector)
		require.NotNil(t, m.Beta)
		assert.Equal(t, 1.2, *m.Beta)

		newco, err := r.Get("NEWCO")
		require.NoError(t, err)
		require.NotNil(t, newco)
		assert.Nil(t, newco.MarketCap)
		assert.Nil(t, newco.Beta)
	})

	t.Run("upsert replaces and GetAll keys by symbol", func(t *testing.T) {
		require.NoError(t, r.Upsert(domain.SymbolMetadata{Symbol: "NEWCO", Sector: "Financials"}))

		all, err := r.GetAll()
		require.NoError(t, err)
		assert.Len(t, all, 2)
		assert.Equal(t, "Financials", all["NEWCO"].Sector)
	})
}

func TestSnapshotRepository_Technical(t *testing.T) {
	r := NewSnapshotRepository(testDB(t), zerolog.Nop())
	require.NoError(t, r.Migrate())

	t.Run("missing snapshot returns nil without error", func(t *testing.T) {
		snap, err := r.GetTechnical("GHOST")
		require.NoError(t, err)
		assert.Nil(t, snap)
	})

	t.Run("round trip preserves optional fields", func(t *testing.T) {
		tech := domain.TechnicalData{
			Symbol:              "RELIANCE",
			LastPrice:           2300,
			SMA200:              2100,
			RSI14:               58,
			SMA100:              domain.Float64Ptr(2150),
			Supertrend:          domain.Float64Ptr(2180),
			SupertrendDirection: domain.StringPtr(domain.SupertrendBullish),
			Date:                "2026-08-28",
		}
		require.NoError(t, r.SaveTechnical(tech))

		got, err := r.GetTechnical("RELIANCE")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, tech, *got)
	})

	t.Run("save replaces wholesale", func(t *testing.T) {
		updated := domain.TechnicalData{Symbol: "RELIANCE", LastPrice: 2350, Date: "2026-08-29"}
		require.NoError(t, r.SaveTechnical(updated))

		got, err := r.GetTechnical("RELIANCE")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 2350.0, got.LastPrice)
		assert.Nil(t, got.Supertrend, "fields absent from the new snapshot do not survive")
	})
}

func TestSnapshotRepository_Fundamental(t *testing.T) {
	r := NewSnapshotRepository(testDB(t), zerolog.Nop())
	require.NoError(t, r.Migrate())

	fund := domain.FundamentalData{
		Symbol:     "RELIANCE",
		TrailingPE: domain.Float64Ptr(18),
		ReturnOnEquity: domain.Float64Ptr(0.18),
	}
	require.NoError(t, r.SaveFundamental(fund))

	got, err := r.GetFundamental("RELIANCE")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, fund, *got)

	missing, err := r.GetFundamental("GHOST")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
