// Package domain contains the plain records shared between modules.
// These are pure data carriers: no behaviour, no I/O, and the analytics
// layers never mutate them. Nullable analytics fields are pointers —
// nil means "unknown", which is never the same thing as zero.
package domain

import "time"

// DailyPrice represents one end-of-day OHLCV price point.
type DailyPrice struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume *int64  `json:"volume,omitempty"`
}

// SupertrendDirection values for TechnicalData.SupertrendDirection.
const (
	SupertrendBullish = "bullish"
	SupertrendBearish = "bearish"
)

// Overall signal categories produced by the indicator pipeline.
const (
	SignalStrongBuy  = "STRONG_BUY"
	SignalBuy        = "BUY"
	SignalNeutral    = "NEUTRAL"
	SignalSell       = "SELL"
	SignalStrongSell = "STRONG_SELL"
)

// TechnicalData is a per-symbol end-of-day technical snapshot. It is produced
// once per trading day by the indicator pipeline and is immutable within an
// evaluation. Optional indicators (SMA100, Supertrend, the categorical overall
// signal, Bollinger position history) are pointers/slices and may be absent.
type TechnicalData struct {
	Symbol        string   `json:"symbol"`
	LastPrice     float64  `json:"last_price"`
	ChangePercent float64  `json:"change_percent"` // day-over-day close change, %
	SMA20         float64  `json:"sma20"`
	SMA50         float64  `json:"sma50"`
	SMA100        *float64 `json:"sma100,omitempty"`
	SMA200        float64  `json:"sma200"`
	EMA9          float64  `json:"ema9"`
	EMA21         float64  `json:"ema21"`
	EMA50         float64  `json:"ema50"`
	RSI14         float64  `json:"rsi14"`
	BBUpper       float64  `json:"bb_upper"`
	BBMiddle      float64  `json:"bb_middle"`
	BBLower       float64  `json:"bb_lower"`
	MACD          float64  `json:"macd"`
	MACDSignal    float64  `json:"macd_signal"`
	MACDHistogram float64  `json:"macd_histogram"`
	Volume        int64    `json:"volume"`
	AvgVolume20   int64    `json:"avg_volume20"`

	Supertrend          *float64 `json:"supertrend,omitempty"`
	SupertrendDirection *string  `json:"supertrend_direction,omitempty"`
	WeeklySupertrend    *float64 `json:"weekly_supertrend,omitempty"`
	WeeklySupertrendDir *string  `json:"weekly_supertrend_direction,omitempty"`

	// OverallSignal is the categorical signal attached by the indicator
	// pipeline (STRONG_BUY..STRONG_SELL), when it produced one.
	OverallSignal *string `json:"overall_signal,omitempty"`

	// BollingerPositionHistory holds the position of the close within the
	// Bollinger Bands (0=lower, 1=upper) for the most recent days, newest last.
	BollingerPositionHistory []float64 `json:"bollinger_position_history,omitempty"`

	Date string `json:"date"` // snapshot date, YYYY-MM-DD
}

// FundamentalData is a per-symbol fundamental snapshot. Every ratio may be nil,
// meaning the data provider did not report it.
type FundamentalData struct {
	Symbol string `json:"symbol"`

	// Valuation
	TrailingPE   *float64 `json:"trailing_pe,omitempty"`
	ForwardPE    *float64 `json:"forward_pe,omitempty"`
	PEGRatio     *float64 `json:"peg_ratio,omitempty"`
	PriceToBook  *float64 `json:"price_to_book,omitempty"`
	PriceToSales *float64 `json:"price_to_sales,omitempty"`

	// Leverage and liquidity
	DebtToEquity *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio *float64 `json:"current_ratio,omitempty"`

	// Profitability
	ReturnOnEquity  *float64 `json:"return_on_equity,omitempty"` // fraction, 0.15 = 15%
	ReturnOnAssets  *float64 `json:"return_on_assets,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	NetMargin       *float64 `json:"net_margin,omitempty"`

	// Growth (fractions)
	EarningsGrowth          *float64 `json:"earnings_growth,omitempty"`
	RevenueGrowth           *float64 `json:"revenue_growth,omitempty"`
	QuarterlyEarningsGrowth *float64 `json:"quarterly_earnings_growth,omitempty"`

	// Dividends (fractions)
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	PayoutRatio   *float64 `json:"payout_ratio,omitempty"`

	MarketCap *float64 `json:"market_cap,omitempty"` // ₹
	Beta      *float64 `json:"beta,omitempty"`

	// Optional computed composite score (0-100) and categorical rating.
	FundamentalScore  *float64 `json:"fundamental_score,omitempty"`
	FundamentalRating *string  `json:"fundamental_rating,omitempty"`
}

// Fundamental rating categories.
const (
	RatingExcellent = "EXCELLENT"
	RatingGood      = "GOOD"
	RatingAverage   = "AVERAGE"
	RatingWeak      = "WEAK"
	RatingPoor      = "POOR"
)

// ExitCriteria holds the per-position alerting toggles a user can enable.
type ExitCriteria struct {
	ExitAtStopLoss         bool `json:"exit_at_stop_loss"`
	ExitBelow50EMA         bool `json:"exit_below_50ema"`
	ExitBelow100MA         bool `json:"exit_below_100ma"`
	ExitBelow200MA         bool `json:"exit_below_200ma"`
	ExitOnWeeklySupertrend bool `json:"exit_on_weekly_supertrend"`
}

// Position is a single portfolio holding.
type Position struct {
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	EntryPrice   float64 `json:"entry_price"`
	CurrentPrice float64 `json:"current_price"`

	StopLoss  *float64   `json:"stop_loss,omitempty"`
	Target    *float64   `json:"target,omitempty"`
	EntryDate *time.Time `json:"entry_date,omitempty"`

	// HighestPrice is the highest close observed since entry, used by
	// trailing-stop exit rules. Unknown when the caller did not track it.
	HighestPrice *float64 `json:"highest_price,omitempty"`

	ExitCriteria ExitCriteria `json:"exit_criteria"`

	// Snapshots attached at evaluation time, when available.
	Technical   *TechnicalData   `json:"technical,omitempty"`
	Fundamental *FundamentalData `json:"fundamental,omitempty"`
}

// TotalValue returns the current market value of the position.
func (p Position) TotalValue() float64 {
	return p.Quantity * p.CurrentPrice
}

// ProfitPercent returns the unrealized return of the position in percent.
// Returns 0 when the entry price is missing or zero.
func (p Position) ProfitPercent() float64 {
	if p.EntryPrice == 0 {
		return 0
	}
	return (p.CurrentPrice - p.EntryPrice) / p.EntryPrice * 100
}

// HoldingDays returns the number of calendar days the position has been held
// as of now. Returns 0 when the entry date is unknown.
func (p Position) HoldingDays(now time.Time) int {
	if p.EntryDate == nil {
		return 0
	}
	d := int(now.Sub(*p.EntryDate).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// SymbolMetadata holds classification data for a symbol, used by the
// distribution and risk layers. Looked up from the universe store; a missing
// entry defaults to sector "Unknown" and beta 1.0 at the point of use.
type SymbolMetadata struct {
	Symbol    string   `json:"symbol"`
	Sector    string   `json:"sector"`
	Industry  string   `json:"industry"`
	MarketCap *float64 `json:"market_cap,omitempty"` // ₹
	Beta      *float64 `json:"beta,omitempty"`
}

// Float64Ptr returns a pointer to v. Convenience for building records with
// optional fields.
func Float64Ptr(v float64) *float64 { return &v }

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }
