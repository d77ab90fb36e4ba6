package tokenmetrics

import "github.com/shopspring/decimal"

// Row models for use with DecodeData. They cover the commonly used columns
// only; the Envelope always keeps the full body.

type Token struct {
	TokenID     int64             `json:"TOKEN_ID"`
	TokenName   string            `json:"TOKEN_NAME"`
	Symbol      string            `json:"TOKEN_SYMBOL"`
	Category    []string          `json:"CATEGORY_LIST,omitempty"`
	Exchanges   []string          `json:"EXCHANGE_LIST,omitempty"`
	Contracts   map[string]string `json:"CONTRACT_ADDRESS,omitempty"`
	CurrentRank int               `json:"CURRENT_RANK,omitempty"`
}

type OHLCV struct {
	TokenID   int64           `json:"TOKEN_ID"`
	TokenName string          `json:"TOKEN_NAME"`
	Symbol    string          `json:"TOKEN_SYMBOL"`
	Timestamp string          `json:"TIMESTAMP"`
	Open      decimal.Decimal `json:"OPEN"`
	High      decimal.Decimal `json:"HIGH"`
	Low       decimal.Decimal `json:"LOW"`
	Close     decimal.Decimal `json:"CLOSE"`
	Volume    decimal.Decimal `json:"VOLUME"`
}

type InvestorGrade struct {
	TokenID          int64    `json:"TOKEN_ID"`
	TokenName        string   `json:"TOKEN_NAME"`
	Symbol           string   `json:"TOKEN_SYMBOL"`
	Date             string   `json:"DATE"`
	InvestorGrade    float64  `json:"TM_INVESTOR_GRADE"`
	FundamentalGrade *float64 `json:"FUNDAMENTAL_GRADE,omitempty"`
	TechnologyGrade  *float64 `json:"TECHNOLOGY_GRADE,omitempty"`
	ValuationGrade   *float64 `json:"VALUATION_GRADE,omitempty"`
}

type TraderGrade struct {
	TokenID          int64    `json:"TOKEN_ID"`
	TokenName        string   `json:"TOKEN_NAME"`
	Symbol           string   `json:"TOKEN_SYMBOL"`
	Date             string   `json:"DATE"`
	TraderGrade      float64  `json:"TM_TRADER_GRADE"`
	TraderGrade24hPc *float64 `json:"TM_TRADER_GRADE_24H_PCT_CHANGE,omitempty"`
	TAGrade          *float64 `json:"TA_GRADE,omitempty"`
	QuantGrade       *float64 `json:"QUANT_GRADE,omitempty"`
}

type TraderIndex struct {
	Date       string   `json:"DATE"`
	IndexValue *float64 `json:"INDEX_VALUE,omitempty"`
	Holdings   any      `json:"HOLDINGS,omitempty"`
}

type MarketMetric struct {
	Date                 string   `json:"DATE"`
	TotalCryptoMarketCap *float64 `json:"TOTAL_CRYPTO_MCAP,omitempty"`
	HighGradeCoinsPct    *float64 `json:"TM_GRADE_PERC_HIGH_COINS,omitempty"`
	Signal               int      `json:"TM_GRADE_SIGNAL"`
	LastSignal           int      `json:"LAST_TM_GRADE_SIGNAL"`
}

type AIReport struct {
	TokenID           int64  `json:"TOKEN_ID"`
	TokenName         string `json:"TOKEN_NAME"`
	Symbol            string `json:"SYMBOL"`
	TraderReport      string `json:"TRADER_REPORT,omitempty"`
	FundamentalReport string `json:"FUNDAMENTAL_REPORT,omitempty"`
	TechnologyReport  string `json:"TECHNOLOGY_REPORT,omitempty"`
}

type TradingSignal struct {
	TokenID       int64    `json:"TOKEN_ID"`
	TokenName     string   `json:"TOKEN_NAME"`
	Symbol        string   `json:"TOKEN_SYMBOL"`
	Date          string   `json:"DATE"`
	Signal        Signal   `json:"TRADING_SIGNAL"`
	Trend         Signal   `json:"TOKEN_TREND"`
	SignalReturns *float64 `json:"TRADING_SIGNALS_RETURNS,omitempty"`
	HoldReturns   *float64 `json:"HOLDING_RETURNS,omitempty"`
}
