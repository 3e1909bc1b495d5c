package models

import "time"

// Trade represents one closed position. Result, RiskReward and Status are
// computed once when the trade is logged and never recomputed.
type Trade struct {
	ID         string      `json:"id"`
	Pair       string      `json:"pair"`
	Type       TradeType   `json:"type"`
	LotSize    float64     `json:"lot_size"`
	EntryPrice float64     `json:"entry_price"`
	ExitPrice  float64     `json:"exit_price"`
	StopLoss   float64     `json:"stop_loss"`
	TakeProfit float64     `json:"take_profit"`
	Result     float64     `json:"result_usd"`
	RiskReward float64     `json:"risk_reward"`
	Status     TradeStatus `json:"status"`
	Date       time.Time   `json:"date"`
	Timeframe  string      `json:"timeframe,omitempty"`
	ImageURL   string      `json:"image_url,omitempty"`
	Notes      string      `json:"notes,omitempty"`
}

// TradeInput holds the raw fields collected for a new trade.
type TradeInput struct {
	Pair       string
	Type       TradeType
	LotSize    float64
	EntryPrice float64
	ExitPrice  float64
	StopLoss   float64
	TakeProfit float64
	Date       time.Time
	Timeframe  string
	ImageURL   string
	Notes      string
}
