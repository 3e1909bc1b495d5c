// Package stats aggregates logged trades and wallet transactions into
// summary metrics. Every function is pure: inputs are never modified and the
// same inputs always produce the same output.
package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"trading-journal/internal/models"
	"trading-journal/pkg/utils"
)

// ProfitFactor is gross profit over gross loss. A set with gains and no
// losses has an infinite profit factor, kept as +Inf rather than clamped.
type ProfitFactor float64

// infinityJSON is how an infinite profit factor travels in JSON.
const infinityJSON = "Infinity"

// Infinite is the profit factor of a winning set without losses.
var Infinite = ProfitFactor(math.Inf(1))

// IsInfinite reports whether p is the no-loss sentinel.
func (p ProfitFactor) IsInfinite() bool {
	return math.IsInf(float64(p), 1)
}

// String formats p with two decimals, or ∞.
func (p ProfitFactor) String() string {
	if p.IsInfinite() {
		return "∞"
	}
	return fmt.Sprintf("%.2f", float64(p))
}

// MarshalJSON encodes the infinite sentinel as "Infinity".
func (p ProfitFactor) MarshalJSON() ([]byte, error) {
	if p.IsInfinite() {
		return json.Marshal(infinityJSON)
	}
	return json.Marshal(float64(p))
}

// UnmarshalJSON accepts a number or "Infinity".
func (p *ProfitFactor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != infinityJSON {
			return fmt.Errorf("stats: invalid profit factor %q", s)
		}
		*p = Infinite
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = ProfitFactor(f)
	return nil
}

// Summary is the dashboard view of the journal.
type Summary struct {
	Filter        models.TimeFilter `json:"filter"`
	TradeCount    int               `json:"tradeCount"`
	TotalPnL      float64           `json:"totalPnL"`
	WinRate       float64           `json:"winRate"`
	ProfitFactor  ProfitFactor      `json:"profitFactor"`
	AvgRiskReward float64           `json:"avgRR"`
	WalletBalance float64           `json:"walletBalance"`
	TotalIncome   float64           `json:"totalIncome"`
	TotalExpense  float64           `json:"totalExpense"`
}

// Compute aggregates trades within filter (anchored to now) and all
// transactions. Transactions are never filtered.
func Compute(trades []models.Trade, transactions []models.Transaction, filter models.TimeFilter, now time.Time) Summary {
	filtered := FilterTrades(trades, filter, now)
	income, expense := WalletTotals(transactions)

	return Summary{
		Filter:        filter,
		TradeCount:    len(filtered),
		TotalPnL:      TotalPnL(filtered),
		WinRate:       WinRate(filtered),
		ProfitFactor:  ComputeProfitFactor(filtered),
		AvgRiskReward: AvgRiskReward(filtered),
		WalletBalance: sub(income, expense),
		TotalIncome:   income,
		TotalExpense:  expense,
	}
}

// TotalPnL sums trade results.
func TotalPnL(trades []models.Trade) float64 {
	var acc accumulator
	for _, t := range trades {
		acc.add(t.Result)
	}
	return acc.float()
}

// WinRate returns the percentage of winning trades, 0 for an empty set.
func WinRate(trades []models.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.Status == models.StatusWin {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}

// GrossProfit sums positive results.
func GrossProfit(trades []models.Trade) float64 {
	var acc accumulator
	for _, t := range trades {
		if t.Result > 0 {
			acc.add(t.Result)
		}
	}
	return acc.float()
}

// GrossLoss sums negative results; the value is zero or negative.
func GrossLoss(trades []models.Trade) float64 {
	var acc accumulator
	for _, t := range trades {
		if t.Result < 0 {
			acc.add(t.Result)
		}
	}
	return acc.float()
}

// ComputeProfitFactor divides gross profit by absolute gross loss. Without
// losses it is Infinite when there are gains and 0 otherwise.
func ComputeProfitFactor(trades []models.Trade) ProfitFactor {
	gains := GrossProfit(trades)
	losses := math.Abs(GrossLoss(trades))
	switch {
	case losses > 0:
		return ProfitFactor(gains / losses)
	case gains > 0:
		return Infinite
	default:
		return 0
	}
}

// AvgRiskReward is the mean risk/reward ratio, 0 for an empty set.
func AvgRiskReward(trades []models.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	var acc accumulator
	for _, t := range trades {
		acc.add(t.RiskReward)
	}
	return utils.Float(acc.sum.Div(decimal.NewFromInt(int64(len(trades)))))
}

// WalletTotals sums transactions by kind.
func WalletTotals(transactions []models.Transaction) (income, expense float64) {
	var in, out accumulator
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionIncome:
			in.add(tx.Amount)
		case models.TransactionExpense:
			out.add(tx.Amount)
		}
	}
	return in.float(), out.float()
}

// accumulator sums in decimal so totals do not depend on summation order.
type accumulator struct {
	sum decimal.Decimal
}

func (a *accumulator) add(v float64) {
	a.sum = a.sum.Add(utils.Decimal(v))
}

// float saturates totals beyond the float64 range rather than returning ±Inf.
func (a *accumulator) float() float64 {
	return utils.Float(a.sum)
}

func sub(a, b float64) float64 {
	return utils.Float(utils.Decimal(a).Sub(utils.Decimal(b)))
}
