// Package trading evaluates closed trades: profit and loss, risk/reward and
// outcome classification.
package trading

import (
	"github.com/shopspring/decimal"

	"trading-journal/internal/models"
)

// ContractMultiplier converts a price move times lot size into account
// currency. One lot moves ContractMultiplier units per point.
const ContractMultiplier = 1000

var contractMultiplier = decimal.NewFromInt(ContractMultiplier)

// Evaluation holds the values derived from a trade's raw prices.
type Evaluation struct {
	Result     float64
	RiskReward float64
	Status     models.TradeStatus
}

// Evaluate computes the derived fields of a trade. It never fails: economic
// sanity of the input (positive lot size, sensible stops) is the caller's
// responsibility. A result beyond the float64 range comes back infinite.
//
// Arithmetic runs on decimals built from the shortest float representation,
// so 150.50-150.00 on 0.01 lots yields exactly 5.
func Evaluate(in models.TradeInput) Evaluation {
	entry := decimal.NewFromFloat(in.EntryPrice)
	exit := decimal.NewFromFloat(in.ExitPrice)
	lot := decimal.NewFromFloat(in.LotSize)

	move := exit.Sub(entry)
	if in.Type == models.TradeSell {
		move = entry.Sub(exit)
	}
	result, _ := move.Mul(lot).Mul(contractMultiplier).Float64()

	return Evaluation{
		Result:     result,
		RiskReward: RiskReward(in.EntryPrice, in.StopLoss, in.TakeProfit),
		Status:     Classify(result),
	}
}

// RiskReward returns |takeProfit-entry| / |entry-stopLoss|, or 0 when the
// stop sits on the entry.
func RiskReward(entry, stopLoss, takeProfit float64) float64 {
	e := decimal.NewFromFloat(entry)
	risk := e.Sub(decimal.NewFromFloat(stopLoss)).Abs()
	if !risk.IsPositive() {
		return 0
	}
	reward := decimal.NewFromFloat(takeProfit).Sub(e).Abs()
	rr, _ := reward.Div(risk).Float64()
	return rr
}

// Classify maps a signed result to its outcome.
func Classify(result float64) models.TradeStatus {
	switch {
	case result > 0:
		return models.StatusWin
	case result < 0:
		return models.StatusLoss
	default:
		return models.StatusBreakeven
	}
}

// NewTrade builds a trade record from raw input and its evaluation.
func NewTrade(id string, in models.TradeInput) models.Trade {
	ev := Evaluate(in)
	return models.Trade{
		ID:         id,
		Pair:       in.Pair,
		Type:       in.Type,
		LotSize:    in.LotSize,
		EntryPrice: in.EntryPrice,
		ExitPrice:  in.ExitPrice,
		StopLoss:   in.StopLoss,
		TakeProfit: in.TakeProfit,
		Result:     ev.Result,
		RiskReward: ev.RiskReward,
		Status:     ev.Status,
		Date:       in.Date,
		Timeframe:  in.Timeframe,
		ImageURL:   in.ImageURL,
		Notes:      in.Notes,
	}
}
