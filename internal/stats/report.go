package stats

import (
	"sort"

	"trading-journal/internal/models"
)

// Report holds the all-time figures printed on trading reports.
type Report struct {
	TotalTrades int     `json:"totalTrades"`
	WinRate     float64 `json:"winRate"`
	GrossProfit float64 `json:"grossProfit"`
	GrossLoss   float64 `json:"grossLoss"`
	NetPnL      float64 `json:"netPnL"`
}

// BuildReport aggregates every trade, ignoring any time filter.
func BuildReport(trades []models.Trade) Report {
	return Report{
		TotalTrades: len(trades),
		WinRate:     WinRate(trades),
		GrossProfit: GrossProfit(trades),
		GrossLoss:   GrossLoss(trades),
		NetPnL:      TotalPnL(trades),
	}
}

// CategoryTotal is the amount spent or earned under one category.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    float64         `json:"total"`
}

// CategoryBreakdown totals transactions of kind by category, largest first.
// Ties keep the order in which categories first appear. limit <= 0 keeps
// every category.
func CategoryBreakdown(transactions []models.Transaction, kind models.TransactionType, limit int) []CategoryTotal {
	index := make(map[models.Category]int)
	var sums []accumulator
	var order []models.Category
	for _, tx := range transactions {
		if tx.Type != kind {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(order)
			index[tx.Category] = i
			order = append(order, tx.Category)
			sums = append(sums, accumulator{})
		}
		sums[i].add(tx.Amount)
	}

	out := make([]CategoryTotal, len(order))
	for i, c := range order {
		out[i] = CategoryTotal{Category: c, Total: sums[i].float()}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SpendingRatio is expense over income. Without income it is 1 when anything
// was spent and 0 otherwise.
func SpendingRatio(income, expense float64) float64 {
	switch {
	case income > 0:
		return expense / income
	case expense > 0:
		return 1
	default:
		return 0
	}
}
