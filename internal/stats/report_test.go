package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trading-journal/internal/models"
)

func TestBuildReport(t *testing.T) {
	trades := []models.Trade{
		trade(40, 0, now),
		trade(-15, 0, now.AddDate(-2, 0, 0)),
		trade(10, 0, now),
		trade(-5, 0, now),
	}

	r := BuildReport(trades)

	assert.Equal(t, 4, r.TotalTrades)
	assert.Equal(t, 50.0, r.WinRate)
	assert.Equal(t, 50.0, r.GrossProfit)
	assert.Equal(t, -20.0, r.GrossLoss)
	assert.Equal(t, 30.0, r.NetPnL)
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []models.Transaction{
		{Type: models.TransactionExpense, Category: models.CategoryFood, Amount: 20},
		{Type: models.TransactionExpense, Category: models.CategoryBills, Amount: 100},
		{Type: models.TransactionIncome, Category: models.CategorySalary, Amount: 3000},
		{Type: models.TransactionExpense, Category: models.CategoryFood, Amount: 30},
		{Type: models.TransactionExpense, Category: models.CategoryTravel, Amount: 50},
	}

	got := CategoryBreakdown(txs, models.TransactionExpense, 0)

	assert.Equal(t, []CategoryTotal{
		{Category: models.CategoryBills, Total: 100},
		{Category: models.CategoryFood, Total: 50},
		{Category: models.CategoryTravel, Total: 50},
	}, got)

	assert.Len(t, CategoryBreakdown(txs, models.TransactionExpense, 2), 2)
	assert.Equal(t, []CategoryTotal{{Category: models.CategorySalary, Total: 3000}},
		CategoryBreakdown(txs, models.TransactionIncome, 5))
}

func TestSpendingRatio(t *testing.T) {
	assert.Equal(t, 0.5, SpendingRatio(100, 50))
	assert.Equal(t, 1.0, SpendingRatio(0, 50))
	assert.Equal(t, 0.0, SpendingRatio(0, 0))
}
