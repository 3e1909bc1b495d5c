// Package models provides domain models for the trading journal.
package models

// TradeType represents the direction of a trade.
type TradeType string

const (
	TradeBuy  TradeType = "Buy"
	TradeSell TradeType = "Sell"
)

// Valid reports whether t is a known direction.
func (t TradeType) Valid() bool {
	return t == TradeBuy || t == TradeSell
}

// TradeStatus represents the outcome of a closed trade.
type TradeStatus string

const (
	StatusWin       TradeStatus = "Win"
	StatusLoss      TradeStatus = "Loss"
	StatusBreakeven TradeStatus = "BE"
)

// TransactionType represents the direction of a wallet cash movement.
type TransactionType string

const (
	TransactionIncome  TransactionType = "Income"
	TransactionExpense TransactionType = "Expense"
)

// Valid reports whether t is a known transaction kind.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// ObjectiveStatus represents the progress state of an objective.
type ObjectiveStatus string

const (
	ObjectiveInProgress ObjectiveStatus = "In Progress"
	ObjectiveCompleted  ObjectiveStatus = "Completed"
)

// ObjectiveType defines how an objective measures progress.
type ObjectiveType string

const (
	ObjectiveFinancial   ObjectiveType = "Financial"
	ObjectivePerformance ObjectiveType = "Performance"
	ObjectivePersonal    ObjectiveType = "Personal"
)

// Valid reports whether t is a known objective type.
func (t ObjectiveType) Valid() bool {
	switch t {
	case ObjectiveFinancial, ObjectivePerformance, ObjectivePersonal:
		return true
	}
	return false
}

// TimeFilter scopes statistics to a calendar window containing "now".
type TimeFilter string

const (
	FilterWeek  TimeFilter = "Week"
	FilterMonth TimeFilter = "Month"
	FilterYear  TimeFilter = "Year"
	FilterAll   TimeFilter = "All"
)

// ParseTimeFilter parses a filter name, case-sensitive as persisted.
func ParseTimeFilter(s string) (TimeFilter, bool) {
	switch f := TimeFilter(s); f {
	case FilterWeek, FilterMonth, FilterYear, FilterAll:
		return f, true
	}
	return "", false
}
