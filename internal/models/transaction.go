package models

import "time"

// Transaction represents one wallet cash movement.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// TransactionInput holds the raw fields collected for a new transaction.
type TransactionInput struct {
	Type        TransactionType
	Amount      float64
	Category    Category
	Description string
	Date        time.Time
}
