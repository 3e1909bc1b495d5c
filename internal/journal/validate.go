package journal

import (
	"fmt"
	"math"
	"strings"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// invalidAmount matches both ErrInvalidAmount and ErrInputValidation.
func invalidAmount(field string, v float64) error {
	return fmt.Errorf("%w: %w", errors.ErrInvalidAmount,
		errors.NewValidationError(field, v, "must be a positive number"))
}

func validateTrade(in models.TradeInput) error {
	if strings.TrimSpace(in.Pair) == "" {
		return errors.NewValidationError("pair", in.Pair, "is required")
	}
	if !in.Type.Valid() {
		return errors.NewValidationError("type", in.Type, "must be Buy or Sell")
	}
	if !finite(in.LotSize) || in.LotSize <= 0 {
		return invalidAmount("lot_size", in.LotSize)
	}
	prices := []struct {
		name  string
		value float64
	}{
		{"entry_price", in.EntryPrice},
		{"exit_price", in.ExitPrice},
		{"stop_loss", in.StopLoss},
		{"take_profit", in.TakeProfit},
	}
	for _, p := range prices {
		if !finite(p.value) {
			return errors.NewValidationError(p.name, p.value, "must be a number")
		}
	}
	return nil
}

func validateTransaction(in models.TransactionInput) error {
	if !in.Type.Valid() {
		return errors.NewValidationError("type", in.Type, "must be Income or Expense")
	}
	if !finite(in.Amount) || in.Amount <= 0 {
		return invalidAmount("amount", in.Amount)
	}
	if !in.Category.Valid() {
		return errors.NewValidationError("category", in.Category, "unknown category")
	}
	if !in.Category.AllowedFor(in.Type) {
		return errors.NewValidationError("category", in.Category,
			fmt.Sprintf("not allowed for %s", in.Type))
	}
	return nil
}

func validateObjective(in models.ObjectiveInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.NewValidationError("title", in.Title, "is required")
	}
	if !finite(in.TargetValue) || in.TargetValue <= 0 {
		return invalidAmount("target_value", in.TargetValue)
	}
	if !in.Type.Valid() {
		return errors.NewValidationError("type", in.Type, "must be Financial, Performance or Personal")
	}
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		return errors.NewValidationError("end_date", in.EndDate, "is before start_date")
	}
	return nil
}

// validateBundle checks the enumerations of imported records so that a
// payload the journal could never have written is rejected as malformed.
func validateBundle(b models.Bundle) error {
	for i, t := range b.Trades {
		if !t.Type.Valid() {
			return errors.NewImportError("trades", fmt.Errorf("trade %d: unknown type %q", i, t.Type))
		}
		switch t.Status {
		case models.StatusWin, models.StatusLoss, models.StatusBreakeven:
		default:
			return errors.NewImportError("trades", fmt.Errorf("trade %d: unknown status %q", i, t.Status))
		}
	}
	for i, tx := range b.Transactions {
		if !tx.Type.Valid() {
			return errors.NewImportError("transactions", fmt.Errorf("transaction %d: unknown type %q", i, tx.Type))
		}
		if !tx.Category.Valid() {
			return errors.NewImportError("transactions", fmt.Errorf("transaction %d: unknown category %q", i, tx.Category))
		}
	}
	for i, obj := range b.Objectives {
		if !obj.Type.Valid() {
			return errors.NewImportError("objectives", fmt.Errorf("objective %d: unknown type %q", i, obj.Type))
		}
	}
	return nil
}
