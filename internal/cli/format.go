package cli

import (
	"fmt"
	"strings"
	"time"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
)

// Accepted layouts for --date style flags, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses a user supplied date in local time. An empty string
// yields the zero time, which the journal replaces by "now".
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewValidationError("date", s, "expected YYYY-MM-DD or YYYY-MM-DD HH:MM")
}

// ParseMonth parses YYYY-MM, defaulting to the current month.
func ParseMonth(s string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01", s, now.Location())
	if err != nil {
		return time.Time{}, errors.NewValidationError("month", s, "expected YYYY-MM")
	}
	return t, nil
}

// ParseFilter parses a time filter name, case-insensitively.
func ParseFilter(s string) (models.TimeFilter, error) {
	for _, f := range []models.TimeFilter{models.FilterWeek, models.FilterMonth, models.FilterYear, models.FilterAll} {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}
	return "", errors.NewValidationError("filter", s, "must be week, month, year or all")
}

// ParseTradeType parses buy or sell, case-insensitively.
func ParseTradeType(s string) (models.TradeType, error) {
	switch strings.ToLower(s) {
	case "buy", "long":
		return models.TradeBuy, nil
	case "sell", "short":
		return models.TradeSell, nil
	}
	return "", errors.NewValidationError("type", s, "must be buy or sell")
}

// ParseTransactionType parses income or expense, case-insensitively.
func ParseTransactionType(s string) (models.TransactionType, error) {
	switch strings.ToLower(s) {
	case "income", "in":
		return models.TransactionIncome, nil
	case "expense", "out":
		return models.TransactionExpense, nil
	}
	return "", errors.NewValidationError("type", s, "must be income or expense")
}

// ParseObjectiveType parses an objective type, case-insensitively.
func ParseObjectiveType(s string) (models.ObjectiveType, error) {
	for _, t := range []models.ObjectiveType{models.ObjectiveFinancial, models.ObjectivePerformance, models.ObjectivePersonal} {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", errors.NewValidationError("type", s, "must be financial, performance or personal")
}

// FormatDate formats a date.
func FormatDate(t time.Time) string {
	return t.Local().Format("02-Jan-2006")
}

// FormatDateTime formats a date and time.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("02-Jan-2006 15:04")
}

// FormatPrice formats a price without losing precision.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%g", price)
}

// FormatRiskReward formats a risk-reward ratio.
func FormatRiskReward(rr float64) string {
	if rr == 0 {
		return "-"
	}
	return fmt.Sprintf("1:%.2f", rr)
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// CategoryLabel returns the display label of c, or the raw value.
func CategoryLabel(c models.Category) string {
	if info, ok := c.Info(); ok {
		return info.Label
	}
	return string(c)
}
