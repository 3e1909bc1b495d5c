package stats

import (
	"time"

	"trading-journal/internal/models"
)

// Window returns the half-open interval [start, end) of the calendar
// week, month or year containing now, in now's location. Weeks start on
// Monday. ok is false for FilterAll, which has no bounds.
func Window(filter models.TimeFilter, now time.Time) (start, end time.Time, ok bool) {
	switch filter {
	case models.FilterWeek:
		start = StartOfWeek(now)
		return start, start.AddDate(0, 0, 7), true
	case models.FilterMonth:
		start = StartOfMonth(now)
		return start, start.AddDate(0, 1, 0), true
	case models.FilterYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// InWindow reports whether t falls in the filter's window around now.
func InWindow(t time.Time, filter models.TimeFilter, now time.Time) bool {
	start, end, ok := Window(filter, now)
	if !ok {
		return true
	}
	return !t.Before(start) && t.Before(end)
}

// FilterTrades returns the trades inside the filter window, keeping order.
func FilterTrades(trades []models.Trade, filter models.TimeFilter, now time.Time) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if InWindow(t.Date, filter, now) {
			out = append(out, t)
		}
	}
	return out
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday midnight of t's week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight on the first of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
