package stats

import (
	"fmt"
	"time"

	"trading-journal/internal/models"
)

// DayPnL is the net result of one calendar day.
type DayPnL struct {
	Date   time.Time `json:"date"`
	PnL    float64   `json:"pnl"`
	Trades int       `json:"trades"`
}

// DailyPnL sums the results of trades closed on day's calendar date.
func DailyPnL(trades []models.Trade, day time.Time) DayPnL {
	var acc accumulator
	n := 0
	for _, t := range trades {
		if sameDay(day, t.Date) {
			acc.add(t.Result)
			n++
		}
	}
	return DayPnL{Date: StartOfDay(day), PnL: acc.float(), Trades: n}
}

// Week is the Monday-first strip of the current week.
type Week struct {
	Days  []DayPnL `json:"days"`
	Total float64  `json:"total"`
}

// CurrentWeek returns the seven days of now's week and their total.
func CurrentWeek(trades []models.Trade, now time.Time) Week {
	start := StartOfWeek(now)
	w := Week{Days: make([]DayPnL, 0, 7)}
	var acc accumulator
	for i := 0; i < 7; i++ {
		d := DailyPnL(trades, start.AddDate(0, 0, i))
		w.Days = append(w.Days, d)
		acc.add(d.PnL)
	}
	w.Total = acc.float()
	return w
}

// MonthStats summarizes one calendar month.
type MonthStats struct {
	Month          time.Time `json:"month"`
	TotalTrades    int       `json:"totalTrades"`
	Wins           int       `json:"wins"`
	GrossProfit    float64   `json:"grossProfit"`
	GrossLoss      float64   `json:"grossLoss"`
	NetPnL         float64   `json:"netPnL"`
	WinRate        float64   `json:"winRate"`
	ProfitableDays int       `json:"profitableDays"`
	NegativeDays   int       `json:"negativeDays"`
}

// Month summarizes trades of the calendar month containing month.
func Month(trades []models.Trade, month time.Time) MonthStats {
	start := StartOfMonth(month)
	end := start.AddDate(0, 1, 0)

	inMonth := make([]models.Trade, 0)
	for _, t := range trades {
		d := t.Date.In(start.Location())
		if !d.Before(start) && d.Before(end) {
			inMonth = append(inMonth, t)
		}
	}

	ms := MonthStats{
		Month:       start,
		TotalTrades: len(inMonth),
		GrossProfit: GrossProfit(inMonth),
		GrossLoss:   GrossLoss(inMonth),
		NetPnL:      TotalPnL(inMonth),
		WinRate:     WinRate(inMonth),
	}
	for _, t := range inMonth {
		if t.Status == models.StatusWin {
			ms.Wins++
		}
	}
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		pnl := DailyPnL(inMonth, day).PnL
		switch {
		case pnl > 0:
			ms.ProfitableDays++
		case pnl < 0:
			ms.NegativeDays++
		}
	}
	return ms
}

// Granularity selects the bucket size of an equity curve.
type Granularity string

const (
	Daily   Granularity = "Daily"
	Weekly  Granularity = "Weekly"
	Monthly Granularity = "Monthly"
)

// ParseGranularity parses a curve granularity name.
func ParseGranularity(s string) (Granularity, bool) {
	switch g := Granularity(s); g {
	case Daily, Weekly, Monthly:
		return g, true
	}
	return "", false
}

// CurvePoint is one cumulative step of an equity curve.
type CurvePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Curve builds a cumulative P&L curve anchored on month:
//   - Daily: every day of the month.
//   - Weekly: Monday weeks from the one containing January 1st up to the
//     month's end, labelled W1, W2, ...
//   - Monthly: January up to and including the month.
func Curve(trades []models.Trade, month time.Time, g Granularity) []CurvePoint {
	monthStart := StartOfMonth(month)
	monthEnd := monthStart.AddDate(0, 1, 0)
	yearStart := time.Date(monthStart.Year(), time.January, 1, 0, 0, 0, 0, monthStart.Location())

	var points []CurvePoint
	var cumulative accumulator
	step := func(label string, from, to time.Time) {
		cumulative.add(sumBetween(trades, from, to))
		points = append(points, CurvePoint{Label: label, Value: cumulative.float()})
	}

	switch g {
	case Weekly:
		i := 1
		for w := StartOfWeek(yearStart); w.Before(monthEnd); w = w.AddDate(0, 0, 7) {
			step(fmt.Sprintf("W%d", i), w, w.AddDate(0, 0, 7))
			i++
		}
	case Monthly:
		for m := yearStart; !m.After(monthStart); m = m.AddDate(0, 1, 0) {
			step(m.Format("Jan"), m, m.AddDate(0, 1, 0))
		}
	default:
		for d := monthStart; d.Before(monthEnd); d = d.AddDate(0, 0, 1) {
			step(fmt.Sprintf("%d", d.Day()), d, d.AddDate(0, 0, 1))
		}
	}
	return points
}

func sumBetween(trades []models.Trade, from, to time.Time) float64 {
	var acc accumulator
	for _, t := range trades {
		if !t.Date.Before(from) && t.Date.Before(to) {
			acc.add(t.Result)
		}
	}
	return acc.float()
}
