// Package export renders the journal for use outside the application: CSV
// and markdown trade reports and JSON backup files.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"trading-journal/internal/models"
)

// CSVDateLayout is the timestamp layout of the CSV report.
const CSVDateLayout = "2006-01-02 15:04"

// TradeRow is one line of the CSV trade report.
type TradeRow struct {
	Date       string `csv:"Date"`
	Instrument string `csv:"Instrument"`
	Type       string `csv:"Type"`
	Lot        string `csv:"Lot"`
	BuyPrice   string `csv:"Buy Price"`
	SellPrice  string `csv:"Sell Price"`
	Brokerage  string `csv:"Brokerage"`
	NetPnL     string `csv:"Net P&L"`
	Result     string `csv:"Result"`
	Note       string `csv:"Note"`
}

// TradeRows maps trades to report rows in the given order. Dates are shown
// in loc; nil keeps each trade's own location. Brokerage is not tracked and
// is always reported as zero.
func TradeRows(trades []models.Trade, loc *time.Location) []*TradeRow {
	rows := make([]*TradeRow, 0, len(trades))
	for _, t := range trades {
		date := t.Date
		if loc != nil {
			date = date.In(loc)
		}
		rows = append(rows, &TradeRow{
			Date:       date.Format(CSVDateLayout),
			Instrument: t.Pair,
			Type:       string(t.Type),
			Lot:        fmt.Sprintf("%.2f", t.LotSize),
			BuyPrice:   formatPrice(t.EntryPrice),
			SellPrice:  formatPrice(t.ExitPrice),
			Brokerage:  "0.00",
			NetPnL:     fmt.Sprintf("%.2f", t.Result),
			Result:     string(t.Status),
			Note:       t.Notes,
		})
	}
	return rows
}

// WriteTradesCSV writes the CSV trade report, header included, to w.
func WriteTradesCSV(w io.Writer, trades []models.Trade, loc *time.Location) error {
	rows := TradeRows(trades, loc)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing trade report: %w", err)
	}
	return nil
}

func formatPrice(p float64) string {
	return fmt.Sprintf("%g", p)
}
