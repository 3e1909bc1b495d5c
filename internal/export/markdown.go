package export

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/glamour"

	"trading-journal/internal/models"
	"trading-journal/internal/stats"
	"trading-journal/pkg/utils"
)

// ReportData is everything printed on the trading report.
type ReportData struct {
	Profile     string
	GeneratedOn time.Time
	Currency    string
	Stats       stats.Report
	Trades      []models.Trade
}

// NewReportData assembles report data for trades, newest first as stored.
func NewReportData(profile string, trades []models.Trade, currency string, now time.Time) ReportData {
	if profile == "" {
		profile = models.DefaultProfileName
	}
	if currency == "" {
		currency = utils.DefaultCurrency
	}
	return ReportData{
		Profile:     profile,
		GeneratedOn: now,
		Currency:    currency,
		Stats:       stats.BuildReport(trades),
		Trades:      trades,
	}
}

const reportTemplate = `# Trading report: {{.Profile}}

Generated on {{date .GeneratedOn}}

## Summary

| Total trades | Win rate | Gross profit | Gross loss | Net P&L |
|---:|---:|---:|---:|---:|
| {{.Stats.TotalTrades}} | {{rate .Stats.WinRate}} | {{money .Stats.GrossProfit}} | {{money .Stats.GrossLoss}} | {{pnl .Stats.NetPnL}} |

## Trades
{{if .Trades}}
| Date | Instrument | Type | Lot | Entry | Exit | Net P&L | Result |
|---|---|---|---:|---:|---:|---:|---|
{{- range .Trades}}
| {{date .Date}} | {{cell .Pair}} | {{.Type}} | {{lot .LotSize}} | {{price .EntryPrice}} | {{price .ExitPrice}} | {{pnl .Result}} | {{.Status}} |
{{- end}}
{{else}}
No trades recorded.
{{end}}`

// Markdown renders the report as a markdown document.
func Markdown(data ReportData) (string, error) {
	funcs := template.FuncMap{
		"date":  func(t time.Time) string { return t.Format("2006-01-02") },
		"rate":  utils.FormatRate,
		"money": func(v float64) string { return utils.FormatMoney(v, data.Currency) },
		"pnl":   func(v float64) string { return utils.FormatPnL(v, data.Currency) },
		"lot":   utils.FormatLot,
		"price": formatPrice,
		"cell":  escapeCell,
	}
	tmpl, err := template.New("report").Funcs(funcs).Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return buf.String(), nil
}

// RenderTerminal formats markdown for display in a terminal of the given
// width. width <= 0 disables wrapping.
func RenderTerminal(markdown string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	return r.Render(markdown)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
