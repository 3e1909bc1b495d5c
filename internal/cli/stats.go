package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trading-journal/internal/errors"
	"trading-journal/internal/stats"
	"trading-journal/pkg/utils"
)

// addStatsCommands adds statistics commands.
func addStatsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newStatsCmd(app))
	rootCmd.AddCommand(newCalendarCmd(app))
	rootCmd.AddCommand(newCurveCmd(app))
}

func newStatsCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"dashboard"},
		Short:   "Show trading and wallet statistics",
		Long: `Show total P&L, win rate, profit factor and average risk/reward for the
trades in the chosen window, and the all-time wallet balance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			if filter == "" {
				filter = string(app.Config.DefaultFilter())
			}
			f, err := ParseFilter(filter)
			if err != nil {
				return err
			}

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			s := j.Stats(f)

			if output.IsJSON() {
				return output.JSON(s)
			}

			output.Box(fmt.Sprintf("Statistics (%s)", s.Filter), []string{
				fmt.Sprintf("Trades:        %d", s.TradeCount),
				fmt.Sprintf("Total P&L:     %s", output.FormatPnL(s.TotalPnL)),
				fmt.Sprintf("Win rate:      %s", utils.FormatRate(s.WinRate)),
				fmt.Sprintf("Profit factor: %s", s.ProfitFactor),
				fmt.Sprintf("Avg R:R:       %s", FormatRiskReward(s.AvgRiskReward)),
				"",
				fmt.Sprintf("Wallet:        %s", output.FormatPnL(s.WalletBalance)),
				fmt.Sprintf("Income:        %s", output.Money(s.TotalIncome)),
				fmt.Sprintf("Expenses:      %s", output.Money(s.TotalExpense)),
			})

			week := stats.CurrentWeek(j.Trades(), j.Now())
			output.Println()
			output.Bold("This week")
			printWeek(output, week)

			if next, ok := j.NextObjective(); ok {
				output.Println()
				output.Printf("Next objective: %s %s %s\n",
					next.Title, ProgressBar(next.Progress(), 10), utils.FormatRate(next.Progress()*100))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "time window: week, month, year or all (default from config)")

	return cmd
}

func printWeek(output *Output, week stats.Week) {
	var days, values []string
	for _, d := range week.Days {
		label := d.Date.Format("Mon")
		value := "-"
		if d.Trades > 0 {
			value = output.FormatPnL(d.PnL)
		}
		width := visibleLen(value)
		if len(label) > width {
			width = len(label)
		}
		days = append(days, label+strings.Repeat(" ", width-len(label)))
		values = append(values, value+strings.Repeat(" ", width-visibleLen(value)))
	}
	output.Printf("  %s\n", strings.Join(days, "  "))
	output.Printf("  %s\n", strings.Join(values, "  "))
	output.Printf("  Total: %s\n", output.FormatPnL(week.Total))
}

func newCalendarCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the daily P&L calendar of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			m, err := ParseMonth(month, j.Now())
			if err != nil {
				return err
			}
			trades := j.Trades()
			ms := stats.Month(trades, m)

			var days []stats.DayPnL
			for d := ms.Month; d.Month() == ms.Month.Month(); d = d.AddDate(0, 0, 1) {
				days = append(days, stats.DailyPnL(trades, d))
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"summary": ms,
					"days":    days,
				})
			}

			output.Bold("%s", ms.Month.Format("January 2006"))
			table := NewTable(output, "Day", "Trades", "P&L")
			for _, d := range days {
				if d.Trades == 0 {
					continue
				}
				table.AddRow(d.Date.Format("Mon 02"), fmt.Sprintf("%d", d.Trades), output.FormatPnL(d.PnL))
			}
			table.Render()

			output.Println()
			output.Printf("  Trades:          %d (%d won, %s)\n", ms.TotalTrades, ms.Wins, utils.FormatRate(ms.WinRate))
			output.Printf("  Gross profit:    %s\n", output.FormatPnL(ms.GrossProfit))
			output.Printf("  Gross loss:      %s\n", output.FormatPnL(ms.GrossLoss))
			output.Printf("  Net P&L:         %s\n", output.FormatPnL(ms.NetPnL))
			output.Printf("  Profitable days: %d, negative days: %d\n", ms.ProfitableDays, ms.NegativeDays)
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month, YYYY-MM (default: current month)")

	return cmd
}

func newCurveCmd(app *App) *cobra.Command {
	var (
		month       string
		granularity string
	)

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Show the cumulative P&L curve",
		Long: `Show cumulative P&L:
  daily    each day of the month
  weekly   each week of the year up to the month
  monthly  each month of the year up to the month`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			g, err := parseGranularity(granularity)
			if err != nil {
				return err
			}

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			m, err := ParseMonth(month, j.Now())
			if err != nil {
				return err
			}
			points := stats.Curve(j.Trades(), m, g)

			if output.IsJSON() {
				return output.JSON(points)
			}

			table := NewTable(output, "Period", "Cumulative P&L")
			for _, p := range points {
				table.AddRow(p.Label, output.FormatPnL(p.Value))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month, YYYY-MM (default: current month)")
	cmd.Flags().StringVarP(&granularity, "granularity", "g", "daily", "daily, weekly or monthly")

	return cmd
}

func parseGranularity(s string) (stats.Granularity, error) {
	if g, ok := stats.ParseGranularity(strings.ToLower(s)); ok {
		return g, nil
	}
	return "", errors.NewValidationError("granularity", s, "must be daily, weekly or monthly")
}
