package cli

import (
	"github.com/spf13/cobra"

	"trading-journal/internal/models"
	"trading-journal/internal/stats"
	"trading-journal/pkg/utils"
)

// addTradeCommands adds trade logging commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "trade",
		Aliases: []string{"trades"},
		Short:   "Log and review closed trades",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeListCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradeAddCmd(app *App) *cobra.Command {
	var (
		direction  string
		lot        float64
		entry      float64
		exit       float64
		stopLoss   float64
		takeProfit float64
		date       string
		timeframe  string
		notes      string
		image      string
	)

	cmd := &cobra.Command{
		Use:   "add <pair>",
		Short: "Log a closed trade",
		Long: `Log a closed trade. Result, risk/reward and outcome are computed from the
prices and never change afterwards.`,
		Example: `  journal trade add XAUUSD --type buy --lot 0.01 --entry 150 --exit 150.5 --sl 149.5 --tp 151.5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			tradeType, err := ParseTradeType(direction)
			if err != nil {
				return err
			}
			at, err := ParseDate(date)
			if err != nil {
				return err
			}

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			trade, err := j.AddTrade(cmd.Context(), models.TradeInput{
				Pair:       args[0],
				Type:       tradeType,
				LotSize:    lot,
				EntryPrice: entry,
				ExitPrice:  exit,
				StopLoss:   stopLoss,
				TakeProfit: takeProfit,
				Date:       at,
				Timeframe:  timeframe,
				ImageURL:   image,
				Notes:      notes,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade %s logged", trade.ID)
			output.Printf("  %s %s %s lot\n", trade.Pair, trade.Type, utils.FormatLot(trade.LotSize))
			output.Printf("  Result:      %s (%s)\n", output.FormatPnL(trade.Result), statusText(output, trade.Status))
			output.Printf("  Risk/Reward: %s\n", FormatRiskReward(trade.RiskReward))
			return nil
		},
	}

	cmd.Flags().StringVarP(&direction, "type", "t", "buy", "trade direction: buy or sell")
	cmd.Flags().Float64VarP(&lot, "lot", "l", 0, "lot size")
	cmd.Flags().Float64Var(&entry, "entry", 0, "entry price")
	cmd.Flags().Float64Var(&exit, "exit", 0, "exit price")
	cmd.Flags().Float64Var(&stopLoss, "sl", 0, "stop-loss price")
	cmd.Flags().Float64Var(&takeProfit, "tp", 0, "take-profit price")
	cmd.Flags().StringVar(&date, "date", "", "close date, YYYY-MM-DD[ HH:MM] (default: now)")
	cmd.Flags().StringVar(&timeframe, "timeframe", "", "chart timeframe, e.g. M15")
	cmd.Flags().StringVar(&notes, "notes", "", "free text notes")
	cmd.Flags().StringVar(&image, "image", "", "screenshot path or URL")
	cmd.MarkFlagRequired("lot")
	cmd.MarkFlagRequired("entry")
	cmd.MarkFlagRequired("exit")

	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	var (
		filter string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades, newest first",
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
			trades := stats.FilterTrades(j.Trades(), f, j.Now())
			if limit > 0 && len(trades) > limit {
				trades = trades[:limit]
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades for %s.", f)
				output.Dim("Tip: log one with 'journal trade add <pair> --lot ... --entry ... --exit ...'")
				return nil
			}

			table := NewTable(output, "Date", "Pair", "Type", "Lot", "Entry", "Exit", "P&L", "R:R", "Status")
			for _, t := range trades {
				table.AddRow(
					FormatDateTime(t.Date),
					TruncateString(t.Pair, 12),
					string(t.Type),
					utils.FormatLot(t.LotSize),
					FormatPrice(t.EntryPrice),
					FormatPrice(t.ExitPrice),
					output.FormatPnL(t.Result),
					FormatRiskReward(t.RiskReward),
					statusText(output, t.Status),
				)
			}
			table.Render()
			output.Println()
			output.Dim("%d trade(s), net %s", len(trades), utils.FormatPnL(stats.TotalPnL(trades), app.Config.Display.Currency))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "time window: week, month, year or all (default from config)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n trades (0: all)")

	return cmd
}

func statusText(output *Output, s models.TradeStatus) string {
	switch s {
	case models.StatusWin:
		return output.Green(string(s))
	case models.StatusLoss:
		return output.Red(string(s))
	}
	return output.Yellow(string(s))
}
