package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
	"trading-journal/internal/stats"
	"trading-journal/pkg/utils"
)

// topCategories is how many categories the wallet summary breaks down.
const topCategories = 5

// addWalletCommands adds income and expense commands.
func addWalletCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Track income and expenses",
		Long:  "Record cash movements and review the wallet balance.",
	}

	cmd.AddCommand(newWalletAddCmd(app))
	cmd.AddCommand(newWalletListCmd(app))
	cmd.AddCommand(newWalletSummaryCmd(app))
	cmd.AddCommand(newWalletCategoriesCmd(app))

	rootCmd.AddCommand(cmd)
}

func newWalletAddCmd(app *App) *cobra.Command {
	var (
		category    string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:     "add <income|expense> <amount>",
		Short:   "Record a transaction",
		Example: `  journal wallet add expense 42.50 --category food --desc "Groceries"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			kind, err := ParseTransactionType(args[0])
			if err != nil {
				return err
			}
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.NewValidationError("amount", args[1], "must be a number")
			}
			var cat models.Category
			if category != "" {
				c, ok := models.ParseCategory(category)
				if !ok {
					return errors.NewValidationError("category", category, "unknown category, see 'journal wallet categories'")
				}
				cat = c
			}
			at, err := ParseDate(date)
			if err != nil {
				return err
			}

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			tx, err := j.AddTransaction(cmd.Context(), models.TransactionInput{
				Type:        kind,
				Amount:      amount,
				Category:    cat,
				Description: description,
				Date:        at,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(tx)
			}
			output.Success("✓ %s of %s recorded (%s)", tx.Type, output.Money(tx.Amount), CategoryLabel(tx.Category))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category (default: other)")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "description")
	cmd.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD[ HH:MM] (default: now)")

	return cmd
}

func newWalletListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			txs := j.Transactions()
			if limit > 0 && len(txs) > limit {
				txs = txs[:limit]
			}

			if output.IsJSON() {
				return output.JSON(txs)
			}
			if len(txs) == 0 {
				output.Info("No transactions recorded.")
				return nil
			}

			table := NewTable(output, "Date", "Type", "Category", "Amount", "Description")
			for _, tx := range txs {
				amount := output.Money(tx.Amount)
				if tx.Type == models.TransactionExpense {
					amount = output.Red("-" + amount)
				} else {
					amount = output.Green("+" + amount)
				}
				table.AddRow(
					FormatDate(tx.Date),
					string(tx.Type),
					CategoryLabel(tx.Category),
					amount,
					TruncateString(tx.Description, 40),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n transactions (0: all)")

	return cmd
}

// walletSummary is the JSON shape of the wallet view.
type walletSummary struct {
	Balance       float64               `json:"balance"`
	TotalIncome   float64               `json:"totalIncome"`
	TotalExpense  float64               `json:"totalExpense"`
	SpendingRatio float64               `json:"spendingRatio"`
	TopExpenses   []stats.CategoryTotal `json:"topExpenses"`
	TopIncome     []stats.CategoryTotal `json:"topIncome"`
}

func newWalletSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show balance and spending by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			txs := j.Transactions()
			income, expense := stats.WalletTotals(txs)
			sum := walletSummary{
				Balance:       j.Stats(models.FilterAll).WalletBalance,
				TotalIncome:   income,
				TotalExpense:  expense,
				SpendingRatio: stats.SpendingRatio(income, expense),
				TopExpenses:   stats.CategoryBreakdown(txs, models.TransactionExpense, topCategories),
				TopIncome:     stats.CategoryBreakdown(txs, models.TransactionIncome, topCategories),
			}

			if output.IsJSON() {
				return output.JSON(sum)
			}

			output.Box("Wallet", []string{
				fmt.Sprintf("Balance:  %s", output.FormatPnL(sum.Balance)),
				fmt.Sprintf("Income:   %s", output.Green(output.Money(sum.TotalIncome))),
				fmt.Sprintf("Expenses: %s", output.Red(output.Money(sum.TotalExpense))),
				fmt.Sprintf("Spent:    %s %s", ProgressBar(sum.SpendingRatio, 20), utils.FormatRate(sum.SpendingRatio*100)),
			})

			printBreakdown(output, "Top expenses", sum.TopExpenses, sum.TotalExpense)
			printBreakdown(output, "Top income", sum.TopIncome, sum.TotalIncome)
			return nil
		},
	}
}

func printBreakdown(output *Output, title string, totals []stats.CategoryTotal, overall float64) {
	if len(totals) == 0 {
		return
	}
	output.Println()
	output.Bold(title)
	table := NewTable(output, "Category", "Amount", "Share")
	for _, ct := range totals {
		share := 0.0
		if overall > 0 {
			share = ct.Total / overall * 100
		}
		table.AddRow(CategoryLabel(ct.Category), output.Money(ct.Total), utils.FormatRate(share))
	}
	table.Render()
}

func newWalletCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List transaction categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			if output.IsJSON() {
				return output.JSON(models.Categories())
			}
			for _, kind := range []models.TransactionType{models.TransactionIncome, models.TransactionExpense} {
				output.Bold("%s", kind)
				var labels []string
				for _, c := range models.CategoriesFor(kind) {
					labels = append(labels, strings.ToLower(CategoryLabel(c)))
				}
				output.Printf("  %s\n", strings.Join(labels, ", "))
			}
			return nil
		},
	}
}
