package cli

import (
	"github.com/spf13/cobra"
)

// addHelpCommands adds help and documentation commands.
func addHelpCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newCommandsCmd(app))
	rootCmd.AddCommand(newExamplesCmd(app))
}

type helpEntry struct {
	cmd  string
	desc string
}

type helpCategory struct {
	name     string
	commands []helpEntry
}

var commandCategories = []helpCategory{
	{
		name: "Trades",
		commands: []helpEntry{
			{"trade add <pair>", "Log a closed trade"},
			{"trade list", "List trades, newest first"},
		},
	},
	{
		name: "Wallet",
		commands: []helpEntry{
			{"wallet add <income|expense> <amount>", "Record a transaction"},
			{"wallet list", "List transactions"},
			{"wallet summary", "Balance and top categories"},
			{"wallet categories", "Available categories"},
		},
	},
	{
		name: "Objectives",
		commands: []helpEntry{
			{"objective add <title>", "Create an objective"},
			{"objective list", "Progress of every objective"},
			{"objective deposit <id> <amount>", "Put money aside for an objective"},
			{"objective progress <id> <value>", "Update a personal objective"},
			{"objective next", "Objective closest to completion"},
		},
	},
	{
		name: "Statistics",
		commands: []helpEntry{
			{"stats", "Dashboard for a time window"},
			{"calendar", "Daily P&L of a month"},
			{"curve", "Cumulative P&L curve"},
		},
	},
	{
		name: "Data",
		commands: []helpEntry{
			{"export", "Export everything as JSON"},
			{"import <file>", "Import a JSON export"},
			{"backup", "Write a dated backup file"},
			{"report", "Markdown or CSV trading report"},
		},
	},
	{
		name: "Settings",
		commands: []helpEntry{
			{"settings show", "Show stored settings"},
			{"settings notify <event>", "Configure notifications"},
			{"config show", "Show config.toml values"},
		},
	},
}

func newCommandsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List all commands by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			if output.IsJSON() {
				out := make(map[string][]string)
				for _, cat := range commandCategories {
					for _, c := range cat.commands {
						out[cat.name] = append(out[cat.name], c.cmd)
					}
				}
				return output.JSON(out)
			}

			output.Bold("Trading Journal Commands")
			output.Println()
			for _, cat := range commandCategories {
				output.Bold("%s", cat.name)
				for _, c := range cat.commands {
					output.Printf("  %-40s %s\n", c.cmd, output.DimText(c.desc))
				}
				output.Println()
			}
			output.Dim("Use 'journal <command> --help' for details.")
			return nil
		},
	}
}

func newExamplesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflows",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			examples := []struct {
				title string
				lines []string
			}{
				{"Log a trade and check the week", []string{
					"journal trade add XAUUSD --type buy --lot 0.01 --entry 150 --exit 150.5 --sl 149.5 --tp 151.5",
					"journal stats --filter week",
				}},
				{"Save for a goal", []string{
					`journal objective add "New laptop" --type financial --target 1500`,
					"journal objective deposit <id> 100",
					"journal objective list",
				}},
				{"Track spending", []string{
					`journal wallet add income 2500 --category salary`,
					`journal wallet add expense 60 --category food --desc "Groceries"`,
					"journal wallet summary",
				}},
				{"Back up and restore", []string{
					"journal backup --dir ~/backups",
					"journal import ~/backups/journal-trading-backup-2026-10-14.json",
				}},
			}

			for _, ex := range examples {
				output.Bold("%s", ex.title)
				for _, l := range ex.lines {
					output.Printf("  $ %s\n", l)
				}
				output.Println()
			}
			return nil
		},
	}
}
