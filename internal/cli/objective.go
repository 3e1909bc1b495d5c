package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
	"trading-journal/pkg/utils"
)

// addObjectiveCommands adds objective tracking commands.
func addObjectiveCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "objective",
		Aliases: []string{"objectives", "goal"},
		Short:   "Set and track savings and performance objectives",
		Long: `Objectives measure progress in one of three ways:

  financial    net trading result since the start date, plus deposits
  performance  win rate (%) since the start date, plus deposits
  personal     a value you update by hand, plus deposits`,
	}

	cmd.AddCommand(newObjectiveAddCmd(app))
	cmd.AddCommand(newObjectiveListCmd(app))
	cmd.AddCommand(newObjectiveDepositCmd(app))
	cmd.AddCommand(newObjectiveProgressCmd(app))
	cmd.AddCommand(newObjectiveNextCmd(app))

	rootCmd.AddCommand(cmd)
}

func newObjectiveAddCmd(app *App) *cobra.Command {
	var (
		kind        string
		target      float64
		description string
		image       string
		start       string
		end         string
	)

	cmd := &cobra.Command{
		Use:     "add <title>",
		Short:   "Create an objective",
		Example: `  journal objective add "New laptop" --type financial --target 1500 --end 2026-12-31`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			objType, err := ParseObjectiveType(kind)
			if err != nil {
				return err
			}
			startDate, err := ParseDate(start)
			if err != nil {
				return err
			}
			endDate, err := ParseDate(end)
			if err != nil {
				return err
			}

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			obj, err := j.AddObjective(cmd.Context(), models.ObjectiveInput{
				Title:       args[0],
				Description: description,
				TargetValue: target,
				Type:        objType,
				ImageURL:    image,
				StartDate:   startDate,
				EndDate:     endDate,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(obj)
			}
			output.Success("✓ Objective %s created", obj.ID)
			printObjective(output, obj)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "financial", "financial, performance or personal")
	cmd.Flags().Float64Var(&target, "target", 0, "target value")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "description")
	cmd.Flags().StringVar(&image, "image", "", "image path or URL")
	cmd.Flags().StringVar(&start, "start", "", "start date (default: now)")
	cmd.Flags().StringVar(&end, "end", "", "end date")
	cmd.MarkFlagRequired("target")

	return cmd
}

func newObjectiveListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List objectives and their progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			objs := j.Objectives()

			if output.IsJSON() {
				return output.JSON(objs)
			}
			if len(objs) == 0 {
				output.Info("No objectives yet.")
				output.Dim("Tip: create one with 'journal objective add <title> --target <value>'")
				return nil
			}

			table := NewTable(output, "ID", "Title", "Type", "Progress", "Current", "Target", "Status")
			for _, o := range objs {
				table.AddRow(
					o.ID,
					TruncateString(o.Title, 24),
					string(o.Type),
					fmt.Sprintf("%s %s", ProgressBar(o.Progress(), 10), utils.FormatRate(o.Progress()*100)),
					objectiveValue(output, o, o.CurrentValue),
					objectiveValue(output, o, o.TargetValue),
					objectiveStatus(output, o.Status),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newObjectiveDepositCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <id> <amount>",
		Short: "Put money aside for an objective",
		Long: `Adds the amount to the objective's deposited funds and records the same
amount as an expense in the wallet.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.NewValidationError("amount", args[1], "must be a number")
			}

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			obj, tx, err := j.DepositToObjective(cmd.Context(), args[0], amount)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"objective":   obj,
					"transaction": tx,
				})
			}
			output.Success("✓ Deposited %s to %s", output.Money(amount), obj.Title)
			printObjective(output, obj)
			return nil
		},
	}
}

func newObjectiveProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id> <value>",
		Short: "Set the manual progress of a personal objective",
		Long: `Sets the manual progress value. Only personal objectives count it towards
their current value; other types accept and keep it unused.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.NewValidationError("value", args[1], "must be a number")
			}

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			obj, err := j.UpdatePersonalObjective(cmd.Context(), args[0], value)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(obj)
			}
			if obj.Type != models.ObjectivePersonal {
				output.Warning("%s is a %s objective; manual progress does not count towards it", obj.Title, obj.Type)
			}
			printObjective(output, obj)
			return nil
		},
	}
}

func newObjectiveNextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the objective closest to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			obj, ok := j.NextObjective()

			if output.IsJSON() {
				if !ok {
					return output.JSON(nil)
				}
				return output.JSON(obj)
			}
			if !ok {
				output.Info("No objective in progress.")
				return nil
			}
			printObjective(output, obj)
			return nil
		},
	}
}

func printObjective(output *Output, o models.Objective) {
	lines := []string{
		fmt.Sprintf("Type:     %s", o.Type),
		fmt.Sprintf("Progress: %s %s", ProgressBar(o.Progress(), 20), utils.FormatRate(o.Progress()*100)),
		fmt.Sprintf("Current:  %s of %s", objectiveValue(output, o, o.CurrentValue), objectiveValue(output, o, o.TargetValue)),
		fmt.Sprintf("Deposits: %s", output.Money(o.DepositedFunds)),
		fmt.Sprintf("Status:   %s", objectiveStatus(output, o.Status)),
	}
	if !o.EndDate.IsZero() {
		lines = append(lines, fmt.Sprintf("Ends:     %s", FormatDate(o.EndDate)))
	}
	output.Box(o.Title, lines)
}

// objectiveValue formats v in the objective's unit: money for financial
// objectives, percent for performance and a plain number otherwise.
func objectiveValue(output *Output, o models.Objective, v float64) string {
	switch o.Type {
	case models.ObjectiveFinancial:
		return output.Money(v)
	case models.ObjectivePerformance:
		return utils.FormatRate(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func objectiveStatus(output *Output, s models.ObjectiveStatus) string {
	if s == models.ObjectiveCompleted {
		return output.Green(string(s))
	}
	return output.Yellow(string(s))
}
