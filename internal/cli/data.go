package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"trading-journal/internal/export"
)

// addDataCommands adds backup, import and report commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newImportCmd(app))
	rootCmd.AddCommand(newBackupCmd(app))
	rootCmd.AddCommand(newReportCmd(app))
}

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole journal as JSON",
		Long: `Write trades, transactions, objectives and settings as one JSON document,
the format read by 'journal import'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			data, err := j.ExportAll()
			if err != nil {
				return err
			}
			return writeOut(cmd, out, append(data, '\n'))
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON export",
		Long: `Replace the collections present in the file. Collections missing from the
file are kept. A malformed file changes nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			data, err := readIn(cmd, args[0])
			if err != nil {
				return err
			}
			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			if err := j.ImportAll(cmd.Context(), data); err != nil {
				return err
			}

			counts := map[string]int{
				"trades":       len(j.Trades()),
				"transactions": len(j.Transactions()),
				"objectives":   len(j.Objectives()),
			}
			if output.IsJSON() {
				return output.JSON(counts)
			}
			output.Success("✓ Import complete")
			output.Printf("  Trades:       %d\n", counts["trades"])
			output.Printf("  Transactions: %d\n", counts["transactions"])
			output.Printf("  Objectives:   %d\n", counts["objectives"])
			return nil
		},
	}
}

func newBackupCmd(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a dated JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			data, err := j.ExportAll()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = app.Config.Storage.DataDir
			}
			path, err := export.WriteBackup(dir, data, j.Now())
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path})
			}
			output.Success("✓ Backup written to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "backup directory (default: data directory)")

	return cmd
}

func newReportCmd(app *App) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a trading report",
		Long: `Generate a report of every trade:
  md   markdown summary and trade table, rendered when printed to a terminal
  csv  one row per trade`,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := app.Journal(cmd.Context())
			if err != nil {
				return err
			}
			trades := j.Trades()

			var buf bytes.Buffer
			switch format {
			case "csv":
				if err := export.WriteTradesCSV(&buf, trades, nil); err != nil {
					return err
				}
			case "md", "markdown":
				data := export.NewReportData(j.Settings().Profile.Name, trades, app.Config.Display.Currency, j.Now())
				md, err := export.Markdown(data)
				if err != nil {
					return err
				}
				if out == "" && isTerminal(cmd.OutOrStdout()) {
					width, _, err := term.GetSize(int(os.Stdout.Fd()))
					if err != nil {
						width = 100
					}
					if md, err = export.RenderTerminal(md, width); err != nil {
						return err
					}
				}
				buf.WriteString(md)
			default:
				return fmt.Errorf("unknown report format %q (want md or csv)", format)
			}
			return writeOut(cmd, out, buf.Bytes())
		},
	}

	cmd.Flags().StringVar(&format, "format", "md", "md or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")

	return cmd
}

// writeOut writes data to path, or to the command output when path is
// empty or "-".
func writeOut(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

// readIn reads path, or the command input when path is "-".
func readIn(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
