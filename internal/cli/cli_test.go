package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-journal/internal/config"
	"trading-journal/internal/errors"
	"trading-journal/internal/models"
	"trading-journal/internal/stats"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Dir: dir,
		Storage: config.StorageConfig{
			Backend: "file",
			Path:    filepath.Join(dir, "data"),
			DataDir: dir,
		},
		Display: config.DisplayConfig{
			Currency:      "USD",
			DefaultFilter: string(models.FilterAll),
		},
	}
}

// execute runs one CLI invocation, as a separate process would.
func execute(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(cfg, zerolog.Nop())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func executeJSON(t *testing.T, cfg *config.Config, target interface{}, args ...string) {
	t.Helper()
	out, err := execute(t, cfg, append(args, "--json")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), target), out)
}

func TestTradeAddAndStats(t *testing.T) {
	cfg := testConfig(t)

	var trade models.Trade
	executeJSON(t, cfg, &trade, "trade", "add", "XAUUSD",
		"--type", "buy", "--lot", "0.01", "--entry", "150", "--exit", "150.5", "--sl", "149.5", "--tp", "151.5")
	assert.Equal(t, 5.0, trade.Result)
	assert.Equal(t, 3.0, trade.RiskReward)
	assert.Equal(t, models.StatusWin, trade.Status)
	assert.NotEmpty(t, trade.ID)

	var summary stats.Summary
	executeJSON(t, cfg, &summary, "stats")
	assert.Equal(t, 1, summary.TradeCount)
	assert.Equal(t, 5.0, summary.TotalPnL)
	assert.Equal(t, 100.0, summary.WinRate)
	assert.True(t, summary.ProfitFactor.IsInfinite())

	var trades []models.Trade
	executeJSON(t, cfg, &trades, "trade", "list", "--filter", "week")
	require.Len(t, trades, 1)
	assert.Equal(t, trade.ID, trades[0].ID)
}

func TestTradeAdd_Validation(t *testing.T) {
	cfg := testConfig(t)

	_, err := execute(t, cfg, "trade", "add", "EURUSD", "--type", "sideways", "--lot", "1", "--entry", "1", "--exit", "2")
	assert.ErrorIs(t, err, errors.ErrInputValidation)

	_, err = execute(t, cfg, "trade", "add", "EURUSD", "--lot", "0", "--entry", "1", "--exit", "2")
	assert.ErrorIs(t, err, errors.ErrInvalidAmount)

	var trades []models.Trade
	executeJSON(t, cfg, &trades, "trade", "list")
	assert.Empty(t, trades)
}

func TestObjectiveDeposit(t *testing.T) {
	cfg := testConfig(t)

	var obj models.Objective
	executeJSON(t, cfg, &obj, "objective", "add", "Laptop", "--type", "personal", "--target", "1000")
	assert.Equal(t, models.ObjectiveInProgress, obj.Status)

	var deposit struct {
		Objective   models.Objective   `json:"objective"`
		Transaction models.Transaction `json:"transaction"`
	}
	executeJSON(t, cfg, &deposit, "objective", "deposit", obj.ID, "100")
	assert.Equal(t, 100.0, deposit.Objective.DepositedFunds)
	assert.Equal(t, 100.0, deposit.Objective.CurrentValue)
	assert.Equal(t, models.TransactionExpense, deposit.Transaction.Type)
	assert.Equal(t, models.CategoryObjective, deposit.Transaction.Category)

	executeJSON(t, cfg, &obj, "objective", "progress", obj.ID, "900")
	assert.Equal(t, 1000.0, obj.CurrentValue)
	assert.Equal(t, models.ObjectiveCompleted, obj.Status)

	var txs []models.Transaction
	executeJSON(t, cfg, &txs, "wallet", "list")
	require.Len(t, txs, 1)
	assert.Equal(t, 100.0, txs[0].Amount)

	_, err := execute(t, cfg, "objective", "deposit", "--", obj.ID, "-5")
	assert.ErrorIs(t, err, errors.ErrInvalidAmount)
	_, err = execute(t, cfg, "objective", "deposit", "missing", "5")
	assert.ErrorIs(t, err, errors.ErrObjectiveNotFound)
}

func TestWalletSummary(t *testing.T) {
	cfg := testConfig(t)

	_, err := execute(t, cfg, "wallet", "add", "income", "2000", "--category", "salary")
	require.NoError(t, err)
	_, err = execute(t, cfg, "wallet", "add", "expense", "500", "--category", "food")
	require.NoError(t, err)

	_, err = execute(t, cfg, "wallet", "add", "income", "10", "--category", "food")
	assert.ErrorIs(t, err, errors.ErrInputValidation)

	var sum walletSummary
	executeJSON(t, cfg, &sum, "wallet", "summary")
	assert.Equal(t, 1500.0, sum.Balance)
	assert.Equal(t, 0.25, sum.SpendingRatio)
	require.Len(t, sum.TopExpenses, 1)
	assert.Equal(t, models.CategoryFood, sum.TopExpenses[0].Category)
}

func TestExportImport(t *testing.T) {
	cfg := testConfig(t)

	_, err := execute(t, cfg, "wallet", "add", "income", "100")
	require.NoError(t, err)

	before, err := execute(t, cfg, "export")
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"trades": [`), 0o644))
	_, err = execute(t, cfg, "import", bad)
	assert.ErrorIs(t, err, errors.ErrMalformedImport)

	after, err := execute(t, cfg, "export")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	partial := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(`{"transactions": []}`), 0o644))
	var counts map[string]int
	executeJSON(t, cfg, &counts, "import", partial)
	assert.Equal(t, 0, counts["transactions"])
}

func TestReportCSV(t *testing.T) {
	cfg := testConfig(t)

	_, err := execute(t, cfg, "trade", "add", "EURUSD", "--type", "sell", "--lot", "0.01", "--entry", "150", "--exit", "150.5")
	require.NoError(t, err)

	out, err := execute(t, cfg, "report", "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], ",EURUSD,Sell,0.01,150,150.5,0.00,-5.00,Loss,")
}

func TestSettingsNotify(t *testing.T) {
	cfg := testConfig(t)

	var s models.Settings
	executeJSON(t, cfg, &s, "settings", "notify", "loss", "--enabled=false")
	assert.False(t, s.Notifications.LossTrade.Enabled)
	assert.True(t, s.Notifications.WinTrade.Enabled)

	executeJSON(t, cfg, &s, "settings", "show")
	assert.False(t, s.Notifications.LossTrade.Enabled)

	_, err := execute(t, cfg, "settings", "notify", "bogus")
	assert.ErrorIs(t, err, errors.ErrInputValidation)
}

func TestVersion(t *testing.T) {
	var v map[string]string
	executeJSON(t, testConfig(t), &v, "version")
	assert.Equal(t, Version, v["version"])
}

func TestParseHelpers(t *testing.T) {
	f, err := ParseFilter("month")
	require.NoError(t, err)
	assert.Equal(t, models.FilterMonth, f)

	_, err = ParseFilter("decade")
	assert.ErrorIs(t, err, errors.ErrInputValidation)

	d, err := ParseDate("2026-10-14 09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, d.Hour())

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	assert.Equal(t, "abcd...", TruncateString("abcdefghij", 7))
	assert.Equal(t, "1:3.00", FormatRiskReward(3))
	assert.Equal(t, "-", FormatRiskReward(0))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", ProgressBar(0.5, 10))
	assert.Equal(t, "██████████", ProgressBar(2, 10))
	assert.Equal(t, "░░░░░░░░░░", ProgressBar(-1, 10))
}

func TestConfigShow_LastSaved(t *testing.T) {
	cfg := testConfig(t)

	out, err := execute(t, cfg, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Last saved")
	assert.Regexp(t, `trades:\s+never`, out)

	_, err = execute(t, cfg, "wallet", "add", "income", "100")
	require.NoError(t, err)

	out, err = execute(t, cfg, "config", "show")
	require.NoError(t, err)
	assert.Regexp(t, `transactions:\s+\d{2}-\w{3}-\d{4}`, out)
	assert.Regexp(t, `trades:\s+never`, out)
}
