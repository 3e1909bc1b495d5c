package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
	"trading-journal/internal/store"
)

var now = time.Date(2026, time.October, 14, 15, 30, 0, 0, time.UTC)

type recorder struct {
	events []models.Event
}

func (r *recorder) Dispatch(_ context.Context, _ models.Settings, events []models.Event) {
	r.events = append(r.events, events...)
}

func (r *recorder) kinds() []models.EventKind {
	var out []models.EventKind
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

func sequence() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type fixture struct {
	j   *Journal
	kv  *store.MemoryKV
	rec *recorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	kv := store.NewMemoryKV()
	rec := &recorder{}
	j, err := Open(context.Background(), store.NewRepository(kv), Options{
		Now:        func() time.Time { return now },
		NewID:      sequence(),
		Dispatcher: rec,
	})
	require.NoError(t, err)
	return fixture{j: j, kv: kv, rec: rec}
}

func buyWin() models.TradeInput {
	return models.TradeInput{
		Pair:       "USDJPY",
		Type:       models.TradeBuy,
		LotSize:    0.01,
		EntryPrice: 150.00,
		ExitPrice:  150.50,
		StopLoss:   149.50,
		TakeProfit: 151.50,
	}
}

func sellLoss() models.TradeInput {
	return models.TradeInput{
		Pair:       "USDJPY",
		Type:       models.TradeSell,
		LotSize:    0.01,
		EntryPrice: 150.00,
		ExitPrice:  150.50,
		StopLoss:   150.50,
		TakeProfit: 149.00,
	}
}

func TestAddTrade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.j.AddTrade(ctx, buyWin())
	require.NoError(t, err)
	assert.Equal(t, "id-1", first.ID)
	assert.Equal(t, 5.0, first.Result)
	assert.Equal(t, 3.0, first.RiskReward)
	assert.Equal(t, models.StatusWin, first.Status)
	assert.Equal(t, now, first.Date)

	second, err := f.j.AddTrade(ctx, sellLoss())
	require.NoError(t, err)
	assert.Equal(t, models.StatusLoss, second.Status)

	trades := f.j.Trades()
	require.Len(t, trades, 2)
	assert.Equal(t, second.ID, trades[0].ID, "newest first")
	assert.Equal(t, []models.EventKind{models.EventTradeWon, models.EventTradeLost}, f.rec.kinds())
	assert.Equal(t, "USDJPY", f.rec.events[0].Label)
	assert.Equal(t, 5.0, f.rec.events[0].Amount)

	data, err := f.kv.Load(ctx, store.KeyTrades)
	require.NoError(t, err)
	var persisted []models.Trade
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Len(t, persisted, 2)
}

func TestAddTrade_BreakevenEmitsNoEvent(t *testing.T) {
	f := newFixture(t)
	in := buyWin()
	in.ExitPrice = in.EntryPrice

	trade, err := f.j.AddTrade(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBreakeven, trade.Status)
	assert.Empty(t, f.rec.events)
}

func TestAddTrade_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.TradeInput)
	}{
		{"missing pair", func(in *models.TradeInput) { in.Pair = "  " }},
		{"unknown type", func(in *models.TradeInput) { in.Type = "Long" }},
		{"zero lot", func(in *models.TradeInput) { in.LotSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := buyWin()
			tt.mutate(&in)

			_, err := f.j.AddTrade(context.Background(), in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInputValidation))
			assert.Empty(t, f.j.Trades())
			assert.Empty(t, f.rec.events)
		})
	}
}

func TestAddTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx, err := f.j.AddTransaction(ctx, models.TransactionInput{
		Type:     models.TransactionIncome,
		Amount:   2500,
		Category: models.CategorySalary,
	})
	require.NoError(t, err)
	assert.Equal(t, now, tx.Date)

	other, err := f.j.AddTransaction(ctx, models.TransactionInput{
		Type:   models.TransactionExpense,
		Amount: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryOther, other.Category)

	txs := f.j.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, other.ID, txs[0].ID)

	summary := f.j.Stats(models.FilterAll)
	assert.Equal(t, 2460.0, summary.WalletBalance)
}

func TestAddTransaction_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.j.AddTransaction(ctx, models.TransactionInput{
		Type: models.TransactionIncome, Amount: 0, Category: models.CategorySalary,
	})
	assert.True(t, errors.Is(err, errors.ErrInvalidAmount))
	assert.True(t, errors.Is(err, errors.ErrInputValidation))

	_, err = f.j.AddTransaction(ctx, models.TransactionInput{
		Type: models.TransactionIncome, Amount: 10, Category: models.CategoryFood,
	})
	var verr *errors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "category", verr.Field)

	_, err = f.j.AddTransaction(ctx, models.TransactionInput{
		Type: "Transfer", Amount: 10,
	})
	assert.True(t, errors.Is(err, errors.ErrInputValidation))

	assert.Empty(t, f.j.Transactions())
}

func TestAddObjective(t *testing.T) {
	f := newFixture(t)

	obj, err := f.j.AddObjective(context.Background(), models.ObjectiveInput{
		Title:       "Emergency fund",
		TargetValue: 1000,
		Type:        models.ObjectiveFinancial,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, obj.CurrentValue)
	assert.Equal(t, 0.0, obj.DepositedFunds)
	assert.Equal(t, models.ObjectiveInProgress, obj.Status)
	assert.Equal(t, now, obj.StartDate)

	_, err = f.j.AddObjective(context.Background(), models.ObjectiveInput{
		Title: "Broken", TargetValue: -1, Type: models.ObjectiveFinancial,
	})
	assert.True(t, errors.Is(err, errors.ErrInvalidAmount))
	assert.Len(t, f.j.Objectives(), 1)
}

func TestDepositToObjective(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	obj, err := f.j.AddObjective(ctx, models.ObjectiveInput{
		Title:       "Laptop",
		TargetValue: 150,
		Type:        models.ObjectiveFinancial,
	})
	require.NoError(t, err)

	obj, tx, err := f.j.DepositToObjective(ctx, obj.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, obj.DepositedFunds)
	assert.Equal(t, 100.0, obj.CurrentValue)
	assert.Equal(t, models.ObjectiveInProgress, obj.Status)
	assert.Equal(t, models.TransactionExpense, tx.Type)
	assert.Equal(t, models.CategoryObjective, tx.Category)
	assert.Equal(t, 100.0, tx.Amount)
	assert.Equal(t, "Deposit to objective: Laptop", tx.Description)
	assert.Len(t, f.j.Transactions(), 1)
	assert.Empty(t, f.rec.events)

	obj, _, err = f.j.DepositToObjective(ctx, obj.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, models.ObjectiveCompleted, obj.Status)
	assert.Equal(t, []models.EventKind{models.EventObjectiveCompleted}, f.rec.kinds())
	assert.Equal(t, "Laptop", f.rec.events[0].Label)
}

func TestDepositToObjective_Rejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	obj, err := f.j.AddObjective(ctx, models.ObjectiveInput{
		Title: "Laptop", TargetValue: 150, Type: models.ObjectiveFinancial,
	})
	require.NoError(t, err)

	_, _, err = f.j.DepositToObjective(ctx, obj.ID, 0)
	assert.True(t, errors.Is(err, errors.ErrInvalidAmount))

	_, _, err = f.j.DepositToObjective(ctx, "missing", 10)
	assert.True(t, errors.Is(err, errors.ErrObjectiveNotFound))

	got, ok := f.j.Objective(obj.ID)
	require.True(t, ok)
	assert.Zero(t, got.DepositedFunds)
	assert.Empty(t, f.j.Transactions())
}

func TestTradesDriveObjectiveCompletionOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.j.AddObjective(ctx, models.ObjectiveInput{
		Title:       "First profit",
		TargetValue: 5,
		Type:        models.ObjectiveFinancial,
		StartDate:   now.Add(-time.Hour),
	})
	require.NoError(t, err)

	_, err = f.j.AddTrade(ctx, buyWin())
	require.NoError(t, err)
	_, err = f.j.AddTrade(ctx, buyWin())
	require.NoError(t, err)

	assert.Equal(t, []models.EventKind{
		models.EventTradeWon,
		models.EventObjectiveCompleted,
		models.EventTradeWon,
	}, f.rec.kinds())
}

func TestUpdatePersonalObjective(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	obj, err := f.j.AddObjective(ctx, models.ObjectiveInput{
		Title: "Read 10 books", TargetValue: 10, Type: models.ObjectivePersonal,
	})
	require.NoError(t, err)

	obj, err = f.j.UpdatePersonalObjective(ctx, obj.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, obj.CurrentValue)
	require.NotNil(t, obj.ManualProgress)
	assert.Equal(t, 4.0, *obj.ManualProgress)

	obj, err = f.j.UpdatePersonalObjective(ctx, obj.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, models.ObjectiveCompleted, obj.Status)
	assert.Equal(t, []models.EventKind{models.EventObjectiveCompleted}, f.rec.kinds())

	_, err = f.j.UpdatePersonalObjective(ctx, "missing", 1)
	assert.True(t, errors.Is(err, errors.ErrObjectiveNotFound))
}

func TestUpdateSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s := f.j.Settings()
	s.Profile.Name = "Ana"
	s.Notifications.WinTrade.Enabled = false
	f.j.UpdateSettings(ctx, s)

	assert.Equal(t, "Ana", f.j.Settings().Profile.Name)

	reopened, err := Open(ctx, store.NewRepository(f.kv), Options{})
	require.NoError(t, err)
	assert.Equal(t, s, reopened.Settings())
}

func TestPersistFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.kv.Fail = errors.New("disk full")

	trade, err := f.j.AddTrade(context.Background(), buyWin())
	require.NoError(t, err)
	assert.Equal(t, trade.ID, f.j.Trades()[0].ID)
	assert.Error(t, f.j.PersistErr())

	f.kv.Fail = nil
	_, err = f.j.AddTrade(context.Background(), buyWin())
	require.NoError(t, err)
	assert.NoError(t, f.j.PersistErr())
}

func TestOpen_RestoresState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.j.AddTrade(ctx, buyWin())
	require.NoError(t, err)
	obj, err := f.j.AddObjective(ctx, models.ObjectiveInput{
		Title: "Goal", TargetValue: 100, Type: models.ObjectiveFinancial,
	})
	require.NoError(t, err)
	_, _, err = f.j.DepositToObjective(ctx, obj.ID, 25)
	require.NoError(t, err)

	reopened, err := Open(ctx, store.NewRepository(f.kv), Options{})
	require.NoError(t, err)
	assert.Equal(t, f.j.Trades(), reopened.Trades())
	assert.Equal(t, f.j.Transactions(), reopened.Transactions())
	assert.Equal(t, f.j.Objectives(), reopened.Objectives())
}

func TestNextObjective(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, ok := f.j.NextObjective()
	assert.False(t, ok)

	a, err := f.j.AddObjective(ctx, models.ObjectiveInput{Title: "A", TargetValue: 100, Type: models.ObjectiveFinancial})
	require.NoError(t, err)
	b, err := f.j.AddObjective(ctx, models.ObjectiveInput{Title: "B", TargetValue: 100, Type: models.ObjectiveFinancial})
	require.NoError(t, err)
	_, _, err = f.j.DepositToObjective(ctx, b.ID, 60)
	require.NoError(t, err)
	_, _, err = f.j.DepositToObjective(ctx, a.ID, 10)
	require.NoError(t, err)

	next, ok := f.j.NextObjective()
	require.True(t, ok)
	assert.Equal(t, b.ID, next.ID)
}

func TestAddObjective_AlreadyReachedEmitsCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	win := buyWin()
	win.LotSize = 2
	win.Date = now.Add(-time.Hour)
	_, err := f.j.AddTrade(ctx, win)
	require.NoError(t, err)
	f.rec.events = nil

	obj, err := f.j.AddObjective(ctx, models.ObjectiveInput{
		Title:       "Monthly target",
		TargetValue: 500,
		Type:        models.ObjectiveFinancial,
		StartDate:   now.AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, obj.CurrentValue)
	assert.Equal(t, models.ObjectiveCompleted, obj.Status)
	require.Equal(t, []models.EventKind{models.EventObjectiveCompleted}, f.rec.kinds())
	assert.Equal(t, obj.ID, f.rec.events[0].ID)
}

func TestAddTrade_RejectsOverflowingResult(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.j.AddTrade(ctx, models.TradeInput{
		Pair:       "XAUUSD",
		Type:       models.TradeBuy,
		LotSize:    1e300,
		EntryPrice: -1e300,
		ExitPrice:  1e300,
	})
	assert.True(t, errors.Is(err, errors.ErrInputValidation))
	assert.Empty(t, f.j.Trades())
	assert.NoError(t, f.j.PersistErr())
	assert.NotPanics(t, func() { f.j.Stats(models.FilterAll) })
}

func TestStats_SaturatesHugeImportedTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payload := `{"trades": [
		{"id": "T1", "pair": "XAUUSD", "type": "Buy", "lot_size": 1, "entry_price": 0, "exit_price": 1,
		 "stop_loss": 0, "take_profit": 0, "result_usd": 1e308, "risk_reward": 0, "status": "Win",
		 "date": "2026-10-13T10:00:00Z"},
		{"id": "T2", "pair": "XAUUSD", "type": "Buy", "lot_size": 1, "entry_price": 0, "exit_price": 1,
		 "stop_loss": 0, "take_profit": 0, "result_usd": 1e308, "risk_reward": 0, "status": "Win",
		 "date": "2026-10-13T11:00:00Z"}
	]}`
	require.NoError(t, f.j.ImportAll(ctx, []byte(payload)))

	_, err := f.j.AddObjective(ctx, models.ObjectiveInput{
		Title: "Moon", TargetValue: 1e6, Type: models.ObjectiveFinancial, StartDate: now.AddDate(-1, 0, 0),
	})
	require.NoError(t, err)

	s := f.j.Stats(models.FilterAll)
	assert.Equal(t, math.MaxFloat64, s.TotalPnL)
	obj := f.j.Objectives()[0]
	assert.Equal(t, math.MaxFloat64, obj.CurrentValue)
	assert.Equal(t, models.ObjectiveCompleted, obj.Status)
	assert.NoError(t, f.j.PersistErr())
}

func TestOpen_DispatchesCompletionsFoundWhileLoading(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	repo := store.NewRepository(kv)

	manual := 12.0
	require.NoError(t, repo.SaveObjectives(ctx, []models.Objective{{
		ID: "O1", Title: "Read", Type: models.ObjectivePersonal, TargetValue: 10,
		ManualProgress: &manual, StartDate: now, Status: models.ObjectiveInProgress,
	}}))

	rec := &recorder{}
	j, err := Open(ctx, repo, Options{Now: func() time.Time { return now }, Dispatcher: rec})
	require.NoError(t, err)
	assert.Equal(t, []models.EventKind{models.EventObjectiveCompleted}, rec.kinds())

	obj, ok := j.Objective("O1")
	require.True(t, ok)
	assert.Equal(t, models.ObjectiveCompleted, obj.Status)

	rec2 := &recorder{}
	_, err = Open(ctx, repo, Options{Dispatcher: rec2})
	require.NoError(t, err)
	assert.Empty(t, rec2.events, "completion is persisted and not fired again")
}
