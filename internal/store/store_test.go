package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := NewSQLiteKV(filepath.Join(dir, "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	file, err := NewFileKV(filepath.Join(dir, "data"))
	require.NoError(t, err)

	return map[string]KV{
		"sqlite": sqlite,
		"file":   file,
		"memory": NewMemoryKV(),
	}
}

func TestKV_LoadSave(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Load(ctx, KeyTrades)
			assert.True(t, errors.Is(err, errors.ErrDataNotFound))
			assert.True(t, errors.Is(err, errors.ErrStorage))

			at, err := kv.UpdatedAt(ctx, KeyTrades)
			require.NoError(t, err)
			assert.True(t, at.IsZero())

			require.NoError(t, kv.Save(ctx, KeyTrades, []byte(`[1]`)))
			require.NoError(t, kv.Save(ctx, KeyTrades, []byte(`[1,2]`)))

			got, err := kv.Load(ctx, KeyTrades)
			require.NoError(t, err)
			assert.JSONEq(t, `[1,2]`, string(got))

			at, err = kv.UpdatedAt(ctx, KeyTrades)
			require.NoError(t, err)
			assert.False(t, at.IsZero())
		})
	}
}

func TestRepository_EmptyStateUsesDefaults(t *testing.T) {
	repo := NewRepository(NewMemoryKV())

	st, err := repo.LoadState(context.Background())

	require.NoError(t, err)
	assert.Empty(t, st.Trades)
	assert.Empty(t, st.Transactions)
	assert.Empty(t, st.Objectives)
	assert.Equal(t, models.DefaultSettings(), st.Settings)
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewRepository(kv)
			manual := 4.0
			at := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
			want := State{
				Trades: []models.Trade{{
					ID: "T1", Pair: "EURUSD", Type: models.TradeBuy, LotSize: 0.1,
					EntryPrice: 1.1, ExitPrice: 1.2, Result: 10, Status: models.StatusWin, Date: at,
				}},
				Transactions: []models.Transaction{{
					ID: "X1", Type: models.TransactionIncome, Amount: 100, Category: models.CategorySalary, Date: at,
				}},
				Objectives: []models.Objective{{
					ID: "O1", Title: "Gym", Type: models.ObjectivePersonal, TargetValue: 10,
					ManualProgress: &manual, StartDate: at, EndDate: at.AddDate(0, 1, 0),
					Status: models.ObjectiveInProgress,
				}},
				Settings: models.DefaultSettings(),
			}
			want.Settings.Profile.Name = "Ada"

			require.NoError(t, repo.SaveTrades(ctx, want.Trades))
			require.NoError(t, repo.SaveTransactions(ctx, want.Transactions))
			require.NoError(t, repo.SaveObjectives(ctx, want.Objectives))
			require.NoError(t, repo.SaveSettings(ctx, want.Settings))
			got, err := repo.LoadState(ctx)

			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestRepository_PersistedLayout(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewRepository(kv)

	require.NoError(t, repo.SaveTrades(ctx, nil))
	require.NoError(t, repo.SaveSettings(ctx, models.DefaultSettings()))

	trades, err := kv.Load(ctx, "trades")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(trades))

	settings, err := kv.Load(ctx, "appSettings")
	require.NoError(t, err)
	assert.Contains(t, string(settings), `"winTrade":{"enabled":true,"soundEnabled":true`)
	assert.Contains(t, string(settings), `"biometricEnabled":false`)
}

func TestRepository_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Save(ctx, KeyObjectives, []byte(`{oops`)))

	_, err := NewRepository(kv).LoadState(ctx)

	var se *errors.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, KeyObjectives, se.Key)
	assert.Equal(t, "decode", se.Op)
}

func TestOpen(t *testing.T) {
	kv, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	_, err = Open("redis", "")
	assert.True(t, errors.Is(err, errors.ErrConfigInvalid))
}

// flakyKV fails the first busy Saves with lock contention.
type flakyKV struct {
	*MemoryKV
	busy  int
	calls int
}

func (f *flakyKV) Save(ctx context.Context, key string, value []byte) error {
	f.calls++
	if f.calls <= f.busy {
		return errors.NewStorageError(key, "save", sqlite3.Error{Code: sqlite3.ErrBusy})
	}
	return f.MemoryKV.Save(ctx, key, value)
}

func TestRepository_RetriesLockContention(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{MemoryKV: NewMemoryKV(), busy: 2}

	require.NoError(t, NewRepository(kv).SaveTrades(ctx, nil))
	assert.Equal(t, 3, kv.calls)

	data, err := kv.Load(ctx, KeyTrades)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestRepository_DoesNotRetryOtherFailures(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	kv.Fail = errors.New("disk full")

	err := NewRepository(kv).SaveSettings(ctx, models.DefaultSettings())
	assert.EqualError(t, err, "disk full")
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.True(t, IsTransient(errors.NewStorageError("trades", "save", sqlite3.Error{Code: sqlite3.ErrBusy})))
	assert.False(t, IsTransient(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.False(t, IsTransient(errors.ErrStorage))
}

func TestRepository_LastSaved(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryKV())

	saved, err := repo.LastSaved(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved)

	require.NoError(t, repo.SaveTrades(ctx, nil))
	saved, err = repo.LastSaved(ctx)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
	assert.False(t, saved[KeyTrades].IsZero())
}
