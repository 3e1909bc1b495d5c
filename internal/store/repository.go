package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
	"trading-journal/pkg/utils"
)

// State is the full content of the journal.
type State struct {
	Trades       []models.Trade
	Transactions []models.Transaction
	Objectives   []models.Objective
	Settings     models.Settings
}

// Repository maps the journal collections onto KV documents.
type Repository struct {
	kv    KV
	retry utils.RetryConfig
}

// NewRepository wraps kv. Saves that hit lock contention are retried.
func NewRepository(kv KV) *Repository {
	retry := utils.DefaultRetryConfig()
	retry.Retryable = IsTransient
	return &Repository{kv: kv, retry: retry}
}

// KV returns the underlying key-value store.
func (r *Repository) KV() KV {
	return r.kv
}

// LoadState reads every document. Missing documents yield empty collections
// and default settings; unreadable ones are an error.
func (r *Repository) LoadState(ctx context.Context) (State, error) {
	st := State{Settings: models.DefaultSettings()}

	if err := r.load(ctx, KeyTrades, &st.Trades); err != nil {
		return State{}, err
	}
	if err := r.load(ctx, KeyTransactions, &st.Transactions); err != nil {
		return State{}, err
	}
	if err := r.load(ctx, KeyObjectives, &st.Objectives); err != nil {
		return State{}, err
	}
	if err := r.load(ctx, KeySettings, &st.Settings); err != nil {
		return State{}, err
	}
	return st, nil
}

func (r *Repository) load(ctx context.Context, key string, target interface{}) error {
	data, err := r.kv.Load(ctx, key)
	if errors.Is(err, errors.ErrDataNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return errors.NewStorageError(key, "decode", err)
	}
	return nil
}

func (r *Repository) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewStorageError(key, "encode", err)
	}
	return utils.Retry(ctx, r.retry, func() error {
		return r.kv.Save(ctx, key, data)
	})
}

// SaveTrades persists the trade collection.
func (r *Repository) SaveTrades(ctx context.Context, trades []models.Trade) error {
	return r.save(ctx, KeyTrades, nonNil(trades))
}

// SaveTransactions persists the transaction collection.
func (r *Repository) SaveTransactions(ctx context.Context, txs []models.Transaction) error {
	return r.save(ctx, KeyTransactions, nonNil(txs))
}

// SaveObjectives persists the objective collection.
func (r *Repository) SaveObjectives(ctx context.Context, objs []models.Objective) error {
	return r.save(ctx, KeyObjectives, nonNil(objs))
}

// SaveSettings persists the settings record.
func (r *Repository) SaveSettings(ctx context.Context, s models.Settings) error {
	return r.save(ctx, KeySettings, s)
}

// LastSaved reports when each collection was last written. Collections
// that were never saved are omitted.
func (r *Repository) LastSaved(ctx context.Context) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(Keys))
	for _, key := range Keys {
		at, err := r.kv.UpdatedAt(ctx, key)
		if err != nil {
			return nil, err
		}
		if !at.IsZero() {
			out[key] = at
		}
	}
	return out, nil
}

// Close closes the underlying store.
func (r *Repository) Close() error {
	return r.kv.Close()
}

// Open builds the KV backend named by backend.
func Open(backend, path string) (KV, error) {
	switch backend {
	case "sqlite", "":
		return NewSQLiteKV(path)
	case "file":
		return NewFileKV(path)
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", errors.ErrConfigInvalid, backend)
	}
}

// nonNil makes empty collections encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
