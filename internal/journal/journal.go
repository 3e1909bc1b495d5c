// Package journal is the only way to change the trading journal. It owns the
// in-memory collections, runs the trade evaluator and the objective progress
// engine after each mutation, persists the touched collections and hands the
// resulting events to a dispatcher.
package journal

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"trading-journal/internal/ids"
	"trading-journal/internal/models"
	"trading-journal/internal/objectives"
	"trading-journal/internal/stats"
	"trading-journal/internal/store"
)

// Store is the persistence collaborator.
type Store interface {
	LoadState(ctx context.Context) (store.State, error)
	SaveTrades(ctx context.Context, trades []models.Trade) error
	SaveTransactions(ctx context.Context, txs []models.Transaction) error
	SaveObjectives(ctx context.Context, objs []models.Objective) error
	SaveSettings(ctx context.Context, s models.Settings) error
}

// Dispatcher receives the events produced by a mutation together with the
// settings in force when it was applied.
type Dispatcher interface {
	Dispatch(ctx context.Context, settings models.Settings, events []models.Event)
}

// Options configures a Journal. Zero values select the defaults.
type Options struct {
	Logger     *zerolog.Logger
	Now        func() time.Time
	NewID      ids.Generator
	Dispatcher Dispatcher
}

// Journal holds the entity store. Trades and transactions are kept
// newest-first.
type Journal struct {
	mu sync.Mutex

	store      Store
	logger     zerolog.Logger
	now        func() time.Time
	newID      ids.Generator
	dispatcher Dispatcher

	trades       []models.Trade
	transactions []models.Transaction
	objectives   []models.Objective
	settings     models.Settings

	// persistErrs holds the last save failure per key.
	persistErrs map[string]error
}

// New returns an empty journal backed by st. st may be nil for a purely
// in-memory journal.
func New(st Store, opts Options) *Journal {
	j := &Journal{
		store:      st,
		logger:     zerolog.Nop(),
		now:        time.Now,
		newID:      ids.New,
		dispatcher: opts.Dispatcher,
		settings:   models.DefaultSettings(),

		persistErrs: make(map[string]error),
	}
	if opts.Logger != nil {
		j.logger = opts.Logger.With().Str("component", "journal").Logger()
	}
	if opts.Now != nil {
		j.now = opts.Now
	}
	if opts.NewID != nil {
		j.newID = opts.NewID
	}
	return j
}

// Open loads the persisted state into a new journal and refreshes the
// objectives against it. Objectives that reached their target while the
// data was edited elsewhere, for instance by an import into another
// install, emit their completion events here.
func Open(ctx context.Context, st Store, opts Options) (*Journal, error) {
	j := New(st, opts)
	if st == nil {
		return j, nil
	}

	state, err := st.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	j.trades = state.Trades
	j.transactions = state.Transactions
	j.objectives = state.Objectives
	j.settings = state.Settings

	events, changed := j.recompute()
	if changed {
		j.persist(ctx, store.KeyObjectives)
	}

	j.logger.Debug().
		Int("trades", len(j.trades)).
		Int("transactions", len(j.transactions)).
		Int("objectives", len(j.objectives)).
		Msg("Journal loaded")

	j.dispatch(ctx, j.settings, events)
	return j, nil
}

// Trades returns a snapshot of the trades, newest first.
func (j *Journal) Trades() []models.Trade {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]models.Trade(nil), j.trades...)
}

// Transactions returns a snapshot of the transactions, newest first.
func (j *Journal) Transactions() []models.Transaction {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]models.Transaction(nil), j.transactions...)
}

// Objectives returns a snapshot of the objectives in creation order.
func (j *Journal) Objectives() []models.Objective {
	j.mu.Lock()
	defer j.mu.Unlock()
	return cloneObjectives(j.objectives)
}

// Objective returns the objective with the given id.
func (j *Journal) Objective(id string) (models.Objective, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	i := j.objectiveIndex(id)
	if i < 0 {
		return models.Objective{}, false
	}
	return cloneObjectives(j.objectives[i : i+1])[0], true
}

// Settings returns the current settings.
func (j *Journal) Settings() models.Settings {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.settings
}

// Stats aggregates the journal for filter relative to the journal clock.
func (j *Journal) Stats(filter models.TimeFilter) stats.Summary {
	j.mu.Lock()
	defer j.mu.Unlock()
	return stats.Compute(j.trades, j.transactions, filter, j.now())
}

// NextObjective returns the in-progress objective closest to completion.
func (j *Journal) NextObjective() (models.Objective, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return objectives.Next(j.objectives)
}

// PersistErr returns a persistence failure that has not been cleared by a
// later successful save of the same collection, or nil.
func (j *Journal) PersistErr() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, key := range store.Keys {
		if err := j.persistErrs[key]; err != nil {
			return err
		}
	}
	return nil
}

// Now returns the journal clock reading.
func (j *Journal) Now() time.Time {
	return j.now()
}

// persist writes the named collections. Failures are logged and kept for
// PersistErr; they never fail the mutation. Callers hold j.mu.
func (j *Journal) persist(ctx context.Context, keys ...string) {
	if j.store == nil {
		return
	}
	for _, key := range keys {
		var err error
		switch key {
		case store.KeyTrades:
			err = j.store.SaveTrades(ctx, j.trades)
		case store.KeyTransactions:
			err = j.store.SaveTransactions(ctx, j.transactions)
		case store.KeyObjectives:
			err = j.store.SaveObjectives(ctx, j.objectives)
		case store.KeySettings:
			err = j.store.SaveSettings(ctx, j.settings)
		}
		if err != nil {
			j.logger.Warn().Err(err).Str("key", key).Msg("Failed to persist collection")
			j.persistErrs[key] = err
			continue
		}
		delete(j.persistErrs, key)
	}
}

// dispatch hands events to the dispatcher. It must be called without j.mu.
func (j *Journal) dispatch(ctx context.Context, settings models.Settings, events []models.Event) {
	if j.dispatcher == nil || len(events) == 0 {
		return
	}
	j.dispatcher.Dispatch(ctx, settings, events)
}

// recompute refreshes the objectives against the trades. It reports the
// completion events and whether any objective changed; persisting is left
// to the caller. Callers hold j.mu.
func (j *Journal) recompute() ([]models.Event, bool) {
	res := objectives.Recompute(j.objectives, j.trades)
	if !res.Changed {
		return nil, false
	}
	j.objectives = res.Objectives
	for _, ev := range res.Events {
		j.logger.Debug().
			Str("event", string(ev.Kind)).
			Str("objective_id", ev.ID).
			Msg("Objective completed")
	}
	return res.Events, true
}

func (j *Journal) objectiveIndex(id string) int {
	for i := range j.objectives {
		if j.objectives[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneObjectives(in []models.Objective) []models.Objective {
	if in == nil {
		return nil
	}
	out := make([]models.Objective, len(in))
	for i, obj := range in {
		if obj.ManualProgress != nil {
			v := *obj.ManualProgress
			obj.ManualProgress = &v
		}
		out[i] = obj
	}
	return out
}
