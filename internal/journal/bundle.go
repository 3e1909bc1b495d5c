package journal

import (
	"bytes"
	"context"
	"encoding/json"

	"trading-journal/internal/errors"
	"trading-journal/internal/models"
	"trading-journal/internal/store"
)

// Export returns a copy of the full state in bundle form.
func (j *Journal) Export() models.Bundle {
	j.mu.Lock()
	defer j.mu.Unlock()

	settings := j.settings
	return models.Bundle{
		Trades:       append([]models.Trade{}, j.trades...),
		Transactions: append([]models.Transaction{}, j.transactions...),
		Objectives:   append([]models.Objective{}, cloneObjectives(j.objectives)...),
		Settings:     &settings,
	}
}

// ExportAll serializes the full state as an indented JSON bundle.
func (j *Journal) ExportAll() ([]byte, error) {
	data, err := json.MarshalIndent(j.Export(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode export")
	}
	return data, nil
}

// ImportAll replaces every collection present in data, a JSON bundle as
// written by ExportAll. Absent or null keys leave their collection as is.
// The payload is decoded and checked in full before anything is applied: on
// error, which always matches errors.ErrMalformedImport, the journal is
// unchanged. Objectives are refreshed against the resulting trades.
func (j *Journal) ImportAll(ctx context.Context, data []byte) error {
	b, present, err := decodeBundle(data)
	if err != nil {
		return err
	}
	if err := validateBundle(b); err != nil {
		return err
	}

	j.mu.Lock()
	var keys []string
	if present[store.KeyTrades] {
		j.trades = b.Trades
		keys = append(keys, store.KeyTrades)
	}
	if present[store.KeyTransactions] {
		j.transactions = b.Transactions
		keys = append(keys, store.KeyTransactions)
	}
	objectivesTouched := false
	if present[store.KeyObjectives] {
		j.objectives = b.Objectives
		objectivesTouched = true
	}
	if b.Settings != nil {
		j.settings = *b.Settings
		keys = append(keys, store.KeySettings)
	}

	events, changed := j.recompute()
	if changed || objectivesTouched {
		keys = append(keys, store.KeyObjectives)
	}
	j.persist(ctx, keys...)
	settings := j.settings
	j.mu.Unlock()

	j.logger.Debug().
		Str("event", "import").
		Strs("keys", keys).
		Msg("Bundle imported")

	j.dispatch(ctx, settings, events)
	return nil
}

// decodeBundle parses data and reports which collection keys carry a value.
func decodeBundle(data []byte) (models.Bundle, map[string]bool, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Bundle{}, nil, errors.NewImportError("", err)
	}
	if raw == nil {
		return models.Bundle{}, nil, errors.NewImportError("", errors.New("payload is not an object"))
	}

	var b models.Bundle
	present := make(map[string]bool)
	fields := []struct {
		key    string
		target interface{}
	}{
		{store.KeyTrades, &b.Trades},
		{store.KeyTransactions, &b.Transactions},
		{store.KeyObjectives, &b.Objectives},
		{"settings", &b.Settings},
	}
	for _, f := range fields {
		msg, ok := raw[f.key]
		if !ok || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			continue
		}
		if err := json.Unmarshal(msg, f.target); err != nil {
			return models.Bundle{}, nil, errors.NewImportError(f.key, err)
		}
		present[f.key] = true
	}
	return b, present, nil
}
