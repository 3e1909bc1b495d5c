// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"trading-journal/internal/errors"
)

// Keys of the persisted documents.
const (
	KeyTrades       = "trades"
	KeyTransactions = "transactions"
	KeyObjectives   = "objectives"
	KeySettings     = "appSettings"
)

// Keys lists every persisted document key.
var Keys = []string{KeyTrades, KeyTransactions, KeyObjectives, KeySettings}

// KV is a key-value store holding one JSON document per key.
type KV interface {
	// Load returns the document stored under key, or an error matching
	// errors.ErrDataNotFound when nothing was saved yet.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the document stored under key.
	Save(ctx context.Context, key string, value []byte) error
	// UpdatedAt returns when key was last saved, zero if never.
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
	Close() error
}

func notFound(key string) error {
	return errors.NewStorageError(key, "load", errors.ErrDataNotFound)
}
