// Package badger provides a Badger-backed session store so shell sessions
// survive server restarts.
//
// Keys are "s:<session>:<field>" with the raw value as the Badger value.
// Session fields are tiny, so no serialization layer is needed.
package badger

import (
	"context"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerSessionStore persists session fields in a Badger database.
type BadgerSessionStore struct {
	db *badger.DB
}

// Options configures the Badger session store.
type Options struct {
	// Path is the directory for the Badger database.
	Path string

	// InMemory runs Badger without persistence. Used by tests.
	InMemory bool
}

// NewBadgerSessionStore opens the session database at opts.Path.
func NewBadgerSessionStore(opts Options) (*BadgerSessionStore, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)
	badgerOpts.Logger = nil
	if opts.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	return &BadgerSessionStore{db: db}, nil
}

func fieldKey(sessionID, field string) []byte {
	return []byte("s:" + sessionID + ":" + field)
}

// Get returns the value of field for sessionID, or "" if unset.
func (s *BadgerSessionStore) Get(ctx context.Context, sessionID, field string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(fieldKey(sessionID, field))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err != nil {
		return "", fmt.Errorf("failed to read session field %s: %w", field, err)
	}
	return value, nil
}

// Set stores value under field for sessionID.
func (s *BadgerSessionStore) Set(ctx context.Context, sessionID, field, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(fieldKey(sessionID, field), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write session field %s: %w", field, err)
	}
	return nil
}

// Delete removes field for sessionID. Idempotent.
func (s *BadgerSessionStore) Delete(ctx context.Context, sessionID, field string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(fieldKey(sessionID, field))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete session field %s: %w", field, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerSessionStore) Close() error {
	return s.db.Close()
}
