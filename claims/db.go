package claims

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"go.uber.org/zap"

	"github.com/vestinglabs/claimgate/logging"
)

var (
	rootKey         = []byte("root_current")
	previousRootKey = []byte("root_previous")
)

const consumedPrefix = "consumed/"

// database persists the consumed-leaf set and the current root.
// The consumed cache holds committed leaves only; entries are added
// after a transaction commits, never before.
type database struct {
	db       *leveldb.DB
	consumed *lru.Cache
}

func newDatabase(dbPath string, cacheSize int) (*database, error) {
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database @ %s: %w", dbPath, err)
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating consumed-leaf cache: %w", err)
	}

	return &database{db, cache}, nil
}

func (db *database) Close() error {
	return db.db.Close()
}

func consumedKey(leaf []byte) []byte {
	return append([]byte(consumedPrefix), leaf...)
}

// Root returns the current root, or nil if none was committed yet.
func (db *database) Root(ctx context.Context) ([]byte, error) {
	root, err := db.db.Get(rootKey, nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("getting current root from DB: %w", err)
	}
	return root, nil
}

// ReplaceRoot installs newRoot as the current root, keeping the
// superseded value under a separate key. The retained value is operator
// forensics only; verification never consults it.
func (db *database) ReplaceRoot(ctx context.Context, newRoot []byte) error {
	trans, err := db.db.OpenTransaction()
	if err != nil {
		return err
	}

	current, err := trans.Get(rootKey, nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		// first root
	case err != nil:
		trans.Discard()
		return fmt.Errorf("querying current root: %w", err)
	default:
		if err := trans.Put(previousRootKey, current, nil); err != nil {
			logging.FromContext(ctx).Warn("failed to retain superseded root", zap.Error(err))
		}
	}
	if err := trans.Put(rootKey, newRoot, &opt.WriteOptions{Sync: true}); err != nil {
		trans.Discard()
		return fmt.Errorf("saving new root: %w", err)
	}
	return trans.Commit()
}

// IsConsumed reports whether the leaf was consumed by a committed claim.
func (db *database) IsConsumed(ctx context.Context, leaf []byte) (bool, error) {
	if _, ok := db.consumed.Get(string(leaf)); ok {
		return true, nil
	}
	has, err := db.db.Has(consumedKey(leaf), nil)
	if err != nil {
		return false, fmt.Errorf("querying consumed flag: %w", err)
	}
	if has {
		db.consumed.Add(string(leaf), struct{}{})
	}
	return has, nil
}

// Consume marks the leaf consumed and runs delegate inside the same
// transaction. Either both the mark and delegate's effects commit, or
// neither does: a delegate failure discards the transaction and the
// leaf stays claimable. Returns ErrAlreadyClaimed if the leaf was
// consumed before.
func (db *database) Consume(ctx context.Context, leaf []byte, delegate func() error) error {
	trans, err := db.db.OpenTransaction()
	if err != nil {
		return err
	}

	_, err = trans.Get(consumedKey(leaf), nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		// not consumed yet
	case err != nil:
		trans.Discard()
		return fmt.Errorf("querying consumed flag: %w", err)
	default:
		trans.Discard()
		return fmt.Errorf("%w: leaf %X", ErrAlreadyClaimed, leaf)
	}

	// the mark precedes the delegation so a re-entrant attempt can
	// never observe the leaf unconsumed
	if err := trans.Put(consumedKey(leaf), []byte{1}, &opt.WriteOptions{Sync: true}); err != nil {
		trans.Discard()
		return fmt.Errorf("marking leaf consumed: %w", err)
	}

	if err := delegate(); err != nil {
		trans.Discard()
		return err
	}

	if err := trans.Commit(); err != nil {
		return fmt.Errorf("committing claim: %w", err)
	}
	db.consumed.Add(string(leaf), struct{}{})
	return nil
}
