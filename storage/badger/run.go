package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/tenantfirstaid/lawcorpus/storage"
)

// SaveRun implements storage.RunRecorder.
func (r *DocumentRepository) SaveRun(ctx context.Context, run *storage.ImportRun) error {
	value, err := marshalRun(run)
	if err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(lastRunKey), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LastRun implements storage.RunRecorder.
// Returns nil, nil if no run has been recorded.
func (r *DocumentRepository) LastRun(ctx context.Context) (*storage.ImportRun, error) {
	var run *storage.ImportRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(lastRunKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			run, err = unmarshalRun(val)
			return err
		})
	}, false)
	return run, err
}
