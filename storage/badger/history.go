package badger

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/siesta/core"
	"github.com/poiesic/siesta/storage"
)

// HistoryStore implements storage.HistoryStore for BadgerDB.
type HistoryStore struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.HistoryStore = (*HistoryStore)(nil)

// NewHistoryStore creates a new HistoryStore on the given backend.
func NewHistoryStore(backend *Backend) (storage.HistoryStore, error) {
	seq, err := backend.GetSequence(historySeq)
	if err != nil {
		return nil, err
	}

	return &HistoryStore{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the sequence.
func (s *HistoryStore) Close() error {
	return s.seq.Release()
}

// AppendMessages appends message records to a user's log.
func (s *HistoryStore) AppendMessages(ctx context.Context, userKey string, records ...*core.MessageRecord) ([]*core.MessageRecord, error) {
	if userKey == "" {
		return nil, storage.ErrEmptyUserKey
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			nextSeq, err := s.seq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextSeq == 0 {
				nextSeq, err = s.seq.Next()
				if err != nil {
					return err
				}
			}

			if record.InsertedAt.IsZero() {
				record.InsertedAt = time.Now().UTC()
			}

			key := makeHistoryKey(userKey, nextSeq)
			value := storage.MarshalMessageRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// GetMessages retrieves a user's full message log in arrival order.
func (s *HistoryStore) GetMessages(ctx context.Context, userKey string) ([]*core.MessageRecord, error) {
	if userKey == "" {
		return nil, storage.ErrEmptyUserKey
	}

	results := []*core.MessageRecord{}
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeHistoryUserPrefix(userKey)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.MessageRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalMessageRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteMessages removes a user's entire message log.
func (s *HistoryStore) DeleteMessages(ctx context.Context, userKey string) error {
	if userKey == "" {
		return storage.ErrEmptyUserKey
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeHistoryUserPrefix(userKey)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ListUserKeys enumerates the user keys that have stored messages.
func (s *HistoryStore) ListUserKeys(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var keys []string

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(historyPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := string(iter.Item().Key())
			// hist:{userKey}:{seq}
			rest := strings.TrimPrefix(key, historyPrefix+":")
			idx := strings.LastIndex(rest, ":")
			if idx < 0 {
				continue
			}
			userKey := rest[:idx]
			if !seen[userKey] {
				seen[userKey] = true
				keys = append(keys, userKey)
			}
		}
		return nil
	}, false)

	return keys, err
}
