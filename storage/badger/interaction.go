package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/siesta/core"
	"github.com/poiesic/siesta/storage"
)

// InteractionStore implements storage.InteractionStore for BadgerDB.
type InteractionStore struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.InteractionStore = (*InteractionStore)(nil)

// NewInteractionStore creates a new InteractionStore on the given backend.
func NewInteractionStore(backend *Backend) (storage.InteractionStore, error) {
	seq, err := backend.GetSequence(interactionSeq)
	if err != nil {
		return nil, err
	}

	return &InteractionStore{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the sequence.
func (s *InteractionStore) Close() error {
	return s.seq.Release()
}

// AddInteractions appends interaction records.
func (s *InteractionStore) AddInteractions(ctx context.Context, records ...*core.Interaction) ([]*core.Interaction, error) {
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

			if record.CreatedAt.IsZero() {
				record.CreatedAt = time.Now().UTC()
			}

			key := makeInteractionKey(nextSeq)
			if err := tx.Set(key, storage.MarshalInteraction(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// RecentInteractions retrieves the N most recent interactions, newest first.
func (s *InteractionStore) RecentInteractions(ctx context.Context, limit int) ([]*core.Interaction, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.Interaction
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(interactionPrefix + ":")
		// Seek past the last possible interaction key
		startKey := makeInteractionKey(^uint64(0))

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var record *core.Interaction
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalInteraction(val)
				return err
			}); err != nil {
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
