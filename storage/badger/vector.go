package badger

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/siesta/core"
	"github.com/poiesic/siesta/storage"
)

// VectorStore implements storage.VectorStore for BadgerDB.
type VectorStore struct {
	backend *Backend
}

var _ storage.VectorStore = (*VectorStore)(nil)

// NewVectorStore creates a new VectorStore on the given backend.
func NewVectorStore(backend *Backend) (storage.VectorStore, error) {
	return &VectorStore{backend: backend}, nil
}

// Close releases resources held by the store.
func (s *VectorStore) Close() error {
	return nil
}

// UpsertChunks replaces a source's chunk set with the given records.
// The old chunk keys are derived from the previous chunk count, so chunks
// dropped by a shrinking re-ingestion are removed in the same transaction.
func (s *VectorStore) UpsertChunks(ctx context.Context, source string, records []*core.ChunkRecord) error {
	if source == "" {
		return storage.ErrEmptySource
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		old, err := readSourceRecord(tx, makeSourceKey(source))
		if err != nil {
			return err
		}
		if old != nil {
			for i := 0; i < old.ChunkCount; i++ {
				stale := core.Chunk{Source: source, Index: i}
				if err := tx.Delete(makeChunkKey(core.IDFromContent(stale.StableID()))); err != nil {
					return err
				}
			}
		}

		now := time.Now().UTC()
		for _, record := range records {
			if record.InsertedAt.IsZero() {
				record.InsertedAt = now
			}
			key := makeChunkKey(core.IDFromContent(record.StableID()))
			if err := tx.Set(key, storage.MarshalChunkRecord(record)); err != nil {
				return err
			}
		}

		srcRecord := &core.SourceRecord{
			Source:     source,
			ChunkCount: len(records),
			UpdatedAt:  now,
		}
		if err := tx.Set(makeSourceKey(source), storage.MarshalSourceRecord(srcRecord)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// DeleteSource removes all chunks stored for a source.
func (s *VectorStore) DeleteSource(ctx context.Context, source string) error {
	if source == "" {
		return storage.ErrEmptySource
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		old, err := readSourceRecord(tx, makeSourceKey(source))
		if err != nil {
			return err
		}
		if old == nil {
			return nil
		}

		for i := 0; i < old.ChunkCount; i++ {
			stale := core.Chunk{Source: source, Index: i}
			if err := tx.Delete(makeChunkKey(core.IDFromContent(stale.StableID()))); err != nil {
				return err
			}
		}
		if err := tx.Delete(makeSourceKey(source)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// Search finds the chunks most similar to the given vector.
func (s *VectorStore) Search(ctx context.Context, vector []float32, limit int) ([]*core.ScoredChunk, error) {
	if len(vector) == 0 || limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.ScoredChunk

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.ChunkRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalChunkRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil || len(record.Vector) == 0 {
				continue
			}

			// Cosine similarity (dot product for normalized vectors)
			score := dotProduct(vector, record.Vector)
			results = append(results, &core.ScoredChunk{
				Record: record,
				Score:  score,
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by score descending; ties keep chunk insertion order.
	slices.SortFunc(results, func(a, b *core.ScoredChunk) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if !a.Record.InsertedAt.Equal(b.Record.InsertedAt) {
			if a.Record.InsertedAt.Before(b.Record.InsertedAt) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(a.Record.Source, b.Record.Source); c != 0 {
			return c
		}
		return a.Record.Index - b.Record.Index
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// SourceChunks retrieves the chunk records stored for a source in index order.
func (s *VectorStore) SourceChunks(ctx context.Context, source string) ([]*core.ChunkRecord, error) {
	if source == "" {
		return nil, storage.ErrEmptySource
	}

	results := []*core.ChunkRecord{}
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		src, err := readSourceRecord(tx, makeSourceKey(source))
		if err != nil {
			return err
		}
		if src == nil {
			return nil
		}

		for i := 0; i < src.ChunkCount; i++ {
			ref := core.Chunk{Source: source, Index: i}
			record, err := readChunkRecord(tx, makeChunkKey(core.IDFromContent(ref.StableID())))
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

// Sources enumerates the source identifiers with stored chunks.
func (s *VectorStore) Sources(ctx context.Context) ([]string, error) {
	var sources []string

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sourcePrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := string(iter.Item().Key())
			sources = append(sources, strings.TrimPrefix(key, sourcePrefix+":"))
		}
		return nil
	}, false)

	return sources, err
}

// Helper methods

// readChunkRecord reads a chunk record from the transaction.
func readChunkRecord(tx *badger.Txn, key []byte) (*core.ChunkRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ChunkRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalChunkRecord(val)
		return unmarshalErr
	})
	return record, err
}

// readSourceRecord reads a source record from the transaction.
func readSourceRecord(tx *badger.Txn, key []byte) (*core.SourceRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.SourceRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalSourceRecord(val)
		return unmarshalErr
	})
	return record, err
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
