// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import "github.com/poiesic/siesta/storage"

// MemoryStores bundles in-memory store instances for testing.
type MemoryStores struct {
	History      storage.HistoryStore
	Vectors      storage.VectorStore
	Interactions storage.InteractionStore

	backend *Backend
}

// NewMemoryStores creates in-memory history, vector and interaction stores
// for testing. Caller must call Close when done.
func NewMemoryStores() (*MemoryStores, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	history, err := NewHistoryStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	vectors, err := NewVectorStore(backend)
	if err != nil {
		history.Close()
		backend.Close()
		return nil, err
	}

	interactions, err := NewInteractionStore(backend)
	if err != nil {
		vectors.Close()
		history.Close()
		backend.Close()
		return nil, err
	}

	return &MemoryStores{
		History:      history,
		Vectors:      vectors,
		Interactions: interactions,
		backend:      backend,
	}, nil
}

// Close closes all stores and the backing database.
func (m *MemoryStores) Close() error {
	m.Interactions.Close()
	m.Vectors.Close()
	m.History.Close()
	return m.backend.Close()
}
