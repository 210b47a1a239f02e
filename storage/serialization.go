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


package storage

import (
	"github.com/poiesic/siesta/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalMessageRecord serializes a MessageRecord to bytes.
func MarshalMessageRecord(record *core.MessageRecord) []byte {
	buf := make([]byte, core.MessageRecordMUS.Size(*record))
	core.MessageRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalMessageRecord deserializes a MessageRecord from bytes.
func UnmarshalMessageRecord(data []byte) (*core.MessageRecord, error) {
	record, _, err := core.MessageRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalChunkRecord serializes a ChunkRecord to bytes.
func MarshalChunkRecord(record *core.ChunkRecord) []byte {
	buf := make([]byte, core.ChunkRecordMUS.Size(*record))
	core.ChunkRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalChunkRecord deserializes a ChunkRecord from bytes.
func UnmarshalChunkRecord(data []byte) (*core.ChunkRecord, error) {
	record, _, err := core.ChunkRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalSourceRecord serializes a SourceRecord to bytes.
func MarshalSourceRecord(record *core.SourceRecord) []byte {
	buf := make([]byte, core.SourceRecordMUS.Size(*record))
	core.SourceRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalSourceRecord deserializes a SourceRecord from bytes.
func UnmarshalSourceRecord(data []byte) (*core.SourceRecord, error) {
	record, _, err := core.SourceRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalInteraction serializes an Interaction to bytes.
func MarshalInteraction(record *core.Interaction) []byte {
	buf := make([]byte, core.InteractionMUS.Size(*record))
	core.InteractionMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalInteraction deserializes an Interaction from bytes.
func UnmarshalInteraction(data []byte) (*core.Interaction, error) {
	record, _, err := core.InteractionMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
