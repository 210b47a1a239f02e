package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/siesta/core"
)

// Key prefixes for different data types
const (
	historyPrefix     = "hist"
	historySeq        = "histseq"
	chunkPrefix       = "chunk"
	sourcePrefix      = "source"
	interactionPrefix = "inter"
	interactionSeq    = "interseq"
)

// makeHistoryKey generates a key for a message record.
// Format: hist:{userKey}:{seq}. The user key is sanitized upstream to
// alphanumerics, '-' and '_', so ':' is a safe delimiter. The sequence
// is BigEndian so lexicographic iteration matches arrival order.
func makeHistoryKey(userKey string, seq uint64) []byte {
	prefix := historyPrefix + ":" + userKey + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, []byte(prefix))
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeHistoryUserPrefix generates the iteration prefix for a user's log.
func makeHistoryUserPrefix(userKey string) []byte {
	return []byte(historyPrefix + ":" + userKey + ":")
}

// makeChunkKey generates a key for a chunk record by its stable ID hash.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkPrefix, id))
}

// makeSourceKey generates a key for a source record.
func makeSourceKey(source string) []byte {
	return []byte(fmt.Sprintf("%s:%s", sourcePrefix, source))
}

// makeInteractionKey generates a key for an interaction record.
// BigEndian sequence so lexicographic order matches insertion order.
func makeInteractionKey(seq uint64) []byte {
	prefix := interactionPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, []byte(prefix))
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}
