package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored records.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser marks a message written by the customer.
	RoleUser Role = "user"
	// RoleAssistant marks a message produced by the assistant.
	RoleAssistant Role = "assistant"
	// RoleSystem marks an instruction message.
	RoleSystem Role = "system"
)

// Message is a single turn in a conversation.
type Message struct {
	Role    Role
	Content string
}

// MessageRecord is the persisted form of a Message.
// InsertedAt is populated by storage on append.
type MessageRecord struct {
	Role       Role
	Content    string
	InsertedAt time.Time
}

// Message returns the conversational view of the record.
func (r *MessageRecord) Message() Message {
	return Message{Role: r.Role, Content: r.Content}
}

// Chunk is a bounded slice of a source document produced by the splitter.
// Source identifies the document; Index is the chunk's position within it.
type Chunk struct {
	Source string
	Index  int
	Text   string
}

// StableID returns the chunk's deterministic identifier, "{source}_{index}".
// Re-splitting identical source content yields identical stable IDs, which
// makes ingestion an idempotent upsert.
func (c *Chunk) StableID() string {
	return fmt.Sprintf("%s_%d", c.Source, c.Index)
}

// ChunkRecord is the persisted form of a Chunk, enriched with its embedding.
type ChunkRecord struct {
	Source     string
	Index      int
	Text       string
	Vector     []float32
	InsertedAt time.Time
}

// StableID returns the record's deterministic identifier, "{source}_{index}".
func (r *ChunkRecord) StableID() string {
	return fmt.Sprintf("%s_%d", r.Source, r.Index)
}

// SourceRecord tracks the chunk set currently stored for a source.
// ChunkCount is the number of chunks written by the last ingestion, which is
// exactly the set of stable IDs that must be removed on the next upsert.
type SourceRecord struct {
	Source     string
	ChunkCount int
	UpdatedAt  time.Time
}

// ScoredChunk is a chunk record matched by vector similarity search.
type ScoredChunk struct {
	Record *ChunkRecord
	Score  float32
}

// Intent is the closed set of handling categories a customer message can be
// routed to. Every message maps to exactly one intent before response
// generation.
type Intent int

const (
	// IntentRecommend asks for a mattress recommendation.
	IntentRecommend Intent = iota + 1
	// IntentSearch looks for products or accessories in the catalog.
	IntentSearch
	// IntentProductSheet asks about the product page the user is viewing.
	IntentProductSheet
	// IntentGeneral asks about sleep, mattresses, or how to choose one.
	IntentGeneral
	// IntentBrandGeneral asks about the store itself (shipping, payment, warranty).
	IntentBrandGeneral
	// IntentOffTopic is anything outside the assistant's scope.
	IntentOffTopic
)

var intentLabels = map[Intent]string{
	IntentRecommend:    "RECOMMEND",
	IntentSearch:       "SEARCH",
	IntentProductSheet: "PRODUCT_SHEET",
	IntentGeneral:      "GENERAL",
	IntentBrandGeneral: "BRAND_GENERAL",
	IntentOffTopic:     "OFF_TOPIC",
}

// String returns the classifier label for the intent.
func (i Intent) String() string {
	if label, ok := intentLabels[i]; ok {
		return label
	}
	return "GENERAL"
}

// IntentLabels returns the full label set in routing order.
func IntentLabels() []string {
	return []string{"RECOMMEND", "SEARCH", "PRODUCT_SHEET", "GENERAL", "BRAND_GENERAL", "OFF_TOPIC"}
}

// ParseIntent maps a classifier label to an Intent.
// Unknown or malformed labels resolve to IntentGeneral so that a confused
// classifier can never block a turn.
func ParseIntent(label string) Intent {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	for intent, l := range intentLabels {
		if l == normalized {
			return intent
		}
	}
	return IntentGeneral
}

// Interaction is one question/answer exchange recorded for the durable
// interaction log. Recording is best effort and never affects the turn.
type Interaction struct {
	UserID      string
	Question    string
	Answer      string
	URL         string
	Domain      string
	ProductName string
	Tool        string
	IsError     bool
	CreatedAt   time.Time
}
