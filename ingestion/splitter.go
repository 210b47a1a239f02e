package ingestion

import (
	"strings"

	"github.com/poiesic/siesta/core"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

// defaultSeparators split on paragraphs first, then lines, then sentences.
var defaultSeparators = []string{"\n\n", "\n", "."}

// Splitter breaks document text into overlapping chunks sized for embedding.
type Splitter struct {
	splitter textsplitter.RecursiveCharacter
}

// SplitterOption is a functional option for configuring a Splitter.
type SplitterOption func(*splitterConfig)

type splitterConfig struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) SplitterOption {
	return func(c *splitterConfig) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithChunkOverlap sets the overlap between adjacent chunks in characters.
func WithChunkOverlap(overlap int) SplitterOption {
	return func(c *splitterConfig) {
		if overlap >= 0 {
			c.chunkOverlap = overlap
		}
	}
}

// WithSeparators sets the separator hierarchy used to find split points.
func WithSeparators(separators []string) SplitterOption {
	return func(c *splitterConfig) {
		if len(separators) > 0 {
			c.separators = separators
		}
	}
}

// NewSplitter creates a splitter with the given options.
func NewSplitter(opts ...SplitterOption) *Splitter {
	cfg := &splitterConfig{
		chunkSize:    defaultChunkSize,
		chunkOverlap: defaultChunkOverlap,
		separators:   defaultSeparators,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Splitter{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.chunkSize),
			textsplitter.WithChunkOverlap(cfg.chunkOverlap),
			textsplitter.WithSeparators(cfg.separators),
		),
	}
}

// Split breaks text into chunks attributed to the given source.
// Chunk indexes are sequential from zero, so the stable ID of chunk i is
// always "{source}_{i}" for any given split. Blank chunks are dropped.
func (s *Splitter) Split(source, text string) ([]core.Chunk, error) {
	if source == "" {
		return nil, ErrEmptySource
	}

	pieces, err := s.splitter.SplitText(text)
	if err != nil {
		return nil, err
	}

	chunks := make([]core.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		chunks = append(chunks, core.Chunk{
			Source: source,
			Index:  len(chunks),
			Text:   piece,
		})
	}
	return chunks, nil
}
