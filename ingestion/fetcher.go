package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultFetchTimeout = 20 * time.Second
	fetcherUserAgent    = "siesta-ingest/1.0"
)

// contentSelectors are tried in order to find the main content container.
var contentSelectors = []string{"#content", "#centro", "main"}

var blankLines = regexp.MustCompile(`\n{3,}`)

// Fetcher retrieves site pages over HTTP and reduces them to plain-text
// documents keyed by their relative path.
type Fetcher struct {
	baseURL *url.URL
	client  *http.Client
	logger  *slog.Logger
}

// FetcherOption is a functional option for configuring a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithFetcherLogger sets the logger. A nil logger falls back to the default.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
	}
}

// NewFetcher creates a fetcher rooted at the given base URL.
func NewFetcher(baseURL string, opts ...FetcherOption) (*Fetcher, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute: %s", baseURL)
	}

	f := &Fetcher{
		baseURL: parsed,
		client:  &http.Client{Timeout: defaultFetchTimeout},
		logger:  slog.Default().With("component", "fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch retrieves the page at the given path relative to the base URL and
// returns it as an ingestable document. The document source is the relative
// path, so re-fetching a page replaces its chunks.
func (f *Fetcher) Fetch(ctx context.Context, path string) (Document, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return Document{}, fmt.Errorf("invalid path %q: %w", path, err)
	}
	target := f.baseURL.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return Document{}, err
	}
	req.Header.Set("User-Agent", fetcherUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return Document{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("fetch %s: unexpected status %d", target, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Document{}, err
	}

	text := extractText(doc)
	f.logger.Debug("page fetched", "path", path, "length", len(text))

	return Document{Source: strings.TrimPrefix(path, "/"), Text: text}, nil
}

// FetchAll retrieves multiple pages sequentially.
// A failing page is logged and skipped; the remaining pages still load.
func (f *Fetcher) FetchAll(ctx context.Context, paths []string) []Document {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		doc, err := f.Fetch(ctx, path)
		if err != nil {
			f.logger.Error("failed to fetch page", "path", path, "err", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

// extractText pulls the readable text out of a parsed page.
// It prefers known content containers and strips non-content elements.
func extractText(doc *goquery.Document) string {
	var container *goquery.Selection
	for _, selector := range contentSelectors {
		sel := doc.Find(selector)
		if sel.Length() > 0 {
			container = sel.First()
			break
		}
	}
	if container == nil {
		container = doc.Find("body")
	}

	container.Find("script, style, noscript, iframe, form, nav, footer").Remove()

	text := container.Text()
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
