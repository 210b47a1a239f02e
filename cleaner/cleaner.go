package cleaner

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Cleaner reduces raw page HTML to compact text a language model can read.
type Cleaner interface {
	// Clean extracts the page's main content as markdown-flavored text.
	// Returns an empty string for pages with no readable content.
	Clean(pageHTML string) (string, error)
}

// containerSelectors are tried in order to find the main content block.
var containerSelectors = []string{"#centro", "#content", "main"}

// strippedElements never contribute readable content.
const strippedElements = "script, style, noscript, iframe, form, input, button, select, textarea, svg, nav, footer"

var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// MarkdownCleaner implements Cleaner using goquery.
// Headings, emphasis, lists and table rows are rewritten as markdown so the
// model keeps the page's structure without paying for its markup.
type MarkdownCleaner struct {
	logger *slog.Logger
}

var _ Cleaner = (*MarkdownCleaner)(nil)

// NewMarkdownCleaner creates a markdown cleaner.
func NewMarkdownCleaner() *MarkdownCleaner {
	return &MarkdownCleaner{
		logger: slog.Default().With("component", "cleaner"),
	}
}

// Clean extracts the page's main content as markdown-flavored text.
func (c *MarkdownCleaner) Clean(pageHTML string) (string, error) {
	if strings.TrimSpace(pageHTML) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return "", err
	}

	var container *goquery.Selection
	for _, selector := range containerSelectors {
		sel := doc.Find(selector)
		if sel.Length() > 0 {
			container = sel.First()
			break
		}
	}
	if container == nil {
		container = doc.Find("body")
	}

	container.Find(strippedElements).Remove()

	// Table rows become "| a | b |" lines, before cell markup is flattened
	container.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td").Map(func(_ int, cell *goquery.Selection) string {
			return strings.TrimSpace(cell.Text())
		})
		row.ReplaceWithHtml("\n| " + strings.Join(cells, " | ") + " |")
	})

	container.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, heading *goquery.Selection) {
		level := 1
		if node := heading.Get(0); node != nil && len(node.Data) == 2 {
			level = int(node.Data[1] - '0')
		}
		heading.ReplaceWithHtml(fmt.Sprintf("\n\n%s %s\n", strings.Repeat("#", level),
			strings.TrimSpace(heading.Text())))
	})

	container.Find("strong, b").Each(func(_ int, emphasis *goquery.Selection) {
		text := strings.TrimSpace(emphasis.Text())
		if text == "" {
			emphasis.Remove()
			return
		}
		emphasis.ReplaceWithHtml("**" + text + "**")
	})

	container.Find("li").Each(func(_ int, item *goquery.Selection) {
		item.BeforeHtml("\n- ")
		item.AfterHtml("\n")
	})

	container.Find("p, br, div").AfterHtml("\n")

	text := container.Text()

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")
	text = excessBlankLines.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	c.logger.Debug("page cleaned", "input_bytes", len(pageHTML), "output_bytes", len(text))
	return text, nil
}
