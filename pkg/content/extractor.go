package content

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// MinTextLength is the shortest normalized text accepted as readable content.
const MinTextLength = 30

// ErrInsufficientText is returned when no strategy yields MinTextLength characters.
var ErrInsufficientText = errors.New("extracted text is too short")

// Extractor defines an interface for extracting title and text from HTML content
type Extractor interface {
	ExtractTitle(htmlContent string) (string, error)
	ExtractText(htmlContent string) (string, error)
}

// DefaultExtractor implements the Extractor interface using the standard extraction functions
type DefaultExtractor struct{}

// NewDefaultExtractor creates a new default extractor
func NewDefaultExtractor() *DefaultExtractor {
	return &DefaultExtractor{}
}

// ExtractTitle extracts the article title using the default extraction logic
func (e *DefaultExtractor) ExtractTitle(htmlContent string) (string, error) {
	return ExtractTitle(htmlContent)
}

// ExtractText extracts the article text using the default extraction logic
func (e *DefaultExtractor) ExtractText(htmlContent string) (string, error) {
	return ExtractText(htmlContent)
}

// strategy pulls candidate text out of a parsed document.
type strategy struct {
	name    string
	extract func(doc *goquery.Document) string
}

// strategies are tried in order until one yields enough text.
// Encyclopedic layouts come first, generic blog shapes after.
var strategies = []strategy{
	{name: "wiki-paragraphs", extract: wikiParagraphs},
	{name: "wiki-content", extract: selectionText("#mw-content-text")},
	{name: "article", extract: selectionText("article")},
	{name: "content-like", extract: firstMatchText("[class*=content], [class*=body], [id*=content], [id*=body]")},
	{name: "body", extract: selectionText("body")},
}

// ExtractText extracts the main readable text from HTML content using the
// selector waterfall. The result is whitespace-normalized. ErrInsufficientText
// is returned (along with whatever was found) when the text is too short.
func ExtractText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var text string
	for _, s := range strategies {
		text = Normalize(s.extract(doc))
		if utf8.RuneCountInString(text) >= MinTextLength {
			return text, nil
		}
	}

	return text, ErrInsufficientText
}

// Normalize collapses whitespace runs into single spaces and trims the ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate returns at most max runes of text.
func Truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max])
}

func wikiParagraphs(doc *goquery.Document) string {
	parts := doc.Find("#mw-content-text > .mw-parser-output > p").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	return strings.Join(parts, " ")
}

func selectionText(selector string) func(doc *goquery.Document) string {
	return func(doc *goquery.Document) string {
		return doc.Find(selector).Text()
	}
}

func firstMatchText(selector string) func(doc *goquery.Document) string {
	return func(doc *goquery.Document) string {
		return doc.Find(selector).First().Text()
	}
}

// ExtractTitle extracts the article title from HTML content with fallback mechanisms
func ExtractTitle(htmlContent string) (string, error) {
	// Try readability first
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err == nil {
		title := strings.TrimSpace(article.Title)
		if title != "" {
			return title, nil
		}
	}

	// Fallback: Try parsing HTML directly with goquery
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}

	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title, nil
	}

	if title, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}

	return "", fmt.Errorf("title not found in HTML")
}
