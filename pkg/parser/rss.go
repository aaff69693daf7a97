package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"blog-summariser/pkg/httpclient"

	"github.com/mmcdole/gofeed"
)

// RSSParser lists item links from an RSS, Atom or JSON feed.
type RSSParser struct {
	feedParser *gofeed.Parser
	client     *httpclient.HTTPClient
}

// NewRSSParser creates a new feed parser
func NewRSSParser(client *httpclient.HTTPClient) *RSSParser {
	if client == nil {
		client = httpclient.NewClient(httpclient.BrowserClient, 0)
	}
	return &RSSParser{feedParser: gofeed.NewParser(), client: client}
}

// Parse fetches the feed at feedURL with the browser user agent and parses it.
func (p *RSSParser) Parse(ctx context.Context, feedURL string) ([]URL, error) {
	resp, err := p.client.Get(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return p.ParseReader(resp.Body)
}

// ParseReader parses a feed document that is already in hand.
func (p *RSSParser) ParseReader(r io.Reader) ([]URL, error) {
	feed, err := p.feedParser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return itemURLs(feed)
}

func itemURLs(feed *gofeed.Feed) ([]URL, error) {
	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	urls := make([]URL, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" && len(item.Links) > 0 {
			link = strings.TrimSpace(item.Links[0])
		}
		if link == "" {
			continue
		}
		urls = append(urls, URL{Location: link, Title: strings.TrimSpace(item.Title)})
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("no valid URLs found in feed items")
	}

	return urls, nil
}
