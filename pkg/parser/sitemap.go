package parser

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"blog-summariser/pkg/httpclient"
)

// maxIndexDepth stops runaway recursion through nested sitemap indexes.
const maxIndexDepth = 3

// SitemapParser lists page URLs from an XML sitemap or sitemap index.
type SitemapParser struct {
	client *httpclient.HTTPClient
}

// NewSitemapParser creates a new sitemap parser
func NewSitemapParser(client *httpclient.HTTPClient) *SitemapParser {
	if client == nil {
		client = httpclient.NewClient(httpclient.BrowserClient, 0)
	}
	return &SitemapParser{client: client}
}

// Parse fetches the sitemap at sitemapURL. Child sitemaps of an index are
// followed; a child that fails is skipped.
func (p *SitemapParser) Parse(ctx context.Context, sitemapURL string) ([]URL, error) {
	return p.parse(ctx, sitemapURL, 0)
}

func (p *SitemapParser) parse(ctx context.Context, sitemapURL string, depth int) ([]URL, error) {
	body, err := p.fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	if !bytes.Contains(body, []byte("<sitemapindex")) {
		return parseURLSet(body)
	}

	if depth >= maxIndexDepth {
		return nil, fmt.Errorf("sitemap index nested too deep at %s", sitemapURL)
	}

	var index sitemapIndex
	if err := xml.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("failed to decode sitemap index XML: %w", err)
	}

	var all []URL
	for _, ref := range index.Sitemaps {
		if ref.Location == "" {
			continue
		}
		urls, err := p.parse(ctx, ref.Location, depth+1)
		if err != nil {
			continue
		}
		all = append(all, urls...)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no entries found in any sitemap from index")
	}
	return all, nil
}

func (p *SitemapParser) fetch(ctx context.Context, sitemapURL string) ([]byte, error) {
	resp, err := p.client.Get(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sitemap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sitemap: %w", err)
	}
	return body, nil
}

func parseURLSet(body []byte) ([]URL, error) {
	var set urlSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("failed to decode sitemap XML: %w", err)
	}

	urls := make([]URL, 0, len(set.URLs))
	for _, entry := range set.URLs {
		if entry.Location != "" {
			urls = append(urls, URL{Location: entry.Location})
		}
	}
	return urls, nil
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []struct {
		Location string `xml:"loc"`
	} `xml:"url"`
}

type sitemapIndex struct {
	XMLName  xml.Name `xml:"sitemapindex"`
	Sitemaps []struct {
		Location string `xml:"loc"`
	} `xml:"sitemap"`
}
