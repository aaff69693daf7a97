package parser

import "context"

// URL is a page discovered by a source listing.
type URL struct {
	Location string
	Title    string
}

// Parser lists page URLs from a source: a feed URL, a sitemap URL or a file path.
type Parser interface {
	Parse(ctx context.Context, source string) ([]URL, error)
}

// Limit keeps the first max entries; max <= 0 means no limit.
func Limit[T any](items []T, max int) []T {
	if max <= 0 || len(items) <= max {
		return items
	}
	return items[:max]
}

// Locations returns the URL strings, dropping duplicates while keeping order.
func Locations(urls []URL) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u.Location]; ok {
			continue
		}
		seen[u.Location] = struct{}{}
		out = append(out, u.Location)
	}
	return out
}
