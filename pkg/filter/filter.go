package filter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Filter decides whether a discovered URL is worth summarising.
type Filter interface {
	ShouldKeep(ctx context.Context, url string) (bool, error)
}

// Apply keeps the URLs every filter accepts, in their original order.
func Apply(ctx context.Context, urls []string, filters ...Filter) ([]string, error) {
	kept := make([]string, 0, len(urls))

	for _, u := range urls {
		keep := true
		for _, f := range filters {
			ok, err := f.ShouldKeep(ctx, u)
			if err != nil {
				return nil, fmt.Errorf("filter error for URL %s: %w", u, err)
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			kept = append(kept, u)
		}
	}

	return kept, nil
}

// HTTPFilter drops anything that is not an absolute http(s) URL.
type HTTPFilter struct{}

func (HTTPFilter) ShouldKeep(ctx context.Context, raw string) (bool, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false, nil
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != "", nil
}

// BaseURLFilter drops site roots, which are landing pages rather than posts.
type BaseURLFilter struct{}

func (BaseURLFilter) ShouldKeep(ctx context.Context, raw string) (bool, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		// unparseable URLs fail later with a fetch error
		return true, nil
	}
	return strings.Trim(parsed.Path, "/") != "", nil
}

// PathFilter keeps URLs whose path contains Segment, e.g. "/blog/".
type PathFilter struct {
	Segment string
}

func (f PathFilter) ShouldKeep(ctx context.Context, raw string) (bool, error) {
	if f.Segment == "" {
		return true, nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return strings.Contains(raw, f.Segment), nil
	}
	return strings.Contains(parsed.Path, f.Segment), nil
}
