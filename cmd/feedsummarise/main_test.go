package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"blog-summariser/pkg/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_RequiresSource(t *testing.T) {
	err := run(options{})
	assert.EqualError(t, err, "one of -feed, -sitemap or -file is required")
}

func TestRun_FailsWhenEveryURLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("http://127.0.0.1:1/post\n"), 0o644))

	err := run(options{urlFile: path, workers: 1})
	assert.EqualError(t, err, "all 1 URLs failed to process")
}

func TestListURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://blog.example/\nhttps://blog.example/blog/a\nhttps://blog.example/about\nhttps://blog.example/blog/b\nhttps://blog.example/blog/a\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := listURLs(context.Background(), parser.NewFileParser(), path, options{pathPart: "/blog/", max: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://blog.example/blog/a", "https://blog.example/blog/b"}, urls)

	urls, err = listURLs(context.Background(), parser.NewFileParser(), path, options{max: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://blog.example/blog/a"}, urls)
}

func TestPickSource(t *testing.T) {
	p, source := pickSource("https://blog.example/feed", "", "urls.txt")
	assert.IsType(t, &parser.RSSParser{}, p)
	assert.Equal(t, "https://blog.example/feed", source)

	p, _ = pickSource("", "https://blog.example/sitemap.xml", "")
	assert.IsType(t, &parser.SitemapParser{}, p)

	p, _ = pickSource("", "", "urls.txt")
	assert.IsType(t, &parser.FileParser{}, p)
}
