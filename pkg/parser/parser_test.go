package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFeed = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Blog</title>
<item><title>First</title><link>https://blog.example/first</link></item>
<item><title>No link</title></item>
<item><title>Second</title><link> https://blog.example/second </link></item>
</channel></rss>`

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"><title>Atom Blog</title>
<entry><title>Atom Post</title><link href="https://atom.example/post"/><id>1</id></entry>
</feed>`

func TestRSSParser_ParseReader(t *testing.T) {
	urls, err := NewRSSParser(nil).ParseReader(strings.NewReader(rssFeed))
	require.NoError(t, err)

	assert.Equal(t, []URL{
		{Location: "https://blog.example/first", Title: "First"},
		{Location: "https://blog.example/second", Title: "Second"},
	}, urls)
}

func TestRSSParser_Atom(t *testing.T) {
	urls, err := NewRSSParser(nil).ParseReader(strings.NewReader(atomFeed))
	require.NoError(t, err)

	require.Len(t, urls, 1)
	assert.Equal(t, "https://atom.example/post", urls[0].Location)
}

func TestRSSParser_Parse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssFeed))
	}))
	defer server.Close()

	urls, err := NewRSSParser(nil).Parse(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, urls, 2)
}

func TestRSSParser_ParseStatusError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewRSSParser(nil).Parse(context.Background(), server.URL)
	assert.ErrorContains(t, err, "unexpected status code: 404")
}

func TestRSSParser_EmptyFeed(t *testing.T) {
	_, err := NewRSSParser(nil).ParseReader(strings.NewReader(`<rss version="2.0"><channel><title>x</title></channel></rss>`))
	assert.ErrorContains(t, err, "no items")
}

func TestFileParser_Parse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# reading list\nhttps://a.example/post,\n\n  https://b.example/post  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := NewFileParser().Parse(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example/post", "https://b.example/post"}, Locations(urls))
}

func TestFileParser_Errors(t *testing.T) {
	_, err := NewFileParser().Parse(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("# nothing\n"), 0o644))
	_, err = NewFileParser().Parse(context.Background(), path)
	assert.ErrorContains(t, err, "no URLs found")
}

func TestSitemapParser_URLSet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
<url><loc>https://blog.example/a</loc></url><url><loc>https://blog.example/b</loc></url></urlset>`))
	}))
	defer server.Close()

	urls, err := NewSitemapParser(nil).Parse(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://blog.example/a", "https://blog.example/b"}, Locations(urls))
}

func TestSitemapParser_IndexSkipsBrokenChildren(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
<sitemap><loc>` + server.URL + `/posts.xml</loc></sitemap>
<sitemap><loc>` + server.URL + `/missing.xml</loc></sitemap></sitemapindex>`))
	})
	mux.HandleFunc("/posts.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<urlset><url><loc>https://blog.example/post</loc></url></urlset>`))
	})

	urls, err := NewSitemapParser(nil).Parse(context.Background(), server.URL+"/sitemap.xml")
	require.NoError(t, err)
	assert.Equal(t, []URL{{Location: "https://blog.example/post"}}, urls)
}

func TestSitemapParser_StatusError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewSitemapParser(nil).Parse(context.Background(), server.URL)
	assert.ErrorContains(t, err, "unexpected status code: 404")
}

func TestLimitAndLocations(t *testing.T) {
	urls := []URL{{Location: "a"}, {Location: "b"}, {Location: "a"}, {Location: "c"}}

	assert.Len(t, Limit(urls, 0), 4)
	assert.Len(t, Limit(urls, 2), 2)
	assert.Len(t, Limit(urls, 10), 4)
	assert.Equal(t, []string{"a", "b", "c"}, Locations(urls))
}

func TestParsersImplementInterface(t *testing.T) {
	var _ Parser = NewRSSParser(nil)
	var _ Parser = NewFileParser()
	var _ Parser = NewSitemapParser(nil)
}
