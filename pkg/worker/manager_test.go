package worker

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"blog-summariser/pkg/orchestrator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummariser struct {
	mu       sync.Mutex
	seen     []string
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (f *fakeSummariser) Handle(ctx context.Context, req orchestrator.Request) (*orchestrator.Result, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(f.delay)

	f.mu.Lock()
	f.seen = append(f.seen, req.URL)
	f.mu.Unlock()

	if strings.Contains(req.URL, "bad") {
		return nil, &orchestrator.Error{Kind: orchestrator.KindFetch, Status: http.StatusBadRequest, Message: "Failed to fetch blog URL (status 404)"}
	}
	return &orchestrator.Result{Summary: "summary of " + req.URL}, nil
}

func TestManager_ProcessURLs(t *testing.T) {
	svc := &fakeSummariser{}
	m := NewManager(3, svc, nil)

	var results []Result
	m.OnResult(func(r Result) { results = append(results, r) })

	urls := []string{"https://a.example", "https://bad.example", "https://c.example", "https://d.example"}
	stats, err := m.ProcessURLs(context.Background(), urls)
	require.NoError(t, err)

	assert.Equal(t, Stats{Total: 4, Succeeded: 3, Failed: 1}, stats)
	assert.Len(t, results, 4)

	sort.Strings(svc.seen)
	assert.Equal(t, []string{"https://a.example", "https://bad.example", "https://c.example", "https://d.example"}, svc.seen)

	for _, r := range results {
		if r.URL == "https://bad.example" {
			assert.Equal(t, "FetchError", errorKind(r.Err))
			assert.Nil(t, r.Summary)
		} else {
			assert.Equal(t, "summary of "+r.URL, r.Summary.Summary)
		}
	}
}

func TestManager_BoundedConcurrency(t *testing.T) {
	svc := &fakeSummariser{delay: 20 * time.Millisecond}
	m := NewManager(2, svc, nil)

	urls := make([]string, 8)
	for i := range urls {
		urls[i] = "https://blog.example/" + string(rune('a'+i))
	}
	_, err := m.ProcessURLs(context.Background(), urls)
	require.NoError(t, err)

	assert.LessOrEqual(t, svc.peak.Load(), int32(2))
}

func TestManager_AllFailed(t *testing.T) {
	m := NewManager(2, &fakeSummariser{}, nil)

	stats, err := m.ProcessURLs(context.Background(), []string{"https://bad.example/1", "https://bad.example/2"})

	assert.EqualError(t, err, "all 2 URLs failed to process")
	assert.Equal(t, 2, stats.Failed)
}

func TestManager_CancelledContext(t *testing.T) {
	svc := &fakeSummariser{}
	m := NewManager(1, svc, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := m.ProcessURLs(ctx, []string{"https://a.example"})

	assert.Error(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Empty(t, svc.seen)
}

func TestManager_Empty(t *testing.T) {
	stats, err := NewManager(0, &fakeSummariser{}, nil).ProcessURLs(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "unknown", errorKind(errors.New("plain")))
	assert.Equal(t, "UnhandledError", errorKind(orchestrator.Unhandled(errors.New("x"))))
}
