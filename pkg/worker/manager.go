package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"blog-summariser/pkg/orchestrator"

	"go.uber.org/zap"
)

// Summariser runs one summarise request.
type Summariser interface {
	Handle(ctx context.Context, req orchestrator.Request) (*orchestrator.Result, error)
}

// Result is the outcome for one URL.
type Result struct {
	URL      string
	WorkerID int
	Summary  *orchestrator.Result
	Err      error
}

// Stats aggregates a batch run.
type Stats struct {
	Total     int
	Succeeded int
	Failed    int
}

// Manager runs URLs through the summariser with a fixed number of workers.
type Manager struct {
	workerCount int
	svc         Summariser
	logger      *zap.Logger
	onResult    func(Result)
}

// NewManager creates a new manager
func NewManager(workerCount int, svc Summariser, logger *zap.Logger) *Manager {
	if workerCount <= 0 {
		workerCount = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{workerCount: workerCount, svc: svc, logger: logger}
}

// OnResult registers a callback invoked once per URL from the collecting goroutine.
func (m *Manager) OnResult(fn func(Result)) {
	m.onResult = fn
}

// ProcessURLs distributes URLs to workers and processes them concurrently.
// It fails only when every URL failed.
func (m *Manager) ProcessURLs(ctx context.Context, urls []string) (Stats, error) {
	stats := Stats{Total: len(urls)}
	if len(urls) == 0 {
		return stats, nil
	}

	jobChan := make(chan string, len(urls))
	for _, url := range urls {
		jobChan <- url
	}
	close(jobChan)

	resultsChan := make(chan Result, len(urls))

	var wg sync.WaitGroup
	for i := 0; i < min(m.workerCount, len(urls)); i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for url := range jobChan {
				if err := ctx.Err(); err != nil {
					resultsChan <- Result{URL: url, WorkerID: workerID, Err: err}
					continue
				}
				res, err := m.svc.Handle(ctx, orchestrator.Request{URL: url})
				resultsChan <- Result{URL: url, WorkerID: workerID, Summary: res, Err: err}
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for res := range resultsChan {
		if res.Err == nil {
			stats.Succeeded++
			m.logger.Info("summarised",
				zap.String("url", res.URL),
				zap.Int("worker", res.WorkerID),
			)
		} else {
			stats.Failed++
			m.logger.Warn("failed to summarise",
				zap.String("url", res.URL),
				zap.Int("worker", res.WorkerID),
				zap.String("kind", errorKind(res.Err)),
				zap.Error(res.Err),
			)
		}
		if m.onResult != nil {
			m.onResult(res)
		}
	}

	m.logger.Info("batch completed",
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("failed", stats.Failed),
		zap.Int("total", stats.Total),
	)

	if stats.Failed > 0 && stats.Succeeded == 0 {
		return stats, fmt.Errorf("all %d URLs failed to process", stats.Failed)
	}
	return stats, nil
}

func errorKind(err error) string {
	var oerr *orchestrator.Error
	if errors.As(err, &oerr) {
		return string(oerr.Kind)
	}
	return "unknown"
}
