package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"blog-summariser/pkg/content"
	"blog-summariser/pkg/db"
	"blog-summariser/pkg/domain"

	"go.uber.org/zap"
)

const (
	// MaxSourceLength caps extracted page text handed to the summarizer.
	MaxSourceLength = 2000

	// MaxTranslationInput caps the summary handed to the translator.
	MaxTranslationInput = 500
)

// Fetcher retrieves a web page.
type Fetcher interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Summarizer produces a short summary of text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Translator renders text into another language.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// MetadataSink stores the compact summary record.
type MetadataSink interface {
	Name() string
	SaveSummary(ctx context.Context, record *domain.SummaryRecord) error
}

// RawStore hands out per-request sessions for storing full text.
type RawStore interface {
	Name() string
	OpenSession(ctx context.Context) (db.RawSession, error)
}

// Request is the inbound summarise request. Paragraph wins when both are set.
type Request struct {
	URL       string `json:"url"`
	Paragraph string `json:"paragraph"`
}

// Result is returned to the caller on success.
type Result struct {
	Summary           string `json:"summary"`
	SummaryTranslated string `json:"summaryTranslated"`
}

// Config wires the orchestrator dependencies.
type Config struct {
	Fetcher    Fetcher
	Extractor  content.Extractor
	Summarizer Summarizer
	Translator Translator
	Metadata   MetadataSink
	Raw        RawStore

	SourceLang string
	TargetLang string

	Logger *zap.Logger
	Now    func() time.Time
}

// Orchestrator runs the summarise pipeline for one request at a time.
// It holds no per-request state and is safe for concurrent use.
type Orchestrator struct {
	cfg Config
	log *zap.Logger
}

// New creates a new Orchestrator
func New(cfg Config) *Orchestrator {
	if cfg.Extractor == nil {
		cfg.Extractor = content.NewDefaultExtractor()
	}
	if cfg.SourceLang == "" {
		cfg.SourceLang = "en"
	}
	if cfg.TargetLang == "" {
		cfg.TargetLang = "ur"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{cfg: cfg, log: log}
}

// Handle acquires text, summarizes it (falling back to the text itself),
// translates the summary and persists both records. Every returned error is
// an *Error.
func (o *Orchestrator) Handle(ctx context.Context, req Request) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = Unhandled(fmt.Errorf("%v", r))
		}
		if err != nil {
			var oerr *Error
			if !errors.As(err, &oerr) {
				oerr = Unhandled(err)
			}
			err = oerr
		}
	}()

	if req.URL == "" && req.Paragraph == "" {
		return nil, inputError()
	}

	source := domain.ManualInputSource
	text := req.Paragraph
	var title string
	if req.Paragraph == "" {
		source = req.URL
		text, title, err = o.acquire(ctx, req.URL)
		if err != nil {
			return nil, err
		}
	}

	summary := o.summarize(ctx, source, text)

	translated, err := o.cfg.Translator.Translate(ctx, content.Truncate(summary, MaxTranslationInput), o.cfg.SourceLang, o.cfg.TargetLang)
	if err != nil {
		return nil, translationError(err)
	}

	record := &domain.SummaryRecord{
		URL:               source,
		Summary:           summary,
		SummaryTranslated: translated,
	}
	if err := o.cfg.Metadata.SaveSummary(ctx, record); err != nil {
		return nil, persistenceError(msgSaveSummary, o.cfg.Metadata.Name(), err)
	}

	raw := &domain.RawText{
		URL:       source,
		Title:     title,
		Text:      text,
		CreatedAt: o.cfg.Now(),
	}
	if err := o.saveRaw(ctx, raw); err != nil {
		return nil, err
	}

	return &Result{Summary: summary, SummaryTranslated: translated}, nil
}

// acquire fetches the page and extracts its readable text and title.
func (o *Orchestrator) acquire(ctx context.Context, url string) (string, string, error) {
	html, err := o.fetchHTML(ctx, url)
	if err != nil {
		return "", "", err
	}

	text, err := o.cfg.Extractor.ExtractText(html)
	if err != nil || utf8.RuneCountInString(text) < content.MinTextLength {
		if err == nil {
			err = content.ErrInsufficientText
		}
		return "", "", extractionError(err)
	}
	text = content.Truncate(text, MaxSourceLength)

	title, err := o.cfg.Extractor.ExtractTitle(html)
	if err != nil {
		o.log.Debug("page title not found", zap.String("url", url), zap.Error(err))
		title = ""
	}

	return text, title, nil
}

// fetchHTML fetches HTML content from a URL
func (o *Orchestrator) fetchHTML(ctx context.Context, url string) (string, error) {
	resp, err := o.cfg.Fetcher.Get(ctx, url)
	if err != nil {
		return "", fetchBlocked(fmt.Errorf("failed to fetch URL: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fetchStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fetchBlocked(fmt.Errorf("failed to read response body: %w", err))
	}

	return string(body), nil
}

// summarize never fails: a remote failure degrades to the source text.
func (o *Orchestrator) summarize(ctx context.Context, source, text string) string {
	summary, err := o.cfg.Summarizer.Summarize(ctx, text)
	if err == nil && summary != "" {
		return summary
	}

	o.log.Warn("summarization failed, using source text as summary",
		zap.String("source", source),
		zap.Error(err),
	)
	return text
}

// saveRaw writes the raw text through a fresh session that is always released.
func (o *Orchestrator) saveRaw(ctx context.Context, raw *domain.RawText) error {
	session, err := o.cfg.Raw.OpenSession(ctx)
	if err != nil {
		return persistenceError(msgSaveFullText, o.cfg.Raw.Name(), err)
	}
	defer func() {
		if err := session.Close(ctx); err != nil {
			o.log.Warn("failed to release raw text session", zap.Error(err))
		}
	}()

	if err := session.SaveRaw(ctx, raw); err != nil {
		return persistenceError(msgSaveFullText, o.cfg.Raw.Name(), err)
	}
	return nil
}
