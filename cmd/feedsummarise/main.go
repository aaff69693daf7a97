package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-summariser/pkg/app"
	"blog-summariser/pkg/config"
	"blog-summariser/pkg/filter"
	"blog-summariser/pkg/logging"
	"blog-summariser/pkg/parser"
	"blog-summariser/pkg/worker"

	"go.uber.org/zap"
)

type options struct {
	feedURL    string
	sitemapURL string
	urlFile    string
	pathPart   string
	max        int
	workers    int
}

func main() {
	var opts options
	flag.StringVar(&opts.feedURL, "feed", "", "RSS/Atom feed URL whose item links are summarised")
	flag.StringVar(&opts.sitemapURL, "sitemap", "", "Sitemap URL whose entries are summarised")
	flag.StringVar(&opts.urlFile, "file", "", "File with one URL per line")
	flag.StringVar(&opts.pathPart, "path", "", "Only keep URLs whose path contains this segment, e.g. /blog/")
	flag.IntVar(&opts.max, "max", 20, "Max URLs to process (<=0 means no limit)")
	flag.IntVar(&opts.workers, "workers", 4, "Number of parallel workers")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Printf("feedsummarise: %v", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	p, source := pickSource(opts.feedURL, opts.sitemapURL, opts.urlFile)
	if p == nil {
		return errors.New("one of -feed, -sitemap or -file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	urls, err := listURLs(ctx, p, source, opts)
	if err != nil {
		return err
	}

	application := app.New(ctx, cfg, logger)
	defer application.Shutdown(context.Background())

	manager := worker.NewManager(opts.workers, application.Orchestrator(), logger.Named("worker"))

	start := time.Now()
	logger.Info("processing URLs", zap.String("source", source), zap.Int("count", len(urls)), zap.Int("workers", opts.workers))
	stats, err := manager.ProcessURLs(ctx, urls)
	logger.Info("done",
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("failed", stats.Failed),
		zap.Duration("duration", time.Since(start)),
	)
	return err
}

func listURLs(ctx context.Context, p parser.Parser, source string, opts options) ([]string, error) {
	entries, err := p.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("list URLs from %s: %w", source, err)
	}

	urls, err := filter.Apply(ctx, parser.Locations(entries),
		filter.HTTPFilter{},
		filter.BaseURLFilter{},
		filter.PathFilter{Segment: opts.pathPart},
	)
	if err != nil {
		return nil, fmt.Errorf("filter URLs: %w", err)
	}
	return parser.Limit(urls, opts.max), nil
}

func pickSource(feedURL, sitemapURL, urlFile string) (parser.Parser, string) {
	switch {
	case feedURL != "":
		return parser.NewRSSParser(nil), feedURL
	case sitemapURL != "":
		return parser.NewSitemapParser(nil), sitemapURL
	case urlFile != "":
		return parser.NewFileParser(), urlFile
	}
	return nil, ""
}
