package app

import (
	"context"
	"net/http"
	"time"

	"blog-summariser/pkg/api"
	"blog-summariser/pkg/config"
	"blog-summariser/pkg/db"
	"blog-summariser/pkg/httpclient"
	"blog-summariser/pkg/logging"
	"blog-summariser/pkg/orchestrator"
	"blog-summariser/pkg/summarizer"
	"blog-summariser/pkg/translator"

	"go.uber.org/zap"
)

// connectTimeout bounds each startup connectivity check.
const connectTimeout = 10 * time.Second

// App owns the orchestrator and the storage clients behind it.
type App struct {
	cfg          config.Config
	logger       *zap.Logger
	orchestrator *orchestrator.Orchestrator
	closers      []func(context.Context)
}

// New wires the remote capabilities and sinks. Unreachable sinks are logged
// and left in place: requests that need them fail with a persistence error.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) *App {
	a := &App{cfg: cfg, logger: logger}

	metadata := a.metadataSink(ctx)

	mongoClient := db.NewClient(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	a.check(ctx, mongoClient.Name(), mongoClient.Connect)
	a.closers = append(a.closers, func(ctx context.Context) {
		if err := mongoClient.Close(ctx); err != nil {
			logger.Warn("failed to close MongoDB client", zap.Error(err))
		}
	})

	a.orchestrator = orchestrator.New(orchestrator.Config{
		Fetcher: httpclient.NewClient(httpclient.BrowserClient, cfg.HTTPClientTimeout),
		Summarizer: summarizer.NewHuggingFaceClient(summarizer.Config{
			ModelURL:  cfg.HuggingFaceModelURL,
			APIKey:    cfg.HuggingFaceAPIKey,
			MinLength: cfg.SummaryMinLength,
			MaxLength: cfg.SummaryMaxLength,
			Timeout:   cfg.HTTPClientTimeout,
		}),
		Translator: translator.NewMyMemoryClient(cfg.TranslationURL, cfg.HTTPClientTimeout),
		Metadata:   metadata,
		Raw:        mongoClient,
		SourceLang: cfg.TranslationSourceLang,
		TargetLang: cfg.TranslationTargetLang,
		Logger:     logger.Named("orchestrator"),
	})

	return a
}

func (a *App) metadataSink(ctx context.Context) orchestrator.MetadataSink {
	supabaseClient := db.NewSupabaseClient(db.SupabaseConfig{
		ConnectionString: a.cfg.SupabaseDBURL,
		SupabaseURL:      a.cfg.SupabaseURL,
		SupabaseKey:      a.cfg.SupabaseAnonKey,
		Password:         a.cfg.SupabaseDBPassword,
		Table:            a.cfg.SummaryTable,
	})

	if a.cfg.MetadataBackend != config.BackendPostgres {
		a.check(ctx, supabaseClient.Name(), supabaseClient.Connect)
		return supabaseClient
	}

	dsn, err := supabaseClient.PostgresDSN()
	if err != nil {
		a.logger.Warn("postgres DSN unavailable", zap.Error(err))
	}
	pg := db.NewPostgresClient(db.PostgresConfig{DSN: dsn, Table: a.cfg.SummaryTable, MaxConns: 10})
	a.check(ctx, pg.Name(), pg.Connect)
	a.check(ctx, pg.Name(), pg.EnsureSchema)
	a.closers = append(a.closers, func(context.Context) { pg.Close() })
	return pg
}

func (a *App) check(ctx context.Context, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		a.logger.Warn("storage not ready", zap.String("sink", name), zap.Error(err))
		return
	}
	a.logger.Info("storage ready", zap.String("sink", name))
}

// Orchestrator returns the summarise pipeline.
func (a *App) Orchestrator() *orchestrator.Orchestrator { return a.orchestrator }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler {
	return api.NewRouter(a.orchestrator, a.logger.Named("http"), api.RouterConfig{
		AllowedOrigins: a.cfg.AllowedOrigins,
		Debug:          logging.IsDevelopment(a.cfg.AppEnv),
	})
}

// Addr returns the listen address.
func (a *App) Addr() string { return a.cfg.Addr() }

// Shutdown closes the storage clients.
func (a *App) Shutdown(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i](ctx)
	}
}
