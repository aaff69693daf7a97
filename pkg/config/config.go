package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
)

// Config holds every setting the service reads from the environment.
// Credentials are not validated here; a missing one surfaces when the
// capability that needs it is first used.
type Config struct {
	Port           int      `env:"PORT"            envDefault:"8080"`
	AppEnv         string   `env:"APP_ENV"         envDefault:"production"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	SupabaseURL        string `env:"SUPABASE_URL"`
	SupabaseAnonKey    string `env:"SUPABASE_ANON_KEY"`
	SupabaseDBURL      string `env:"SUPABASE_DB_URL"`
	SupabaseDBPassword string `env:"SUPABASE_DB_PASSWORD"`
	SummaryTable       string `env:"SUMMARY_TABLE"    envDefault:"summaries"`
	MetadataBackend    string `env:"METADATA_BACKEND" envDefault:"supabase"`

	MongoURI        string `env:"MONGODB_URI"`
	MongoDatabase   string `env:"MONGODB_DATABASE"   envDefault:"blog_summariser"`
	MongoCollection string `env:"MONGODB_COLLECTION" envDefault:"blogs"`

	HuggingFaceAPIKey   string `env:"HUGGINGFACE_API_KEY"`
	HuggingFaceModelURL string `env:"HUGGINGFACE_MODEL_URL"`
	SummaryMinLength    int    `env:"SUMMARY_MIN_LENGTH" envDefault:"15"`
	SummaryMaxLength    int    `env:"SUMMARY_MAX_LENGTH" envDefault:"60"`

	TranslationURL        string `env:"TRANSLATION_URL"`
	TranslationSourceLang string `env:"TRANSLATION_SOURCE_LANG" envDefault:"en"`
	TranslationTargetLang string `env:"TRANSLATION_TARGET_LANG" envDefault:"ur"`

	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"0s"`
}

// Load reads an optional .env file and then parses the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.MetadataBackend {
	case BackendSupabase, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("unknown METADATA_BACKEND %q", cfg.MetadataBackend)
	}

	return cfg, nil
}

// Addr returns the listen address.
func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }
