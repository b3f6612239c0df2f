package config

import (
	"context"
	"errors"
	"os"
	"time"

	"communityportal/internal/listing"
	"communityportal/internal/repositories/elsearch"
	"communityportal/internal/repositories/redis"
	"communityportal/internal/repositories/sqlserver"
	"communityportal/internal/search"
	"communityportal/pkg/logger"
)

// Searcher runs one cross-collection search.
type Searcher interface {
	Search(ctx context.Context, q string) ([]search.Hit, error)
}

// Pinger is a dependency the healthcheck probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the clients and services shared by every handler
type App struct {
	Redis     *redis.RedisInternal
	ES        *elsearch.Client
	Logger    *logger.Logger
	SqlServer *sqlserver.Internal

	Settings     listing.Settings
	Catalog      *Catalog
	PublicSearch Searcher
	AdminSearch  Searcher

	// Checks are probed by the healthcheck, keyed by dependency name.
	Checks    map[string]Pinger
	StartedAt time.Time
}

// NewConfig connects every dependency and wires the services.
func NewConfig() (*App, error) {
	cfg := &App{StartedAt: time.Now(), Checks: map[string]Pinger{}}

	// Log shipping is optional; the file log always works.
	if os.Getenv("ELASTICSEARCH_URL") != "" {
		if err := cfg.newClientES(); err != nil {
			return cfg, err
		}
	}
	cfg.newLogger()

	if err := cfg.newClientRedis(); err != nil {
		return cfg, err
	}
	cfg.Checks["redis"] = cfg.Redis

	sqlServer, err := sqlserver.NewSQLServerInternal()
	if err != nil {
		return cfg, errors.New("creating sql server client: " + err.Error())
	}
	cfg.SqlServer = sqlServer
	cfg.Checks["sqlserver"] = sqlServer

	cfg.Settings = redis.NewCachedSettings(cfg.Redis, sqlServer.Settings(),
		getEnvDuration("SETTINGS_CACHE_TTL", redis.DefaultSettingsTTL), cfg.Logger)
	cfg.Catalog = NewSQLCatalog(sqlServer, cfg.Settings, cfg.Logger)

	timeout := search.WithTimeout(getEnvDuration("SEARCH_TIMEOUT", search.DefaultTimeout))
	finders := sqlServer.Finders()
	cfg.PublicSearch = search.NewPublic(finders, os.Getenv("PUBLIC_BASE_PATH"), timeout)
	cfg.AdminSearch = search.NewAdmin(finders, timeout)

	return cfg, nil
}

func (cfg *App) newLogger() {
	loggerConfig := logger.Config{
		Service:       "community-portal-api",
		Version:       "1.0.0",
		Environment:   getEnv("APP_ENV", "development"),
		LogDir:        getEnv("LOG_DIR", "./logs"),
		FlushInterval: 5 * time.Second,
		BatchSize:     100,
		BufferSize:    10000,
		LogLevel:      logger.ParseLevel(os.Getenv("LOG_LEVEL")),
		EnableCaller:  true,
	}
	if cfg.ES != nil {
		loggerConfig.Sink = cfg.ES.LogSink()
	}
	cfg.Logger = logger.NewLogger(loggerConfig)
}

// CloseAll closes every connection
func (cfg *App) CloseAll() {
	if cfg.SqlServer != nil {
		_ = cfg.SqlServer.Close()
	}
	if cfg.Redis != nil {
		_ = cfg.Redis.Close()
	}
	// last, so shutdown errors above still reach the log
	if cfg.Logger != nil {
		_ = cfg.Logger.Close()
	}
}

func (cfg *App) newClientRedis() error {
	r, err := redis.NewRedisInternal()
	if err != nil {
		return errors.New("creating redis client: " + err.Error())
	}
	cfg.Redis = r
	return nil
}

func (cfg *App) newClientES() error {
	es, err := elsearch.NewClient(&elsearch.Config{
		MaxRetries:         3,
		RetryBackoff:       100 * time.Millisecond,
		Timeout:            5 * time.Second,
		InsecureSkipVerify: os.Getenv("ELASTICSEARCH_INSECURE") == "true",
		LogIndex:           getEnv("LOG_INDEX", "portal-api-logs"),
	})
	if err != nil {
		return errors.New("creating elastic client: " + err.Error())
	}
	cfg.ES = es
	return nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(name string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(name))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
