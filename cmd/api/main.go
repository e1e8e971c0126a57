package main

import (
	"HoopStatApi/internal/data"
	"HoopStatApi/internal/extract"
	"HoopStatApi/internal/gamehub"
	"HoopStatApi/internal/jsonlog"
	"HoopStatApi/internal/mailer"
	"context"
	"database/sql"
	"errors"
	"expvar"
	"flag"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

type config struct {
	version string
	port    int
	env     string
	store   struct {
		kind string
		dir  string
	}
	db struct {
		dsn          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  string
	}
	redis struct {
		addr     string
		password string
		db       int
		prefix   string
	}
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}
	smtp struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
	cors struct {
		trustedOrigins []string
	}
	extract struct {
		apiKey   string
		endpoint string
		model    string
		timeout  time.Duration
	}
	auth struct {
		keyHash string
	}
}

type application struct {
	logger    *jsonlog.Logger
	config    config
	state     *data.State
	hubs      *gamehub.Registry
	mailer    mailer.Mailer
	extractor extract.Extractor
	wg        sync.WaitGroup
}

func main() {
	var cfg config

	// Server Config
	cfg.version = "1.0.0"
	flag.IntVar(&cfg.port, "port", 8008, "http server port")
	flag.StringVar(&cfg.env, "env", "development", "Environment (development|staging|production)")

	// Store Config
	flag.StringVar(&cfg.store.kind, "store", "file", "Collection store (file|postgres|redis|memory)")
	flag.StringVar(&cfg.store.dir, "store-dir", "./hoopstat-data", "Directory for the file store")

	// Database Config
	flag.StringVar(&cfg.db.dsn, "db-dsn", os.Getenv("HOOPSTAT_DB_DSN"), "DB connection string")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", 25, "PostgreSQL max idle connections")
	flag.StringVar(&cfg.db.maxIdleTime, "db-max-idle-time", "15m",
		"PostgreSQL max connection idle time")

	// Redis Config
	flag.StringVar(&cfg.redis.addr, "redis-addr", "localhost:6379", "Redis address")
	flag.StringVar(&cfg.redis.password, "redis-password", os.Getenv("HOOPSTAT_REDIS_PASSWORD"),
		"Redis password")
	flag.IntVar(&cfg.redis.db, "redis-db", 0, "Redis database number")
	flag.StringVar(&cfg.redis.prefix, "redis-prefix", "hoopstat:", "Redis key prefix")

	// Limiter Config
	flag.Float64Var(&cfg.limiter.rps, "limiter-rps", 10, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", 20, "Rate limiter maximum burst")
	flag.BoolVar(&cfg.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")

	// SMTP Config
	flag.StringVar(&cfg.smtp.host, "smtp-host", "", "SMTP host (card sharing is off when empty)")
	flag.IntVar(&cfg.smtp.port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.smtp.username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.smtp.password, "smtp-password", os.Getenv("HOOPSTAT_SMTP_PASSWORD"),
		"SMTP password")
	flag.StringVar(&cfg.smtp.sender, "smtp-sender", "HoopStat <no-reply@hoopstat.app>",
		"SMTP sender")

	// CORS Config
	flag.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		origins := strings.Fields(val)
		if i := slices.Index(origins, "*"); i != -1 {
			return errors.New("cannot set CORS trusted origin to \"*\" with authorization header" +
				" in cross-origin requests")
		}
		cfg.cors.trustedOrigins = origins
		return nil
	})

	// Extraction Config
	flag.StringVar(&cfg.extract.apiKey, "gemini-api-key", os.Getenv("GEMINI_API_KEY"),
		"Gemini API key (schedule import is off when empty)")
	flag.StringVar(&cfg.extract.endpoint, "gemini-endpoint", extract.DefaultGeminiEndpoint,
		"Gemini API base URL")
	flag.StringVar(&cfg.extract.model, "gemini-model", extract.DefaultGeminiModel, "Gemini model")
	flag.DurationVar(&cfg.extract.timeout, "extract-timeout", 60*time.Second,
		"Schedule extraction timeout")

	// Auth Config
	flag.StringVar(&cfg.auth.keyHash, "access-key-hash", os.Getenv("HOOPSTAT_ACCESS_KEY_HASH"),
		"bcrypt hash of the API access key (no authentication when empty)")

	// Version
	displayVersion := flag.Bool("version", false, "Show API version and immediately exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version: %s\n", cfg.version)
		os.Exit(0)
	}

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	store, err := openStore(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer store.Close()
	logger.PrintInfo("collection store opened", map[string]string{"store": cfg.store.kind})

	state := data.NewState(store)
	err = state.Load(context.Background())
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	app := &application{
		logger: logger,
		config: cfg,
		state:  state,
		hubs:   gamehub.NewRegistry(state),
		mailer: mailer.New(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password,
			cfg.smtp.sender),
	}
	if cfg.extract.apiKey != "" {
		app.extractor = extract.NewSerial(extract.NewGemini(cfg.extract.endpoint, cfg.extract.model,
			cfg.extract.apiKey, cfg.extract.timeout))
	}

	expvar.NewString("version").Set(cfg.version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("tracking_sessions", expvar.Func(func() any {
		return app.hubs.Count()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

func openStore(cfg config) (data.Store, error) {
	switch cfg.store.kind {
	case "file":
		return data.NewFileStore(cfg.store.dir)
	case "memory":
		return data.NewMemoryStore(), nil
	case "postgres":
		db, err := openDB(cfg)
		if err != nil {
			return nil, err
		}
		expvar.Publish("database", expvar.Func(func() any {
			return db.Stats()
		}))

		store := data.NewPostgresStore(db)
		if err := store.Migrate(context.Background()); err != nil {
			db.Close()
			return nil, err
		}
		return store, nil
	case "redis":
		client, err := data.OpenRedis(cfg.redis.addr, cfg.redis.password, cfg.redis.db)
		if err != nil {
			return nil, err
		}
		return data.NewRedisStore(client, cfg.redis.prefix), nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.store.kind)
	}
}

func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.db.maxOpenConns)
	db.SetMaxIdleConns(cfg.db.maxIdleConns)
	duration, err := time.ParseDuration(cfg.db.maxIdleTime)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxIdleTime(duration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		return nil, err
	}

	return db, nil
}
