package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/logrus/sentry"

	"github.com/Decentr-net/notos/internal/generator"
	"github.com/Decentr-net/notos/internal/health"
	"github.com/Decentr-net/notos/internal/server"
	"github.com/Decentr-net/notos/internal/service"
	"github.com/Decentr-net/notos/internal/service/local"
	"github.com/Decentr-net/notos/internal/service/postgres"
	"github.com/Decentr-net/notos/internal/session"
	"github.com/Decentr-net/notos/internal/simulator"
	"github.com/Decentr-net/notos/internal/storage"
	"github.com/Decentr-net/notos/internal/storage/file"
	"github.com/Decentr-net/notos/internal/storage/memory"
	"github.com/Decentr-net/notos/internal/storage/mongo"
	rstorage "github.com/Decentr-net/notos/internal/storage/redis"
	"github.com/Decentr-net/notos/internal/storage/sqlite"
	"github.com/Decentr-net/notos/internal/store"
	"github.com/Decentr-net/notos/internal/suggest"
	"github.com/Decentr-net/notos/internal/upload"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Host string `long:"http.host" env:"HTTP_HOST" default:"0.0.0.0" description:"IP to listen on"`
	Port int    `long:"http.port" env:"HTTP_PORT" default:"8080" description:"port to listen on for insecure connections"`

	Backend string `long:"backend" env:"BACKEND" default:"local" description:"service backend" choice:"local" choice:"postgres"`

	Storage         string        `long:"storage" env:"STORAGE" default:"file" description:"durable medium of the local backend" choice:"memory" choice:"file" choice:"redis" choice:"sqlite" choice:"mongo"`
	StoragePath     string        `long:"storage.path" env:"STORAGE_PATH" default:"data" description:"directory of the file medium or path of the sqlite database"`
	RedisAddr       string        `long:"redis.addr" env:"REDIS_ADDR" default:"localhost:6379" description:"redis address"`
	RedisPrefix     string        `long:"redis.prefix" env:"REDIS_PREFIX" default:"notos:" description:"redis key prefix"`
	MongoURI        string        `long:"mongo.uri" env:"MONGO_URI" default:"mongodb://localhost:27017" description:"mongo connection uri"`
	MongoDatabase   string        `long:"mongo.database" env:"MONGO_DATABASE" default:"notos" description:"mongo database"`
	MongoCollection string        `long:"mongo.collection" env:"MONGO_COLLECTION" default:"documents" description:"mongo collection"`
	SnapshotKey     string        `long:"store.key" env:"STORE_KEY" default:"notos_db_v4_full_sim" description:"key of the snapshot document"`
	Latency         time.Duration `long:"store.latency" env:"STORE_LATENCY" default:"0s" description:"artificial delay of every store operation"`
	MinUsers        int           `long:"store.min_users" env:"STORE_MIN_USERS" default:"100" description:"synthetic population kept in the store"`
	Seed            int64         `long:"seed" env:"SEED" default:"0" description:"random seed, 0 means current time"`

	SimulatorInterval time.Duration `long:"simulator.interval" env:"SIMULATOR_INTERVAL" default:"8s" description:"interval between simulated actions, 0 disables the simulator"`
	SimulatorUser     string        `long:"simulator.user" env:"SIMULATOR_USER" description:"id of the user the simulator acts around, defaults to the signed in user"`

	Postgres                   string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMaxOpenConnections int    `long:"postgres.max_open_connections" env:"POSTGRES_MAX_OPEN_CONNECTIONS" default:"0" description:"postgres maximal open connections count, 0 means unlimited"`
	PostgresMaxIdleConnections int    `long:"postgres.max_idle_connections" env:"POSTGRES_MAX_IDLE_CONNECTIONS" default:"5" description:"postgres maximal idle connections count"`
	PostgresMigrations         string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`

	GenAIKey   string `long:"genai.key" env:"GENAI_KEY" description:"gemini api key, suggestions are disabled when empty"`
	GenAIModel string `long:"genai.model" env:"GENAI_MODEL" default:"gemini-2.5-flash" description:"gemini model"`

	UploadDir     string `long:"upload.dir" env:"UPLOAD_DIR" default:"uploads" description:"directory of uploaded files"`
	UploadBaseURL string `long:"upload.base_url" env:"UPLOAD_BASE_URL" default:"/uploads" description:"url prefix of uploaded files"`

	LogLevel  string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`
	SentryDSN string `long:"sentry.dsn" env:"SENTRY_DSN" description:"sentry dsn"`
}{}

var errTerminated = errors.New("terminated")

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Fatal("failed to load .env")
	}

	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Notos"
	parser.LongDescription = "Notos backend daemon with ghost activity simulator"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	if opts.SentryDSN != "" {
		hook, err := sentry.NewHook(sentry.Options{
			Dsn:              opts.SentryDSN,
			AttachStacktrace: true,
			Release:          health.GetVersion(),
			ServerName:       "notos",
		}, logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel)

		if err != nil {
			logrus.WithError(err).Fatal("failed to init sentry")
		}

		logrus.AddHook(hook)
	} else {
		logrus.Info("empty sentry dsn")
		logrus.Warn("skip sentry initialization")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sg := mustGetSuggester(ctx)
	up := mustGetUploader()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := generator.New(seed)

	var (
		svc     service.Service
		pingers []health.Pinger
		sim     func(ctx context.Context) error
	)

	switch opts.Backend {
	case "postgres":
		db := mustGetDB()
		defer db.Close()

		svc = postgres.New(db, sg, up)
		pingers = append(pingers, health.SubjectPinger("postgres", db.PingContext))
	default:
		ms, closeFn := mustGetStorage(ctx)
		defer closeFn()

		st := store.New(ms, gen,
			store.WithKey(opts.SnapshotKey),
			store.WithLatency(opts.Latency),
			store.WithMinUsers(opts.MinUsers),
		)
		if err := st.LoadOrInit(ctx); err != nil {
			logrus.WithError(err).Fatal("failed to load store")
		}

		svc = local.New(st, session.New(ms, st), sg, up)
		pingers = append(pingers, health.SubjectPinger("store", st.Ping))
		sim = simulatorLoop(simulator.New(st, gen), svc)
	}

	r := chi.NewRouter()
	server.SetupRouter(r, 5*time.Second, pingers...)
	srv := http.Server{
		Addr:              fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	gr, _ := errgroup.WithContext(ctx)
	if sim != nil {
		gr.Go(func() error {
			return sim(ctx)
		})
	}
	gr.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

		s := <-sigs

		logrus.Infof("terminating by %s signal", s)

		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("failed to shutdown http server")
		}

		return errTerminated
	})

	logrus.WithField("backend", opts.Backend).WithField("version", health.GetVersion()).Info("service started")

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) {
		logrus.WithError(err).Fatal("notos unexpectedly closed")
	}
}

// simulatorLoop runs the simulator around the configured user or the signed in one.
func simulatorLoop(sim *simulator.Simulator, svc service.Service) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if opts.SimulatorInterval <= 0 {
			logrus.Info("simulator disabled")
			return nil
		}

		userID := opts.SimulatorUser
		if userID == "" {
			u, err := svc.CurrentUser(ctx)
			if err != nil {
				if errors.Is(err, service.ErrNotAuthenticated) {
					logrus.Warn("nobody is signed in, simulator disabled")
					return nil
				}
				return fmt.Errorf("failed to get current user: %w", err)
			}
			userID = u.ID
		}

		return sim.Run(ctx, userID, opts.SimulatorInterval)
	}
}

func mustGetStorage(ctx context.Context) (storage.Storage, func()) {
	switch opts.Storage {
	case "memory":
		return memory.New(), func() {}
	case "redis":
		c := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		return rstorage.New(c, opts.RedisPrefix), func() {
			if err := c.Close(); err != nil {
				logrus.WithError(err).Error("failed to close redis client")
			}
		}
	case "sqlite":
		s, closeFn, err := sqlite.Open(ctx, opts.StoragePath)
		if err != nil {
			logrus.WithError(err).Fatal("failed to open sqlite storage")
		}
		return s, func() {
			if err := closeFn(); err != nil {
				logrus.WithError(err).Error("failed to close sqlite storage")
			}
		}
	case "mongo":
		s, disconnect, err := mongo.Connect(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
		if err != nil {
			logrus.WithError(err).Fatal("failed to connect to mongo")
		}
		return s, func() {
			if err := disconnect(context.Background()); err != nil {
				logrus.WithError(err).Error("failed to disconnect from mongo")
			}
		}
	default:
		s, err := file.New(opts.StoragePath)
		if err != nil {
			logrus.WithError(err).Fatal("failed to create file storage")
		}
		return s, func() {}
	}
}

func mustGetSuggester(ctx context.Context) suggest.Suggester {
	if opts.GenAIKey == "" {
		logrus.Warn("empty genai key, suggestions disabled")
		return suggest.Noop()
	}

	m, err := suggest.NewGemini(ctx, opts.GenAIKey, opts.GenAIModel)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create genai client")
	}

	return suggest.New(m)
}

func mustGetUploader() upload.Uploader {
	up, err := upload.NewDir(opts.UploadDir, opts.UploadBaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create uploader")
	}

	return up
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}
	db.SetMaxOpenConns(opts.PostgresMaxOpenConnections)
	db.SetMaxIdleConns(opts.PostgresMaxIdleConnections)

	if err := db.PingContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create database migrate driver")
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", opts.PostgresMigrations), "postgres", driver)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}

	switch v, d, err := migrator.Version(); err {
	case nil:
		logrus.Infof("database version %d with dirty state %t", v, d)
	case migrate.ErrNilVersion:
		logrus.Info("database version: nil")
	default:
		logrus.WithError(err).Fatal("failed to get version")
	}

	switch err := migrator.Up(); err {
	case nil:
		logrus.Info("database was migrated")
	case migrate.ErrNoChange:
		logrus.Info("database is up-to-date")
	default:
		logrus.WithError(err).Fatal("failed to migrate db")
	}

	return db
}
