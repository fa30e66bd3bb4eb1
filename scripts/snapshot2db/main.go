package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/notos/internal/generator"
	"github.com/Decentr-net/notos/internal/service/postgres"
	"github.com/Decentr-net/notos/internal/storage"
	"github.com/Decentr-net/notos/internal/storage/file"
	"github.com/Decentr-net/notos/internal/storage/sqlite"
	"github.com/Decentr-net/notos/internal/store"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Storage            string `long:"storage" env:"STORAGE" default:"file" description:"medium holding the snapshot" choice:"file" choice:"sqlite"`
	StoragePath        string `long:"storage.path" env:"STORAGE_PATH" default:"data" description:"directory of the file medium or path of the sqlite database"`
	SnapshotKey        string `long:"store.key" env:"STORE_KEY" default:"notos_db_v4_full_sim" description:"key of the snapshot document"`
	Postgres           string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMigrations string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`
}{}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "snapshot2db"
	parser.LongDescription = "Local snapshot to database importer"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	logrus.Info("snapshot2db started")
	logrus.Infof("%+v", opts)

	ctx := context.Background()

	ms := mustGetStorage(ctx)

	st := store.New(ms, generator.New(0), store.WithKey(opts.SnapshotKey), store.WithMinUsers(0))
	if err := st.LoadOrInit(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to load snapshot")
	}

	e, err := st.Export(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to export snapshot")
	}

	logrus.Infof("%d users, %d notes and %d notifications loaded", len(e.Users), len(e.Notes), len(e.Notifications))

	db := mustGetDB()
	defer db.Close()

	stats, err := postgres.Import(ctx, db, postgres.Snapshot{
		Users:         e.Users,
		Notes:         e.Notes,
		Notifications: e.Notifications,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to import snapshot")
	}

	logrus.WithField("stats", fmt.Sprintf("%+v", stats)).Info("done")
}

func mustGetStorage(ctx context.Context) storage.Storage {
	if opts.Storage == "sqlite" {
		s, _, err := sqlite.Open(ctx, opts.StoragePath)
		if err != nil {
			logrus.WithError(err).Fatal("failed to open sqlite storage")
		}
		return s
	}

	s, err := file.New(opts.StoragePath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create file storage")
	}
	return s
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}

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
