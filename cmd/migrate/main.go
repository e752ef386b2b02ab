package main

import (
	"filmorate/pkg/config"
	"filmorate/pkg/logger"
	"filmorate/postgres"
	"flag"
	"fmt"
	"os"
	"strconv"

	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	var (
		dir   string
		down  bool
		limit int
	)
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the migration files")
	flag.BoolVar(&down, "down", false, "Roll migrations back instead of applying them")
	flag.IntVar(&limit, "max", 0, "Maximum number of migrations to run (0 = all)")
	flag.Parse()

	boot := logger.Bootstrap()
	if err := run(dir, down, limit); err != nil {
		boot.Errorw("migration failed", "dir", dir, "down", down, "error", err)
		os.Exit(1)
	}
}

func run(dir string, down bool, limit int) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("cannot init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := postgres.OpenDB(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		return fmt.Errorf("cannot connect to db: %w", err)
	}
	defer db.Close()

	direction := migrate.Up
	if down {
		direction = migrate.Down
	}

	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	total, err := migrate.ExecMax(db, "postgres", migrations, direction, limit)
	if err != nil {
		return fmt.Errorf("cannot execute migration: %w", err)
	}

	log.Infow("applied migrations", "total", total, "down", down)
	return nil
}
