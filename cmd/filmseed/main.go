package main

import (
	"archive/zip"
	"context"
	"errors"
	"filmorate/film"
	"filmorate/pkg/config"
	"filmorate/pkg/logger"
	"filmorate/postgres"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strconv"
	"syscall"
	"time"
)

const (
	defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"
	downloadTimeout     = 2 * time.Minute
)

func main() {
	var (
		csvPath  string
		zipURL   string
		limit    int
		duration int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&limit, "limit", 0, "Limit number of films to import (0 = all)")
	flag.IntVar(&duration, "duration", 90, "Duration in minutes given to imported films")
	flag.Parse()

	boot := logger.Bootstrap()
	if err := run(csvPath, zipURL, limit, duration); err != nil {
		boot.Errorw("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(csvPath, zipURL string, limit, duration int) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config failed: %w", err)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("cannot init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		return fmt.Errorf("cannot open postgres connection: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataset, err := openDataset(ctx, csvPath, zipURL)
	if err != nil {
		return fmt.Errorf("cannot open dataset: %w", err)
	}
	defer dataset.Close()

	genres := postgres.NewGenreRepository(db)
	films := film.NewUsecase(
		postgres.NewFilmRepository(db),
		postgres.NewUserRepository(db),
		genres,
		postgres.NewRatingRepository(db),
	)

	catalog, err := genres.AllGenres(ctx)
	if err != nil {
		return fmt.Errorf("cannot load genres: %w", err)
	}

	imp := &importer{
		films:    films,
		genres:   genreIndex(catalog),
		duration: duration,
		log:      log,
	}
	count, err := imp.importMovies(ctx, dataset, limit)
	if err != nil {
		return fmt.Errorf("import failed after %d films: %w", count, err)
	}

	log.Infow("import completed", "films", count, "skipped", imp.skipped, "existing", imp.existing)
	return nil
}

// openDataset returns movies.csv from a local path, or from the MovieLens
// archive at zipURL when csvPath is empty.
func openDataset(ctx context.Context, csvPath, zipURL string) (io.ReadCloser, error) {
	if csvPath != "" {
		return os.Open(csvPath)
	}
	if zipURL == "" {
		return nil, errors.New("dataset url is empty")
	}

	archive, err := downloadArchive(ctx, zipURL)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", zipURL, err)
	}
	return moviesEntry(archive)
}

// downloadArchive buffers the zip in a temp file, which zip.Reader needs for
// random access. The file is unlinked once the archive is closed.
func downloadArchive(ctx context.Context, url string) (*zipFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: downloadTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	tmp, err := os.CreateTemp("", "movielens-*.zip")
	if err != nil {
		return nil, err
	}
	size, err := io.Copy(tmp, resp.Body)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, err
	}

	r, err := zip.NewReader(tmp, size)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	return &zipFile{Reader: r, file: tmp}, nil
}

type zipFile struct {
	*zip.Reader
	file *os.File
}

func (z *zipFile) Close() error {
	err := z.file.Close()
	if rmErr := os.Remove(z.file.Name()); err == nil {
		err = rmErr
	}
	return err
}

// moviesEntry opens movies.csv inside archive. Closing the result closes the
// archive too.
func moviesEntry(archive *zipFile) (io.ReadCloser, error) {
	for _, f := range archive.File {
		if path.Base(f.Name) != "movies.csv" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			_ = archive.Close()
			return nil, err
		}
		return &entry{ReadCloser: rc, archive: archive}, nil
	}

	_ = archive.Close()
	return nil, errors.New("movies.csv not found in zip")
}

type entry struct {
	io.ReadCloser
	archive io.Closer
}

func (e *entry) Close() error {
	err := e.ReadCloser.Close()
	if aErr := e.archive.Close(); err == nil {
		err = aErr
	}
	return err
}
