package main

import (
	"context"
	"encoding/csv"
	"errors"
	"filmorate/errs"
	"filmorate/film"
	"filmorate/genre"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"
)

// titleYear matches the trailing "(1995)" MovieLens appends to titles.
var titleYear = regexp.MustCompile(`^(.*\S)\s*\((\d{4})\)\s*$`)

type importer struct {
	films    film.Service
	genres   map[string]genre.Genre
	duration int
	log      *zap.SugaredLogger

	skipped  int
	existing int
}

type movieRecord struct {
	Title  string
	Year   int
	Genres []string
}

// importMovies adds every usable row of a MovieLens movies.csv as a film.
// Rows the film service rejects as invalid are skipped, and so are films
// already stored with the same name and release date, which makes re-runs
// safe.
func (imp *importer) importMovies(ctx context.Context, r io.Reader, limit int) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idxTitle, idxGenres, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	stored, err := imp.films.ListFilms(ctx)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(stored))
	for _, f := range stored {
		seen[filmKey(f)] = struct{}{}
	}

	count := 0
	for limit <= 0 || count < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}

		movie, ok := parseMovieRecord(record, idxTitle, idxGenres)
		if !ok {
			imp.skipped++
			continue
		}

		f := imp.toFilm(movie)
		if _, ok := seen[filmKey(f)]; ok {
			imp.existing++
			continue
		}

		_, err = imp.films.AddFilm(ctx, f)
		if errs.ErrorCode(err) == errs.EINVALID {
			imp.log.Debugw("skip film", "title", movie.Title, "reason", errs.ErrorMessage(err))
			imp.skipped++
			continue
		}
		if err != nil {
			return count, err
		}

		seen[filmKey(f)] = struct{}{}
		count++
	}

	return count, nil
}

func (imp *importer) toFilm(m movieRecord) film.Film {
	f := film.Film{
		Name:        m.Title,
		ReleaseDate: civil.Date{Year: m.Year, Month: time.January, Day: 1},
		Duration:    imp.duration,
	}
	for _, name := range m.Genres {
		if g, ok := imp.genres[strings.ToLower(name)]; ok {
			f.Genres = append(f.Genres, g)
		}
	}
	return f
}

func filmKey(f film.Film) string {
	return strings.ToLower(f.Name) + "|" + f.ReleaseDate.String()
}

func genreIndex(catalog []genre.Genre) map[string]genre.Genre {
	idx := make(map[string]genre.Genre, len(catalog))
	for _, g := range catalog {
		idx[strings.ToLower(g.Name)] = g
	}
	return idx
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxTitle, idxGenres := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			idxTitle = i
		case "genres":
			idxGenres = i
		}
	}
	if idxTitle == -1 || idxGenres == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}

	return idxTitle, idxGenres, nil
}

func parseMovieRecord(record []string, idxTitle, idxGenres int) (movieRecord, bool) {
	if idxTitle >= len(record) || idxGenres >= len(record) {
		return movieRecord{}, false
	}

	m := titleYear.FindStringSubmatch(strings.TrimSpace(record[idxTitle]))
	if m == nil {
		return movieRecord{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return movieRecord{}, false
	}

	var genres []string
	if raw := strings.TrimSpace(record[idxGenres]); raw != "" && raw != "(no genres listed)" {
		genres = strings.Split(raw, "|")
	}

	return movieRecord{Title: m[1], Year: year, Genres: genres}, true
}
