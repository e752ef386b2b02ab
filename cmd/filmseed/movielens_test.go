package main

import (
	"context"
	"filmorate/film"
	"filmorate/genre"
	"filmorate/memory"
	"filmorate/pkg/logger"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMovieRecord(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   movieRecord
		ok     bool
	}{
		{
			name:   "title with year and genres",
			record: []string{"1", "Toy Story (1995)", "Adventure|Animation|Comedy"},
			want:   movieRecord{Title: "Toy Story", Year: 1995, Genres: []string{"Adventure", "Animation", "Comedy"}},
			ok:     true,
		},
		{
			name:   "parentheses inside the title",
			record: []string{"2", "City of Lost Children, The (Cité des enfants perdus, La) (1995)", "Drama"},
			want:   movieRecord{Title: "City of Lost Children, The (Cité des enfants perdus, La)", Year: 1995, Genres: []string{"Drama"}},
			ok:     true,
		},
		{
			name:   "no genres listed",
			record: []string{"3", "Hyena Road (2015)", "(no genres listed)"},
			want:   movieRecord{Title: "Hyena Road", Year: 2015},
			ok:     true,
		},
		{
			name:   "missing year",
			record: []string{"4", "Babylon 5", "Sci-Fi"},
			ok:     false,
		},
		{
			name:   "short record",
			record: []string{"5", "Heat (1995)"},
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseMovieRecord(tt.record, 1, 2)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestImportMovies(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	genres := memory.NewGenreRepository()
	films := film.NewUsecase(store.Films(), store.Users(), genres, memory.NewRatingRepository())

	catalog, err := genres.AllGenres(ctx)
	require.NoError(t, err)

	imp := &importer{
		films:    films,
		genres:   genreIndex(catalog),
		duration: 100,
		log:      logger.NOOPLogger,
	}

	csv := strings.Join([]string{
		"movieId,title,genres",
		"1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy",
		`2,"Arrival, The (1996)",Action|Sci-Fi|Thriller`,
		"3,Workers Leaving the Lumière Factory (1895),Documentary",
		"4,No Year,Drama",
		"5,Heat (1995),Action|Crime|Thriller",
	}, "\n")

	count, err := imp.importMovies(ctx, strings.NewReader(csv), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 2, imp.skipped)

	all, err := films.ListFilms(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "Toy Story", all[0].Name)
	assert.Equal(t, civil.Date{Year: 1995, Month: time.January, Day: 1}, all[0].ReleaseDate)
	assert.Equal(t, 100, all[0].Duration)
	assert.Equal(t, []genre.Genre{{ID: 1, Name: "Comedy"}, {ID: 3, Name: "Animation"}}, all[0].Genres)

	assert.Equal(t, "Arrival, The", all[1].Name)
	assert.Equal(t, []genre.Genre{{ID: 4, Name: "Thriller"}, {ID: 6, Name: "Action"}}, all[1].Genres)
}

func TestImportMovies_SkipsStoredFilms(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	films := film.NewUsecase(store.Films(), store.Users(), memory.NewGenreRepository(), memory.NewRatingRepository())
	newImporter := func() *importer {
		return &importer{films: films, duration: 90, log: logger.NOOPLogger}
	}

	csv := "movieId,title,genres\n1,Heat (1995),Action\n2,Heat (1995),Action\n3,Heat (1986),Drama\n"

	first := newImporter()
	count, err := first.importMovies(ctx, strings.NewReader(csv), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, first.existing)

	second := newImporter()
	count, err = second.importMovies(ctx, strings.NewReader(csv), 0)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, 3, second.existing)

	all, err := films.ListFilms(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImportMovies_Limit(t *testing.T) {
	store := memory.NewStore()
	genres := memory.NewGenreRepository()
	imp := &importer{
		films:    film.NewUsecase(store.Films(), store.Users(), genres, memory.NewRatingRepository()),
		duration: 90,
		log:      logger.NOOPLogger,
	}

	csv := "movieId,title,genres\n1,A (2001),Drama\n2,B (2002),Drama\n3,C (2003),Drama\n"
	count, err := imp.importMovies(context.Background(), strings.NewReader(csv), 2)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestParseMovieCSVHeader_MissingColumns(t *testing.T) {
	imp := &importer{log: logger.NOOPLogger}

	_, err := imp.importMovies(context.Background(), strings.NewReader("movieId,name\n1,x\n"), 0)

	assert.Error(t, err)
}
