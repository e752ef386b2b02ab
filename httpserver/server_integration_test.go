package httpserver_test

import (
	"context"
	"filmorate/film"
	"filmorate/genre"
	"filmorate/httpserver"
	"filmorate/memory"
	"filmorate/mpa"
	"filmorate/postgres"
	"filmorate/user"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func newMemoryServer(t testing.TB) *httpserver.Server {
	t.Helper()

	store := memory.NewStore()
	genres := memory.NewGenreRepository()
	ratings := memory.NewRatingRepository()

	server := httpserver.Default(testConfig())
	server.UserService = user.NewUsecase(store.Users())
	server.FilmService = film.NewUsecase(store.Films(), store.Users(), genres, ratings)
	server.GenreService = genre.NewUsecase(genres)
	server.MpaService = mpa.NewUsecase(ratings)
	return server
}

func MustCreateServer(t testing.TB, db *gorm.DB) *httpserver.Server {
	t.Helper()

	users := postgres.NewUserRepository(db)
	genres := postgres.NewGenreRepository(db)
	ratings := postgres.NewRatingRepository(db)

	server := httpserver.Default(testConfig())
	server.UserService = user.NewUsecase(users)
	server.FilmService = film.NewUsecase(postgres.NewFilmRepository(db), users, genres, ratings)
	server.GenreService = genre.NewUsecase(genres)
	server.MpaService = mpa.NewUsecase(ratings)
	return server
}

func TestFilmorateFlow_Memory(t *testing.T) {
	exerciseFilmorate(t, newMemoryServer(t))
}

func TestFilmorateFlow_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := MustCreateTestDatabase(t)
	MigrateTestDatabase(t, db, "../migrations")

	exerciseFilmorate(t, MustCreateServer(t, db))
}

// exerciseFilmorate drives a fresh server through users, friendships, films,
// likes and the popular list.
func exerciseFilmorate(t *testing.T, server *httpserver.Server) {
	t.Helper()

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = newJSONRequest(t, method, path, body)
		}
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		return rec
	}

	var ids []int64
	for _, login := range []string{"ada", "grace", "linus"} {
		rec := do(http.MethodPost, "/users", fmt.Sprintf(
			`{"email":"%s@example.com","login":"%s","birthday":"1990-01-01"}`, login, login))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		u := decodeJSON[user.User](t, rec)
		assert.Equal(t, login, u.Name, "blank name falls back to login")
		ids = append(ids, u.ID)
	}
	ada, grace, linus := ids[0], ids[1], ids[2]

	rec := do(http.MethodPut, fmt.Sprintf("/users/%d/friends/%d", ada, linus), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []int64{linus}, decodeJSON[user.User](t, rec).Friends)

	rec = do(http.MethodPut, fmt.Sprintf("/users/%d/friends/%d", grace, linus), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(http.MethodGet, fmt.Sprintf("/users/%d/friends", linus), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeJSON[[]user.User](t, rec), "friendship is one-way")

	rec = do(http.MethodGet, fmt.Sprintf("/users/%d/friends/common/%d", ada, grace), "")
	require.Equal(t, http.StatusOK, rec.Code)
	common := decodeJSON[[]user.User](t, rec)
	require.Len(t, common, 1)
	assert.Equal(t, linus, common[0].ID)

	rec = do(http.MethodPut, fmt.Sprintf("/users/%d/friends/%d", ada, 999), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(http.MethodPost, "/films", `{
		"name":"Arrival","description":"Linguist meets heptapods","releaseDate":"2016-11-11",
		"duration":116,"mpa":{"id":3},"genres":[{"id":4},{"id":2},{"id":4}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	arrival := decodeJSON[film.Film](t, rec)
	assert.Equal(t, &mpa.Rating{ID: 3, Name: "PG-13"}, arrival.Mpa)
	assert.Equal(t, []genre.Genre{{ID: 2, Name: "Drama"}, {ID: 4, Name: "Thriller"}}, arrival.Genres)

	rec = do(http.MethodPost, "/films", `{"name":"Heat","releaseDate":"1995-12-15","duration":170,"mpa":{"id":4}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	heat := decodeJSON[film.Film](t, rec)

	rec = do(http.MethodPost, "/films", `{"name":"Old","releaseDate":"1895-12-28","duration":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodPost, "/films", `{"name":"Film","releaseDate":"2000-01-01","duration":90,"mpa":{"id":77}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, uid := range []int64{ada, grace, grace} {
		rec = do(http.MethodPut, fmt.Sprintf("/films/%d/like/%d", heat.ID, uid), "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec = do(http.MethodPut, fmt.Sprintf("/films/%d/like/%d", arrival.ID, linus), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(http.MethodPut, fmt.Sprintf("/films/%d/like/%d", arrival.ID, 999), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(http.MethodGet, "/films/popular?count=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	popular := decodeJSON[[]film.Film](t, rec)
	require.Len(t, popular, 2)
	assert.Equal(t, heat.ID, popular[0].ID)
	assert.Equal(t, []int64{ada, grace}, popular[0].Likes)

	rec = do(http.MethodPut, "/films", fmt.Sprintf(
		`{"id":%d,"name":"Arrival","releaseDate":"2016-11-11","duration":118,"genres":[{"id":1}]}`, arrival.ID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeJSON[film.Film](t, rec)
	assert.Nil(t, updated.Mpa)
	assert.Equal(t, []genre.Genre{{ID: 1, Name: "Comedy"}}, updated.Genres)
	assert.Equal(t, []int64{linus}, updated.Likes)

	rec = do(http.MethodGet, "/films/search?q=heptapods", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(http.MethodDelete, fmt.Sprintf("/users/%d", grace), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(http.MethodGet, fmt.Sprintf("/films/%d", heat.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{ada}, decodeJSON[film.Film](t, rec).Likes)

	rec = do(http.MethodGet, "/genres", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeJSON[[]genre.Genre](t, rec), 6)

	rec = do(http.MethodGet, "/mpa/5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NC-17", decodeJSON[mpa.Rating](t, rec).Name)
}

func MustCreateTestDatabase(t testing.TB) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	dbName, dbUser, dbPass := "test_filmorate", "test", "testpass"
	postgre, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		pgcontainer.WithDatabase(dbName),
		pgcontainer.WithUsername(dbUser),
		pgcontainer.WithPassword(dbPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		assert.NoError(t, postgre.Terminate(ctx), "failed to terminate postgres container")
	})

	host, port := extractHostAndPort(t, ctx, postgre)
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   dbName,
		DBUser:   dbUser,
		Password: dbPass,
		Host:     host,
		Port:     port.Port(),
	})
	require.NoError(t, err, "failed to connect to postgres database")

	return db
}

func extractHostAndPort(t testing.TB, ctx context.Context, postgre *pgcontainer.PostgresContainer) (string, nat.Port) {
	t.Helper()
	host, err := postgre.Host(ctx)
	assert.NoError(t, err, "failed to get container host")

	port, err := postgre.MappedPort(ctx, "5432")
	assert.NoError(t, err, "failed to get mapped port")
	return host, port
}

func MigrateTestDatabase(t testing.TB, db *gorm.DB, migrationPath string) {
	t.Helper()
	migrations := &migrate.FileMigrationSource{
		Dir: migrationPath,
	}

	sqlDB, err := db.DB()
	require.NoError(t, err, "failed to get sql.DB from gorm.DB")

	_, err = migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	require.NoError(t, err, "failed to run database migrations")
}
