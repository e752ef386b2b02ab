package httpserver_test

import (
	"filmorate/genre"
	"filmorate/httpserver"
	"filmorate/mpa"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGenreRoutes(t *testing.T) {
	svc := new(MockGenreService)
	server := httpserver.Default(testConfig())
	server.GenreService = svc
	svc.On("ListGenres", mock.Anything).Return([]genre.Genre{{ID: 1, Name: "Comedy"}, {ID: 2, Name: "Drama"}}, nil)
	svc.On("GetGenre", mock.Anything, int64(2)).Return(genre.Genre{ID: 2, Name: "Drama"}, nil)
	svc.On("GetGenre", mock.Anything, int64(42)).Return(genre.Genre{}, genre.ErrGenreNotFound)

	rec := makeRequest(server, http.MethodGet, "/genres", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Comedy"},{"id":2,"name":"Drama"}]`, rec.Body.String())

	rec = makeRequest(server, http.MethodGet, "/genres/2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":2,"name":"Drama"}`, rec.Body.String())

	rec = makeRequest(server, http.MethodGet, "/genres/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.AssertExpectations(t)
}

func TestMpaRoutes(t *testing.T) {
	svc := new(MockMpaService)
	server := httpserver.Default(testConfig())
	server.MpaService = svc
	svc.On("ListRatings", mock.Anything).Return([]mpa.Rating{{ID: 1, Name: "G"}}, nil)
	svc.On("GetRating", mock.Anything, int64(4)).Return(mpa.Rating{ID: 4, Name: "R"}, nil)

	rec := makeRequest(server, http.MethodGet, "/mpa", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"G"}]`, rec.Body.String())

	rec = makeRequest(server, http.MethodGet, "/mpa/4", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":4,"name":"R"}`, rec.Body.String())

	rec = makeRequest(server, http.MethodGet, "/mpa/x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertExpectations(t)
}
