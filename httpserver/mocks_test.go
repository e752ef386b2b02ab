package httpserver_test

import (
	"context"
	"filmorate/film"
	"filmorate/genre"
	"filmorate/mpa"
	"filmorate/user"

	"github.com/stretchr/testify/mock"
)

type MockFilmService struct {
	mock.Mock
}

func (m *MockFilmService) AddFilm(ctx context.Context, f film.Film) (film.Film, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(film.Film), args.Error(1)
}

func (m *MockFilmService) UpdateFilm(ctx context.Context, f film.Film) (film.Film, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(film.Film), args.Error(1)
}

func (m *MockFilmService) GetFilm(ctx context.Context, id int64) (film.Film, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(film.Film), args.Error(1)
}

func (m *MockFilmService) ListFilms(ctx context.Context) ([]film.Film, error) {
	args := m.Called(ctx)
	return args.Get(0).([]film.Film), args.Error(1)
}

func (m *MockFilmService) DeleteFilm(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFilmService) AddLike(ctx context.Context, filmID, userID int64) error {
	args := m.Called(ctx, filmID, userID)
	return args.Error(0)
}

func (m *MockFilmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	args := m.Called(ctx, filmID, userID)
	return args.Error(0)
}

func (m *MockFilmService) PopularFilms(ctx context.Context, count int) ([]film.Film, error) {
	args := m.Called(ctx, count)
	return args.Get(0).([]film.Film), args.Error(1)
}

func (m *MockFilmService) SearchFilms(ctx context.Context, query string, limit int) ([]film.Film, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]film.Film), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) AddUser(ctx context.Context, u user.User) (user.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id int64) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) AddFriend(ctx context.Context, id, friendID int64) (user.User, error) {
	args := m.Called(ctx, id, friendID)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) RemoveFriend(ctx context.Context, id, friendID int64) (user.User, error) {
	args := m.Called(ctx, id, friendID)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) ListFriends(ctx context.Context, id int64) ([]user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserService) CommonFriends(ctx context.Context, id, otherID int64) ([]user.User, error) {
	args := m.Called(ctx, id, otherID)
	return args.Get(0).([]user.User), args.Error(1)
}

type MockGenreService struct {
	mock.Mock
}

func (m *MockGenreService) ListGenres(ctx context.Context) ([]genre.Genre, error) {
	args := m.Called(ctx)
	return args.Get(0).([]genre.Genre), args.Error(1)
}

func (m *MockGenreService) GetGenre(ctx context.Context, id int64) (genre.Genre, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(genre.Genre), args.Error(1)
}

type MockMpaService struct {
	mock.Mock
}

func (m *MockMpaService) ListRatings(ctx context.Context) ([]mpa.Rating, error) {
	args := m.Called(ctx)
	return args.Get(0).([]mpa.Rating), args.Error(1)
}

func (m *MockMpaService) GetRating(ctx context.Context, id int64) (mpa.Rating, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mpa.Rating), args.Error(1)
}
