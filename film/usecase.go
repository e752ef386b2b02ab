package film

import (
	"context"
	"filmorate/errs"
	"filmorate/genre"
	"filmorate/mpa"
	"filmorate/user"
	"slices"
	"strings"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

type Service interface {
	AddFilm(ctx context.Context, f Film) (Film, error)
	UpdateFilm(ctx context.Context, f Film) (Film, error)
	GetFilm(ctx context.Context, id int64) (Film, error)
	ListFilms(ctx context.Context) ([]Film, error)
	DeleteFilm(ctx context.Context, id int64) error
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	PopularFilms(ctx context.Context, count int) ([]Film, error)
	SearchFilms(ctx context.Context, query string, limit int) ([]Film, error)
}

type Repository interface {
	CreateFilm(ctx context.Context, f Film) (Film, error)
	UpdateFilm(ctx context.Context, f Film) (Film, error)
	GetByID(ctx context.Context, id int64) (Film, error)
	AllFilms(ctx context.Context) ([]Film, error)
	DeleteFilm(ctx context.Context, id int64) error
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	Search(ctx context.Context, query string, limit int) ([]Film, error)
}

// UserFinder is the part of the user storage needed to check likes.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

type Usecase struct {
	r      Repository
	users  UserFinder
	genres genre.Repository
	mpa    mpa.Repository
}

func NewUsecase(r Repository, users UserFinder, genres genre.Repository, ratings mpa.Repository) *Usecase {
	return &Usecase{
		r:      r,
		users:  users,
		genres: genres,
		mpa:    ratings,
	}
}

func (uc *Usecase) AddFilm(ctx context.Context, f Film) (Film, error) {
	f, err := uc.prepare(ctx, f)
	if err != nil {
		return Film{}, err
	}
	f.ID = 0
	f.Likes = nil

	created, err := uc.r.CreateFilm(ctx, f)
	if err != nil {
		return Film{}, err
	}
	return created.withSets(), nil
}

func (uc *Usecase) UpdateFilm(ctx context.Context, f Film) (Film, error) {
	if f.ID <= 0 {
		return Film{}, ErrFilmNotFound
	}
	f, err := uc.prepare(ctx, f)
	if err != nil {
		return Film{}, err
	}

	updated, err := uc.r.UpdateFilm(ctx, f)
	if err != nil {
		return Film{}, err
	}
	return updated.withSets(), nil
}

func (uc *Usecase) GetFilm(ctx context.Context, id int64) (Film, error) {
	if id <= 0 {
		return Film{}, ErrFilmNotFound
	}
	f, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return Film{}, err
	}
	return f.withSets(), nil
}

func (uc *Usecase) ListFilms(ctx context.Context) ([]Film, error) {
	films, err := uc.r.AllFilms(ctx)
	if err != nil {
		return nil, err
	}
	return withSets(films), nil
}

func (uc *Usecase) DeleteFilm(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrFilmNotFound
	}
	return uc.r.DeleteFilm(ctx, id)
}

func (uc *Usecase) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := uc.checkLike(ctx, filmID, userID); err != nil {
		return err
	}
	return uc.r.AddLike(ctx, filmID, userID)
}

func (uc *Usecase) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := uc.checkLike(ctx, filmID, userID); err != nil {
		return err
	}
	return uc.r.RemoveLike(ctx, filmID, userID)
}

// PopularFilms returns at most count films with the most likes.
func (uc *Usecase) PopularFilms(ctx context.Context, count int) ([]Film, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	films, err := uc.r.AllFilms(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(films, ByPopularity)
	if len(films) > count {
		films = films[:count]
	}
	return withSets(films), nil
}

func (uc *Usecase) SearchFilms(ctx context.Context, query string, limit int) ([]Film, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	films, err := uc.r.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return withSets(films), nil
}

// prepare validates f and resolves its rating and genres against the catalogs.
func (uc *Usecase) prepare(ctx context.Context, f Film) (Film, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := f.Validate(); err != nil {
		return Film{}, err
	}

	if f.Mpa != nil {
		rating, err := uc.mpa.GetByID(ctx, f.Mpa.ID)
		if err != nil {
			return Film{}, catalogErr(err, ErrUnknownMpa)
		}
		f.Mpa = &rating
	}

	ids := f.GenreIDs()
	genres := make([]genre.Genre, 0, len(ids))
	for _, id := range ids {
		g, err := uc.genres.GetByID(ctx, id)
		if err != nil {
			return Film{}, catalogErr(err, ErrUnknownGenre)
		}
		genres = append(genres, g)
	}
	f.Genres = genres

	return f, nil
}

func (uc *Usecase) checkLike(ctx context.Context, filmID, userID int64) error {
	if _, err := uc.GetFilm(ctx, filmID); err != nil {
		return err
	}
	if userID <= 0 {
		return user.ErrUserNotFound
	}
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return nil
}

// catalogErr turns a missing catalog entry into a validation error of the film.
func catalogErr(err error, unknown error) error {
	if errs.ErrorCode(err) == errs.ENOTFOUND {
		return unknown
	}
	return err
}

func withSets(films []Film) []Film {
	out := make([]Film, 0, len(films))
	for _, f := range films {
		out = append(out, f.withSets())
	}
	return out
}
