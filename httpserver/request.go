package httpserver

import (
	"filmorate/film"
	"filmorate/genre"
	"filmorate/mpa"
	"filmorate/user"

	"cloud.google.com/go/civil"
)

// IDRef points at a catalog entry by ID. A name sent by the client is ignored.
type IDRef struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name,omitempty"`
}

type FilmRequest struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name" validate:"required,notblank,max=255"`
	Description string     `json:"description" validate:"max=200"`
	ReleaseDate civil.Date `json:"releaseDate"`
	Duration    int        `json:"duration" validate:"gt=0"`
	Mpa         *IDRef     `json:"mpa"`
	Genres      []IDRef    `json:"genres" validate:"dive"`
}

func (r FilmRequest) ToFilm() film.Film {
	f := film.Film{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: r.ReleaseDate,
		Duration:    r.Duration,
	}
	if r.Mpa != nil {
		f.Mpa = &mpa.Rating{ID: r.Mpa.ID}
	}
	for _, g := range r.Genres {
		f.Genres = append(f.Genres, genre.Genre{ID: g.ID})
	}
	return f
}

type UserRequest struct {
	ID       int64      `json:"id"`
	Email    string     `json:"email" validate:"required,email,max=255"`
	Login    string     `json:"login" validate:"required,notblank,nowhitespace,max=255"`
	Name     string     `json:"name" validate:"max=255"`
	Birthday civil.Date `json:"birthday"`
}

func (r UserRequest) ToUser() user.User {
	return user.User{
		ID:       r.ID,
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: r.Birthday,
	}
}
